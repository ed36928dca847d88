package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pcb-inspector/internal/container"
	"pcb-inspector/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для поиска дефектов на фотографиях печатных плат.

📸 Выберите проверку и отправьте фото платы.

📋 Команды:
/hole — найти отсутствующие отверстия
/bite — найти выкусы на дорожках
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Выберите проверку: /hole или /bite
2️⃣ Отправьте фото платы
3️⃣ Вы получите список дефектов и фото с подсветкой

💡 Рекомендации:
• Снимайте плату сверху, без перспективы
• Используйте равномерное освещение
• Фото должно быть чётким

📋 Команды:
/hole — отсутствующие отверстия
/bite — выкусы
/cancel — отменить операцию`

	msgAwaitingHole    = "📸 Отправьте фото платы для поиска отсутствующих отверстий."
	msgAwaitingBite    = "📸 Отправьте фото платы для поиска выкусов."
	msgCancelled       = "❌ Операция отменена. Отправьте /hole или /bite для новой проверки."
	msgChooseCheck     = "📋 Сначала выберите проверку: /hole или /bite."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото платы для проверки."
	msgBusy            = "⏳ Предыдущее фото ещё обрабатывается."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgNoDefects       = "✅ Дефекты не обнаружены."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
)

// Bot представляет Telegram-бота
type Bot struct {
	api *tgbotapi.BotAPI
	app *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, app *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api: api,
		app: app,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	var (
		reply string
		err   error
	)
	switch msg.Command() {
	case "start":
		_, err = b.app.UserService.Cancel(ctx, userID, chatID)
		reply = msgStart

	case "help":
		reply = msgHelp

	case "hole":
		_, err = b.app.UserService.BeginCheck(ctx, userID, chatID, entity.KindMissingHole)
		reply = msgAwaitingHole

	case "bite":
		_, err = b.app.UserService.BeginCheck(ctx, userID, chatID, entity.KindMouseBite)
		reply = msgAwaitingBite

	case "cancel":
		_, err = b.app.UserService.Cancel(ctx, userID, chatID)
		reply = msgCancelled

	default:
		reply = msgUnknownCommand
	}

	if err != nil {
		log.Printf("Error updating user state: %v", err)
	}
	b.sendMessage(chatID, reply)
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	chatID := msg.Chat.ID

	if user.State == entity.StateProcessing {
		b.sendMessage(chatID, msgBusy)
		return
	}
	kind, ok := user.PendingKind()
	if !ok {
		b.sendMessage(chatID, msgChooseCheck)
		return
	}

	if _, err := b.app.UserService.StartProcessing(ctx, user.ID, chatID); err != nil {
		log.Printf("Error updating user state: %v", err)
		return
	}
	defer func() {
		if err := b.app.UserService.Finish(ctx, user.ID); err != nil {
			log.Printf("Error updating user state: %v", err)
		}
	}()

	b.sendMessage(chatID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	out, err := b.app.InspectionService.ProcessDefectPhoto(ctx, kind, imageData)
	if err != nil {
		log.Printf("Error inspecting photo: %v", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	log.Printf("Chat %d: %s, %d defects", chatID, kind, len(out.Result.Detections))

	text := describe(out.Result)
	if len(out.Highlighted) == 0 {
		b.sendMessage(chatID, text)
		return
	}
	b.sendPhoto(chatID, out.Highlighted, text)
}

// describe текст ответа со списком найденных дефектов
func describe(result *entity.InspectionResult) string {
	if !result.HasDefects() {
		return msgNoDefects
	}

	var sb strings.Builder
	switch result.Kind {
	case entity.KindMissingHole:
		fmt.Fprintf(&sb, "🔍 Отсутствующих отверстий: %d", len(result.Detections))
	case entity.KindMouseBite:
		fmt.Fprintf(&sb, "🔍 Выкусов: %d", len(result.Detections))
	}
	for i, d := range result.Detections {
		fmt.Fprintf(&sb, "\n%d. (%d, %d) %s", i+1, d.Point.X, d.Point.Y, strings.Join(d.Label(), ", "))
	}
	return sb.String()
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// sendPhoto отправляет PNG с подсветкой и подписью
func (b *Bot) sendPhoto(chatID int64, data []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "defects.png", Bytes: data})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
		b.sendMessage(chatID, caption)
	}
}
