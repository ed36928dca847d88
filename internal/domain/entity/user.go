package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu          UserState = "main_menu"           // В главном меню
	StateAwaitingHolePhoto UserState = "awaiting_hole_photo" // Ожидание фото для поиска отверстий
	StateAwaitingBitePhoto UserState = "awaiting_bite_photo" // Ожидание фото для поиска выкусов
	StateProcessing        UserState = "processing"          // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID     int64     // Telegram User ID
	ChatID int64     // Telegram Chat ID
	State  UserState // Текущее состояние пользователя
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// PendingKind возвращает тип дефекта, фото для которого ждёт бот.
func (u *User) PendingKind() (DefectKind, bool) {
	switch u.State {
	case StateAwaitingHolePhoto:
		return KindMissingHole, true
	case StateAwaitingBitePhoto:
		return KindMouseBite, true
	}
	return "", false
}
