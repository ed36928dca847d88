package storage

import (
	"context"
	"errors"
	"sync"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

// ErrUserNotFound пользователь ещё не писал боту
var ErrUserNotFound = errors.New("user not found")

// MemoryUserRepository хранит сессии пользователей бота в памяти процесса
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*entity.User
}

// NewMemoryUserRepository создаёт пустое хранилище сессий
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]*entity.User),
	}
}

// Get возвращает пользователя по ID, при первом обращении заводит сессию в главном меню
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		user = entity.NewUser(userID, chatID)
		r.users[userID] = user
	}
	// Пользователь мог написать из другого чата.
	user.ChatID = chatID
	return user, nil
}

// Save сохраняет состояние пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.users[user.ID] = user
	r.mu.Unlock()
	return nil
}

// UpdateState меняет состояние существующей сессии
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.SetState(state)
	return nil
}

var _ port.UserRepository = (*MemoryUserRepository)(nil)
