package app

import (
	"context"
	"fmt"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// BeginCheck переводит пользователя в ожидание фото для выбранного детектора.
func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64, kind entity.DefectKind) (*entity.User, error) {
	switch kind {
	case entity.KindMissingHole:
		return s.SetState(ctx, userID, chatID, entity.StateAwaitingHolePhoto)
	case entity.KindMouseBite:
		return s.SetState(ctx, userID, chatID, entity.StateAwaitingBitePhoto)
	}
	return nil, fmt.Errorf("unknown defect kind %q", kind)
}

// StartProcessing помечает, что фото принято в обработку.
func (s *UserService) StartProcessing(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateProcessing)
}

// Finish возвращает пользователя в главное меню после обработки.
func (s *UserService) Finish(ctx context.Context, userID int64) error {
	return s.repo.UpdateState(ctx, userID, entity.StateMainMenu)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}
