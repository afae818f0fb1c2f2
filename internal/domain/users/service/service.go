package service

import (
	"context"
	"fmt"

	"github.com/porese500/simulacros/internal/domain/model"
)

// UserRepository хранилище пользователей
type UserRepository interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	GetUserByID(ctx context.Context, userID int) (*model.User, error)
	CreateUser(ctx context.Context, telegramID int64, username, fullName string, roleID int) (int, error)
	UpdateUserRole(ctx context.Context, username string, roleID int) (int, error)
	DeleteUser(ctx context.Context, userID int) error
}

// RoleLookup поиск роли по имени
type RoleLookup interface {
	GetRoleByRoleName(ctx context.Context, roleName string) (*model.RoleRecord, error)
}

// UserService содержит логику бизнес-операций для пользователей
type UserService struct {
	userRepo UserRepository
	roles    RoleLookup
}

// NewUserService создает новый экземпляр UserService
func NewUserService(userRepo UserRepository, roles RoleLookup) *UserService {
	return &UserService{userRepo: userRepo, roles: roles}
}

// GetOrCreateUser возвращает пользователя по ID telegram или регистрирует его как estudiante
func (s *UserService) GetOrCreateUser(ctx context.Context, telegramID int64, username, fullName string) (*model.User, error) {
	// Проверяем, существует ли пользователь
	user, err := s.userRepo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	role, err := s.roles.GetRoleByRoleName(ctx, string(model.RoleEstudiante))
	if err != nil {
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}

	userID, err := s.userRepo.CreateUser(ctx, telegramID, username, fullName, role.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.GetUserByID(ctx, userID)
}

// GetUserByID получает пользователя по ID
func (s *UserService) GetUserByID(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByTelegramID получает пользователя по ID telegram, nil если он не зарегистрирован
func (s *UserService) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.userRepo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by telegram ID: %w", err)
	}
	return user, nil
}

// UpdateUserRole обновляет роль пользователя в базе данных
func (s *UserService) UpdateUserRole(ctx context.Context, username string, roleName string) (int, error) {
	role, err := s.roles.GetRoleByRoleName(ctx, roleName)
	if err != nil {
		return 0, fmt.Errorf("failed to get role by name: %w", err)
	}

	userID, err := s.userRepo.UpdateUserRole(ctx, username, role.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update user role: %w", err)
	}

	return userID, nil
}

// DeleteUser удаляет пользователя
func (s *UserService) DeleteUser(ctx context.Context, userID int) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
