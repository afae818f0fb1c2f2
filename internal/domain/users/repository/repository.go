package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porese500/simulacros/internal/domain/model"
)

const selectUser = `
	SELECT u.id, r.role_name, u.telegram_id, u.telegram_username, u.full_name, u.created_at, u.updated_at
	FROM users u
	JOIN roles r ON r.id = u.role_id`

// UserRepository реализация интерфейса с использованием базы данных PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserByTelegramID ищет пользователя по ID telegram. Если пользователя нет, возвращает nil без ошибки.
func (r *UserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, selectUser+" WHERE u.telegram_id = $1", telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by telegram ID: %w", err)
	}
	return user, nil
}

// GetUserByID получает пользователя по ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID int) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, selectUser+" WHERE u.id = $1", userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// CreateUser создает нового пользователя в базе данных
func (r *UserRepository) CreateUser(ctx context.Context, telegramID int64, username, fullName string, roleID int) (int, error) {
	var userID int
	err := r.db.QueryRow(ctx,
		"INSERT INTO users (telegram_id, telegram_username, full_name, role_id) VALUES ($1, $2, NULLIF($3, ''), $4) RETURNING id",
		telegramID, username, fullName, roleID).
		Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return userID, nil
}

// UpdateUserRole обновляет роль пользователя по Telegram-username
func (r *UserRepository) UpdateUserRole(ctx context.Context, username string, roleID int) (int, error) {
	var userID int
	err := r.db.QueryRow(ctx,
		"UPDATE users SET role_id=$1, updated_at=CURRENT_TIMESTAMP WHERE telegram_username=$2 RETURNING id",
		roleID, username).
		Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrNotFound
		}
		return 0, fmt.Errorf("failed to update user role: %w", err)
	}
	return userID, nil
}

// DeleteUser удаляет пользователя вместе с историей попыток
func (r *UserRepository) DeleteUser(ctx context.Context, userID int) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id=$1", userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	var role string
	err := row.Scan(&user.ID, &role, &user.TelegramID, &user.TelegramUsername, &user.FullName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.Role = model.Role(role)
	return &user, nil
}
