package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porese500/simulacros/internal/domain/model"
)

// RoleRepository репозиторий для работы с ролями
type RoleRepository struct {
	db *pgxpool.Pool
}

// NewRoleRepository создает новый экземпляр RoleRepository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetRoleByRoleName получает роль по имени роли
func (r *RoleRepository) GetRoleByRoleName(ctx context.Context, roleName string) (*model.RoleRecord, error) {
	var role model.RoleRecord
	err := r.db.QueryRow(ctx, "SELECT id, role_name FROM roles WHERE role_name=$1", roleName).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return &role, nil
}
