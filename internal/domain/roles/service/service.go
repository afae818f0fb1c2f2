package service

import (
	"context"
	"fmt"

	"github.com/porese500/simulacros/internal/domain/model"
)

// RoleRepository хранилище ролей
type RoleRepository interface {
	GetRoleByRoleName(ctx context.Context, roleName string) (*model.RoleRecord, error)
}

// RoleService для работы с ролями
type RoleService struct {
	roleRepo RoleRepository
}

// NewRoleService создает новый экземпляр RoleService
func NewRoleService(roleRepo RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// GetRoleByRoleName получает роль по имени. Имена вне закрытого набора ролей отклоняются без запроса к базе.
func (s *RoleService) GetRoleByRoleName(ctx context.Context, roleName string) (*model.RoleRecord, error) {
	role, err := model.ParseRole(roleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrNotFound, err)
	}
	return s.roleRepo.GetRoleByRoleName(ctx, string(role))
}
