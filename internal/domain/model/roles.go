package model

import (
	"fmt"
	"strings"
)

// Role закрытое перечисление ролей платформы
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleProfesor   Role = "profesor"
	RoleEstudiante Role = "estudiante"
)

// ParseRole разбирает имя роли
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProfesor, RoleEstudiante:
		return true
	}
	return false
}

// CanManageContent предметы, вопросы, длительность симулякров
func CanManageContent(r Role) bool {
	return r == RoleAdmin || r == RoleProfesor
}

// CanManageUsers смена ролей и удаление пользователей
func CanManageUsers(r Role) bool {
	return r == RoleAdmin
}

// CanTakeSimulacro симулякры доступны всем ролям
func CanTakeSimulacro(r Role) bool {
	return r.Valid()
}

// CanViewProgressOf студент видит только свой прогресс, преподаватель и админ - любой
func CanViewProgressOf(r Role, viewerID, targetID int) bool {
	if CanManageContent(r) {
		return true
	}
	return r.Valid() && viewerID == targetID
}

// RoleRecord строка таблицы roles
type RoleRecord struct {
	ID   int    `json:"id"`
	Name string `json:"role_name"`
}
