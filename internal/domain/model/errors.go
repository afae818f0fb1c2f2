package model

import "errors"

var (
	// ErrNotFound возвращается репозиториями, когда запись отсутствует
	ErrNotFound    = errors.New("not found")
	ErrUnknownRole = errors.New("unknown role")
	ErrEmptyName   = errors.New("name is required")
)
