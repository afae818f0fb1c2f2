package model

import "time"

type User struct {
	ID               int       `json:"id"`
	Role             Role      `json:"role"`
	TelegramID       *int64    `json:"telegram_id,omitempty"`
	TelegramUsername string    `json:"telegram_username"`
	FullName         *string   `json:"full_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
