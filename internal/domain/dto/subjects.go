package dto

// SubjectSummary предмет для меню бота и списка API
type SubjectSummary struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DurationSeconds int    `json:"duration_seconds"`
	QuestionCount   int    `json:"question_count"`
}

// CreateSubjectRequest тело POST /subjects
type CreateSubjectRequest struct {
	Name            string `json:"name"`
	DurationSeconds int    `json:"duration_seconds"`
}

// UpdateDurationRequest тело PUT /subjects/{id}/duration
type UpdateDurationRequest struct {
	DurationSeconds int `json:"duration_seconds"`
}

// SubjectLinkResponse ссылка для запуска симулякра и QR-код в base64
type SubjectLinkResponse struct {
	Link      string `json:"link"`
	QRCodePNG string `json:"qr_code_png"`
}
