package dto

// CreateQuestionRequest тело POST /subjects/{id}/questions
type CreateQuestionRequest struct {
	Body          string  `json:"body"`
	OptionA       string  `json:"option_a"`
	OptionB       string  `json:"option_b"`
	OptionC       string  `json:"option_c"`
	OptionD       string  `json:"option_d"`
	CorrectOption string  `json:"correct_option"`
	ImageURL      *string `json:"image_url,omitempty"`
}

// SetActiveRequest тело PATCH /questions/{id}/active
type SetActiveRequest struct {
	Active bool `json:"active"`
}
