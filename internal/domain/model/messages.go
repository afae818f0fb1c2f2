package model

// Ключи текстов бота в таблице messages
const (
	MsgWelcome          = "welcome"
	MsgChooseSubject    = "choose_subject"
	MsgNoSubjects       = "no_subjects"
	MsgNoQuestions      = "no_questions"
	MsgAlreadyRunning   = "already_running"
	MsgNotRunning       = "not_running"
	MsgTimeUp           = "time_up"
	MsgResultSaveFailed = "result_save_failed"
	MsgNoProgress       = "no_progress"
	MsgForbidden        = "forbidden"
	MsgUnknownError     = "unknown_error"

	ButtonSimulacros = "button_simulacros"
	ButtonProgress   = "button_progress"
	ButtonBank       = "button_bank"
	ButtonFinish     = "button_finish"
	ButtonReview     = "button_review"
	ButtonClose      = "button_close"
)
