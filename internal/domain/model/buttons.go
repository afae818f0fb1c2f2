package model

// Константы для кнопок. Привязаны к названиям обработчиков.
// Не следует изменять константы без изменения регистрации обработчиков в app.
const (
	SimulacrosKey = "simulacros"
	ProgressKey   = "progress"
	BankKey       = "bank"

	SimStartKey  = "sim_start"
	SimAnswerKey = "sim_answer"
	SimNavKey    = "sim_nav"
	SimFinishKey = "sim_finish"
	SimCloseKey  = "sim_close"
	SimReviewKey = "sim_review"
)

// DeepLinkPrefix префикс payload команды /start для прямого запуска симулякра
const DeepLinkPrefix = "sim_"
