package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porese500/simulacros/internal/app/handlers/http/delete_user_handler"
	"github.com/porese500/simulacros/internal/app/handlers/http/questions_handler"
	"github.com/porese500/simulacros/internal/app/handlers/http/subject_link_handler"
	"github.com/porese500/simulacros/internal/app/handlers/http/subjects_handler"
	"github.com/porese500/simulacros/internal/app/handlers/http/token_handler"
	"github.com/porese500/simulacros/internal/app/handlers/http/update_user_role_handler"
	"github.com/porese500/simulacros/internal/app/handlers/http/user_progress_handler"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/answer_handler"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/bank_handler"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/close_handler"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/finish_handler"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/navigate_handler"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/presenter"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/progress_handler"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/review_handler"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/start_handler"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/start_simulacro_handler"
	tgSubjects "github.com/porese500/simulacros/internal/app/handlers/telegram/subjects_handler"
	"github.com/porese500/simulacros/internal/app/middleware"
	"github.com/porese500/simulacros/internal/domain/model"
	"github.com/porese500/simulacros/internal/infra/auth"
	"github.com/porese500/simulacros/internal/infra/config"
	"github.com/porese500/simulacros/internal/infra/events"
	"github.com/porese500/simulacros/internal/infra/poller"
	"github.com/porese500/simulacros/internal/simulacro"
	httpError "github.com/porese500/simulacros/pkg/http"
	"gopkg.in/telebot.v4"
	telemw "gopkg.in/telebot.v4/middleware"

	msgRepo "github.com/porese500/simulacros/internal/domain/messages/repository"
	msgService "github.com/porese500/simulacros/internal/domain/messages/service"
	questionsRepo "github.com/porese500/simulacros/internal/domain/questions/repository"
	questionsService "github.com/porese500/simulacros/internal/domain/questions/service"
	resultsRepo "github.com/porese500/simulacros/internal/domain/results/repository"
	resultsService "github.com/porese500/simulacros/internal/domain/results/service"
	rolesRepo "github.com/porese500/simulacros/internal/domain/roles/repository"
	rolesService "github.com/porese500/simulacros/internal/domain/roles/service"
	subjectsRepo "github.com/porese500/simulacros/internal/domain/subjects/repository"
	subjectsService "github.com/porese500/simulacros/internal/domain/subjects/service"
	usersRepo "github.com/porese500/simulacros/internal/domain/users/repository"
	usersService "github.com/porese500/simulacros/internal/domain/users/service"
)

type Services struct {
	userService     *usersService.UserService
	messageService  *msgService.MessageService
	roleService     *rolesService.RoleService
	subjectService  *subjectsService.SubjectService
	questionService *questionsService.QuestionService
	resultService   *resultsService.ResultService
}

type App struct {
	config *config.Config
	bot    *telebot.Bot
	db     *pgxpool.Pool
	server *http.Server

	publisher      events.Publisher
	closePublisher func()
	tokens         *auth.Manager
	sessions       *simulacro.Sessions

	Services
}

func NewApp(configPath string) (*App, error) {
	configImpl, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	db, err := InitDatabase(configImpl)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	publisher, closePublisher, err := InitPublisher(configImpl)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize events publisher: %w", err)
	}

	app := &App{
		config:         configImpl,
		db:             db,
		publisher:      publisher,
		closePublisher: closePublisher,
		tokens:         auth.NewManager(configImpl.Auth.JWTSecret, configImpl.TokenTTL()),
		sessions:       simulacro.NewSessions(),
	}

	app.initServices()

	return app, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices() {
	// Инициализация репозиториев
	userRepo := usersRepo.NewUserRepository(app.db)
	messageRepo := msgRepo.NewMessageRepository(app.db)
	roleRepo := rolesRepo.NewRoleRepository(app.db)
	subjectRepo := subjectsRepo.NewSubjectRepository(app.db)
	questionRepo := questionsRepo.NewQuestionRepository(app.db)
	attemptRepo := resultsRepo.NewAttemptRepository(app.db)

	// Инициализация сервисов
	app.roleService = rolesService.NewRoleService(roleRepo)
	app.userService = usersService.NewUserService(userRepo, app.roleService)
	app.messageService = msgService.NewMessageService(messageRepo)
	app.subjectService = subjectsService.NewSubjectService(subjectRepo, questionRepo)
	app.questionService = questionsService.NewQuestionService(questionRepo, app.subjectService)
	app.resultService = resultsService.NewResultService(attemptRepo, app.publisher)
}

// newRunner создает раннер пользователя, который отображает попытку в чате
func (app *App) newRunner(user *model.User, chat telebot.Recipient) *simulacro.Runner {
	ctx := context.Background()
	view := presenter.New(app.bot, chat, presenter.Labels{
		Finish: app.messageService.Text(ctx, model.ButtonFinish),
		Review: app.messageService.Text(ctx, model.ButtonReview),
		Close:  app.messageService.Text(ctx, model.ButtonClose),
	})

	return simulacro.NewRunner(user.ID, simulacro.Deps{
		Store:          app.subjectService,
		Sink:           app.resultService,
		Notifier:       view,
		Observer:       view,
		PersistTimeout: app.config.PersistTimeout(),
	})
}

// ListenAndServeTelegram запускает сервер Telegram бота
func (app *App) ListenAndServeTelegram() error {
	p, err := poller.NewPoller(app.config)
	if err != nil {
		return fmt.Errorf("poller.NewPoller: %w", err)
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: p,
		OnError: func(err error, c telebot.Context) {
			log.Printf("telegram handler error: %v", err)
		},
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.bootstrapHandlersTelegram()

	go app.bot.Start()

	log.Printf("Telegram bot @%s started in %s mode", app.config.TelegramBot.Username, app.config.TelegramBot.Mode)
	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(middleware.Recover())
	if app.config.TelegramBot.Debug {
		app.bot.Use(middleware.Logger())
	}
	app.bot.Use(middleware.TraceActions(app.config.TelegramBot.Debug))
	app.bot.Use(telemw.AutoRespond())

	startSimulacro := start_simulacro_handler.NewStartSimulacroHandler(app.userService, app.messageService, app.sessions, app.newRunner)

	app.bot.Handle("/start", start_handler.NewStartHandler(app.userService, app.messageService, startSimulacro).GetHandlerFunc())

	// Главное меню
	app.bot.Handle(&telebot.InlineButton{Unique: model.SimulacrosKey}, tgSubjects.NewSubjectsHandler(app.subjectService, app.messageService).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.ProgressKey}, progress_handler.NewProgressHandler(app.userService, app.resultService, app.messageService).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.BankKey},
		bank_handler.NewBankHandler(app.userService, app.subjectService, app.messageService, app.config.TelegramBot.Username).GetHandlerFunc())

	// Попытка симулякра. Data кнопок: ID предмета, "qid|opt", направление, ID сессии.
	app.bot.Handle(&telebot.InlineButton{Unique: model.SimStartKey}, startSimulacro.GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.SimAnswerKey}, answer_handler.NewAnswerHandler(app.sessions, app.messageService).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.SimNavKey}, navigate_handler.NewNavigateHandler(app.sessions, app.messageService).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.SimFinishKey}, finish_handler.NewFinishHandler(app.sessions, app.messageService).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.SimReviewKey},
		review_handler.NewReviewHandler(app.sessions, app.messageService, app.config.Reports.Title).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.SimCloseKey}, close_handler.NewCloseHandler(app.sessions).GetHandlerFunc())
}

// Router собирает маршруты HTTP API
func (app *App) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := app.db.Ping(r.Context()); err != nil {
			httpError.ErrorResponse(w, http.StatusServiceUnavailable, "Database connection failed")
			return
		}
		httpError.JSONResponse(w, http.StatusOK, map[string]any{
			"status":           "ok",
			"running_attempts": app.sessions.Running(),
		})
	}).Methods(http.MethodGet)

	r.Handle("/auth/token", token_handler.NewTokenHandler(app.userService, app.tokens, app.config.Auth.AdminKey)).Methods(http.MethodPost)

	subjects := subjects_handler.NewSubjectsHandler(app.subjectService)
	r.HandleFunc("/subjects", subjects.List).Methods(http.MethodGet)
	r.Handle("/subjects", middleware.RequireFunc(model.CanManageContent, subjects.Create)).Methods(http.MethodPost)
	r.Handle("/subjects/{id}/duration", middleware.RequireFunc(model.CanManageContent, subjects.UpdateDuration)).Methods(http.MethodPut)
	r.Handle("/subjects/{id}/link",
		middleware.Require(model.CanManageContent, subject_link_handler.NewSubjectLinkHandler(app.subjectService, app.config.TelegramBot.Username))).Methods(http.MethodGet)

	questions := questions_handler.NewQuestionsHandler(app.questionService)
	r.Handle("/subjects/{id}/questions", middleware.RequireFunc(model.CanManageContent, questions.List)).Methods(http.MethodGet)
	r.Handle("/subjects/{id}/questions", middleware.RequireFunc(model.CanManageContent, questions.Create)).Methods(http.MethodPost)
	r.Handle("/questions/{id}/active", middleware.RequireFunc(model.CanManageContent, questions.SetActive)).Methods(http.MethodPatch)

	r.Handle("/users/{id}/progress", user_progress_handler.NewUserProgressHandler(app.resultService)).Methods(http.MethodGet)
	r.Handle("/users/update_role", middleware.Require(model.CanManageUsers, update_user_role_handler.NewUpdateUserRoleHandler(app.userService))).Methods(http.MethodPost)
	r.Handle("/users/{id}", middleware.Require(model.CanManageUsers, delete_user_handler.NewDeleteUserHandler(app.userService))).Methods(http.MethodDelete)

	// Проверка токена для всех запросов, кроме служебных
	r.Use(middleware.Authenticate(app.tokens, "/health", "/auth/token"))

	return r
}

// ListenAndServeHTTP запускает HTTP сервер
func (app *App) ListenAndServeHTTP() error {
	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler: app.Router(),
	}

	log.Printf("HTTP server listening on %s", app.server.Addr)
	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe запускает оба сервера (Telegram и HTTP)
func (app *App) ListenAndServe() error {
	// Запускаем Telegram сервер
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}

	// Запускаем HTTP сервер
	if err := app.ListenAndServeHTTP(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown останавливает бота и HTTP сервер. Идущие попытки закрываются без записи результата.
func (app *App) Shutdown(ctx context.Context) error {
	if app.bot != nil {
		app.bot.Stop()
	}

	var err error
	if app.server != nil {
		if shutdownErr := app.server.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("failed to shutdown HTTP server: %w", shutdownErr)
		}
	}

	app.sessions.Shutdown()
	app.closePublisher()
	app.db.Close()

	return err
}
