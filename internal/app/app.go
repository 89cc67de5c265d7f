package app

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/telebot.v4"

	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/attempt_quiz_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/attempt_report_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/chapters_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/login_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/profile_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/questions_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/quiz_result_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/quizzes_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/register_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/statistics_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/subject_quizzes_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/subjects_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/submit_answer_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/user_statistics_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/http/users_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/telegram/answer_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/telegram/quiz_list_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/telegram/start_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/handlers/telegram/start_quiz_handler"
	tgSubjects "github.com/quizmasterhq/quizmaster/internal/app/handlers/telegram/subjects_handler"
	"github.com/quizmasterhq/quizmaster/internal/app/middleware"
	attemptsRepo "github.com/quizmasterhq/quizmaster/internal/domain/attempts/repository"
	attemptsService "github.com/quizmasterhq/quizmaster/internal/domain/attempts/service"
	quizzesRepo "github.com/quizmasterhq/quizmaster/internal/domain/quizzes/repository"
	quizzesService "github.com/quizmasterhq/quizmaster/internal/domain/quizzes/service"
	statsRepo "github.com/quizmasterhq/quizmaster/internal/domain/stats/repository"
	statsService "github.com/quizmasterhq/quizmaster/internal/domain/stats/service"
	subjectsRepo "github.com/quizmasterhq/quizmaster/internal/domain/subjects/repository"
	subjectsService "github.com/quizmasterhq/quizmaster/internal/domain/subjects/service"
	usersRepo "github.com/quizmasterhq/quizmaster/internal/domain/users/repository"
	usersService "github.com/quizmasterhq/quizmaster/internal/domain/users/service"
	"github.com/quizmasterhq/quizmaster/internal/infra/config"
	"github.com/quizmasterhq/quizmaster/internal/infra/report"
)

type Services struct {
	userService    *usersService.UserService
	subjectService *subjectsService.SubjectService
	quizService    *quizzesService.QuizService
	attemptService *attemptsService.AttemptService
	statsService   *statsService.StatsService
}

type App struct {
	config    *config.Config
	bot       *telebot.Bot
	db        *pgxpool.Pool
	server    *http.Server
	generator *report.Generator

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

	app := &App{
		config:    configImpl,
		db:        db,
		generator: report.NewGenerator(configImpl.Report.FontsDir),
	}

	app.initServices()

	return app, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices() {
	// Инициализация репозиториев
	userRepo := usersRepo.NewUserRepository(app.db)
	subjectRepo := subjectsRepo.NewSubjectRepository(app.db)
	quizRepo := quizzesRepo.NewQuizRepository(app.db)
	attemptRepo := attemptsRepo.NewAttemptRepository(app.db)
	statisticsRepo := statsRepo.NewStatsRepository(app.db)

	// Инициализация сервисов
	app.userService = usersService.NewUserService(userRepo)
	app.subjectService = subjectsService.NewSubjectService(subjectRepo)
	app.quizService = quizzesService.NewQuizService(quizRepo)
	app.attemptService = attemptsService.NewAttemptService(attemptRepo)
	app.statsService = statsService.NewStatsService(statisticsRepo, app.userService)
}

// ListenAndServeTelegram запускает сервер Telegram бота
func (app *App) ListenAndServeTelegram() error {
	if !app.config.TelegramBot.Enabled {
		log.Println("Telegram bot is disabled")
		return nil
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.bootstrapHandlersTelegram()

	go app.bot.Start()

	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(middleware.Recover())
	app.bot.Use(middleware.Logger())

	app.bot.Handle("/start", start_handler.NewStartHandler(app.userService).GetHandlerFunc())

	// Выбор предмета и квиза через инлайн-кнопки
	app.bot.Handle(&telebot.InlineButton{Unique: "subjects"},
		tgSubjects.NewSubjectsHandler(app.subjectService).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: "subject"},
		quiz_list_handler.NewQuizListHandler(app.userService, app.attemptService).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: "quiz"},
		start_quiz_handler.NewStartQuizHandler(app.userService, app.attemptService).GetHandlerFunc())

	// Ответ на вопрос попытки
	app.bot.Handle(&telebot.InlineButton{Unique: "answer"},
		answer_handler.NewAnswerHandler(app.bot, app.userService, app.attemptService).GetHandlerFunc())
}

// ListenAndServeHTTP запускает HTTP сервер
func (app *App) ListenAndServeHTTP() error {
	secret := app.config.Auth.JWTSecret
	mx := http.NewServeMux()

	tokenTTL := time.Duration(app.config.Auth.TokenTTLMinutes) * time.Minute
	mx.Handle("POST /auth/register", register_handler.NewRegisterHandler(app.userService))
	mx.Handle("POST /auth/login", login_handler.NewLoginHandler(app.userService, secret, tokenTTL))

	// Профиль текущего пользователя
	mx.Handle("GET /profile", middleware.RequireUser(secret, profile_handler.NewGetHandler(app.userService)))
	mx.Handle("PUT /profile", middleware.RequireUser(secret, profile_handler.NewUpdateHandler(app.userService)))

	// Предметы и главы
	mx.Handle("GET /subjects", middleware.RequireUser(secret, subjects_handler.NewListHandler(app.subjectService)))
	mx.Handle("GET /subjects/{id}", middleware.RequireUser(secret, subjects_handler.NewGetHandler(app.subjectService)))
	mx.Handle("POST /subjects", middleware.RequireAdmin(secret, subjects_handler.NewCreateHandler(app.subjectService)))
	mx.Handle("PUT /subjects/{id}", middleware.RequireAdmin(secret, subjects_handler.NewUpdateHandler(app.subjectService)))
	mx.Handle("DELETE /subjects/{id}", middleware.RequireAdmin(secret, subjects_handler.NewDeleteHandler(app.subjectService)))
	mx.Handle("POST /subjects/{id}/chapters", middleware.RequireAdmin(secret, chapters_handler.NewCreateHandler(app.subjectService)))
	mx.Handle("PUT /chapters/{id}", middleware.RequireAdmin(secret, chapters_handler.NewUpdateHandler(app.subjectService)))
	mx.Handle("DELETE /chapters/{id}", middleware.RequireAdmin(secret, chapters_handler.NewDeleteHandler(app.subjectService)))

	// Квизы и вопросы
	mx.Handle("GET /subjects/{id}/quizzes", middleware.RequireUser(secret, subject_quizzes_handler.NewHandler(app.attemptService)))
	mx.Handle("POST /subjects/{id}/quizzes", middleware.RequireAdmin(secret, quizzes_handler.NewCreateHandler(app.quizService)))
	mx.Handle("GET /quizzes/{id}", middleware.RequireUser(secret, quizzes_handler.NewGetHandler(app.quizService)))
	mx.Handle("PUT /quizzes/{id}", middleware.RequireAdmin(secret, quizzes_handler.NewUpdateHandler(app.quizService)))
	mx.Handle("DELETE /quizzes/{id}", middleware.RequireAdmin(secret, quizzes_handler.NewDeleteHandler(app.quizService)))
	mx.Handle("POST /quizzes/{id}/questions", middleware.RequireAdmin(secret, questions_handler.NewCreateHandler(app.quizService)))
	mx.Handle("PUT /questions/{id}", middleware.RequireAdmin(secret, questions_handler.NewUpdateHandler(app.quizService)))
	mx.Handle("DELETE /questions/{id}", middleware.RequireAdmin(secret, questions_handler.NewDeleteHandler(app.quizService)))

	// Прохождение квизов
	mx.Handle("POST /quizzes/{id}/attempt", middleware.RequireUser(secret, attempt_quiz_handler.NewHandler(app.attemptService)))
	mx.Handle("POST /attempts/{id}/answer", middleware.RequireUser(secret, submit_answer_handler.NewHandler(app.attemptService)))
	mx.Handle("GET /attempts/{id}/result", middleware.RequireUser(secret, quiz_result_handler.NewHandler(app.attemptService)))
	mx.Handle("GET /attempts/{id}/report", middleware.RequireUser(secret, attempt_report_handler.NewHandler(app.attemptService, app.userService, app.generator)))

	// Пользователи и статистика
	mx.Handle("GET /users", middleware.RequireAdmin(secret, users_handler.NewListHandler(app.userService)))
	mx.Handle("DELETE /users/{id}", middleware.RequireAdmin(secret, users_handler.NewDeleteHandler(app.userService)))
	mx.Handle("GET /statistics", middleware.RequireAdmin(secret, statistics_handler.NewHandler(app.statsService)))
	mx.Handle("GET /users/{id}/statistics", middleware.RequireAdmin(secret, user_statistics_handler.NewHandler(app.statsService)))
	mx.Handle("GET /performance", middleware.RequireUser(secret, user_statistics_handler.NewHandler(app.statsService)))

	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler: mx,
	}

	return app.server.ListenAndServe()
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
