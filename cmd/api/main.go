package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/hruskam/roomledger/internal/account"
	"github.com/hruskam/roomledger/internal/config"
	"github.com/hruskam/roomledger/internal/database"
	"github.com/hruskam/roomledger/internal/expense"
	"github.com/hruskam/roomledger/internal/group"
	"github.com/hruskam/roomledger/internal/ledger/split"
	"github.com/hruskam/roomledger/internal/notification"
	"github.com/hruskam/roomledger/internal/notify"
	"github.com/hruskam/roomledger/internal/user"
	"github.com/hruskam/roomledger/pkg/logging"
	mw "github.com/hruskam/roomledger/pkg/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database")

	// Settlement notification channels: activate everything the factory
	// can build, log what it could not
	notifierFactory := notify.NewFactory(notify.Config{
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
		SMSRecipient: cfg.SMSRecipient,
	})
	dispatch := notify.NewService(notifierFactory)
	dispatch.ActivateAll()
	slog.Info("notification channels active", "types", dispatch.ActiveTypes())

	// Debt computation entry point, equal split by default
	accounts := account.NewManager(nil)
	splitFactory := split.NewFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, userRepo)
	groupHandler := group.NewHandler(groupService)

	// Notification inbox feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Expense feature (split factory + account manager injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupRepo, accounts, splitFactory, dispatch, notificationService)
	expenseHandler := expense.NewHandler(expenseService)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes; registration stays outside the identity requirement
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(mw.Identity)
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/notifications", notificationHandler.Routes())
		})
	})

	slog.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
