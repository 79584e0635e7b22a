package handlers

import (
	"net/http"

	"expensepro/internal/auth"
	"expensepro/internal/config"
	"expensepro/internal/db"
	"expensepro/internal/logging"
	"expensepro/internal/middleware"
	"expensepro/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type Handler struct {
	cfg          config.Config
	log          zerolog.Logger
	txRunner     db.TxRunner
	roles        middleware.RoleStore
	authService  AuthService
	transactions TransactionService
	userService  UserService
	settings     SettingsService
	categories   CategoryService
	stats        StatsService
	backup       BackupService
	export       ExportService
	files        FileService
	logStore     LogStore
	hub          *websocket.Hub
}

func New(cfg config.Config, log zerolog.Logger, txRunner db.TxRunner, roles middleware.RoleStore, authService AuthService, transactions TransactionService, userService UserService, settings SettingsService, categories CategoryService, stats StatsService, backup BackupService, export ExportService, files FileService, logStore LogStore, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:          cfg,
		log:          log,
		txRunner:     txRunner,
		roles:        roles,
		authService:  authService,
		transactions: transactions,
		userService:  userService,
		settings:     settings,
		categories:   categories,
		stats:        stats,
		backup:       backup,
		export:       export,
		files:        files,
		logStore:     logStore,
		hub:          hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(logging.RequestLogger(h.log))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authed := middleware.Auth(h.cfg.JWTSecret)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.With(authed).Post("/logout", h.Logout)
		r.With(authed).Get("/me", h.Me)
		r.With(authed).Put("/profile", h.UpdateProfile)
		r.With(authed).Post("/change-password", h.ChangePassword)
	})

	router.Route("/transactions", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", h.ListTransactions)
		r.Post("/", h.CreateTransaction)
		r.Get("/export.csv", h.ExportTransactionsCSV)
		r.Post("/bulk", h.BulkTransactions)
		r.Get("/{id}", h.GetTransaction)
		r.Put("/{id}", h.UpdateTransaction)
		r.Delete("/{id}", h.DeleteTransaction)
		r.Post("/{id}/status", h.SetTransactionStatus)
	})

	router.With(authed).Get("/stats", h.Stats)
	router.With(authed).Get("/settings", h.ListSettings)
	router.With(authed).Get("/settings/{key}", h.GetSetting)
	router.With(authed).Get("/categories", h.ListCategories)

	router.Route("/files", func(r chi.Router) {
		r.Use(authed)
		r.Post("/", h.UploadFile)
		r.Get("/", h.ListFiles)
		r.Get("/{id}", h.GetFile)
		r.Delete("/{id}", h.DeleteFile)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(authed)
		r.Use(middleware.RequireAdmin(h.roles))
		r.Get("/stats", h.AdminStats)
		r.Get("/users", h.AdminListUsers)
		r.Post("/users", h.AdminCreateUser)
		r.Get("/users/{username}", h.AdminGetUser)
		r.Put("/users/{username}", h.AdminUpdateUser)
		r.Delete("/users/{username}", h.AdminDeleteUser)
		r.Put("/settings/{key}", h.SetSetting)
		r.Post("/categories", h.CreateCategory)
		r.Put("/categories/{id}", h.UpdateCategory)
		r.Delete("/categories/{id}", h.DeleteCategory)
		r.Get("/logs", h.ListLogs)
		r.Get("/logs/export.csv", h.ExportLogsCSV)
		r.Delete("/logs", h.ClearLogs)
		r.Get("/backup", h.ExportBackup)
		r.Post("/backup/restore", h.RestoreBackup)
		r.Post("/clear-data", h.ClearData)
	})

	router.Get("/ws/transactions", h.WSTransactions)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}

// WSTransactions authenticates via the token query parameter; browsers
// cannot set headers on websocket upgrades.
func (h *Handler) WSTransactions(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.Username)
}
