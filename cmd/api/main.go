package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fixpointhq/fixpoint-backend/internal/modules/auth"
	"github.com/fixpointhq/fixpoint-backend/internal/modules/category"
	"github.com/fixpointhq/fixpoint-backend/internal/modules/employee"
	"github.com/fixpointhq/fixpoint-backend/internal/modules/sale"
	"github.com/fixpointhq/fixpoint-backend/internal/modules/stock"
	"github.com/fixpointhq/fixpoint-backend/internal/modules/store"
	"github.com/fixpointhq/fixpoint-backend/internal/modules/ticket"
	"github.com/fixpointhq/fixpoint-backend/internal/modules/timeclock"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("opening database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("pinging database", zap.Error(err))
	}
	logger.Info("connected to database")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(logger))

	// ── Repositories ────────────────────────────────────────
	storeRepo := store.NewPostgresRepository(db)
	employeeRepo := employee.NewPostgresRepository(db)
	categoryRepo := category.NewPostgresRepository(db)
	ticketRepo := ticket.NewPostgresRepository(db)
	stockRepo := stock.NewPostgresRepository(db)
	saleRepo := sale.NewPostgresRepository(db)
	timeclockRepo := timeclock.NewPostgresRepository(db)

	// ── Public: registration & login ────────────────────────
	authService := auth.NewService(storeRepo, employeeRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Protected: everything scoped to a store ─────────────
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.JWTSecret))

		store.NewHandler(store.NewService(storeRepo, logger)).RegisterRoutes(r)
		employee.NewHandler(employee.NewService(employeeRepo, logger)).RegisterRoutes(r)
		category.NewHandler(category.NewService(categoryRepo)).RegisterRoutes(r)
		ticket.NewHandler(ticket.NewService(ticketRepo, employeeRepo, logger)).RegisterRoutes(r)
		stock.NewHandler(stock.NewService(stockRepo, categoryRepo, cfg.AllowNegativeStock, logger)).RegisterRoutes(r)
		sale.NewHandler(sale.NewService(saleRepo, ticketRepo, logger)).RegisterRoutes(r)
		timeclock.NewHandler(timeclock.NewService(timeclockRepo)).RegisterRoutes(r)
	})

	// ── Start Server ────────────────────────────────────────
	logger.Info("api server starting", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// requestLogger emits one structured line per request.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
