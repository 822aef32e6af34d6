package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/amble-health/amble/internal/auth"
	"github.com/amble-health/amble/internal/blob"
	"github.com/amble-health/amble/internal/config"
	"github.com/amble-health/amble/internal/grocery"
	"github.com/amble-health/amble/internal/planner"
	"github.com/amble-health/amble/internal/prefs"
	"github.com/amble-health/amble/internal/reports"
	"github.com/amble-health/amble/internal/storage"
	"github.com/amble-health/amble/internal/storage/memory"
	"github.com/amble-health/amble/internal/storage/postgres"
	"github.com/amble-health/amble/internal/suggest"
	"github.com/amble-health/amble/internal/vitals"
)

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	authMiddleware *auth.Middleware
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	// Инициализируем storage
	s.initStorage()

	// Регистрируем маршруты
	s.routes()
	return s
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Используется in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("Подключение к PostgreSQL...")
	ctx := context.Background()
	pgStorage, err := postgres.New(ctx, s.config.DatabaseURL)
	if err != nil {
		log.Printf("Ошибка подключения к PostgreSQL: %v", err)
		log.Println("Fallback на in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("PostgreSQL подключен успешно")
	s.storage = pgStorage
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Diet Preferences API
	prefsService := prefs.NewService(s.storage, s.storage, prefs.Defaults{
		DietName:     s.config.DefaultDietName,
		CaloriesGoal: s.config.DailyCalorieGoal,
	})
	prefsHandler := prefs.NewHandler(prefsService)

	// GET /v1/user/preference - active diet preference (or synthesized default)
	s.mux.HandleFunc("GET /v1/user/preference", prefsHandler.HandleGet)

	// POST /v1/user/preference - update active diet
	s.mux.HandleFunc("POST /v1/user/preference", prefsHandler.HandleUpdate)

	// GET /v1/diet-plans - diet catalog
	s.mux.HandleFunc("GET /v1/diet-plans", prefsHandler.HandleDietPlans)

	// Nutrition totals
	aggregator := vitals.NewAggregator(s.storage, vitals.Goals{
		DailyCalories: s.config.DailyCalorieGoal,
		DailyProtein:  s.config.DailyProteinGoal,
	})
	vitalsHandler := vitals.NewHandler(aggregator)

	// GET /v1/user/daily-totals - in-memory daily aggregate
	s.mux.HandleFunc("GET /v1/user/daily-totals", vitalsHandler.HandleDailyTotals)

	// POST /v1/vitals/reconcile - reload totals from storage
	s.mux.HandleFunc("POST /v1/vitals/reconcile", vitalsHandler.HandleReconcile)

	// Meal plan API
	plannerService := planner.NewService(s.storage, aggregator, s.config.DefaultMealTime)
	plannerHandler := planner.NewHandler(plannerService)

	// POST /v1/plan/accept - persist the live candidate
	s.mux.HandleFunc("POST /v1/plan/accept", plannerHandler.HandleAccept)

	// POST /v1/plan/cancel - drop the live candidate
	s.mux.HandleFunc("POST /v1/plan/cancel", plannerHandler.HandleCancel)

	// GET /v1/plan/week - weekly plan snapshot
	s.mux.HandleFunc("GET /v1/plan/week", plannerHandler.HandleWeek)

	// Meal suggestion API
	suggestService := suggest.NewService(s.storage)
	suggestHandler := suggest.NewHandler(suggestService, &activeDietAdapter{prefs: prefsService}, plannerService)

	// GET /v1/meals/suggest - diet-filtered suggestion
	s.mux.HandleFunc("GET /v1/meals/suggest", suggestHandler.HandleSuggest)

	// Grocery API
	groceryHandler := grocery.NewHandler(plannerService)

	// GET /v1/grocery/list - grouped shopping list
	s.mux.HandleFunc("GET /v1/grocery/list", groceryHandler.HandleList)

	// GET /v1/grocery/benefits - ingredient classification
	s.mux.HandleFunc("GET /v1/grocery/benefits", groceryHandler.HandleBenefits)

	// Reports API
	blobStore := s.initBlobStore()
	generator := reports.NewGenerator(plannerService, aggregator)
	reportsService := reports.NewService(
		s.storage,
		generator,
		blobStore,
		s.config.ReportsMaxListLimit,
		s.config.Blob.S3.PresignTTLSeconds,
	)
	reportsHandler := reports.NewHandlers(reportsService)

	// POST /v1/reports - create shopping list export
	s.mux.HandleFunc("POST /v1/reports", reportsHandler.HandleCreate)

	// GET /v1/reports - list exports
	s.mux.HandleFunc("GET /v1/reports", reportsHandler.HandleList)

	// GET /v1/reports/{id}/download - download export
	s.mux.HandleFunc("GET /v1/reports/{id}/download", reportsHandler.HandleDownload)

	// DELETE /v1/reports/{id} - delete export
	s.mux.HandleFunc("DELETE /v1/reports/{id}", reportsHandler.HandleDelete)
}

// initBlobStore initializes the blob store for exported shopping lists.
func (s *Server) initBlobStore() blob.Store {
	log.Printf("INFO blob: initializing store (BLOB_MODE=%s)", s.config.Blob.Mode)
	store, mode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: failed to initialize store: %v", err)
	}
	log.Printf("INFO blob: reports blob mode: %s", mode)
	return store
}

// activeDietAdapter adapts prefs.Service to suggest.DietResolver.
type activeDietAdapter struct {
	prefs *prefs.Service
}

func (a *activeDietAdapter) ActiveDiet(ctx context.Context, userID string) (string, error) {
	pref, err := a.prefs.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return pref.Diet, nil
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler returns the middleware-wrapped root handler.
// Chain (outermost first): CORS → Rate Limit → Auth → Router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	if s.authMiddleware != nil {
		handler = s.authMiddleware.Authenticate(handler)
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	log.Printf("Сервер запущен на http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Suggest API: http://localhost%s/v1/meals/suggest\n", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// Close закрывает storage и освобождает ресурсы
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
