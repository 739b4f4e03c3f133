package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/middleware"
	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

const (
	loginAttempts = 5
	loginWindow   = 15 * time.Minute
)

type Deps struct {
	Store          repository.Storage
	Logger         zerolog.Logger
	Metrics        *middleware.Metrics
	JWTSecret      string
	AuthRequired   bool
	APIKey         string
	AllowedOrigins string
	DemoUserID     int64

	// Now overrides the wall clock used to stamp workout completion.
	Now func() time.Time
}

func NewRouter(d Deps) *mux.Router {
	authHandler := NewAuthHandler(d.JWTSecret, d.Store)
	goalHandler := NewGoalHandler(d.Store)
	workoutHandler := NewWorkoutHandler(d.Store)
	nutritionHandler := NewNutritionHandler(d.Store)
	activityHandler := NewActivityHandler(d.Store)
	statHandler := NewStatHandler(d.Store)
	tipHandler := NewTipHandler(d.Store)

	if d.Now != nil {
		workoutHandler.now = d.Now
		statHandler.today = func() domain.Date { return domain.DateOf(d.Now()) }
	}

	loginRL := middleware.NewRateLimiter(loginAttempts, loginWindow)

	r := mux.NewRouter()

	r.Use(middleware.CORSMiddleware(d.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.BodyLimit)
	r.Use(middleware.RequestLogger(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet, http.MethodOptions)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.APIKeyMiddleware(d.APIKey))

	api.Handle("/auth/register", http.HandlerFunc(authHandler.Register)).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/login", loginRL.Middleware(http.HandlerFunc(authHandler.Login))).Methods(http.MethodPost, http.MethodOptions)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Identity(d.JWTSecret, d.AuthRequired, d.DemoUserID))

	protected.HandleFunc("/user", authHandler.Me).Methods(http.MethodGet, http.MethodOptions)

	protected.HandleFunc("/goals", goalHandler.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/goals", goalHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/goals/{id}", goalHandler.Update).Methods(http.MethodPatch, http.MethodOptions)
	protected.HandleFunc("/goals/{id}", goalHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)

	protected.HandleFunc("/workouts", workoutHandler.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/workouts", workoutHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/workouts/{id}", workoutHandler.Update).Methods(http.MethodPatch, http.MethodOptions)
	protected.HandleFunc("/workouts/{id}", workoutHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)

	protected.HandleFunc("/nutrition", nutritionHandler.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/nutrition", nutritionHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/nutrition/{id}", nutritionHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)

	protected.HandleFunc("/activities", activityHandler.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/activities", activityHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/activities/{id}", activityHandler.Update).Methods(http.MethodPatch, http.MethodOptions)
	protected.HandleFunc("/activities/{id}", activityHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)

	protected.HandleFunc("/stats", statHandler.Get).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/stats", statHandler.Upsert).Methods(http.MethodPost, http.MethodOptions)

	protected.HandleFunc("/tips", tipHandler.List).Methods(http.MethodGet, http.MethodOptions)

	return r
}
