// Package rest exposes the CosmosPT HTTP API over gorilla/mux.
package rest

import (
	"net/http"

	"github.com/dmitrijs2005/cosmospt/internal/logging"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/dmitrijs2005/cosmospt/internal/server/progression"
	"github.com/dmitrijs2005/cosmospt/internal/server/services"
	"github.com/gorilla/mux"
)

type Handler struct {
	users       *services.UserService
	catalog     *services.CatalogService
	activities  *services.ActivityService
	engine      *progression.Engine
	logger      logging.Logger
	requireAuth bool
}

func NewHandler(
	us *services.UserService,
	cs *services.CatalogService,
	as *services.ActivityService,
	engine *progression.Engine,
	logger logging.Logger,
	requireAuth bool,
) *Handler {
	return &Handler{
		users:       us,
		catalog:     cs,
		activities:  as,
		engine:      engine,
		logger:      logger.With("module", "rest"),
		requireAuth: requireAuth,
	}
}

// NewRouter mounts every route at the root and again under /api.
func NewRouter(h *Handler, allowedOrigin string) http.Handler {
	r := mux.NewRouter()

	h.register(r)
	h.register(r.PathPrefix("/api").Subrouter())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})

	return loggingMiddleware(h.logger)(corsMiddleware(allowedOrigin)(r))
}

func (h *Handler) register(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	// Users
	r.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)

	owner := r.PathPrefix("/users/{id}").Subrouter()
	owner.Use(h.requireOwner)
	owner.HandleFunc("/points", h.AddPoints).Methods(http.MethodPut)
	owner.HandleFunc("/quiz", h.CompleteQuiz).Methods(http.MethodPut)
	owner.HandleFunc("/visit", h.VisitPlanet).Methods(http.MethodPut)
	owner.HandleFunc("/unlock", h.UnlockAchievement).Methods(http.MethodPut)
	owner.HandleFunc("/quizzes/{quizId}/submit", h.SubmitQuiz).Methods(http.MethodPost)
	owner.HandleFunc("/missions/{missionId}/play", h.PlayMission).Methods(http.MethodPost)

	// Catalog
	fetch := r.PathPrefix("/fetch").Subrouter()
	fetch.HandleFunc("/getQuiz", h.listCatalog(models.CollectionQuizzes)).Methods(http.MethodGet)
	fetch.HandleFunc("/getMission", h.listCatalog(models.CollectionMissions)).Methods(http.MethodGet)
	fetch.HandleFunc("/getDestination", h.listCatalog(models.CollectionDestinations)).Methods(http.MethodGet)
	fetch.HandleFunc("/getVehicles", h.listCatalog(models.CollectionVehicles)).Methods(http.MethodGet)
	fetch.HandleFunc("/getLabs", h.listCatalog(models.CollectionLabs)).Methods(http.MethodGet)

	// Travel
	r.HandleFunc("/travel/estimate", h.EstimateTravel).Methods(http.MethodGet)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
