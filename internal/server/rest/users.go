package rest

import (
	"net/http"

	"github.com/dmitrijs2005/cosmospt/internal/server/services"
	"github.com/gorilla/mux"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type createUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Points   *int   `json:"points"`
}

type pointsRequest struct {
	PointsToAdd *int `json:"pointsToAdd"`
}

type quizRequest struct {
	QuizID string `json:"quizId"`
}

type visitRequest struct {
	PlanetID string `json:"planetId"`
}

type unlockRequest struct {
	AchievementID string `json:"achievementId"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := h.users.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := h.users.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := h.users.CreateUser(r.Context(), services.CreateUserInput{
		Name:     req.Name,
		Password: req.Password,
		Points:   req.Points,
	})
	if err != nil {
		h.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) AddPoints(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if err := decodeJSON(r, &req); err != nil || req.PointsToAdd == nil {
		writeError(w, http.StatusBadRequest, "pointsToAdd is required")
		return
	}

	u, err := h.engine.AwardPoints(r.Context(), mux.Vars(r)["id"], *req.PointsToAdd)
	if err != nil {
		h.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(r, &req); err != nil || req.QuizID == "" {
		writeError(w, http.StatusBadRequest, "quizId is required")
		return
	}

	u, err := h.engine.CompleteQuiz(r.Context(), mux.Vars(r)["id"], req.QuizID)
	if err != nil {
		h.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) VisitPlanet(w http.ResponseWriter, r *http.Request) {
	var req visitRequest
	if err := decodeJSON(r, &req); err != nil || req.PlanetID == "" {
		writeError(w, http.StatusBadRequest, "planetId is required")
		return
	}

	u, err := h.engine.VisitPlanet(r.Context(), mux.Vars(r)["id"], req.PlanetID)
	if err != nil {
		h.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) UnlockAchievement(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := h.engine.UnlockAchievement(r.Context(), mux.Vars(r)["id"], req.AchievementID)
	if err != nil {
		h.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
