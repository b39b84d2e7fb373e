package rest

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/gorilla/mux"
)

type submitQuizRequest struct {
	Answers []int `json:"answers"`
}

type playMissionRequest struct {
	Choices []int `json:"choices"`
}

// listCatalog serves a whole collection as a JSON array.
func (h *Handler) listCatalog(c models.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := h.catalog.List(r.Context(), c)
		if err != nil {
			h.logger.Error(r.Context(), "error fetching catalog", "collection", string(c), "error", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		writeJSON(w, http.StatusOK, docs)
	}
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req submitQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	vars := mux.Vars(r)
	res, err := h.activities.SubmitQuiz(r.Context(), vars["id"], vars["quizId"], req.Answers)
	if err != nil {
		h.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) PlayMission(w http.ResponseWriter, r *http.Request) {
	var req playMissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	vars := mux.Vars(r)
	res, err := h.activities.PlayMission(r.Context(), vars["id"], vars["missionId"], req.Choices)
	if err != nil {
		h.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) EstimateTravel(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, to, vehicle := q.Get("from"), q.Get("to"), q.Get("vehicle")
	if from == "" || to == "" || vehicle == "" {
		writeError(w, http.StatusBadRequest, "from, to and vehicle are required")
		return
	}

	multiplier := 1.0
	if s := q.Get("multiplier"); s != "" {
		m, err := strconv.ParseFloat(s, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "multiplier must be a number")
			return
		}
		multiplier = m
	}

	e, err := h.activities.EstimateTravel(r.Context(), from, to, vehicle, multiplier)
	if err != nil {
		h.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, e)
}
