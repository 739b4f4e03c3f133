package handler

import (
	"net/http"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

type NutritionHandler struct {
	store repository.Storage
}

func NewNutritionHandler(store repository.Storage) *NutritionHandler {
	return &NutritionHandler{store: store}
}

func (h *NutritionHandler) List(w http.ResponseWriter, r *http.Request) {
	date, ok, err := queryDate(r)
	if err != nil {
		writeFailure(w, r, err, "failed to fetch nutrition logs")
		return
	}
	var filter *domain.Date
	if ok {
		filter = &date
	}

	logs, err := h.store.GetNutritionLogs(r.Context(), callerID(r), filter)
	if err != nil {
		writeFailure(w, r, err, "failed to fetch nutrition logs")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *NutritionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.NutritionLogRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err, "failed to create nutrition log")
		return
	}

	entry, err := h.store.CreateNutritionLog(r.Context(), req.ToNewNutritionLog(callerID(r)))
	if err != nil {
		writeFailure(w, r, err, "failed to create nutrition log")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Delete answers 204 whether or not the log existed.
func (h *NutritionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid nutrition log id")
		return
	}

	if _, err := h.store.DeleteNutritionLog(r.Context(), id); err != nil {
		writeFailure(w, r, err, "failed to delete nutrition log")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
