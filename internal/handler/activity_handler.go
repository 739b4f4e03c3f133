package handler

import (
	"net/http"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

type ActivityHandler struct {
	store repository.Storage
}

func NewActivityHandler(store repository.Storage) *ActivityHandler {
	return &ActivityHandler{store: store}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	date, ok, err := queryDate(r)
	if err != nil {
		writeFailure(w, r, err, "failed to fetch activity logs")
		return
	}
	var filter *domain.Date
	if ok {
		filter = &date
	}

	logs, err := h.store.GetActivityLogs(r.Context(), callerID(r), filter)
	if err != nil {
		writeFailure(w, r, err, "failed to fetch activity logs")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ActivityLogRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err, "failed to create activity log")
		return
	}

	entry, err := h.store.CreateActivityLog(r.Context(), req.ToNewActivityLog(callerID(r)))
	if err != nil {
		writeFailure(w, r, err, "failed to create activity log")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid activity log id")
		return
	}

	var patch domain.ActivityLogPatch
	if err := decodeBody(r, &patch); err != nil {
		writeFailure(w, r, err, "failed to update activity log")
		return
	}

	entry, err := h.store.UpdateActivityLog(r.Context(), id, patch)
	if err != nil {
		writeFailure(w, r, err, "failed to update activity log")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "activity log not found")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid activity log id")
		return
	}

	if _, err := h.store.DeleteActivityLog(r.Context(), id); err != nil {
		writeFailure(w, r, err, "failed to delete activity log")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
