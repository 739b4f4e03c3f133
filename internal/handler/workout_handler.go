package handler

import (
	"net/http"
	"time"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

type WorkoutHandler struct {
	store repository.Storage
	now   func() time.Time
}

func NewWorkoutHandler(store repository.Storage) *WorkoutHandler {
	return &WorkoutHandler{store: store, now: time.Now}
}

func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.store.GetWorkouts(r.Context(), callerID(r))
	if err != nil {
		writeFailure(w, r, err, "failed to fetch workouts")
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.WorkoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err, "failed to create workout")
		return
	}

	in := req.ToNewWorkout(callerID(r))
	if in.Status == domain.WorkoutCompleted {
		now := h.now()
		in.CompletedAt = &now
	}

	workout, err := h.store.CreateWorkout(r.Context(), in)
	if err != nil {
		writeFailure(w, r, err, "failed to create workout")
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid workout id")
		return
	}

	var patch domain.WorkoutPatch
	if err := decodeBody(r, &patch); err != nil {
		writeFailure(w, r, err, "failed to update workout")
		return
	}

	if !h.authorize(w, r, id) {
		return
	}

	// storage decides, against the stored status, whether the stamp lands
	patch.CompletedAt = nil
	if patch.Status != nil && *patch.Status == domain.WorkoutCompleted {
		now := h.now()
		patch.CompletedAt = &now
	}

	workout, err := h.store.UpdateWorkout(r.Context(), id, patch)
	if err != nil {
		writeFailure(w, r, err, "failed to update workout")
		return
	}
	if workout == nil {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid workout id")
		return
	}

	if !h.authorize(w, r, id) {
		return
	}

	if _, err := h.store.DeleteWorkout(r.Context(), id); err != nil {
		writeFailure(w, r, err, "failed to delete workout")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkoutHandler) authorize(w http.ResponseWriter, r *http.Request, id int64) bool {
	workout, err := h.store.GetWorkout(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err, "failed to fetch workout")
		return false
	}
	if workout == nil {
		writeError(w, http.StatusNotFound, "workout not found")
		return false
	}
	if workout.UserID != callerID(r) {
		writeError(w, http.StatusForbidden, "not allowed to modify this workout")
		return false
	}
	return true
}
