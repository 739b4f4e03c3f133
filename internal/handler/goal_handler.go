package handler

import (
	"net/http"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

type GoalHandler struct {
	store repository.Storage
}

func NewGoalHandler(store repository.Storage) *GoalHandler {
	return &GoalHandler{store: store}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.store.GetGoals(r.Context(), callerID(r))
	if err != nil {
		writeFailure(w, r, err, "failed to fetch goals")
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.GoalRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err, "failed to create goal")
		return
	}

	goal, err := h.store.CreateGoal(r.Context(), req.ToNewGoal(callerID(r)))
	if err != nil {
		writeFailure(w, r, err, "failed to create goal")
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var patch domain.GoalPatch
	if err := decodeBody(r, &patch); err != nil {
		writeFailure(w, r, err, "failed to update goal")
		return
	}

	if !h.authorize(w, r, id) {
		return
	}

	goal, err := h.store.UpdateGoal(r.Context(), id, patch)
	if err != nil {
		writeFailure(w, r, err, "failed to update goal")
		return
	}
	if goal == nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	if !h.authorize(w, r, id) {
		return
	}

	if _, err := h.store.DeleteGoal(r.Context(), id); err != nil {
		writeFailure(w, r, err, "failed to delete goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorize writes 404 or 403 and returns false unless the caller owns goal id.
func (h *GoalHandler) authorize(w http.ResponseWriter, r *http.Request, id int64) bool {
	goal, err := h.store.GetGoal(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err, "failed to fetch goal")
		return false
	}
	if goal == nil {
		writeError(w, http.StatusNotFound, "goal not found")
		return false
	}
	if goal.UserID != callerID(r) {
		writeError(w, http.StatusForbidden, "not allowed to modify this goal")
		return false
	}
	return true
}
