package handler

import (
	"net/http"
	"strconv"

	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

const defaultTipCount = 2

type TipHandler struct {
	store repository.Storage
}

func NewTipHandler(store repository.Storage) *TipHandler {
	return &TipHandler{store: store}
}

func (h *TipHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultTipCount
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeValidationError(w, &ValidationError{Fields: []FieldError{{
				Field:   "limit",
				Message: "must be a positive integer",
			}}})
			return
		}
		limit = n
	}

	tips, err := h.store.GetTips(r.Context(), q.Get("category"), limit)
	if err != nil {
		writeFailure(w, r, err, "failed to fetch tips")
		return
	}
	writeJSON(w, http.StatusOK, tips)
}
