package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/middleware"
)

type errorResponse struct {
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeValidationError(w http.ResponseWriter, verr *ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation error", Errors: verr.Fields})
}

// writeFailure maps err to a response: validation problems become 400 with
// field detail, anything else is logged and reported as a generic 500.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		writeValidationError(w, verr)
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, msg)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// callerID is the identity resolved by middleware.Identity. Routes are only
// mounted behind that middleware, so a missing value is a wiring bug.
func callerID(r *http.Request) int64 {
	id, _ := middleware.UserIDFrom(r.Context())
	return id
}

// queryDate parses ?date=YYYY-MM-DD. ok is false when the parameter is absent.
func queryDate(r *http.Request) (date domain.Date, ok bool, err error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return domain.Date{}, false, nil
	}
	date, err = domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, false, &ValidationError{Fields: []FieldError{{Field: "date", Message: err.Error()}}}
	}
	return date, true, nil
}
