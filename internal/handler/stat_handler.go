package handler

import (
	"net/http"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

type StatHandler struct {
	store repository.Storage
	today func() domain.Date
}

func NewStatHandler(store repository.Storage) *StatHandler {
	return &StatHandler{store: store, today: domain.Today}
}

// defaultStats is returned for a day with nothing recorded yet. It has no
// identity or timestamps because nothing was stored.
type defaultStats struct {
	UserID       int64       `json:"userId"`
	Date         domain.Date `json:"date"`
	Steps        int         `json:"steps"`
	Calories     int         `json:"calories"`
	CaloriesGoal int         `json:"caloriesGoal"`
	WaterIntake  int         `json:"waterIntake"`
	WaterGoal    int         `json:"waterGoal"`
	SleepHours   float64     `json:"sleepHours"`
	SleepGoal    float64     `json:"sleepGoal"`
}

func (h *StatHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, ok, err := queryDate(r)
	if err != nil {
		writeFailure(w, r, err, "failed to fetch stats")
		return
	}
	if !ok {
		date = h.today()
	}

	userID := callerID(r)
	stat, err := h.store.GetStats(r.Context(), userID, date)
	if err != nil {
		writeFailure(w, r, err, "failed to fetch stats")
		return
	}
	if stat == nil {
		d := domain.DefaultStat(userID, date)
		writeJSON(w, http.StatusOK, defaultStats{
			UserID:       d.UserID,
			Date:         d.Date,
			CaloriesGoal: d.CaloriesGoal,
			WaterGoal:    d.WaterGoal,
			SleepGoal:    d.SleepGoal,
		})
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

func (h *StatHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req domain.StatRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, r, err, "failed to save stats")
		return
	}

	stat, err := h.store.CreateOrUpdateStats(r.Context(), req.ToNewStat(callerID(r)))
	if err != nil {
		writeFailure(w, r, err, "failed to save stats")
		return
	}
	writeJSON(w, http.StatusCreated, stat)
}
