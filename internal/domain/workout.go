package domain

import "time"

const (
	WorkoutScheduled  = "scheduled"
	WorkoutInProgress = "in_progress"
	WorkoutCompleted  = "completed"
	WorkoutCancelled  = "cancelled"
)

type Workout struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userId"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Duration       int        `json:"duration"`
	CaloriesBurned *int       `json:"caloriesBurned"`
	Status         string     `json:"status"`
	ScheduledFor   time.Time  `json:"scheduledFor"`
	CompletedAt    *time.Time `json:"completedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type NewWorkout struct {
	UserID         int64
	Title          string
	Description    *string
	Duration       int
	CaloriesBurned *int
	Status         string
	ScheduledFor   time.Time
	CompletedAt    *time.Time
}

// WorkoutPatch carries the fields a partial update may overwrite. CompletedAt
// is not decoded from request bodies. Apply records it only when the patch
// moves a workout into completed from another status, so the first
// completion time is kept.
type WorkoutPatch struct {
	Title          *string          `json:"title"`
	Description    Nullable[string] `json:"description"`
	Duration       *int             `json:"duration" validate:"omitempty,min=0"`
	CaloriesBurned Nullable[int]    `json:"caloriesBurned"`
	Status         *string          `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	ScheduledFor   *time.Time       `json:"scheduledFor"`
	CompletedAt    *time.Time       `json:"-"`
}

func (p WorkoutPatch) Apply(w *Workout) {
	wasCompleted := w.Status == WorkoutCompleted
	if p.Title != nil {
		w.Title = *p.Title
	}
	p.Description.applyTo(&w.Description)
	if p.Duration != nil {
		w.Duration = *p.Duration
	}
	p.CaloriesBurned.applyTo(&w.CaloriesBurned)
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.ScheduledFor != nil {
		w.ScheduledFor = p.ScheduledFor.UTC()
	}
	if p.CompletedAt != nil && !wasCompleted && w.Status == WorkoutCompleted {
		w.CompletedAt = UTCPtr(p.CompletedAt)
	}
}

// UTCPtr returns a copy of t in UTC, or nil.
func UTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

type WorkoutRequest struct {
	Title          string     `json:"title" validate:"required"`
	Description    *string    `json:"description"`
	Duration       *int       `json:"duration" validate:"required,min=0"`
	CaloriesBurned *int       `json:"caloriesBurned"`
	Status         string     `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	ScheduledFor   *time.Time `json:"scheduledFor" validate:"required"`
}

func (r WorkoutRequest) ToNewWorkout(userID int64) NewWorkout {
	status := r.Status
	if status == "" {
		status = WorkoutScheduled
	}
	return NewWorkout{
		UserID:         userID,
		Title:          r.Title,
		Description:    r.Description,
		Duration:       *r.Duration,
		CaloriesBurned: r.CaloriesBurned,
		Status:         status,
		ScheduledFor:   *r.ScheduledFor,
	}
}
