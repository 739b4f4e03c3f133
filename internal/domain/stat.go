package domain

import "time"

const (
	DefaultCaloriesGoal = 2200
	DefaultWaterGoal    = 2500
	DefaultSleepGoal    = 8
)

// Stat is the per-day summary for one user. There is at most one per
// (UserID, Date).
type Stat struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Date         Date      `json:"date"`
	Steps        int       `json:"steps"`
	Calories     int       `json:"calories"`
	CaloriesGoal int       `json:"caloriesGoal"`
	WaterIntake  int       `json:"waterIntake"`
	WaterGoal    int       `json:"waterGoal"`
	SleepHours   float64   `json:"sleepHours"`
	SleepGoal    float64   `json:"sleepGoal"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultStat is what a day looks like before anything has been recorded.
func DefaultStat(userID int64, date Date) Stat {
	return Stat{
		UserID:       userID,
		Date:         date,
		CaloriesGoal: DefaultCaloriesGoal,
		WaterGoal:    DefaultWaterGoal,
		SleepGoal:    DefaultSleepGoal,
	}
}

// NewStat is the upsert shape. Nil metrics take their defaults on create and
// keep the stored value on update.
type NewStat struct {
	UserID       int64
	Date         Date
	Steps        *int
	Calories     *int
	CaloriesGoal *int
	WaterIntake  *int
	WaterGoal    *int
	SleepHours   *float64
	SleepGoal    *float64
}

func (n NewStat) Apply(s *Stat) {
	if n.Steps != nil {
		s.Steps = *n.Steps
	}
	if n.Calories != nil {
		s.Calories = *n.Calories
	}
	if n.CaloriesGoal != nil {
		s.CaloriesGoal = *n.CaloriesGoal
	}
	if n.WaterIntake != nil {
		s.WaterIntake = *n.WaterIntake
	}
	if n.WaterGoal != nil {
		s.WaterGoal = *n.WaterGoal
	}
	if n.SleepHours != nil {
		s.SleepHours = *n.SleepHours
	}
	if n.SleepGoal != nil {
		s.SleepGoal = *n.SleepGoal
	}
}

type StatRequest struct {
	Date         *Date    `json:"date" validate:"required"`
	Steps        *int     `json:"steps" validate:"omitempty,min=0"`
	Calories     *int     `json:"calories" validate:"omitempty,min=0"`
	CaloriesGoal *int     `json:"caloriesGoal" validate:"omitempty,min=0"`
	WaterIntake  *int     `json:"waterIntake" validate:"omitempty,min=0"`
	WaterGoal    *int     `json:"waterGoal" validate:"omitempty,min=0"`
	SleepHours   *float64 `json:"sleepHours" validate:"omitempty,min=0"`
	SleepGoal    *float64 `json:"sleepGoal" validate:"omitempty,min=0"`
}

func (r StatRequest) ToNewStat(userID int64) NewStat {
	return NewStat{
		UserID:       userID,
		Date:         *r.Date,
		Steps:        r.Steps,
		Calories:     r.Calories,
		CaloriesGoal: r.CaloriesGoal,
		WaterIntake:  r.WaterIntake,
		WaterGoal:    r.WaterGoal,
		SleepHours:   r.SleepHours,
		SleepGoal:    r.SleepGoal,
	}
}
