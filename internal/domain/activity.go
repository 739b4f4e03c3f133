package domain

import "time"

type ActivityLog struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	ActivityType   string    `json:"activityType"`
	Description    string    `json:"description"`
	Duration       int       `json:"duration"`
	CaloriesBurned *int      `json:"caloriesBurned"`
	Date           Date      `json:"date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type NewActivityLog struct {
	UserID         int64
	ActivityType   string
	Description    string
	Duration       int
	CaloriesBurned *int
	Date           Date
	Status         string
}

type ActivityLogPatch struct {
	ActivityType   *string       `json:"activityType"`
	Description    *string       `json:"description"`
	Duration       *int          `json:"duration" validate:"omitempty,min=0"`
	CaloriesBurned Nullable[int] `json:"caloriesBurned"`
	Date           *Date         `json:"date"`
	Status         *string       `json:"status" validate:"omitempty,oneof=completed in_progress scheduled"`
}

func (p ActivityLogPatch) Apply(a *ActivityLog) {
	if p.ActivityType != nil {
		a.ActivityType = *p.ActivityType
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Duration != nil {
		a.Duration = *p.Duration
	}
	p.CaloriesBurned.applyTo(&a.CaloriesBurned)
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
}

type ActivityLogRequest struct {
	ActivityType   string `json:"activityType" validate:"required"`
	Description    string `json:"description" validate:"required"`
	Duration       *int   `json:"duration" validate:"required,min=0"`
	CaloriesBurned *int   `json:"caloriesBurned"`
	Date           *Date  `json:"date" validate:"required"`
	Status         string `json:"status" validate:"required,oneof=completed in_progress scheduled"`
}

func (r ActivityLogRequest) ToNewActivityLog(userID int64) NewActivityLog {
	return NewActivityLog{
		UserID:         userID,
		ActivityType:   r.ActivityType,
		Description:    r.Description,
		Duration:       *r.Duration,
		CaloriesBurned: r.CaloriesBurned,
		Date:           *r.Date,
		Status:         r.Status,
	}
}
