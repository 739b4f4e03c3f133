package domain

import "time"

type Goal struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TargetValue  int       `json:"targetValue"`
	CurrentValue int       `json:"currentValue"`
	Unit         string    `json:"unit"`
	StartDate    Date      `json:"startDate"`
	EndDate      Date      `json:"endDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

type NewGoal struct {
	UserID       int64
	Title        string
	Description  string
	TargetValue  int
	CurrentValue int
	Unit         string
	StartDate    Date
	EndDate      Date
}

// GoalPatch carries the fields a partial update may overwrite.
type GoalPatch struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	TargetValue  *int    `json:"targetValue"`
	CurrentValue *int    `json:"currentValue"`
	Unit         *string `json:"unit"`
	StartDate    *Date   `json:"startDate"`
	EndDate      *Date   `json:"endDate"`
}

func (p GoalPatch) Apply(g *Goal) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.TargetValue != nil {
		g.TargetValue = *p.TargetValue
	}
	if p.CurrentValue != nil {
		g.CurrentValue = *p.CurrentValue
	}
	if p.Unit != nil {
		g.Unit = *p.Unit
	}
	if p.StartDate != nil {
		g.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		g.EndDate = *p.EndDate
	}
}

type GoalRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	TargetValue  *int   `json:"targetValue" validate:"required"`
	CurrentValue *int   `json:"currentValue"`
	Unit         string `json:"unit" validate:"required"`
	StartDate    *Date  `json:"startDate" validate:"required"`
	EndDate      *Date  `json:"endDate" validate:"required"`
}

func (r GoalRequest) ToNewGoal(userID int64) NewGoal {
	g := NewGoal{
		UserID:      userID,
		Title:       r.Title,
		Description: r.Description,
		TargetValue: *r.TargetValue,
		Unit:        r.Unit,
		StartDate:   *r.StartDate,
		EndDate:     *r.EndDate,
	}
	if r.CurrentValue != nil {
		g.CurrentValue = *r.CurrentValue
	}
	return g
}
