package domain

import "time"

type NutritionLog struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	MealType    string    `json:"mealType"`
	Description string    `json:"description"`
	Calories    int       `json:"calories"`
	Date        Date      `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

type NewNutritionLog struct {
	UserID      int64
	MealType    string
	Description string
	Calories    int
	Date        Date
}

type NutritionLogRequest struct {
	MealType    string `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	Description string `json:"description" validate:"required"`
	Calories    *int   `json:"calories" validate:"required,min=0"`
	Date        *Date  `json:"date" validate:"required"`
}

func (r NutritionLogRequest) ToNewNutritionLog(userID int64) NewNutritionLog {
	return NewNutritionLog{
		UserID:      userID,
		MealType:    r.MealType,
		Description: r.Description,
		Calories:    *r.Calories,
		Date:        *r.Date,
	}
}
