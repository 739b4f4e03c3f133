package domain

import "time"

type Tip struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	IconName  string    `json:"iconName"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewTip struct {
	Title    string
	Content  string
	Category string
	IconName string
}
