package domain

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type NewUser struct {
	Username string
	Password string
	Name     string
	Email    string
}
