package model

type User struct {
	ID      int64  `json:"id"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"is_admin"`
}
