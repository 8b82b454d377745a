package model

// Session is the identity carried by a signed session token.
type Session struct {
	UID     int64  `json:"uid"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"is_admin"`
}
