package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses the dashboard filters on. The database enum has more.
const (
	StatusPaid     = "paid"
	StatusReceived = "received"
	StatusCanceled = "canceled"
)

type Order struct {
	ID            uuid.UUID  `json:"id"`
	UserID        int64      `json:"user_id"`
	ReceivingCode *string    `json:"receiving_code"`
	ReturnCode    *string    `json:"return_code"`
	ProductID     int64      `json:"product_id"`
	CellID        *int64     `json:"cell_id"`
	TotalPrice    *float64   `json:"total_price"`
	Days          *int64     `json:"days"`
	Status        string     `json:"status"`
	RefundDate    *time.Time `json:"refund_date"`
	PaidAt        *time.Time `json:"paid_at"`

	User    OrderUser    `json:"user"`
	Product OrderProduct `json:"product"`
	Box     OrderBox     `json:"box"`
}

type OrderUser struct {
	ID        int64   `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

type OrderProduct struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

// OrderBox is empty when the order has no cell assigned yet.
type OrderBox struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}
