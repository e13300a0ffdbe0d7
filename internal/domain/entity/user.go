package entity

import (
	"time"

	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// User is an account that may view orders and, depending on role, drive
// workflow transitions.
type User struct {
	ID           int64         `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	Role         workflow.Role `json:"role"`
	PasswordHash string        `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Actor is the explicit session identity a request acts under. It is passed
// through the application layer instead of living in ambient state.
type Actor struct {
	UserID   int64
	Username string
	Role     workflow.Role
}

// Supplier is the vendor a purchase order is placed with
type Supplier struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Warehouse is the receiving location of a purchase order
type Warehouse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
