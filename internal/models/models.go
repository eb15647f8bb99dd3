package models

import "time"

type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Department struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Email        string `gorm:"unique;not null"          json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`

	RoleID uint `gorm:"not null" json:"role_id"`
	Role   Role `json:"role"`

	DepartmentID *uint       `json:"department_id,omitempty"`
	Department   *Department `json:"department,omitempty"`
}

// RefreshToken holds the single live refresh credential per user.
// The unique index on UserID is what lets the delete-then-insert in
// RefreshTokenService stay race-free under concurrent logins.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null"     json:"user_id"`
	User      User      `json:"-"`
	Token     string    `gorm:"unique;not null"          json:"token"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expires_at"`
}

type TicketStatus struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Ticket struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"not null"                 json:"title"`
	Description string `gorm:"not null"                 json:"description"`

	UserID       uint         `gorm:"index;not null" json:"user_id"`
	User         User         `json:"-"`
	DepartmentID uint         `gorm:"not null" json:"department_id"`
	Department   Department   `json:"-"`
	StatusID     uint         `gorm:"not null" json:"status_id"`
	Status       TicketStatus `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID uint   `gorm:"index;not null"           json:"ticket_id"`
	Ticket   Ticket `json:"-"`
	UserID   uint   `gorm:"index;not null"           json:"user_id"`
	User     User   `json:"-"`
	Text     string `gorm:"not null"                 json:"text"`

	CreatedAt time.Time `json:"created_at"`
}

type TicketAssignment struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID uint   `gorm:"index;not null;uniqueIndex:idx_ticket_user" json:"ticket_id"`
	Ticket   Ticket `json:"-"`
	UserID   uint   `gorm:"index;not null;uniqueIndex:idx_ticket_user" json:"user_id"`
	User     User   `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
