package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// UserStatus represents user account status
type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

// BookStatus represents book availability status
type BookStatus string

const (
	BookAvailable BookStatus = "Available"
	BookLoaned    BookStatus = "Loaned"
	BookDamaged   BookStatus = "Damaged"
	BookRetired   BookStatus = "Retired"
)

// LoanStatus represents loan lifecycle status
type LoanStatus string

const (
	LoanActive   LoanStatus = "Active"
	LoanReturned LoanStatus = "Returned"
	LoanOverdue  LoanStatus = "Overdue"
)

// NotificationType classifies notifications for the inbox
type NotificationType string

const (
	NotifyInfo     NotificationType = "INFO"
	NotifyReminder NotificationType = "REMINDER"
	NotifyAlert    NotificationType = "ALERT"
	NotifyWarning  NotificationType = "WARNING"
)

// Loan day bounds for a single cart item
const (
	MinLoanDays = 1
	MaxLoanDays = 30
)

// User represents a user in the domain layer
type User struct {
	ID             uint
	Name           string
	Email          string // unique, login key
	Phone          string
	PasswordHash   string
	ProfilePicture string
	Role           Role
	Status         UserStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsBlocked reports whether the account must be refused at login
func (u *User) IsBlocked() bool {
	return u.Status == UserBlocked
}

// Book represents a catalog book
type Book struct {
	ID            uint
	Title         string
	Author        string
	ISBN          string
	CategoryID    uint
	Category      string
	Publisher     string
	PublishDate   time.Time
	Status        BookStatus
	InventoryCode string
	CoverURL      string
	DailyFee      float64
	HomeSection   string
}

// Loan represents a book loan
type Loan struct {
	ID         uint
	UserID     uint
	BookID     uint
	LoanDate   time.Time
	DueDate    time.Time
	ReturnDate *time.Time // nil iff Status is Active or Overdue
	Status     LoanStatus
	Price      float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen reports whether the loan still holds the book
func (l *Loan) IsOpen() bool {
	return l.Status == LoanActive || l.Status == LoanOverdue
}

// Notification represents an inbox entry for a user
type Notification struct {
	ID        uint
	UserID    uint
	LoanID    *uint
	Title     string
	Message   string
	Type      NotificationType
	CreatedAt time.Time
	ReadAt    *time.Time
	IsRead    bool
}

// CartItem is a transient checkout selection, never persisted.
// Price is derived from the chosen day count and the book's daily fee.
type CartItem struct {
	BookID   uint
	Title    string
	CoverURL string
	DailyFee float64
	Days     int
	Price    float64
}
