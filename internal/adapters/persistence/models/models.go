package models

import (
	"time"

	"bookhive/internal/core/domain"

	"gorm.io/gorm"
)

// User represents the users table
type User struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Name           string            `gorm:"size:100;not null" json:"name"`
	Email          string            `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone          string            `gorm:"size:20" json:"phone"`
	PasswordHash   string            `gorm:"size:255;not null" json:"-"`
	ProfilePicture string            `gorm:"size:255" json:"profile_picture,omitempty"`
	Role           domain.Role       `gorm:"size:20;default:'USER'" json:"role"`
	Status         domain.UserStatus `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID             uint              `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	ProfilePicture string            `json:"profile_picture,omitempty"`
	Role           domain.Role       `json:"role"`
	Status         domain.UserStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
	}
}

// Book represents the books table
type Book struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Title         string            `gorm:"size:200;not null;index" json:"title"`
	Author        string            `gorm:"size:100;not null" json:"author"`
	ISBN          string            `gorm:"size:20;uniqueIndex" json:"isbn"`
	CategoryID    uint              `gorm:"index" json:"category_id"`
	Category      string            `gorm:"size:50;index" json:"category"`
	Publisher     string            `gorm:"size:100" json:"publisher"`
	PublishDate   time.Time         `gorm:"type:date" json:"publish_date"`
	Status        domain.BookStatus `gorm:"size:20;default:'Available';index" json:"status"`
	InventoryCode string            `gorm:"size:40;uniqueIndex" json:"inventory_code"`
	CoverURL      string            `gorm:"size:255" json:"cover_url"`
	DailyFee      float64           `gorm:"type:decimal(8,2);default:0" json:"daily_fee"`
	HomeSection   string            `gorm:"size:50" json:"home_section"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// Loan represents the loans table.
// ReturnDate stays NULL while the status is Active or Overdue.
type Loan struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	UserID     uint              `gorm:"not null;index" json:"user_id"`
	BookID     uint              `gorm:"not null;index" json:"book_id"`
	LoanDate   time.Time         `gorm:"not null" json:"loan_date"`
	DueDate    time.Time         `gorm:"not null;index" json:"due_date"`
	ReturnDate *time.Time        `json:"return_date"`
	Status     domain.LoanStatus `gorm:"size:20;default:'Active';index" json:"status"`
	Price      float64           `gorm:"type:decimal(8,2);default:0" json:"price"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanResponse DTO with borrower/book info for admin views
type LoanResponse struct {
	ID         uint              `json:"id"`
	UserID     uint              `json:"user_id"`
	UserName   string            `json:"user_name,omitempty"`
	UserEmail  string            `json:"user_email,omitempty"`
	BookID     uint              `json:"book_id"`
	BookTitle  string            `json:"book_title,omitempty"`
	LoanDate   time.Time         `json:"loan_date"`
	DueDate    time.Time         `json:"due_date"`
	ReturnDate *time.Time        `json:"return_date"`
	Status     domain.LoanStatus `json:"status"`
	Price      float64           `json:"price"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		BookID:     l.BookID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Status:     l.Status,
		Price:      l.Price,
	}
	if l.User != nil {
		resp.UserName = l.User.Name
		resp.UserEmail = l.User.Email
	}
	if l.Book != nil {
		resp.BookTitle = l.Book.Title
	}
	return resp
}

// Notification represents the notifications table
type Notification struct {
	ID        uint                    `gorm:"primaryKey" json:"id"`
	UserID    uint                    `gorm:"not null;index" json:"user_id"`
	LoanID    *uint                   `gorm:"index" json:"loan_id"`
	Title     string                  `gorm:"size:100;not null" json:"title"`
	Message   string                  `gorm:"type:text" json:"message"`
	Type      domain.NotificationType `gorm:"size:20;default:'INFO'" json:"type"`
	CreatedAt time.Time               `gorm:"autoCreateTime" json:"created_at"`
	ReadAt    *time.Time              `json:"read_at"`
	IsRead    bool                    `gorm:"default:false;index" json:"is_read"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Loan *Loan `gorm:"foreignKey:LoanID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Book{},
		&Loan{},
		&Notification{},
	)
}
