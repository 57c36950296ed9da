package remote

import "context"

// BookDTO is the book service's catalog row
type BookDTO struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn"`
	CategoryID  uint    `json:"category_id"`
	Category    string  `json:"category"`
	Publisher   string  `json:"publisher"`
	PublishDate string  `json:"publish_date"`
	CoverURL    string  `json:"cover_url"`
	DailyFee    float64 `json:"daily_fee"`
	HomeSection string  `json:"home_section"`
}

// UserDTO is the user service's profile shape
type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// LoanDTO is the loan service's record shape
type LoanDTO struct {
	ID         uint    `json:"id"`
	UserID     uint    `json:"user_id"`
	BookID     uint    `json:"book_id"`
	LoanDate   string  `json:"loan_date"`
	DueDate    string  `json:"due_date"`
	ReturnDate *string `json:"return_date"`
	Status     string  `json:"status"`
	Price      float64 `json:"price"`
}

// NotificationDTO is the notification service's message shape
type NotificationDTO struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// ReportDTO is the report service's summary shape
type ReportDTO struct {
	TotalBooks  int64 `json:"total_books"`
	TotalUsers  int64 `json:"total_users"`
	ActiveLoans int64 `json:"active_loans"`
	TotalLoans  int64 `json:"total_loans"`
}

// listEnvelope matches the backend's standard response wrapper
type listEnvelope[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
}

type itemEnvelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// BookGateway is the typed client for the book service
type BookGateway struct {
	client *Client
}

// NewBookGateway creates a book service gateway
func NewBookGateway(client *Client) *BookGateway {
	return &BookGateway{client: client}
}

// ListBooks fetches the full remote catalog
func (g *BookGateway) ListBooks(ctx context.Context) ([]BookDTO, error) {
	var env listEnvelope[BookDTO]
	if err := g.client.get(ctx, "/api/v1/books", &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// UserGateway is the typed client for the user service
type UserGateway struct {
	client *Client
}

// NewUserGateway creates a user service gateway
func NewUserGateway(client *Client) *UserGateway {
	return &UserGateway{client: client}
}

// GetProfile fetches the signed-in user's profile
func (g *UserGateway) GetProfile(ctx context.Context) (*UserDTO, error) {
	var env itemEnvelope[UserDTO]
	if err := g.client.get(ctx, "/api/v1/users/me", &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// LoanGateway is the typed client for the loan service
type LoanGateway struct {
	client *Client
}

// NewLoanGateway creates a loan service gateway
func NewLoanGateway(client *Client) *LoanGateway {
	return &LoanGateway{client: client}
}

// ListMyLoans fetches the signed-in user's loans
func (g *LoanGateway) ListMyLoans(ctx context.Context) ([]LoanDTO, error) {
	var env listEnvelope[LoanDTO]
	if err := g.client.get(ctx, "/api/v1/loans/me", &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// NotificationGateway is the typed client for the notification service
type NotificationGateway struct {
	client *Client
}

// NewNotificationGateway creates a notification service gateway
func NewNotificationGateway(client *Client) *NotificationGateway {
	return &NotificationGateway{client: client}
}

// ListMyNotifications fetches the signed-in user's inbox
func (g *NotificationGateway) ListMyNotifications(ctx context.Context) ([]NotificationDTO, error) {
	var env listEnvelope[NotificationDTO]
	if err := g.client.get(ctx, "/api/v1/notifications/me", &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ReportGateway is the typed client for the report service
type ReportGateway struct {
	client *Client
}

// NewReportGateway creates a report service gateway
func NewReportGateway(client *Client) *ReportGateway {
	return &ReportGateway{client: client}
}

// GetSummary fetches the aggregate dashboard summary
func (g *ReportGateway) GetSummary(ctx context.Context) (*ReportDTO, error) {
	var env itemEnvelope[ReportDTO]
	if err := g.client.get(ctx, "/api/v1/reports/summary", &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
