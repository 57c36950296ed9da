package config

import (
	"log"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if s.cfg.IsDev() {
		if err := s.seedDemoCatalog(); err != nil {
			log.Printf("⚠️ Catalog seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the administrator account. This is the only path that
// grants the ADMIN role; login itself never special-cases credentials.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	if s.cfg.Admin.Password == "" {
		log.Println("⚠️ Skipping admin seed: ADMIN_PASSWORD not set")
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         s.cfg.Admin.Name,
		Email:        s.cfg.Admin.Email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleAdmin,
		Status:       domain.UserActive,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedDemoCatalog seeds a handful of books so the home screen has content
// on a fresh dev database.
func (s *Seeder) seedDemoCatalog() error {
	var count int64
	s.db.Model(&models.Book{}).Count(&count)
	if count > 0 {
		return nil
	}

	date := func(year int) time.Time {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	books := []*models.Book{
		{Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: "9780134190440", CategoryID: 1, Category: "Technology", Publisher: "Addison-Wesley", PublishDate: date(2015), DailyFee: 1.50, HomeSection: "featured", CoverURL: "https://covers.bookhive.local/gopl.jpg"},
		{Title: "Clean Architecture", Author: "Robert Martin", ISBN: "9780134494166", CategoryID: 1, Category: "Technology", Publisher: "Prentice Hall", PublishDate: date(2017), DailyFee: 1.25, HomeSection: "featured", CoverURL: "https://covers.bookhive.local/cleanarch.jpg"},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", ISBN: "9780135957059", CategoryID: 1, Category: "Technology", Publisher: "Addison-Wesley", PublishDate: date(2019), DailyFee: 1.25, HomeSection: "new", CoverURL: "https://covers.bookhive.local/pragprog.jpg"},
		{Title: "One Hundred Years of Solitude", Author: "Gabriel García Márquez", ISBN: "9780060883287", CategoryID: 2, Category: "Fiction", Publisher: "Harper", PublishDate: date(1967), DailyFee: 0.75, HomeSection: "classics", CoverURL: "https://covers.bookhive.local/solitude.jpg"},
		{Title: "Norwegian Wood", Author: "Haruki Murakami", ISBN: "9780375704024", CategoryID: 2, Category: "Fiction", Publisher: "Vintage", PublishDate: date(1987), DailyFee: 0.75, HomeSection: "classics", CoverURL: "https://covers.bookhive.local/norwegian.jpg"},
		{Title: "Sapiens", Author: "Yuval Noah Harari", ISBN: "9780062316097", CategoryID: 3, Category: "History", Publisher: "Harper", PublishDate: date(2011), DailyFee: 1.00, HomeSection: "featured", CoverURL: "https://covers.bookhive.local/sapiens.jpg"},
	}

	for _, b := range books {
		b.Status = domain.BookAvailable
		b.InventoryCode = "INV-" + uuid.New().String()[:8]
		if err := s.db.Create(b).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d demo books", len(books))
	return nil
}
