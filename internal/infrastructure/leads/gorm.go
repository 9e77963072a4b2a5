package leads

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutriquiz/backend/internal/domain"
)

// GormRepository keeps leads in a SQL table
type GormRepository struct {
	db *gorm.DB
}

// Open connects to postgres or sqlite and migrates the leads table
func Open(driver, dsn string) (*GormRepository, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported lead driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to lead database: %w", err)
	}

	// sqlite serializes writers anyway, and ":memory:" is per connection
	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return NewGormRepository(db)
}

// NewGormRepository migrates the leads table on db
func NewGormRepository(db *gorm.DB) (*GormRepository, error) {
	if err := db.AutoMigrate(&domain.Lead{}); err != nil {
		return nil, fmt.Errorf("migrate leads: %w", err)
	}
	return &GormRepository{db: db}, nil
}

// Append inserts one lead
func (r *GormRepository) Append(ctx context.Context, lead *domain.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

// List returns every lead, oldest first
func (r *GormRepository) List(ctx context.Context) ([]domain.Lead, error) {
	leads := []domain.Lead{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// Close releases the underlying connection pool
func (r *GormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
