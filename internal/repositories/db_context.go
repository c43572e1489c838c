package repositories

import (
	"fmt"
	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.JobPost{})
	if err != nil {
		return fmt.Errorf("failed to migrate job posts: %w", err)
	}

	// The analysis service owns this collection; migrating it here only
	// covers fresh local databases.
	err = c.DB.AutoMigrate(cvRecordRow{})
	if err != nil {
		return fmt.Errorf("failed to migrate cv analyses: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
