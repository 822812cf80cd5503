package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sufrah/backend/config"
	"github.com/sufrah/backend/internal/models"
)

// New opens the postgres connection and runs the schema migration.
func New(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	log.Printf("Connecting to database at %s:%s as user %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("error migrating schema: %w", err)
	}

	log.Printf("Successfully connected to database")
	return db, nil
}

// Migrate applies the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.MenuItem{},
		&models.OfferedMeal{},
		&models.CustomizedMealMenu{},
		&models.PlanOption{},
		&models.Cart{},
		&models.CartLine{},
		&models.CartDayPrice{},
		&models.DiscountRule{},
		&models.DiscountRange{},
		&models.Order{},
		&models.UserCustomizedMealProfile{},
		&models.AdminCustomizedMealConfig{},
		&models.ActivityLevelFactor{},
		&models.CalorieFraction{},
		&models.Notification{},
	)
}
