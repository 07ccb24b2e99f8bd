package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chocshop/internal/models"
	"chocshop/internal/repositories"
)

// Config holds database connection details.
type Config struct {
	Driver string // "sqlite", "mysql" or "postgres"
	DSN    string
}

// Open connects to the configured database and migrates the schema.
// The returned handle is the single session used for the process lifetime.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Staff{},
		&models.Customer{},
		&models.Chocolate{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}

// SeedCatalog inserts a starter chocolate catalog when the store is empty.
func SeedCatalog(repo repositories.ChocolateRepository) error {
	existing, err := repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to check chocolate catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	chocolates := []models.Chocolate{
		{Type: "Dark Truffle", Price: 5.00},
		{Type: "Milk Praline", Price: 3.50},
		{Type: "White Ganache", Price: 4.25},
		{Type: "Hazelnut Cluster", Price: 6.00},
		{Type: "Sea Salt Caramel", Price: 4.75},
	}
	for i := range chocolates {
		if err := repo.Create(&chocolates[i]); err != nil {
			return fmt.Errorf("failed to seed chocolate catalog: %w", err)
		}
	}
	return nil
}
