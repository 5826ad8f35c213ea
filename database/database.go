package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/driftroom/backend/config"
	"github.com/driftroom/backend/models"
)

var DB *gorm.DB

// Connect establishes a connection to the database
func Connect(cfg config.PostgresConfig) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")
}

// Migrate automatically migrates the database schema
func Migrate() {
	DB.AutoMigrate(&models.Room{}, &models.File{}, &models.Message{})
	log.Println("Database migration completed")
}
