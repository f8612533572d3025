package migration

import (
	"SurePicks-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Game{}); err != nil {
		log.Fatalf("Error migrating game database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Order{}); err != nil {
		log.Fatalf("Error migrating order database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.GameAccess{}); err != nil {
		log.Fatalf("Error migrating game access database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
