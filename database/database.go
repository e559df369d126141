package database

import (
	"fmt"
	"log"

	"twinclash-api/config"
	"twinclash-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection, migrates the models and seeds fixed catalogs
func InitDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=Europe/Madrid",
		config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	err = DB.AutoMigrate(
		&models.DuelRoom{},
		&models.Profile{},
		&models.PushToken{},
		&models.Transaction{},
		&models.CoinPackage{},
	)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	Populate()
}

// Populate seeds the fixed coin package catalog if it is missing
func Populate() {
	var count int64
	DB.Model(&models.CoinPackage{}).Count(&count)
	if count > 0 {
		return
	}

	for _, p := range models.DefaultCoinPackages {
		if err := DB.Create(&p).Error; err != nil {
			log.Println("failed to seed coin package: ", err)
		}
	}
	log.Println("Coin package catalog seeded")
}
