package database

import (
	"log"

	"pos-backend/internal/config"
	"pos-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init veritabanı bağlantısını açar ve şemayı migrate eder. Handle
// çağırana döner; paket seviyesinde global tutulmaz, her handler
// bağımlılık olarak alır.
func Init(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
	return db
}

// Migrate tüm POS tablolarını oluşturur/günceller. Testlerde sqlite
// handle'ı ile de çağrılır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Customer{},
		&models.Product{},
		&models.Setting{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.Transaction{},
		&models.TransactionItem{},
		&models.AuditLog{},
	)
}
