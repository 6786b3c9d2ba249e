package purchase

import (
	"errors"
	"fmt"

	"pos-backend/internal/audit"
	"pos-backend/internal/auth"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PurchaseByIDRequest struct {
	ID uint `json:"id"`
}

type SupplierStats struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

type PurchaseStatsResponse struct {
	TotalPurchases int                      `json:"totalPurchases"`
	TotalAmount    float64                  `json:"totalAmount"`
	SupplierStats  map[string]SupplierStats `json:"supplierStats"`
}

// GET /api/purchases/all — tarih azalan sırayla
func AllPurchasesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var purchases []models.Purchase
		err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).Order("created_at desc").Find(&purchases).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alımlar listelenemedi")
		}
		return c.JSON(purchases)
	}
}

// POST /api/purchases/byId
func PurchaseByIDHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PurchaseByIDRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var p models.Purchase
		err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).First(&p, "id = ?", body.ID).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Alım bulunamadı")
		}
		return c.JSON(p)
	}
}

// POST /api/purchases/add
// Alım kaydı + satır satır stok artışı. Satır hataları alımı iptal etmez,
// warnings listesiyle 200 içinde raporlanır.
func AddPurchaseHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddPurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		result, err := Intake(db, body)
		if err != nil {
			if errors.Is(err, ErrInvalidRequest) {
				return fiber.NewError(fiber.StatusBadRequest, "Supplier ve items alanları zorunlu")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Alım kaydedilemedi")
		}

		userID, userName := auth.UserInfo(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "purchase",
			EntityID:    result.Purchase.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Alım oluşturuldu: %s (%d satır)", result.Purchase.Supplier, len(result.Purchase.Items)),
			After:       result.Purchase,
		})

		if warnings := result.Warnings(); len(warnings) > 0 {
			return c.JSON(fiber.Map{
				"success":  true,
				"purchase": result.Purchase,
				"warnings": warnings,
			})
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"purchase": result.Purchase,
			"message":  "Alım kaydedildi ve stok güncellendi",
		})
	}
}

// POST /api/purchases/delete
// Alım silinir ama stok miktarlarına DOKUNULMAZ; yanlış girilen alımların
// düzeltilmesi için bırakılmış bilinçli bir davranıştır.
func DeletePurchaseHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PurchaseByIDRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var p models.Purchase
		if err := db.Preload("Items").First(&p, "id = ?", body.ID).Error; err == nil {
			userID, userName := auth.UserInfo(c)
			_ = audit.WriteLog(db, audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "purchase",
				EntityID:    p.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Alım silindi: %s", p.Supplier),
				Before:      p,
			})
		}

		if err := db.Select("Items").Delete(&models.Purchase{ID: body.ID}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alım silinemedi")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Alım silindi",
		})
	}
}

// GET /api/purchases/stats
func PurchaseStatsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var purchases []models.Purchase
		if err := db.Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İstatistikler hesaplanamadı")
		}

		stats := PurchaseStatsResponse{
			TotalPurchases: len(purchases),
			SupplierStats:  make(map[string]SupplierStats),
		}
		for _, p := range purchases {
			stats.TotalAmount += p.TotalAmount
			s := stats.SupplierStats[p.Supplier]
			s.Count++
			s.TotalAmount += p.TotalAmount
			stats.SupplierStats[p.Supplier] = s
		}

		return c.JSON(stats)
	}
}
