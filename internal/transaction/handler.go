package transaction

import (
	"log"
	"time"

	"pos-backend/internal/inventory"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DeleteTransactionRequest struct {
	OrderID uint `json:"orderId"`
}

type DailySummaryResponse struct {
	Date  string  `json:"date"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
	Tax   float64 `json:"tax"`
}

// GET /api/transactions/all
func ListTransactionsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var transactions []models.Transaction
		if err := db.Preload("Items").Order("date desc").Find(&transactions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}
		return c.JSON(transactions)
	}
}

// GET /api/transactions/on-hold
// Askıya alınan siparişler: referans numarası verilmiş ve hâlâ açık.
func OnHoldHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var transactions []models.Transaction
		err := db.Preload("Items").
			Where("ref_number <> ? AND status = ?", "", models.TransactionStatusOpen).
			Find(&transactions).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Askıdaki siparişler listelenemedi")
		}
		return c.JSON(transactions)
	}
}

// GET /api/transactions/customer-orders
// Kayıtlı müşteriye açılmış, askıya alınmamış açık siparişler.
func CustomerOrdersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var transactions []models.Transaction
		err := db.Preload("Items").
			Where("customer_id <> ? AND status = ? AND ref_number = ?", 0, models.TransactionStatusOpen, "").
			Find(&transactions).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri siparişleri listelenemedi")
		}
		return c.JSON(transactions)
	}
}

// GET /api/transactions/by-date?start=...&end=...&user=0&till=0&status=1
func ByDateHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, err1 := parseDate(c.Query("start"))
		end, err2 := parseDate(c.Query("end"))
		if err1 != nil || err2 != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı")
		}

		status := c.QueryInt("status", models.TransactionStatusCompleted)

		dbq := db.Preload("Items").
			Where("date >= ? AND date <= ?", start, end).
			Where("status = ?", status)

		if userID := c.QueryInt("user", 0); userID != 0 {
			dbq = dbq.Where("user_id = ?", userID)
		}
		if till := c.QueryInt("till", 0); till != 0 {
			dbq = dbq.Where("till = ?", till)
		}

		var transactions []models.Transaction
		if err := dbq.Order("date desc").Find(&transactions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}
		return c.JSON(transactions)
	}
}

// POST /api/transactions/new
// Satış tamamı ödenmişse (paid >= total) stok düşümü tetiklenir; kısmi
// ödeme stoka dokunmaz.
func CreateTransactionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.Transaction
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Items alanı zorunlu")
		}
		if body.Total == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Total alanı zorunlu")
		}
		if body.Date.IsZero() {
			body.Date = time.Now()
		}

		if err := db.Create(&body).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydedilemedi")
		}

		if body.Paid >= body.Total {
			inventory.DecrementStock(db, soldItems(body.Items))
			log.Printf("Satış tamamlandı, stok düşüldü (id=%d)", body.ID)
		}

		return c.SendStatus(fiber.StatusOK)
	}
}

// PUT /api/transactions/new
// Açık siparişin güncellenmesi (ödeme alınması dahil). Tamamı ödendiyse
// stok düşümü burada da tetiklenir.
func UpdateTransactionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.Transaction
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş ID zorunlu")
		}

		var existing models.Transaction
		if err := db.First(&existing, "id = ?", body.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
		}

		// Satırlar komple değiştirilir; eskiler silinip yenileri yazılır
		if err := db.Where("transaction_id = ?", body.ID).
			Delete(&models.TransactionItem{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış güncellenemedi")
		}
		if err := db.Save(&body).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış güncellenemedi")
		}

		if body.Paid >= body.Total {
			inventory.DecrementStock(db, soldItems(body.Items))
			log.Printf("Satış güncellendi, stok düşüldü (id=%d)", body.ID)
		}

		return c.SendStatus(fiber.StatusOK)
	}
}

// POST /api/transactions/delete
func DeleteTransactionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DeleteTransactionRequest
		if err := c.BodyParser(&body); err != nil || body.OrderID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş ID zorunlu")
		}

		res := db.Select("Items").Delete(&models.Transaction{ID: body.OrderID})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış silinemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
		}

		return c.SendStatus(fiber.StatusOK)
	}
}

// GET /api/transactions/summary/daily?date=2025-01-15
func DailySummaryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dateStr := c.Query("date")
		day := time.Now()
		if dateStr != "" {
			parsed, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-MM-DD)")
			}
			day = parsed
		}

		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.Add(24 * time.Hour)

		var summary struct {
			Count int64
			Total float64
			Tax   float64
		}
		err := db.Model(&models.Transaction{}).
			Select("COUNT(*) as count, COALESCE(SUM(total), 0) as total, COALESCE(SUM(tax), 0) as tax").
			Where("date >= ? AND date < ?", dayStart, dayEnd).
			Where("status = ?", models.TransactionStatusCompleted).
			Scan(&summary).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Günlük özet hesaplanamadı")
		}

		return c.JSON(DailySummaryResponse{
			Date:  dayStart.Format("2006-01-02"),
			Count: summary.Count,
			Total: summary.Total,
			Tax:   summary.Tax,
		})
	}
}

// GET /api/transactions/:transactionId
func GetTransactionHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("transactionId")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz satış ID")
		}

		var tx models.Transaction
		if err := db.Preload("Items").First(&tx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
		}
		return c.JSON(tx)
	}
}

func soldItems(items []models.TransactionItem) []inventory.SoldItem {
	sold := make([]inventory.SoldItem, 0, len(items))
	for _, item := range items {
		sold = append(sold, inventory.SoldItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return sold
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
