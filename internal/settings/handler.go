package settings

import (
	"errors"
	"os"
	"path/filepath"

	"pos-backend/internal/config"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GET /api/settings/get
// Hiç ayar kaydedilmemişse eski istemcinin beklediği gibi null döner.
func GetSettingsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s models.Setting
		if err := db.First(&s, "id = ?", models.SettingsRowID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(nil)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar okunamadı")
		}
		return c.JSON(s)
	}
}

// POST /api/settings/post
// Tekil ayar kaydını multipart form ile oluşturur/günceller; logo
// yüklemesi ürün görselleriyle aynı akışı izler.
func SaveSettingsHandler(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		image := c.FormValue("img")

		if fileHeader, err := c.FormFile("imagename"); err == nil {
			ext := filepath.Ext(fileHeader.Filename)
			if ext == "" {
				ext = ".jpg"
			}
			filename := uuid.New().String() + ext
			if err := os.MkdirAll(cfg.UploadPath, 0o755); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Upload klasörü oluşturulamadı")
			}
			if err := c.SaveFile(fileHeader, filepath.Join(cfg.UploadPath, filename)); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Logo kaydedilemedi")
			}
			image = filename
		}

		if c.FormValue("remove") == "1" {
			if old := c.FormValue("img"); old != "" {
				_ = os.Remove(filepath.Join(cfg.UploadPath, old))
			}
			if image == c.FormValue("img") {
				image = ""
			}
		}

		app := c.FormValue("app")
		if app == "" {
			app = "Standalone Point of Sale"
		}
		symbol := c.FormValue("symbol")
		if symbol == "" {
			symbol = "$"
		}
		percentage := c.FormValue("percentage")
		if percentage == "" {
			percentage = "0"
		}

		s := models.Setting{
			ID:         models.SettingsRowID,
			App:        app,
			Store:      c.FormValue("store"),
			AddressOne: c.FormValue("address_one"),
			AddressTwo: c.FormValue("address_two"),
			Contact:    c.FormValue("contact"),
			TaxNumber:  c.FormValue("tax"),
			Symbol:     symbol,
			Percentage: percentage,
			ChargeTax:  c.FormValue("charge_tax") == "on",
			Footer:     c.FormValue("footer"),
			Image:      image,
		}

		// Tek satır: varsa üzerine yazılır, yoksa oluşturulur
		if err := db.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar kaydedilemedi")
		}

		return c.JSON(s)
	}
}
