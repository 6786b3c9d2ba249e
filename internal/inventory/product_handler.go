package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pos-backend/internal/audit"
	"pos-backend/internal/auth"
	"pos-backend/internal/config"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductWithCategory struct {
	models.Product
	CategoryName string `json:"category_name"`
}

type ProductByIDRequest struct {
	ID uint `json:"id"`
}

type ProductBySKURequest struct {
	SKUCode string `json:"skuCode"`
}

type UpdateStockRequest struct {
	ID     uint   `json:"id"`
	Stock  *int   `json:"stock"`
	Reason string `json:"reason"`
}

// GET /api/inventory/product/:productId
func GetProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("productId")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün ID")
		}

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}
		return c.JSON(product)
	}
}

// GET /api/inventory/products
func ListProductsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := db.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}
		return c.JSON(products)
	}
}

// GET /api/inventory/all
// Yönetim ekranı için ürünler kategori adlarıyla birlikte döner.
func ListProductsWithCategoriesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := db.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}

		categoryNames := make(map[uint]string, len(categories))
		for _, cat := range categories {
			categoryNames[cat.ID] = cat.Name
		}

		res := make([]ProductWithCategory, 0, len(products))
		for _, p := range products {
			name, ok := categoryNames[p.CategoryID]
			if !ok {
				name = "N/A"
			}
			res = append(res, ProductWithCategory{Product: p, CategoryName: name})
		}
		return c.JSON(res)
	}
}

// POST /api/inventory/byId
func ProductByIDHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductByIDRequest
		if err := c.BodyParser(&body); err != nil || body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün ID zorunlu")
		}

		var product models.Product
		if err := db.First(&product, "id = ?", body.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}
		return c.JSON(product)
	}
}

// POST /api/inventory/product/sku
// Barkod okuyucu akışı: bulunamayan SKU hata değildir, boş obje döner.
func ProductBySKUHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductBySKURequest
		if err := c.BodyParser(&body); err != nil || body.SKUCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "SKU kodu zorunlu")
		}

		var product models.Product
		if err := db.Where("sku = ?", body.SKUCode).First(&product).Error; err != nil {
			return c.JSON(fiber.Map{})
		}
		return c.JSON(product)
	}
}

// POST /api/inventory/save
// Multipart form ile ürün oluşturma/güncelleme. Görsel yüklenirse uuid
// isimle kaydedilir, remove=1 ise eski görsel diskten silinir.
func SaveProductHandler(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := strings.TrimSpace(c.FormValue("name"))
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
		}

		price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
		categoryID, _ := strconv.Atoi(c.FormValue("category"))
		quantity, _ := strconv.Atoi(c.FormValue("quantity"))

		image := c.FormValue("img")

		// Yeni görsel yüklendiyse kaydet
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
				return fiber.NewError(fiber.StatusInternalServerError, "Görsel kaydedilemedi")
			}
			image = filename
		}

		// Görsel kaldırma isteği
		if c.FormValue("remove") == "1" {
			if old := c.FormValue("img"); old != "" {
				_ = os.Remove(filepath.Join(cfg.UploadPath, old))
			}
			if image == c.FormValue("img") {
				image = ""
			}
		}

		product := models.Product{
			Name:         name,
			Price:        price,
			CategoryID:   uint(categoryID),
			Quantity:     quantity,
			StockTracked: c.FormValue("stock_tracked") == "on",
			Image:        image,
			SKU:          strings.TrimSpace(c.FormValue("sku")),
			Barcode:      strings.TrimSpace(c.FormValue("barcode")),
		}

		userID, userName := auth.UserInfo(c)
		idStr := c.FormValue("id")

		if idStr == "" {
			if err := db.Create(&product).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
			}
			// Kullanıcı SKU girmediyse ürün numarası SKU olarak kullanılır
			if product.SKU == "" {
				product.SKU = strconv.FormatUint(uint64(product.ID), 10)
				if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
					Update("sku", product.SKU).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
				}
			}

			_ = audit.WriteLog(db, audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product",
				EntityID:    product.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Ürün oluşturuldu: %s", product.Name),
				After:       product,
			})
			return c.JSON(product)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün ID")
		}

		var before models.Product
		if err := db.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		product.ID = uint(id)
		product.CreatedAt = before.CreatedAt
		if err := db.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Ürün güncellendi: %s", product.Name),
			Before:      before,
			After:       product,
		})
		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/inventory/delete
func DeleteProductHandler(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductByIDRequest
		if err := c.BodyParser(&body); err != nil || body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün ID zorunlu")
		}
		return deleteProduct(c, db, cfg, body.ID)
	}
}

// DELETE /api/inventory/product/:productId
func DeleteProductByParamHandler(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("productId")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün ID")
		}
		return deleteProduct(c, db, cfg, uint(id))
	}
}

func deleteProduct(c *fiber.Ctx, db *gorm.DB, cfg *config.Config, id uint) error {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
	}

	if err := db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
	}

	if product.Image != "" {
		_ = os.Remove(filepath.Join(cfg.UploadPath, product.Image))
	}

	userID, userName := auth.UserInfo(c)
	_ = audit.WriteLog(db, audit.LogOptions{
		UserID:      userID,
		UserName:    userName,
		EntityType:  "product",
		EntityID:    id,
		Action:      models.AuditActionDelete,
		Description: fmt.Sprintf("Ürün silindi: %s", product.Name),
		Before:      product,
	})

	return c.JSON(fiber.Map{"success": true})
}

// POST /api/inventory/update-stock
// Manuel stok düzeltmesi (sayım farkı, fire vb.). Reason audit iziyle
// birlikte saklanır.
func UpdateStockHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ID == 0 || body.Stock == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün ID ve stok zorunlu")
		}

		newStock := *body.Stock
		if newStock < 0 {
			newStock = 0
		}

		var before models.Product
		if err := db.First(&before, "id = ?", body.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		res := db.Model(&models.Product{}).Where("id = ?", body.ID).
			Update("quantity", newStock)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok güncellenemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		reason := body.Reason
		if reason == "" {
			reason = "N/A"
		}
		userID, userName := auth.UserInfo(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    body.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Stok düzeltildi: %s %d -> %d (%s)", before.Name, before.Quantity, newStock, reason),
			Before:      before,
		})

		return c.JSON(fiber.Map{
			"success":  true,
			"message":  "Stok güncellendi",
			"newStock": newStock,
		})
	}
}
