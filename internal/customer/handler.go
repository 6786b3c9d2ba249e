package customer

import (
	"strings"

	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CustomerRequest struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// GET /api/customers/customer/:customerId
func GetCustomerHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("customerId")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz müşteri ID")
		}

		var customer models.Customer
		if err := db.First(&customer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}
		return c.JSON(customer)
	}
}

// GET /api/customers/all
func ListCustomersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := db.Order("name asc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler listelenemedi")
		}
		return c.JSON(customers)
	}
}

// POST /api/customers/customer
func CreateCustomerHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı zorunlu")
		}

		customer := models.Customer{
			Name:    body.Name,
			Phone:   body.Phone,
			Email:   body.Email,
			Address: body.Address,
		}
		if err := db.Create(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri oluşturulamadı")
		}
		return c.JSON(customer)
	}
}

// PUT /api/customers/customer
func UpdateCustomerHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri ID zorunlu")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı zorunlu")
		}

		res := db.Model(&models.Customer{}).Where("id = ?", body.ID).Updates(map[string]any{
			"name":    body.Name,
			"phone":   body.Phone,
			"email":   body.Email,
			"address": body.Address,
		})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri güncellenemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/customers/customer/:customerId
func DeleteCustomerHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("customerId")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz müşteri ID")
		}

		res := db.Delete(&models.Customer{}, "id = ?", id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri silinemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		return c.SendStatus(fiber.StatusOK)
	}
}
