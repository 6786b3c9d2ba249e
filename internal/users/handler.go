package users

import (
	"fmt"
	"strings"

	"pos-backend/internal/audit"
	"pos-backend/internal/auth"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SaveUserRequest struct {
	ID               uint   `json:"id"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	Fullname         string `json:"fullname"`
	PermProducts     string `json:"perm_products"`
	PermCategories   string `json:"perm_categories"`
	PermTransactions string `json:"perm_transactions"`
	PermUsers        string `json:"perm_users"`
	PermSettings     string `json:"perm_settings"`
}

// GET /api/users/all
func ListUsersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := db.Order("id asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}
		return c.JSON(users)
	}
}

// GET /api/users/user/:userId
func GetUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("userId")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı ID")
		}

		var user models.User
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		return c.JSON(user)
	}
}

// POST /api/users/post
// Eski form checkbox'ları "on" string'i gönderir; create ve update tek
// endpoint'te toplanmıştır.
func SaveUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}

		user := models.User{
			Username:         body.Username,
			Fullname:         body.Fullname,
			PermProducts:     body.PermProducts == "on",
			PermCategories:   body.PermCategories == "on",
			PermTransactions: body.PermTransactions == "on",
			PermUsers:        body.PermUsers == "on",
			PermSettings:     body.PermSettings == "on",
		}

		if body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
			}
			user.PasswordHash = string(hash)
		}

		userID, userName := auth.UserInfo(c)

		if body.ID == 0 {
			if body.Password == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
			}
			if err := db.Create(&user).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
			}

			_ = audit.WriteLog(db, audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "user",
				EntityID:    user.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Kullanıcı oluşturuldu: %s", user.Username),
				After:       user,
			})
			return c.JSON(user)
		}

		var before models.User
		if err := db.First(&before, "id = ?", body.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		updates := map[string]any{
			"username":          user.Username,
			"fullname":          user.Fullname,
			"perm_products":     user.PermProducts,
			"perm_categories":   user.PermCategories,
			"perm_transactions": user.PermTransactions,
			"perm_users":        user.PermUsers,
			"perm_settings":     user.PermSettings,
		}
		// Şifre sadece yeni değer girildiyse değişir
		if user.PasswordHash != "" {
			updates["password_hash"] = user.PasswordHash
		}

		if err := db.Model(&models.User{}).Where("id = ?", body.ID).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "user",
			EntityID:    body.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Kullanıcı güncellendi: %s", user.Username),
			Before:      before,
		})
		return c.SendStatus(fiber.StatusOK)
	}
}

// DELETE /api/users/user/:userId
// ID 1 her zaman korunur; sistemin kilitlenmemesi için admin silinemez.
func DeleteUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("userId")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı ID")
		}

		if id == 1 {
			return fiber.NewError(fiber.StatusForbidden, "Admin kullanıcısı silinemez")
		}

		var before models.User
		if err := db.First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if err := db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		userID, userName := auth.UserInfo(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "user",
			EntityID:    uint(id),
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Kullanıcı silindi: %s", before.Username),
			Before:      before,
		})

		return c.SendStatus(fiber.StatusOK)
	}
}
