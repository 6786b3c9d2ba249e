package auth

import (
	"log"
	"strings"
	"time"

	"pos-backend/internal/config"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/users/login
// Eski istemci başarısız girişte boş obje bekler, o yüzden hatalı şifrede
// 401 yerine 200 + {} dönülür.
func LoginHandler(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}

		var user models.User
		if err := db.Where("username = ?", body.Username).First(&user).Error; err != nil {
			log.Printf("Başarısız giriş denemesi: %s", body.Username)
			return c.JSON(fiber.Map{})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			log.Printf("Başarısız giriş denemesi: %s", body.Username)
			return c.JSON(fiber.Map{})
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		// Login damgası; hata olsa bile girişi engellemez
		user.Status = "Logged In_" + time.Now().Format(time.RFC3339)
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("status", user.Status).Error; err != nil {
			log.Printf("Login durumu güncellenemedi: %v", err)
		}

		log.Printf("Kullanıcı giriş yaptı: %s", user.Fullname)
		return c.JSON(fiber.Map{
			"token": token,
			"user":  user,
		})
	}
}

// GET /api/users/logout/:id
func LogoutHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı ID")
		}

		res := db.Model(&models.User{}).Where("id = ?", id).
			Update("status", "Logged Out_"+time.Now().Format(time.RFC3339))
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Çıkış kaydedilemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		return c.SendStatus(fiber.StatusOK)
	}
}

// GET /api/users/check
// İlk açılışta varsayılan admin kullanıcısının var olduğunu garanti eder.
func CheckHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := EnsureDefaultAdmin(db); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Varsayılan admin oluşturulamadı")
		}
		return c.SendStatus(fiber.StatusOK)
	}
}

// EnsureDefaultAdmin: admin/admin kullanıcısını yoksa oluşturur (ID = 1).
func EnsureDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", 1).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:               1,
		Username:         "admin",
		PasswordHash:     string(hash),
		Fullname:         "Administrator",
		PermProducts:     true,
		PermCategories:   true,
		PermTransactions: true,
		PermUsers:        true,
		PermSettings:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Varsayılan admin kullanıcısı oluşturuldu")
	return nil
}

// GET /api/users/me
func MeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := UserInfo(c)

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}
		return c.JSON(user)
	}
}
