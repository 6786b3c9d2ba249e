package models

import "time"

// Permission: Kullanıcının erişebildiği modül. Eski sistemdeki
// perm_* checkbox alanlarının karşılığı.
type Permission string

const (
	PermProducts     Permission = "products"
	PermCategories   Permission = "categories"
	PermTransactions Permission = "transactions"
	PermUsers        Permission = "users"
	PermSettings     Permission = "settings"
)

type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash     string    `gorm:"size:255;not null" json:"-"`
	Fullname         string    `gorm:"size:255" json:"fullname"`
	PermProducts     bool      `gorm:"not null;default:false" json:"perm_products"`
	PermCategories   bool      `gorm:"not null;default:false" json:"perm_categories"`
	PermTransactions bool      `gorm:"not null;default:false" json:"perm_transactions"`
	PermUsers        bool      `gorm:"not null;default:false" json:"perm_users"`
	PermSettings     bool      `gorm:"not null;default:false" json:"perm_settings"`
	Status           string    `gorm:"size:64" json:"status"` // son login/logout damgası
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Permissions: Kullanıcının sahip olduğu izinleri liste olarak döndürür
// (JWT claim'lerine gömülür).
func (u *User) Permissions() []Permission {
	perms := make([]Permission, 0, 5)
	if u.PermProducts {
		perms = append(perms, PermProducts)
	}
	if u.PermCategories {
		perms = append(perms, PermCategories)
	}
	if u.PermTransactions {
		perms = append(perms, PermTransactions)
	}
	if u.PermUsers {
		perms = append(perms, PermUsers)
	}
	if u.PermSettings {
		perms = append(perms, PermSettings)
	}
	return perms
}
