package models

import "time"

// Setting: Uygulama ayarları. Her zaman tek satır tutulur (ID = 1),
// eski sistemdeki tekil settings kaydının karşılığı.
type Setting struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	App        string    `gorm:"size:255" json:"app"`
	Store      string    `gorm:"size:255" json:"store"`
	AddressOne string    `gorm:"size:255" json:"address_one"`
	AddressTwo string    `gorm:"size:255" json:"address_two"`
	Contact    string    `gorm:"size:64" json:"contact"`
	TaxNumber  string    `gorm:"size:64" json:"tax"`
	Symbol     string    `gorm:"size:8" json:"symbol"`
	Percentage string    `gorm:"size:16" json:"percentage"`
	ChargeTax  bool      `gorm:"not null;default:false" json:"charge_tax"`
	Footer     string    `gorm:"size:255" json:"footer"`
	Image      string    `gorm:"size:255" json:"img"` // mağaza logosu
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

const SettingsRowID uint = 1
