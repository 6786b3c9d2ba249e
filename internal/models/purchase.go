package models

import "time"

// Purchase: Tedarikçiden yapılan mal alımı. Oluşturulduktan sonra
// değiştirilmez; silme stok miktarlarını GERİ ALMAZ (düzeltmeler manuel).
type Purchase struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Supplier    string         `gorm:"size:255;not null" json:"supplier"`
	Items       []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount float64        `gorm:"not null;default:0" json:"totalAmount"`
	Notes       string         `gorm:"size:500" json:"notes"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
}

// PurchaseItem: Alım içindeki tek ürün satırı. ProductName sadece
// görüntüleme içindir, ürün kaydındaki isim esastır.
type PurchaseItem struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	PurchaseID  uint    `gorm:"index;not null" json:"-"`
	Position    int     `gorm:"not null" json:"-"` // alım içindeki satır sırası
	ProductID   int     `gorm:"not null" json:"productId"`
	ProductName string  `gorm:"size:255" json:"productName"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	BuyingPrice float64 `gorm:"not null" json:"buyingPrice"`
}
