package models

import "time"

// Product: Satışa sunulan ürün. Quantity alanı eldeki stok miktarıdır ve
// hiçbir zaman negatife düşmez (satışta sıfırda kenetlenir).
type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Price        float64   `gorm:"not null" json:"price"`
	CategoryID   uint      `gorm:"index" json:"category"`
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`
	StockTracked bool      `gorm:"not null;default:true" json:"stock_tracked"` // false ise satışta stok düşülmez
	Image        string    `gorm:"size:255" json:"img"`
	SKU          string    `gorm:"size:64;index" json:"sku"`
	Barcode      string    `gorm:"size:64" json:"barcode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
