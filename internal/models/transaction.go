package models

import "time"

// Satış durumları. Status = 0 açık sipariş (askıda ya da müşteri siparişi),
// Status = 1 tamamlanmış satış.
const (
	TransactionStatusOpen      = 0
	TransactionStatusCompleted = 1
)

// Transaction: Kasadan geçen satış. Paid >= Total olduğunda stok düşümü
// tetiklenir; kısmi ödemeler stoka dokunmaz.
type Transaction struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	OrderNumber  int               `gorm:"index" json:"order"`
	RefNumber    string            `gorm:"size:64;index" json:"ref_number"` // askıya alınan siparişlerde dolu
	Discount     float64           `json:"discount"`
	CustomerID   uint              `gorm:"index" json:"customer"` // 0 = kayıtsız müşteri
	CustomerName string            `gorm:"size:255" json:"customer_name"`
	Status       int               `gorm:"index;not null;default:0" json:"status"`
	Subtotal     float64           `json:"subtotal"`
	Tax          float64           `json:"tax"`
	OrderType    string            `gorm:"size:32" json:"order_type"`
	Items        []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items"`
	Total        float64           `gorm:"not null" json:"total"`
	Paid         float64           `json:"paid"`
	Change       float64           `json:"change"`
	PaymentType  string            `gorm:"size:32" json:"payment_type"`
	PaymentInfo  string            `gorm:"size:255" json:"payment_info"`
	Till         int               `gorm:"index" json:"till"`
	UserName     string            `gorm:"size:255" json:"user"`
	UserID       uint              `gorm:"index" json:"user_id"`
	Date         time.Time         `gorm:"index" json:"date"`
}

type TransactionItem struct {
	ID            uint    `gorm:"primaryKey" json:"-"`
	TransactionID uint    `gorm:"index;not null" json:"-"`
	ProductID     int     `gorm:"not null" json:"id"`
	ProductName   string  `gorm:"size:255" json:"product_name"`
	Price         float64 `json:"price"`
	Quantity      int     `gorm:"not null" json:"quantity"`
}
