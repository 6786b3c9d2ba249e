package inventory

import (
	"errors"
	"log"

	"pos-backend/internal/models"

	"gorm.io/gorm"
)

type SoldItem struct {
	ProductID int `json:"id"`
	Quantity  int `json:"quantity"`
}

// DecrementStock: Tamamı ödenen satışın ardından stok düşümü. Satırlar
// sırayla işlenir; bir satırın hatası diğerlerini durdurmaz ve çağırana
// satır bazlı sonuç dönmez. Stok takibi kapalı veya kayıtlı olmayan
// ürünler sessizce atlanır, miktar hiçbir zaman sıfırın altına inmez.
func DecrementStock(db *gorm.DB, items []SoldItem) {
	for _, item := range items {
		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Stok düşümü için ürün okunamadı (id=%d): %v", item.ProductID, err)
			}
			continue
		}

		if !product.StockTracked {
			continue
		}

		newQuantity := product.Quantity - item.Quantity
		if newQuantity < 0 {
			newQuantity = 0
		}

		res := db.Model(&models.Product{}).Where("id = ?", product.ID).
			Update("quantity", newQuantity)
		if res.Error != nil {
			log.Printf("Stok düşülemedi (id=%d): %v", product.ID, res.Error)
			continue
		}

		log.Printf("Stok düşüldü: %s -%d adet", product.Name, item.Quantity)
	}
}
