package purchase

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pos-backend/internal/models"

	"gorm.io/gorm"
)

// Doğrulama hataları; handler 400'e çevirir.
var ErrInvalidRequest = errors.New("supplier ve items alanları zorunlu")

type LineItemInput struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	BuyingPrice float64 `json:"buyingPrice"`
}

type AddPurchaseRequest struct {
	Supplier    string          `json:"supplier"`
	Items       []LineItemInput `json:"items"`
	TotalAmount float64         `json:"totalAmount"`
	Notes       string          `json:"notes"`
}

// StockStatus: Tek satırın stok uygulama sonucu. "Güncelleme 0 kayıt
// etkiledi" durumu ayrı bir sonuçtur, I/O hatasıyla birleştirilmez.
type StockStatus int

const (
	StockApplied StockStatus = iota
	StockInvalidItem
	StockProductNotFound
	StockUpdateMissed // update çağrısı hatasız döndü ama 0 kayıt etkiledi
	StockUpdateFailed
)

type StockResult struct {
	Status      StockStatus
	ProductName string
	OldQuantity int
	NewQuantity int
	Message     string
}

type IntakeResult struct {
	Purchase *models.Purchase
	Results  []StockResult
}

// Warnings: Uygulanamayan satırların mesajları. Boş dönerse tüm satırlar
// başarıyla uygulanmıştır.
func (r *IntakeResult) Warnings() []string {
	var warnings []string
	for _, res := range r.Results {
		if res.Status != StockApplied {
			warnings = append(warnings, res.Message)
		}
	}
	return warnings
}

// Intake: Alım kaydını oluşturur ve her satırın stok artışını SIRAYLA
// uygular. Alım kaydı yazılamazsa hiçbir stok güncellenmez; satır
// hataları ise sadece o satırı etkiler, alım kaydı asla geri alınmaz.
//
// Satırlar bilerek sırayla işlenir: aynı ürün birden fazla satırda
// geçtiğinde her satırın okuma+yazma döngüsü tamamlanmadan sonraki
// satır başlamaz, böylece artışlar kaybolmadan birikir.
func Intake(db *gorm.DB, req AddPurchaseRequest) (*IntakeResult, error) {
	req.Supplier = strings.TrimSpace(req.Supplier)
	if req.Supplier == "" || len(req.Items) == 0 {
		return nil, ErrInvalidRequest
	}

	p := models.Purchase{
		Supplier:    req.Supplier,
		TotalAmount: req.TotalAmount,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
	}
	for i, item := range req.Items {
		p.Items = append(p.Items, models.PurchaseItem{
			Position:    i,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			BuyingPrice: item.BuyingPrice,
		})
	}

	if err := db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("alım kaydedilemedi: %w", err)
	}

	result := &IntakeResult{Purchase: &p}
	for _, item := range req.Items {
		result.Results = append(result.Results, applyStockIncrease(db, item))
	}

	return result, nil
}

func applyStockIncrease(db *gorm.DB, item LineItemInput) StockResult {
	name := item.ProductName
	if name == "" {
		name = fmt.Sprintf("#%d", item.ProductID)
	}

	if item.ProductID <= 0 || item.Quantity <= 0 {
		return StockResult{
			Status:      StockInvalidItem,
			ProductName: name,
			Message:     fmt.Sprintf("Geçersiz ürün id/miktar: %s", name),
		}
	}

	var product models.Product
	if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StockResult{
				Status:      StockProductNotFound,
				ProductName: name,
				Message:     fmt.Sprintf("Ürün bulunamadı: %s", name),
			}
		}
		log.Printf("Ürün okunamadı (id=%d): %v", item.ProductID, err)
		return StockResult{
			Status:      StockUpdateFailed,
			ProductName: name,
			Message:     fmt.Sprintf("Stok güncellenemedi: %s", name),
		}
	}

	newQuantity := product.Quantity + item.Quantity

	// Sadece quantity alanı güncellenir; ürün kaydının kalanı alım
	// akışının konusu değildir.
	res := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("quantity", newQuantity)
	if res.Error != nil {
		log.Printf("Stok güncellenemedi (id=%d): %v", product.ID, res.Error)
		return StockResult{
			Status:      StockUpdateFailed,
			ProductName: product.Name,
			Message:     fmt.Sprintf("Stok güncellenemedi: %s", product.Name),
		}
	}
	if res.RowsAffected == 0 {
		// Okuma ile yazma arasında kayıt kaybolmuş; hata fırlamadı ama
		// güncelleme boşa gitti.
		return StockResult{
			Status:      StockUpdateMissed,
			ProductName: product.Name,
			Message:     fmt.Sprintf("Stok güncellemesi etki etmedi: %s", product.Name),
		}
	}

	return StockResult{
		Status:      StockApplied,
		ProductName: product.Name,
		OldQuantity: product.Quantity,
		NewQuantity: newQuantity,
	}
}
