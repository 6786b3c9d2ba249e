package purchase

import (
	"fmt"
	"strconv"
	"strings"

	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ExcelImportResponse struct {
	Items     []LineItemInput `json:"items"`
	Unmatched []string        `json:"unmatched"`
}

// normalizeProductName: Eşleştirme için ürün adını normalleştirir.
// Büyük/küçük harf ve fazla boşluk farkları eşleşmeyi bozmasın diye.
func normalizeProductName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// POST /api/purchases/import-excel
// Tedarikçiden gelen listeyi (ÜRÜN | MİKTAR | ALIŞ FİYATI) satır satır okur
// ve ürün adlarını stoktaki ürünlerle eşleştirir. Kayıt OLUŞTURMAZ;
// eşleşen satırları /add isteğine hazır halde döndürür, eşleşmeyenleri
// ayrıca raporlar.
func ImportExcelHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası gerekli")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya açılamadı")
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası boş")
		}

		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler okunamadı")
		}

		byName := make(map[string]models.Product, len(products))
		for _, p := range products {
			byName[normalizeProductName(p.Name)] = p
		}

		res := ExcelImportResponse{
			Items:     []LineItemInput{},
			Unmatched: []string{},
		}

		for i, row := range rows {
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}
			name := strings.TrimSpace(row[0])

			// İlk satır başlık olabilir ("ÜRÜN", "PRODUCT" vb.)
			if i == 0 && looksLikeHeader(name) {
				continue
			}

			quantity := 0
			if len(row) > 1 {
				quantity, _ = strconv.Atoi(strings.TrimSpace(row[1]))
			}
			buyingPrice := 0.0
			if len(row) > 2 {
				buyingPrice, _ = strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[2]), ",", "."), 64)
			}

			product, ok := byName[normalizeProductName(name)]
			if !ok {
				res.Unmatched = append(res.Unmatched, name)
				continue
			}
			if quantity <= 0 {
				res.Unmatched = append(res.Unmatched, fmt.Sprintf("%s (geçersiz miktar)", name))
				continue
			}

			res.Items = append(res.Items, LineItemInput{
				ProductID:   int(product.ID),
				ProductName: product.Name,
				Quantity:    quantity,
				BuyingPrice: buyingPrice,
			})
		}

		return c.JSON(res)
	}
}

func looksLikeHeader(cell string) bool {
	upper := strings.ToUpper(cell)
	for _, marker := range []string{"ÜRÜN", "URUN", "PRODUCT NAME", "PRODUCT"} {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
