package purchase

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, axis, cell))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func postSheet(t *testing.T, app *fiber.App, sheet *bytes.Buffer) *http.Response {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "alim.xlsx")
	require.NoError(t, err)
	_, err = part.Write(sheet.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/purchases/import-excel", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestImportExcel_MatchesNormalizedNames(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	cola := seedProduct(t, db, "Cola", 5)
	cips := seedProduct(t, db, "Cips Aile Boy", 0)

	sheet := buildSheet(t, [][]any{
		{"ÜRÜN", "MİKTAR", "ALIŞ FİYATI"},
		{"  cola  ", 10, "8,5"},
		{"CIPS   AILE BOY", 24, 3},
	})
	resp := postSheet(t, app, sheet)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res ExcelImportResponse
	decodeBody(t, resp, &res)

	require.Len(t, res.Items, 2)
	assert.Empty(t, res.Unmatched)

	// Büyük/küçük harf ve fazla boşluk farkına rağmen stoktaki adla eşleşir
	assert.Equal(t, int(cola.ID), res.Items[0].ProductID)
	assert.Equal(t, "Cola", res.Items[0].ProductName)
	assert.Equal(t, 10, res.Items[0].Quantity)
	assert.Equal(t, 8.5, res.Items[0].BuyingPrice)

	assert.Equal(t, int(cips.ID), res.Items[1].ProductID)
	assert.Equal(t, "Cips Aile Boy", res.Items[1].ProductName)
	assert.Equal(t, 24, res.Items[1].Quantity)
}

func TestImportExcel_UnmatchedAndInvalidRows(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	seedProduct(t, db, "Cola", 5)

	sheet := buildSheet(t, [][]any{
		{"ÜRÜN", "MİKTAR"},
		{"Hayalet Urun", 3},
		{"Cola", 0},
	})
	resp := postSheet(t, app, sheet)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res ExcelImportResponse
	decodeBody(t, resp, &res)

	assert.Empty(t, res.Items)
	require.Len(t, res.Unmatched, 2)
	assert.Equal(t, "Hayalet Urun", res.Unmatched[0])
	assert.Contains(t, res.Unmatched[1], "geçersiz miktar")
}

func TestImportExcel_DoesNotCreateRecords(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)
	cola := seedProduct(t, db, "Cola", 5)

	sheet := buildSheet(t, [][]any{
		{"Cola", 10, 8},
	})
	resp := postSheet(t, app, sheet)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Import sadece öneri üretir; alım kaydı ve stok değişmez
	var count int64
	require.NoError(t, db.Model(&models.Purchase{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 5, productQuantity(t, db, cola.ID))
}

func TestImportExcel_FileRequired(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(db)

	req := httptest.NewRequest(http.MethodPost, "/api/purchases/import-excel", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
