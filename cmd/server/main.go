package main

import (
	"log"
	"strings"

	"pos-backend/internal/audit"
	"pos-backend/internal/auth"
	"pos-backend/internal/category"
	"pos-backend/internal/config"
	"pos-backend/internal/customer"
	"pos-backend/internal/database"
	"pos-backend/internal/inventory"
	"pos-backend/internal/models"
	"pos-backend/internal/purchase"
	"pos-backend/internal/settings"
	"pos-backend/internal/transaction"
	"pos-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg)

	// İlk kurulumda admin/admin kullanıcısı hazır olsun
	if err := auth.EnsureDefaultAdmin(db); err != nil {
		log.Fatalf("Varsayılan admin oluşturulamadı: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Beklenmeyen hata:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public: login ve ilk kurulum kontrolü
	api.Post("/users/login", auth.LoginHandler(cfg, db))
	api.Get("/users/check", auth.CheckHandler(db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/users/me", auth.MeHandler(db))
	protected.Get("/users/logout/:id", auth.LogoutHandler(db))

	// Kullanıcı yönetimi
	userRoutes := protected.Group("/users")
	userRoutes.Use(auth.RequirePerm(models.PermUsers))
	userRoutes.Get("/all", users.ListUsersHandler(db))
	userRoutes.Get("/user/:userId", users.GetUserHandler(db))
	userRoutes.Post("/post", users.SaveUserHandler(db))
	userRoutes.Delete("/user/:userId", users.DeleteUserHandler(db))

	// Kategoriler: okuma herkese, yazma izne tabi
	protected.Get("/categories/all", category.ListCategoriesHandler(db))
	categoryRoutes := protected.Group("/categories")
	categoryRoutes.Use(auth.RequirePerm(models.PermCategories))
	categoryRoutes.Post("/category", category.CreateCategoryHandler(db))
	categoryRoutes.Put("/category", category.UpdateCategoryHandler(db))
	categoryRoutes.Delete("/category/:categoryId", category.DeleteCategoryHandler(db))

	// Müşteriler (satış ekranının parçası)
	protected.Get("/customers/all", customer.ListCustomersHandler(db))
	protected.Get("/customers/customer/:customerId", customer.GetCustomerHandler(db))
	protected.Post("/customers/customer", customer.CreateCustomerHandler(db))
	protected.Put("/customers/customer", customer.UpdateCustomerHandler(db))
	protected.Delete("/customers/customer/:customerId", customer.DeleteCustomerHandler(db))

	// Ürünler: satış ekranı okur, yönetim izne tabi
	protected.Get("/inventory/product/:productId", inventory.GetProductHandler(db))
	protected.Get("/inventory/products", inventory.ListProductsHandler(db))
	protected.Post("/inventory/byId", inventory.ProductByIDHandler(db))
	protected.Post("/inventory/product/sku", inventory.ProductBySKUHandler(db))

	inventoryRoutes := protected.Group("/inventory")
	inventoryRoutes.Use(auth.RequirePerm(models.PermProducts))
	inventoryRoutes.Get("/all", inventory.ListProductsWithCategoriesHandler(db))
	inventoryRoutes.Post("/save", inventory.SaveProductHandler(db, cfg))
	// Eski istemci /product'a da gönderir; /save ile aynı handler
	inventoryRoutes.Post("/product", inventory.SaveProductHandler(db, cfg))
	inventoryRoutes.Post("/delete", inventory.DeleteProductHandler(db, cfg))
	inventoryRoutes.Delete("/product/:productId", inventory.DeleteProductByParamHandler(db, cfg))
	inventoryRoutes.Post("/update-stock", inventory.UpdateStockHandler(db))

	// Alımlar (stok girişi)
	purchaseRoutes := protected.Group("/purchases")
	purchaseRoutes.Use(auth.RequirePerm(models.PermProducts))
	purchaseRoutes.Get("/all", purchase.AllPurchasesHandler(db))
	purchaseRoutes.Post("/byId", purchase.PurchaseByIDHandler(db))
	purchaseRoutes.Post("/add", purchase.AddPurchaseHandler(db))
	purchaseRoutes.Post("/delete", purchase.DeletePurchaseHandler(db))
	purchaseRoutes.Get("/stats", purchase.PurchaseStatsHandler(db))
	purchaseRoutes.Post("/import-excel", purchase.ImportExcelHandler(db))

	// Satışlar
	transactionRoutes := protected.Group("/transactions")
	transactionRoutes.Use(auth.RequirePerm(models.PermTransactions))
	transactionRoutes.Get("/all", transaction.ListTransactionsHandler(db))
	transactionRoutes.Get("/on-hold", transaction.OnHoldHandler(db))
	transactionRoutes.Get("/customer-orders", transaction.CustomerOrdersHandler(db))
	transactionRoutes.Get("/by-date", transaction.ByDateHandler(db))
	transactionRoutes.Get("/summary/daily", transaction.DailySummaryHandler(db))
	transactionRoutes.Post("/new", transaction.CreateTransactionHandler(db))
	transactionRoutes.Put("/new", transaction.UpdateTransactionHandler(db))
	transactionRoutes.Post("/delete", transaction.DeleteTransactionHandler(db))
	transactionRoutes.Get("/:transactionId", transaction.GetTransactionHandler(db))

	// Ayarlar
	settingsRoutes := protected.Group("/settings")
	settingsRoutes.Get("/get", settings.GetSettingsHandler(db))
	settingsRoutes.Post("/post", auth.RequirePerm(models.PermSettings), settings.SaveSettingsHandler(db, cfg))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler(db))

	// Fiş logoları ve ürün görselleri
	app.Static("/uploads", cfg.UploadPath)

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
