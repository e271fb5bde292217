package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/pkg/middleware"
)

// SetupProductRoutes configura as rotas de catálogo, movimentações e conferência
func SetupProductRoutes(router *gin.RouterGroup, productController *controller.ProductController, csvController *controller.CSVController, features middleware.FeatureChecker) {
	csvGate := middleware.RequireFeature(features, subscription.FeatureCSVImportExport)

	productRouter := router.Group("/products")
	{
		productRouter.POST("", productController.Create)
		productRouter.GET("", productController.List)
		productRouter.GET("/categories", productController.Categories)
		productRouter.GET("/sku-suggestion", productController.SuggestSKU)
		productRouter.GET("/barcode/:barcode", productController.GetByBarcode)

		// Importação e exportação dependem do plano
		productRouter.POST("/import", csvGate, csvController.Import)
		productRouter.GET("/import/template", csvGate, csvController.Template)
		productRouter.GET("/export", csvGate, csvController.Export)

		productRouter.GET("/:id", productController.GetByID)
		productRouter.PUT("/:id", productController.Update)
		productRouter.DELETE("/:id", productController.Delete)

		productRouter.POST("/:id/movements", productController.ApplyMovement)
		productRouter.GET("/:id/movements", productController.ProductMovements)
	}

	router.GET("/movements", productController.Movements)

	stockTakeRouter := router.Group("/stock-take")
	{
		stockTakeRouter.GET("", productController.StartStockTake)
		stockTakeRouter.POST("/reconcile", productController.Reconcile)
	}
}

// SetupScanRoutes configura as rotas de leitura rápida e etiquetas
func SetupScanRoutes(router *gin.RouterGroup, scanController *controller.ScanController, labelController *controller.LabelController, features middleware.FeatureChecker) {
	scanRouter := router.Group("/scan")
	scanRouter.Use(middleware.RequireFeature(features, subscription.FeatureBarcodeScanning))
	{
		scanRouter.POST("/lookup", scanController.Lookup)
		scanRouter.POST("/confirm", scanController.Confirm)
		scanRouter.POST("/quick-add", scanController.QuickAdd)
		scanRouter.POST("/undo", scanController.Undo)
	}

	router.POST("/labels", labelController.Print)
}
