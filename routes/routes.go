package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/controllers"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/middleware"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.Use(middleware.DBMiddleware(db))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		// Admin analytics
		auth.GET("/count", middleware.AuthMiddleware(), middleware.RequireStaff(), controllers.GetUserCount)
		auth.GET("/registration-stats", middleware.AuthMiddleware(), middleware.RequireStaff(), controllers.GetRegistrationStats)

		// User management
		users := auth.Group("/users")
		users.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
		{
			users.GET("", controllers.GetUsers)
			users.GET("/:id", controllers.GetUserDetail)
			users.PUT("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}
	}

	inquiries := api.Group("/inquiries")
	inquiries.Use(middleware.AuthMiddleware())
	{
		inquiries.POST("", controllers.CreateInquiry)
		inquiries.GET("", controllers.GetInquiries)
		inquiries.GET("/:id", controllers.GetInquiryDetail)
		inquiries.PUT("/:id", controllers.UpdateInquiry)
		inquiries.DELETE("/:id", controllers.DeleteInquiry)
		inquiries.PUT("/:id/response", middleware.RequireStaff(), controllers.RespondToInquiry)
	}

	// Legacy farmer-profile forms, staff-managed
	farmer := r.Group("/farmer")
	farmer.Use(middleware.AuthMiddleware(), middleware.RequireStaff())
	{
		farmer.POST("", controllers.CreateFarmer)
		farmer.GET("", controllers.GetFarmers)
		farmer.GET("/:id", controllers.GetFarmerDetail)
		farmer.PUT("/:id", controllers.UpdateFarmer)
		farmer.DELETE("/:id", controllers.DeleteFarmer)
	}

	// Articles: public reads, staff writes
	articles := api.Group("/articles")
	{
		articles.GET("", controllers.GetArticles)
		articles.GET("/:id", controllers.GetArticleDetail)
		articles.POST("", middleware.AuthMiddleware(), middleware.RequireStaff(), controllers.CreateOrUpdateArticle)
		articles.PUT("/:id", middleware.AuthMiddleware(), middleware.RequireStaff(), controllers.UpdateArticle)
		articles.DELETE("/:id", middleware.AuthMiddleware(), middleware.RequireStaff(), controllers.DeleteArticle)
	}

	// Materials catalog: public reads, staff writes
	materials := api.Group("/materials")
	{
		materials.GET("", controllers.GetMaterials)
		materials.GET("/:id", controllers.GetMaterialDetail)
		materials.POST("", middleware.AuthMiddleware(), middleware.RequireStaff(), controllers.CreateMaterial)
		materials.PUT("/:id", middleware.AuthMiddleware(), middleware.RequireStaff(), controllers.UpdateMaterial)
		materials.DELETE("/:id", middleware.AuthMiddleware(), middleware.RequireStaff(), controllers.DeleteMaterial)
		materials.POST("/:id/image", middleware.AuthMiddleware(), middleware.RequireStaff(), controllers.UploadMaterialImage)
	}

	// AI treatment advisor
	r.POST("/ai/treatment", controllers.GenerateTreatment)

	// Staff dashboard
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireStaff())
	{
		admin.GET("/overview", controllers.GetDashboardOverview)
		admin.GET("/reports/materials/export", controllers.ExportMaterialsReport)
		admin.GET("/reports/inquiries/export", controllers.ExportInquiriesReport)
	}

	r.GET("/ws/inquiry/:id", ws.HandleInquiryWebSocket(db))
	r.GET("/ws/dashboard", ws.HandleDashboardWebSocket())

	return r
}
