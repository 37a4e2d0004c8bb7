package router

import (
	"time"

	"pgmgmt/internal/database"
	"pgmgmt/internal/handlers"
	"pgmgmt/internal/middleware"
	"pgmgmt/internal/repository"
	"pgmgmt/internal/services"
	"pgmgmt/pkg/config"
	"pgmgmt/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(middleware.SetupCORS())

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {
	cfg := config.GetConfig()

	location, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		location = time.UTC
	}

	// 存储层
	db := database.GetDB()
	tenantStore := repository.NewGormTenantStore(db)
	roomStore := repository.NewGormRoomStore(db)
	allocationStatStore := repository.NewGormAllocationStatStore(db)
	mealStatStore := repository.NewGormMealStatStore(db)

	// 服务层
	allocationService := services.NewAllocationService(roomStore, tenantStore)
	tenantService := services.NewTenantService(tenantStore, allocationService)
	roomService := services.NewRoomService(roomStore)
	allocationStatService := services.NewAllocationStatService(roomStore, allocationStatStore, location)
	mealStatService := services.NewMealStatService(tenantStore, mealStatStore, location)
	dashboardService := services.NewDashboardService(
		tenantStore,
		mealStatService,
		allocationStatService,
		database.GetRedisClient(),
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
	)

	// API路由组
	api := router.Group("/api")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 租客路由
		tenantHandler := handlers.NewTenantHandler(tenantService, allocationService)
		tenants := api.Group("/tenants")
		{
			tenants.POST("", tenantHandler.Create)
			tenants.GET("", tenantHandler.GetAll)
			tenants.GET("/email/:email", tenantHandler.GetByEmail)
			tenants.PUT("/:id", tenantHandler.Update)
			tenants.DELETE("/:id", tenantHandler.Delete)

			// 快捷操作
			tenants.PATCH("/:id/status", tenantHandler.UpdateStatus)
			tenants.PATCH("/:id/profile", tenantHandler.UpdateProfile)
			tenants.PATCH("/:id/room", tenantHandler.UpdateRoom)
		}

		// 房间路由
		roomHandler := handlers.NewRoomHandler(roomService)
		rooms := api.Group("/rooms")
		{
			rooms.POST("", roomHandler.Create)
			rooms.GET("", roomHandler.GetAll)
			rooms.GET("/:roomNo", roomHandler.GetByRoomNo)
			rooms.PATCH("/:roomNo", roomHandler.Update)
			rooms.DELETE("/:roomNo", roomHandler.Delete)
		}

		// 仪表盘路由
		dashboardHandler := handlers.NewDashboardHandler(dashboardService, allocationStatService, mealStatService, location)
		dashboard := api.Group("/admin/dashboard")
		{
			dashboard.GET("/summary", dashboardHandler.GetSummary)
			dashboard.GET("/meal-stats", dashboardHandler.GetMealStats)
			dashboard.GET("/allocation-stats", dashboardHandler.GetAllocationStats)
			dashboard.POST("/capture", dashboardHandler.CaptureToday)
		}
	}
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "PG-MGMT",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
