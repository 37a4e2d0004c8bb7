package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pgmgmt/internal/database"
	"pgmgmt/internal/repository"
	"pgmgmt/internal/router"
	"pgmgmt/internal/services"
	"pgmgmt/pkg/config"
	"pgmgmt/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger := logger.GetLogger()
	appLogger.Info("Starting PG Management Service...")

	// 初始化数据库
	if err := database.Initialize(cfg); err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			appLogger.Error("Failed to close database:", err)
		}
		if err := database.CloseRedis(); err != nil {
			appLogger.Error("Failed to close Redis:", err)
		}
	}()

	// 执行数据库迁移
	if err := database.Migrate(); err != nil {
		appLogger.Fatalf("Failed to migrate database: %v", err)
	}

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)

	// 统计时区
	location, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		appLogger.Fatalf("Invalid schedule timezone %q: %v", cfg.Schedule.Timezone, err)
	}

	// 启动统计任务调度器（在路由初始化前）
	db := database.GetDB()
	tenantStore := repository.NewGormTenantStore(db)
	roomStore := repository.NewGormRoomStore(db)
	statScheduler := services.NewStatScheduler(
		services.NewAllocationStatService(roomStore, repository.NewGormAllocationStatStore(db), location),
		services.NewMealStatService(tenantStore, repository.NewGormMealStatStore(db), location),
		services.NewTenantDueService(tenantStore, location),
		cfg.Schedule,
		location,
	)
	if err := statScheduler.Start(); err != nil {
		appLogger.Errorf("Failed to start stat scheduler: %v", err)
		// 不影响主服务启动
	}
	defer statScheduler.Stop()

	// 设置路由
	r := router.SetupRouter()

	// 启动服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	appLogger.Infof("Server started on port %s", cfg.Server.Port)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	if err := server.Close(); err != nil {
		appLogger.Error("Server forced to shutdown:", err)
	}
	appLogger.Info("Server exited")
}
