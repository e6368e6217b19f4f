package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/clainchege2/Salon-Assistant-sub002/internal/global"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/logger"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// mainThread khởi tạo và chạy Fiber server trên main thread
func mainThread() {
	app := InitFiberApp()

	cfg := global.ServerConfig
	log := logger.GetAppLogger()

	log.WithFields(map[string]interface{}{
		"address":  cfg.Address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	if err := app.Listen(cfg.Address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// startRfmWorker khởi động worker tính lại điểm RFM định kỳ (nếu được bật).
func startRfmWorker(ctx context.Context) {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	if !cfg.RfmRefreshEnabled {
		log.Info("📊 [RFM_REFRESH] RFM Refresh Worker disabled by config")
		return
	}

	interval := time.Duration(cfg.RfmRefreshInterval) * time.Hour
	rfmWorker, err := worker.NewRfmRefreshWorker(interval)
	if err != nil {
		log.WithError(err).Error("Failed to create RFM refresh worker, continuing without it")
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Error("📊 [RFM_REFRESH] Worker goroutine panic")
			}
		}()
		rfmWorker.Start(ctx)
	}()

	log.Info("📊 [RFM_REFRESH] RFM Refresh Worker started successfully")
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục (validator, config, database)
	InitGlobal()

	// Khởi tạo registry collections và index
	InitRegistry()

	// Khởi động worker RFM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startRfmWorker(ctx)

	// Chạy Fiber server trên main thread
	mainThread()
}
