package main

import (
	"github.com/sirupsen/logrus"

	"github.com/clainchege2/Salon-Assistant-sub002/config"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/database"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/global"
)

// InitGlobal khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// initValidator khởi tạo validator với các rule custom
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig khởi tạo cấu hình server từ file env và environment variables
func initConfig() {
	global.ServerConfig = config.NewConfig()
	logrus.Info("Initialized config")
}

// initDatabase_MongoDB khởi tạo kết nối tới MongoDB
func initDatabase_MongoDB() {
	client, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	global.MongoDB_Session = client
	logrus.Info("Initialized MongoDB connection")
}
