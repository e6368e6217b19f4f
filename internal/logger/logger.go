// Package logger quản lý hệ thống logging của ứng dụng: logrus + lumberjack rotation.
// Mỗi kênh (app, audit, error) có một logger riêng, tạo lazy qua GetLogger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// loggers map lưu các logger instances
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex

	// config chứa cấu hình logging
	config *LogConfig
)

// Init khởi tạo hệ thống logging với cấu hình.
// Nếu cfg = nil, dùng DefaultConfig (đọc environment variables).
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	// Tạo thư mục logs nếu chưa tồn tại
	if err := os.MkdirAll(config.LogPath, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	return nil
}

// GetLogger trả về logger theo tên (app, audit, error)
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Nếu chưa init, init với config mặc định
	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("Failed to initialize logger: %v", err))
		}
	}

	if logger, ok := loggers[name]; ok {
		return logger
	}

	logger := createLogger(name)
	loggers[name] = logger
	return logger
}

// GetAppLogger trả về logger chính của ứng dụng
func GetAppLogger() *logrus.Logger {
	return GetLogger("app")
}

// GetAuditLogger trả về logger cho audit trail (recompute RFM, write-back...)
func GetAuditLogger() *logrus.Logger {
	return GetLogger("audit")
}

// createLogger tạo một logger mới với cấu hình
func createLogger(name string) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	var writers []io.Writer

	// File output với rotation
	if config.Output == "file" || config.Output == "both" {
		fileWriter := &lumberjack.Logger{
			Filename:   getLogFilePath(name),
			MaxSize:    config.MaxSize,    // MB
			MaxBackups: config.MaxBackups, // Số file cũ giữ lại
			MaxAge:     config.MaxAge,     // Số ngày
			Compress:   config.Compress,   // Nén file cũ
		}
		writers = append(writers, fileWriter)
	}

	// Stdout output
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}

	if len(writers) == 1 {
		logger.SetOutput(writers[0])
	} else if len(writers) > 1 {
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger
}

// getLogFilePath trả về đường dẫn file log theo tên kênh
func getLogFilePath(name string) string {
	fileName := config.AppFile
	switch name {
	case "audit":
		fileName = config.AuditFile
	case "error":
		fileName = config.ErrorFile
	}
	return filepath.Join(config.LogPath, fileName)
}
