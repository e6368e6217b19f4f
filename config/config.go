package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Nó chứa thông tin cơ sở dữ liệu và các tham số cho analytics engine
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu chính
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Analytics Configuration
	// ReportTimezone: timezone chuẩn dùng để truncate bucket (ngày/tuần/tháng/năm).
	// Chọn MỘT lần cho cả hệ thống, không đổi theo request, tránh lệch bucket ở biên ngày.
	ReportTimezone string `env:"REPORT_TIMEZONE" envDefault:"Africa/Nairobi"`
	// ReportEpochFloor: mốc sàn cho window "ALL" (dd-mm-yyyy). Trước mốc này không có dữ liệu salon.
	ReportEpochFloor string `env:"REPORT_EPOCH_FLOOR" envDefault:"01-01-2015"`

	// RFM Refresh Worker Configuration
	RfmRefreshEnabled  bool `env:"RFM_REFRESH_ENABLED" envDefault:"true"` // Bật/tắt worker tính lại RFM định kỳ
	RfmRefreshInterval int  `env:"RFM_REFRESH_INTERVAL" envDefault:"24"`  // Khoảng cách giữa các lần chạy (giờ)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env bằng cách đi lên từ thư mục hiện tại
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
// (hoặc file theo GO_ENV nếu không truyền), sau đó parse environment variables.
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if len(files) > 0 {
		files = append(files, envPath)
	} else if envPath != "" {
		files = []string{envPath}
	}

	// Load env files, không fatal nếu thiếu file, env variables hệ thống vẫn dùng được
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			fmt.Printf("Không load được file env %s: %v\n", f, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		panic(fmt.Sprintf("Không parse được cấu hình từ environment: %v", err))
	}
	return &cfg
}
