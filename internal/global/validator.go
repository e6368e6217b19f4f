package global

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// windowIDPattern các window ID dạng nhiều năm: 1Y..20Y
var windowIDPattern = regexp.MustCompile(`^([1-9]|1[0-9]|20)Y$`)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("report_window", validateReportWindow)
	_ = Validate.RegisterValidation("report_date", validateReportDate)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateReportWindow kiểm tra window ID tượng trưng của báo cáo.
// Hợp lệ: 1D | 7D | 30D | 90D | 180D | 1Y..20Y | ALL (rỗng = optional, dùng custom from/to).
func validateReportWindow(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "1D", "7D", "30D", "90D", "180D", "ALL":
		return true
	}
	return windowIDPattern.MatchString(value)
}

// reportDatePattern định dạng dd-mm-yyyy cho from/to của custom range
var reportDatePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// validateReportDate kiểm tra định dạng ngày dd-mm-yyyy (rỗng = optional)
func validateReportDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return reportDatePattern.MatchString(value)
}
