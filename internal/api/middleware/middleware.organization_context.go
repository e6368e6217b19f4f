// Package middleware chứa các middleware dùng chung cho HTTP layer.
package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrganizationContextMiddleware đọc X-Organization-ID từ header và lưu vào context.
// Authentication do gateway phía trước xử lý, service này chỉ cần biết tổ chức nào
// đang được thao tác. Header thiếu hoặc không hợp lệ: cho request đi tiếp, handler
// sẽ tự từ chối khi không có organization context.
func OrganizationContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		orgIDStr := c.Get("X-Organization-ID")
		if orgIDStr == "" {
			return c.Next()
		}

		orgID, err := primitive.ObjectIDFromHex(orgIDStr)
		if err != nil {
			// Organization ID không hợp lệ, không set context
			return c.Next()
		}

		c.Locals("active_organization_id", orgID.Hex())
		return c.Next()
	}
}
