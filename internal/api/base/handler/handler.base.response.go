// Package basehdl chứa helper dùng chung cho các HTTP handler: chuẩn hóa response
// và bọc handler với recover để server không bao giờ chết vì panic trong request.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"github.com/clainchege2/Salon-Assistant-sub002/internal/common"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// Helper này đảm bảo tất cả JSON responses đều có charset=utf-8 để hỗ trợ UTF-8 đúng cách
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
// Format response thống nhất trong toàn bộ ứng dụng:
//
//	{ "code": ..., "message": ..., "data": ..., "status": "success" | "error" }
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			return JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
		}
		// Không phải custom error, trả về internal server error
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// SafeHandlerWrapper bọc handler với recover để bắt panic và trả response an toàn.
// Server luôn trả về response cho client, kể cả khi có panic xảy ra.
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			// Log stack trace để debug
			debug.PrintStack()

			_ = HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}
