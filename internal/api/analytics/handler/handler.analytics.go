// Package analyticshdl chứa HTTP handler cho domain Analytics:
// báo cáo doanh thu, insight, phân bố segment và recompute RFM.
package analyticshdl

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	analyticsdto "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/dto"
	analyticsvc "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/service"
	basehdl "github.com/clainchege2/Salon-Assistant-sub002/internal/api/base/handler"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/common"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/global"
)

// AnalyticsHandler xử lý API analytics: GET revenue, GET insights, GET segments, POST recompute.
type AnalyticsHandler struct {
	AnalyticsService *analyticsvc.AnalyticsService
}

// NewAnalyticsHandler tạo mới AnalyticsHandler.
func NewAnalyticsHandler() (*AnalyticsHandler, error) {
	svc, err := analyticsvc.NewAnalyticsService()
	if err != nil {
		return nil, fmt.Errorf("tạo AnalyticsService: %w", err)
	}
	return &AnalyticsHandler{
		AnalyticsService: svc,
	}, nil
}

// HandleRevenueReport xử lý GET /analytics/revenue, báo cáo doanh thu theo window.
// URL: GET /api/v1/analytics/revenue?window=7D hoặc ?from=01-01-2025&to=31-01-2025
func (h *AnalyticsHandler) HandleRevenueReport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orgID := getActiveOrganizationID(c)
		if orgID == nil || orgID.IsZero() {
			return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Thiếu header X-Organization-ID", "status": "error",
			})
		}

		params, err := bindReportQueryParams(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		result, err := h.AnalyticsService.GetRevenueReport(c.Context(), *orgID, params, time.Now())
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleInsights xử lý GET /analytics/insights, câu nhận định ngôn ngữ tự nhiên cho dashboard.
// URL: GET /api/v1/analytics/insights?window=30D
func (h *AnalyticsHandler) HandleInsights(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orgID := getActiveOrganizationID(c)
		if orgID == nil || orgID.IsZero() {
			return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Thiếu header X-Organization-ID", "status": "error",
			})
		}

		params, err := bindReportQueryParams(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		insights, err := h.AnalyticsService.GetInsights(c.Context(), *orgID, params, time.Now())
		return basehdl.HandleResponse(c, insights, err)
	})
}

// HandleSegmentDistribution xử lý GET /analytics/segments, phân bố segment RFM hiện tại.
// URL: GET /api/v1/analytics/segments
func (h *AnalyticsHandler) HandleSegmentDistribution(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orgID := getActiveOrganizationID(c)
		if orgID == nil || orgID.IsZero() {
			return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Thiếu header X-Organization-ID", "status": "error",
			})
		}

		distribution, err := h.AnalyticsService.GetSegmentDistribution(c.Context(), *orgID)
		return basehdl.HandleResponse(c, distribution, err)
	})
}

// HandleRfmRecompute xử lý POST /analytics/rfm/recompute, chấm lại điểm RFM cho
// toàn bộ cohort của tổ chức. Idempotent: gọi lại với cùng dữ liệu ra cùng kết quả.
// URL: POST /api/v1/analytics/rfm/recompute
func (h *AnalyticsHandler) HandleRfmRecompute(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orgID := getActiveOrganizationID(c)
		if orgID == nil || orgID.IsZero() {
			return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Thiếu header X-Organization-ID", "status": "error",
			})
		}

		result, err := h.AnalyticsService.ScoreCohortForOrganization(c.Context(), *orgID, time.Now())
		return basehdl.HandleResponse(c, result, err)
	})
}

// bindReportQueryParams bind và validate query params báo cáo (window hoặc from/to).
func bindReportQueryParams(c fiber.Ctx) (analyticsdto.ReportQueryParams, error) {
	params := analyticsdto.ReportQueryParams{
		Window: c.Query("window"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	if err := global.Validate.Struct(params); err != nil {
		return params, common.NewError(common.ErrCodeValidationInput,
			"Tham số báo cáo không hợp lệ (window: 1D|7D|30D|90D|180D|1Y..20Y|ALL, from/to: dd-mm-yyyy)",
			common.StatusBadRequest, err.Error())
	}
	return params, nil
}

// getActiveOrganizationID lấy organization ID từ context (đã được set bởi middleware).
func getActiveOrganizationID(c fiber.Ctx) *primitive.ObjectID {
	orgIDStr, ok := c.Locals("active_organization_id").(string)
	if !ok || orgIDStr == "" {
		return nil
	}
	orgID, err := primitive.ObjectIDFromHex(orgIDStr)
	if err != nil {
		return nil
	}
	return &orgID
}
