// Package router đăng ký các route thuộc domain Analytics: revenue, insights, segments, recompute RFM.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	analyticshdl "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/handler"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/api/middleware"
	apirouter "github.com/clainchege2/Salon-Assistant-sub002/internal/api/router"
)

// Register đăng ký tất cả route analytics lên v1: revenue, insights, segments, rfm/recompute.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	analyticsHandler, err := analyticshdl.NewAnalyticsHandler()
	if err != nil {
		return fmt.Errorf("create analytics handler: %w", err)
	}

	orgContextMiddleware := middleware.OrganizationContextMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/revenue", []fiber.Handler{orgContextMiddleware}, analyticsHandler.HandleRevenueReport)
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/insights", []fiber.Handler{orgContextMiddleware}, analyticsHandler.HandleInsights)
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/segments", []fiber.Handler{orgContextMiddleware}, analyticsHandler.HandleSegmentDistribution)
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "POST", "/rfm/recompute", []fiber.Handler{orgContextMiddleware}, analyticsHandler.HandleRfmRecompute)

	return nil
}
