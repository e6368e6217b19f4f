// Package worker - RfmRefreshWorker chấm lại điểm RFM cho cohort khách của từng tổ chức
// theo chu kỳ. Điểm RFM là percentile tương đối trong cohort nên sẽ trôi dần theo thời gian
// nếu không tính lại, kể cả khi không có booking mới.
package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	analyticsvc "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/service"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/logger"
)

// RfmRefreshWorker worker tính lại điểm RFM định kỳ.
//
// Mỗi lần chạy: quét danh sách tổ chức đang có khách, chấm lại TOÀN BỘ cohort của từng
// tổ chức một lượt (percentile rank vô nghĩa cho khách đơn lẻ). Một tổ chức lỗi không
// chặn các tổ chức còn lại.
type RfmRefreshWorker struct {
	analyticsService *analyticsvc.AnalyticsService
	interval         time.Duration // Khoảng thời gian giữa các lần chạy (vd: 24h)
}

// NewRfmRefreshWorker tạo worker mới.
//
// Tham số:
//   - interval: Khoảng cách giữa các lần chạy (mặc định: 24h, tối thiểu: 1h)
func NewRfmRefreshWorker(interval time.Duration) (*RfmRefreshWorker, error) {
	analyticsService, err := analyticsvc.NewAnalyticsService()
	if err != nil {
		return nil, err
	}
	if interval < time.Hour {
		interval = 24 * time.Hour
	}
	return &RfmRefreshWorker{
		analyticsService: analyticsService,
		interval:         interval,
	}, nil
}

// Start chạy worker trong vòng lặp.
func (w *RfmRefreshWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("📊 [RFM_REFRESH] Starting RFM Refresh Worker...")

	// Chạy ngay lần đầu sau 1 phút (tránh chạy lúc startup)
	time.Sleep(time.Minute)

	for {
		select {
		case <-ctx.Done():
			log.Info("📊 [RFM_REFRESH] RFM Refresh Worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx, log)
		}
	}
}

// runOnce chạy một đợt refresh: quét tổ chức -> chấm lại RFM cho từng cohort.
func (w *RfmRefreshWorker) runOnce(ctx context.Context, log *logrus.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("📊 [RFM_REFRESH] Panic khi xử lý, sẽ tiếp tục lần chạy tiếp theo")
		}
	}()

	orgIDs, err := w.analyticsService.ListOrganizationIDs(ctx)
	if err != nil {
		log.WithError(err).Error("📊 [RFM_REFRESH] Lỗi lấy danh sách tổ chức cần refresh")
		return
	}

	now := time.Now()
	totalScored := 0
	for _, orgID := range orgIDs {
		result, err := w.analyticsService.ScoreCohortForOrganization(ctx, orgID, now)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"organizationId": orgID.Hex(),
			}).Warn("📊 [RFM_REFRESH] Chấm điểm RFM thất bại, bỏ qua tổ chức này")
			continue
		}
		totalScored += result.CohortSize
	}

	if totalScored > 0 {
		log.WithFields(map[string]interface{}{
			"organizations": len(orgIDs),
			"totalScored":   totalScored,
		}).Info("📊 [RFM_REFRESH] Đã chấm lại điểm RFM")
	}
}
