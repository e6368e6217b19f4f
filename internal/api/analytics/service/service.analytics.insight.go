package analyticsvc

import (
	"fmt"

	analyticsdto "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/dto"
)

// Ngưỡng % cho câu nhận định doanh thu. Cận biên rơi về mức THẤP hơn
// (delta = 15 là "steady growth", không phải "surged").
const (
	revenueSurgeThreshold  = 15.0
	revenueSteadyThreshold = 5.0
	revenueUrgentThreshold = -5.0
	visitDropThreshold     = -10.0
)

// InsightGenerator sinh câu nhận định ngôn ngữ tự nhiên từ totals của 2 kỳ.
// Thuần và stateless: không đọc DB, không persist, cùng đầu vào luôn ra cùng đầu ra.
type InsightGenerator struct{}

// NewInsightGenerator khởi tạo InsightGenerator.
func NewInsightGenerator() *InsightGenerator {
	return &InsightGenerator{}
}

// GenerateInsights sinh danh sách insight cho một kỳ báo cáo, so với kỳ liền trước.
// Luôn trả về đúng 3 câu theo thứ tự: revenue, activity, trend.
func (g *InsightGenerator) GenerateInsights(current, previous analyticsdto.PeriodTotals, windowLabel string) []analyticsdto.InsightStatement {
	return []analyticsdto.InsightStatement{
		g.revenueInsight(current, previous, windowLabel),
		g.visitActivityInsight(current, previous),
		g.trendInsight(current),
	}
}

// revenueInsight câu nhận định doanh thu theo thang ngưỡng cố định.
// Kỳ trước = 0 -> không có baseline, trả về câu "chưa đủ dữ liệu" thay vì bịa ra %.
func (g *InsightGenerator) revenueInsight(current, previous analyticsdto.PeriodTotals, windowLabel string) analyticsdto.InsightStatement {
	delta, ok := PercentDelta(current.Revenue, previous.Revenue)
	if !ok {
		return analyticsdto.InsightStatement{
			Text:     fmt.Sprintf("Not enough prior data to compare revenue for the last %s.", windowLabel),
			Category: analyticsdto.InsightCategoryRevenue,
			Severity: analyticsdto.SeverityInfo,
		}
	}

	var text string
	var severity analyticsdto.InsightSeverity
	switch {
	case delta > revenueSurgeThreshold:
		text = fmt.Sprintf("Revenue surged %.1f%% over the last %s. Great momentum!", delta, windowLabel)
		severity = analyticsdto.SeverityPositive
	case delta > revenueSteadyThreshold:
		text = fmt.Sprintf("Revenue grew a steady %.1f%% over the last %s.", delta, windowLabel)
		severity = analyticsdto.SeverityPositive
	case delta > 0:
		text = fmt.Sprintf("Revenue is up %.1f%% over the last %s. Keep the momentum going.", delta, windowLabel)
		severity = analyticsdto.SeverityPositive
	case delta >= revenueUrgentThreshold:
		text = fmt.Sprintf("Revenue dipped %.1f%% over the last %s. Worth keeping an eye on.", -delta, windowLabel)
		severity = analyticsdto.SeverityInfo
	default:
		text = fmt.Sprintf("Revenue dropped %.1f%% over the last %s. This needs attention.", -delta, windowLabel)
		severity = analyticsdto.SeverityWarning
	}

	return analyticsdto.InsightStatement{
		Text:     text,
		Category: analyticsdto.InsightCategoryRevenue,
		Severity: severity,
	}
}

// visitActivityInsight cảnh báo khi số lượt giảm quá 10% so với kỳ trước,
// ngược lại trả về câu trung tính "không có gì đáng lo". Giảm ĐÚNG 10% chưa
// kích hoạt cảnh báo. Kỳ trước = 0 -> không có baseline để so, cũng trung tính.
func (g *InsightGenerator) visitActivityInsight(current, previous analyticsdto.PeriodTotals) analyticsdto.InsightStatement {
	delta, ok := PercentDelta(float64(current.VisitCount), float64(previous.VisitCount))
	if ok && delta < visitDropThreshold {
		return analyticsdto.InsightStatement{
			Text:     fmt.Sprintf("Customer visits fell %.1f%% versus the previous period. Consider a re-engagement campaign.", -delta),
			Category: analyticsdto.InsightCategoryWarning,
			Severity: analyticsdto.SeverityWarning,
		}
	}
	return analyticsdto.InsightStatement{
		Text:     "Customer visit activity looks healthy. No concerns this period.",
		Category: analyticsdto.InsightCategoryWarning,
		Severity: analyticsdto.SeverityInfo,
	}
}

// trendInsight câu về dịch vụ nổi bật. Không có dữ liệu dịch vụ -> câu gợi ý chung chung.
func (g *InsightGenerator) trendInsight(current analyticsdto.PeriodTotals) analyticsdto.InsightStatement {
	if current.TopService == "" {
		return analyticsdto.InsightStatement{
			Text:     "No standout service this period. Try promoting a signature treatment to build repeat demand.",
			Category: analyticsdto.InsightCategoryTrend,
			Severity: analyticsdto.SeverityInfo,
		}
	}
	return analyticsdto.InsightStatement{
		Text:     fmt.Sprintf("%s is your top earner this period with %d visits.", current.TopService, current.TopServiceVisits),
		Category: analyticsdto.InsightCategoryTrend,
		Severity: analyticsdto.SeverityInfo,
	}
}
