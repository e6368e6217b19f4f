// Package analyticsdto chứa DTO cho domain Analytics (report window, bucket series, RFM, insight).
package analyticsdto

// ReportDateFormat định dạng ngày cho from/to của custom range (dd-mm-yyyy).
const ReportDateFormat = "02-01-2006"

// Granularity độ rộng bucket của một report window.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ReportWindow khoảng báo cáo đã resolve: [StartMs, EndMs) + granularity + số bucket.
// Request-scoped, tạo và bỏ theo từng call. Invariant: StartMs < EndMs;
// PointCount = số bucket start trong khoảng, luôn trong [1, ~400].
type ReportWindow struct {
	WindowID    string      `json:"windowId,omitempty"` // ID tượng trưng đã resolve (rỗng nếu custom)
	StartMs     int64       `json:"startMs"`            // Unix ms, inclusive
	EndMs       int64       `json:"endMs"`              // Unix ms, exclusive
	Granularity Granularity `json:"granularity"`        // day | week | month | year
	PointCount  int         `json:"pointCount"`         // Số bucket trong window
}

// BucketPoint một bucket trong series: mốc bắt đầu + label + tổng tiền + số sự kiện.
type BucketPoint struct {
	BucketStartMs int64   `json:"bucketStartMs"` // Unix ms, đầu bucket (đã truncate theo granularity)
	Label         string  `json:"label"`         // Label hiển thị, hàm thuần của (bucketStart, granularity)
	Total         float64 `json:"total"`         // Tổng giá trị tiền trong bucket
	Count         int64   `json:"count"`         // Số sự kiện trong bucket
}

// BucketSeries chuỗi bucket tăng dần theo thời gian, dày đặc (bucket rỗng vẫn có mặt với 0).
type BucketSeries []BucketPoint

// PeriodTotals tổng của một kỳ, đầu vào cho so sánh kỳ trước và insight.
type PeriodTotals struct {
	Revenue          float64 `json:"revenue"`                    // Tổng doanh thu trong kỳ
	VisitCount       int64   `json:"visitCount"`                 // Tổng số sự kiện (booking completed)
	TopService       string  `json:"topService,omitempty"`       // Dịch vụ doanh thu cao nhất trong kỳ
	TopServiceVisits int64   `json:"topServiceVisits,omitempty"` // Số lượt của dịch vụ đó
}

// PercentDeltas % thay đổi so với kỳ trước. nil = kỳ trước bằng 0 (insufficient data) -
// caller phải xử lý sentinel này, không render như một con số %.
type PercentDeltas struct {
	Revenue    *float64 `json:"revenue"`    // % thay đổi doanh thu (nil nếu kỳ trước = 0)
	VisitCount *float64 `json:"visitCount"` // % thay đổi số lượt (nil nếu kỳ trước = 0)
}

// RevenueReportResult kết quả aggregate cho một window: 2 series thẳng hàng + totals + deltas.
type RevenueReportResult struct {
	Window         *ReportWindow `json:"window"`
	Current        BucketSeries  `json:"current"`        // Series của kỳ hiện tại
	Previous       BucketSeries  `json:"previous"`       // Series của kỳ trước (cùng span, lùi đúng 1 span)
	Totals         PeriodTotals  `json:"totals"`         // Tổng kỳ hiện tại
	PreviousTotals PeriodTotals  `json:"previousTotals"` // Tổng kỳ trước
	Deltas         PercentDeltas `json:"deltas"`
}

// InsightCategory phân loại insight.
type InsightCategory string

const (
	InsightCategoryRevenue InsightCategory = "revenue"
	InsightCategoryTrend   InsightCategory = "trend"
	InsightCategoryWarning InsightCategory = "warning"
)

// InsightSeverity mức độ của insight.
type InsightSeverity string

const (
	SeverityPositive InsightSeverity = "positive"
	SeverityWarning  InsightSeverity = "warning"
	SeverityInfo     InsightSeverity = "info"
)

// InsightStatement một câu nhận định, stateless, sinh lại mỗi request, không persist.
type InsightStatement struct {
	Text     string          `json:"text"`
	Category InsightCategory `json:"category"` // revenue | trend | warning
	Severity InsightSeverity `json:"severity"` // positive | warning | info
}

// ReportQueryParams query cho GET revenue/insights: window tượng trưng HOẶC from/to custom.
type ReportQueryParams struct {
	Window string `query:"window" validate:"report_window"` // 1D|7D|30D|90D|180D|1Y..20Y|ALL
	From   string `query:"from" validate:"report_date"`     // dd-mm-yyyy (custom range)
	To     string `query:"to" validate:"report_date"`       // dd-mm-yyyy (custom range)
}

// SegmentDistribution phân bố segment của một cohort: segment -> số khách.
type SegmentDistribution map[string]int64

// ScoreCohortResult kết quả recompute RFM cho một tổ chức.
type ScoreCohortResult struct {
	CohortSize   int                 `json:"cohortSize"`   // Số khách được chấm điểm
	Distribution SegmentDistribution `json:"distribution"` // Phân bố segment sau khi chấm
	ComputedAt   int64               `json:"computedAt"`   // Unix ms
}
