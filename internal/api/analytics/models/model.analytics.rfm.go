// Package models - RfmScore thuộc domain Analytics.
// Điểm Recency/Frequency/Monetary được CohortScorer tính trên toàn bộ cohort của một
// tổ chức và ghi đè vào field rfm của salon_customers sau mỗi lần recompute.
package models

// Các segment vòng đời khách hàng (11 giá trị).
// Thứ tự khai báo trùng thứ tự bảng quyết định trong CohortScorer, rule đầu tiên khớp thắng.
const (
	SegmentChampions         = "champions"
	SegmentLoyal             = "loyal"
	SegmentCantLoseThem      = "cantLoseThem"
	SegmentAtRisk            = "atRisk"
	SegmentPotentialLoyalist = "potentialLoyalist"
	SegmentNewCustomers      = "newCustomers"
	SegmentPromising         = "promising"
	SegmentNeedAttention     = "needAttention"
	SegmentAboutToSleep      = "aboutToSleep"
	SegmentHibernating       = "hibernating"
	SegmentLost              = "lost"
)

// AllSegments danh sách segment theo thứ tự ưu tiên của bảng quyết định.
var AllSegments = []string{
	SegmentChampions,
	SegmentLoyal,
	SegmentCantLoseThem,
	SegmentAtRisk,
	SegmentPotentialLoyalist,
	SegmentNewCustomers,
	SegmentPromising,
	SegmentNeedAttention,
	SegmentAboutToSleep,
	SegmentHibernating,
	SegmentLost,
}

// RfmMetrics các metric thô dùng để chấm điểm, lưu kèm để dashboard giải thích điểm.
type RfmMetrics struct {
	DaysSinceLastVisit int     `json:"daysSinceLastVisit" bson:"daysSinceLastVisit"` // 999 nếu khách chưa từng đến
	VisitsPerMonth     float64 `json:"visitsPerMonth" bson:"visitsPerMonth"`         // totalVisits / max(tháng từ lần đầu, 1)
	AvgTicket          float64 `json:"avgTicket" bson:"avgTicket"`                   // totalSpent / max(totalVisits, 1)
}

// RfmScore điểm RFM của một khách, tương đối so với cohort tại thời điểm tính.
// Recompute sau khi cohort thay đổi có thể đổi điểm của mọi thành viên dù hành vi
// của chính họ không đổi, đây là hành vi mong đợi của chấm điểm percentile.
type RfmScore struct {
	RecencyScore   int    `json:"recencyScore" bson:"recencyScore"`     // 1..5, càng mới đến càng cao
	FrequencyScore int    `json:"frequencyScore" bson:"frequencyScore"` // 1..5, càng hay đến càng cao
	MonetaryScore  int    `json:"monetaryScore" bson:"monetaryScore"`   // 1..5, chi tiêu trung bình càng cao càng cao
	CombinedScore  int    `json:"combinedScore" bson:"combinedScore"`   // 3..15, tổng 3 trục
	Segment        string `json:"segment" bson:"segment"`               // 1 trong 11 segment
	ComputedAt     int64  `json:"computedAt" bson:"computedAt"`         // Unix ms, thời điểm tính

	Metrics RfmMetrics `json:"metrics" bson:"metrics"`
}
