// Package analyticsvc - CohortScorer: chấm điểm Recency/Frequency/Monetary cho TOÀN BỘ
// cohort khách của một tổ chức. Điểm là percentile TƯƠNG ĐỐI trong cohort (không phải
// ngưỡng tuyệt đối): cohort đổi thì recompute có thể đổi điểm mọi thành viên dù hành vi
// của chính họ không đổi. Đây là hành vi mong đợi, không phải bug.
package analyticsvc

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	analyticsmodels "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/models"
)

const (
	// neverVisitedDays sentinel cho khách chưa từng đến (không có lastVisitAt)
	neverVisitedDays = 999

	// midpointScore điểm mặc định khi cohort suy biến (rỗng, 1 thành viên, hoặc
	// mọi giá trị trên trục giống hệt nhau), không chia cho 0, không raise.
	midpointScore = 3

	msPerDay   = int64(24 * 60 * 60 * 1000)
	msPerMonth = 30 * msPerDay
)

// CustomerSnapshot đầu vào read-only cho chấm điểm, chụp từ salon_customers.
type CustomerSnapshot struct {
	CustomerID   primitive.ObjectID
	LastVisitAt  int64   // Unix ms, 0 = chưa từng đến
	FirstVisitAt int64   // Unix ms, 0 = chưa từng đến
	TotalVisits  int     // Tổng số lượt đến (booking completed)
	TotalSpent   float64 // Tổng chi tiêu lũy kế
}

// ScoredCustomer kết quả chấm điểm cho một khách.
type ScoredCustomer struct {
	CustomerID primitive.ObjectID
	Score      analyticsmodels.RfmScore
}

// segmentRule một rule trong bảng quyết định segment: predicate trên (r, f, m).
type segmentRule struct {
	segment string
	match   func(r, f, m int) bool
}

// segmentRules bảng quyết định segment, duyệt từ trên xuống, RULE ĐẦU TIÊN KHỚP THẮNG.
// Các rule không loại trừ lẫn nhau, thứ tự quyết định kết quả, không được đảo
// hay "sửa" overlap nếu chưa có xác nhận nghiệp vụ.
var segmentRules = []segmentRule{
	{analyticsmodels.SegmentChampions, func(r, f, m int) bool { return r >= 4 && f >= 4 && m >= 4 }},
	{analyticsmodels.SegmentLoyal, func(r, f, m int) bool { return r >= 3 && f >= 4 && m >= 3 }},
	{analyticsmodels.SegmentCantLoseThem, func(r, f, m int) bool { return r <= 2 && f >= 4 && m >= 4 }},
	{analyticsmodels.SegmentAtRisk, func(r, f, m int) bool { return r <= 2 && f >= 3 && m >= 3 }},
	{analyticsmodels.SegmentPotentialLoyalist, func(r, f, m int) bool { return r >= 4 && f >= 2 && f <= 3 }},
	{analyticsmodels.SegmentNewCustomers, func(r, f, m int) bool { return r >= 4 && f <= 2 && m <= 3 }},
	{analyticsmodels.SegmentPromising, func(r, f, m int) bool { return r >= 3 && f <= 2 && m <= 2 }},
	{analyticsmodels.SegmentNeedAttention, func(r, f, m int) bool {
		return r >= 2 && r <= 3 && f >= 2 && f <= 3
	}},
	{analyticsmodels.SegmentAboutToSleep, func(r, f, m int) bool { return r >= 2 && r <= 3 && f <= 2 }},
	{analyticsmodels.SegmentHibernating, func(r, f, m int) bool { return r <= 2 && f >= 2 && f <= 3 }},
}

// ClassifySegment trả về segment cho một bộ điểm (r, f, m), hàm thuần, cùng bộ điểm
// luôn ra cùng segment. Không rule nào khớp -> lost.
func ClassifySegment(r, f, m int) string {
	for _, rule := range segmentRules {
		if rule.match(r, f, m) {
			return rule.segment
		}
	}
	return analyticsmodels.SegmentLost
}

// ScoreCohort chấm điểm RFM cho toàn bộ cohort. Luôn chạy trên CẢ cohort một lượt -
// percentile rank vô nghĩa cho một khách đơn lẻ. Cohort rỗng trả về slice rỗng.
func ScoreCohort(snapshots []CustomerSnapshot, now time.Time) []ScoredCustomer {
	n := len(snapshots)
	if n == 0 {
		return []ScoredCustomer{}
	}

	nowMs := now.UnixMilli()
	computedAt := nowMs

	// Metric thô từng khách
	daysSince := make([]float64, n)
	visitsPerMonth := make([]float64, n)
	avgTicket := make([]float64, n)
	for i, s := range snapshots {
		daysSince[i] = float64(rawDaysSinceLastVisit(s.LastVisitAt, nowMs))
		visitsPerMonth[i] = rawVisitsPerMonth(s.TotalVisits, s.FirstVisitAt, nowMs)
		avgTicket[i] = rawAvgTicket(s.TotalSpent, s.TotalVisits)
	}

	// Điểm percentile từng trục. Recency đảo chiều: càng ít ngày càng điểm cao.
	recencyScores := scoreAxis(daysSince, true)
	frequencyScores := scoreAxis(visitsPerMonth, false)
	monetaryScores := scoreAxis(avgTicket, false)

	out := make([]ScoredCustomer, n)
	for i, s := range snapshots {
		r, f, m := recencyScores[i], frequencyScores[i], monetaryScores[i]
		out[i] = ScoredCustomer{
			CustomerID: s.CustomerID,
			Score: analyticsmodels.RfmScore{
				RecencyScore:   r,
				FrequencyScore: f,
				MonetaryScore:  m,
				CombinedScore:  r + f + m,
				Segment:        ClassifySegment(r, f, m),
				ComputedAt:     computedAt,
				Metrics: analyticsmodels.RfmMetrics{
					DaysSinceLastVisit: int(daysSince[i]),
					VisitsPerMonth:     visitsPerMonth[i],
					AvgTicket:          avgTicket[i],
				},
			},
		}
	}
	return out
}

// rawDaysSinceLastVisit số ngày từ lần đến gần nhất. 999 nếu chưa từng đến.
func rawDaysSinceLastVisit(lastVisitAt, nowMs int64) int64 {
	if lastVisitAt <= 0 {
		return neverVisitedDays
	}
	d := (nowMs - lastVisitAt) / msPerDay
	if d < 0 {
		d = 0
	}
	return d
}

// rawVisitsPerMonth tần suất: totalVisits / max(số tháng từ lần đến đầu, 1).
func rawVisitsPerMonth(totalVisits int, firstVisitAt, nowMs int64) float64 {
	months := float64(1)
	if firstVisitAt > 0 && nowMs > firstVisitAt {
		months = float64(nowMs-firstVisitAt) / float64(msPerMonth)
		if months < 1 {
			months = 1
		}
	}
	return float64(totalVisits) / months
}

// rawAvgTicket giá trị trung bình mỗi lượt: totalSpent / max(totalVisits, 1).
func rawAvgTicket(totalSpent float64, totalVisits int) float64 {
	visits := totalVisits
	if visits < 1 {
		visits = 1
	}
	return totalSpent / float64(visits)
}

// scoreAxis chấm điểm 1..5 cho một trục bằng percentile rank trong cohort.
// Rank dùng mid-rank: (số giá trị nhỏ hơn + 0.5 * số giá trị bằng) / n, nhờ đó cohort
// mọi giá trị giống nhau (hoặc 1 thành viên) tự rơi về rank 0.5 -> điểm 3, không cần nhánh riêng.
// inverted = true cho Recency: giá trị thấp (mới đến gần đây) -> điểm cao.
func scoreAxis(values []float64, inverted bool) []int {
	n := len(values)
	scores := make([]int, n)
	if n == 0 {
		return scores
	}

	// Cohort suy biến trên trục này: mọi điểm về midpoint
	if allEqual(values) {
		for i := range scores {
			scores[i] = midpointScore
		}
		return scores
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	for i, v := range values {
		below := sort.SearchFloat64s(sorted, v)
		upper := sort.Search(n, func(j int) bool { return sorted[j] > v })
		equal := upper - below
		rank := (float64(below) + 0.5*float64(equal)) / float64(n)
		q := quintileScore(rank)
		if inverted {
			q = 6 - q
		}
		scores[i] = q
	}
	return scores
}

// quintileScore map percentile rank (0..1] về điểm 1..5 theo breakpoint cố định.
func quintileScore(rank float64) int {
	switch {
	case rank <= 0.2:
		return 1
	case rank <= 0.4:
		return 2
	case rank <= 0.6:
		return 3
	case rank <= 0.8:
		return 4
	default:
		return 5
	}
}

func allEqual(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[0] {
			return false
		}
	}
	return true
}
