// Package analyticsvc - Test CohortScorer: điểm percentile tương đối trong cohort,
// cohort suy biến, sentinel chưa-từng-đến và bảng quyết định segment.
package analyticsvc

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	analyticsmodels "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/models"
)

func rfmTestNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

// Cohort 3 khách chỉ khác nhau về tần suất (recency và giá trị trung bình giống hệt):
// visits [1, 5, 10] phải cho frequency score [1, 3, 5], các trục còn lại là 3.
func TestScoreCohort_FrequencySpread(t *testing.T) {
	now := rfmTestNow()
	lastVisit := now.AddDate(0, 0, -3).UnixMilli()
	firstVisit := now.UnixMilli() - 30*msPerDay // Đúng 1 tháng -> visitsPerMonth = totalVisits

	snapshots := []CustomerSnapshot{
		{CustomerID: primitive.NewObjectID(), LastVisitAt: lastVisit, FirstVisitAt: firstVisit, TotalVisits: 1, TotalSpent: 50},
		{CustomerID: primitive.NewObjectID(), LastVisitAt: lastVisit, FirstVisitAt: firstVisit, TotalVisits: 5, TotalSpent: 250},
		{CustomerID: primitive.NewObjectID(), LastVisitAt: lastVisit, FirstVisitAt: firstVisit, TotalVisits: 10, TotalSpent: 500},
	}

	scored := ScoreCohort(snapshots, now)
	if len(scored) != 3 {
		t.Fatalf("len(scored) = %d, muốn 3", len(scored))
	}

	wantFrequency := []int{1, 3, 5}
	for i, sc := range scored {
		if sc.Score.FrequencyScore != wantFrequency[i] {
			t.Errorf("Khách %d: FrequencyScore = %d, muốn %d", i, sc.Score.FrequencyScore, wantFrequency[i])
		}
		// Recency và monetary giống hệt nhau trong cohort -> điểm giữa thang
		if sc.Score.RecencyScore != 3 {
			t.Errorf("Khách %d: RecencyScore = %d, muốn 3 (trục suy biến)", i, sc.Score.RecencyScore)
		}
		if sc.Score.MonetaryScore != 3 {
			t.Errorf("Khách %d: MonetaryScore = %d, muốn 3 (trục suy biến)", i, sc.Score.MonetaryScore)
		}
		if sc.Score.CombinedScore != sc.Score.RecencyScore+sc.Score.FrequencyScore+sc.Score.MonetaryScore {
			t.Errorf("Khách %d: CombinedScore = %d không bằng tổng ba trục", i, sc.Score.CombinedScore)
		}
	}

	// Segment theo bảng quyết định: (3,1,3) -> aboutToSleep, (3,3,3) -> needAttention, (3,5,3) -> loyal
	wantSegments := []string{
		analyticsmodels.SegmentAboutToSleep,
		analyticsmodels.SegmentNeedAttention,
		analyticsmodels.SegmentLoyal,
	}
	for i, sc := range scored {
		if sc.Score.Segment != wantSegments[i] {
			t.Errorf("Khách %d: Segment = %s, muốn %s", i, sc.Score.Segment, wantSegments[i])
		}
	}
}

// Cohort mọi khách giống hệt nhau: mọi điểm về 3, không chia cho 0, không panic.
func TestScoreCohort_IdenticalCohort(t *testing.T) {
	now := rfmTestNow()
	lastVisit := now.AddDate(0, 0, -10).UnixMilli()
	firstVisit := now.AddDate(0, -6, 0).UnixMilli()

	snapshots := make([]CustomerSnapshot, 4)
	for i := range snapshots {
		snapshots[i] = CustomerSnapshot{
			CustomerID:   primitive.NewObjectID(),
			LastVisitAt:  lastVisit,
			FirstVisitAt: firstVisit,
			TotalVisits:  6,
			TotalSpent:   300,
		}
	}

	for _, sc := range ScoreCohort(snapshots, now) {
		if sc.Score.RecencyScore != 3 || sc.Score.FrequencyScore != 3 || sc.Score.MonetaryScore != 3 {
			t.Errorf("Cohort đồng nhất phải cho điểm (3,3,3), nhận (%d,%d,%d)",
				sc.Score.RecencyScore, sc.Score.FrequencyScore, sc.Score.MonetaryScore)
		}
		if sc.Score.Segment != analyticsmodels.SegmentNeedAttention {
			t.Errorf("Segment = %s, muốn needAttention cho bộ điểm (3,3,3)", sc.Score.Segment)
		}
	}
}

func TestScoreCohort_SingleCustomer(t *testing.T) {
	now := rfmTestNow()
	snapshots := []CustomerSnapshot{{
		CustomerID:   primitive.NewObjectID(),
		LastVisitAt:  now.AddDate(0, 0, -1).UnixMilli(),
		FirstVisitAt: now.AddDate(0, -3, 0).UnixMilli(),
		TotalVisits:  12,
		TotalSpent:   900,
	}}

	scored := ScoreCohort(snapshots, now)
	if len(scored) != 1 {
		t.Fatalf("len(scored) = %d, muốn 1", len(scored))
	}
	sc := scored[0].Score
	if sc.RecencyScore != 3 || sc.FrequencyScore != 3 || sc.MonetaryScore != 3 {
		t.Errorf("Cohort 1 khách phải cho điểm (3,3,3), nhận (%d,%d,%d)",
			sc.RecencyScore, sc.FrequencyScore, sc.MonetaryScore)
	}
}

func TestScoreCohort_EmptyCohort(t *testing.T) {
	scored := ScoreCohort(nil, rfmTestNow())
	if scored == nil {
		t.Fatal("ScoreCohort(nil) phải trả về slice rỗng, không phải nil")
	}
	if len(scored) != 0 {
		t.Errorf("len(scored) = %d, muốn 0", len(scored))
	}
}

func TestScoreCohort_NeverVisitedSentinel(t *testing.T) {
	now := rfmTestNow()
	snapshots := []CustomerSnapshot{
		{CustomerID: primitive.NewObjectID(), LastVisitAt: 0, FirstVisitAt: 0, TotalVisits: 0, TotalSpent: 0},
		{CustomerID: primitive.NewObjectID(), LastVisitAt: now.AddDate(0, 0, -2).UnixMilli(), FirstVisitAt: now.AddDate(0, -1, 0).UnixMilli(), TotalVisits: 4, TotalSpent: 200},
	}

	scored := ScoreCohort(snapshots, now)
	if scored[0].Score.Metrics.DaysSinceLastVisit != neverVisitedDays {
		t.Errorf("Khách chưa từng đến: DaysSinceLastVisit = %d, muốn sentinel %d",
			scored[0].Score.Metrics.DaysSinceLastVisit, neverVisitedDays)
	}
	// Sentinel đẩy khách chưa từng đến xuống đáy trục recency
	if scored[0].Score.RecencyScore >= scored[1].Score.RecencyScore {
		t.Errorf("Khách chưa từng đến phải có recency thấp hơn: %d >= %d",
			scored[0].Score.RecencyScore, scored[1].Score.RecencyScore)
	}
}

// Cùng đầu vào phải luôn cho cùng đầu ra (trừ ComputedAt phụ thuộc now truyền vào).
func TestScoreCohort_Deterministic(t *testing.T) {
	now := rfmTestNow()
	snapshots := []CustomerSnapshot{
		{CustomerID: primitive.NewObjectID(), LastVisitAt: now.AddDate(0, 0, -1).UnixMilli(), FirstVisitAt: now.AddDate(0, -2, 0).UnixMilli(), TotalVisits: 8, TotalSpent: 640},
		{CustomerID: primitive.NewObjectID(), LastVisitAt: now.AddDate(0, 0, -40).UnixMilli(), FirstVisitAt: now.AddDate(0, -8, 0).UnixMilli(), TotalVisits: 3, TotalSpent: 90},
		{CustomerID: primitive.NewObjectID(), LastVisitAt: now.AddDate(0, 0, -200).UnixMilli(), FirstVisitAt: now.AddDate(-2, 0, 0).UnixMilli(), TotalVisits: 1, TotalSpent: 30},
	}

	first := ScoreCohort(snapshots, now)
	second := ScoreCohort(snapshots, now)
	for i := range first {
		if first[i].Score != second[i].Score {
			t.Errorf("Khách %d: hai lần chấm cho kết quả khác nhau: %+v vs %+v",
				i, first[i].Score, second[i].Score)
		}
	}
}

func TestClassifySegment_DecisionTable(t *testing.T) {
	cases := []struct {
		r, f, m int
		want    string
	}{
		{5, 5, 5, analyticsmodels.SegmentChampions},
		{4, 4, 4, analyticsmodels.SegmentChampions},
		{3, 4, 3, analyticsmodels.SegmentLoyal},
		{3, 5, 5, analyticsmodels.SegmentLoyal},
		{2, 4, 4, analyticsmodels.SegmentCantLoseThem},
		{1, 5, 5, analyticsmodels.SegmentCantLoseThem},
		{2, 3, 3, analyticsmodels.SegmentAtRisk},
		{1, 4, 3, analyticsmodels.SegmentAtRisk},
		{4, 2, 5, analyticsmodels.SegmentPotentialLoyalist},
		{5, 3, 1, analyticsmodels.SegmentPotentialLoyalist},
		{5, 1, 3, analyticsmodels.SegmentNewCustomers},
		{4, 1, 1, analyticsmodels.SegmentNewCustomers},
		{3, 1, 2, analyticsmodels.SegmentPromising},
		{3, 2, 4, analyticsmodels.SegmentNeedAttention},
		{2, 2, 1, analyticsmodels.SegmentNeedAttention},
		{3, 1, 5, analyticsmodels.SegmentAboutToSleep},
		{2, 1, 1, analyticsmodels.SegmentAboutToSleep},
		{1, 2, 2, analyticsmodels.SegmentHibernating},
		{1, 3, 1, analyticsmodels.SegmentHibernating},
		{1, 1, 1, analyticsmodels.SegmentLost},
		{1, 5, 1, analyticsmodels.SegmentLost},
	}
	for _, tc := range cases {
		if got := ClassifySegment(tc.r, tc.f, tc.m); got != tc.want {
			t.Errorf("ClassifySegment(%d, %d, %d) = %s, muốn %s", tc.r, tc.f, tc.m, got, tc.want)
		}
	}
}

// Rule chồng lấn: bộ điểm khớp nhiều rule phải ăn theo rule ĐỨNG TRƯỚC.
func TestClassifySegment_FirstMatchWins(t *testing.T) {
	// (2,5,5) khớp cả cantLoseThem và atRisk -> cantLoseThem đứng trước
	if got := ClassifySegment(2, 5, 5); got != analyticsmodels.SegmentCantLoseThem {
		t.Errorf("ClassifySegment(2, 5, 5) = %s, muốn cantLoseThem (rule đứng trước thắng)", got)
	}
	// (4,3,3) khớp cả potentialLoyalist và needAttention -> potentialLoyalist đứng trước
	if got := ClassifySegment(4, 3, 3); got != analyticsmodels.SegmentPotentialLoyalist {
		t.Errorf("ClassifySegment(4, 3, 3) = %s, muốn potentialLoyalist (rule đứng trước thắng)", got)
	}
}

func TestQuintileScore_Breakpoints(t *testing.T) {
	cases := []struct {
		rank float64
		want int
	}{
		{0.1, 1},
		{0.2, 1},
		{0.21, 2},
		{0.4, 2},
		{0.5, 3},
		{0.6, 3},
		{0.7, 4},
		{0.8, 4},
		{0.81, 5},
		{1.0, 5},
	}
	for _, tc := range cases {
		if got := quintileScore(tc.rank); got != tc.want {
			t.Errorf("quintileScore(%v) = %d, muốn %d", tc.rank, got, tc.want)
		}
	}
}
