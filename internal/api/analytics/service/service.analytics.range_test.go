// Package analyticsvc - Test RangeResolver: resolve window tượng trưng, custom range,
// chọn granularity theo span và bất biến PointCount.
package analyticsvc

import (
	"errors"
	"testing"
	"time"

	analyticsdto "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/dto"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/common"
)

func newTestResolver() *RangeResolver {
	epochFloor := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewRangeResolver(time.UTC, epochFloor)
}

// now cố định cho test: 2025-06-15 14:30 UTC
func testNow() time.Time {
	return time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
}

func TestResolveWindow_7D(t *testing.T) {
	r := newTestResolver()
	w, err := r.ResolveWindow("7D", testNow())
	if err != nil {
		t.Fatalf("ResolveWindow(7D) trả về lỗi: %v", err)
	}

	wantStart := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC).UnixMilli()
	wantEnd := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	if w.StartMs != wantStart {
		t.Errorf("StartMs = %d, muốn %d", w.StartMs, wantStart)
	}
	if w.EndMs != wantEnd {
		t.Errorf("EndMs = %d, muốn %d (0h ngày hiện tại, loại trừ hôm nay)", w.EndMs, wantEnd)
	}
	if w.Granularity != analyticsdto.GranularityDay {
		t.Errorf("Granularity = %s, muốn day", w.Granularity)
	}
	if w.PointCount != 7 {
		t.Errorf("PointCount = %d, muốn 7", w.PointCount)
	}
	if w.WindowID != "7D" {
		t.Errorf("WindowID = %s, muốn 7D", w.WindowID)
	}
}

func TestResolveWindow_SymbolicWindows(t *testing.T) {
	r := newTestResolver()
	cases := []struct {
		windowID    string
		granularity analyticsdto.Granularity
		pointCount  int
	}{
		{"1D", analyticsdto.GranularityDay, 1},
		{"30D", analyticsdto.GranularityDay, 30},
		{"90D", analyticsdto.GranularityDay, 90},
		{"180D", analyticsdto.GranularityDay, 180},
	}
	for _, tc := range cases {
		w, err := r.ResolveWindow(tc.windowID, testNow())
		if err != nil {
			t.Fatalf("ResolveWindow(%s) trả về lỗi: %v", tc.windowID, err)
		}
		if w.Granularity != tc.granularity {
			t.Errorf("%s: Granularity = %s, muốn %s", tc.windowID, w.Granularity, tc.granularity)
		}
		if w.PointCount != tc.pointCount {
			t.Errorf("%s: PointCount = %d, muốn %d", tc.windowID, w.PointCount, tc.pointCount)
		}
	}
}

func TestResolveWindow_MultiYear(t *testing.T) {
	r := newTestResolver()

	// 1Y: span 365 ngày -> tuần
	w, err := r.ResolveWindow("1Y", testNow())
	if err != nil {
		t.Fatalf("ResolveWindow(1Y) trả về lỗi: %v", err)
	}
	if w.Granularity != analyticsdto.GranularityWeek {
		t.Errorf("1Y: Granularity = %s, muốn week", w.Granularity)
	}

	// 5Y -> tháng
	w, err = r.ResolveWindow("5Y", testNow())
	if err != nil {
		t.Fatalf("ResolveWindow(5Y) trả về lỗi: %v", err)
	}
	if w.Granularity != analyticsdto.GranularityMonth {
		t.Errorf("5Y: Granularity = %s, muốn month", w.Granularity)
	}

	// 20Y -> năm
	w, err = r.ResolveWindow("20Y", testNow())
	if err != nil {
		t.Fatalf("ResolveWindow(20Y) trả về lỗi: %v", err)
	}
	if w.Granularity != analyticsdto.GranularityYear {
		t.Errorf("20Y: Granularity = %s, muốn year", w.Granularity)
	}
}

func TestResolveWindow_All(t *testing.T) {
	r := newTestResolver()
	w, err := r.ResolveWindow("ALL", testNow())
	if err != nil {
		t.Fatalf("ResolveWindow(ALL) trả về lỗi: %v", err)
	}

	wantStart := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if w.StartMs != wantStart {
		t.Errorf("ALL: StartMs = %d, muốn mốc sàn %d", w.StartMs, wantStart)
	}
	// Span ~10.5 năm -> bucket theo năm: 2015..2025 = 11 điểm
	if w.Granularity != analyticsdto.GranularityYear {
		t.Errorf("ALL: Granularity = %s, muốn year", w.Granularity)
	}
	if w.PointCount != 11 {
		t.Errorf("ALL: PointCount = %d, muốn 11", w.PointCount)
	}
}

func TestResolveWindow_AllWithFutureFloor(t *testing.T) {
	// Mốc sàn nằm sau end: vẫn trả về window 1 ngày, không lỗi
	floor := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRangeResolver(time.UTC, floor)
	w, err := r.ResolveWindow("ALL", testNow())
	if err != nil {
		t.Fatalf("ResolveWindow(ALL) với floor tương lai trả về lỗi: %v", err)
	}
	if w.PointCount != 1 {
		t.Errorf("PointCount = %d, muốn 1", w.PointCount)
	}
}

func TestResolveWindow_Unsupported(t *testing.T) {
	r := newTestResolver()
	for _, id := range []string{"13D", "0Y", "21Y", "7d", "foo", "7"} {
		if _, err := r.ResolveWindow(id, testNow()); err == nil {
			t.Errorf("ResolveWindow(%s) phải trả về lỗi", id)
		}
	}
}

func TestResolveCustomWindow_InvalidRange(t *testing.T) {
	r := newTestResolver()
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	// start == end
	if _, err := r.ResolveCustomWindow(day, day); !errors.Is(err, common.ErrInvalidRange) {
		t.Errorf("start == end: muốn ErrInvalidRange, nhận %v", err)
	}
	// start > end
	if _, err := r.ResolveCustomWindow(day.AddDate(0, 0, 5), day); !errors.Is(err, common.ErrInvalidRange) {
		t.Errorf("start > end: muốn ErrInvalidRange, nhận %v", err)
	}
}

func TestResolveCustomWindow_FlooredAtEpoch(t *testing.T) {
	r := newTestResolver()
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)

	w, err := r.ResolveCustomWindow(start, end)
	if err != nil {
		t.Fatalf("ResolveCustomWindow trả về lỗi: %v", err)
	}
	wantStart := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if w.StartMs != wantStart {
		t.Errorf("StartMs = %d, muốn bị sàn tại epoch floor %d", w.StartMs, wantStart)
	}
}

func TestBuildWindow_TooManyPoints(t *testing.T) {
	r := newTestResolver()
	// 500 năm -> bucket theo năm vẫn vượt trần 400 điểm
	start := time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := r.buildWindow(start, end); err == nil {
		t.Error("buildWindow với 500 năm phải trả về lỗi vượt trần điểm")
	}
}

func TestGranularityForSpan_MonotonicBreakpoints(t *testing.T) {
	cases := []struct {
		spanDays int
		want     analyticsdto.Granularity
	}{
		{1, analyticsdto.GranularityDay},
		{180, analyticsdto.GranularityDay},
		{181, analyticsdto.GranularityWeek},
		{366, analyticsdto.GranularityWeek},
		{367, analyticsdto.GranularityMonth},
		{3660, analyticsdto.GranularityMonth},
		{3661, analyticsdto.GranularityYear},
	}
	for _, tc := range cases {
		if got := granularityForSpan(tc.spanDays); got != tc.want {
			t.Errorf("granularityForSpan(%d) = %s, muốn %s", tc.spanDays, got, tc.want)
		}
	}
}

func TestTruncateToBucket_WeekStartsMonday(t *testing.T) {
	// 2025-06-15 là Chủ nhật -> tuần bắt đầu thứ Hai 2025-06-09
	sunday := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	got := truncateToBucket(sunday, analyticsdto.GranularityWeek, time.UTC)
	want := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("truncateToBucket(Chủ nhật, week) = %v, muốn thứ Hai %v", got, want)
	}

	// Thứ Hai giữ nguyên ngày
	monday := time.Date(2025, 6, 9, 23, 0, 0, 0, time.UTC)
	got = truncateToBucket(monday, analyticsdto.GranularityWeek, time.UTC)
	if !got.Equal(want) {
		t.Errorf("truncateToBucket(thứ Hai, week) = %v, muốn %v", got, want)
	}
}

// PointCount do resolver tính phải LUÔN bằng độ dài series do aggregator sinh ra.
func TestPointCount_MatchesSeriesLength(t *testing.T) {
	r := newTestResolver()
	agg := NewBucketAggregator(time.UTC)

	for _, id := range []string{"1D", "7D", "30D", "90D", "180D", "1Y", "3Y", "10Y", "20Y", "ALL"} {
		w, err := r.ResolveWindow(id, testNow())
		if err != nil {
			t.Fatalf("ResolveWindow(%s) trả về lỗi: %v", id, err)
		}
		series := agg.BuildBucketSeries(nil, w)
		if len(series) != w.PointCount {
			t.Errorf("%s: len(series) = %d, PointCount = %d, phải bằng nhau", id, len(series), w.PointCount)
		}
		if w.PointCount < 1 || w.PointCount > 400 {
			t.Errorf("%s: PointCount = %d, phải trong [1, 400]", id, w.PointCount)
		}
	}
}
