// Package analyticsvc - BucketAggregator: gom sự kiện (timestamp, value) vào các bucket
// của một ReportWindow đã resolve. Series luôn dày đặc (bucket rỗng vẫn có mặt với 0),
// tăng dần theo thời gian, độ dài đúng bằng window.PointCount.
package analyticsvc

import (
	"fmt"
	"time"

	analyticsdto "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/dto"
)

// ActivityEvent một sự kiện doanh thu đầu vào của aggregator (booking completed).
type ActivityEvent struct {
	At       int64   // Unix ms, thời điểm sự kiện
	Value    float64 // Giá trị tiền
	Category string  // Tên dịch vụ (optional, dùng cho trend insight)
}

// BucketAggregator gom sự kiện vào bucket trong MỘT timezone chuẩn cố định -
// chọn một lần cho cả hệ thống, không đổi theo request, tránh lệch bucket ở biên ngày.
type BucketAggregator struct {
	loc *time.Location
}

// NewBucketAggregator tạo aggregator với timezone chuẩn.
func NewBucketAggregator(loc *time.Location) *BucketAggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &BucketAggregator{loc: loc}
}

// BuildBucketSeries gom events vào bucket của window. Mỗi event thuộc đúng MỘT bucket
// (truncate timestamp về đầu bucket). Event ngoài [StartMs, EndMs) bị bỏ qua lặng lẽ -
// upstream không nên trả event ngoài khoảng, nhưng aggregator không được crash hay xếp nhầm.
func (a *BucketAggregator) BuildBucketSeries(events []ActivityEvent, w *analyticsdto.ReportWindow) analyticsdto.BucketSeries {
	start := time.UnixMilli(w.StartMs).In(a.loc)
	end := time.UnixMilli(w.EndMs).In(a.loc)

	// Dựng khung bucket dày đặc trước, map bucketStartMs -> index
	series := make(analyticsdto.BucketSeries, 0, w.PointCount)
	indexByStart := make(map[int64]int)
	for t := truncateToBucket(start, w.Granularity, a.loc); t.Before(end); t = nextBucketStart(t, w.Granularity) {
		indexByStart[t.UnixMilli()] = len(series)
		series = append(series, analyticsdto.BucketPoint{
			BucketStartMs: t.UnixMilli(),
			Label:         BucketLabel(t, w.Granularity),
		})
	}

	// Gán từng event vào bucket của nó
	for _, ev := range events {
		if ev.At < w.StartMs || ev.At >= w.EndMs {
			continue
		}
		bucketStart := truncateToBucket(time.UnixMilli(ev.At).In(a.loc), w.Granularity, a.loc)
		idx, ok := indexByStart[bucketStart.UnixMilli()]
		if !ok {
			// Bucket không thuộc khung window (không xảy ra khi event trong khoảng), bỏ qua
			continue
		}
		series[idx].Total += ev.Value
		series[idx].Count++
	}

	return series
}

// PreviousWindow trả về window kỳ trước: cùng span, lùi về sau đúng 1 span,
// cùng granularity, để hai series so sánh được theo vị trí.
func (a *BucketAggregator) PreviousWindow(w *analyticsdto.ReportWindow) *analyticsdto.ReportWindow {
	span := w.EndMs - w.StartMs
	prev := &analyticsdto.ReportWindow{
		WindowID:    w.WindowID,
		StartMs:     w.StartMs - span,
		EndMs:       w.StartMs,
		Granularity: w.Granularity,
	}

	start := time.UnixMilli(prev.StartMs).In(a.loc)
	end := time.UnixMilli(prev.EndMs).In(a.loc)
	for t := truncateToBucket(start, w.Granularity, a.loc); t.Before(end); t = nextBucketStart(t, w.Granularity) {
		prev.PointCount++
	}
	if prev.PointCount < 1 {
		prev.PointCount = 1
	}
	return prev
}

// ComputeTotals tính tổng kỳ từ events trong window: doanh thu, số lượt,
// và dịch vụ có doanh thu cao nhất (cho trend insight).
func (a *BucketAggregator) ComputeTotals(events []ActivityEvent, w *analyticsdto.ReportWindow) analyticsdto.PeriodTotals {
	totals := analyticsdto.PeriodTotals{}
	revenueByService := make(map[string]float64)
	visitsByService := make(map[string]int64)
	for _, ev := range events {
		if ev.At < w.StartMs || ev.At >= w.EndMs {
			continue
		}
		totals.Revenue += ev.Value
		totals.VisitCount++
		if ev.Category != "" {
			revenueByService[ev.Category] += ev.Value
			visitsByService[ev.Category]++
		}
	}

	best := ""
	bestRevenue := 0.0
	for svc, rev := range revenueByService {
		if rev > bestRevenue || (rev == bestRevenue && best != "" && svc < best) {
			best = svc
			bestRevenue = rev
		}
	}
	if best != "" && visitsByService[best] > 0 {
		totals.TopService = best
		totals.TopServiceVisits = visitsByService[best]
	}
	return totals
}

// PercentDelta tính % thay đổi (current - previous) / previous * 100.
// previous = 0 -> ok = false (sentinel "insufficient data"). KHÔNG trả Inf/NaN, không crash.
func PercentDelta(current, previous float64) (delta float64, ok bool) {
	if previous == 0 {
		return 0, false
	}
	return (current - previous) / previous * 100, true
}

// PercentDeltaPtr như PercentDelta nhưng trả *float64 (nil = sentinel) cho DTO.
func PercentDeltaPtr(current, previous float64) *float64 {
	d, ok := PercentDelta(current, previous)
	if !ok {
		return nil
	}
	return &d
}

// BucketLabel sinh label hiển thị cho một bucket, hàm thuần của (bucketStart, granularity),
// không phụ thuộc locale: day "02 Jan", week "Week of 02 Jan", month "Jan 2006", year "2006".
func BucketLabel(bucketStart time.Time, g analyticsdto.Granularity) string {
	switch g {
	case analyticsdto.GranularityWeek:
		return fmt.Sprintf("Week of %s", bucketStart.Format("02 Jan"))
	case analyticsdto.GranularityMonth:
		return bucketStart.Format("Jan 2006")
	case analyticsdto.GranularityYear:
		return bucketStart.Format("2006")
	default:
		return bucketStart.Format("02 Jan")
	}
}
