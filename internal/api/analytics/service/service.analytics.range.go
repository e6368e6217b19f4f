// Package analyticsvc - RangeResolver: đổi window ID tượng trưng (7D, 1Y, ALL...) hoặc
// from/to custom thành khoảng [start, end) cụ thể + granularity thích ứng theo span.
// Granularity thô dần khi span lớn để PointCount luôn nằm trong khoảng render được (1..400).
package analyticsvc

import (
	"regexp"
	"strconv"
	"time"

	analyticsdto "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/dto"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/common"
)

const (
	// Breakpoint chọn granularity theo span (ngày). Thô dần đơn điệu khi span tăng.
	maxDaysForDayBucket   = 180  // span <= 180 ngày -> bucket theo ngày (tối đa 180 điểm)
	maxDaysForWeekBucket  = 366  // span <= ~1 năm -> bucket theo tuần (tối đa ~53 điểm)
	maxDaysForMonthBucket = 3660 // span <= ~10 năm -> bucket theo tháng (tối đa ~120 điểm)

	// maxBucketPoints trần số bucket một window được phép sinh ra. Với các window
	// tượng trưng không bao giờ chạm trần; custom range vượt trần bị coi là không hợp lệ.
	maxBucketPoints = 400
)

// multiYearPattern window ID dạng nhiều năm: 1Y..20Y
var multiYearPattern = regexp.MustCompile(`^([1-9]|1[0-9]|20)Y$`)

// RangeResolver resolve window báo cáo trong MỘT timezone chuẩn cố định.
// now luôn được truyền tường minh, không đọc time.Now() bên trong để test được không cần mock clock.
type RangeResolver struct {
	loc        *time.Location // Timezone chuẩn để truncate ranh giới ngày
	epochFloor time.Time      // Mốc sàn cho window ALL
}

// NewRangeResolver tạo resolver với timezone chuẩn và mốc sàn ALL.
func NewRangeResolver(loc *time.Location, epochFloor time.Time) *RangeResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &RangeResolver{loc: loc, epochFloor: epochFloor.In(loc)}
}

// ResolveWindow đổi window ID tượng trưng thành ReportWindow.
// End = 0h ngày hiện tại (theo timezone chuẩn), start = end - span.
// Ví dụ: "7D" với now = 2025-06-15 -> [2025-06-08T00:00, 2025-06-15T00:00), day, 7 điểm.
func (r *RangeResolver) ResolveWindow(windowID string, now time.Time) (*analyticsdto.ReportWindow, error) {
	now = now.In(r.loc)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc)

	var start time.Time
	switch windowID {
	case "1D":
		start = end.AddDate(0, 0, -1)
	case "7D":
		start = end.AddDate(0, 0, -7)
	case "30D":
		start = end.AddDate(0, 0, -30)
	case "90D":
		start = end.AddDate(0, 0, -90)
	case "180D":
		start = end.AddDate(0, 0, -180)
	case "ALL":
		start = r.epochFloor
		if !start.Before(end) {
			// Sàn ALL nằm sau end (hệ chưa có dữ liệu): vẫn trả về window 1 ngày
			// để PointCount = 1, trục chart luôn xác định.
			start = end.AddDate(0, 0, -1)
		}
	default:
		m := multiYearPattern.FindStringSubmatch(windowID)
		if m == nil {
			return nil, common.NewError(common.ErrCodeValidationRange,
				"Window không được hỗ trợ: "+windowID, common.StatusBadRequest, nil)
		}
		years, _ := strconv.Atoi(m[1])
		start = end.AddDate(-years, 0, 0)
	}

	w, err := r.buildWindow(start, end)
	if err != nil {
		return nil, err
	}
	w.WindowID = windowID
	return w, nil
}

// ResolveCustomWindow đổi from/to tường minh thành ReportWindow, đi qua cùng hàm chọn
// granularity với window tượng trưng. Start bị sàn tại epochFloor để giữ PointCount trong trần.
func (r *RangeResolver) ResolveCustomWindow(start, end time.Time) (*analyticsdto.ReportWindow, error) {
	start = start.In(r.loc)
	end = end.In(r.loc)
	if start.Before(r.epochFloor) {
		start = r.epochFloor
	}
	return r.buildWindow(start, end)
}

// buildWindow validate khoảng, chọn granularity theo span và đếm bucket bằng calendar walk.
// Đếm bằng walk (không phải chia span) để PointCount LUÔN bằng độ dài BucketSeries sinh ra.
func (r *RangeResolver) buildWindow(start, end time.Time) (*analyticsdto.ReportWindow, error) {
	if !start.Before(end) {
		return nil, common.ErrInvalidRange
	}

	spanDays := int(end.Sub(start).Hours() / 24)
	if end.Sub(start)%(24*time.Hour) != 0 {
		spanDays++
	}
	granularity := granularityForSpan(spanDays)

	pointCount := 0
	for t := truncateToBucket(start, granularity, r.loc); t.Before(end); t = nextBucketStart(t, granularity) {
		pointCount++
	}
	if pointCount < 1 {
		pointCount = 1
	}
	if pointCount > maxBucketPoints {
		return nil, common.NewError(common.ErrCodeValidationRange,
			"Khoảng báo cáo quá dài để render", common.StatusBadRequest, nil)
	}

	return &analyticsdto.ReportWindow{
		StartMs:     start.UnixMilli(),
		EndMs:       end.UnixMilli(),
		Granularity: granularity,
		PointCount:  pointCount,
	}, nil
}

// granularityForSpan chọn độ rộng bucket theo span (ngày), thô dần đơn điệu.
func granularityForSpan(spanDays int) analyticsdto.Granularity {
	switch {
	case spanDays <= maxDaysForDayBucket:
		return analyticsdto.GranularityDay
	case spanDays <= maxDaysForWeekBucket:
		return analyticsdto.GranularityWeek
	case spanDays <= maxDaysForMonthBucket:
		return analyticsdto.GranularityMonth
	default:
		return analyticsdto.GranularityYear
	}
}

// truncateToBucket đưa một thời điểm về đầu bucket chứa nó theo granularity,
// trong timezone chuẩn: day -> 0h, week -> thứ Hai 0h, month -> mùng 1, year -> 1/1.
func truncateToBucket(t time.Time, g analyticsdto.Granularity, loc *time.Location) time.Time {
	t = t.In(loc)
	switch g {
	case analyticsdto.GranularityWeek:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		t = t.AddDate(0, 0, -(weekday - 1))
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	case analyticsdto.GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case analyticsdto.GranularityYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
}

// nextBucketStart trả về đầu bucket kế tiếp theo granularity.
func nextBucketStart(t time.Time, g analyticsdto.Granularity) time.Time {
	switch g {
	case analyticsdto.GranularityWeek:
		return t.AddDate(0, 0, 7)
	case analyticsdto.GranularityMonth:
		return t.AddDate(0, 1, 0)
	case analyticsdto.GranularityYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}
