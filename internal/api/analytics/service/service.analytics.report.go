package analyticsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	analyticsdto "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/dto"
	salonmodels "github.com/clainchege2/Salon-Assistant-sub002/internal/api/salon/models"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/common"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/global"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/logger"
)

// AnalyticsService orchestrate toàn bộ pipeline báo cáo: resolve window, đọc sự kiện
// từ salon_bookings, gom bucket, sinh insight và chấm điểm RFM cho cohort.
// Mọi truy vấn đều scope theo ownerOrganizationId, không bao giờ đọc chéo tổ chức.
type AnalyticsService struct {
	customerCollection *mongo.Collection
	bookingCollection  *mongo.Collection

	rangeResolver *RangeResolver
	aggregator    *BucketAggregator
	insight       *InsightGenerator
	log           *logrus.Logger
}

// NewAnalyticsService khởi tạo AnalyticsService từ registry collection và config toàn cục.
func NewAnalyticsService() (*AnalyticsService, error) {
	customerColl, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.SalonCustomers)
	if !exists {
		return nil, common.NewError(common.ErrCodeInternalServer,
			fmt.Sprintf("Collection %s chưa được đăng ký", global.MongoDB_ColNames.SalonCustomers),
			common.StatusInternalServerError, nil)
	}
	bookingColl, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.SalonBookings)
	if !exists {
		return nil, common.NewError(common.ErrCodeInternalServer,
			fmt.Sprintf("Collection %s chưa được đăng ký", global.MongoDB_ColNames.SalonBookings),
			common.StatusInternalServerError, nil)
	}

	loc, err := time.LoadLocation(global.ServerConfig.ReportTimezone)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer,
			fmt.Sprintf("Timezone báo cáo không hợp lệ: %s", global.ServerConfig.ReportTimezone),
			common.StatusInternalServerError, err.Error())
	}
	epochFloor, err := time.ParseInLocation(analyticsdto.ReportDateFormat, global.ServerConfig.ReportEpochFloor, loc)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer,
			fmt.Sprintf("Mốc epoch floor không hợp lệ: %s", global.ServerConfig.ReportEpochFloor),
			common.StatusInternalServerError, err.Error())
	}

	return &AnalyticsService{
		customerCollection: customerColl,
		bookingCollection:  bookingColl,
		rangeResolver:      NewRangeResolver(loc, epochFloor),
		aggregator:         NewBucketAggregator(loc),
		insight:            NewInsightGenerator(),
		log:                logger.GetAppLogger(),
	}, nil
}

// resolveWindowFromParams resolve window từ query param: ưu tiên from/to (custom range),
// không có thì dùng window tượng trưng, rỗng thì mặc định 30D.
func (s *AnalyticsService) resolveWindowFromParams(params analyticsdto.ReportQueryParams, now time.Time) (*analyticsdto.ReportWindow, error) {
	if params.From != "" && params.To != "" {
		start, err := time.ParseInLocation(analyticsdto.ReportDateFormat, params.From, s.rangeResolver.loc)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat,
				"Tham số from không đúng định dạng dd-mm-yyyy", common.StatusBadRequest, params.From)
		}
		to, err := time.ParseInLocation(analyticsdto.ReportDateFormat, params.To, s.rangeResolver.loc)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat,
				"Tham số to không đúng định dạng dd-mm-yyyy", common.StatusBadRequest, params.To)
		}
		// to là ngày inclusive: cửa sổ kết thúc ở 00:00 ngày kế tiếp
		return s.rangeResolver.ResolveCustomWindow(start, to.AddDate(0, 0, 1))
	}

	windowID := params.Window
	if windowID == "" {
		windowID = "30D"
	}
	return s.rangeResolver.ResolveWindow(windowID, now)
}

// GetRevenueReport build báo cáo doanh thu đầy đủ cho một tổ chức: series kỳ hiện tại,
// series kỳ trước (cùng span), totals hai kỳ và % thay đổi.
func (s *AnalyticsService) GetRevenueReport(ctx context.Context, organizationID primitive.ObjectID, params analyticsdto.ReportQueryParams, now time.Time) (*analyticsdto.RevenueReportResult, error) {
	window, err := s.resolveWindowFromParams(params, now)
	if err != nil {
		return nil, err
	}
	prevWindow := s.aggregator.PreviousWindow(window)

	currentEvents, err := s.FetchActivityEvents(ctx, organizationID, window.StartMs, window.EndMs)
	if err != nil {
		return nil, err
	}
	previousEvents, err := s.FetchActivityEvents(ctx, organizationID, prevWindow.StartMs, prevWindow.EndMs)
	if err != nil {
		return nil, err
	}

	totals := s.aggregator.ComputeTotals(currentEvents, window)
	prevTotals := s.aggregator.ComputeTotals(previousEvents, prevWindow)

	return &analyticsdto.RevenueReportResult{
		Window:         window,
		Current:        s.aggregator.BuildBucketSeries(currentEvents, window),
		Previous:       s.aggregator.BuildBucketSeries(previousEvents, prevWindow),
		Totals:         totals,
		PreviousTotals: prevTotals,
		Deltas: analyticsdto.PercentDeltas{
			Revenue:    PercentDeltaPtr(totals.Revenue, prevTotals.Revenue),
			VisitCount: PercentDeltaPtr(float64(totals.VisitCount), float64(prevTotals.VisitCount)),
		},
	}, nil
}

// GetInsights sinh danh sách insight ngôn ngữ tự nhiên cho một tổ chức trong một window.
func (s *AnalyticsService) GetInsights(ctx context.Context, organizationID primitive.ObjectID, params analyticsdto.ReportQueryParams, now time.Time) ([]analyticsdto.InsightStatement, error) {
	window, err := s.resolveWindowFromParams(params, now)
	if err != nil {
		return nil, err
	}
	prevWindow := s.aggregator.PreviousWindow(window)

	currentEvents, err := s.FetchActivityEvents(ctx, organizationID, window.StartMs, window.EndMs)
	if err != nil {
		return nil, err
	}
	previousEvents, err := s.FetchActivityEvents(ctx, organizationID, prevWindow.StartMs, prevWindow.EndMs)
	if err != nil {
		return nil, err
	}

	totals := s.aggregator.ComputeTotals(currentEvents, window)
	prevTotals := s.aggregator.ComputeTotals(previousEvents, prevWindow)
	return s.insight.GenerateInsights(totals, prevTotals, windowPhrase(window)), nil
}

// windowPhrase diễn giải window thành cụm từ tự nhiên để nhúng vào câu insight.
func windowPhrase(w *analyticsdto.ReportWindow) string {
	switch w.WindowID {
	case "1D":
		return "day"
	case "7D":
		return "7 days"
	case "30D":
		return "30 days"
	case "90D":
		return "90 days"
	case "180D":
		return "180 days"
	case "ALL":
		return "full history"
	case "":
		return "selected period"
	}
	if multiYearPattern.MatchString(w.WindowID) {
		years := w.WindowID[:len(w.WindowID)-1]
		if years == "1" {
			return "year"
		}
		return years + " years"
	}
	return "selected period"
}

// FetchActivityEvents đọc booking completed của một tổ chức trong [startMs, endMs),
// sắp theo completedAt tăng dần, map về ActivityEvent cho aggregator.
func (s *AnalyticsService) FetchActivityEvents(ctx context.Context, organizationID primitive.ObjectID, startMs, endMs int64) ([]ActivityEvent, error) {
	filter := bson.M{
		"ownerOrganizationId": organizationID,
		"status":              salonmodels.BookingStatusCompleted,
		"completedAt":         bson.M{"$gte": startMs, "$lt": endMs},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "completedAt", Value: 1}}).
		SetProjection(bson.M{"completedAt": 1, "totalAmount": 1, "serviceName": 1})

	cursor, err := s.bookingCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	events := []ActivityEvent{}
	for cursor.Next(ctx) {
		var booking salonmodels.SalonBooking
		if err := cursor.Decode(&booking); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		events = append(events, ActivityEvent{
			At:       booking.CompletedAt,
			Value:    booking.TotalAmount,
			Category: booking.ServiceName,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return events, nil
}

// FetchCohortSnapshots đọc toàn bộ khách của một tổ chức về dạng snapshot cho CohortScorer.
func (s *AnalyticsService) FetchCohortSnapshots(ctx context.Context, organizationID primitive.ObjectID) ([]CustomerSnapshot, error) {
	filter := bson.M{"ownerOrganizationId": organizationID}
	opts := options.Find().SetProjection(bson.M{
		"_id": 1, "lastVisitAt": 1, "firstVisitAt": 1, "totalVisits": 1, "totalSpent": 1,
	})

	cursor, err := s.customerCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	snapshots := []CustomerSnapshot{}
	for cursor.Next(ctx) {
		var customer salonmodels.SalonCustomer
		if err := cursor.Decode(&customer); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		snapshots = append(snapshots, CustomerSnapshot{
			CustomerID:   customer.ID,
			LastVisitAt:  customer.LastVisitAt,
			FirstVisitAt: customer.FirstVisitAt,
			TotalVisits:  customer.TotalVisits,
			TotalSpent:   customer.TotalSpent,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return snapshots, nil
}

// ScoreCohortForOrganization chấm điểm RFM cho TOÀN BỘ cohort của một tổ chức rồi ghi
// đè field rfm của từng khách bằng một BulkWrite duy nhất. Cohort rỗng: log warning,
// không ghi gì, trả về kết quả rỗng (không phải lỗi).
func (s *AnalyticsService) ScoreCohortForOrganization(ctx context.Context, organizationID primitive.ObjectID, now time.Time) (*analyticsdto.ScoreCohortResult, error) {
	snapshots, err := s.FetchCohortSnapshots(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if len(snapshots) == 0 {
		s.log.WithFields(logrus.Fields{
			"organizationId": organizationID.Hex(),
		}).Warn("Cohort rỗng, bỏ qua chấm điểm RFM")
		return &analyticsdto.ScoreCohortResult{
			CohortSize:   0,
			Distribution: analyticsdto.SegmentDistribution{},
			ComputedAt:   now.UnixMilli(),
		}, nil
	}

	scored := ScoreCohort(snapshots, now)

	distribution := analyticsdto.SegmentDistribution{}
	writes := make([]mongo.WriteModel, 0, len(scored))
	nowMs := now.UnixMilli()
	for _, sc := range scored {
		distribution[sc.Score.Segment]++
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": sc.CustomerID, "ownerOrganizationId": organizationID}).
			SetUpdate(bson.M{"$set": bson.M{"rfm": sc.Score, "updatedAt": nowMs}}))
	}

	if _, err := s.customerCollection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	s.log.WithFields(logrus.Fields{
		"organizationId": organizationID.Hex(),
		"cohortSize":     len(scored),
	}).Info("Đã chấm điểm RFM cho cohort")

	return &analyticsdto.ScoreCohortResult{
		CohortSize:   len(scored),
		Distribution: distribution,
		ComputedAt:   nowMs,
	}, nil
}

// GetSegmentDistribution đếm số khách theo segment RFM hiện tại của một tổ chức.
// Khách chưa từng được chấm điểm không xuất hiện trong phân bố.
func (s *AnalyticsService) GetSegmentDistribution(ctx context.Context, organizationID primitive.ObjectID) (analyticsdto.SegmentDistribution, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"ownerOrganizationId": organizationID,
			"rfm":                 bson.M{"$exists": true},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$rfm.segment",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := s.customerCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	distribution := analyticsdto.SegmentDistribution{}
	for cursor.Next(ctx) {
		var row struct {
			Segment string `bson:"_id"`
			Count   int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		distribution[row.Segment] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return distribution, nil
}

// ListOrganizationIDs liệt kê các tổ chức đang có khách hàng, cho worker quét định kỳ.
func (s *AnalyticsService) ListOrganizationIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	raw, err := s.customerCollection.Distinct(ctx, "ownerOrganizationId", bson.M{})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
