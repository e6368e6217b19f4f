// Package database - Index cho các collection salon (compound theo ownerOrganizationId).
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clainchege2/Salon-Assistant-sub002/internal/global"
)

// CreateSalonIndexes tạo index cho salon_customers và salon_bookings.
// Gọi một lần lúc khởi động, sau khi registry collections đã sẵn sàng.
func CreateSalonIndexes(ctx context.Context, db *mongo.Database) error {
	// salon_customers: (ownerOrganizationId, lastVisitAt desc), quét cohort và sort dashboard
	customers := db.Collection(global.MongoDB_ColNames.SalonCustomers)
	if _, err := customers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "lastVisitAt", Value: -1},
		},
		Options: options.Index().SetName("salon_customer_org_lastvisit"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// salon_customers: (ownerOrganizationId, rfm.segment), filter dashboard theo segment
	if _, err := customers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "rfm.segment", Value: 1},
		},
		Options: options.Index().SetName("salon_customer_org_segment").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// salon_bookings: (ownerOrganizationId, status, completedAt), fetch sự kiện doanh thu theo khoảng
	bookings := db.Collection(global.MongoDB_ColNames.SalonBookings)
	if _, err := bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "status", Value: 1},
			{Key: "completedAt", Value: 1},
		},
		Options: options.Index().SetName("salon_booking_org_status_completed"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// salon_bookings: (ownerOrganizationId, customerId), lịch sử booking theo khách
	if _, err := bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "customerId", Value: 1},
		},
		Options: options.Index().SetName("salon_booking_org_customer"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

// isIndexExistsError index đã tồn tại với options khác, bỏ qua, không coi là lỗi khởi động.
func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "IndexOptionsConflict") || strings.Contains(msg, "IndexKeySpecsConflict")
}
