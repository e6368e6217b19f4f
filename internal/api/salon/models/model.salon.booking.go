// Package models - SalonBooking thuộc domain Salon (salon_bookings).
// Booking completed là sự kiện doanh thu nguồn cho BucketAggregator.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái booking
const (
	BookingStatusPending   = "pending"   // Mới đặt, chờ xác nhận
	BookingStatusConfirmed = "confirmed" // Đã xác nhận
	BookingStatusCompleted = "completed" // Đã làm xong, đã thu tiền, tính vào doanh thu
	BookingStatusCancelled = "cancelled" // Đã hủy
	BookingStatusNoShow    = "no_show"   // Khách không đến
)

// SalonBooking lưu một lịch hẹn (salon_bookings).
type SalonBooking struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	CustomerID primitive.ObjectID `json:"customerId" bson:"customerId"`
	StaffID    primitive.ObjectID `json:"staffId,omitempty" bson:"staffId,omitempty"`

	ServiceName string  `json:"serviceName" bson:"serviceName"` // Tên dịch vụ (cắt, nhuộm, nail...)
	TotalAmount float64 `json:"totalAmount" bson:"totalAmount"` // Tổng tiền của booking
	Status      string  `json:"status" bson:"status"`           // pending | confirmed | completed | cancelled | no_show

	StartsAt    int64 `json:"startsAt" bson:"startsAt"`                           // Unix ms, giờ hẹn
	CompletedAt int64 `json:"completedAt,omitempty" bson:"completedAt,omitempty"` // Unix ms, thời điểm hoàn thành (chỉ khi status = completed)

	// Phân quyền
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId"`

	// Metadata
	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
