// Package models - SalonCustomer thuộc domain Salon (salon_customers).
// Lưu khách hàng của salon cùng metrics lũy kế, là nguồn cohort cho chấm điểm RFM.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	analyticsmodels "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/models"
)

// SalonCustomerProfile thông tin cá nhân khách, gộp trong 1 field cho gọn.
type SalonCustomerProfile struct {
	Name         string   `json:"name,omitempty" bson:"name,omitempty"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty" bson:"phoneNumbers,omitempty"`
	Email        string   `json:"email,omitempty" bson:"email,omitempty"`
	Birthday     string   `json:"birthday,omitempty" bson:"birthday,omitempty"`
	Gender       string   `json:"gender,omitempty" bson:"gender,omitempty"`
	Notes        string   `json:"notes,omitempty" bson:"notes,omitempty"`
}

// SalonCustomer lưu khách hàng salon (salon_customers).
type SalonCustomer struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Profile, thông tin cá nhân gộp trong 1 field
	Profile SalonCustomerProfile `json:"profile" bson:"profile"`

	// Cached metrics (aggregate từ salon_bookings, cập nhật qua hooks booking)
	TotalVisits     int     `json:"totalVisits" bson:"totalVisits"`                             // Số lần đến làm dịch vụ (booking completed)
	TotalSpent      float64 `json:"totalSpent" bson:"totalSpent"`                               // Tổng chi tiêu lũy kế
	FirstVisitAt    int64   `json:"firstVisitAt,omitempty" bson:"firstVisitAt,omitempty"`       // Unix ms, lần đến đầu tiên
	LastVisitAt     int64   `json:"lastVisitAt,omitempty" bson:"lastVisitAt,omitempty"`         // Unix ms, lần đến gần nhất (0 = chưa từng đến)
	NoShowCount     int     `json:"noShowCount,omitempty" bson:"noShowCount,omitempty"`         // Số lần đặt lịch nhưng không đến
	FavoriteService string  `json:"favoriteService,omitempty" bson:"favoriteService,omitempty"` // Dịch vụ dùng nhiều nhất

	// Rfm điểm RFM hiện tại, do CohortScorer tính và ghi đè sau mỗi lần recompute.
	// Điểm là TƯƠNG ĐỐI so với cohort tại thời điểm tính: cohort đổi thì điểm có thể
	// đổi dù hành vi khách không đổi. Đây là hành vi mong đợi, không phải bug.
	Rfm *analyticsmodels.RfmScore `json:"rfm,omitempty" bson:"rfm,omitempty"`

	// Phân quyền
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId" bson:"ownerOrganizationId"`

	// Metadata
	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
