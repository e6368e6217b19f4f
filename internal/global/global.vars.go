package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clainchege2/Salon-Assistant-sub002/config"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/registry"
)

// Salon_CollectionName chứa tên các collection trong MongoDB
type Salon_CollectionName struct {
	SalonCustomers string // Tên collection cho khách hàng salon (nguồn cohort RFM)
	SalonBookings  string // Tên collection cho lịch hẹn/booking (nguồn sự kiện doanh thu)
	SalonServices  string // Tên collection cho dịch vụ salon
	Organizations  string // Tên collection cho tổ chức (salon/tenant)
}

// Các biến toàn cục
var Validate *validator.Validate            // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client           // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration      // Cấu hình của server
var MongoDB_ColNames = Salon_CollectionName{ // Tên các collection
	SalonCustomers: "salon_customers",
	SalonBookings:  "salon_bookings",
	SalonServices:  "salon_services",
	Organizations:  "organizations",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
