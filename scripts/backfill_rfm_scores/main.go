// Backfill điểm RFM cho toàn bộ tổ chức. Chạy một lần khi triển khai tính năng
// segmentation lên dữ liệu cũ, hoặc chạy lại sau khi sửa logic chấm điểm.
//
// Cách chạy:
//
//	GO_ENV=production go run ./scripts/backfill_rfm_scores
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/clainchege2/Salon-Assistant-sub002/config"
	analyticsvc "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/service"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/database"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/global"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/logger"
)

func main() {
	// Load env (bỏ qua lỗi nếu không có file, dùng environment variables)
	_ = godotenv.Load()

	if err := logger.Init(nil); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	global.InitValidator()
	global.ServerConfig = config.NewConfig()

	client, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	global.MongoDB_Session = client
	defer func() {
		_ = database.CloseInstance(client)
	}()

	db := client.Database(global.ServerConfig.MongoDB_DBName)
	for _, name := range []string{
		global.MongoDB_ColNames.SalonCustomers,
		global.MongoDB_ColNames.SalonBookings,
	} {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			logrus.Fatalf("Failed to register collection %s: %v", name, err)
		}
	}

	svc, err := analyticsvc.NewAnalyticsService()
	if err != nil {
		logrus.Fatalf("Failed to create analytics service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	orgIDs, err := svc.ListOrganizationIDs(ctx)
	if err != nil {
		logrus.Fatalf("Failed to list organizations: %v", err)
	}
	if len(orgIDs) == 0 {
		logrus.Info("Không có tổ chức nào có khách hàng, không có gì để backfill")
		return
	}

	logrus.Infof("Backfill điểm RFM cho %d tổ chức", len(orgIDs))
	bar := progressbar.Default(int64(len(orgIDs)))

	now := time.Now()
	totalScored := 0
	failed := 0
	for _, orgID := range orgIDs {
		result, err := svc.ScoreCohortForOrganization(ctx, orgID, now)
		if err != nil {
			logrus.WithError(err).Errorf("Chấm điểm thất bại cho tổ chức %s, bỏ qua", orgID.Hex())
			failed++
			_ = bar.Add(1)
			continue
		}
		totalScored += result.CohortSize
		_ = bar.Add(1)
	}

	logrus.Infof("Hoàn tất: %d khách được chấm điểm, %d tổ chức lỗi", totalScored, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
