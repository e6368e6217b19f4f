package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clainchege2/Salon-Assistant-sub002/config"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/database"
	"github.com/clainchege2/Salon-Assistant-sub002/internal/global"
)

// InitRegistry khởi tạo registry collections và bootstrap index
func InitRegistry() {
	logrus.Info("Initialized registry")

	err := InitCollections(global.MongoDB_Session, global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")

	// Bootstrap index cho các collection salon (idempotent, index đã có thì bỏ qua)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.CreateSalonIndexes(ctx, db); err != nil {
		logrus.Errorf("Failed to create salon indexes: %v", err)
	} else {
		logrus.Info("Initialized salon indexes")
	}
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.SalonCustomers,
		global.MongoDB_ColNames.SalonBookings,
		global.MongoDB_ColNames.SalonServices,
		global.MongoDB_ColNames.Organizations,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	return nil
}
