package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"Backend-Attendance/src/config"
	"Backend-Attendance/src/storage"
	"Backend-Attendance/src/storage/inmem"
	"Backend-Attendance/src/storage/mongostore"
	"Backend-Attendance/src/storage/sqlstore"
)

var (
	client     *mongo.Client
	once       sync.Once // ✅ ป้องกันการรัน ConnectMongoDB() ซ้ำ
	connectErr error
)

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว
func ConnectMongoDB(uri string) (*mongo.Client, error) {
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if connectErr != nil {
			connectErr = fmt.Errorf("failed to connect to MongoDB: %w", connectErr)
			return
		}

		// ตรวจสอบการเชื่อมต่อ
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			connectErr = fmt.Errorf("MongoDB ping failed: %w", err)
			return
		}
		log.Println("✅ MongoDB connected successfully")
	})
	return client, connectErr
}

// OpenStore เปิด storage ตาม STORAGE_DRIVER
func OpenStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		c, err := ConnectMongoDB(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return mongostore.Open(ctx, c.Database(cfg.MongoDB))
	case config.DriverPostgres:
		return sqlstore.OpenPostgres(cfg.PostgresDSN)
	case config.DriverSQLite:
		return sqlstore.OpenSQLite(cfg.SQLitePath)
	case config.DriverMemory:
		log.Println("⚠️ Using in-memory storage, data is lost on restart")
		return inmem.Open(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
