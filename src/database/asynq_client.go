package database

import (
	"log"

	"github.com/hibiken/asynq"
)

var AsynqClient *asynq.Client

// RedisConnOpt the asynq connection for the configured redis
func RedisConnOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: RedisURI}
}

// InitAsynq initializes Asynq client only if Redis is available
func InitAsynq() {
	if RedisClient == nil || RedisURI == "" {
		log.Println("⚠️ Redis not available. Asynq client will not be initialized.")
		return
	}

	AsynqClient = asynq.NewClient(RedisConnOpt())
	log.Println("✅ Asynq Client initialized successfully")
}

func CloseAsynq() {
	if AsynqClient != nil {
		_ = AsynqClient.Close()
	}
}
