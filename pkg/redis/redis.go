package redis

import (
	"ChatbotFunil/internal/entity"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const LeadChannel = "leads:quote_completed"

type IRedis interface {
	PublishLead(ctx context.Context, lead entity.Lead) error
	Close() error
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
}

// New connects using REDIS_ADDRESS, REDIS_PASSWORD and REDIS_DB. It returns
// nil when no address is configured.
func New(log *logrus.Logger) IRedis {
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		log.Info("REDIS_ADDRESS not set, lead notifications disabled")
		return nil
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	log.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		log.Info("Successfully connected to Redis")
	}

	return NewFromClient(client, log)
}

func NewFromClient(client *redis.Client, log *logrus.Logger) IRedis {
	return &redisClient{client: client, log: log}
}

func (r *redisClient) PublishLead(ctx context.Context, lead entity.Lead) error {
	payload, err := jsoniter.Marshal(lead)
	if err != nil {
		return fmt.Errorf("marshal lead: %w", err)
	}

	receivers, err := r.client.Publish(ctx, LeadChannel, payload).Result()
	if err != nil {
		r.log.Error(fmt.Sprintf("Error publishing lead %s: %v", lead.ID, err))
		return err
	}

	r.log.Debug(fmt.Sprintf("Published lead %s to %d receivers", lead.ID, receivers))
	return nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
