package redis

import (
	"ChatbotFunil/internal/entity"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_PublishLead(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger, _ := test.NewNullLogger()
	notifier := NewFromClient(client, logger)
	defer notifier.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	subscriber := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer subscriber.Close()
	sub := subscriber.Subscribe(ctx, LeadChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	lead := entity.Lead{ID: "lead-1", UserID: "u1", Name: "João", Dependents: "sim"}
	require.NoError(t, notifier.PublishLead(ctx, lead))

	select {
	case msg := <-sub.Channel():
		var got entity.Lead
		require.NoError(t, jsoniter.UnmarshalFromString(msg.Payload, &got))
		assert.Equal(t, lead.ID, got.ID)
		assert.Equal(t, lead.Name, got.Name)
		assert.Equal(t, LeadChannel, msg.Channel)
	case <-ctx.Done():
		t.Fatal("lead was not published")
	}
}

func TestRedis_PublishLeadServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	logger, _ := test.NewNullLogger()
	notifier := NewFromClient(client, logger)
	defer notifier.Close()

	mr.Close()

	err := notifier.PublishLead(context.Background(), entity.Lead{ID: "lead-1"})
	assert.Error(t, err)
}

func TestRedis_NewWithoutAddress(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "")
	logger, _ := test.NewNullLogger()

	assert.Nil(t, New(logger))
}
