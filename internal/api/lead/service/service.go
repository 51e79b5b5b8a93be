package leadService

import (
	leadRepository "ChatbotFunil/internal/api/lead/repository"
	"ChatbotFunil/internal/entity"
	"ChatbotFunil/pkg/redis"
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultQueueSize = 256

type ILeadService interface {
	// Dispatch queues a completed quote for hand-off. It never blocks; when
	// the queue is full the lead is dropped and logged.
	Dispatch(lead entity.Lead) bool
	GetLeadsByUserID(ctx context.Context, userID string) ([]entity.Lead, error)
	Start(ctx context.Context)
	Stop()
}

type leadService struct {
	log      *logrus.Logger
	leadRepo leadRepository.Repository
	notifier redis.IRedis
	queue    chan entity.Lead
	wg       sync.WaitGroup
	mu       sync.RWMutex
	stopped  bool
}

// NewLeadService accepts a nil repository or notifier; the matching sink is
// then skipped.
func NewLeadService(
	log *logrus.Logger,
	leadRepo leadRepository.Repository,
	notifier redis.IRedis,
) ILeadService {
	return &leadService{
		log:      log,
		leadRepo: leadRepo,
		notifier: notifier,
		queue:    make(chan entity.Lead, defaultQueueSize),
	}
}
