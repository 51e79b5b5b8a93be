package leadService

import (
	"ChatbotFunil/internal/api/lead"
	"ChatbotFunil/internal/entity"
	"ChatbotFunil/pkg/metrics"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const sinkTimeout = 5 * time.Second

func (s *leadService) Dispatch(l entity.Lead) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped {
		s.log.WithFields(logrus.Fields{
			"lead_id": l.ID,
		}).Warn("Lead service stopped, lead dropped")
		return false
	}

	select {
	case s.queue <- l:
		return true
	default:
		metrics.LeadDispatchFailed.WithLabelValues("queue").Inc()
		s.log.WithFields(logrus.Fields{
			"lead_id": l.ID,
			"user_id": l.UserID,
		}).Error("Lead queue full, lead dropped")
		return false
	}
}

func (s *leadService) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case l, ok := <-s.queue:
				if !ok {
					return
				}
				s.handOff(ctx, l)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop closes the queue and waits for queued leads to be handed off.
func (s *leadService) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.queue)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *leadService) handOff(ctx context.Context, l entity.Lead) {
	c, cancel := context.WithTimeout(ctx, sinkTimeout)
	defer cancel()

	if err := s.persist(c, l); err != nil {
		metrics.LeadDispatchFailed.WithLabelValues("postgres").Inc()
		s.log.WithFields(logrus.Fields{
			"lead_id": l.ID,
			"error":   err.Error(),
		}).Error("Failed to persist lead")
	}

	if s.notifier != nil {
		if err := s.notifier.PublishLead(c, l); err != nil {
			metrics.LeadDispatchFailed.WithLabelValues("redis").Inc()
			s.log.WithFields(logrus.Fields{
				"lead_id": l.ID,
				"error":   err.Error(),
			}).Error("Failed to publish lead")
		}
	}

	s.log.WithFields(logrus.Fields{
		"lead_id": l.ID,
		"user_id": l.UserID,
	}).Info("Lead handed off")
}

func (s *leadService) persist(ctx context.Context, l entity.Lead) error {
	if s.leadRepo == nil {
		return nil
	}

	repo, err := s.leadRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	if err := repo.Leads.CreateLead(ctx, l); err != nil {
		return err
	}

	return repo.Commit()
}

func (s *leadService) GetLeadsByUserID(ctx context.Context, userID string) ([]entity.Lead, error) {
	if s.leadRepo == nil {
		return nil, lead.ErrLeadNotFound
	}

	repo, err := s.leadRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Leads.GetLeadsByUserID(ctx, userID)
}
