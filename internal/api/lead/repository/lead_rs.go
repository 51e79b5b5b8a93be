package leadRepository

import (
	"ChatbotFunil/internal/api/lead"
	"ChatbotFunil/internal/entity"
	contextPkg "ChatbotFunil/pkg/context"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *leadRepository) CreateLead(ctx context.Context, l entity.Lead) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateLead, l)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateLead")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"lead_id":    l.ID,
			"error":      err.Error(),
		}).Error("Database error when creating lead")
		return lead.ErrLeadNotPersisted
	}

	return nil
}

func (r *leadRepository) GetLeadsByUserID(ctx context.Context, userID string) ([]entity.Lead, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryGetLeadsByUserID, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLeadsByUserID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var leads []entity.Lead
	if err := r.q.SelectContext(ctx, &leads, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLeadsByUserID execution err")
		return nil, err
	}

	if len(leads) == 0 {
		return nil, lead.ErrLeadNotFound
	}

	return leads, nil
}
