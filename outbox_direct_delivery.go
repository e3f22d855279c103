package main

import (
	"context"
	"os"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OutboxDirectDelivery drains batch event records without Pub/Sub.
// This is intended for local/dev environments where Pub/Sub is not configured:
// events are logged and marked SENT so the outbox table does not grow forever.
type OutboxDirectDelivery struct {
	DB        *gorm.DB
	Logger    *logrus.Logger
	WorkerID  string
	BatchSize int
	Interval  time.Duration
	LockTTL   time.Duration
}

func NewOutboxDirectDelivery(db *gorm.DB, logger *logrus.Logger) *OutboxDirectDelivery {
	return &OutboxDirectDelivery{
		DB:        db,
		Logger:    logger,
		WorkerID:  "direct-" + time.Now().Format("20060102-150405.000"),
		BatchSize: 50,
		Interval:  2 * time.Second,
		LockTTL:   30 * time.Second,
	}
}

// shouldRunDirectOutboxDelivery decides between the Pub/Sub dispatcher and
// the log-only drain. Explicit OUTBOX_DIRECT_DELIVERY wins, otherwise the
// drain runs only when no topic is configured.
func shouldRunDirectOutboxDelivery() bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv("OUTBOX_DIRECT_DELIVERY")))
	if val == "true" {
		return true
	}
	if val == "false" {
		return false
	}
	return strings.TrimSpace(os.Getenv("PUBSUB_TOPIC")) == ""
}

func (p *OutboxDirectDelivery) Run(ctx context.Context) {
	if p == nil || p.DB == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		p.processOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.Interval):
		}
	}
}

func (p *OutboxDirectDelivery) processOnce(ctx context.Context) {
	now := time.Now().UTC()
	staleBefore := now.Add(-p.LockTTL)

	var claimed []models.BatchEventRecord
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.
			Where("publish_status = ?", models.OutboxPublishStatusPending).
			Where("(locked_at IS NULL OR locked_at <= ?)", staleBefore).
			Order("id ASC").
			Limit(p.BatchSize).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		if err := q.Find(&claimed).Error; err != nil {
			return err
		}
		if len(claimed) == 0 {
			return nil
		}
		for i := range claimed {
			claimed[i].LockedAt = &now
			claimed[i].LockedBy = &p.WorkerID
			if err := tx.Model(&models.BatchEventRecord{}).
				Where("id = ?", claimed[i].ID).
				Updates(map[string]interface{}{
					"locked_at": claimed[i].LockedAt,
					"locked_by": claimed[i].LockedBy,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil || len(claimed) == 0 {
		return
	}

	for _, rec := range claimed {
		if p.Logger != nil {
			// Log the same payload the Pub/Sub dispatcher would publish.
			payload, _ := utils.MarshalToJSON(models.ConvertToBatchEventMessage(rec))
			p.Logger.WithFields(logrus.Fields{
				"field":          "OutboxDirectDelivery",
				"batch_id":       rec.BatchId,
				"domain":         rec.Domain,
				"carrier":        rec.Carrier,
				"event_type":     rec.EventType,
				"record_count":   rec.RecordCount,
				"correlation_id": rec.CorrelationId,
				"payload":        payload,
			}).Info("batch event delivered locally")
		}

		sentAt := time.Now().UTC()
		_ = p.DB.WithContext(ctx).Model(&models.BatchEventRecord{}).
			Where("id = ?", rec.ID).
			Updates(map[string]interface{}{
				"publish_status": models.OutboxPublishStatusSent,
				"published_at":   &sentAt,
				"locked_at":      nil,
				"locked_by":      nil,
			}).Error
	}
}
