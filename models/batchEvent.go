package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchEventRecord is the transactional outbox row for batch lifecycle
// events. It is written inside the same DB transaction as the state change
// it announces; the outbox dispatcher publishes it to Pub/Sub after commit.
type BatchEventRecord struct {
	ID            int            `gorm:"primary_key;index:idx_batch_event_dispatch,priority:3" json:"id"`
	BatchId       string         `gorm:"size:64;index;not null" json:"batch_id"`
	Domain        BatchDomain    `gorm:"size:20;not null" json:"domain"`
	Carrier       Provider       `gorm:"size:30;not null" json:"carrier"`
	EventType     BatchEventType `gorm:"size:30;not null" json:"event_type"`
	RecordCount   int            `gorm:"not null;default:0" json:"record_count"`
	ActorUsername string         `gorm:"size:100" json:"actor_username"`
	OccurredAt    time.Time      `gorm:"index;not null" json:"occurred_at"`

	// Publish metadata (publish happens after commit via dispatcher).
	PublishStatus    string     `gorm:"size:20;index;not null;default:'PENDING';index:idx_batch_event_dispatch,priority:1" json:"publish_status"` // PENDING|PROCESSING|SENT|FAILED|DEAD
	PublishedAt      *time.Time `gorm:"index" json:"published_at"`
	PubSubMessageId  *string    `gorm:"size:255" json:"pubsub_message_id"`
	PublishAttempts  int        `gorm:"not null;default:0" json:"publish_attempts"`
	NextAttemptAt    *time.Time `gorm:"index;index:idx_batch_event_dispatch,priority:2" json:"next_attempt_at"`
	LockedAt         *time.Time `gorm:"index" json:"locked_at"`
	LockedBy         *string    `gorm:"size:100" json:"locked_by"`
	LastPublishError *string    `gorm:"type:text" json:"last_publish_error"`
	CorrelationId    string     `gorm:"size:64;index" json:"correlation_id"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// RecordBatchEvent writes the outbox row inside the caller's transaction.
// It does NOT publish; publishing is the dispatcher's job after commit.
func RecordBatchEvent(ctx context.Context, tx *gorm.DB, batchId string, domain BatchDomain, carrier Provider, eventType BatchEventType, recordCount int, actorUsername string) error {
	record := BatchEventRecord{
		BatchId:       batchId,
		Domain:        domain,
		Carrier:       carrier,
		EventType:     eventType,
		RecordCount:   recordCount,
		ActorUsername: actorUsername,
		OccurredAt:    time.Now().UTC(),
		PublishStatus: OutboxPublishStatusPending,
		CorrelationId: correlationIdFromContextOrNew(ctx),
	}
	return tx.Create(&record).Error
}

func correlationIdFromContextOrNew(ctx context.Context) string {
	if ctx != nil {
		if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
			return v
		}
	}
	return uuid.NewString()
}

func ConvertToBatchEventMessage(record BatchEventRecord) config.BatchEventMessage {
	return config.BatchEventMessage{
		ID:            record.ID,
		BatchId:       record.BatchId,
		Domain:        string(record.Domain),
		Carrier:       string(record.Carrier),
		EventType:     string(record.EventType),
		RecordCount:   record.RecordCount,
		ActorUsername: record.ActorUsername,
		OccurredAt:    record.OccurredAt,
		CorrelationId: record.CorrelationId,
	}
}
