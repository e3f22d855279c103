package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceBatchHistory anchors one invoice file upload run. BatchId is the
// externally visible identifier, assigned once at creation and never reused.
// Status moves PENDING_APPROVAL -> APPROVED | REJECTED and both branches are
// terminal.
type InvoiceBatchHistory struct {
	ID               int            `gorm:"primary_key" json:"id"`
	BatchId          string         `gorm:"size:64;uniqueIndex;not null" json:"batch_id"`
	Carrier          Provider       `gorm:"size:30;index;not null" json:"carrier"`
	Name             string         `gorm:"size:255" json:"name"`
	Status           BatchStatus    `gorm:"size:20;index;not null;default:'PENDING_APPROVAL'" json:"status"`
	SourceFilename   string         `gorm:"size:255" json:"source_filename"`
	RawFileObjectKey string         `gorm:"size:512" json:"raw_file_object_key"`
	RecordCount      int            `gorm:"not null;default:0" json:"record_count"`
	UploadedBy       string         `gorm:"size:100;not null" json:"uploaded_by"`
	DateUploaded     time.Time      `gorm:"index;not null" json:"date_uploaded"`
	ReviewedBy       *string        `gorm:"size:100" json:"reviewed_by"`
	ReviewedAt       *time.Time     `json:"reviewed_at"`
	RejectionReason  *string        `gorm:"type:text" json:"rejection_reason"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// InventoryBatchHistory is the inventory-domain counterpart. Inventory
// batches are hard-deleted, matching the source system.
type InventoryBatchHistory struct {
	ID               int         `gorm:"primary_key" json:"id"`
	BatchId          string      `gorm:"size:64;uniqueIndex;not null" json:"batch_id"`
	Carrier          Provider    `gorm:"size:30;index;not null" json:"carrier"`
	Name             string      `gorm:"size:255" json:"name"`
	Status           BatchStatus `gorm:"size:20;index;not null;default:'PENDING_APPROVAL'" json:"status"`
	SourceFilename   string      `gorm:"size:255" json:"source_filename"`
	RawFileObjectKey string      `gorm:"size:512" json:"raw_file_object_key"`
	RecordCount      int         `gorm:"not null;default:0" json:"record_count"`
	UploadedBy       string      `gorm:"size:100;not null" json:"uploaded_by"`
	DateUploaded     time.Time   `gorm:"index;not null" json:"date_uploaded"`
	ReviewedBy       *string     `gorm:"size:100" json:"reviewed_by"`
	ReviewedAt       *time.Time  `json:"reviewed_at"`
	RejectionReason  *string     `gorm:"type:text" json:"rejection_reason"`
	CreatedAt        time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func NewInvoiceBatch(carrier Provider, name string, uploadedBy string, filename string) *InvoiceBatchHistory {
	return &InvoiceBatchHistory{
		BatchId:        uuid.NewString(),
		Carrier:        carrier,
		Name:           name,
		Status:         BatchStatusPendingApproval,
		SourceFilename: filename,
		UploadedBy:     uploadedBy,
		DateUploaded:   time.Now().UTC(),
	}
}

func NewInventoryBatch(carrier Provider, name string, uploadedBy string, filename string) *InventoryBatchHistory {
	return &InventoryBatchHistory{
		BatchId:        uuid.NewString(),
		Carrier:        carrier,
		Name:           name,
		Status:         BatchStatusPendingApproval,
		SourceFilename: filename,
		UploadedBy:     uploadedBy,
		DateUploaded:   time.Now().UTC(),
	}
}

func GetInvoiceBatchByBatchId(ctx context.Context, batchId string) (*InvoiceBatchHistory, error) {
	db := config.GetDB()
	var batch InvoiceBatchHistory
	err := db.WithContext(ctx).Where("batch_id = ?", batchId).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}

func GetInventoryBatchByBatchId(ctx context.Context, batchId string) (*InventoryBatchHistory, error) {
	db := config.GetDB()
	var batch InventoryBatchHistory
	err := db.WithContext(ctx).Where("batch_id = ?", batchId).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}

func ListInvoiceBatches(ctx context.Context, status *BatchStatus, carrier *Provider) ([]*InvoiceBatchHistory, error) {
	db := config.GetDB()
	var results []*InvoiceBatchHistory

	dbCtx := db.WithContext(ctx)
	if status != nil && *status != "" {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if carrier != nil && *carrier != "" {
		dbCtx = dbCtx.Where("carrier = ?", *carrier)
	}
	if err := dbCtx.Order("date_uploaded DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ListInventoryBatches(ctx context.Context, status *BatchStatus, carrier *Provider) ([]*InventoryBatchHistory, error) {
	db := config.GetDB()
	var results []*InventoryBatchHistory

	dbCtx := db.WithContext(ctx)
	if status != nil && *status != "" {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if carrier != nil && *carrier != "" {
		dbCtx = dbCtx.Where("carrier = ?", *carrier)
	}
	if err := dbCtx.Order("date_uploaded DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// StampInvoiceBatchDecision persists the terminal status with reviewer
// identity and timestamp inside the caller's transaction. The caller must
// have already verified the batch is still PENDING_APPROVAL.
func StampInvoiceBatchDecision(tx *gorm.DB, batch *InvoiceBatchHistory, status BatchStatus, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error {
	return tx.Model(batch).Updates(map[string]interface{}{
		"status":           status,
		"reviewed_by":      &reviewedBy,
		"reviewed_at":      &reviewedAt,
		"rejection_reason": rejectionReason,
	}).Error
}

func StampInventoryBatchDecision(tx *gorm.DB, batch *InventoryBatchHistory, status BatchStatus, reviewedBy string, reviewedAt time.Time, rejectionReason *string) error {
	return tx.Model(batch).Updates(map[string]interface{}{
		"status":           status,
		"reviewed_by":      &reviewedBy,
		"reviewed_at":      &reviewedAt,
		"rejection_reason": rejectionReason,
	}).Error
}
