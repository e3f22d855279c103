package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"gorm.io/gorm"
)

const moduleName = "workflow"

// IngestInvoices runs one invoice ingestion: resolve the carrier's
// processor, normalize and enrich the rows, then persist the batch record
// and its staged rows in one transaction. Nothing is written when the
// provider is unknown or processing fails.
func IngestInvoices(ctx context.Context, providerName string, rows []RawRow, departmentMapping map[string]string, filename string, batchName string, uploadedBy string) (*models.InvoiceBatchHistory, error) {
	logger := config.GetLogger()

	processor, err := invoiceProcessors.Resolve(providerName)
	if err != nil {
		return nil, err
	}

	batch := models.NewInvoiceBatch(processor.ProviderName(), batchName, uploadedBy, filename)
	staged, err := processor.Process(rows, batch, departmentMapping, filename)
	if err != nil {
		config.LogError(logger, moduleName, "IngestInvoices", "process rows", providerName, err)
		return nil, err
	}
	batch.RecordCount = staged.Len()

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
		if err := staged.Save(tx); err != nil {
			return err
		}
		if err := models.SaveHistoryIngest(tx, batch.BatchId, "InvoiceBatchHistory",
			fmt.Sprintf("Ingested %d invoice rows from %s for %s.", staged.Len(), filename, batch.Carrier)); err != nil {
			return err
		}
		return models.RecordBatchEvent(ctx, tx, batch.BatchId, models.BatchDomainInvoice, batch.Carrier, models.BatchEventIngested, staged.Len(), uploadedBy)
	})
	if err != nil {
		config.LogError(logger, moduleName, "IngestInvoices", "persist batch", batch.BatchId, err)
		return nil, err
	}
	return batch, nil
}

// IngestInventory is the device-inventory counterpart of IngestInvoices.
func IngestInventory(ctx context.Context, providerName string, rows []RawRow, departmentMapping map[string]string, filename string, batchName string, uploadedBy string) (*models.InventoryBatchHistory, error) {
	logger := config.GetLogger()

	processor, err := inventoryProcessors.Resolve(providerName)
	if err != nil {
		return nil, err
	}

	batch := models.NewInventoryBatch(processor.ProviderName(), batchName, uploadedBy, filename)
	staged, err := processor.Process(rows, batch, departmentMapping, filename)
	if err != nil {
		config.LogError(logger, moduleName, "IngestInventory", "process rows", providerName, err)
		return nil, err
	}
	batch.RecordCount = staged.Len()

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
		if err := staged.Save(tx); err != nil {
			return err
		}
		if err := models.SaveHistoryIngest(tx, batch.BatchId, "InventoryBatchHistory",
			fmt.Sprintf("Ingested %d inventory rows from %s for %s.", staged.Len(), filename, batch.Carrier)); err != nil {
			return err
		}
		return models.RecordBatchEvent(ctx, tx, batch.BatchId, models.BatchDomainInventory, batch.Carrier, models.BatchEventIngested, staged.Len(), uploadedBy)
	})
	if err != nil {
		config.LogError(logger, moduleName, "IngestInventory", "persist batch", batch.BatchId, err)
		return nil, err
	}
	return batch, nil
}

// DecideInvoiceBatch executes a reviewer's approve/reject decision on an
// invoice batch. The decision runs under a redis lock keyed by batch id in
// addition to the DB transaction, so two concurrent decisions on the same
// batch serialize. Approve promotes the staged rows into the permanent
// table; reject discards them. Either way the batch status goes terminal.
func DecideInvoiceBatch(ctx context.Context, batchId string, action models.ReviewAction, reviewedBy string, rejectionReason *string) (*models.InvoiceBatchHistory, error) {
	logger := config.GetLogger()

	release, err := utils.ObtainBatchLock(ctx, batchId, moduleName, "DecideInvoiceBatch")
	if err != nil {
		return nil, err
	}
	defer release()

	batch, err := models.GetInvoiceBatchByBatchId(ctx, batchId)
	if err != nil {
		return nil, err
	}
	if batch.Status.IsTerminal() {
		return nil, errors.New("batch has already been reviewed")
	}

	strategy, err := invoiceApprovals.Resolve(string(batch.Carrier))
	if err != nil {
		return nil, err
	}

	status, err := decisionStatus(action, rejectionReason)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int
		var txErr error
		if action == models.ReviewActionApprove {
			count, txErr = strategy.Approve(tx, batchId)
			if txErr != nil {
				return fmt.Errorf("%w: %v", utils.ErrorApprovalFailed, txErr)
			}
			if err := models.SaveHistoryApprove(tx, batchId, "InvoiceBatchHistory",
				fmt.Sprintf("Approved %d staged invoice rows for %s.", count, batch.Carrier)); err != nil {
				return err
			}
		} else {
			count, txErr = strategy.Reject(tx, batchId)
			if txErr != nil {
				return txErr
			}
			if err := models.SaveHistoryReject(tx, batchId, "InvoiceBatchHistory",
				fmt.Sprintf("Rejected %d staged invoice rows for %s.", count, batch.Carrier)); err != nil {
				return err
			}
		}
		if err := models.StampInvoiceBatchDecision(tx, batch, status, reviewedBy, now, rejectionReason); err != nil {
			return err
		}
		return models.RecordBatchEvent(ctx, tx, batchId, models.BatchDomainInvoice, batch.Carrier, decisionEventType(action), count, reviewedBy)
	})
	if err != nil {
		config.LogError(logger, moduleName, "DecideInvoiceBatch", string(action), batchId, err)
		return nil, err
	}

	batch.Status = status
	batch.ReviewedBy = &reviewedBy
	batch.ReviewedAt = &now
	batch.RejectionReason = rejectionReason
	return batch, nil
}

// DecideInventoryBatch mirrors DecideInvoiceBatch for the inventory domain.
func DecideInventoryBatch(ctx context.Context, batchId string, action models.ReviewAction, reviewedBy string, rejectionReason *string) (*models.InventoryBatchHistory, error) {
	logger := config.GetLogger()

	release, err := utils.ObtainBatchLock(ctx, batchId, moduleName, "DecideInventoryBatch")
	if err != nil {
		return nil, err
	}
	defer release()

	batch, err := models.GetInventoryBatchByBatchId(ctx, batchId)
	if err != nil {
		return nil, err
	}
	if batch.Status.IsTerminal() {
		return nil, errors.New("batch has already been reviewed")
	}

	strategy, err := inventoryApprovals.Resolve(string(batch.Carrier))
	if err != nil {
		return nil, err
	}

	status, err := decisionStatus(action, rejectionReason)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int
		var txErr error
		if action == models.ReviewActionApprove {
			count, txErr = strategy.Approve(tx, batchId)
			if txErr != nil {
				return fmt.Errorf("%w: %v", utils.ErrorApprovalFailed, txErr)
			}
			if err := models.SaveHistoryApprove(tx, batchId, "InventoryBatchHistory",
				fmt.Sprintf("Approved %d staged inventory rows for %s.", count, batch.Carrier)); err != nil {
				return err
			}
		} else {
			count, txErr = strategy.Reject(tx, batchId)
			if txErr != nil {
				return txErr
			}
			if err := models.SaveHistoryReject(tx, batchId, "InventoryBatchHistory",
				fmt.Sprintf("Rejected %d staged inventory rows for %s.", count, batch.Carrier)); err != nil {
				return err
			}
		}
		if err := models.StampInventoryBatchDecision(tx, batch, status, reviewedBy, now, rejectionReason); err != nil {
			return err
		}
		return models.RecordBatchEvent(ctx, tx, batchId, models.BatchDomainInventory, batch.Carrier, decisionEventType(action), count, reviewedBy)
	})
	if err != nil {
		config.LogError(logger, moduleName, "DecideInventoryBatch", string(action), batchId, err)
		return nil, err
	}

	batch.Status = status
	batch.ReviewedBy = &reviewedBy
	batch.ReviewedAt = &now
	batch.RejectionReason = rejectionReason
	return batch, nil
}

func decisionStatus(action models.ReviewAction, rejectionReason *string) (models.BatchStatus, error) {
	switch action {
	case models.ReviewActionApprove:
		return models.BatchStatusApproved, nil
	case models.ReviewActionReject:
		if strings.TrimSpace(utils.DereferencePtr(rejectionReason)) == "" {
			return "", errors.New("rejection reason is required")
		}
		return models.BatchStatusRejected, nil
	default:
		return "", fmt.Errorf("invalid review action %q", action)
	}
}

func decisionEventType(action models.ReviewAction) models.BatchEventType {
	if action == models.ReviewActionApprove {
		return models.BatchEventApproved
	}
	return models.BatchEventRejected
}

// PendingInvoiceRecords returns the staged rows of an invoice batch awaiting
// review. Empty slice when the batch has already been decided.
func PendingInvoiceRecords(ctx context.Context, batchId string) (any, error) {
	batch, err := models.GetInvoiceBatchByBatchId(ctx, batchId)
	if err != nil {
		return nil, err
	}
	strategy, err := invoiceApprovals.Resolve(string(batch.Carrier))
	if err != nil {
		return nil, err
	}
	return strategy.PendingForReview(ctx, batchId)
}

// FinalInvoiceRecords returns the permanent rows promoted from an approved
// invoice batch, filtered by the batch's traceability reference.
func FinalInvoiceRecords(ctx context.Context, batchId string) (any, error) {
	batch, err := models.GetInvoiceBatchByBatchId(ctx, batchId)
	if err != nil {
		return nil, err
	}
	strategy, err := invoiceApprovals.Resolve(string(batch.Carrier))
	if err != nil {
		return nil, err
	}
	return strategy.FinalRecords(ctx, batchId)
}

func PendingInventoryRecords(ctx context.Context, batchId string) (any, error) {
	batch, err := models.GetInventoryBatchByBatchId(ctx, batchId)
	if err != nil {
		return nil, err
	}
	strategy, err := inventoryApprovals.Resolve(string(batch.Carrier))
	if err != nil {
		return nil, err
	}
	return strategy.PendingForReview(ctx, batchId)
}

func FinalInventoryRecords(ctx context.Context, batchId string) (any, error) {
	batch, err := models.GetInventoryBatchByBatchId(ctx, batchId)
	if err != nil {
		return nil, err
	}
	strategy, err := inventoryApprovals.Resolve(string(batch.Carrier))
	if err != nil {
		return nil, err
	}
	return strategy.FinalRecords(ctx, batchId)
}
