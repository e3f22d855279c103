package workflow

import (
	"context"

	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"gorm.io/gorm"
)

// approvalStrategy is the one ApprovalStrategy implementation, parameterized
// by the carrier's staged and permanent model types plus an explicit
// field-copy function. The copy function assigns identity, audit timestamps
// and batch linkage fresh; keeping it explicit per carrier makes that
// invariant a compile-time fact instead of a runtime exclusion list.
type approvalStrategy[S any, P any] struct {
	provider models.Provider
	convert  func(*S, string) *P
}

func NewApprovalStrategy[S any, P any](provider models.Provider, convert func(*S, string) *P) ApprovalStrategy {
	return &approvalStrategy[S, P]{provider: provider, convert: convert}
}

func (a *approvalStrategy[S, P]) ProviderName() models.Provider {
	return a.provider
}

func (a *approvalStrategy[S, P]) PendingForReview(ctx context.Context, batchId string) (any, error) {
	return fetchByBatchId[S](ctx, batchId)
}

func (a *approvalStrategy[S, P]) FinalRecords(ctx context.Context, batchId string) (any, error) {
	return fetchByBatchId[P](ctx, batchId)
}

// Approve re-fetches the staged rows for the batch, converts each to its
// permanent counterpart, bulk-inserts the permanent set and bulk-deletes the
// staged set. The caller supplies the transaction; a failure at any step
// rolls the whole sequence back so no partial promotion is ever visible.
// An already-emptied staged set is a safe no-op.
func (a *approvalStrategy[S, P]) Approve(tx *gorm.DB, batchId string) (int, error) {
	var staged []*S
	if err := tx.Where("batch_id = ?", batchId).Order("id ASC").Find(&staged).Error; err != nil {
		return 0, err
	}
	if len(staged) == 0 {
		return 0, nil
	}

	permanent := make([]*P, 0, len(staged))
	for _, record := range staged {
		permanent = append(permanent, a.convert(record, batchId))
	}
	if err := tx.CreateInBatches(permanent, saveBatchSize).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("batch_id = ?", batchId).Delete(new(S)).Error; err != nil {
		return 0, err
	}
	return len(permanent), nil
}

// Reject deletes the staged rows only; permanent storage is untouched.
func (a *approvalStrategy[S, P]) Reject(tx *gorm.DB, batchId string) (int, error) {
	result := tx.Where("batch_id = ?", batchId).Delete(new(S))
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
