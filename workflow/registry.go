package workflow

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"gorm.io/gorm"
)

const saveBatchSize = 200

// StagedSet is what a processor returns: the staged rows of one batch,
// not yet persisted. Save bulk-inserts inside the caller's transaction.
type StagedSet interface {
	Len() int
	Save(tx *gorm.DB) error
}

// StagedRecords is the one StagedSet implementation, parameterized by the
// carrier's staged model type.
type StagedRecords[T any] []*T

func (s StagedRecords[T]) Len() int {
	return len(s)
}

func (s StagedRecords[T]) Save(tx *gorm.DB) error {
	if len(s) == 0 {
		return nil
	}
	return tx.CreateInBatches(s, saveBatchSize).Error
}

// InvoiceProcessor turns raw invoice rows into a carrier's staged records.
// Process is pure: it never touches storage.
type InvoiceProcessor interface {
	ProviderName() models.Provider
	Process(rows []RawRow, batch *models.InvoiceBatchHistory, departmentMapping map[string]string, filename string) (StagedSet, error)
}

// InventoryProcessor is the device-inventory counterpart.
type InventoryProcessor interface {
	ProviderName() models.Provider
	Process(rows []RawRow, batch *models.InventoryBatchHistory, departmentMapping map[string]string, filename string) (StagedSet, error)
}

// ApprovalStrategy promotes or discards one batch's staged rows. Approve and
// Reject run inside the caller's transaction; both return the number of rows
// they acted on. Approve on an already-emptied batch is a no-op, not an
// error.
type ApprovalStrategy interface {
	ProviderName() models.Provider
	PendingForReview(ctx context.Context, batchId string) (any, error)
	Approve(tx *gorm.DB, batchId string) (int, error)
	Reject(tx *gorm.DB, batchId string) (int, error)
	FinalRecords(ctx context.Context, batchId string) (any, error)
}

// InvoiceProcessorRegistry resolves a provider name to its invoice
// processor. Built once at startup and read-only afterward; carriers are
// enumerated explicitly, never discovered by reflection.
type InvoiceProcessorRegistry struct {
	processors map[models.Provider]InvoiceProcessor
}

func NewInvoiceProcessorRegistry(processors ...InvoiceProcessor) *InvoiceProcessorRegistry {
	r := &InvoiceProcessorRegistry{processors: make(map[models.Provider]InvoiceProcessor, len(processors))}
	for _, p := range processors {
		r.processors[p.ProviderName()] = p
	}
	return r
}

func (r *InvoiceProcessorRegistry) Resolve(providerName string) (InvoiceProcessor, error) {
	p, ok := r.processors[models.CanonicalProvider(providerName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", utils.ErrorUnsupportedProvider, providerName)
	}
	return p, nil
}

type InventoryProcessorRegistry struct {
	processors map[models.Provider]InventoryProcessor
}

func NewInventoryProcessorRegistry(processors ...InventoryProcessor) *InventoryProcessorRegistry {
	r := &InventoryProcessorRegistry{processors: make(map[models.Provider]InventoryProcessor, len(processors))}
	for _, p := range processors {
		r.processors[p.ProviderName()] = p
	}
	return r
}

func (r *InventoryProcessorRegistry) Resolve(providerName string) (InventoryProcessor, error) {
	p, ok := r.processors[models.CanonicalProvider(providerName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", utils.ErrorUnsupportedProvider, providerName)
	}
	return p, nil
}

// ApprovalRegistry resolves a provider name to its approval strategy. One
// instance serves invoices and a structurally identical one serves
// inventory; they are not interchangeable because the staged and permanent
// schemas differ.
type ApprovalRegistry struct {
	strategies map[models.Provider]ApprovalStrategy
}

func NewApprovalRegistry(strategies ...ApprovalStrategy) *ApprovalRegistry {
	r := &ApprovalRegistry{strategies: make(map[models.Provider]ApprovalStrategy, len(strategies))}
	for _, s := range strategies {
		r.strategies[s.ProviderName()] = s
	}
	return r
}

func (r *ApprovalRegistry) Resolve(providerName string) (ApprovalStrategy, error) {
	s, ok := r.strategies[models.CanonicalProvider(providerName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", utils.ErrorUnsupportedProvider, providerName)
	}
	return s, nil
}

// Process-wide registries, built once at startup.
var (
	invoiceProcessors = NewInvoiceProcessorRegistry(
		&ATTInvoiceProcessor{},
		&FirstNetInvoiceProcessor{},
		&VerizonWirelessInvoiceProcessor{},
	)
	inventoryProcessors = NewInventoryProcessorRegistry(
		&ATTInventoryProcessor{},
		&FirstNetInventoryProcessor{},
		&VerizonWirelessInventoryProcessor{},
	)
	invoiceApprovals = NewApprovalRegistry(
		NewApprovalStrategy(models.ProviderATT, models.ConvertTempATTInvoice),
		NewApprovalStrategy(models.ProviderFirstNet, models.ConvertTempFirstNetInvoice),
		NewApprovalStrategy(models.ProviderVerizonWireless, models.ConvertTempVerizonWirelessInvoice),
	)
	inventoryApprovals = NewApprovalRegistry(
		NewApprovalStrategy(models.ProviderATT, models.ConvertTempATTInventory),
		NewApprovalStrategy(models.ProviderFirstNet, models.ConvertTempFirstNetInventory),
		NewApprovalStrategy(models.ProviderVerizonWireless, models.ConvertTempVerizonWirelessInventory),
	)
)

func InvoiceProcessors() *InvoiceProcessorRegistry     { return invoiceProcessors }
func InventoryProcessors() *InventoryProcessorRegistry { return inventoryProcessors }
func InvoiceApprovals() *ApprovalRegistry              { return invoiceApprovals }
func InventoryApprovals() *ApprovalRegistry            { return inventoryApprovals }

func fetchByBatchId[T any](ctx context.Context, batchId string) ([]*T, error) {
	db := config.GetDB()
	var records []*T
	if err := db.WithContext(ctx).Where("batch_id = ?", batchId).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
