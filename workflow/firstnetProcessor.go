package workflow

import (
	"bitbucket.org/mmdatafocus/telecom_backend/models"
)

// FirstNet shares the AT&T export layout, so both processors reuse the
// AT&T-family builders and differ only in the staged type and the provider
// name stamped on diagnostics.

type FirstNetInvoiceProcessor struct{}

func (p *FirstNetInvoiceProcessor) ProviderName() models.Provider {
	return models.ProviderFirstNet
}

func (p *FirstNetInvoiceProcessor) Process(rows []RawRow, batch *models.InvoiceBatchHistory, departmentMapping map[string]string, filename string) (StagedSet, error) {
	staged := make(StagedRecords[models.TempFirstNetInvoice], 0, len(rows))
	for _, row := range FilterEmptyRows(rows) {
		fields := NormalizeRow(row, delimitersFirstNet)
		inv := buildATTFamilyInvoice(fields, departmentMapping, models.ProviderFirstNet, filename)
		staged = append(staged, &models.TempFirstNetInvoice{
			BatchId:                    batch.BatchId,
			WirelessNumber:             inv.WirelessNumber,
			UserName:                   inv.UserName,
			AccountNumber:              inv.AccountNumber,
			InvoiceNumber:              inv.InvoiceNumber,
			InvoiceDate:                inv.InvoiceDate,
			Department:                 inv.Department,
			RatePlan:                   inv.RatePlan,
			MonthlyServiceCharges:      inv.MonthlyServiceCharges,
			EquipmentCharges:           inv.EquipmentCharges,
			UsageCharges:               inv.UsageCharges,
			SurchargesAndFees:          inv.SurchargesAndFees,
			GovernmentTaxesAndFees:     inv.GovernmentTaxesAndFees,
			TotalCurrentCharges:        inv.TotalCurrentCharges,
			TotalActivitySinceLastBill: inv.TotalActivitySinceLastBill,
			RecurringCharge:            inv.RecurringCharge,
			SourceFilename:             filename,
			Status:                     models.BatchStatusPendingApproval,
		})
	}
	return staged, nil
}

type FirstNetInventoryProcessor struct{}

func (p *FirstNetInventoryProcessor) ProviderName() models.Provider {
	return models.ProviderFirstNet
}

func (p *FirstNetInventoryProcessor) Process(rows []RawRow, batch *models.InventoryBatchHistory, departmentMapping map[string]string, filename string) (StagedSet, error) {
	staged := make(StagedRecords[models.TempFirstNetInventory], 0, len(rows))
	for _, row := range FilterEmptyRows(rows) {
		fields := NormalizeRow(row, delimitersFirstNet)
		inv := buildATTFamilyInventory(fields, departmentMapping, models.ProviderFirstNet, filename)
		staged = append(staged, &models.TempFirstNetInventory{
			BatchId:                batch.BatchId,
			WirelessNumber:         inv.WirelessNumber,
			UserName:               inv.UserName,
			AccountNumber:          inv.AccountNumber,
			DeviceId:               inv.DeviceId,
			Sim:                    inv.Sim,
			DeviceMake:             inv.DeviceMake,
			DeviceModel:            inv.DeviceModel,
			DeviceType:             inv.DeviceType,
			DeviceStatus:           inv.DeviceStatus,
			Department:             inv.Department,
			UpgradeEligibilityDate: inv.UpgradeEligibilityDate,
			ContractStartDate:      inv.ContractStartDate,
			ContractEndDate:        inv.ContractEndDate,
			SourceFilename:         filename,
			Status:                 models.BatchStatusPendingApproval,
		})
	}
	return staged, nil
}
