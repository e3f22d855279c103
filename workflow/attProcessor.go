package workflow

import (
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// attFamilyInvoice holds the converted fields shared by the AT&T and
// FirstNet invoice schemas. FirstNet is an AT&T network product and ships
// the same export layout.
type attFamilyInvoice struct {
	WirelessNumber             string
	UserName                   string
	AccountNumber              string
	InvoiceNumber              string
	InvoiceDate                *time.Time
	Department                 string
	RatePlan                   string
	MonthlyServiceCharges      decimal.Decimal
	EquipmentCharges           decimal.Decimal
	UsageCharges               decimal.Decimal
	SurchargesAndFees          decimal.Decimal
	GovernmentTaxesAndFees     decimal.Decimal
	TotalCurrentCharges        decimal.Decimal
	TotalActivitySinceLastBill decimal.Decimal
	RecurringCharge            *decimal.Decimal
}

// firstNonEmpty returns the first non-blank value among the given canonical
// keys; carriers label the same column differently across export versions.
func firstNonEmpty(fields map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(fields[key]); v != "" {
			return v
		}
	}
	return ""
}

// currencyField parses one monetary column, logging a diagnostic and
// falling back to zero on failure. Blank parses as zero.
func currencyField(logger *logrus.Logger, fields map[string]string, key string, provider models.Provider, filename string, businessKey string) decimal.Decimal {
	value, err := utils.ParseCurrencyDecimal(fields[key])
	if err != nil {
		config.LogRowDiagnostic(logger, string(provider), filename, businessKey, "parse "+key, err)
		return decimal.Zero
	}
	return value
}

// buildATTFamilyInvoice converts one normalized row in the required order:
// type conversion, then derived fields, then department resolution. Batch,
// filename and status stamping belong to the caller. Every failure here is
// row-local: the affected field stays unset and a diagnostic is logged.
func buildATTFamilyInvoice(fields map[string]string, departmentMapping map[string]string, provider models.Provider, filename string) attFamilyInvoice {
	logger := config.GetLogger()

	inv := attFamilyInvoice{
		WirelessNumber: firstNonEmpty(fields, "wirelessNumber", "wirelessNo"),
		UserName:       firstNonEmpty(fields, "userName", "user"),
		AccountNumber:  firstNonEmpty(fields, "accountNumber", "foundationAccount"),
		RatePlan:       fields["ratePlan"],
	}
	businessKey := inv.WirelessNumber

	if inv.WirelessNumber != "" {
		if err := utils.ValidatePhoneNumber(inv.WirelessNumber, utils.CountryCode); err != nil {
			config.LogRowDiagnostic(logger, string(provider), filename, businessKey, "validate wireless number", err)
		}
	}

	invoiceDate, err := ParseFlexibleDate(firstNonEmpty(fields, "invoiceDate", "billDate"))
	if err != nil {
		config.LogRowDiagnostic(logger, string(provider), filename, businessKey, "parse invoice date", err)
	}
	inv.InvoiceDate = invoiceDate

	inv.MonthlyServiceCharges = currencyField(logger, fields, "monthlyServiceCharges", provider, filename, businessKey)
	inv.EquipmentCharges = currencyField(logger, fields, "equipmentCharges", provider, filename, businessKey)
	inv.UsageCharges = currencyField(logger, fields, "usageCharges", provider, filename, businessKey)
	inv.SurchargesAndFees = currencyField(logger, fields, "surchargesAndFees", provider, filename, businessKey)
	inv.GovernmentTaxesAndFees = currencyField(logger, fields, "governmentTaxesAndFees", provider, filename, businessKey)
	inv.TotalCurrentCharges = currencyField(logger, fields, "totalCurrentCharges", provider, filename, businessKey)
	inv.TotalActivitySinceLastBill = currencyField(logger, fields, "totalActivitySinceLastBill", provider, filename, businessKey)

	// Derived fields.
	invoiceNumber, err := SynthesizeInvoiceNumber(inv.AccountNumber, inv.InvoiceDate)
	if err != nil {
		config.LogRowDiagnostic(logger, string(provider), filename, businessKey, "synthesize invoice number", err)
	}
	inv.InvoiceNumber = invoiceNumber

	recurring, err := RecurringChargeDelta(fields["totalCurrentCharges"], fields["totalActivitySinceLastBill"])
	if err != nil {
		config.LogRowDiagnostic(logger, string(provider), filename, businessKey, "recurring charge delta", err)
	} else {
		inv.RecurringCharge = &recurring
	}

	department, found := ResolveDepartment(inv.AccountNumber, fields["department"], departmentMapping)
	if !found {
		config.LogRowDiagnostic(logger, string(provider), filename, businessKey, "department lookup miss for account "+inv.AccountNumber, nil)
	}
	inv.Department = department

	return inv
}

// attFamilyInventory is the shared device-inventory shape.
type attFamilyInventory struct {
	WirelessNumber         string
	UserName               string
	AccountNumber          string
	DeviceId               string
	Sim                    string
	DeviceMake             string
	DeviceModel            string
	DeviceType             string
	DeviceStatus           string
	Department             string
	UpgradeEligibilityDate *time.Time
	ContractStartDate      *time.Time
	ContractEndDate        *time.Time
}

func buildATTFamilyInventory(fields map[string]string, departmentMapping map[string]string, provider models.Provider, filename string) attFamilyInventory {
	logger := config.GetLogger()

	inv := attFamilyInventory{
		WirelessNumber: firstNonEmpty(fields, "wirelessNumber", "wirelessNo"),
		UserName:       firstNonEmpty(fields, "userName", "user"),
		AccountNumber:  firstNonEmpty(fields, "accountNumber", "foundationAccount"),
		DeviceId:       firstNonEmpty(fields, "deviceId", "imei", "esnImei"),
		Sim:            firstNonEmpty(fields, "sim", "iccid", "simNumber"),
		DeviceMake:     fields["deviceMake"],
		DeviceModel:    firstNonEmpty(fields, "deviceModel", "model"),
		DeviceType:     fields["deviceType"],
		DeviceStatus:   firstNonEmpty(fields, "deviceStatus", "status"),
	}
	businessKey := inv.DeviceId

	if inv.WirelessNumber != "" {
		if err := utils.ValidatePhoneNumber(inv.WirelessNumber, utils.CountryCode); err != nil {
			config.LogRowDiagnostic(logger, string(provider), filename, businessKey, "validate wireless number", err)
		}
	}

	for _, d := range []struct {
		key  string
		dest **time.Time
	}{
		{"upgradeEligibilityDate", &inv.UpgradeEligibilityDate},
		{"contractStartDate", &inv.ContractStartDate},
		{"contractEndDate", &inv.ContractEndDate},
	} {
		parsed, err := ParseFlexibleDate(fields[d.key])
		if err != nil {
			config.LogRowDiagnostic(logger, string(provider), filename, businessKey, "parse "+d.key, err)
			continue
		}
		*d.dest = parsed
	}

	department, found := ResolveDepartment(inv.AccountNumber, fields["department"], departmentMapping)
	if !found {
		config.LogRowDiagnostic(logger, string(provider), filename, businessKey, "department lookup miss for account "+inv.AccountNumber, nil)
	}
	inv.Department = department

	return inv
}

type ATTInvoiceProcessor struct{}

func (p *ATTInvoiceProcessor) ProviderName() models.Provider {
	return models.ProviderATT
}

func (p *ATTInvoiceProcessor) Process(rows []RawRow, batch *models.InvoiceBatchHistory, departmentMapping map[string]string, filename string) (StagedSet, error) {
	staged := make(StagedRecords[models.TempATTInvoice], 0, len(rows))
	for _, row := range FilterEmptyRows(rows) {
		fields := NormalizeRow(row, delimitersATT)
		inv := buildATTFamilyInvoice(fields, departmentMapping, models.ProviderATT, filename)
		staged = append(staged, &models.TempATTInvoice{
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

type ATTInventoryProcessor struct{}

func (p *ATTInventoryProcessor) ProviderName() models.Provider {
	return models.ProviderATT
}

func (p *ATTInventoryProcessor) Process(rows []RawRow, batch *models.InventoryBatchHistory, departmentMapping map[string]string, filename string) (StagedSet, error) {
	staged := make(StagedRecords[models.TempATTInventory], 0, len(rows))
	for _, row := range FilterEmptyRows(rows) {
		fields := NormalizeRow(row, delimitersATT)
		inv := buildATTFamilyInventory(fields, departmentMapping, models.ProviderATT, filename)
		staged = append(staged, &models.TempATTInventory{
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
