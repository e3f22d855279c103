package workflow

import (
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"github.com/shopspring/decimal"
)

// verizonMoneyParser converts the enumerated Verizon monetary columns.
// Thousands-separator commas are stripped before conversion; the decimal
// parser does not tolerate grouping. The first conversion failure is kept
// and fails the whole row: Verizon processing wraps each row in a failure
// boundary, so one bad row is dropped while the rest of the file goes on.
type verizonMoneyParser struct {
	fields map[string]string
	err    error
}

func (p *verizonMoneyParser) parse(key string) decimal.Decimal {
	raw := strings.TrimSpace(p.fields[key])
	if raw == "" {
		return decimal.Zero
	}
	value, err := utils.ParseDecimal(utils.StripGroupingCommas(raw))
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return decimal.Zero
	}
	return value
}

func buildVerizonWirelessInvoice(fields map[string]string, departmentMapping map[string]string, filename string) (*models.TempVerizonWirelessInvoice, error) {
	logger := config.GetLogger()
	provider := string(models.ProviderVerizonWireless)

	rec := &models.TempVerizonWirelessInvoice{
		WirelessNumber:    firstNonEmpty(fields, "wirelessNumber", "wirelessNo"),
		UserName:          firstNonEmpty(fields, "userName", "user"),
		AccountNumber:     fields["accountNumber"],
		InvoiceNumber:     fields["invoiceNumber"],
		BillAddressLevel1: fields["billAddressLevel1"],
	}
	businessKey := rec.InvoiceNumber
	if businessKey == "" {
		businessKey = rec.WirelessNumber
	}

	if rec.WirelessNumber != "" {
		if err := utils.ValidatePhoneNumber(rec.WirelessNumber, utils.CountryCode); err != nil {
			config.LogRowDiagnostic(logger, provider, filename, businessKey, "validate wireless number", err)
		}
	}

	p := &verizonMoneyParser{fields: fields}
	rec.MonthlyCharges = p.parse("monthlyCharges")
	rec.UsageCharges = p.parse("usageCharges")
	rec.EquipmentCharges = p.parse("equipmentCharges")
	rec.Surcharges = p.parse("surcharges")
	rec.TaxesGovtSurcharges = p.parse("taxesGovtSurchargesAndFees")
	rec.ThirdPartyCharges = p.parse("thirdPartyCharges")
	rec.LateFee = p.parse("lateFee")
	rec.DataCharges = p.parse("dataCharges")
	rec.MessagingCharges = p.parse("messagingCharges")
	rec.VoiceCharges = p.parse("voiceCharges")
	rec.RoamingCharges = p.parse("roamingCharges")
	rec.InternationalCharges = p.parse("internationalCharges")
	rec.PurchaseCharges = p.parse("purchaseCharges")
	rec.OtherChargesAndCredits = p.parse("otherChargesAndCredits")
	rec.AccountCharges = p.parse("accountCharges")
	rec.AccountCredits = p.parse("accountCredits")
	rec.Adjustments = p.parse("adjustments")
	rec.DevicePaymentCharges = p.parse("devicePaymentCharges")
	rec.TotalCharges = p.parse("totalCharges")
	if p.err != nil {
		return nil, p.err
	}

	// Verizon carries the recurring charge directly: monthly charges
	// verbatim when present, zero otherwise.
	rec.RecurringCharge = rec.MonthlyCharges

	start, end, err := SplitBillPeriod(fields["billPeriod"])
	if err != nil {
		// Both dates stay unset; the row is kept.
		config.LogRowDiagnostic(logger, provider, filename, businessKey, "split bill period", err)
	}
	rec.BillPeriodStart = start
	rec.BillPeriodEnd = end

	department, found := ResolveDepartment(rec.AccountNumber, rec.BillAddressLevel1, departmentMapping)
	if !found {
		config.LogRowDiagnostic(logger, provider, filename, businessKey, "department lookup miss for account "+rec.AccountNumber, nil)
	}
	rec.Department = department

	return rec, nil
}

func buildVerizonWirelessInventory(fields map[string]string, departmentMapping map[string]string, filename string) (*models.TempVerizonWirelessInventory, error) {
	logger := config.GetLogger()
	provider := string(models.ProviderVerizonWireless)

	rec := &models.TempVerizonWirelessInventory{
		WirelessNumber: firstNonEmpty(fields, "wirelessNumber", "wirelessNo"),
		UserName:       firstNonEmpty(fields, "userName", "user"),
		AccountNumber:  fields["accountNumber"],
		CostCenter:     fields["costCenter"],
		DeviceId:       firstNonEmpty(fields, "esnImei", "deviceId", "imei"),
		Sim:            firstNonEmpty(fields, "sim", "simId", "iccid"),
		DeviceMake:     fields["deviceMake"],
		DeviceModel:    firstNonEmpty(fields, "deviceModel", "model"),
		DeviceType:     fields["deviceType"],
		DeviceStatus:   firstNonEmpty(fields, "deviceStatus", "status"),
	}
	businessKey := rec.DeviceId

	if rec.WirelessNumber != "" {
		if err := utils.ValidatePhoneNumber(rec.WirelessNumber, utils.CountryCode); err != nil {
			config.LogRowDiagnostic(logger, provider, filename, businessKey, "validate wireless number", err)
		}
	}

	for _, d := range []struct {
		key  string
		dest **time.Time
	}{
		{"upgradeEligibilityDate", &rec.UpgradeEligibilityDate},
		{"contractStartDate", &rec.ContractStartDate},
		{"contractEndDate", &rec.ContractEndDate},
	} {
		parsed, err := ParseFlexibleDate(fields[d.key])
		if err != nil {
			return nil, err
		}
		*d.dest = parsed
	}

	department, found := ResolveDepartment(rec.AccountNumber, fields["department"], departmentMapping)
	if !found {
		config.LogRowDiagnostic(logger, provider, filename, businessKey, "department lookup miss for account "+rec.AccountNumber, nil)
	}
	rec.Department = department

	return rec, nil
}

type VerizonWirelessInvoiceProcessor struct{}

func (p *VerizonWirelessInvoiceProcessor) ProviderName() models.Provider {
	return models.ProviderVerizonWireless
}

func (p *VerizonWirelessInvoiceProcessor) Process(rows []RawRow, batch *models.InvoiceBatchHistory, departmentMapping map[string]string, filename string) (StagedSet, error) {
	logger := config.GetLogger()
	staged := make(StagedRecords[models.TempVerizonWirelessInvoice], 0, len(rows))
	for _, row := range FilterEmptyRows(rows) {
		fields := NormalizeRow(row, delimitersVerizonWireless)
		rec, err := buildVerizonWirelessInvoice(fields, departmentMapping, filename)
		if err != nil {
			// Row-level failure boundary: drop this row, keep the rest.
			config.LogRowDiagnostic(logger, string(models.ProviderVerizonWireless), filename, fields["invoiceNumber"], "drop row", err)
			continue
		}
		rec.BatchId = batch.BatchId
		rec.SourceFilename = filename
		rec.Status = models.BatchStatusPendingApproval
		staged = append(staged, rec)
	}
	return staged, nil
}

type VerizonWirelessInventoryProcessor struct{}

func (p *VerizonWirelessInventoryProcessor) ProviderName() models.Provider {
	return models.ProviderVerizonWireless
}

func (p *VerizonWirelessInventoryProcessor) Process(rows []RawRow, batch *models.InventoryBatchHistory, departmentMapping map[string]string, filename string) (StagedSet, error) {
	logger := config.GetLogger()
	staged := make(StagedRecords[models.TempVerizonWirelessInventory], 0, len(rows))
	for _, row := range FilterEmptyRows(rows) {
		fields := NormalizeRow(row, delimitersVerizonWireless)
		rec, err := buildVerizonWirelessInventory(fields, departmentMapping, filename)
		if err != nil {
			config.LogRowDiagnostic(logger, string(models.ProviderVerizonWireless), filename, fields["esnImei"], "drop row", err)
			continue
		}
		rec.BatchId = batch.BatchId
		rec.SourceFilename = filename
		rec.Status = models.BatchStatusPendingApproval
		staged = append(staged, rec)
	}
	return staged, nil
}
