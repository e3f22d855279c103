package workflow

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/models"
)

func attInvoiceRow(account, wireless, invoiceDate, current, activity string) RawRow {
	return RawRow{
		{Header: "Wireless Number", Value: wireless},
		{Header: "User Name", Value: "Jordan Smith"},
		{Header: "Account Number", Value: account},
		{Header: "Invoice Date", Value: invoiceDate},
		{Header: "Rate Plan", Value: "Mobility Plan"},
		{Header: "Monthly Service Charges", Value: "$45.00"},
		{Header: "Equipment Charges", Value: "$10.00"},
		{Header: "Usage Charges", Value: ""},
		{Header: "Surcharges and Fees", Value: "$2.50"},
		{Header: "Government Taxes and Fees", Value: "$3.75"},
		{Header: "Total Current Charges", Value: current},
		{Header: "Total Activity since last Bill", Value: activity},
		{Header: "Department", Value: "From Export"},
	}
}

func TestATTInvoiceProcessorProcess(t *testing.T) {
	batch := models.NewInvoiceBatch(models.ProviderATT, "May bill", "uploader", "att_may.csv")
	mapping := map[string]string{"987": "Field Ops"}

	rows := []RawRow{
		attInvoiceRow("987", "2025550123", "05/10/2024", "$1,200.50", "$200.50"),
		// Entirely blank row: header artifacts from the export, dropped.
		{{Header: "Wireless Number", Value: ""}, {Header: "Account Number", Value: "  "}},
		// Non-numeric account: kept, but with no synthesized invoice number
		// and no department override.
		attInvoiceRow("unknown-acct", "2025550124", "05/10/2024", "bad", "$5.00"),
	}

	p := &ATTInvoiceProcessor{}
	set, err := p.Process(rows, batch, mapping, "att_may.csv")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	staged, ok := set.(StagedRecords[models.TempATTInvoice])
	if !ok {
		t.Fatalf("unexpected staged set type %T", set)
	}
	if len(staged) != 2 {
		t.Fatalf("len(staged) = %d, want 2", len(staged))
	}

	first := staged[0]
	if first.BatchId != batch.BatchId {
		t.Errorf("BatchId = %q, want %q", first.BatchId, batch.BatchId)
	}
	if first.InvoiceNumber != "987X05092024" {
		t.Errorf("InvoiceNumber = %q, want %q", first.InvoiceNumber, "987X05092024")
	}
	if first.InvoiceDate == nil || !first.InvoiceDate.Equal(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("InvoiceDate = %v", first.InvoiceDate)
	}
	if first.Department != "Field Ops" {
		t.Errorf("Department = %q, want mapping override", first.Department)
	}
	if first.RecurringCharge == nil || !first.RecurringCharge.Equal(mustDecimal(t, "1000")) {
		t.Errorf("RecurringCharge = %v, want 1000", first.RecurringCharge)
	}
	if !first.MonthlyServiceCharges.Equal(mustDecimal(t, "45")) {
		t.Errorf("MonthlyServiceCharges = %s", first.MonthlyServiceCharges)
	}
	// Blank currency cells stage as zero.
	if !first.UsageCharges.Equal(mustDecimal(t, "0")) {
		t.Errorf("UsageCharges = %s, want 0", first.UsageCharges)
	}
	if first.SourceFilename != "att_may.csv" {
		t.Errorf("SourceFilename = %q", first.SourceFilename)
	}
	if first.Status != models.BatchStatusPendingApproval {
		t.Errorf("Status = %q", first.Status)
	}

	second := staged[1]
	if second.InvoiceNumber != "" {
		t.Errorf("InvoiceNumber = %q, want empty for non-numeric account", second.InvoiceNumber)
	}
	// Department mapping miss keeps the export's own value.
	if second.Department != "From Export" {
		t.Errorf("Department = %q, want export fallback", second.Department)
	}
	// Unparseable total current charges: the field stages as zero, and the
	// recurring charge stays unset because the delta could not be computed.
	if !second.TotalCurrentCharges.Equal(mustDecimal(t, "0")) {
		t.Errorf("TotalCurrentCharges = %s, want 0", second.TotalCurrentCharges)
	}
	if second.RecurringCharge != nil {
		t.Errorf("RecurringCharge = %v, want unset", second.RecurringCharge)
	}
}

func TestATTInventoryProcessorProcess(t *testing.T) {
	batch := models.NewInventoryBatch(models.ProviderATT, "devices", "uploader", "att_devices.xlsx")
	rows := []RawRow{
		{
			{Header: "Wireless Number", Value: "2025550123"},
			{Header: "User Name", Value: "Jordan Smith"},
			{Header: "Account Number", Value: "987"},
			{Header: "ESN/IMEI", Value: "356938035643809"},
			{Header: "SIM", Value: "8901410321111111111"},
			{Header: "Device Make", Value: "Apple"},
			{Header: "Device Model", Value: "iPhone 15"},
			{Header: "Device Type", Value: "Smartphone"},
			{Header: "Device Status", Value: "Active"},
			{Header: "Upgrade Eligibility Date", Value: "11/01/2025"},
			{Header: "Contract Start Date", Value: "not a date"},
			{Header: "Contract End Date", Value: ""},
		},
	}

	p := &ATTInventoryProcessor{}
	set, err := p.Process(rows, batch, map[string]string{"987": "Field Ops"}, "att_devices.xlsx")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	staged, ok := set.(StagedRecords[models.TempATTInventory])
	if !ok {
		t.Fatalf("unexpected staged set type %T", set)
	}
	if len(staged) != 1 {
		t.Fatalf("len(staged) = %d, want 1", len(staged))
	}

	rec := staged[0]
	if rec.DeviceId != "356938035643809" {
		t.Errorf("DeviceId = %q", rec.DeviceId)
	}
	if rec.Department != "Field Ops" {
		t.Errorf("Department = %q", rec.Department)
	}
	if rec.UpgradeEligibilityDate == nil {
		t.Error("UpgradeEligibilityDate should be set")
	}
	// A bad date leaves just that field unset; the record survives.
	if rec.ContractStartDate != nil {
		t.Errorf("ContractStartDate = %v, want unset", rec.ContractStartDate)
	}
	if rec.ContractEndDate != nil {
		t.Errorf("ContractEndDate = %v, want unset for blank cell", rec.ContractEndDate)
	}
}

func TestFirstNetProcessorSharesATTShape(t *testing.T) {
	batch := models.NewInvoiceBatch(models.ProviderFirstNet, "firstnet may", "uploader", "firstnet_may.csv")
	rows := []RawRow{attInvoiceRow("42", "2025550125", "05/10/2024", "$100.00", "$40.00")}

	p := &FirstNetInvoiceProcessor{}
	set, err := p.Process(rows, batch, nil, "firstnet_may.csv")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	staged, ok := set.(StagedRecords[models.TempFirstNetInvoice])
	if !ok {
		t.Fatalf("unexpected staged set type %T", set)
	}
	if len(staged) != 1 {
		t.Fatalf("len(staged) = %d, want 1", len(staged))
	}
	if staged[0].InvoiceNumber != "42X05092024" {
		t.Errorf("InvoiceNumber = %q", staged[0].InvoiceNumber)
	}
	if staged[0].RecurringCharge == nil || !staged[0].RecurringCharge.Equal(mustDecimal(t, "60")) {
		t.Errorf("RecurringCharge = %v, want 60", staged[0].RecurringCharge)
	}
}
