package workflow

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/models"
)

func verizonInvoiceRow(invoiceNumber, monthly, total string) RawRow {
	return RawRow{
		{Header: "Wireless Number", Value: "2025550199"},
		{Header: "User Name", Value: "Riley Chen"},
		{Header: "Account Number", Value: "VZ-1001"},
		{Header: "Invoice Number", Value: invoiceNumber},
		{Header: "Bill Period", Value: "Jan 01 2024 - Jan 31 2024"},
		{Header: "Bill Address Level 1", Value: "HQ Building"},
		{Header: "Monthly Charges", Value: monthly},
		{Header: "Usage Charges", Value: "0.00"},
		{Header: "Equipment Charges", Value: "12.00"},
		{Header: "Taxes (Govt) Surcharges and Fees", Value: "4.10"},
		{Header: "Third-Party Charges", Value: ""},
		{Header: "Total Charges", Value: total},
	}
}

func TestVerizonInvoiceProcessorProcess(t *testing.T) {
	batch := models.NewInvoiceBatch(models.ProviderVerizonWireless, "jan bill", "uploader", "vzw_jan.xlsx")
	mapping := map[string]string{"VZ-1001": "Sales"}

	rows := []RawRow{
		verizonInvoiceRow("9101", "1,234.56", "1,250.66"),
		// One bad monetary cell fails the whole row; the rest of the file
		// still stages.
		verizonInvoiceRow("9102", "not-money", "10.00"),
		verizonInvoiceRow("9103", "", "80.00"),
	}

	p := &VerizonWirelessInvoiceProcessor{}
	set, err := p.Process(rows, batch, mapping, "vzw_jan.xlsx")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	staged, ok := set.(StagedRecords[models.TempVerizonWirelessInvoice])
	if !ok {
		t.Fatalf("unexpected staged set type %T", set)
	}
	if len(staged) != 2 {
		t.Fatalf("len(staged) = %d, want 2 (bad row dropped)", len(staged))
	}

	first := staged[0]
	if first.InvoiceNumber != "9101" {
		t.Errorf("InvoiceNumber = %q", first.InvoiceNumber)
	}
	// Grouping commas are stripped before strict decimal parsing.
	if !first.MonthlyCharges.Equal(mustDecimal(t, "1234.56")) {
		t.Errorf("MonthlyCharges = %s", first.MonthlyCharges)
	}
	// Verizon's recurring charge is the monthly charges, verbatim.
	if !first.RecurringCharge.Equal(mustDecimal(t, "1234.56")) {
		t.Errorf("RecurringCharge = %s", first.RecurringCharge)
	}
	if first.BillPeriodStart == nil || !first.BillPeriodStart.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("BillPeriodStart = %v", first.BillPeriodStart)
	}
	if first.BillPeriodEnd == nil || !first.BillPeriodEnd.Equal(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("BillPeriodEnd = %v", first.BillPeriodEnd)
	}
	if first.Department != "Sales" {
		t.Errorf("Department = %q, want mapping override", first.Department)
	}

	second := staged[1]
	if second.InvoiceNumber != "9103" {
		t.Errorf("surviving rows out of order: %q", second.InvoiceNumber)
	}
	// Blank monetary cell stages as zero, and so does the recurring charge.
	if !second.MonthlyCharges.IsZero() || !second.RecurringCharge.IsZero() {
		t.Errorf("blank monthly charges: monthly=%s recurring=%s", second.MonthlyCharges, second.RecurringCharge)
	}
}

func TestVerizonInvoiceBadBillPeriodKeepsRow(t *testing.T) {
	batch := models.NewInvoiceBatch(models.ProviderVerizonWireless, "jan bill", "uploader", "vzw_jan.xlsx")
	row := verizonInvoiceRow("9201", "50.00", "50.00")
	for i := range row {
		if row[i].Header == "Bill Period" {
			row[i].Value = "January 2024"
		}
	}

	p := &VerizonWirelessInvoiceProcessor{}
	set, err := p.Process([]RawRow{row}, batch, nil, "vzw_jan.xlsx")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	staged := set.(StagedRecords[models.TempVerizonWirelessInvoice])
	if len(staged) != 1 {
		t.Fatalf("len(staged) = %d, want 1", len(staged))
	}
	if staged[0].BillPeriodStart != nil || staged[0].BillPeriodEnd != nil {
		t.Errorf("bill period should be unset on parse failure, got %v / %v",
			staged[0].BillPeriodStart, staged[0].BillPeriodEnd)
	}
	// Department falls back to the bill address when the mapping misses.
	if staged[0].Department != "HQ Building" {
		t.Errorf("Department = %q, want bill address fallback", staged[0].Department)
	}
}

func TestVerizonInventoryProcessorDropsBadDates(t *testing.T) {
	batch := models.NewInventoryBatch(models.ProviderVerizonWireless, "devices", "uploader", "vzw_devices.xlsx")
	good := RawRow{
		{Header: "Wireless Number", Value: "2025550199"},
		{Header: "Account Number", Value: "VZ-1001"},
		{Header: "ESN/IMEI", Value: "356938035643810"},
		{Header: "Cost Center", Value: "CC-9"},
		{Header: "Contract Start Date", Value: "01/01/2024"},
		{Header: "Contract End Date", Value: "01/01/2026"},
	}
	bad := RawRow{
		{Header: "Wireless Number", Value: "2025550198"},
		{Header: "Account Number", Value: "VZ-1002"},
		{Header: "ESN/IMEI", Value: "356938035643811"},
		{Header: "Contract Start Date", Value: "sometime"},
	}

	p := &VerizonWirelessInventoryProcessor{}
	set, err := p.Process([]RawRow{good, bad}, batch, nil, "vzw_devices.xlsx")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	staged := set.(StagedRecords[models.TempVerizonWirelessInventory])
	if len(staged) != 1 {
		t.Fatalf("len(staged) = %d, want 1 (row with bad date dropped)", len(staged))
	}
	if staged[0].DeviceId != "356938035643810" {
		t.Errorf("DeviceId = %q", staged[0].DeviceId)
	}
	if staged[0].CostCenter != "CC-9" {
		t.Errorf("CostCenter = %q", staged[0].CostCenter)
	}
	if staged[0].ContractStartDate == nil || staged[0].ContractEndDate == nil {
		t.Error("contract dates should be set")
	}
}
