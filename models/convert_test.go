package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestConvertTempATTInvoice(t *testing.T) {
	invoiceDate := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	recurring := decimal.RequireFromString("1000")
	temp := &TempATTInvoice{
		ID:                         42,
		BatchId:                    "old-batch",
		WirelessNumber:             "2025550123",
		UserName:                   "Jordan Smith",
		AccountNumber:              "987",
		InvoiceNumber:              "987X05092024",
		InvoiceDate:                &invoiceDate,
		Department:                 "Field Ops",
		RatePlan:                   "Mobility Plan",
		MonthlyServiceCharges:      decimal.RequireFromString("45"),
		TotalCurrentCharges:        decimal.RequireFromString("1200.50"),
		TotalActivitySinceLastBill: decimal.RequireFromString("200.50"),
		RecurringCharge:            &recurring,
		SourceFilename:             "att_may.csv",
		Status:                     BatchStatusPendingApproval,
		CreatedAt:                  time.Now().Add(-time.Hour),
	}

	perm := ConvertTempATTInvoice(temp, "new-batch")

	// Identity is freshly assigned on promotion; only the payload carries over.
	if perm.ID != 0 {
		t.Errorf("ID = %d, want zero before insert", perm.ID)
	}
	if perm.BatchId != "new-batch" {
		t.Errorf("BatchId = %q, want the approving batch id", perm.BatchId)
	}
	if perm.InvoiceNumber != temp.InvoiceNumber {
		t.Errorf("InvoiceNumber = %q", perm.InvoiceNumber)
	}
	if perm.InvoiceDate == nil || !perm.InvoiceDate.Equal(invoiceDate) {
		t.Errorf("InvoiceDate = %v", perm.InvoiceDate)
	}
	if !perm.TotalCurrentCharges.Equal(temp.TotalCurrentCharges) {
		t.Errorf("TotalCurrentCharges = %s", perm.TotalCurrentCharges)
	}
	if perm.RecurringCharge == nil || !perm.RecurringCharge.Equal(recurring) {
		t.Errorf("RecurringCharge = %v", perm.RecurringCharge)
	}
	if perm.SourceFilename != "att_may.csv" {
		t.Errorf("SourceFilename = %q", perm.SourceFilename)
	}
}

func TestConvertTempVerizonWirelessInvoice(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	temp := &TempVerizonWirelessInvoice{
		ID:                22,
		BatchId:           "old-batch",
		WirelessNumber:    "2025550199",
		AccountNumber:     "VZ-1001",
		InvoiceNumber:     "9101",
		BillPeriodStart:   &start,
		BillPeriodEnd:     &end,
		BillAddressLevel1: "HQ Building",
		MonthlyCharges:    decimal.RequireFromString("1234.56"),
		RecurringCharge:   decimal.RequireFromString("1234.56"),
		TotalCharges:      decimal.RequireFromString("1250.66"),
		SourceFilename:    "vzw_jan.xlsx",
	}

	perm := ConvertTempVerizonWirelessInvoice(temp, "new-batch")
	if perm.ID != 0 || perm.BatchId != "new-batch" {
		t.Errorf("identity not reset: id=%d batch=%q", perm.ID, perm.BatchId)
	}
	if perm.BillPeriodStart == nil || !perm.BillPeriodStart.Equal(start) {
		t.Errorf("BillPeriodStart = %v", perm.BillPeriodStart)
	}
	if !perm.RecurringCharge.Equal(temp.MonthlyCharges) {
		t.Errorf("RecurringCharge = %s", perm.RecurringCharge)
	}
	if !perm.TotalCharges.Equal(temp.TotalCharges) {
		t.Errorf("TotalCharges = %s", perm.TotalCharges)
	}
}

func TestConvertTempATTInventory(t *testing.T) {
	upgrade := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	temp := &TempATTInventory{
		ID:                     7,
		BatchId:                "old-batch",
		WirelessNumber:         "2025550123",
		AccountNumber:          "987",
		DeviceId:               "356938035643809",
		Sim:                    "8901410321111111111",
		DeviceMake:             "Apple",
		DeviceModel:            "iPhone 15",
		DeviceStatus:           "Active",
		Department:             "Field Ops",
		UpgradeEligibilityDate: &upgrade,
		SourceFilename:         "att_devices.xlsx",
	}

	perm := ConvertTempATTInventory(temp, "new-batch")
	if perm.ID != 0 || perm.BatchId != "new-batch" {
		t.Errorf("identity not reset: id=%d batch=%q", perm.ID, perm.BatchId)
	}
	if perm.DeviceId != temp.DeviceId || perm.Sim != temp.Sim {
		t.Errorf("device fields lost: %q %q", perm.DeviceId, perm.Sim)
	}
	if perm.UpgradeEligibilityDate == nil || !perm.UpgradeEligibilityDate.Equal(upgrade) {
		t.Errorf("UpgradeEligibilityDate = %v", perm.UpgradeEligibilityDate)
	}
}

func TestNewBatchDefaults(t *testing.T) {
	batch := NewInvoiceBatch(ProviderATT, "May bill", "uploader", "att_may.csv")
	if batch.BatchId == "" {
		t.Error("BatchId must be assigned")
	}
	if batch.Status != BatchStatusPendingApproval {
		t.Errorf("Status = %q", batch.Status)
	}
	if batch.Carrier != ProviderATT {
		t.Errorf("Carrier = %q", batch.Carrier)
	}
	if batch.UploadedBy != "uploader" || batch.SourceFilename != "att_may.csv" {
		t.Errorf("upload metadata lost: %+v", batch)
	}
	if batch.DateUploaded.IsZero() {
		t.Error("DateUploaded must be stamped")
	}

	other := NewInvoiceBatch(ProviderATT, "May bill", "uploader", "att_may.csv")
	if other.BatchId == batch.BatchId {
		t.Error("batch ids must be unique")
	}
}

func TestCanonicalProviderKnown(t *testing.T) {
	cases := map[string]bool{
		"att":             true,
		" ATT ":           true,
		"FirstNet":        true,
		"verizonwireless": true,
		"tmobile":         false,
		"":                false,
	}
	for name, want := range cases {
		if got := CanonicalProvider(name).Known(); got != want {
			t.Errorf("CanonicalProvider(%q).Known() = %v, want %v", name, got, want)
		}
	}
}
