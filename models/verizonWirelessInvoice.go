package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TempVerizonWirelessInvoice is the staged copy of one Verizon Wireless
// "wireless usage detail" export row. Verizon carries its invoice number in
// the export, splits the bill period into a single string column, and groups
// thousands with commas in every monetary column.
type TempVerizonWirelessInvoice struct {
	ID                     int             `gorm:"primary_key" json:"id"`
	BatchId                string          `gorm:"size:64;index;not null" json:"batch_id"`
	WirelessNumber         string          `gorm:"size:30;index" json:"wireless_number"`
	UserName               string          `gorm:"size:100" json:"user_name"`
	AccountNumber          string          `gorm:"size:50;index" json:"account_number"`
	InvoiceNumber          string          `gorm:"size:60;index" json:"invoice_number"`
	BillPeriodStart        *time.Time      `json:"bill_period_start"`
	BillPeriodEnd          *time.Time      `json:"bill_period_end"`
	BillAddressLevel1      string          `gorm:"size:150" json:"bill_address_level1"`
	Department             string          `gorm:"size:100" json:"department"`
	RecurringCharge        decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"recurring_charge"`
	MonthlyCharges         decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"monthly_charges"`
	UsageCharges           decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"usage_charges"`
	EquipmentCharges       decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"equipment_charges"`
	Surcharges             decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"surcharges"`
	TaxesGovtSurcharges    decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"taxes_govt_surcharges"`
	ThirdPartyCharges      decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"third_party_charges"`
	LateFee                decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"late_fee"`
	DataCharges            decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"data_charges"`
	MessagingCharges       decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"messaging_charges"`
	VoiceCharges           decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"voice_charges"`
	RoamingCharges         decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"roaming_charges"`
	InternationalCharges   decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"international_charges"`
	PurchaseCharges        decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"purchase_charges"`
	OtherChargesAndCredits decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"other_charges_and_credits"`
	AccountCharges         decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"account_charges"`
	AccountCredits         decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"account_credits"`
	Adjustments            decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"adjustments"`
	DevicePaymentCharges   decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"device_payment_charges"`
	TotalCharges           decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"total_charges"`
	SourceFilename         string          `gorm:"size:255" json:"source_filename"`
	Status                 BatchStatus     `gorm:"size:20;not null;default:'PENDING_APPROVAL'" json:"status"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type VerizonWirelessInvoice struct {
	ID                     int             `gorm:"primary_key" json:"id"`
	BatchId                string          `gorm:"size:64;index;not null" json:"batch_id"`
	WirelessNumber         string          `gorm:"size:30;index" json:"wireless_number"`
	UserName               string          `gorm:"size:100" json:"user_name"`
	AccountNumber          string          `gorm:"size:50;index" json:"account_number"`
	InvoiceNumber          string          `gorm:"size:60;index" json:"invoice_number"`
	BillPeriodStart        *time.Time      `json:"bill_period_start"`
	BillPeriodEnd          *time.Time      `json:"bill_period_end"`
	BillAddressLevel1      string          `gorm:"size:150" json:"bill_address_level1"`
	Department             string          `gorm:"size:100" json:"department"`
	RecurringCharge        decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"recurring_charge"`
	MonthlyCharges         decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"monthly_charges"`
	UsageCharges           decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"usage_charges"`
	EquipmentCharges       decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"equipment_charges"`
	Surcharges             decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"surcharges"`
	TaxesGovtSurcharges    decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"taxes_govt_surcharges"`
	ThirdPartyCharges      decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"third_party_charges"`
	LateFee                decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"late_fee"`
	DataCharges            decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"data_charges"`
	MessagingCharges       decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"messaging_charges"`
	VoiceCharges           decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"voice_charges"`
	RoamingCharges         decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"roaming_charges"`
	InternationalCharges   decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"international_charges"`
	PurchaseCharges        decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"purchase_charges"`
	OtherChargesAndCredits decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"other_charges_and_credits"`
	AccountCharges         decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"account_charges"`
	AccountCredits         decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"account_credits"`
	Adjustments            decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"adjustments"`
	DevicePaymentCharges   decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"device_payment_charges"`
	TotalCharges           decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"total_charges"`
	SourceFilename         string          `gorm:"size:255" json:"source_filename"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// MonetaryColumnsVerizonWireless enumerates the canonical keys whose raw
// values carry comma grouping in the Verizon export. The commas are stripped
// before decimal conversion; the parser does not tolerate them.
var MonetaryColumnsVerizonWireless = []string{
	"monthlyCharges",
	"usageCharges",
	"equipmentCharges",
	"surcharges",
	"taxesGovtSurchargesAndFees",
	"thirdPartyCharges",
	"lateFee",
	"dataCharges",
	"messagingCharges",
	"voiceCharges",
	"roamingCharges",
	"internationalCharges",
	"purchaseCharges",
	"otherChargesAndCredits",
	"accountCharges",
	"accountCredits",
	"adjustments",
	"devicePaymentCharges",
	"totalCharges",
}

func ConvertTempVerizonWirelessInvoice(temp *TempVerizonWirelessInvoice, batchId string) *VerizonWirelessInvoice {
	return &VerizonWirelessInvoice{
		BatchId:                batchId,
		WirelessNumber:         temp.WirelessNumber,
		UserName:               temp.UserName,
		AccountNumber:          temp.AccountNumber,
		InvoiceNumber:          temp.InvoiceNumber,
		BillPeriodStart:        temp.BillPeriodStart,
		BillPeriodEnd:          temp.BillPeriodEnd,
		BillAddressLevel1:      temp.BillAddressLevel1,
		Department:             temp.Department,
		RecurringCharge:        temp.RecurringCharge,
		MonthlyCharges:         temp.MonthlyCharges,
		UsageCharges:           temp.UsageCharges,
		EquipmentCharges:       temp.EquipmentCharges,
		Surcharges:             temp.Surcharges,
		TaxesGovtSurcharges:    temp.TaxesGovtSurcharges,
		ThirdPartyCharges:      temp.ThirdPartyCharges,
		LateFee:                temp.LateFee,
		DataCharges:            temp.DataCharges,
		MessagingCharges:       temp.MessagingCharges,
		VoiceCharges:           temp.VoiceCharges,
		RoamingCharges:         temp.RoamingCharges,
		InternationalCharges:   temp.InternationalCharges,
		PurchaseCharges:        temp.PurchaseCharges,
		OtherChargesAndCredits: temp.OtherChargesAndCredits,
		AccountCharges:         temp.AccountCharges,
		AccountCredits:         temp.AccountCredits,
		Adjustments:            temp.Adjustments,
		DevicePaymentCharges:   temp.DevicePaymentCharges,
		TotalCharges:           temp.TotalCharges,
		SourceFilename:         temp.SourceFilename,
	}
}
