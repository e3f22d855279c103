package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FirstNet rides the AT&T network and ships the same invoice schema family,
// but the tables and types stay distinct: the two carriers are reviewed and
// approved as separate batches.
type TempFirstNetInvoice struct {
	ID                         int              `gorm:"primary_key" json:"id"`
	BatchId                    string           `gorm:"size:64;index;not null" json:"batch_id"`
	WirelessNumber             string           `gorm:"size:30;index" json:"wireless_number"`
	UserName                   string           `gorm:"size:100" json:"user_name"`
	AccountNumber              string           `gorm:"size:50;index" json:"account_number"`
	InvoiceNumber              string           `gorm:"size:60;index" json:"invoice_number"`
	InvoiceDate                *time.Time       `json:"invoice_date"`
	Department                 string           `gorm:"size:100" json:"department"`
	RatePlan                   string           `gorm:"size:150" json:"rate_plan"`
	MonthlyServiceCharges      decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"monthly_service_charges"`
	EquipmentCharges           decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"equipment_charges"`
	UsageCharges               decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"usage_charges"`
	SurchargesAndFees          decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"surcharges_and_fees"`
	GovernmentTaxesAndFees     decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"government_taxes_and_fees"`
	TotalCurrentCharges        decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"total_current_charges"`
	TotalActivitySinceLastBill decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"total_activity_since_last_bill"`
	RecurringCharge            *decimal.Decimal `gorm:"type:decimal(20,6)" json:"recurring_charge"`
	SourceFilename             string           `gorm:"size:255" json:"source_filename"`
	Status                     BatchStatus      `gorm:"size:20;not null;default:'PENDING_APPROVAL'" json:"status"`
	CreatedAt                  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type FirstNetInvoice struct {
	ID                         int              `gorm:"primary_key" json:"id"`
	BatchId                    string           `gorm:"size:64;index;not null" json:"batch_id"`
	WirelessNumber             string           `gorm:"size:30;index" json:"wireless_number"`
	UserName                   string           `gorm:"size:100" json:"user_name"`
	AccountNumber              string           `gorm:"size:50;index" json:"account_number"`
	InvoiceNumber              string           `gorm:"size:60;index" json:"invoice_number"`
	InvoiceDate                *time.Time       `json:"invoice_date"`
	Department                 string           `gorm:"size:100" json:"department"`
	RatePlan                   string           `gorm:"size:150" json:"rate_plan"`
	MonthlyServiceCharges      decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"monthly_service_charges"`
	EquipmentCharges           decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"equipment_charges"`
	UsageCharges               decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"usage_charges"`
	SurchargesAndFees          decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"surcharges_and_fees"`
	GovernmentTaxesAndFees     decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"government_taxes_and_fees"`
	TotalCurrentCharges        decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"total_current_charges"`
	TotalActivitySinceLastBill decimal.Decimal  `gorm:"type:decimal(20,6);not null;default:0" json:"total_activity_since_last_bill"`
	RecurringCharge            *decimal.Decimal `gorm:"type:decimal(20,6)" json:"recurring_charge"`
	SourceFilename             string           `gorm:"size:255" json:"source_filename"`
	CreatedAt                  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func ConvertTempFirstNetInvoice(temp *TempFirstNetInvoice, batchId string) *FirstNetInvoice {
	return &FirstNetInvoice{
		BatchId:                    batchId,
		WirelessNumber:             temp.WirelessNumber,
		UserName:                   temp.UserName,
		AccountNumber:              temp.AccountNumber,
		InvoiceNumber:              temp.InvoiceNumber,
		InvoiceDate:                temp.InvoiceDate,
		Department:                 temp.Department,
		RatePlan:                   temp.RatePlan,
		MonthlyServiceCharges:      temp.MonthlyServiceCharges,
		EquipmentCharges:           temp.EquipmentCharges,
		UsageCharges:               temp.UsageCharges,
		SurchargesAndFees:          temp.SurchargesAndFees,
		GovernmentTaxesAndFees:     temp.GovernmentTaxesAndFees,
		TotalCurrentCharges:        temp.TotalCurrentCharges,
		TotalActivitySinceLastBill: temp.TotalActivitySinceLastBill,
		RecurringCharge:            temp.RecurringCharge,
		SourceFilename:             temp.SourceFilename,
	}
}
