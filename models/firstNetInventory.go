package models

import "time"

type TempFirstNetInventory struct {
	ID                     int         `gorm:"primary_key" json:"id"`
	BatchId                string      `gorm:"size:64;index;not null" json:"batch_id"`
	WirelessNumber         string      `gorm:"size:30;index" json:"wireless_number"`
	UserName               string      `gorm:"size:100" json:"user_name"`
	AccountNumber          string      `gorm:"size:50;index" json:"account_number"`
	DeviceId               string      `gorm:"size:40;index" json:"device_id"`
	Sim                    string      `gorm:"size:40" json:"sim"`
	DeviceMake             string      `gorm:"size:60" json:"device_make"`
	DeviceModel            string      `gorm:"size:100" json:"device_model"`
	DeviceType             string      `gorm:"size:60" json:"device_type"`
	DeviceStatus           string      `gorm:"size:30" json:"device_status"`
	Department             string      `gorm:"size:100" json:"department"`
	UpgradeEligibilityDate *time.Time  `json:"upgrade_eligibility_date"`
	ContractStartDate      *time.Time  `json:"contract_start_date"`
	ContractEndDate        *time.Time  `json:"contract_end_date"`
	SourceFilename         string      `gorm:"size:255" json:"source_filename"`
	Status                 BatchStatus `gorm:"size:20;not null;default:'PENDING_APPROVAL'" json:"status"`
	CreatedAt              time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type FirstNetInventory struct {
	ID                     int        `gorm:"primary_key" json:"id"`
	BatchId                string     `gorm:"size:64;index;not null" json:"batch_id"`
	WirelessNumber         string     `gorm:"size:30;index" json:"wireless_number"`
	UserName               string     `gorm:"size:100" json:"user_name"`
	AccountNumber          string     `gorm:"size:50;index" json:"account_number"`
	DeviceId               string     `gorm:"size:40;index" json:"device_id"`
	Sim                    string     `gorm:"size:40" json:"sim"`
	DeviceMake             string     `gorm:"size:60" json:"device_make"`
	DeviceModel            string     `gorm:"size:100" json:"device_model"`
	DeviceType             string     `gorm:"size:60" json:"device_type"`
	DeviceStatus           string     `gorm:"size:30" json:"device_status"`
	Department             string     `gorm:"size:100" json:"department"`
	UpgradeEligibilityDate *time.Time `json:"upgrade_eligibility_date"`
	ContractStartDate      *time.Time `json:"contract_start_date"`
	ContractEndDate        *time.Time `json:"contract_end_date"`
	SourceFilename         string     `gorm:"size:255" json:"source_filename"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func ConvertTempFirstNetInventory(temp *TempFirstNetInventory, batchId string) *FirstNetInventory {
	return &FirstNetInventory{
		BatchId:                batchId,
		WirelessNumber:         temp.WirelessNumber,
		UserName:               temp.UserName,
		AccountNumber:          temp.AccountNumber,
		DeviceId:               temp.DeviceId,
		Sim:                    temp.Sim,
		DeviceMake:             temp.DeviceMake,
		DeviceModel:            temp.DeviceModel,
		DeviceType:             temp.DeviceType,
		DeviceStatus:           temp.DeviceStatus,
		Department:             temp.Department,
		UpgradeEligibilityDate: temp.UpgradeEligibilityDate,
		ContractStartDate:      temp.ContractStartDate,
		ContractEndDate:        temp.ContractEndDate,
		SourceFilename:         temp.SourceFilename,
	}
}
