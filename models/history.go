package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"gorm.io/gorm"
)

// History records who did what to which batch, for the audit trail.
type History struct {
	ID            int       `gorm:"primary_key" json:"id"`
	ActionType    string    `gorm:"size:20;not null" json:"action_type"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	BatchId       string    `gorm:"size:64;index" json:"batch_id"`
	ReferenceType string    `gorm:"size:100" json:"reference_type"`
	UserName      string    `gorm:"size:100" json:"user_name"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func createHistory(tx *gorm.DB, actionType string, batchId string, referenceType string, description string) error {
	ctx := tx.Statement.Context

	userName, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		userName = "system"
	}

	history := History{
		ActionType:    actionType,
		Description:   description,
		BatchId:       batchId,
		ReferenceType: referenceType,
		UserName:      userName,
	}
	return tx.Create(&history).Error
}

func SaveHistoryIngest(tx *gorm.DB, batchId string, referenceType string, description string) error {
	return createHistory(tx, "INGEST", batchId, referenceType, description)
}

func SaveHistoryApprove(tx *gorm.DB, batchId string, referenceType string, description string) error {
	return createHistory(tx, "APPROVE", batchId, referenceType, description)
}

func SaveHistoryReject(tx *gorm.DB, batchId string, referenceType string, description string) error {
	return createHistory(tx, "REJECT", batchId, referenceType, description)
}

func GetHistories(ctx context.Context, batchId *string, userName *string) ([]*History, error) {
	db := config.GetDB()
	var results []*History

	dbCtx := db.WithContext(ctx)
	if batchId != nil && *batchId != "" {
		dbCtx = dbCtx.Where("batch_id = ?", *batchId)
	}
	if userName != nil && *userName != "" {
		dbCtx = dbCtx.Where("user_name = ?", *userName)
	}
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
