package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"gorm.io/gorm"
)

// DepartmentAccountMapping maps a carrier account number to the department
// that owns it. Ingestion consumes the whole table as a read-only
// map[string]string; enrichment must never mutate it.
type DepartmentAccountMapping struct {
	ID             int       `gorm:"primary_key" json:"id"`
	AccountNumber  string    `gorm:"size:50;uniqueIndex;not null" json:"account_number"`
	DepartmentName string    `gorm:"size:100;not null" json:"department_name"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDepartmentAccountMapping struct {
	AccountNumber  string `json:"account_number" binding:"required"`
	DepartmentName string `json:"department_name" binding:"required"`
}

func (input *NewDepartmentAccountMapping) validate(ctx context.Context, id int) error {
	if err := utils.ValidateUnique[DepartmentAccountMapping](ctx, "account_number", input.AccountNumber, id); err != nil {
		return err
	}
	return nil
}

func CreateDepartmentAccountMapping(ctx context.Context, input *NewDepartmentAccountMapping) (*DepartmentAccountMapping, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	db := config.GetDB()
	mapping := DepartmentAccountMapping{
		AccountNumber:  input.AccountNumber,
		DepartmentName: input.DepartmentName,
		IsActive:       utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&mapping).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return nil, utils.ErrorDuplicateResource
		}
		return nil, err
	}
	invalidateDepartmentMappingCache()

	return &mapping, nil
}

func UpdateDepartmentAccountMapping(ctx context.Context, id int, input *NewDepartmentAccountMapping) (*DepartmentAccountMapping, error) {
	db := config.GetDB()
	mapping, err := getDepartmentAccountMapping(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(mapping).Updates(map[string]interface{}{
		"AccountNumber":  input.AccountNumber,
		"DepartmentName": input.DepartmentName,
	}).Error; err != nil {
		return nil, err
	}
	invalidateDepartmentMappingCache()

	return mapping, nil
}

func DeleteDepartmentAccountMapping(ctx context.Context, id int) (*DepartmentAccountMapping, error) {
	db := config.GetDB()
	mapping, err := getDepartmentAccountMapping(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(mapping).Error; err != nil {
		return nil, err
	}
	invalidateDepartmentMappingCache()

	return mapping, nil
}

func GetDepartmentAccountMapping(ctx context.Context, id int) (*DepartmentAccountMapping, error) {
	return getDepartmentAccountMapping(ctx, id)
}

func getDepartmentAccountMapping(ctx context.Context, id int) (*DepartmentAccountMapping, error) {
	db := config.GetDB()
	var mapping DepartmentAccountMapping
	err := db.WithContext(ctx).First(&mapping, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

func GetDepartmentAccountMappings(ctx context.Context) ([]*DepartmentAccountMapping, error) {
	db := config.GetDB()
	var results []*DepartmentAccountMapping
	if err := db.WithContext(ctx).Order("account_number ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// LoadDepartmentMapping returns the accountNumber -> departmentName lookup
// handed to ingestion, redis first, db on a miss.
func LoadDepartmentMapping(ctx context.Context) (map[string]string, error) {
	cached, err := utils.RetrieveRedisMap[DepartmentAccountMapping]()
	if err == nil && len(cached) > 0 {
		return cached, nil
	}

	db := config.GetDB()
	var mappings []*DepartmentAccountMapping
	if err := db.WithContext(ctx).Where("is_active = ?", true).Find(&mappings).Error; err != nil {
		return nil, err
	}

	lookup := make(map[string]string, len(mappings))
	for _, m := range mappings {
		lookup[m.AccountNumber] = m.DepartmentName
	}
	if len(lookup) > 0 {
		_ = utils.StoreRedisMap[DepartmentAccountMapping](lookup)
	}
	return lookup, nil
}

func invalidateDepartmentMappingCache() {
	_ = utils.RemoveRedisMap[DepartmentAccountMapping]()
}
