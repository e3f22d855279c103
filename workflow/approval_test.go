package workflow

import (
	"fmt"
	"testing"

	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openApprovalTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.TempATTInvoice{}, &models.ATTInvoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedStagedATTInvoices(t *testing.T, db *gorm.DB, batchId string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		row := &models.TempATTInvoice{
			BatchId:             batchId,
			WirelessNumber:      fmt.Sprintf("512555%04d", i),
			AccountNumber:       "287301-ACCT",
			InvoiceNumber:       fmt.Sprintf("INV-%03d", i),
			Department:          "Public Works",
			TotalCurrentCharges: decimal.RequireFromString("42.50"),
			Status:              models.BatchStatusPendingApproval,
		}
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed staged row %d: %v", i, err)
		}
	}
}

func TestApprovalStrategyApprove(t *testing.T) {
	db := openApprovalTestDB(t)
	batchId := "batch-approve-1"
	seedStagedATTInvoices(t, db, batchId, 3)

	strategy := NewApprovalStrategy[models.TempATTInvoice, models.ATTInvoice](models.ProviderATT, models.ConvertTempATTInvoice)

	var count int
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		count, txErr = strategy.Approve(tx, batchId)
		return txErr
	})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if count != 3 {
		t.Errorf("approve count = %d, want 3", count)
	}

	var staged int64
	db.Model(&models.TempATTInvoice{}).Where("batch_id = ?", batchId).Count(&staged)
	if staged != 0 {
		t.Errorf("staged rows after approve = %d, want 0", staged)
	}

	var permanent []models.ATTInvoice
	if err := db.Where("batch_id = ?", batchId).Order("id ASC").Find(&permanent).Error; err != nil {
		t.Fatalf("load permanent: %v", err)
	}
	if len(permanent) != 3 {
		t.Fatalf("permanent rows = %d, want 3", len(permanent))
	}
	for _, p := range permanent {
		if p.ID == 0 {
			t.Error("permanent row kept a zero id")
		}
		if p.BatchId != batchId {
			t.Errorf("permanent row batch = %q, want %q", p.BatchId, batchId)
		}
	}
	if !permanent[0].TotalCurrentCharges.Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("charges not carried over: %s", permanent[0].TotalCurrentCharges)
	}

	// A second approve on the now-empty batch is a no-op.
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		count, txErr = strategy.Approve(tx, batchId)
		return txErr
	})
	if err != nil || count != 0 {
		t.Errorf("re-approve: count = %d, err = %v, want 0 and nil", count, err)
	}
}

func TestApprovalStrategyApproveRollsBackOnFailure(t *testing.T) {
	db := openApprovalTestDB(t)
	batchId := "batch-approve-fail"
	seedStagedATTInvoices(t, db, batchId, 3)

	// Occupy id 1 in the permanent table so a convert that reuses it
	// makes the bulk insert fail after the staged rows were read.
	if err := db.Create(&models.ATTInvoice{ID: 1, BatchId: "earlier", InvoiceNumber: "INV-OLD"}).Error; err != nil {
		t.Fatalf("seed permanent row: %v", err)
	}

	collide := func(temp *models.TempATTInvoice, id string) *models.ATTInvoice {
		p := models.ConvertTempATTInvoice(temp, id)
		p.ID = 1
		return p
	}
	strategy := NewApprovalStrategy[models.TempATTInvoice, models.ATTInvoice](models.ProviderATT, collide)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, txErr := strategy.Approve(tx, batchId)
		return txErr
	})
	if err == nil {
		t.Fatal("expected the colliding insert to fail the transaction")
	}

	var staged int64
	db.Model(&models.TempATTInvoice{}).Where("batch_id = ?", batchId).Count(&staged)
	if staged != 3 {
		t.Errorf("staged rows after rollback = %d, want 3", staged)
	}
	var permanent int64
	db.Model(&models.ATTInvoice{}).Count(&permanent)
	if permanent != 1 {
		t.Errorf("permanent rows after rollback = %d, want only the pre-existing 1", permanent)
	}
}

func TestApprovalStrategyReject(t *testing.T) {
	db := openApprovalTestDB(t)
	batchId := "batch-reject-1"
	seedStagedATTInvoices(t, db, batchId, 2)
	seedStagedATTInvoices(t, db, "other-batch", 1)

	strategy := NewApprovalStrategy[models.TempATTInvoice, models.ATTInvoice](models.ProviderATT, models.ConvertTempATTInvoice)

	var count int
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		count, txErr = strategy.Reject(tx, batchId)
		return txErr
	})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if count != 2 {
		t.Errorf("reject count = %d, want 2", count)
	}

	var remaining int64
	db.Model(&models.TempATTInvoice{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("staged rows after reject = %d, want the 1 from the other batch", remaining)
	}
	var permanent int64
	db.Model(&models.ATTInvoice{}).Count(&permanent)
	if permanent != 0 {
		t.Errorf("reject wrote %d permanent rows", permanent)
	}
}
