package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"gorm.io/gorm"
)

// staged-cleanup removes staged rows that no longer belong to a reviewable
// batch: rows whose batch was already approved or rejected (stranded by a
// crash mid-decision) and rows whose batch history is missing entirely.
//
// Dry-run (default): show counts only
//
//	go run ./cmd/staged-cleanup -dry-run=true
//
// Execute:
//
//	go run ./cmd/staged-cleanup -dry-run=false -confirm=DELETE
func main() {
	dryRun := flag.Bool("dry-run", true, "List only (no writes)")
	confirm := flag.String("confirm", "", "Type DELETE to proceed when dry-run=false")
	flag.Parse()

	if !*dryRun && strings.TrimSpace(*confirm) != "DELETE" {
		fmt.Fprintln(os.Stderr, "set --confirm=DELETE to proceed")
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	invoiceTables := []struct {
		name  string
		model any
	}{
		{"temp_att_invoices", &models.TempATTInvoice{}},
		{"temp_first_net_invoices", &models.TempFirstNetInvoice{}},
		{"temp_verizon_wireless_invoices", &models.TempVerizonWirelessInvoice{}},
	}
	inventoryTables := []struct {
		name  string
		model any
	}{
		{"temp_att_inventories", &models.TempATTInventory{}},
		{"temp_first_net_inventories", &models.TempFirstNetInventory{}},
		{"temp_verizon_wireless_inventories", &models.TempVerizonWirelessInventory{}},
	}

	total := int64(0)
	for _, t := range invoiceTables {
		n, err := cleanupTable(db, t.name, t.model, "invoice_batch_histories", *dryRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cleanup failed: %v\n", t.name, err)
			os.Exit(1)
		}
		total += n
	}
	for _, t := range inventoryTables {
		n, err := cleanupTable(db, t.name, t.model, "inventory_batch_histories", *dryRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cleanup failed: %v\n", t.name, err)
			os.Exit(1)
		}
		total += n
	}

	if *dryRun {
		fmt.Printf("dry-run: %d stranded staged rows would be deleted\n", total)
		return
	}
	fmt.Printf("deleted %d stranded staged rows\n", total)
}

// cleanupTable deletes (or counts, in dry-run) staged rows whose batch is
// terminal or missing. The subquery keeps only batches still pending review.
func cleanupTable(db *gorm.DB, table string, model any, historyTable string, dryRun bool) (int64, error) {
	cond := fmt.Sprintf(
		"batch_id NOT IN (SELECT batch_id FROM %s WHERE status = ? AND deleted_at IS NULL)",
		historyTable)
	if historyTable == "inventory_batch_histories" {
		// Inventory batch histories are hard-deleted, no deleted_at column.
		cond = fmt.Sprintf("batch_id NOT IN (SELECT batch_id FROM %s WHERE status = ?)", historyTable)
	}

	if dryRun {
		var count int64
		err := db.Table(table).Where(cond, models.BatchStatusPendingApproval).Count(&count).Error
		if err != nil {
			return 0, err
		}
		if count > 0 {
			fmt.Printf("%s: %d stranded rows\n", table, count)
		}
		return count, nil
	}

	result := db.Where(cond, models.BatchStatusPendingApproval).Delete(model)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		fmt.Printf("%s: deleted %d rows\n", table, result.RowsAffected)
	}
	return result.RowsAffected, nil
}
