package models

import (
	"log"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&InvoiceBatchHistory{}, &InventoryBatchHistory{},
		&TempATTInvoice{}, &ATTInvoice{},
		&TempFirstNetInvoice{}, &FirstNetInvoice{},
		&TempVerizonWirelessInvoice{}, &VerizonWirelessInvoice{},
		&TempATTInventory{}, &ATTInventory{},
		&TempFirstNetInventory{}, &FirstNetInventory{},
		&TempVerizonWirelessInventory{}, &VerizonWirelessInventory{},
		&DepartmentAccountMapping{},
		&BatchEventRecord{},
		&History{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
