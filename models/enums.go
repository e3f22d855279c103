package models

import "strings"

type BatchStatus string

const (
	BatchStatusPendingApproval BatchStatus = "PENDING_APPROVAL"
	BatchStatusApproved        BatchStatus = "APPROVED"
	BatchStatusRejected        BatchStatus = "REJECTED"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s BatchStatus) IsTerminal() bool {
	return s == BatchStatusApproved || s == BatchStatusRejected
}

type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "APPROVE"
	ReviewActionReject  ReviewAction = "REJECT"
)

type BatchDomain string

const (
	BatchDomainInvoice   BatchDomain = "INVOICE"
	BatchDomainInventory BatchDomain = "INVENTORY"
)

type Provider string

const (
	ProviderATT             Provider = "att"
	ProviderFirstNet        Provider = "firstnet"
	ProviderVerizonWireless Provider = "verizonwireless"
)

// CanonicalProvider lowercases and trims a caller-supplied provider name.
// Registry lookups are case-insensitive; the canonical form is the map key.
func CanonicalProvider(name string) Provider {
	return Provider(strings.ToLower(strings.TrimSpace(name)))
}

// Known reports whether the provider is one of the supported carriers.
func (p Provider) Known() bool {
	switch p {
	case ProviderATT, ProviderFirstNet, ProviderVerizonWireless:
		return true
	}
	return false
}

type BatchEventType string

const (
	BatchEventIngested BatchEventType = "BATCH_INGESTED"
	BatchEventApproved BatchEventType = "BATCH_APPROVED"
	BatchEventRejected BatchEventType = "BATCH_REJECTED"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "Admin"
	UserRoleReviewer UserRole = "Reviewer"
	UserRoleUploader UserRole = "Uploader"
)
