package workflow

import (
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
)

func TestInvoiceProcessorResolve(t *testing.T) {
	registry := InvoiceProcessors()

	for _, name := range []string{"att", "ATT", " Att ", "firstnet", "FirstNet", "verizonwireless", "VerizonWireless"} {
		p, err := registry.Resolve(name)
		if err != nil {
			t.Errorf("Resolve(%q): %v", name, err)
			continue
		}
		if !p.ProviderName().Known() {
			t.Errorf("Resolve(%q) returned unknown provider %q", name, p.ProviderName())
		}
	}
}

func TestInventoryProcessorResolve(t *testing.T) {
	registry := InventoryProcessors()
	p, err := registry.Resolve("VERIZONWIRELESS")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.ProviderName() != models.ProviderVerizonWireless {
		t.Errorf("ProviderName() = %q", p.ProviderName())
	}
}

func TestResolveUnsupportedProvider(t *testing.T) {
	if _, err := InvoiceProcessors().Resolve("tmobile"); !errors.Is(err, utils.ErrorUnsupportedProvider) {
		t.Errorf("invoice registry: err = %v, want ErrorUnsupportedProvider", err)
	}
	if _, err := InventoryProcessors().Resolve(""); !errors.Is(err, utils.ErrorUnsupportedProvider) {
		t.Errorf("inventory registry: err = %v, want ErrorUnsupportedProvider", err)
	}
	if _, err := InvoiceApprovals().Resolve("sprint"); !errors.Is(err, utils.ErrorUnsupportedProvider) {
		t.Errorf("approval registry: err = %v, want ErrorUnsupportedProvider", err)
	}
}

func TestApprovalRegistryCoversAllCarriers(t *testing.T) {
	for _, name := range []string{"att", "firstnet", "verizonwireless"} {
		if _, err := InvoiceApprovals().Resolve(name); err != nil {
			t.Errorf("invoice approvals missing %q: %v", name, err)
		}
		if _, err := InventoryApprovals().Resolve(name); err != nil {
			t.Errorf("inventory approvals missing %q: %v", name, err)
		}
	}
}
