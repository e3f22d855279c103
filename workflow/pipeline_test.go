package workflow

import (
	"testing"

	"bitbucket.org/mmdatafocus/telecom_backend/models"
)

func TestDecisionStatus(t *testing.T) {
	status, err := decisionStatus(models.ReviewActionApprove, nil)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if status != models.BatchStatusApproved {
		t.Errorf("approve: status = %q", status)
	}

	reason := "wrong billing period"
	status, err = decisionStatus(models.ReviewActionReject, &reason)
	if err != nil {
		t.Fatalf("reject with reason: %v", err)
	}
	if status != models.BatchStatusRejected {
		t.Errorf("reject: status = %q", status)
	}

	if _, err = decisionStatus(models.ReviewActionReject, nil); err == nil {
		t.Error("reject without reason should fail")
	}
	empty := ""
	if _, err = decisionStatus(models.ReviewActionReject, &empty); err == nil {
		t.Error("reject with empty reason should fail")
	}
	blank := "   "
	if _, err = decisionStatus(models.ReviewActionReject, &blank); err == nil {
		t.Error("reject with blank reason should fail")
	}
	if _, err = decisionStatus(models.ReviewAction("DEFER"), nil); err == nil {
		t.Error("unknown action should fail")
	}
}

func TestDecisionEventType(t *testing.T) {
	if got := decisionEventType(models.ReviewActionApprove); got != models.BatchEventApproved {
		t.Errorf("approve event = %q", got)
	}
	if got := decisionEventType(models.ReviewActionReject); got != models.BatchEventRejected {
		t.Errorf("reject event = %q", got)
	}
}

func TestBatchStatusTerminal(t *testing.T) {
	if models.BatchStatusPendingApproval.IsTerminal() {
		t.Error("pending approval must not be terminal")
	}
	if !models.BatchStatusApproved.IsTerminal() || !models.BatchStatusRejected.IsTerminal() {
		t.Error("approved and rejected are terminal")
	}
}
