package workflow

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestSynthesizeInvoiceNumber(t *testing.T) {
	july := date(2024, time.July, 15)

	got, err := SynthesizeInvoiceNumber("123", july)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "123X07092024" {
		t.Errorf("got %q, want %q", got, "123X07092024")
	}

	// Leading zeros drop during the numeric re-render.
	got, err = SynthesizeInvoiceNumber("000123", july)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "123X07092024" {
		t.Errorf("got %q, want %q", got, "123X07092024")
	}

	// No invoice date: plain rendered account number, no suffix.
	got, err = SynthesizeInvoiceNumber("456", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "456" {
		t.Errorf("got %q, want %q", got, "456")
	}

	// Blank account number is not an error, the field just stays empty.
	got, err = SynthesizeInvoiceNumber("  ", july)
	if err != nil || got != "" {
		t.Errorf("blank account: got (%q, %v), want (\"\", nil)", got, err)
	}

	// Non-numeric account number reports an error so a diagnostic is logged.
	got, err = SynthesizeInvoiceNumber("abc", july)
	if err == nil {
		t.Error("expected error for non-numeric account number")
	}
	if got != "" {
		t.Errorf("got %q, want empty on parse failure", got)
	}
}

func TestRecurringChargeDelta(t *testing.T) {
	delta, err := RecurringChargeDelta("$1,200.50", "$200.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delta.Equal(mustDecimal(t, "1000")) {
		t.Errorf("delta = %s, want 1000", delta)
	}

	// Blank sides count as zero.
	delta, err = RecurringChargeDelta("50.25", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delta.Equal(mustDecimal(t, "50.25")) {
		t.Errorf("delta = %s, want 50.25", delta)
	}

	// Negative deltas are legitimate (credits exceed current charges).
	delta, err = RecurringChargeDelta("10", "25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delta.Equal(mustDecimal(t, "-15")) {
		t.Errorf("delta = %s, want -15", delta)
	}

	if _, err = RecurringChargeDelta("n/a", "5"); err == nil {
		t.Error("expected error for unparseable current charges")
	}
	if _, err = RecurringChargeDelta("5", "n/a"); err == nil {
		t.Error("expected error for unparseable activity")
	}
}

func TestSplitBillPeriod(t *testing.T) {
	start, end, err := SplitBillPeriod("Jan 01 2024 - Jan 31 2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start == nil || end == nil {
		t.Fatal("expected both dates set")
	}
	if !start.Equal(*date(2024, time.January, 1)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(*date(2024, time.January, 31)) {
		t.Errorf("end = %v", end)
	}

	// Blank period: nothing to parse, no error.
	start, end, err = SplitBillPeriod("")
	if start != nil || end != nil || err != nil {
		t.Errorf("blank period: got (%v, %v, %v)", start, end, err)
	}

	// Missing separator and malformed halves both leave the pair unset.
	if _, _, err = SplitBillPeriod("Jan 01 2024 to Jan 31 2024"); err == nil {
		t.Error("expected error for missing separator")
	}
	if _, _, err = SplitBillPeriod("Jan 01 2024 - 31/01/2024"); err == nil {
		t.Error("expected error for malformed end date")
	}
}

func TestParseFlexibleDate(t *testing.T) {
	want := *date(2024, time.March, 5)
	for _, raw := range []string{"03/05/2024", "2024-03-05", "Mar 05 2024", "03-05-2024"} {
		got, err := ParseFlexibleDate(raw)
		if err != nil {
			t.Errorf("ParseFlexibleDate(%q): %v", raw, err)
			continue
		}
		if got == nil || !got.Equal(want) {
			t.Errorf("ParseFlexibleDate(%q) = %v, want %v", raw, got, want)
		}
	}

	got, err := ParseFlexibleDate("  ")
	if got != nil || err != nil {
		t.Errorf("blank date: got (%v, %v), want (nil, nil)", got, err)
	}

	if _, err := ParseFlexibleDate("yesterday"); err == nil {
		t.Error("expected error for unrecognized format")
	}
}

func TestResolveDepartment(t *testing.T) {
	mapping := map[string]string{"111": "Engineering"}

	// Mapping hit overwrites the carrier-supplied value.
	dept, found := ResolveDepartment("111", "Carrier Dept", mapping)
	if !found || dept != "Engineering" {
		t.Errorf("got (%q, %v), want (Engineering, true)", dept, found)
	}

	// Miss keeps the fallback and reports it.
	dept, found = ResolveDepartment("999", "Carrier Dept", mapping)
	if found || dept != "Carrier Dept" {
		t.Errorf("got (%q, %v), want (Carrier Dept, false)", dept, found)
	}

	// Nil mapping behaves like a miss.
	dept, found = ResolveDepartment("111", "", nil)
	if found || dept != "" {
		t.Errorf("nil mapping: got (%q, %v), want (\"\", false)", dept, found)
	}
}
