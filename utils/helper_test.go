package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCurrencyDecimal(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"$1,200.50", "1200.50", false},
		{" $45.00 ", "45.00", false},
		{"-$12.34", "-12.34", false},
		{"", "0", false},
		{"   ", "0", false},
		{"n/a", "", true},
		{"12.34.56", "", true},
	}
	for _, c := range cases {
		got, err := ParseCurrencyDecimal(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseCurrencyDecimal(%q): expected error, got %s", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCurrencyDecimal(%q): %v", c.in, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("ParseCurrencyDecimal(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseDecimalIsStrict(t *testing.T) {
	if _, err := ParseDecimal("1,234.56"); err == nil {
		t.Error("grouping commas must not be accepted")
	}
	if _, err := ParseDecimal(""); err == nil {
		t.Error("blank input must error, blank-means-zero is the caller's rule")
	}
	got, err := ParseDecimal(" 1234.56 ")
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("got %s", got)
	}
}

func TestStripGroupingCommas(t *testing.T) {
	if got := StripGroupingCommas("1,234,567.89"); got != "1234567.89" {
		t.Errorf("got %q", got)
	}
	if got := StripGroupingCommas("no commas"); got != "no commas" {
		t.Errorf("got %q", got)
	}
}

func TestUppercaseFirst(t *testing.T) {
	cases := map[string]string{
		"charges": "Charges",
		"":        "",
		"x":       "X",
		"IMEI":    "IMEI",
	}
	for in, want := range cases {
		if got := UppercaseFirst(in); got != want {
			t.Errorf("UppercaseFirst(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("UniqueSlice length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UniqueSlice[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDereferencePtr(t *testing.T) {
	s := "reason"
	if got := DereferencePtr(&s); got != "reason" {
		t.Errorf("DereferencePtr(&s) = %q", got)
	}
	if got := DereferencePtr[string](nil); got != "" {
		t.Errorf("DereferencePtr(nil) = %q, want empty", got)
	}
	if got := DereferencePtr(nil, "fallback"); got != "fallback" {
		t.Errorf("DereferencePtr(nil, fallback) = %q", got)
	}
}

func TestNilIfEmpty(t *testing.T) {
	if NilIfEmpty("") != nil {
		t.Error("NilIfEmpty(\"\") should be nil")
	}
	if got := NilIfEmpty("x"); got == nil || *got != "x" {
		t.Error("NilIfEmpty(\"x\") should point at the value")
	}
}
