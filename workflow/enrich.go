package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"github.com/shopspring/decimal"
)

// billPeriodLayout is the date format on each side of a Verizon bill period
// string, e.g. "Jan 01 2024 - Jan 31 2024".
const billPeriodLayout = "Jan 02 2006"

const billPeriodSeparator = " - "

// invoiceDateLayouts are tried in order when parsing a carrier invoice date.
var invoiceDateLayouts = []string{
	"01/02/2006",
	"2006-01-02",
	"Jan 02 2006",
	"01-02-2006",
}

// ParseFlexibleDate parses a date string against the known carrier export
// layouts. Blank input yields nil without error.
func ParseFlexibleDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	for _, layout := range invoiceDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date format %q", value)
}

// SynthesizeInvoiceNumber derives the AT&T/FirstNet invoice number from the
// raw account number and the invoice date. The account number is parsed as a
// decimal and re-rendered plain (no scientific notation, no grouping); when
// an invoice date exists, the literal "X", the two-digit invoice month, the
// literal "09" and the four-digit year are appended. Account "123" with a
// July 2024 invoice date yields "123X07092024". The suffix convention comes
// from the business process that numbers invoices and must match exactly.
//
// A blank account number yields "" without error; an unparseable one yields
// "" with an error so the caller can record a diagnostic. Either way the
// record is kept.
func SynthesizeInvoiceNumber(accountNumber string, invoiceDate *time.Time) (string, error) {
	trimmed := strings.TrimSpace(accountNumber)
	if trimmed == "" {
		return "", nil
	}

	rendered, err := decimal.NewFromString(trimmed)
	if err != nil {
		return "", fmt.Errorf("account number %q is not numeric", accountNumber)
	}

	if invoiceDate == nil {
		return rendered.String(), nil
	}
	return fmt.Sprintf("%sX%02d09%04d", rendered.String(), int(invoiceDate.Month()), invoiceDate.Year()), nil
}

// RecurringChargeDelta computes recurring charge = total current charges -
// total activity since last bill. Both sides are currency strings; blank
// means zero. A parse failure on either side returns an error and the caller
// leaves the recurring charge unset.
func RecurringChargeDelta(totalCurrentCharges string, totalActivitySinceLastBill string) (decimal.Decimal, error) {
	current, err := utils.ParseCurrencyDecimal(totalCurrentCharges)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total current charges: %v", err)
	}
	activity, err := utils.ParseCurrencyDecimal(totalActivitySinceLastBill)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total activity since last bill: %v", err)
	}
	return current.Sub(activity), nil
}

// SplitBillPeriod splits a Verizon bill period string of the form
// "<start> - <end>" and parses both sides. On a missing separator or a parse
// failure both dates come back nil and the row is still kept.
func SplitBillPeriod(period string) (*time.Time, *time.Time, error) {
	trimmed := strings.TrimSpace(period)
	if trimmed == "" {
		return nil, nil, nil
	}

	parts := strings.SplitN(trimmed, billPeriodSeparator, 2)
	if len(parts) != 2 {
		return nil, nil, errors.New("bill period has no \" - \" separator")
	}

	start, err := time.Parse(billPeriodLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, nil, fmt.Errorf("bill period start: %v", err)
	}
	end, err := time.Parse(billPeriodLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, nil, fmt.Errorf("bill period end: %v", err)
	}
	return &start, &end, nil
}

// ResolveDepartment looks the account number up in the department mapping.
// A hit overwrites whatever the export supplied; a miss keeps the
// carrier-supplied fallback (which may be blank) and reports found=false so
// the caller can record a diagnostic.
func ResolveDepartment(accountNumber string, fallback string, departmentMapping map[string]string) (department string, found bool) {
	if departmentMapping != nil {
		if mapped, ok := departmentMapping[strings.TrimSpace(accountNumber)]; ok {
			return mapped, true
		}
	}
	return fallback, false
}
