package workflow

import "testing"

func TestCanonicalFieldName(t *testing.T) {
	cases := []struct {
		header     string
		delimiters string
		want       string
	}{
		{"Total Current Charges", delimitersATT, "totalCurrentCharges"},
		{"Total Activity since last Bill", delimitersATT, "totalActivitySinceLastBill"},
		{"Wireless Number", delimitersATT, "wirelessNumber"},
		{"ESN/IMEI", delimitersATT, "esnImei"},
		{"MONTHLY CHARGES", delimitersVerizonWireless, "monthlyCharges"},
		{"Bill Address Level 1", delimitersVerizonWireless, "billAddressLevel1"},
		{"Taxes (Govt) Surcharges and Fees", delimitersVerizonWireless, "taxesGovtSurchargesAndFees"},
		// Hyphen is a delimiter for Verizon only.
		{"Third-Party Charges", delimitersVerizonWireless, "thirdPartyCharges"},
		{"Third-Party Charges", delimitersATT, "third-partyCharges"},
		{"", delimitersATT, ""},
		{"   ", delimitersATT, ""},
		{":/()", delimitersATT, ""},
	}
	for _, c := range cases {
		got := CanonicalFieldName(c.header, c.delimiters)
		if got != c.want {
			t.Errorf("CanonicalFieldName(%q, %q) = %q, want %q", c.header, c.delimiters, got, c.want)
		}
	}
}

func TestNormalizeRowLastWins(t *testing.T) {
	row := RawRow{
		{Header: "Account Number", Value: "111"},
		{Header: "User Name", Value: "Alice"},
		// Different raw spelling, same canonical key: the later cell wins.
		{Header: "ACCOUNT NUMBER", Value: "222"},
	}
	fields := NormalizeRow(row, delimitersATT)
	if got := fields["accountNumber"]; got != "222" {
		t.Errorf("accountNumber = %q, want %q", got, "222")
	}
	if got := fields["userName"]; got != "Alice" {
		t.Errorf("userName = %q, want %q", got, "Alice")
	}
	if len(fields) != 2 {
		t.Errorf("len(fields) = %d, want 2", len(fields))
	}
}

func TestNormalizeRowSkipsBlankHeaders(t *testing.T) {
	row := RawRow{
		{Header: "", Value: "orphan"},
		{Header: "  ", Value: "also orphan"},
		{Header: "Rate Plan", Value: "Unlimited"},
	}
	fields := NormalizeRow(row, delimitersATT)
	if len(fields) != 1 {
		t.Fatalf("len(fields) = %d, want 1", len(fields))
	}
	if fields["ratePlan"] != "Unlimited" {
		t.Errorf("ratePlan = %q, want %q", fields["ratePlan"], "Unlimited")
	}
}

func TestNormalizeRowKeepsRawValues(t *testing.T) {
	row := RawRow{{Header: "Monthly Charges", Value: " $1,234.56 "}}
	fields := NormalizeRow(row, delimitersVerizonWireless)
	if fields["monthlyCharges"] != " $1,234.56 " {
		t.Errorf("value was altered during normalization: %q", fields["monthlyCharges"])
	}
}

func TestFilterEmptyRows(t *testing.T) {
	rows := []RawRow{
		{{Header: "A", Value: ""}, {Header: "B", Value: "  "}},
		{{Header: "A", Value: "1"}},
		{},
		{{Header: "A", Value: ""}, {Header: "B", Value: "x"}},
	}
	filtered := FilterEmptyRows(rows)
	if len(filtered) != 2 {
		t.Fatalf("len(filtered) = %d, want 2", len(filtered))
	}
	if filtered[0][0].Value != "1" || filtered[1][1].Value != "x" {
		t.Errorf("filtered rows out of order: %+v", filtered)
	}
}
