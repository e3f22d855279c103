package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newCaptureLogger(buf *bytes.Buffer) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.WarnLevel)
	l.SetOutput(buf)
	return l
}

func TestLogRowDiagnosticWithError(t *testing.T) {
	var buf bytes.Buffer
	l := newCaptureLogger(&buf)

	LogRowDiagnostic(l, "att", "march.csv", "ACCT-1", "charge parse failure", errors.New("bad decimal"))

	out := buf.String()
	if !strings.Contains(out, "bad decimal") {
		t.Errorf("expected error message in output, got %s", out)
	}
	if !strings.Contains(out, "ACCT-1") {
		t.Errorf("expected business key in output, got %s", out)
	}
}

func TestLogRowDiagnosticNilError(t *testing.T) {
	var buf bytes.Buffer
	l := newCaptureLogger(&buf)

	LogRowDiagnostic(l, "verizon", "april.xlsx", "ACCT-2", "department lookup miss for account ACCT-2", nil)

	out := buf.String()
	if !strings.Contains(out, "department lookup miss for account ACCT-2") {
		t.Errorf("expected context as message in output, got %s", out)
	}
	if !strings.Contains(out, "verizon") {
		t.Errorf("expected provider in output, got %s", out)
	}
}
