package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestSetVerbose(t *testing.T) {
	tc := []struct {
		name    string
		verbose bool
		want    log.Level
	}{
		{name: "verbose", verbose: true, want: log.DebugLevel},
		{name: "quiet", verbose: false, want: log.InfoLevel},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(&bytes.Buffer{})
			SetVerbose(logger, tt.verbose)
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("SetVerbose() level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "service", "spotify")
	logger.Info("searching")

	if !strings.Contains(buf.String(), "service=spotify") {
		t.Errorf("expected child logger fields in output, got %q", buf.String())
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected distinct IDs")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a valid UUID, got %q: %v", a, err)
	}
}
