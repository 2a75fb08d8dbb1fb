package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestOutputJSON(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "simple map", input: map[string]string{"key": "value"}},
		{name: "empty map", input: map[string]string{}},
		{name: "array", input: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := outputJSON(&buf, tt.input); err != nil {
				t.Fatalf("outputJSON() error = %v", err)
			}

			var v any
			if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
				t.Errorf("outputJSON() produced invalid JSON: %v", err)
			}
			if !strings.HasSuffix(buf.String(), "\n") {
				t.Error("outputJSON() should end with a newline")
			}
		})
	}
}

func TestPrintCount(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "0 packs"},
		{1, "1 pack"},
		{12, "12 packs"},
	}

	for _, tt := range tests {
		if got := PrintCount(tt.count, "pack", "packs"); got != tt.want {
			t.Errorf("PrintCount(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestPrintHelpers(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintSuccess(&buf, "done")
	PrintWarning(&buf, "careful")
	PrintError(&buf, errors.New("broken").Error())
	PrintLabelValue(&buf, "Packs", "3")
	PrintTable(&buf, []string{"NAME", "SIZE"}, [][]string{{"a", "1"}, {"bbb", "22"}})

	want := "✓ done\n" +
		"⚠ careful\n" +
		"✗ broken\n" +
		"  Packs: 3\n" +
		"  NAME  SIZE\n" +
		"  ----  ----\n" +
		"  a     1   \n" +
		"  bbb   22  \n"
	if got := buf.String(); got != want {
		t.Errorf("output:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestNewLogger_ConsoleOnlyWithFlag(t *testing.T) {
	env := setupTestEnv(t)

	// No --log-level: nothing on stderr even for warnings.
	out, err := executeCommand(t, "status", "--xplane-dir", env.xplane)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, "level=") {
		t.Errorf("unexpected log output without --log-level: %q", out)
	}

	out, err = executeCommand(t, "status", "--xplane-dir", env.xplane, "--log-level", "debug")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "level=INFO") || !strings.Contains(out, "loaded scenery packs") {
		t.Errorf("expected load to be logged at debug level, got %q", out)
	}

	if _, err := executeCommand(t, "status", "--xplane-dir", env.xplane, "--log-level", "loud"); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}
