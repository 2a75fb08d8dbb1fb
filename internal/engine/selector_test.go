package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/danieljhkim/scenable/internal/manifest"
	"github.com/danieljhkim/scenable/internal/state"
)

func TestResolve(t *testing.T) {
	entries := state.EntriesOf([]manifest.Entry{
		{Enabled: true, Path: "Custom Scenery/KSEA Demo Area/"},
		{Enabled: false, Path: "Custom Scenery/LOWI Demo Area/"},
		{Enabled: true, Path: "Custom Scenery/X-Plane Landmarks - Chicago/"},
		{Enabled: true, Path: "*GLOBAL_AIRPORTS*"},
		{Enabled: true, Path: "Custom Scenery/2/"},
	})

	tests := []struct {
		name     string
		selector string
		want     int
		wantErr  error
		errText  string
	}{
		{name: "1-based index", selector: "2", want: 1},
		{name: "index with spaces", selector: " 4 ", want: 3},
		{name: "exact path", selector: "Custom Scenery/KSEA Demo Area/", want: 0},
		{name: "exact path without trailing slash", selector: "Custom Scenery/LOWI Demo Area", want: 1},
		{name: "unique substring, any case", selector: "chicago", want: 2},
		{name: "out of range index falls back to paths", selector: "0", wantErr: ErrPackNotFound},
		{name: "numeric path beyond index range", selector: "Custom Scenery/2", want: 4},
		{name: "ambiguous substring", selector: "demo area", wantErr: ErrAmbiguousSelector, errText: `"Custom Scenery/KSEA Demo Area/"`},
		{name: "unknown", selector: "EGLL", wantErr: ErrPackNotFound},
		{name: "empty", selector: "  ", wantErr: ErrPackNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(entries, tt.selector)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.selector, err, tt.wantErr)
				}
				if tt.errText != "" && !strings.Contains(err.Error(), tt.errText) {
					t.Errorf("error %q should mention %s", err, tt.errText)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.selector, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %d, want %d", tt.selector, got, tt.want)
			}
		})
	}
}
