package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danieljhkim/scenable/internal/manifest"
)

func TestEntries_ZeroValue(t *testing.T) {
	var e Entries
	assert.Equal(t, 0, e.Len())
	assert.Empty(t, e.Slice())
	_, ok := e.At(0)
	assert.False(t, ok)
	assert.True(t, e.Equal(EntriesOf(nil)))
}

func TestEntries_SetSharesStructure(t *testing.T) {
	orig := sampleEntries()

	updated, ok := orig.Set(1, manifest.Entry{Enabled: true, Path: "Custom Scenery/LOWI Demo Area/"})
	assert.True(t, ok)

	was, _ := orig.At(1)
	now, _ := updated.At(1)
	assert.False(t, was.Enabled, "original is untouched")
	assert.True(t, now.Enabled)
	assert.False(t, orig.Equal(updated))

	_, ok = orig.Set(3, manifest.Entry{Path: "X"})
	assert.False(t, ok)
}

func TestEntries_CountsAndDocument(t *testing.T) {
	e := sampleEntries()

	enabled, disabled := e.Counts()
	assert.Equal(t, 2, enabled)
	assert.Equal(t, 1, disabled)

	doc := e.Document(11)
	assert.Equal(t, uint64(11), doc.Version)
	assert.Equal(t, e.Slice(), doc.Entries)
}

func TestLabel_String(t *testing.T) {
	tests := []struct {
		label *Label
		want  string
	}{
		{&Label{}, ""},
		{Loaded(), "Read scenery_packs.ini"},
		{Reloaded(), "Reloaded scenery_packs.ini"},
		{Toggled("Custom Scenery/A", true), `Scenery pack "Custom Scenery/A" enabled`},
		{Toggled("Custom Scenery/A", false), `Scenery pack "Custom Scenery/A" disabled`},
		{Bulk(true, 4), "Enabled 4 scenery packs"},
		{Bulk(false, 1), "Disabled 1 scenery pack"},
		{Restored("scenery_packs-20240101T000000Z.ini"), `Restored backup "scenery_packs-20240101T000000Z.ini"`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.label.String())
		})
	}
}
