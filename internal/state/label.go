package state

import "fmt"

// LabelKind identifies what kind of edit a history item records.
type LabelKind int

const (
	// LabelNone is the label of the initial, empty history item.
	LabelNone LabelKind = iota

	// LabelLoaded records the first read of the manifest.
	LabelLoaded

	// LabelReloaded records a later read of the manifest.
	LabelReloaded

	// LabelEnabled records one pack being enabled.
	LabelEnabled

	// LabelDisabled records one pack being disabled.
	LabelDisabled

	// LabelBulk records every pack being enabled or disabled at once.
	LabelBulk

	// LabelRestored records a backup being restored over the manifest.
	LabelRestored
)

// Label describes an edit without formatting it. String renders the text
// shown next to undo/redo controls; it is only called at display time.
type Label struct {
	Kind LabelKind

	// Path is the pack path for LabelEnabled/LabelDisabled.
	Path string

	// Enabled and Count describe a LabelBulk edit.
	Enabled bool
	Count   int

	// Backup is the backup name for LabelRestored.
	Backup string
}

// Loaded labels the initial read of the manifest.
func Loaded() *Label {
	return &Label{Kind: LabelLoaded}
}

// Reloaded labels a re-read of the manifest.
func Reloaded() *Label {
	return &Label{Kind: LabelReloaded}
}

// Toggled labels a single pack being enabled or disabled.
func Toggled(path string, enabled bool) *Label {
	if enabled {
		return &Label{Kind: LabelEnabled, Path: path}
	}
	return &Label{Kind: LabelDisabled, Path: path}
}

// Bulk labels every pack being set to enabled.
func Bulk(enabled bool, count int) *Label {
	return &Label{Kind: LabelBulk, Enabled: enabled, Count: count}
}

// Restored labels a backup restore.
func Restored(backup string) *Label {
	return &Label{Kind: LabelRestored, Backup: backup}
}

func (l Label) String() string {
	switch l.Kind {
	case LabelNone:
		return ""
	case LabelLoaded:
		return "Read scenery_packs.ini"
	case LabelReloaded:
		return "Reloaded scenery_packs.ini"
	case LabelEnabled:
		return fmt.Sprintf("Scenery pack %q enabled", l.Path)
	case LabelDisabled:
		return fmt.Sprintf("Scenery pack %q disabled", l.Path)
	case LabelBulk:
		verb := "Disabled"
		if l.Enabled {
			verb = "Enabled"
		}
		noun := "scenery packs"
		if l.Count == 1 {
			noun = "scenery pack"
		}
		return fmt.Sprintf("%s %d %s", verb, l.Count, noun)
	case LabelRestored:
		return fmt.Sprintf("Restored backup %q", l.Backup)
	default:
		return fmt.Sprintf("edit (%d)", int(l.Kind))
	}
}
