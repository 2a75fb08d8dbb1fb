package engine

// LoadRequest represents a request to read scenery_packs.ini.
type LoadRequest struct {
	// ResetHistory discards the undo history instead of pushing the loaded
	// entries onto it. Set for the first load of a session.
	ResetHistory bool
}

// SaveRequest represents a request to write scenery_packs.ini.
type SaveRequest struct {
	// DryRun encodes the manifest without writing it
	DryRun bool
}

// Mode selects how SetEnabled changes the matched packs.
type Mode int

const (
	// ModeEnable enables every matched pack.
	ModeEnable Mode = iota

	// ModeDisable disables every matched pack.
	ModeDisable

	// ModeToggle flips every matched pack.
	ModeToggle
)

func (m Mode) String() string {
	switch m {
	case ModeEnable:
		return "enable"
	case ModeDisable:
		return "disable"
	case ModeToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// SetEnabledRequest represents a request to enable, disable or toggle packs.
type SetEnabledRequest struct {
	// Selectors identify packs: a 1-based index, an exact path, or a unique
	// case-insensitive substring of a path.
	Selectors []string

	Mode Mode
}
