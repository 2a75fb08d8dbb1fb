// Package state holds the in-memory scenery pack state and the only code
// allowed to change it.
//
// State changes are expressed as Actions. A pure Reducer turns the previous
// AppState and an Action into a complete replacement AppState; the Store owns
// the current state, runs the reducer on Dispatch and then notifies
// subscribers. Nothing else mutates history or entries.
//
// Key concepts:
//   - Entries: persistent list of manifest entries shared between snapshots
//   - Snapshot: identity-tagged, immutable copy of the entries at one history point
//   - Label: tagged description of an edit, rendered to text only when displayed
//   - Synchronized: the snapshot at the history cursor is the one last read
//     from or written to disk (compared by id, never by content)
package state
