package sim

import "fmt"

// AssetError wraps a missing or malformed content reference discovered
// at game load (spec §7 "Asset/content error: ... Surface at game
// load; refuse to start the game").
type AssetError struct {
	Kind string // "unit", "weapon", "movement_class", "script", "model", "script_function", "piece"
	Name string
	Err  error
}

func (e *AssetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sim: asset error loading %s %q: %v", e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("sim: asset error loading %s %q", e.Kind, e.Name)
}

func (e *AssetError) Unwrap() error { return e.Err }
