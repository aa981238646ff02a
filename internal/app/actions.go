package app

import (
	"fmt"

	"github.com/Faultbox/meadow/internal/engine/options"
)

// Action is a user command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionDensityDown
	ActionDensityUp
	ActionHeightDown
	ActionHeightUp
	ActionWindDown
	ActionWindUp
	ActionToggleFPS
	ActionSave
	ActionScreenshot
	ActionQuit
)

var actionNames = map[Action]string{
	ActionDensityDown: "density-",
	ActionDensityUp:   "density+",
	ActionHeightDown:  "height-",
	ActionHeightUp:    "height+",
	ActionWindDown:    "wind-",
	ActionWindUp:      "wind+",
	ActionToggleFPS:   "toggle-fps",
	ActionSave:        "save",
	ActionScreenshot:  "screenshot",
	ActionQuit:        "quit",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// nudges maps option actions to the option and direction they move.
var nudges = map[Action]struct {
	option string
	steps  int
}{
	ActionDensityDown: {options.BladeDensity, -1},
	ActionDensityUp:   {options.BladeDensity, 1},
	ActionHeightDown:  {options.BladeHeight, -1},
	ActionHeightUp:    {options.BladeHeight, 1},
	ActionWindDown:    {options.WindStrength, -1},
	ActionWindUp:      {options.WindStrength, 1},
}

// Apply runs an option action against the scene. Save, Screenshot and Quit
// are handled by the caller and are ignored here.
func (s *Scene) Apply(a Action) error {
	if n, ok := nudges[a]; ok {
		return s.Options.Nudge(n.option, n.steps)
	}
	if a == ActionToggleFPS {
		return s.Options.Toggle(options.ShowFPS)
	}
	return nil
}
