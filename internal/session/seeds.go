package session

import "github.com/banterhq/banter/internal/types"

// DefaultSeeds returns the simulated participants present at session start.
// Order is stable; the simulator's candidate pick indexes into it.
func DefaultSeeds() []types.Participant {
	return []types.Participant{
		{ID: "usr-ada", Name: "Ada", AvatarRef: "🦉", Status: types.StatusOnline},
		{ID: "usr-grace", Name: "Grace", AvatarRef: "🐝", Status: types.StatusOnline},
		{ID: "usr-linus", Name: "Linus", AvatarRef: "🐧", Status: types.StatusBusy},
		{ID: "usr-radia", Name: "Radia", AvatarRef: "🌲", Status: types.StatusBRB},
	}
}
