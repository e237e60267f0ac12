package entities

import "github.com/KirkDiggler/rpg-toolkit/core"

// Everything the game tracks by id satisfies core.Entity, so shared
// tooling (logs, registries) can treat them uniformly.
var (
	_ core.Entity = (*Player)(nil)
	_ core.Entity = (*Enemy)(nil)
	_ core.Entity = (*Equipment)(nil)
	_ core.Entity = (*Stone)(nil)
	_ core.Entity = (*SkillGem)(nil)
	_ core.Entity = (*SupportGem)(nil)
)
