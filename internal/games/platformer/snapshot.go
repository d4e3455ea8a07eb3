package platformer

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Tick         uint64
	ViewportW    float64
	ViewportH    float64
	Character    Character
	Platforms    []Platform
	Obstacles    []Obstacle
	Collectibles []Collectible
	State        State
}

// Snapshot returns a deep copy of the current frame. Mutating the result
// never affects the engine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:         e.ticks,
		ViewportW:    e.level.ViewportW,
		ViewportH:    e.level.ViewportH,
		Character:    e.char,
		Platforms:    append([]Platform(nil), e.platforms...),
		Obstacles:    append([]Obstacle(nil), e.obstacles...),
		Collectibles: append([]Collectible(nil), e.collectibles...),
		State:        e.state,
	}
}

// Remaining returns how many collectibles are still uncollected.
func (s Snapshot) Remaining() int {
	n := 0
	for _, c := range s.Collectibles {
		if !c.Collected {
			n++
		}
	}
	return n
}
