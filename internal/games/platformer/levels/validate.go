package levels

import (
	"fmt"
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/focusflow/internal/core"
	"github.com/vovakirdan/focusflow/internal/games/platformer"
)

// Collision tags used in the validation space.
const (
	tagObstacle    = "obstacle"
	tagCollectible = "collectible"
	tagSpawn       = "spawn"
)

// cellSize is the broadphase grid cell, in world pixels.
const cellSize = 32

// Finding is a level design problem that does not stop the level from
// loading but probably makes it unfair or unwinnable.
type Finding struct {
	Subject string // "collectible 3", "spawn"
	Message string
}

func (f Finding) String() string {
	return f.Subject + ": " + f.Message
}

// Validate reports collectibles buried inside obstacles, obstacles touching
// the spawn box, and a spawn with no platform underneath. Candidate pairs come
// from a resolv broadphase and are confirmed with an exact box overlap.
func Validate(lvl platformer.Level) []Finding {
	w, h := lvl.Extent()
	space := resolv.NewSpace(int(math.Ceil(w))+cellSize, int(math.Ceil(h))+cellSize, cellSize, cellSize)

	add := func(b core.Box, data any, tag string) *resolv.Object {
		// resolv cells start at the origin; anything left of or above it is clamped in.
		obj := resolv.NewObject(math.Max(b.X, 0), math.Max(b.Y, 0), b.W, b.H, tag)
		obj.Data = data
		space.Add(obj)
		return obj
	}

	for i := range lvl.Obstacles {
		add(lvl.Obstacles[i].Box, i, tagObstacle)
	}
	collectibles := make([]*resolv.Object, len(lvl.Collectibles))
	for i := range lvl.Collectibles {
		collectibles[i] = add(lvl.Collectibles[i].Box, i, tagCollectible)
	}
	spawnBox := lvl.Spawn.Box()
	spawn := add(spawnBox, -1, tagSpawn)

	var findings []Finding

	for i, obj := range collectibles {
		item := lvl.Collectibles[i]
		for _, idx := range overlappingObstacles(obj, item.Box, lvl.Obstacles) {
			findings = append(findings, Finding{
				Subject: fmt.Sprintf("collectible %d", i),
				Message: fmt.Sprintf("%s is inside obstacle %d (%s) and can never be collected",
					item.Kind, idx, lvl.Obstacles[idx].Kind),
			})
		}
	}

	for _, idx := range overlappingObstacles(spawn, spawnBox, lvl.Obstacles) {
		findings = append(findings, Finding{
			Subject: "spawn",
			Message: fmt.Sprintf("overlaps obstacle %d (%s); every run ends on the first tick",
				idx, lvl.Obstacles[idx].Kind),
		})
	}

	supported := false
	for _, p := range lvl.Platforms {
		if spawnBox.OverlapsX(p.Box) && p.Y >= spawnBox.Bottom() {
			supported = true
			break
		}
	}
	if !supported {
		findings = append(findings, Finding{
			Subject: "spawn",
			Message: "no platform below the spawn point",
		})
	}

	return findings
}

// overlappingObstacles returns the indices of obstacles that really intersect
// b, using obj's resolv cells to find candidates.
func overlappingObstacles(obj *resolv.Object, b core.Box, obstacles []platformer.Obstacle) []int {
	check := obj.Check(0, 0, tagObstacle)
	if check == nil {
		return nil
	}

	var hits []int
	for _, other := range check.ObjectsByTags(tagObstacle) {
		idx, ok := other.Data.(int)
		if !ok || idx < 0 || idx >= len(obstacles) {
			continue
		}
		if b.Intersects(obstacles[idx].Box) {
			hits = append(hits, idx)
		}
	}
	return hits
}
