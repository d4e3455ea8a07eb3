package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/focusflow/internal/core"
)

// Visual characters for rendering
const (
	CharacterChar = '█'
	FloorChar     = '▀'
	DeskChar      = '▄'
	ShelfChar     = '▔'
)

var obstacleGlyphs = map[ObstacleKind]rune{
	ObstacleChair:     '╥',
	ObstacleTrash:     '▾',
	ObstaclePrinter:   '▤',
	ObstacleComputer:  '▣',
	ObstaclePaperclip: '∫',
}

var collectibleGlyphs = map[CollectibleKind]struct {
	r rune
	c core.Color
}{
	CollectibleCoffee:   {'c', core.ColorOrange},
	CollectibleDocument: {'≡', core.ColorWhite},
	CollectiblePoint:    {'◆', core.ColorBrightYellow},
}

// hudRows is the number of screen rows reserved above the play area.
const hudRows = 1

// projection maps world pixels to screen cells.
type projection struct {
	sx, sy float64
	view   core.Rect // Play area in cells
}

func newProjection(snap Snapshot, dst *core.Screen) projection {
	w := math.Max(float64(dst.Width()), 1)
	h := math.Max(float64(dst.Height()-hudRows), 1)
	return projection{
		sx:   snap.ViewportW / w,
		sy:   snap.ViewportH / h,
		view: core.NewRect(0, hudRows, int(w), int(h)),
	}
}

// visible projects b and reports whether any of it lands in the play area.
func (p projection) visible(b core.Box) (core.Rect, bool) {
	r := p.cells(b)
	return r, r.Intersects(p.view)
}

func (p projection) cells(b core.Box) core.Rect {
	x := int(math.Floor(b.X / p.sx))
	y := int(math.Floor(b.Y/p.sy)) + hudRows
	right := int(math.Ceil(b.Right() / p.sx))
	bottom := int(math.Ceil(b.Bottom()/p.sy)) + hudRows
	return core.NewRect(x, y, max(right-x, 1), max(bottom-y, 1))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.engine.Snapshot()
	proj := newProjection(snap, dst)
	cam := snap.State.CameraOffsetX

	for _, p := range snap.Platforms {
		r, ok := proj.visible(p.Offset(-cam, 0))
		if !ok {
			continue
		}
		switch p.Kind {
		case PlatformFloor:
			dst.DrawRect(r, FloorChar, core.ColorGray)
		case PlatformDesk:
			dst.DrawRect(core.NewRect(r.X, r.Y, r.W, 1), DeskChar, core.ColorBrown)
		case PlatformShelf:
			dst.DrawRect(core.NewRect(r.X, r.Y, r.W, 1), ShelfChar, core.ColorYellow)
		}
	}

	for _, c := range snap.Collectibles {
		r, ok := proj.visible(c.Offset(-cam, 0))
		if c.Collected || !ok {
			continue
		}
		glyph := collectibleGlyphs[c.Kind]
		dst.DrawRect(r, glyph.r, glyph.c)
	}

	for _, o := range snap.Obstacles {
		if r, ok := proj.visible(o.Offset(-cam, 0)); ok {
			dst.DrawRect(r, obstacleGlyphs[o.Kind], core.ColorRed)
		}
	}

	dst.DrawRect(proj.cells(snap.Character.Box()), CharacterChar, core.ColorBrightCyan)

	g.drawHUD(dst, snap)

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume")
	}
	if snap.State.GameOver {
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.State.Score))
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawRect(core.NewRect(0, 0, dst.Width(), hudRows), ' ', core.ColorDefault)

	scoreText := fmt.Sprintf(" Score: %d  Dist: %dm ", snap.State.Score, int(snap.State.WorldPosition/10))
	dst.DrawText(1, 0, scoreText)

	if g.messageTicks > 0 && g.message != "" {
		dst.DrawTextColored((dst.Width()-len(g.message))/2, 0, g.message, core.ColorBrightYellow)
	}

	if g.status != "" {
		status := " " + g.status + " "
		dst.DrawText(dst.Width()-len([]rune(status))-1, 0, status)
	}
}
