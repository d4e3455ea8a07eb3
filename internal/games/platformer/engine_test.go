package platformer

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/focusflow/internal/config"
	"github.com/vovakirdan/focusflow/internal/core"
)

func testPhysics() config.PlatformerPhysics {
	return config.PlatformerPhysics{
		MoveSpeed:    5,
		JumpImpulse:  -12,
		Gravity:      0.5,
		MaxFallSpeed: 12,
		FallDeathY:   500,
	}
}

// testLevel returns an 800x400 viewport with the character standing on a
// long floor.
func testLevel() Level {
	return Level{
		ID:        "test",
		Name:      "Test",
		ViewportW: 800,
		ViewportH: 400,
		Spawn:     Character{X: 100, Y: 320, W: 30, H: 40},
		Platforms: []Platform{
			{Box: core.NewBox(0, 360, 10000, 40), Kind: PlatformFloor},
		},
	}
}

func newTestEngine(t *testing.T, lvl Level) *Engine {
	t.Helper()
	e, err := NewEngine(testPhysics(), lvl)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

var (
	idle      = core.Intent{}
	holdRight = core.Intent{Right: true}
	holdLeft  = core.Intent{Left: true}
	holdJump  = core.Intent{Up: true}
)

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestNewEngineRejectsInvalidGeometry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.PlatformerPhysics, *Level)
	}{
		{"zero viewport", func(_ *config.PlatformerPhysics, l *Level) { l.ViewportW = 0 }},
		{"empty character", func(_ *config.PlatformerPhysics, l *Level) { l.Spawn.W = 0 }},
		{"negative platform", func(_ *config.PlatformerPhysics, l *Level) {
			l.Platforms = append(l.Platforms, Platform{Box: core.NewBox(0, 0, -5, 30)})
		}},
		{"empty obstacle", func(_ *config.PlatformerPhysics, l *Level) {
			l.Obstacles = append(l.Obstacles, Obstacle{Box: core.NewBox(10, 10, 0, 0)})
		}},
		{"empty collectible", func(_ *config.PlatformerPhysics, l *Level) {
			l.Collectibles = append(l.Collectibles, Collectible{Box: core.NewBox(10, 10, 5, 0)})
		}},
		{"platform thinner than fall budget", func(_ *config.PlatformerPhysics, l *Level) {
			l.Platforms = append(l.Platforms, Platform{Box: core.NewBox(200, 250, 100, 20), Kind: PlatformShelf})
		}},
		{"zero max fall speed", func(p *config.PlatformerPhysics, _ *Level) { p.MaxFallSpeed = 0 }},
		{"zero gravity", func(p *config.PlatformerPhysics, _ *Level) { p.Gravity = 0 }},
		{"downward jump", func(p *config.PlatformerPhysics, _ *Level) { p.JumpImpulse = 3 }},
		{"zero move speed", func(p *config.PlatformerPhysics, _ *Level) { p.MoveSpeed = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phys := testPhysics()
			lvl := testLevel()
			tt.mutate(&phys, &lvl)
			_, err := NewEngine(phys, lvl)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("NewEngine() error = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

func TestGameOverTickIsNoOp(t *testing.T) {
	lvl := testLevel()
	lvl.Obstacles = []Obstacle{{Box: core.NewBox(100, 320, 30, 40), Kind: ObstacleChair}}
	e := newTestEngine(t, lvl)

	e.Tick(idle)
	if !e.State().GameOver {
		t.Fatal("expected game over after touching the chair")
	}

	before := e.Snapshot()
	for _, in := range []core.Intent{idle, holdRight, holdLeft, holdJump, {Left: true, Right: true, Up: true}} {
		res := e.Tick(in)
		if len(res.Events) != 0 {
			t.Errorf("Tick(%+v) on a finished run emitted %v", in, res.Events)
		}
		if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
			t.Fatalf("Tick(%+v) changed a finished run:\nbefore %+v\nafter  %+v", in, before, after)
		}
	}
}

func TestLandingZeroesVelocityAndClearsJump(t *testing.T) {
	e := newTestEngine(t, testLevel())

	res := e.Tick(holdJump)
	if !hasEvent(res.Events, EventJumped) {
		t.Fatal("expected a jump event")
	}

	for i := 0; i < 200; i++ {
		res = e.Tick(idle)
		if hasEvent(res.Events, EventLanded) {
			c := e.Character()
			if c.VY != 0 {
				t.Errorf("VY after landing = %v, want 0", c.VY)
			}
			if c.Jumping {
				t.Error("Jumping still set after landing")
			}
			if c.Y+c.H != 360 {
				t.Errorf("feet at %v, want snapped to platform top 360", c.Y+c.H)
			}
			return
		}
	}
	t.Fatal("character never landed")
}

func TestRestingOnPlatformEachTick(t *testing.T) {
	e := newTestEngine(t, testLevel())

	landed := 0
	for i := 0; i < 30; i++ {
		if hasEvent(e.Tick(idle).Events, EventLanded) {
			landed++
		}
		c := e.Character()
		if c.VY != 0 || c.Y != 320 {
			t.Fatalf("tick %d: resting character moved, Y=%v VY=%v", i, c.Y, c.VY)
		}
	}
	if landed != 1 {
		t.Errorf("landed events = %d, want exactly 1 while resting", landed)
	}
}

func TestNoDoubleJump(t *testing.T) {
	e := newTestEngine(t, testLevel())

	if !hasEvent(e.Tick(holdJump).Events, EventJumped) {
		t.Fatal("first jump ignored")
	}
	vy := e.Character().VY

	res := e.Tick(holdJump)
	if hasEvent(res.Events, EventJumped) {
		t.Error("jumped again while airborne")
	}
	if got := e.Character().VY; got != vy+testPhysics().Gravity {
		t.Errorf("VY = %v, want gravity only (%v)", got, vy+testPhysics().Gravity)
	}
}

func TestWalkingOffLedgeKeepsJumpAvailable(t *testing.T) {
	lvl := testLevel()
	lvl.Platforms = []Platform{{Box: core.NewBox(0, 360, 140, 40), Kind: PlatformDesk}}
	e := newTestEngine(t, lvl)

	// Walk off the right end of the desk.
	for i := 0; i < 10; i++ {
		e.Tick(holdRight)
	}
	c := e.Character()
	if c.X <= 140 {
		t.Fatalf("character still over the desk at X=%v", c.X)
	}
	if c.Jumping {
		t.Error("Jumping set without a jump")
	}
	if !hasEvent(e.Tick(holdJump).Events, EventJumped) {
		t.Error("jump unavailable after walking off a ledge")
	}
}

func TestWorldPositionNeverNegative(t *testing.T) {
	e := newTestEngine(t, testLevel())
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		in := core.Intent{Left: rng.Intn(2) == 0, Right: rng.Intn(3) == 0}
		st := e.Tick(in).State
		if st.WorldPosition < 0 {
			t.Fatalf("tick %d: worldPosition = %v", i, st.WorldPosition)
		}
		if st.CameraOffsetX < 0 {
			t.Fatalf("tick %d: cameraOffsetX = %v", i, st.CameraOffsetX)
		}
		if x := e.Character().X; x < 0 {
			t.Fatalf("tick %d: character X = %v", i, x)
		}
	}
}

func TestLeftScrollsWorldBackBeforeMovingCharacter(t *testing.T) {
	e := newTestEngine(t, testLevel())

	for i := 0; i < 70; i++ {
		e.Tick(holdRight)
	}
	if got := e.State().WorldPosition; got != 50 {
		t.Fatalf("worldPosition = %v, want 50", got)
	}

	for i := 0; i < 10; i++ {
		e.Tick(holdLeft)
		if x := e.Character().X; x != 400 {
			t.Fatalf("character moved to %v while the world was still scrolled", x)
		}
	}
	if got := e.State().WorldPosition; got != 0 {
		t.Fatalf("worldPosition = %v, want 0", got)
	}

	e.Tick(holdLeft)
	if x := e.Character().X; x != 395 {
		t.Errorf("character X = %v, want 395 once the world is back at the origin", x)
	}
}

func TestScoreMonotonicAndCollectedOnce(t *testing.T) {
	lvl := testLevel()
	for i := 0; i < 50; i++ {
		lvl.Collectibles = append(lvl.Collectibles, Collectible{
			Box:  core.NewBox(150+float64(i)*60, 330, 20, 20),
			Kind: CollectibleKind(i % 3),
		})
	}
	e := newTestEngine(t, lvl)
	rng := rand.New(rand.NewSource(7))

	counts := make(map[int]int)
	prev := 0
	for i := 0; i < 2000; i++ {
		in := core.Intent{Right: rng.Intn(4) != 0, Left: rng.Intn(5) == 0, Up: rng.Intn(10) == 0}
		res := e.Tick(in)
		if res.State.Score < prev {
			t.Fatalf("tick %d: score dropped from %d to %d", i, prev, res.State.Score)
		}
		prev = res.State.Score
		for _, ev := range res.Events {
			if ev.Kind == EventCollected {
				counts[int(ev.Collectible)]++
			}
		}
	}

	snap := e.Snapshot()
	want := 0
	for _, c := range snap.Collectibles {
		if c.Collected {
			want += c.Kind.Points()
		}
	}
	if snap.State.Score != want {
		t.Errorf("score = %d, want sum of collected items %d", snap.State.Score, want)
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	if collected := len(snap.Collectibles) - snap.Remaining(); total != collected {
		t.Errorf("collected events = %d, collected items = %d", total, collected)
	}
}

func TestCollectibleCountsOnce(t *testing.T) {
	lvl := testLevel()
	lvl.Collectibles = []Collectible{{Box: core.NewBox(105, 330, 20, 20), Kind: CollectibleCoffee}}
	e := newTestEngine(t, lvl)

	for i := 0; i < 50; i++ {
		e.Tick(idle)
	}
	if got := e.State().Score; got != 10 {
		t.Errorf("score = %d, want 10 for one coffee", got)
	}
}

func TestScoringTable(t *testing.T) {
	tests := []struct {
		kind CollectibleKind
		want int
	}{
		{CollectibleCoffee, 10},
		{CollectibleDocument, 20},
		{CollectiblePoint, 15},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			lvl := testLevel()
			lvl.Collectibles = []Collectible{{Box: core.NewBox(100, 330, 20, 20), Kind: tt.kind}}
			e := newTestEngine(t, lvl)

			res := e.Tick(idle)
			if res.State.Score != tt.want {
				t.Errorf("score = %d, want %d", res.State.Score, tt.want)
			}
			if !hasEvent(res.Events, EventCollected) {
				t.Error("missing collected event")
			}
		})
	}
}

func TestFallDeathTick(t *testing.T) {
	lvl := testLevel()
	lvl.Platforms = nil
	lvl.Spawn.Y = 200
	e := newTestEngine(t, lvl)
	phys := testPhysics()

	// Expected tick: integrate the clamped fall independently.
	want := 0
	y, vy := 200.0, 0.0
	for y <= phys.FallDeathY {
		vy = min(vy+phys.Gravity, phys.MaxFallSpeed)
		y += vy
		want++
	}
	if want != 37 {
		t.Fatalf("reference integration gave %d ticks, want 37", want)
	}

	for i := 1; i < want; i++ {
		if e.Tick(idle).State.GameOver {
			t.Fatalf("game over at tick %d, before %d", i, want)
		}
		if vy := e.Character().VY; vy > phys.MaxFallSpeed {
			t.Fatalf("tick %d: VY %v exceeds cap", i, vy)
		}
	}

	res := e.Tick(idle)
	if !res.State.GameOver {
		t.Fatalf("no game over at tick %d, y = %v", want, e.Character().Y)
	}
	for _, ev := range res.Events {
		if ev.Kind == EventDied && ev.Cause != DeathFall {
			t.Errorf("death cause = %v, want fall", ev.Cause)
		}
	}
}

func TestRightScrollStartsAtMidViewport(t *testing.T) {
	e := newTestEngine(t, testLevel())
	mid := testLevel().ViewportW / 2

	prevX := e.Character().X
	scrolling := false
	for i := 0; i < 200; i++ {
		st := e.Tick(holdRight).State
		x := e.Character().X
		if x > mid {
			t.Fatalf("tick %d: character X %v passed mid %v", i, x, mid)
		}
		if st.WorldPosition > 0 {
			if !scrolling && prevX != mid {
				t.Fatalf("tick %d: world scrolled while character at %v", i, prevX)
			}
			scrolling = true
		} else if x <= prevX && x < mid {
			t.Fatalf("tick %d: character did not advance (%v -> %v)", i, prevX, x)
		}
		if st.CameraOffsetX != st.WorldPosition {
			t.Fatalf("tick %d: camera %v != world %v", i, st.CameraOffsetX, st.WorldPosition)
		}
		prevX = x
	}
	if !scrolling {
		t.Fatal("world never scrolled")
	}
}

func TestObstacleWinsOverCollectibleOnSameTick(t *testing.T) {
	lvl := testLevel()
	lvl.Obstacles = []Obstacle{{Box: core.NewBox(140, 320, 10, 40), Kind: ObstacleTrash}}
	lvl.Collectibles = []Collectible{{Box: core.NewBox(140, 320, 10, 40), Kind: CollectibleDocument}}
	e := newTestEngine(t, lvl)

	const k = 3
	for i := 1; i < k; i++ {
		if st := e.Tick(holdRight).State; st.GameOver {
			t.Fatalf("game over at tick %d, want %d", i, k)
		}
	}

	res := e.Tick(holdRight)
	if !res.State.GameOver {
		t.Fatalf("expected game over at tick %d", k)
	}
	if res.State.Score != 0 {
		t.Errorf("score = %d on the fatal tick, want 0", res.State.Score)
	}
	if hasEvent(res.Events, EventCollected) {
		t.Error("collected on the fatal tick")
	}
	var died *Event
	for i := range res.Events {
		if res.Events[i].Kind == EventDied {
			died = &res.Events[i]
		}
	}
	if died == nil || died.Cause != DeathObstacle || died.Obstacle != ObstacleTrash {
		t.Errorf("died event = %+v, want obstacle trash", died)
	}
	if e.Snapshot().Remaining() != 1 {
		t.Error("collectible latched on the fatal tick")
	}
}

func TestLeftAndRightResolvesToRight(t *testing.T) {
	e := newTestEngine(t, testLevel())

	e.Tick(core.Intent{Left: true, Right: true})
	if c := e.Character(); c.VX != testPhysics().MoveSpeed || c.X != 105 {
		t.Errorf("left+right gave VX=%v X=%v, want rightward", c.VX, c.X)
	}
}

func TestResetOnlyAfterGameOver(t *testing.T) {
	lvl := testLevel()
	lvl.Obstacles = []Obstacle{{Box: core.NewBox(300, 320, 20, 40), Kind: ObstaclePrinter}}
	lvl.Collectibles = []Collectible{{Box: core.NewBox(200, 330, 20, 20), Kind: CollectiblePoint}}
	e := newTestEngine(t, lvl)

	for i := 0; i < 5; i++ {
		e.Tick(holdRight)
	}
	before := e.Snapshot()
	if err := e.Reset(); !errors.Is(err, ErrGameRunning) {
		t.Fatalf("Reset() while running = %v, want ErrGameRunning", err)
	}
	if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatal("failed Reset changed the state")
	}

	for i := 0; i < 100 && !e.State().GameOver; i++ {
		e.Tick(holdRight)
	}
	if !e.State().GameOver {
		t.Fatal("never hit the printer")
	}
	if e.State().Score != 15 {
		t.Fatalf("score = %d, want 15 before the printer", e.State().Score)
	}

	if err := e.Reset(); err != nil {
		t.Fatalf("Reset() after game over = %v", err)
	}
	snap := e.Snapshot()
	if snap.State != (State{}) {
		t.Errorf("state after reset = %+v, want zero", snap.State)
	}
	if snap.Remaining() != 1 {
		t.Error("collectible still latched after reset")
	}
	if snap.Character != lvl.Spawn {
		t.Errorf("character after reset = %+v, want spawn %+v", snap.Character, lvl.Spawn)
	}
	if snap.Tick != 0 {
		t.Errorf("tick counter = %d after reset", snap.Tick)
	}
}

func TestStartAlwaysAllowed(t *testing.T) {
	e := newTestEngine(t, testLevel())
	for i := 0; i < 20; i++ {
		e.Tick(holdRight)
	}
	e.Start()
	if e.State() != (State{}) || e.Character().X != 100 {
		t.Errorf("Start did not restore the spawn state: %+v %+v", e.State(), e.Character())
	}
}

func TestTemplateIsolation(t *testing.T) {
	lvl := testLevel()
	lvl.Collectibles = []Collectible{{Box: core.NewBox(100, 330, 20, 20), Kind: CollectibleCoffee}}
	e := newTestEngine(t, lvl)

	// Mutating the caller's level must not reach the engine.
	lvl.Collectibles[0].X = 5000
	lvl.Platforms[0].Y = 0

	e.Tick(idle)
	if e.State().Score != 10 {
		t.Fatal("engine aliases the caller's level")
	}

	// Mutating a snapshot must not reach the engine.
	snap := e.Snapshot()
	snap.Collectibles[0].Collected = false
	snap.Platforms[0].Y = 0
	if again := e.Snapshot(); !again.Collectibles[0].Collected || again.Platforms[0].Y != 360 {
		t.Fatal("snapshot aliases engine state")
	}

	// The template keeps collectibles uncollected for the next run.
	if tpl := e.Level(); tpl.Collectibles[0].Collected {
		t.Fatal("live state leaked into the template")
	}
	e.Start()
	if e.Snapshot().Remaining() != 1 {
		t.Fatal("Start did not restore collectibles")
	}
}

func TestDeterminism(t *testing.T) {
	lvl := testLevel()
	lvl.Platforms = append(lvl.Platforms, Platform{Box: core.NewBox(500, 250, 120, 30), Kind: PlatformDesk})
	lvl.Obstacles = []Obstacle{{Box: core.NewBox(1500, 330, 30, 30), Kind: ObstacleComputer}}
	lvl.Collectibles = []Collectible{{Box: core.NewBox(550, 220, 20, 20), Kind: CollectiblePoint}}

	a := newTestEngine(t, lvl)
	b := newTestEngine(t, lvl)
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 2000; i++ {
		in := core.Intent{Left: rng.Intn(4) == 0, Right: rng.Intn(2) == 0, Up: rng.Intn(8) == 0}
		ra, rb := a.Tick(in), b.Tick(in)
		if !reflect.DeepEqual(ra, rb) {
			t.Fatalf("tick %d diverged: %+v vs %+v", i, ra, rb)
		}
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Fatal("final snapshots differ")
	}
}

func TestKindParsing(t *testing.T) {
	for _, k := range []ObstacleKind{ObstacleChair, ObstacleTrash, ObstaclePrinter, ObstacleComputer, ObstaclePaperclip} {
		got, err := ParseObstacleKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseObstacleKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	for _, k := range []PlatformKind{PlatformFloor, PlatformDesk, PlatformShelf} {
		got, err := ParsePlatformKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParsePlatformKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	for _, k := range []CollectibleKind{CollectibleCoffee, CollectibleDocument, CollectiblePoint} {
		got, err := ParseCollectibleKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseCollectibleKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseObstacleKind("sofa"); err == nil {
		t.Error("ParseObstacleKind accepted an unknown kind")
	}
}
