package sensor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edgeshelf/edgeshelf/internal/models"
)

var errProbe = errors.New("probe failed")

// fakeProbe is a scripted mouse over a 1920x1040 work area.
type fakeProbe struct {
	down       bool
	pos        models.Point
	root       string
	chain      []string
	area       models.Rect
	classesErr error
	monitorErr error
	buttonErr  error
}

func newFakeProbe() *fakeProbe {
	return &fakeProbe{
		root:  "CabinetWClass",
		chain: []string{"DirectUIHWND", "DUIViewWndClassName", "ShellTabWindowClass", "CabinetWClass"},
		area:  models.Rect{X: 0, Y: 0, Width: 1920, Height: 1040},
	}
}

func (p *fakeProbe) PrimaryButtonDown() (bool, error) { return p.down, p.buttonErr }
func (p *fakeProbe) CursorPos() (models.Point, error) { return p.pos, nil }
func (p *fakeProbe) WindowClassesAt(models.Point) ([]string, string, error) {
	return p.chain, p.root, p.classesErr
}
func (p *fakeProbe) MonitorWorkArea(models.Point) (models.Rect, error) {
	return p.area, p.monitorErr
}

type fixedDock models.DockSide

func (d fixedDock) DockSide() models.DockSide { return models.DockSide(d) }

type harness struct {
	t      *testing.T
	probe  *fakeProbe
	sensor *Sensor
	now    time.Time
	fired  int
}

func newHarness(t *testing.T, side models.DockSide) *harness {
	h := &harness{t: t, probe: newFakeProbe(), now: time.Unix(1700000000, 0)}
	h.sensor = New(h.probe, fixedDock(side), models.NewTuning().Sensor)
	h.sensor.SetClock(func() time.Time { return h.now })
	h.sensor.OnDetect(func() { h.fired++ })
	return h
}

// tick advances the clock by one poll interval and samples.
func (h *harness) tick(down bool, x, y int) {
	h.now = h.now.Add(16 * time.Millisecond)
	h.probe.down = down
	h.probe.pos = models.Point{X: x, Y: y}
	h.sensor.Tick()
}

// dragToRightEdge presses in the middle and drags to the right edge.
func (h *harness) dragToRightEdge() {
	h.tick(true, 900, 500)
	for x := 1000; x <= 1900; x += 100 {
		h.tick(true, x, 500)
	}
}

func TestTriggersOnDragToEdge(t *testing.T) {
	h := newHarness(t, models.DockRight)
	h.dragToRightEdge()
	assert.Equal(t, 1, h.fired)
	assert.Equal(t, Triggered, h.sensor.State())
}

func TestFiresOncePerPress(t *testing.T) {
	h := newHarness(t, models.DockRight)
	h.dragToRightEdge()
	// Leave and re-enter the edge region while still holding.
	h.tick(true, 1000, 500)
	h.tick(true, 1910, 500)
	h.tick(true, 1000, 500)
	h.tick(true, 1915, 400)
	assert.Equal(t, 1, h.fired)
}

func TestReleaseRearms(t *testing.T) {
	h := newHarness(t, models.DockRight)
	h.dragToRightEdge()
	h.tick(false, 1900, 500)
	assert.Equal(t, Idle, h.sensor.State())

	h.dragToRightEdge()
	assert.Equal(t, 2, h.fired)
}

func TestLeftDock(t *testing.T) {
	h := newHarness(t, models.DockLeft)
	h.dragToRightEdge()
	assert.Equal(t, 0, h.fired)
	h.tick(false, 0, 0)

	for x := 900; x >= 100; x -= 200 {
		h.tick(true, x, 500)
	}
	assert.Equal(t, Dragging, h.sensor.State())
	assert.Equal(t, 0, h.fired)
	h.tick(true, 30, 500)
	assert.Equal(t, 1, h.fired)
}

func TestSecondaryMonitorEdge(t *testing.T) {
	h := newHarness(t, models.DockLeft)
	h.probe.area = models.Rect{X: -1280, Y: 0, Width: 1280, Height: 984}

	for x := -600; x >= -1000; x -= 100 {
		h.tick(true, x, 400)
	}
	assert.Equal(t, Dragging, h.sensor.State())
	assert.Equal(t, 0, h.fired)
	h.tick(true, -1250, 400)
	assert.Equal(t, 1, h.fired)
}

func TestNoTriggerConditions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
		run   func(h *harness)
	}{
		{
			name:  "regular application window",
			setup: func(h *harness) { h.probe.root = "Chrome_WidgetWin_1"; h.probe.chain = []string{"Chrome_RenderWidgetHostHWND"} },
			run:   (*harness).dragToRightEdge,
		},
		{
			name:  "explorer frame without list view",
			setup: func(h *harness) { h.probe.chain = []string{"ToolbarWindow32", "CabinetWClass"} },
			run:   (*harness).dragToRightEdge,
		},
		{
			name:  "window class lookup fails",
			setup: func(h *harness) { h.probe.classesErr = errProbe },
			run:   (*harness).dragToRightEdge,
		},
		{
			name:  "no monitor under cursor",
			setup: func(h *harness) { h.probe.monitorErr = errProbe },
			run:   (*harness).dragToRightEdge,
		},
		{
			name:  "not near the edge",
			setup: func(h *harness) {},
			run: func(h *harness) {
				h.tick(true, 900, 500)
				for x := 1000; x <= 1860; x += 60 {
					h.tick(true, x, 500)
				}
			},
		},
		{
			name:  "jump to edge before drag delay",
			setup: func(h *harness) {},
			run: func(h *harness) {
				h.tick(true, 900, 500)
				// Same timestamp as the press: held time is zero.
				h.probe.pos = models.Point{X: 1900, Y: 500}
				h.sensor.Tick()
				h.tick(false, 1900, 500)
			},
		},
		{
			name:  "pressed at the edge without moving",
			setup: func(h *harness) {},
			run: func(h *harness) {
				for i := 0; i < 20; i++ {
					h.tick(true, 1900, 500)
				}
				h.tick(true, 1905, 503)
			},
		},
		{
			name:  "button never pressed",
			setup: func(h *harness) {},
			run: func(h *harness) {
				for x := 900; x <= 1900; x += 100 {
					h.tick(false, x, 500)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, models.DockRight)
			tt.setup(h)
			tt.run(h)
			assert.Equal(t, 0, h.fired)
		})
	}
}

func TestDragRequiresAllConditionsAtOnce(t *testing.T) {
	h := newHarness(t, models.DockRight)

	// Surface fails while the cursor is at the edge...
	h.probe.root = "Shell_TrayWnd"
	h.dragToRightEdge()
	assert.Equal(t, 0, h.fired)
	assert.Equal(t, Dragging, h.sensor.State())

	// ...and passes once the cursor is back away from it.
	h.probe.root = "CabinetWClass"
	h.tick(true, 1000, 500)
	assert.Equal(t, 0, h.fired)

	// Both hold on the same tick.
	h.tick(true, 1890, 500)
	assert.Equal(t, 1, h.fired)
}

func TestDraggingLatchesAfterDelay(t *testing.T) {
	h := newHarness(t, models.DockRight)
	h.tick(true, 900, 500)
	h.now = h.now.Add(100 * time.Millisecond)
	h.tick(true, 905, 500) // 5px, not yet a drag
	assert.Equal(t, ButtonDown, h.sensor.State())
	h.tick(true, 904, 508) // 4+8 = 12px manhattan
	assert.Equal(t, Dragging, h.sensor.State())
	h.tick(true, 900, 500) // back at origin, still dragging
	assert.Equal(t, Dragging, h.sensor.State())
}

func TestSuspendResume(t *testing.T) {
	h := newHarness(t, models.DockRight)
	h.sensor.Suspend()
	h.dragToRightEdge()
	assert.Equal(t, 0, h.fired)
	assert.Equal(t, Idle, h.sensor.State())

	// Resuming mid-press starts a fresh cycle from the current position.
	h.sensor.Resume()
	h.tick(true, 1900, 500)
	assert.Equal(t, ButtonDown, h.sensor.State())
	h.tick(false, 1900, 500)

	h.dragToRightEdge()
	assert.Equal(t, 1, h.fired)
	assert.Equal(t, models.NewTuning().Sensor, h.sensor.Tuning())
}

func TestButtonProbeFailureIsNoop(t *testing.T) {
	h := newHarness(t, models.DockRight)
	h.tick(true, 900, 500)
	h.probe.buttonErr = errProbe
	h.tick(false, 1000, 500)
	assert.Equal(t, ButtonDown, h.sensor.State())

	h.probe.buttonErr = nil
	for x := 1100; x <= 1900; x += 200 {
		h.tick(true, x, 500)
	}
	assert.Equal(t, 1, h.fired)
}

func TestIsFileBrowsingSurface(t *testing.T) {
	tests := []struct {
		name  string
		chain []string
		root  string
		want  bool
	}{
		{"explorer items view", []string{"DirectUIHWND", "DUIViewWndClassName", "CabinetWClass"}, "CabinetWClass", true},
		{"legacy explorer", []string{"SysListView32", "SHELLDLL_DefView", "ExploreWClass"}, "ExploreWClass", true},
		{"desktop progman", []string{"SysListView32", "SHELLDLL_DefView", "Progman"}, "Progman", true},
		{"desktop workerw", []string{"SysListView32", "SHELLDLL_DefView", "WorkerW"}, "WorkerW", true},
		{"explorer navigation pane", []string{"SysTreeView32", "NamespaceTreeControl", "CabinetWClass"}, "CabinetWClass", false},
		{"list view in other app", []string{"SysListView32", "#32770"}, "#32770", false},
		{"taskbar", []string{"MSTaskListWClass", "Shell_TrayWnd"}, "Shell_TrayWnd", false},
		{"empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFileBrowsingSurface(tt.chain, tt.root))
		})
	}
}
