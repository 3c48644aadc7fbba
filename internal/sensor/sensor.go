// Package sensor detects a drag toward the dock edge of the screen by polling
// the mouse instead of relying on drag-enter notifications, which Explorer
// and the desktop deliver unreliably.
package sensor

import (
	"time"

	"github.com/edgeshelf/edgeshelf/internal/models"
)

// State is the position of the sensor in the current press cycle.
type State int

const (
	Idle State = iota
	ButtonDown
	Dragging
	Triggered
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ButtonDown:
		return "button-down"
	case Dragging:
		return "dragging"
	case Triggered:
		return "triggered"
	default:
		return "unknown"
	}
}

// Probe answers the OS queries the sensor needs on every tick. Any error is
// a negative answer for that tick.
type Probe interface {
	PrimaryButtonDown() (bool, error)
	CursorPos() (models.Point, error)
	// WindowClassesAt returns the class chain of the window at pt (the
	// window itself first, then its parents) and the class of its root.
	WindowClassesAt(pt models.Point) (chain []string, root string, err error)
	// MonitorWorkArea returns the work area of the monitor containing pt.
	MonitorWorkArea(pt models.Point) (models.Rect, error)
}

// DockSource supplies the currently configured dock side.
type DockSource interface {
	DockSide() models.DockSide
}

// Sensor is the edge-drag state machine. Tick must be called at a fixed
// rate from a single goroutine.
type Sensor struct {
	probe  Probe
	dock   DockSource
	tuning models.SensorTuning
	now    func() time.Time

	state     State
	origin    models.Point
	pressedAt time.Time
	suspended bool
	onDetect  func()
}

// New creates a sensor. It starts active and idle.
func New(probe Probe, dock DockSource, tuning models.SensorTuning) *Sensor {
	return &Sensor{
		probe:  probe,
		dock:   dock,
		tuning: tuning,
		now:    time.Now,
	}
}

// OnDetect registers the callback fired once per qualifying press.
func (s *Sensor) OnDetect(fn func()) {
	s.onDetect = fn
}

// SetClock replaces the time source.
func (s *Sensor) SetClock(now func() time.Time) {
	s.now = now
}

// State returns the current state.
func (s *Sensor) State() State {
	return s.state
}

// Tuning returns the thresholds in use.
func (s *Sensor) Tuning() models.SensorTuning {
	return s.tuning
}

// Interval returns the polling interval.
func (s *Sensor) Interval() time.Duration {
	return s.tuning.PollInterval
}

// Suspended reports whether polling is disabled.
func (s *Sensor) Suspended() bool {
	return s.suspended
}

// Suspend disables the sensor. Thresholds are kept.
func (s *Sensor) Suspend() {
	s.suspended = true
}

// Resume enables the sensor. A press already in progress is ignored; the
// next press starts a fresh cycle.
func (s *Sensor) Resume() {
	if !s.suspended {
		return
	}
	s.suspended = false
	s.reset()
}

func (s *Sensor) reset() {
	s.state = Idle
	s.origin = models.Point{}
	s.pressedAt = time.Time{}
}

// Tick samples the mouse once and advances the state machine.
func (s *Sensor) Tick() {
	if s.suspended {
		return
	}

	down, err := s.probe.PrimaryButtonDown()
	if err != nil {
		return
	}
	pos, err := s.probe.CursorPos()
	if err != nil {
		return
	}

	if !down {
		if s.state != Idle {
			s.reset()
		}
		return
	}

	switch s.state {
	case Idle:
		s.state = ButtonDown
		s.origin = pos
		s.pressedAt = s.now()
		return
	case Triggered:
		return
	case ButtonDown:
		if !s.dragStarted(pos) {
			return
		}
		s.state = Dragging
	}

	if !s.overSurface(pos) || !s.nearEdge(pos) {
		return
	}

	s.state = Triggered
	if s.onDetect != nil {
		s.onDetect()
	}
}

func (s *Sensor) dragStarted(pos models.Point) bool {
	moved := abs(pos.X-s.origin.X)+abs(pos.Y-s.origin.Y) >= s.tuning.DragDistance
	held := s.now().Sub(s.pressedAt) >= s.tuning.DragDelay
	return moved && held
}

func (s *Sensor) overSurface(pos models.Point) bool {
	chain, root, err := s.probe.WindowClassesAt(pos)
	if err != nil {
		return false
	}
	return IsFileBrowsingSurface(chain, root)
}

func (s *Sensor) nearEdge(pos models.Point) bool {
	area, err := s.probe.MonitorWorkArea(pos)
	if err != nil || area.Empty() {
		return false
	}
	if s.dock.DockSide() == models.DockLeft {
		return pos.X <= area.X+s.tuning.EdgeThreshold
	}
	return pos.X >= area.Right()-s.tuning.EdgeThreshold
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
