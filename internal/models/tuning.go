package models

import "time"

// SensorTuning holds the edge sensor thresholds.
type SensorTuning struct {
	EdgeThreshold int           `yaml:"edge_threshold"` // px from the dock edge
	DragDistance  int           `yaml:"drag_distance"`  // manhattan px from press origin
	DragDelay     time.Duration `yaml:"drag_delay"`
	PollInterval  time.Duration `yaml:"poll_interval"`
}

// PanelTuning holds shelf panel geometry and timing.
type PanelTuning struct {
	Width            int           `yaml:"width"`
	Height           int           `yaml:"height"`
	MinWidth         int           `yaml:"min_width"`
	MinHeight        int           `yaml:"min_height"`
	Margin           int           `yaml:"margin"`
	FadeDuration     time.Duration `yaml:"fade_duration"`
	WatchdogInterval time.Duration `yaml:"watchdog_interval"`
	DragOutDistance  int           `yaml:"drag_out_distance"`
}

// Tuning is the optional tuning.yaml next to settings.json.
type Tuning struct {
	Version int          `yaml:"version"`
	Sensor  SensorTuning `yaml:"sensor"`
	Panel   PanelTuning  `yaml:"panel"`
}

// NewTuning creates tuning with default values.
func NewTuning() *Tuning {
	return &Tuning{
		Version: 1,
		Sensor: SensorTuning{
			EdgeThreshold: 48,
			DragDistance:  12,
			DragDelay:     60 * time.Millisecond,
			PollInterval:  16 * time.Millisecond,
		},
		Panel: PanelTuning{
			Width:            380,
			Height:           640,
			MinWidth:         240,
			MinHeight:        260,
			Margin:           8,
			FadeDuration:     180 * time.Millisecond,
			WatchdogInterval: 80 * time.Millisecond,
			DragOutDistance:  6,
		},
	}
}

// Sanitize replaces non-positive values with their defaults.
func (t *Tuning) Sanitize() {
	d := NewTuning()
	fixInt := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fixDur := func(v *time.Duration, def time.Duration) {
		if *v <= 0 {
			*v = def
		}
	}
	if t.Version == 0 {
		t.Version = d.Version
	}
	fixInt(&t.Sensor.EdgeThreshold, d.Sensor.EdgeThreshold)
	fixInt(&t.Sensor.DragDistance, d.Sensor.DragDistance)
	fixDur(&t.Sensor.DragDelay, d.Sensor.DragDelay)
	fixDur(&t.Sensor.PollInterval, d.Sensor.PollInterval)
	fixInt(&t.Panel.Width, d.Panel.Width)
	fixInt(&t.Panel.Height, d.Panel.Height)
	fixInt(&t.Panel.MinWidth, d.Panel.MinWidth)
	fixInt(&t.Panel.MinHeight, d.Panel.MinHeight)
	fixInt(&t.Panel.Margin, d.Panel.Margin)
	fixDur(&t.Panel.FadeDuration, d.Panel.FadeDuration)
	fixDur(&t.Panel.WatchdogInterval, d.Panel.WatchdogInterval)
	fixInt(&t.Panel.DragOutDistance, d.Panel.DragOutDistance)
}
