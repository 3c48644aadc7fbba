package shelf

import "time"

// fade interpolates window opacity linearly between two values.
type fade struct {
	from, to float64
	start    time.Time
	duration time.Duration
}

func (f *fade) at(now time.Time) float64 {
	if f.duration <= 0 {
		return f.to
	}
	p := float64(now.Sub(f.start)) / float64(f.duration)
	switch {
	case p <= 0:
		return f.from
	case p >= 1:
		return f.to
	}
	return f.from + (f.to-f.from)*p
}

func (f *fade) done(now time.Time) bool {
	return now.Sub(f.start) >= f.duration
}
