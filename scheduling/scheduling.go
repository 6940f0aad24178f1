// Package scheduling decides whether a proposed appointment may be
// committed: business-hours policy plus time-window conflict detection
// against existing bookings. It is a pure function of (request, existing
// bookings, config, now); persistence and side effects stay with the caller.
package scheduling

import (
	"fmt"
	"time"
)

// Window is a daily wall-clock window [Start, End) in minutes from midnight.
type Window struct {
	Start int
	End   int
}

type Config struct {
	// Shop-local timezone used to evaluate wall-clock windows.
	Location *time.Location
	// Business-hours windows; a start time must fall inside one of them.
	Windows []Window
	// Footprint applied when a service has no duration of its own.
	DefaultDuration time.Duration
	// Symmetric padding applied to the candidate query range.
	SearchPad time.Duration
}

// DefaultConfig reflects shop policy: UTC-3, open 08:30-13:00 and
// 16:30-20:30, 30-minute default slots, 180-minute candidate padding.
func DefaultConfig() Config {
	return Config{
		Location:        time.FixedZone("UTC-3", -3*60*60),
		Windows:         []Window{{Start: 8*60 + 30, End: 13 * 60}, {Start: 16*60 + 30, End: 20*60 + 30}},
		DefaultDuration: 30 * time.Minute,
		SearchPad:       180 * time.Minute,
	}
}

// Booking is an already-committed appointment the engine checks against.
type Booking struct {
	Start       time.Time
	Duration    time.Duration
	ServiceName string
}

// Conflict names the booking that blocked a proposed start time.
type Conflict struct {
	ServiceName string
	Start       time.Time
	End         time.Time
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("el horario se superpone con %s (%s - %s)",
		c.ServiceName,
		c.Start.Format("15:04"),
		c.End.Format("15:04"))
}

// ErrOutsideHours is the business-hours policy rejection.
type ErrOutsideHours struct {
	At time.Time
}

func (e *ErrOutsideHours) Error() string {
	return fmt.Sprintf("horario fuera de atención (%s)", e.At.Format("15:04"))
}

// ResolveDuration returns the service's footprint, or the default when the
// service has none configured.
func (c Config) ResolveDuration(serviceMinutes int) time.Duration {
	if serviceMinutes <= 0 {
		return c.DefaultDuration
	}
	return time.Duration(serviceMinutes) * time.Minute
}

// WithinBusinessHours reports whether t's shop-local wall-clock time falls
// inside one of the configured windows. Windows are half-open: 13:00 on a
// 08:30-13:00 window is already outside.
func (c Config) WithinBusinessHours(t time.Time) bool {
	local := t.In(c.Location)
	minutes := local.Hour()*60 + local.Minute()
	for _, w := range c.Windows {
		if minutes >= w.Start && minutes < w.End {
			return true
		}
	}
	return false
}

// SearchRange returns the padded [from, to) window the caller should use to
// fetch candidate bookings for a proposed [start, start+duration) slot.
func (c Config) SearchRange(start time.Time, duration time.Duration) (time.Time, time.Time) {
	return start.Add(-c.SearchPad), start.Add(duration).Add(c.SearchPad)
}

// Overlaps applies the half-open interval test: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 && e1 > s2.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// FindConflict scans the candidate bookings and returns the first one whose
// window overlaps the proposed slot, or nil. A single hit is enough to
// reject, so no tie-breaking is done.
func (c Config) FindConflict(start time.Time, duration time.Duration, existing []Booking) *Conflict {
	end := start.Add(duration)
	for _, b := range existing {
		bEnd := b.Start.Add(b.Duration)
		if Overlaps(start, end, b.Start, bEnd) {
			return &Conflict{
				ServiceName: b.ServiceName,
				Start:       b.Start.In(c.Location),
				End:         bEnd.In(c.Location),
			}
		}
	}
	return nil
}

// Validate runs the full gate for a proposed slot: business hours first,
// then conflict detection. force bypasses both checks.
func (c Config) Validate(start time.Time, duration time.Duration, existing []Booking, force bool) error {
	if force {
		return nil
	}
	if !c.WithinBusinessHours(start) {
		return &ErrOutsideHours{At: start.In(c.Location)}
	}
	if conflict := c.FindConflict(start, duration, existing); conflict != nil {
		return conflict
	}
	return nil
}
