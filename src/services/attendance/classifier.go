package attendance

import (
	"fmt"
	"time"

	"Backend-Attendance/src/models"
)

// DefaultLateThreshold marks up to start+10m are on time
const DefaultLateThreshold = 10 * time.Minute

// Phase where an instant falls relative to an event window
type Phase int

const (
	PhaseNotYetOpen Phase = iota
	PhaseOnTime
	PhaseLate
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseNotYetOpen:
		return "not-yet-open"
	case PhaseOnTime:
		return "on-time"
	case PhaseLate:
		return "late"
	case PhaseClosed:
		return "closed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Status maps a markable phase to the status a new record gets.
func (p Phase) Status() (models.AttendanceStatus, bool) {
	switch p {
	case PhaseOnTime:
		return models.StatusOnTime, true
	case PhaseLate:
		return models.StatusLate, true
	case PhaseClosed:
		return models.StatusAbsent, true
	}
	return "", false
}

// Window the [Start, End] interval of an event
type Window struct {
	Start time.Time
	End   time.Time
}

// Classifier is a pure function of the event's timestamps and the instant passed in.
type Classifier struct {
	loc       *time.Location
	lateAfter time.Duration
}

func NewClassifier(loc *time.Location, lateAfter time.Duration) Classifier {
	if loc == nil {
		loc = time.UTC
	}
	if lateAfter < 0 {
		lateAfter = DefaultLateThreshold
	}
	return Classifier{loc: loc, lateAfter: lateAfter}
}

func (c Classifier) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Window parses the event's start/end date+time in the classifier's location.
func (c Classifier) Window(e models.Event) (Window, error) {
	start, err := parseTime(e.StartDate, e.StartTime, c.Location())
	if err != nil {
		return Window{}, fmt.Errorf("%w: event %s start: %v", ErrInvalidInput, e.ID, err)
	}
	end, err := parseTime(e.EndDate, e.EndTime, c.Location())
	if err != nil {
		return Window{}, fmt.Errorf("%w: event %s end: %v", ErrInvalidInput, e.ID, err)
	}
	if end.Before(start) {
		return Window{}, fmt.Errorf("%w: event %s ends before it starts", ErrInvalidInput, e.ID)
	}
	return Window{Start: start, End: end}, nil
}

// Classify returns the phase of t for the event.
func (c Classifier) Classify(e models.Event, t time.Time) (Phase, error) {
	w, err := c.Window(e)
	if err != nil {
		return PhaseNotYetOpen, err
	}
	return w.Phase(t, c.lateAfter), nil
}

// IsClosed reports whether now is past the event's end.
func (c Classifier) IsClosed(e models.Event, now time.Time) (bool, error) {
	p, err := c.Classify(e, now)
	if err != nil {
		return false, err
	}
	return p == PhaseClosed, nil
}

// Phase classifies t. When start+lateAfter is past End the late window is empty
// and the threshold is clamped to End.
func (w Window) Phase(t time.Time, lateAfter time.Duration) Phase {
	if t.Before(w.Start) {
		return PhaseNotYetOpen
	}
	threshold := w.Start.Add(lateAfter)
	if threshold.After(w.End) {
		threshold = w.End
	}
	if !t.After(threshold) {
		return PhaseOnTime
	}
	if !t.After(w.End) {
		return PhaseLate
	}
	return PhaseClosed
}

// Covers reports whether the window overlaps the calendar day of t in loc.
func (w Window) Covers(t time.Time, loc *time.Location) bool {
	y, m, d := t.In(loc).Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, loc)
	endOfDay := startOfDay.AddDate(0, 0, 1)
	return w.Start.Before(endOfDay) && !w.End.Before(startOfDay)
}

// parseTime parses date and time string to time.Time
func parseTime(date, clock string, loc *time.Location) (time.Time, error) {
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("missing date or time")
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
}
