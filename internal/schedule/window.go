// Package schedule computes aerodrome opening hours and the daylight window
// best suited to light-aircraft operations.
package schedule

import (
	"fmt"
	"time"
)

// Hours are opening hours for one season, as offsets from local midnight.
type Hours struct {
	Season string
	Open   time.Duration
	Close  time.Duration
}

var (
	summerHours = Hours{Season: "verano", Open: 9 * time.Hour, Close: 21*time.Hour + 45*time.Minute}
	winterHours = Hours{Season: "invierno", Open: 9 * time.Hour, Close: 20 * time.Hour}
)

// daylightMargin keeps the window clear of the low sun after sunrise and
// before sunset.
const daylightMargin = 2 * time.Hour

// HoursFor returns the opening hours on date: summer hours April through
// September, winter hours otherwise.
func HoursFor(date time.Time) Hours {
	if m := date.Month(); m >= time.April && m <= time.September {
		return summerHours
	}
	return winterHours
}

func (h Hours) String() string {
	return fmt.Sprintf("%s-%s", clock(h.Open), clock(h.Close))
}

// Window is the best operational window on one local day. Clear is false when
// opening hours and daylight do not overlap.
type Window struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Season string    `json:"season"`
	Clear  bool      `json:"clear"`
	// Relaxed is set when the sunrise/sunset margins had to be dropped.
	Relaxed bool   `json:"relaxed,omitempty"`
	Text    string `json:"text"`
}

// BestWindow intersects the opening hours of date's day in loc with daylight
// shortened by two hours at each end. If that leaves nothing, it retries with
// plain sunrise and sunset. Unknown sunrise or sunset leaves that side at the
// opening hour.
func BestWindow(date time.Time, sunrise, sunset *time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	d := date.In(loc)
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	hours := HoursFor(midnight)
	open, closing := midnight.Add(hours.Open), midnight.Add(hours.Close)

	start, end := open, closing
	if sunrise != nil {
		start = later(start, onDay(midnight, *sunrise).Add(daylightMargin))
	}
	if sunset != nil {
		end = earlier(end, onDay(midnight, *sunset).Add(-daylightMargin))
	}

	w := Window{Season: hours.Season}
	if !end.After(start) {
		w.Relaxed = true
		start, end = open, closing
		if sunrise != nil {
			start = later(open, onDay(midnight, *sunrise))
		}
		if sunset != nil {
			end = earlier(closing, onDay(midnight, *sunset))
		}
	}

	if !end.After(start) {
		w.Text = fmt.Sprintf("Sin ventana clara (revisar condiciones y horario %s)", hours)
		return w
	}

	w.Start, w.End, w.Clear = start, end, true
	w.Text = fmt.Sprintf("%s - %s (%s)", start.Format("15:04"), end.Format("15:04"), hours.Season)
	return w
}

// onDay moves the local time of day of t onto midnight's date.
func onDay(midnight, t time.Time) time.Time {
	lt := t.In(midnight.Location())
	return time.Date(midnight.Year(), midnight.Month(), midnight.Day(),
		lt.Hour(), lt.Minute(), lt.Second(), 0, midnight.Location())
}

func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
