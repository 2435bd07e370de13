package internal

import (
	"fmt"
	"time"

	specs "github.com/chrisconley/chargerate/specs"
)

type ReservationMode int

const (
	// ReservationExcluded applies only after the reservation ended.
	ReservationExcluded ReservationMode = iota
	// ReservationOnly applies only during the reservation.
	ReservationOnly
	// ReservationExpired applies only to sessions that never left the reservation.
	ReservationExpired
)

func NewReservationMode(value *string) (ReservationMode, error) {
	if value == nil {
		return ReservationExcluded, nil
	}
	switch *value {
	case specs.ReservationRestrictionReservation:
		return ReservationOnly, nil
	case specs.ReservationRestrictionReservationExpires:
		return ReservationExpired, nil
	default:
		return 0, fmt.Errorf("invalid reservation restriction: %q", *value)
	}
}

// TimeOfDay is a wall-clock time as seconds after midnight.
type TimeOfDay struct {
	seconds int
}

var timeOfDayLayouts = []string{"15:04", "15:04:05"}

func NewTimeOfDay(value string) (TimeOfDay, error) {
	var lastErr error
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return TimeOfDay{seconds: t.Hour()*3600 + t.Minute()*60 + t.Second()}, nil
		}
		lastErr = err
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", value, lastErr)
}

// On returns the instant this time of day occurs on the given local day.
func (t TimeOfDay) On(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, t.seconds, 0, loc)
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds < other.seconds
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.seconds/3600, t.seconds/60%60, t.seconds%60)
}

// CalendarDate is a local date without time.
type CalendarDate struct {
	year  int
	month time.Month
	day   int
}

func NewCalendarDate(value string) (CalendarDate, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return CalendarDate{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// Midnight returns the start of the date in loc.
func (d CalendarDate) Midnight(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

var weekdays = map[string]time.Weekday{
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
	"SUNDAY":    time.Sunday,
}

// Restrictions are the parsed conditions of a tariff element. Nil fields do not
// narrow validity.
type Restrictions struct {
	reservation ReservationMode

	startTime  *TimeOfDay
	endTime    *TimeOfDay
	startDate  *CalendarDate
	endDate    *CalendarDate
	daysOfWeek map[time.Weekday]bool

	minKwh, maxKwh           *float64
	minCurrent, maxCurrent   *float64
	minPower, maxPower       *float64
	minDuration, maxDuration *int
}

func NewRestrictions(spec specs.RestrictionsSpec) (Restrictions, error) {
	reservation, err := NewReservationMode(spec.Reservation)
	if err != nil {
		return Restrictions{}, err
	}

	r := Restrictions{
		reservation: reservation,
		minKwh:      spec.MinKwh,
		maxKwh:      spec.MaxKwh,
		minCurrent:  spec.MinCurrent,
		maxCurrent:  spec.MaxCurrent,
		minPower:    spec.MinPower,
		maxPower:    spec.MaxPower,
		minDuration: spec.MinDuration,
		maxDuration: spec.MaxDuration,
	}

	if spec.StartTime != nil {
		t, err := NewTimeOfDay(*spec.StartTime)
		if err != nil {
			return Restrictions{}, fmt.Errorf("invalid start time: %w", err)
		}
		r.startTime = &t
	}

	if spec.EndTime != nil {
		t, err := NewTimeOfDay(*spec.EndTime)
		if err != nil {
			return Restrictions{}, fmt.Errorf("invalid end time: %w", err)
		}
		r.endTime = &t
	}

	if spec.StartDate != nil {
		d, err := NewCalendarDate(*spec.StartDate)
		if err != nil {
			return Restrictions{}, fmt.Errorf("invalid start date: %w", err)
		}
		r.startDate = &d
	}

	if spec.EndDate != nil {
		d, err := NewCalendarDate(*spec.EndDate)
		if err != nil {
			return Restrictions{}, fmt.Errorf("invalid end date: %w", err)
		}
		r.endDate = &d
	}

	if len(spec.DayOfWeek) > 0 {
		r.daysOfWeek = make(map[time.Weekday]bool, len(spec.DayOfWeek))
		for _, name := range spec.DayOfWeek {
			day, ok := weekdays[name]
			if !ok {
				return Restrictions{}, fmt.Errorf("invalid day of week: %q", name)
			}
			r.daysOfWeek[day] = true
		}
	}

	return r, nil
}

func (r Restrictions) Reservation() ReservationMode {
	return r.reservation
}

// TimeWindow returns the daily window, or ok=false when neither bound is set. A
// missing start means midnight; a missing end means the following midnight.
func (r Restrictions) TimeWindow() (start, end TimeOfDay, ok bool) {
	if r.startTime == nil && r.endTime == nil {
		return TimeOfDay{}, TimeOfDay{}, false
	}
	if r.startTime != nil {
		start = *r.startTime
	}
	end = TimeOfDay{seconds: 24 * 3600}
	if r.endTime != nil {
		end = *r.endTime
	}
	return start, end, true
}
