package booking

import (
	"time"

	"unisched/models"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// IntervalOf returns the interval occupied by b.
func IntervalOf(b models.Booking) Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// storePrecision is the finest time resolution the booking store keeps.
const storePrecision = time.Millisecond

// Normalized returns i in UTC rounded down to the store precision, so the
// interval that is checked is exactly the interval that is persisted.
func (i Interval) Normalized() Interval {
	return Interval{
		Start: i.Start.UTC().Truncate(storePrecision),
		End:   i.End.UTC().Truncate(storePrecision),
	}
}

// Validate fails with ErrInvalidInterval unless Start is before End.
func (i Interval) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() || !i.Start.Before(i.End) {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps reports whether the two half-open intervals share any instant.
// Intervals that only touch at a boundary do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// CanAdmit reports whether candidate fits among existing without overlapping
// any booking other than excludeID.
func CanAdmit(existing []models.Booking, candidate Interval, excludeID string) (bool, error) {
	if err := candidate.Validate(); err != nil {
		return false, err
	}
	for _, b := range existing {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if candidate.Overlaps(IntervalOf(b)) {
			return false, nil
		}
	}
	return true, nil
}

// The helpers below never modify their input slice.

func appendBooking(bookings []models.Booking, b models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(bookings)+1)
	out = append(out, bookings...)
	return append(out, b)
}

func findBooking(bookings []models.Booking, id string) (models.Booking, bool) {
	for _, b := range bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

func replaceInterval(bookings []models.Booking, id string, iv Interval) []models.Booking {
	out := make([]models.Booking, len(bookings))
	copy(out, bookings)
	for i := range out {
		if out[i].ID == id {
			out[i].StartTime = iv.Start
			out[i].EndTime = iv.End
		}
	}
	return out
}

func withoutBooking(bookings []models.Booking, id string) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
