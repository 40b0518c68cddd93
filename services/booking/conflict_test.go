package booking

import (
	"testing"
	"time"

	"unisched/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func iv(h1, m1, h2, m2 int) Interval {
	return Interval{Start: at(h1, m1), End: at(h2, m2)}
}

func bk(id string, i Interval) models.Booking {
	return models.Booking{ID: id, UserID: "owner", StartTime: i.Start, EndTime: i.End}
}

func TestCanAdmitRejectsMalformedInterval(t *testing.T) {
	_, err := CanAdmit(nil, iv(10, 0, 10, 0), "")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = CanAdmit(nil, iv(11, 0, 10, 0), "")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = CanAdmit(nil, Interval{End: at(10, 0)}, "")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCanAdmitDisjointIsCommutative(t *testing.T) {
	for startA := 0; startA < 12; startA++ {
		for lenA := 1; lenA <= 3; lenA++ {
			a := iv(startA, 0, startA+lenA, 0)
			for gap := 0; gap <= 2; gap++ {
				b := Interval{Start: a.End.Add(time.Duration(gap) * time.Hour), End: a.End.Add(time.Duration(gap+1) * time.Hour)}

				okAB, err := CanAdmit([]models.Booking{bk("b", b)}, a, "")
				require.NoError(t, err)
				okBA, err := CanAdmit([]models.Booking{bk("a", a)}, b, "")
				require.NoError(t, err)

				assert.True(t, okAB)
				assert.Equal(t, okAB, okBA)
			}
		}
	}
}

func TestCanAdmitSharedPointConflicts(t *testing.T) {
	existing := iv(10, 0, 11, 0)
	for start := 8 * 60; start < 13*60; start += 15 {
		for length := 15; length <= 120; length += 15 {
			cand := Interval{Start: day.Add(time.Duration(start) * time.Minute), End: day.Add(time.Duration(start+length) * time.Minute)}
			ok, err := CanAdmit([]models.Booking{bk("x", existing)}, cand, "")
			require.NoError(t, err)

			shares := cand.Start.Before(existing.End) && existing.Start.Before(cand.End)
			assert.Equal(t, !shares, ok, "candidate %v-%v", cand.Start.Format("15:04"), cand.End.Format("15:04"))
		}
	}
}

func TestCanAdmitExcludesOwnBooking(t *testing.T) {
	b := bk("self", iv(9, 0, 10, 0))
	ok, err := CanAdmit([]models.Booking{b}, IntervalOf(b), "self")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CanAdmit([]models.Booking{b}, IntervalOf(b), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScenarios(t *testing.T) {
	t.Run("touching boundary is admitted", func(t *testing.T) {
		ok, err := CanAdmit([]models.Booking{bk("a", iv(10, 0, 11, 0))}, iv(11, 0, 12, 0), "")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("contained interval conflicts", func(t *testing.T) {
		ok, err := CanAdmit([]models.Booking{bk("a", iv(10, 0, 11, 0))}, iv(10, 30, 10, 45), "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("update into a neighbour conflicts", func(t *testing.T) {
		existing := []models.Booking{bk("B", iv(9, 0, 10, 0)), bk("C", iv(10, 15, 11, 0))}
		ok, err := CanAdmit(existing, iv(9, 30, 10, 30), "B")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSliceHelpersDoNotMutateInput(t *testing.T) {
	orig := []models.Booking{bk("a", iv(9, 0, 10, 0)), bk("b", iv(11, 0, 12, 0))}
	snapshot := append([]models.Booking(nil), orig...)

	_ = appendBooking(orig, bk("c", iv(13, 0, 14, 0)))
	moved := replaceInterval(orig, "a", iv(7, 0, 8, 0))
	rest := withoutBooking(orig, "b")

	assert.Equal(t, snapshot, orig)
	assert.Equal(t, at(7, 0), moved[0].StartTime)
	assert.Len(t, rest, 1)
}
