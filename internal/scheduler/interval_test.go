package scheduler

import (
	"testing"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func iv(start, end string) domain.Interval {
	return domain.NewInterval(domain.MustClock(start), domain.MustClock(end))
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		a, b domain.Interval
		want bool
	}{
		{iv("09:00", "10:00"), iv("09:30", "10:30"), true},
		{iv("09:00", "10:00"), iv("10:00", "11:00"), false},
		{iv("09:00", "12:00"), iv("10:00", "11:00"), true},
		{iv("10:00", "11:00"), iv("09:00", "12:00"), true},
		{iv("09:00", "09:30"), iv("11:00", "12:00"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Overlaps(tc.a, tc.b), "%s vs %s", tc.a, tc.b)
		assert.Equal(t, tc.want, Overlaps(tc.b, tc.a), "symmetric %s vs %s", tc.b, tc.a)
	}
}

func TestSubtract_UnsortedAndOverlappingBusy(t *testing.T) {
	free := iv("09:00", "18:00")
	busy := []domain.Interval{
		iv("15:00", "16:00"),
		iv("10:00", "11:00"),
		iv("10:30", "11:30"), // overlaps the previous one
		iv("07:00", "08:00"), // before the window
		iv("18:00", "19:00"), // after the window
	}

	got := Subtract(free, busy)

	assert.Equal(t, []domain.Interval{
		iv("09:00", "10:00"),
		iv("11:30", "15:00"),
		iv("16:00", "18:00"),
	}, got)
}

func TestSubtract_DropsZeroLengthPieces(t *testing.T) {
	got := Subtract(iv("09:00", "12:00"), []domain.Interval{
		iv("09:00", "10:00"),
		iv("10:00", "11:00"),
		iv("11:00", "12:00"),
	})
	assert.Empty(t, got)
}

func TestSubtract_NoBusy(t *testing.T) {
	assert.Equal(t, []domain.Interval{iv("09:00", "12:00")}, Subtract(iv("09:00", "12:00"), nil))
}

func TestSubtract_DoesNotReorderInput(t *testing.T) {
	busy := []domain.Interval{iv("15:00", "16:00"), iv("10:00", "11:00")}
	Subtract(iv("09:00", "18:00"), busy)
	assert.Equal(t, iv("15:00", "16:00"), busy[0])
}

func TestMerge(t *testing.T) {
	got := Merge([]domain.Interval{
		iv("13:00", "14:00"),
		iv("09:00", "10:00"),
		iv("10:00", "10:30"),
		iv("09:30", "09:45"),
	})
	assert.Equal(t, []domain.Interval{iv("09:00", "10:30"), iv("13:00", "14:00")}, got)
	assert.Equal(t, 150, TotalMinutes(got))
}
