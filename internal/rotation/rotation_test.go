package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuchengtw/duty-roster-bot/internal/domain"
)

var tz = time.FixedZone("UTC+8", 8*60*60)

// anchor is Monday 2025-12-08, the week known to belong to index 6.
var anchor = time.Date(2025, time.December, 8, 0, 0, 0, 0, tz)

func testRoster() []string {
	return []string{"A0", "A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9"}
}

func testCalc(offset int) Calculator {
	return Calculator{
		Roster:      testRoster(),
		AnchorDate:  anchor,
		AnchorIndex: 6,
		Offset:      offset,
	}
}

func TestWeekStart(t *testing.T) {
	wantMonday := time.Date(2025, time.December, 8, 0, 0, 0, 0, tz)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday midnight maps to itself",
			in:   time.Date(2025, time.December, 8, 0, 0, 0, 0, tz),
			want: wantMonday,
		},
		{
			name: "wednesday afternoon",
			in:   time.Date(2025, time.December, 10, 15, 30, 0, 0, tz),
			want: wantMonday,
		},
		{
			name: "sunday belongs to the preceding monday",
			in:   time.Date(2025, time.December, 14, 23, 59, 59, 0, tz),
			want: wantMonday,
		},
		{
			name: "next monday starts a new week",
			in:   time.Date(2025, time.December, 15, 0, 0, 0, 0, tz),
			want: time.Date(2025, time.December, 15, 0, 0, 0, 0, tz),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.in)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, tt.in.Location(), got.Location())
		})
	}
}

func TestCalculator_DutyOn(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		eval   time.Time
		want   string
	}{
		{
			name: "anchor week returns anchor index",
			eval: time.Date(2025, time.December, 8, 9, 0, 0, 0, tz),
			want: "A6",
		},
		{
			name: "anchor week end of sunday still returns anchor index",
			eval: time.Date(2025, time.December, 14, 23, 59, 0, 0, tz),
			want: "A6",
		},
		{
			name: "one week later steps forward",
			eval: time.Date(2025, time.December, 17, 12, 0, 0, 0, tz),
			want: "A7",
		},
		{
			name:   "calibration offset shifts the week count",
			offset: -1,
			eval:   time.Date(2025, time.December, 17, 12, 0, 0, 0, tz),
			want:   "A6",
		},
		{
			name: "five weeks later wraps around the roster",
			eval: anchor.AddDate(0, 0, 5*7),
			want: "A1", // (6+5) mod 10
		},
		{
			name: "week before the anchor steps backward",
			eval: anchor.AddDate(0, 0, -3),
			want: "A5",
		},
		{
			name: "far before the anchor wraps negatively",
			eval: anchor.AddDate(0, 0, -8*7),
			want: "A8", // (6-8) mod 10
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testCalc(tt.offset).DutyOn(tt.eval)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculator_DutyOn_EmptyRoster(t *testing.T) {
	calc := Calculator{Roster: nil, AnchorDate: anchor, AnchorIndex: 6}

	_, err := calc.DutyOn(anchor)
	require.ErrorIs(t, err, domain.ErrEmptyRoster)
}

func TestCalculator_DutyIndex_AlwaysInRange(t *testing.T) {
	// Walk consecutive weeks across the anchor, for several roster sizes,
	// and check the index stays in [0, N) and advances by exactly one.
	for _, n := range []int{1, 2, 3, 7, 10} {
		roster := make([]string, n)
		calc := Calculator{Roster: roster, AnchorDate: anchor, AnchorIndex: 0}

		prev := -1
		for w := -30; w <= 30; w++ {
			eval := anchor.AddDate(0, 0, w*7)
			idx, err := calc.DutyIndex(eval)
			require.NoError(t, err)
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, n)
			if prev >= 0 {
				require.Equal(t, (prev+1)%n, idx, "roster size %d, week %d", n, w)
			}
			prev = idx
		}
	}
}

func TestCalculator_DutyOn_Idempotent(t *testing.T) {
	calc := testCalc(2)
	eval := time.Date(2026, time.March, 4, 8, 15, 0, 0, tz)

	first, err := calc.DutyOn(eval)
	require.NoError(t, err)
	second, err := calc.DutyOn(eval)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculator_DutyOn_StaleAnchorIndex(t *testing.T) {
	// An anchor index beyond the roster length still resolves via modulo
	// after the roster shrinks.
	calc := Calculator{
		Roster:      []string{"A0", "A1", "A2"},
		AnchorDate:  anchor,
		AnchorIndex: 6,
	}

	got, err := calc.DutyOn(anchor)
	require.NoError(t, err)
	assert.Equal(t, "A0", got) // 6 mod 3
}

func TestSuspension(t *testing.T) {
	skip := map[string]bool{"2026-02-16": true}

	tests := []struct {
		name      string
		weekStart time.Time
		force     bool
		want      Status
	}{
		{
			name:      "plain week is not suspended",
			weekStart: time.Date(2025, time.December, 8, 0, 0, 0, 0, tz),
			want:      NotSuspended,
		},
		{
			name:      "manual flag suspends a plain week",
			weekStart: time.Date(2025, time.December, 8, 0, 0, 0, 0, tz),
			force:     true,
			want:      ManuallySuspended,
		},
		{
			name:      "skip week is system suspended",
			weekStart: time.Date(2026, time.February, 16, 0, 0, 0, 0, tz),
			want:      SystemSuspended,
		},
		{
			name:      "system suspension wins over the manual flag",
			weekStart: time.Date(2026, time.February, 16, 0, 0, 0, 0, tz),
			force:     true,
			want:      SystemSuspended,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suspension(tt.weekStart, skip, tt.force)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculator_Decide(t *testing.T) {
	skip := map[string]bool{"2026-02-16": true}
	calc := testCalc(0)

	t.Run("active week carries the duty name", func(t *testing.T) {
		dec, err := calc.Decide(time.Date(2025, time.December, 10, 9, 0, 0, 0, tz), skip, false)
		require.NoError(t, err)
		assert.Equal(t, NotSuspended, dec.Status)
		assert.Equal(t, "A6", dec.Duty)
		assert.True(t, dec.WeekStart.Equal(anchor))
	})

	t.Run("forced suspension yields no duty name", func(t *testing.T) {
		dec, err := calc.Decide(time.Date(2025, time.December, 10, 9, 0, 0, 0, tz), skip, true)
		require.NoError(t, err)
		assert.Equal(t, ManuallySuspended, dec.Status)
		assert.Empty(t, dec.Duty)
	})

	t.Run("system skip week suspends even when not forced", func(t *testing.T) {
		dec, err := calc.Decide(time.Date(2026, time.February, 18, 9, 0, 0, 0, tz), skip, false)
		require.NoError(t, err)
		assert.Equal(t, SystemSuspended, dec.Status)
		assert.Empty(t, dec.Duty)
	})

	t.Run("empty roster surfaces a compute error", func(t *testing.T) {
		empty := Calculator{AnchorDate: anchor, AnchorIndex: 6}
		_, err := empty.Decide(anchor, skip, false)
		require.ErrorIs(t, err, domain.ErrEmptyRoster)
	})
}
