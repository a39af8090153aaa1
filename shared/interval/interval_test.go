package interval_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent/shared/failure"
	"fleetrent/shared/interval"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func mustInterval(t *testing.T, start, end string) interval.Interval {
	t.Helper()

	iv, err := interval.New(date(start), date(end))
	require.NoError(t, err)

	return iv
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{
			name:  "valid range",
			start: "2024-06-10",
			end:   "2024-06-15",
		},
		{
			name:  "single day",
			start: "2024-06-10",
			end:   "2024-06-10",
		},
		{
			name:    "start after end",
			start:   "2024-06-16",
			end:     "2024-06-10",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interval.New(date(tt.start), date(tt.end))

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	iv, err := interval.Parse("2024-06-10", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 6, iv.Days())

	_, err = interval.Parse("10-06-2024", "2024-06-15")
	assert.Error(t, err)

	_, err = interval.Parse("2024-06-10", "not-a-date")
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        [2]string
		b        [2]string
		expected bool
	}{
		{
			name:     "disjoint ranges",
			a:        [2]string{"2024-06-10", "2024-06-15"},
			b:        [2]string{"2024-06-16", "2024-06-20"},
			expected: false,
		},
		{
			name:     "shared boundary day counts as overlap",
			a:        [2]string{"2024-06-10", "2024-06-15"},
			b:        [2]string{"2024-06-15", "2024-06-20"},
			expected: true,
		},
		{
			name:     "partial overlap",
			a:        [2]string{"2024-06-10", "2024-06-15"},
			b:        [2]string{"2024-06-13", "2024-06-20"},
			expected: true,
		},
		{
			name:     "containment",
			a:        [2]string{"2024-06-01", "2024-06-30"},
			b:        [2]string{"2024-06-10", "2024-06-15"},
			expected: true,
		},
		{
			name:     "single shared day between single-day ranges",
			a:        [2]string{"2024-06-10", "2024-06-10"},
			b:        [2]string{"2024-06-10", "2024-06-10"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustInterval(t, tt.a[0], tt.a[1])
			b := mustInterval(t, tt.b[0], tt.b[1])

			assert.Equal(t, tt.expected, a.Overlaps(b))

			// overlap is symmetric
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
		})
	}
}

func TestOverlapsSelf(t *testing.T) {
	iv := mustInterval(t, "2024-06-10", "2024-06-15")

	assert.True(t, iv.Overlaps(iv))
}

func TestContains(t *testing.T) {
	iv := mustInterval(t, "2024-06-10", "2024-06-15")

	assert.True(t, iv.Contains(date("2024-06-10")))
	assert.True(t, iv.Contains(date("2024-06-15")))
	assert.True(t, iv.Contains(date("2024-06-12")))
	assert.False(t, iv.Contains(date("2024-06-09")))
	assert.False(t, iv.Contains(date("2024-06-16")))
}

func TestDays(t *testing.T) {
	assert.Equal(t, 1, mustInterval(t, "2024-06-10", "2024-06-10").Days())
	assert.Equal(t, 6, mustInterval(t, "2024-06-10", "2024-06-15").Days())
}
