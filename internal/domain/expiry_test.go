package domain

import (
	"testing"
	"time"
)

func TestParseExpiry(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		descriptor string
		expected   time.Time
	}{
		{"30m", now.Add(30 * time.Minute)},
		{"45min", now.Add(45 * time.Minute)},
		{"12h", now.Add(12 * time.Hour)},
		{"7d", now.AddDate(0, 0, 7)},
		{"2w", now.AddDate(0, 0, 14)},
		{"1mo", now.AddDate(0, 1, 0)},
		{" 3H ", now.Add(3 * time.Hour)},
		{"permanent", PermanentExpiry},
		{"PERMANENT", PermanentExpiry},
		{"", now.Add(DefaultKeyLifetime)},
		{"soon", now.Add(DefaultKeyLifetime)},
		{"10", now.Add(DefaultKeyLifetime)},
		{"-5h", now.Add(DefaultKeyLifetime)},
		{"0d", now.Add(DefaultKeyLifetime)},
		{"5y", now.Add(DefaultKeyLifetime)},
	}

	for _, tc := range cases {
		if got := ParseExpiry(tc.descriptor, now); !got.Equal(tc.expected) {
			t.Errorf("ParseExpiry(%q) = %s, expected %s", tc.descriptor, got, tc.expected)
		}
	}
}
