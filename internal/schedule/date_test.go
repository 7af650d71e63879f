package schedule

import (
	"testing"
	"time"
)

func mustZagreb(t *testing.T) *time.Location {
	t.Helper()
	loc, err := LoadLocation("")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	return loc
}

func TestLoadLocation(t *testing.T) {
	loc := mustZagreb(t)
	if loc.String() != DefaultTimezone {
		t.Errorf("LoadLocation(\"\") = %q, want %q", loc, DefaultTimezone)
	}

	if _, err := LoadLocation("Not/AZone"); err == nil {
		t.Error("LoadLocation(invalid) expected error, got nil")
	}
}

func TestParseDateTime(t *testing.T) {
	loc := mustZagreb(t)

	tests := []struct {
		name    string
		date    string
		clock   string
		want    time.Time
		wantUTC string
		wantErr bool
	}{
		{
			name:    "summer time",
			date:    "03.06.2024.",
			clock:   "10:00",
			want:    time.Date(2024, 6, 3, 10, 0, 0, 0, loc),
			wantUTC: "2024-06-03T08:00:00Z",
		},
		{
			name:    "winter time",
			date:    "13.01.2025.",
			clock:   "08:15",
			want:    time.Date(2025, 1, 13, 8, 15, 0, 0, loc),
			wantUTC: "2025-01-13T07:15:00Z",
		},
		{
			name:    "missing trailing dot",
			date:    "03.06.2024",
			clock:   "10:00",
			wantErr: true,
		},
		{
			name:    "unpadded day and month",
			date:    "3.6.2024.",
			clock:   "10:00",
			want:    time.Date(2024, 6, 3, 10, 0, 0, 0, loc),
			wantUTC: "2024-06-03T08:00:00Z",
		},
		{
			name:    "unpadded hour and minute",
			date:    "03.06.2024.",
			clock:   "9:5",
			want:    time.Date(2024, 6, 3, 9, 5, 0, 0, loc),
			wantUTC: "2024-06-03T07:05:00Z",
		},
		{
			name:    "extra whitespace",
			date:    " 03.06.2024. ",
			clock:   "\t10:00",
			want:    time.Date(2024, 6, 3, 10, 0, 0, 0, loc),
			wantUTC: "2024-06-03T08:00:00Z",
		},
		{
			name:    "garbage time",
			date:    "03.06.2024.",
			clock:   "ten",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.date, tt.clock, loc)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDateTime() expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateTime() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDateTime() = %v, want %v", got, tt.want)
			}
			if utc := got.UTC().Format(time.RFC3339); utc != tt.wantUTC {
				t.Errorf("ParseDateTime() UTC = %s, want %s", utc, tt.wantUTC)
			}
		})
	}
}

func TestMondayOf(t *testing.T) {
	loc := mustZagreb(t)
	want := time.Date(2024, 6, 3, 0, 0, 0, 0, loc)

	for day := 3; day <= 9; day++ {
		in := time.Date(2024, 6, day, 17, 45, 0, 0, loc)
		if got := MondayOf(in); !got.Equal(want) {
			t.Errorf("MondayOf(%s) = %s, want %s", in.Format("Mon 2006-01-02"), got, want)
		}
	}

	next := time.Date(2024, 6, 10, 0, 0, 1, 0, loc)
	if got := MondayOf(next); !got.Equal(want.AddDate(0, 0, 7)) {
		t.Errorf("MondayOf(next monday) = %s", got)
	}
}

func TestWeekLabel(t *testing.T) {
	tests := []struct {
		monday time.Time
		want   string
	}{
		{time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), "ponedjeljak, 03. 06. 2024."},
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "ponedjeljak, 30. 12. 2024."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := WeekLabel(tt.monday); got != tt.want {
				t.Errorf("WeekLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
