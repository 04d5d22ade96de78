package court

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"08:00", 8 * 60, false},
		{"16:30", 16*60 + 30, false},
		{"00:00", 0, false},
		{"23:59", 23*60 + 59, false},
		{"25:00", 0, true},
		{"12:75", 0, true},
		{"garbage", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseClock(%q) expected error, got %d", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 8 * 60, 16*60 + 30, 20 * 60} {
		got, err := ParseClock(Clock(minutes))
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", minutes, err)
		}
		if got != minutes {
			t.Errorf("round trip of %d = %d", minutes, got)
		}
	}
}

func TestFreeIntervalString(t *testing.T) {
	iv := FreeInterval{Court: 3, Start: 16 * 60, End: 18 * 60}
	if got, want := iv.String(), "Court 3: 16:00 - 18:00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRequestWindow(t *testing.T) {
	r := Request{StartHour: 16, EndHour: 18}
	if r.WindowStart() != 16*60 || r.WindowEnd() != 18*60 {
		t.Errorf("window = (%d, %d), want (960, 1080)", r.WindowStart(), r.WindowEnd())
	}
}
