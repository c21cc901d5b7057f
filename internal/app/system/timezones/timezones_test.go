package timezones

import (
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		id      string
		want    string
		wantErr bool
	}{
		{"", "Asia/Kolkata", false},
		{"IST", "Asia/Kolkata", false},
		{"ist", "Asia/Kolkata", false},
		{"UTC", "UTC", false},
		{"gmt", "UTC", false},
		{"America/New_York", "America/New_York", false},
		{" Europe/London ", "Europe/London", false},
		{"Invalid/Timezone", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			loc, err := Resolve(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Resolve(%q) = %v, want error", tt.id, loc)
				}
				if Valid(tt.id) {
					t.Errorf("Valid(%q) = true", tt.id)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.id, err)
			}
			if loc.String() != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.id, loc, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	at := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	kolkata, _ := Resolve("Asia/Kolkata")
	ny, _ := Resolve("America/New_York")

	if got := Label(kolkata, at); got != "Asia/Kolkata (UTC+05:30)" {
		t.Errorf("Label = %q", got)
	}
	if got := Label(ny, at); got != "America/New_York (UTC-05:00)" {
		t.Errorf("Label = %q", got)
	}
	if got := Label(nil, at); got != "UTC (UTC+00:00)" {
		t.Errorf("Label(nil) = %q", got)
	}
}
