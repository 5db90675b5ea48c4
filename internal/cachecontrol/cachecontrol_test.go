package cachecontrol

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		ttl       TTL
		immutable bool
		private   bool
		reqHeader string
		want      string
	}{
		{"disabled", NoCache, true, false, "", "no-store"},
		{"zero duration", Duration(0), true, false, "", "no-store"},
		{"sub-second rounds to zero", Duration(300 * time.Millisecond), true, false, "", "no-store"},
		{"public immutable", Duration(time.Hour), true, false, "", "public, max-age=3600, immutable"},
		{"public mutable", Duration(time.Hour), false, false, "", "public, max-age=3600"},
		{"private", Duration(90 * time.Second), false, true, "", "private, max-age=90"},
		{"private immutable", Duration(time.Minute), true, true, "", "private, max-age=60, immutable"},
		{"request no-store not allowed", Duration(time.Hour), true, false, "no-store", "public, max-age=3600, immutable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/extensions/sources/index.js", nil)
			if tt.reqHeader != "" {
				r.Header.Set("Cache-Control", tt.reqHeader)
			}
			got := Compute(r, tt.ttl, tt.immutable, tt.private)
			if got != tt.want {
				t.Errorf("Compute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPolicy_SkipAllowed(t *testing.T) {
	tests := []struct {
		name      string
		skip      bool
		reqHeader string
		want      string
	}{
		{"skip allowed no-store", true, "no-store", "no-store"},
		{"skip allowed mixed directives", true, "max-age=0, No-Store", "no-store"},
		{"skip allowed no-cache ignored", true, "no-cache", "public, max-age=3600, immutable"},
		{"skip allowed no header", true, "", "public, max-age=3600, immutable"},
		{"skip not allowed", false, "no-store", "public, max-age=3600, immutable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/extensions/sources/index.js", nil)
			if tt.reqHeader != "" {
				r.Header.Set("Cache-Control", tt.reqHeader)
			}
			p := Policy{TTL: Duration(time.Hour), SkipAllowed: tt.skip}
			if got := p.Compute(r, true, false); got != tt.want {
				t.Errorf("Compute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	first := Compute(r, Duration(time.Hour), true, false)
	time.Sleep(10 * time.Millisecond)
	if again := Compute(r, Duration(time.Hour), true, false); again != first {
		t.Fatalf("Compute() changed between calls: %q then %q", first, again)
	}
}

func TestCompute_NilRequest(t *testing.T) {
	if got := Compute(nil, Duration(time.Minute), false, false); got != "public, max-age=60" {
		t.Fatalf("Compute(nil) = %q", got)
	}
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in       string
		want     time.Duration
		disabled bool
		wantErr  bool
	}{
		{"", 0, true, false},
		{"0", 0, true, false},
		{"disabled", 0, true, false},
		{"no-cache", 0, true, false},
		{"FALSE", 0, true, false},
		{"3600", time.Hour, false, false},
		{"1h", time.Hour, false, false},
		{" 30m ", 30 * time.Minute, false, false},
		{"0s", 0, true, false},
		{"-5", 0, true, true},
		{"-1h", 0, true, true},
		{"forever", 0, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTTL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTTL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got.Disabled() != tt.disabled {
				t.Errorf("ParseTTL(%q).Disabled() = %v, want %v", tt.in, got.Disabled(), tt.disabled)
			}
			if !tt.disabled && got.Seconds() != int64(tt.want/time.Second) {
				t.Errorf("ParseTTL(%q).Seconds() = %d, want %d", tt.in, got.Seconds(), int64(tt.want/time.Second))
			}
		})
	}
}
