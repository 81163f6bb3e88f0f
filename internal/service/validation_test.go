package service

import (
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := map[string]struct {
		input     string
		expected  string
		expectErr bool
	}{
		"lowercases and trims": {input: "  Test@Example.COM ", expected: "test@example.com"},
		"idn domain":           {input: "asha@bücher.de", expected: "asha@xn--bcher-kva.de"},
		"missing at":           {input: "asha.example.com", expectErr: true},
		"missing local part":   {input: "@example.com", expectErr: true},
		"single label domain":  {input: "asha@localhost", expectErr: true},
		"hyphenated label":     {input: "asha@-bad.com", expectErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := normalizeEmail(tc.input)
			if tc.expectErr {
				var vErr ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := map[string]struct {
		raw      string
		region   string
		expected string
	}{
		"us national format": {raw: " (415) 555-1234 ", region: "US", expected: "+14155551234"},
		"already e164":       {raw: "+14155551234", region: "IN", expected: "+14155551234"},
		"indian mobile":      {raw: "98765 43210", region: "IN", expected: "+919876543210"},
		"default region":     {raw: "9876543210", region: "", expected: "+919876543210"},
		"too short":          {raw: "12345", region: "US", expected: ""},
		"empty":              {raw: "   ", region: "IN", expected: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := normalizePhone(tc.raw, tc.region); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeContactNumberRejectsInvalid(t *testing.T) {
	if _, err := normalizeContactNumber("12345", "IN"); err == nil {
		t.Fatalf("expected validation error")
	}
	got, err := normalizeContactNumber("9876543210", "IN")
	if err != nil || got != "+919876543210" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
}
