package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "Riya Sharma", "Riya Sharma", false},
		{"digits and symbols stripped", "R1ya $harma!!", "Rya harma", false},
		{"extra whitespace collapsed", "  Riya   Sharma  ", "Riya Sharma", false},
		{"single letter unusable", "R", "", true},
		{"symbols only unusable", "##123##", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeName(tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidName) {
					t.Fatalf("expected ErrInvalidName, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		want        string
		wantDefault bool
	}{
		{"ten digits pass", "9876543210", "9876543210", false},
		{"country code stripped", "+91 98765 43210", "9876543210", false},
		{"punctuation stripped", "98765-43210", "9876543210", false},
		{"too short gets placeholder", "12345", PlaceholderPhone, true},
		{"empty gets placeholder", "", PlaceholderPhone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defaulted := NormalizePhone(tt.in)
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			if defaulted != tt.wantDefault {
				t.Fatalf("defaulted = %v, want %v", defaulted, tt.wantDefault)
			}
		})
	}
}

func TestNormalize_PincodeDefaulted(t *testing.T) {
	n := DefaultAddressNormalizer()

	out, err := n.Normalize("Riya Sharma", "14 Park Street, Near Trinity Church, Kolkata", "12ab", "Kolkata", "WB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.PincodeDefaulted {
		t.Fatalf("expected pincode to be defaulted")
	}
	if out.Pincode != DefaultPincode {
		t.Fatalf("got pincode %q, want %q", out.Pincode, DefaultPincode)
	}
}

func TestNormalize_TruncatedAddressRewrittenFromTemplate(t *testing.T) {
	n := DefaultAddressNormalizer()

	out, err := n.Normalize("Priya Das", "A11 577 n", "741235", "Kalyani", "WB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.AddressRewritten {
		t.Fatalf("expected address to be rewritten")
	}
	if !strings.Contains(out.Address, "Kalyani Township") {
		t.Fatalf("expected template locality in address, got %q", out.Address)
	}
	if !strings.Contains(out.Address, "Nadia") {
		t.Fatalf("expected district in rewritten address, got %q", out.Address)
	}
	if out.OriginalAddress != "A11 577 n" {
		t.Fatalf("original address not preserved: %q", out.OriginalAddress)
	}
}

func TestNormalize_ShortAddressUnknownPincodeGetsGenericRewrite(t *testing.T) {
	n := DefaultAddressNormalizer()

	out, err := n.Normalize("Aman Verma", "H2 99", "851101", "Patna", "Bihar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.AddressRewritten {
		t.Fatalf("expected address to be rewritten")
	}
	if !strings.Contains(out.Address, "Patna") {
		t.Fatalf("expected city in generic rewrite, got %q", out.Address)
	}
}

func TestNormalize_BorderlineAddressGetsLocalitySuffix(t *testing.T) {
	n := DefaultAddressNormalizer()

	// 15-24 chars: kept but padded with a generic locality marker.
	out, err := n.Normalize("Riya Sharma", "12 Gandhi Lane Apt", "700001", "Calcutta", "WB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.AddressRewritten {
		t.Fatalf("expected borderline address to be flagged rewritten")
	}
	if !strings.HasPrefix(out.Address, "12 Gandhi Lane Apt") {
		t.Fatalf("original text should be preserved as prefix, got %q", out.Address)
	}
	if !strings.Contains(out.Address, "Near Main Road") {
		t.Fatalf("expected locality suffix, got %q", out.Address)
	}
}

func TestNormalize_CompleteAddressPassesThrough(t *testing.T) {
	n := DefaultAddressNormalizer()

	addr := "Flat 4B, Sunrise Apartments, Jessore Road, Near City Mall, Kolkata"
	out, err := n.Normalize("Riya Sharma", addr, "700001", "Calcutta", "wb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AddressRewritten {
		t.Fatalf("complete address should pass through unchanged")
	}
	if out.Address != addr {
		t.Fatalf("got %q, want %q", out.Address, addr)
	}
	if out.City != "Kolkata" {
		t.Fatalf("alias city not canonicalized: %q", out.City)
	}
	if out.State != "West Bengal" {
		t.Fatalf("state not resolved: %q", out.State)
	}
}

func TestNormalize_StatePrefixBeatsFreeText(t *testing.T) {
	n := DefaultAddressNormalizer()

	// Pincode says West Bengal even though the order text says Maharashtra.
	out, err := n.Normalize("Riya Sharma", "Flat 4B, Sunrise Apartments, Jessore Road, Kolkata", "700001", "Kolkata", "Maharashtra")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.State != "West Bengal" {
		t.Fatalf("pincode prefix should win, got %q", out.State)
	}
}

func TestNormalize_LongAddressCapped(t *testing.T) {
	n := DefaultAddressNormalizer()

	long := strings.Repeat("Very Long Street Name Segment ", 10)
	out, err := n.Normalize("Riya Sharma", long, "700001", "Kolkata", "WB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Address) > 120 {
		t.Fatalf("address not capped, len=%d", len(out.Address))
	}
}
