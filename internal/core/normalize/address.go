// Package normalize repairs the raw order fields the carrier is strict about.
// Upstream order data is frequently incomplete; every function here degrades
// quality instead of failing, and flags what it changed so downstream stages
// can account for it.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

const (
	// DefaultPincode substitutes a pincode that fails the shape check.
	DefaultPincode = "110001"
	// PlaceholderPhone substitutes a phone with fewer than 10 digits.
	PlaceholderPhone = "9999999999"

	minNameLen      = 2
	incompleteLen   = 15
	shortAddressLen = 25
	maxAddressLen   = 120
	phoneDigits     = 10
)

var (
	nonAlphaPattern   = regexp.MustCompile(`[^A-Za-z ]`)
	nonDigitPattern   = regexp.MustCompile(`[^0-9]`)
	addressPattern    = regexp.MustCompile(`[^A-Za-z0-9,.\- ]`)
	multiSpacePattern = regexp.MustCompile(`\s{2,}`)

	// truncatedPattern catches addresses that look cut off mid-entry: one or
	// two short alphanumeric tokens ending in a single dangling character,
	// e.g. "A11 577 n".
	truncatedPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,8}([ ,.\-]+[A-Za-z0-9]{1,6}){0,2}[ ,.\-]+[A-Za-z0-9]$`)
)

// CleanedAddress is the normalized recipient block plus flags describing the
// repairs that were applied.
type CleanedAddress struct {
	Name    string
	Address string
	City    string
	State   string
	Pincode string
	Phone   string

	OriginalAddress  string
	AddressRewritten bool
	PincodeDefaulted bool
	PhoneDefaulted   bool
	NameDefaulted    bool
}

// AddressNormalizer cleans and repairs recipient fields. Lookup tables are
// injected so tests can pin them; DefaultAddressNormalizer wires the built-in
// tables.
type AddressNormalizer struct {
	localities    map[string]LocalityTemplate
	stateByPrefix map[string]string
	stateAliases  map[string]string
	cityAliases   map[string]string
}

func NewAddressNormalizer(
	localities map[string]LocalityTemplate,
	stateByPrefix, stateAliases, cityAliases map[string]string,
) *AddressNormalizer {
	return &AddressNormalizer{
		localities:    localities,
		stateByPrefix: stateByPrefix,
		stateAliases:  stateAliases,
		cityAliases:   cityAliases,
	}
}

func DefaultAddressNormalizer() *AddressNormalizer {
	return NewAddressNormalizer(localityTemplates, stateByPincodePrefix, stateAliases, cityAliases)
}

// Normalize cleans the raw recipient fields. It fails only on an unusable
// name (domain.ErrInvalidName); every other defect is repaired and flagged.
func (n *AddressNormalizer) Normalize(name, address, pincode, city, state string) (CleanedAddress, error) {
	out := CleanedAddress{OriginalAddress: strings.TrimSpace(address)}

	cleanName, err := NormalizeName(name)
	if err != nil {
		return out, err
	}
	out.Name = cleanName

	out.Pincode, out.PincodeDefaulted = n.normalizePincode(pincode)
	out.City = n.normalizeCity(city)
	out.State = n.normalizeState(state, out.Pincode)
	out.Address, out.AddressRewritten = n.normalizeAddress(address, out.Pincode, out.City)
	return out, nil
}

// NormalizeName strips non-alphabetic characters and collapses whitespace.
// Names shorter than two letters are unusable.
func NormalizeName(raw string) (string, error) {
	clean := nonAlphaPattern.ReplaceAllString(raw, "")
	clean = strings.TrimSpace(multiSpacePattern.ReplaceAllString(clean, " "))
	if len(strings.ReplaceAll(clean, " ", "")) < minNameLen {
		return "", domain.ErrInvalidName
	}
	return clean, nil
}

// NormalizePhone strips non-digits and keeps the last 10 digits. Inputs with
// fewer than 10 digits yield the fixed placeholder; the second return value
// reports whether the placeholder was used.
func NormalizePhone(raw string) (string, bool) {
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if len(digits) < phoneDigits {
		return PlaceholderPhone, true
	}
	return digits[len(digits)-phoneDigits:], false
}

func (n *AddressNormalizer) normalizePincode(raw string) (string, bool) {
	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if len(digits) != 6 || digits[0] == '0' {
		return DefaultPincode, true
	}
	return digits, false
}

// normalizeAddress strips disallowed characters and classifies the result:
// incomplete addresses are rewritten from the locality template for the
// pincode, borderline ones get a generic locality suffix, and long ones pass
// through capped at maxAddressLen.
func (n *AddressNormalizer) normalizeAddress(raw, pincode, city string) (string, bool) {
	clean := addressPattern.ReplaceAllString(raw, "")
	clean = strings.TrimSpace(multiSpacePattern.ReplaceAllString(clean, " "))

	incomplete := len(clean) < incompleteLen || truncatedPattern.MatchString(clean)
	if incomplete {
		if tpl, ok := n.localities[pincode]; ok {
			return tpl.Address, true
		}
		return "House No 1, Main Road, Near " + city + " Market, " + city, true
	}

	if len(clean) < shortAddressLen {
		return clean + ", Near Main Road, " + city, true
	}

	if len(clean) > maxAddressLen {
		clean = strings.TrimSpace(clean[:maxAddressLen])
	}
	return clean, false
}

func (n *AddressNormalizer) normalizeCity(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := n.cityAliases[key]; ok {
		return canonical
	}
	return titleCase(key)
}

// normalizeState resolves the state, preferring the pincode prefix table over
// the free-text value.
func (n *AddressNormalizer) normalizeState(raw, pincode string) string {
	if len(pincode) >= 2 {
		if state, ok := n.stateByPrefix[pincode[:2]]; ok {
			return state
		}
	}
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := n.stateAliases[key]; ok {
		return canonical
	}
	return titleCase(key)
}

// titleCase uppercases the first letter of each word; callers pass input
// already lowercased.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		if startOfWord && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
			continue
		}
		if r == ' ' || r == '-' {
			startOfWord = true
		}
		b.WriteRune(r)
	}
	return b.String()
}
