package normalize

import (
	"regexp"
	"strings"
)

// GenericProductDesc replaces descriptions the heuristic rejects as garbage.
const GenericProductDesc = "General Merchandise"

const minDescLen = 4

var garbageDescPattern = regexp.MustCompile(`(?i)^(test|asdf+|xxx+|na|n/a|none|[^A-Za-z]+)$`)

// descKeywords maps description keywords to category keys in hsnByCategory.
var descKeywords = map[string]string{
	"shirt": "apparel", "tshirt": "apparel", "kurta": "apparel", "saree": "apparel",
	"jeans": "apparel", "dress": "apparel", "apparel": "apparel", "cloth": "apparel",
	"shoe": "footwear", "sandal": "footwear", "slipper": "footwear", "footwear": "footwear",
	"phone": "electronics", "charger": "electronics", "cable": "electronics",
	"headphone": "electronics", "earphone": "electronics", "electronic": "electronics",
	"book": "books", "notebook": "books",
	"ring": "jewellery", "necklace": "jewellery", "earring": "jewellery", "jewellery": "jewellery",
	"lipstick": "cosmetics", "cream": "cosmetics", "shampoo": "cosmetics", "cosmetic": "cosmetics",
	"toy": "toys", "puzzle": "toys", "doll": "toys",
	"lamp": "home_decor", "cushion": "home_decor", "curtain": "home_decor", "decor": "home_decor",
	"snack": "food", "tea": "food", "coffee": "food", "spice": "food",
}

// HSNResolver determines the tax classification code for a shipment through a
// priority chain: explicit code, custom-field code, category table, free-text
// description heuristic, then the default code.
type HSNResolver struct {
	byCategory map[string]string
}

func NewHSNResolver(byCategory map[string]string) *HSNResolver {
	return &HSNResolver{byCategory: byCategory}
}

func DefaultHSNResolver() *HSNResolver {
	return NewHSNResolver(hsnByCategory)
}

// Resolve returns the first code the priority chain produces.
func (r *HSNResolver) Resolve(explicitCode, customFieldCode, category, description string) string {
	if code := strings.TrimSpace(explicitCode); code != "" {
		return code
	}
	if code := strings.TrimSpace(customFieldCode); code != "" {
		return code
	}
	if cat := strings.ToLower(strings.TrimSpace(category)); cat != "" {
		if code, ok := r.byCategory[cat]; ok {
			return code
		}
		return DefaultHSNCode
	}
	if code := r.fromDescription(description); code != "" {
		return code
	}
	return DefaultHSNCode
}

// CleanDescription returns the description if it is usable for the carrier,
// or the generic replacement when it is short, mostly numeric, or garbage.
func CleanDescription(description string) string {
	desc := strings.TrimSpace(description)
	if len(desc) < minDescLen || mostlyNumeric(desc) || garbageDescPattern.MatchString(desc) {
		return GenericProductDesc
	}
	return desc
}

// fromDescription scans a usable description for category keywords. A
// description that had to be replaced with the generic text carries no
// category signal and yields "".
func (r *HSNResolver) fromDescription(description string) string {
	desc := CleanDescription(description)
	if desc == GenericProductDesc {
		return ""
	}
	lower := strings.ToLower(desc)
	for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		if cat, ok := descKeywords[word]; ok {
			return r.byCategory[cat]
		}
	}
	return ""
}

func mostlyNumeric(s string) bool {
	digits, letters := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z'):
			letters++
		}
	}
	return digits > letters
}
