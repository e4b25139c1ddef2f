package normalize

import "strings"

// Confidence grades a serviceability estimate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Finding is a heuristic estimate of whether the carrier will accept an
// address, made before spending an API call. It never blocks a request.
type Finding struct {
	LikelyServiceable bool       `json:"likely_serviceable"`
	Confidence        Confidence `json:"confidence"`
	Suggestion        string     `json:"suggestion,omitempty"`
}

// localityMarkers are tokens whose presence strongly suggests a real,
// deliverable address.
var localityMarkers = []string{
	"sector", "block", "township", "phase", "colony", "nagar", "near",
	"road", "street", "market", "apartment", "floor", "house", "lane", "tower",
}

const minUnknownPincodeLen = 20

// Prevalidator estimates carrier acceptance from the locality reference
// table. It gates whether the real carrier call is worth attempting.
type Prevalidator struct {
	localities map[string]LocalityTemplate
}

func NewPrevalidator(localities map[string]LocalityTemplate) *Prevalidator {
	return &Prevalidator{localities: localities}
}

func DefaultPrevalidator() *Prevalidator {
	return NewPrevalidator(localityTemplates)
}

// Estimate grades an address as the merchant supplied it against the
// reference table for its pincode.
func (p *Prevalidator) Estimate(address, pincode, city string) Finding {
	tpl, known := p.localities[pincode]
	if !known {
		if len(address) >= minUnknownPincodeLen {
			return Finding{LikelyServiceable: true, Confidence: ConfidenceLow}
		}
		return Finding{
			LikelyServiceable: false,
			Confidence:        ConfidenceLow,
			Suggestion:        "address too short for an unverified pincode; add locality and landmark",
		}
	}

	if len(address) < incompleteLen || truncatedPattern.MatchString(address) {
		return Finding{
			LikelyServiceable: false,
			Confidence:        ConfidenceHigh,
			Suggestion:        tpl.Address,
		}
	}

	lower := strings.ToLower(address)
	for _, marker := range localityMarkers {
		if strings.Contains(lower, marker) {
			return Finding{LikelyServiceable: true, Confidence: ConfidenceHigh}
		}
	}

	return Finding{
		LikelyServiceable: true,
		Confidence:        ConfidenceMedium,
		Suggestion:        tpl.Address,
	}
}
