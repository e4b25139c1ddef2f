package normalize

// LocalityTemplate is a reference address format for a pincode the carrier is
// known to serve well. Templates are used both to repair incomplete addresses
// and as the suggestion text in serviceability findings.
type LocalityTemplate struct {
	Address string
	City    string
	State   string
}

// localityTemplates maps known-serviceable pincodes to their reference
// locality. The table is intentionally small: it covers the pincodes that
// dominate the merchant's order volume.
var localityTemplates = map[string]LocalityTemplate{
	"110001": {Address: "Block A, Connaught Place, Near Central Park", City: "New Delhi", State: "Delhi"},
	"400001": {Address: "Fort Area, Near Flora Fountain, DN Road", City: "Mumbai", State: "Maharashtra"},
	"560001": {Address: "MG Road, Near Trinity Metro Station", City: "Bengaluru", State: "Karnataka"},
	"600001": {Address: "Parrys Corner, Near Broadway Bus Stand, George Town", City: "Chennai", State: "Tamil Nadu"},
	"700001": {Address: "BBD Bagh, Near GPO, Dalhousie Square", City: "Kolkata", State: "West Bengal"},
	"741235": {Address: "Block A, Kalyani Township, Near Central Park, Kalyani, Nadia", City: "Kalyani", State: "West Bengal"},
	"500001": {Address: "Abids Road, Near GPO, Koti", City: "Hyderabad", State: "Telangana"},
	"302001": {Address: "MI Road, Near Panch Batti, C-Scheme", City: "Jaipur", State: "Rajasthan"},
}

// stateByPincodePrefix resolves the state from the first two pincode digits.
// When the prefix is present here, it takes precedence over whatever state
// text came with the order.
var stateByPincodePrefix = map[string]string{
	"11": "Delhi",
	"12": "Haryana",
	"14": "Punjab",
	"20": "Uttar Pradesh",
	"30": "Rajasthan",
	"38": "Gujarat",
	"40": "Maharashtra",
	"41": "Maharashtra",
	"50": "Telangana",
	"56": "Karnataka",
	"60": "Tamil Nadu",
	"68": "Kerala",
	"70": "West Bengal",
	"71": "West Bengal",
	"74": "West Bengal",
	"78": "Assam",
	"80": "Bihar",
}

// stateAliases maps lowercase shorthand and legacy spellings to canonical
// state names.
var stateAliases = map[string]string{
	"wb":          "West Bengal",
	"west bengal": "West Bengal",
	"mh":          "Maharashtra",
	"ka":          "Karnataka",
	"karnatka":    "Karnataka",
	"tn":          "Tamil Nadu",
	"dl":          "Delhi",
	"delhi ncr":   "Delhi",
	"up":          "Uttar Pradesh",
	"ts":          "Telangana",
	"ap":          "Andhra Pradesh",
	"rj":          "Rajasthan",
	"gj":          "Gujarat",
	"kl":          "Kerala",
	"orissa":      "Odisha",
}

// cityAliases maps lowercase shorthand and legacy spellings to canonical
// city names.
var cityAliases = map[string]string{
	"calcutta":    "Kolkata",
	"kol":         "Kolkata",
	"bombay":      "Mumbai",
	"madras":      "Chennai",
	"bangalore":   "Bengaluru",
	"blr":         "Bengaluru",
	"hyd":         "Hyderabad",
	"new delhi":   "New Delhi",
	"delhi":       "New Delhi",
	"gurgaon":     "Gurugram",
	"trivandrum":  "Thiruvananthapuram",
	"pondicherry": "Puducherry",
}

// hsnByCategory is the fixed product-category to HSN code table.
var hsnByCategory = map[string]string{
	"apparel":     "6109",
	"footwear":    "6403",
	"electronics": "8517",
	"books":       "4901",
	"jewellery":   "7117",
	"cosmetics":   "3304",
	"toys":        "9503",
	"home_decor":  "9403",
	"food":        "2106",
}

// DefaultHSNCode is used when no signal resolves to a better code.
const DefaultHSNCode = "9999"
