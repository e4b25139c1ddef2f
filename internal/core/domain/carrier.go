package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// CarrierShipmentRecord is one physical package in the carrier's create
// payload. Field names follow the carrier's JSON contract.
type CarrierShipmentRecord struct {
	Name    string `json:"name"`
	Address string `json:"add"`
	Pincode string `json:"pin"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	OrderID string `json:"order"`

	PaymentMode    PaymentMode `json:"payment_mode"`
	CODAmount      float64     `json:"cod_amount"`
	MPSAmount      float64     `json:"mps_amount,omitempty"`
	TotalAmount    float64     `json:"total_amount"`
	CommodityValue float64     `json:"commodity_value,omitempty"`

	ReturnName    string `json:"return_name"`
	ReturnAddress string `json:"return_add"`
	ReturnPincode string `json:"return_pin"`
	ReturnCity    string `json:"return_city"`
	ReturnState   string `json:"return_state"`
	ReturnCountry string `json:"return_country"`
	ReturnPhone   string `json:"return_phone"`

	SellerName    string `json:"seller_name"`
	SellerAddress string `json:"seller_add"`
	SellerInvoice string `json:"seller_inv"`

	ProductsDesc string `json:"products_desc"`
	HSNCode      string `json:"hsn_code"`
	Quantity     int    `json:"quantity"`

	Weight float64 `json:"weight"` // grams
	Length float64 `json:"shipment_length"`
	Width  float64 `json:"shipment_width"`
	Height float64 `json:"shipment_height"`

	ShippingMode ShippingMode `json:"shipping_mode"`
	OrderDate    string       `json:"order_date"`
	SendDate     string       `json:"send_date"`
	EndDate      string       `json:"end_date"`

	Waybill  string `json:"waybill,omitempty"`
	MasterID string `json:"master_id,omitempty"`
	ChildSeq int    `json:"mps_child_seq,omitempty"`

	Fragile          bool `json:"fragile_shipment"`
	DangerousGood    bool `json:"dangerous_goods"`
	PlasticPackaging bool `json:"plastic_packaging"`
}

// CarrierPackageResult is the per-package slice of a carrier create response.
// Serviceable is a pointer because the carrier omits the flag on some
// responses; nil means "not reported".
type CarrierPackageResult struct {
	Waybill     string `json:"waybill"`
	Status      string `json:"status"`
	Serviceable *bool  `json:"serviceable"`
	Remarks     string `json:"remarks"`
}

// CarrierResponse is the decoded carrier create response. The top-level
// Success flag is untrustworthy on its own: the carrier is known to return
// success=true while individual packages report Fail or serviceable=false.
type CarrierResponse struct {
	Success       bool
	Packages      []CarrierPackageResult
	Remark        string
	UploadWbn     string
	LegacyWaybill string // single-shipment legacy shape: {"waybill": "..."}
}

// Usable reports whether a package result carries a waybill the pipeline can
// keep: present, not failed, and not flagged non-serviceable.
func (p CarrierPackageResult) Usable() bool {
	if p.Waybill == "" {
		return false
	}
	if strings.EqualFold(p.Status, "Fail") {
		return false
	}
	if p.Serviceable != nil && !*p.Serviceable {
		return false
	}
	return true
}

// PincodeServiceability is the result of a live carrier pincode lookup.
type PincodeServiceability struct {
	Pincode     string `json:"pincode"`
	Serviceable bool   `json:"serviceable"`
	Embargo     bool   `json:"embargo"`
	CODAllowed  bool   `json:"cod_allowed"`
}

// PlaceholderName marks a recipient whose real name failed normalization.
// Carrier-side record validation treats it as a data-quality failure.
const PlaceholderName = "NA"

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

const minCarrierAddressLen = 10
const minCarrierPhoneDigits = 10

// ValidateCarrierRecords runs the carrier's field-level checks without a
// network call. It returns one message per problem found; an empty slice
// means the records are safe to send.
func ValidateCarrierRecords(records []CarrierShipmentRecord) []string {
	var issues []string
	for i, r := range records {
		tag := func(msg string) string {
			if len(records) == 1 {
				return msg
			}
			return fmt.Sprintf("package %d: %s", i+1, msg)
		}
		if strings.TrimSpace(r.Name) == "" || r.Name == PlaceholderName {
			issues = append(issues, tag("recipient name is missing"))
		}
		if len(r.Address) < minCarrierAddressLen {
			issues = append(issues, tag("address is too short"))
		}
		if !pincodePattern.MatchString(r.Pincode) {
			issues = append(issues, tag("pincode must be 6 digits"))
		}
		if digits := countDigits(r.Phone); digits < minCarrierPhoneDigits {
			issues = append(issues, tag("phone must have at least 10 digits"))
		}
		if r.HSNCode == "" {
			issues = append(issues, tag("hsn code is missing"))
		}
		if strings.TrimSpace(r.ProductsDesc) == "" {
			issues = append(issues, tag("product description is missing"))
		}
	}
	return issues
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
