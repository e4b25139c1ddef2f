package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftkart/merchant-ops/internal/core/domain"
	"github.com/craftkart/merchant-ops/internal/core/normalize"
	"github.com/craftkart/merchant-ops/internal/core/ports"
)

// Hard defaults and floors for dimensions and weight.
const (
	defaultWeightGrams = 500.0
	minWeightGrams     = 100.0
	defaultDimensionCm = 10.0
	minDimensionCm     = 1.0

	// deliveryWindowDays sets the carrier-mandated end_date.
	deliveryWindowDays = 7

	carrierDateFormat = "2006-01-02 15:04:05"
	carrierCountry    = "India"
)

// RequestBuilder composes carrier shipment records from an order and a
// shipment request. It never fails on bad data: address and product fields
// degrade through the normalizers and the defects surface in carrier-side
// validation instead.
type RequestBuilder struct {
	normalizer *normalize.AddressNormalizer
	hsn        *normalize.HSNResolver
	log        zerolog.Logger
}

func NewRequestBuilder(normalizer *normalize.AddressNormalizer, hsn *normalize.HSNResolver, log zerolog.Logger) *RequestBuilder {
	return &RequestBuilder{normalizer: normalizer, hsn: hsn, log: log}
}

// Build returns one record per physical package along with the cleaned
// recipient address used for serviceability checks and diagnostics.
func (b *RequestBuilder) Build(order *domain.Order, in ports.CreateShipmentInput, warehouse domain.Warehouse) ([]domain.CarrierShipmentRecord, normalize.CleanedAddress) {
	addr := order.ShippingAddress
	clean, err := b.normalizer.Normalize(order.CustomerName, addr.Address, addr.Pincode, addr.City, addr.State)
	if err != nil {
		// An unusable name degrades to the placeholder marker; carrier-side
		// record validation turns it into a synthesized outcome downstream.
		b.log.Warn().Str("order_id", order.ID).Err(err).Msg("recipient name failed normalization")
		clean.Name = domain.PlaceholderName
		clean.NameDefaulted = true
	}
	clean.Phone, clean.PhoneDefaulted = normalize.NormalizePhone(order.Phone)

	base := b.baseRecord(order, in, warehouse, clean)

	if in.ShipmentType != domain.ShipmentMPS {
		rec := base
		rec.Weight, rec.Length, rec.Width, rec.Height = resolveDims(nil, in)
		if !autoWaybill(in.Custom) && in.Custom.Waybill != "" {
			rec.Waybill = in.Custom.Waybill
		}
		return []domain.CarrierShipmentRecord{rec}, clean
	}

	// MPS: one record per package, all sharing a master id.
	masterID := in.Custom.Waybill
	if autoWaybill(in.Custom) || masterID == "" {
		masterID = generateToken()
	}
	records := make([]domain.CarrierShipmentRecord, 0, len(in.Packages))
	for i, pkg := range in.Packages {
		rec := base
		rec.MasterID = masterID
		rec.ChildSeq = i + 1
		rec.Waybill = fmt.Sprintf("%s_%d", masterID, i+1)
		rec.Weight, rec.Length, rec.Width, rec.Height = resolveDims(&in.Packages[i], in)
		if desc := normalize.CleanDescription(pkg.Description); desc != normalize.GenericProductDesc {
			rec.ProductsDesc = desc
		}
		rec.MPSAmount = order.TotalAmount
		if pkg.Value > 0 {
			rec.CommodityValue = pkg.Value
		}
		records = append(records, rec)
	}
	return records, clean
}

// baseRecord fills everything shared across packages of a shipment.
func (b *RequestBuilder) baseRecord(order *domain.Order, in ports.CreateShipmentInput, warehouse domain.Warehouse, clean normalize.CleanedAddress) domain.CarrierShipmentRecord {
	paymentMode := PaymentModeFor(in.ShipmentType, order.PaymentMethod)

	codAmount := 0.0
	if paymentMode == domain.PaymentCOD {
		codAmount = order.TotalAmount
	}

	commodityValue := in.EstimatedValue
	if commodityValue <= 0 {
		commodityValue = order.TotalAmount
	}

	whPhone, _ := normalize.NormalizePhone(warehouse.Phone)

	orderDate := order.CreatedAt
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	now := time.Now()

	return domain.CarrierShipmentRecord{
		Name:    clean.Name,
		Address: clean.Address,
		Pincode: clean.Pincode,
		City:    clean.City,
		State:   clean.State,
		Country: carrierCountry,
		Phone:   clean.Phone,
		OrderID: order.ID,

		PaymentMode:    paymentMode,
		CODAmount:      codAmount,
		TotalAmount:    order.TotalAmount,
		CommodityValue: commodityValue,

		ReturnName:    warehouse.Name,
		ReturnAddress: warehouse.Address,
		ReturnPincode: warehouse.Pincode,
		ReturnCity:    warehouse.City,
		ReturnState:   warehouse.State,
		ReturnCountry: carrierCountry,
		ReturnPhone:   whPhone,

		SellerName:    warehouse.Name,
		SellerAddress: warehouse.Address,
		SellerInvoice: order.ID,

		ProductsDesc: b.productsDesc(order),
		HSNCode:      b.hsn.Resolve(in.HSNCode, in.Custom.HSNCode, in.ProductCategory, b.productsDesc(order)),
		Quantity:     totalQuantity(order),

		ShippingMode: in.ShippingMode,
		OrderDate:    orderDate.Format(carrierDateFormat),
		SendDate:     now.Format(carrierDateFormat),
		EndDate:      now.AddDate(0, 0, deliveryWindowDays).Format(carrierDateFormat),

		Fragile:          in.Custom.Fragile,
		DangerousGood:    in.Custom.DangerousGood,
		PlasticPackaging: in.Custom.PlasticPackaging,
	}
}

// PaymentModeFor maps (shipmentType, order payment method) to the carrier
// payment mode. REVERSE and REPLACEMENT ignore the payment method.
func PaymentModeFor(t domain.ShipmentType, paymentMethod string) domain.PaymentMode {
	switch t {
	case domain.ShipmentReverse:
		return domain.PaymentPickup
	case domain.ShipmentReplacement:
		return domain.PaymentRepl
	default: // FORWARD, MPS
		if strings.EqualFold(paymentMethod, domain.PaymentMethodCOD) {
			return domain.PaymentCOD
		}
		return domain.PaymentPrepaid
	}
}

// resolveDims applies the package-specific → request-level → hard default
// resolution order, then the floors.
func resolveDims(pkg *ports.PackageInput, in ports.CreateShipmentInput) (weight, length, width, height float64) {
	weight = in.Weight
	if in.Dimensions != nil {
		length, width, height = in.Dimensions.Length, in.Dimensions.Width, in.Dimensions.Height
	}
	if pkg != nil {
		if pkg.Weight > 0 {
			weight = pkg.Weight
		}
		if pkg.Dimensions.Length > 0 || pkg.Dimensions.Width > 0 || pkg.Dimensions.Height > 0 {
			length, width, height = pkg.Dimensions.Length, pkg.Dimensions.Width, pkg.Dimensions.Height
		}
	}
	if weight <= 0 {
		weight = defaultWeightGrams
	}
	if weight < minWeightGrams {
		weight = minWeightGrams
	}
	if length <= 0 {
		length = defaultDimensionCm
	}
	if width <= 0 {
		width = defaultDimensionCm
	}
	if height <= 0 {
		height = defaultDimensionCm
	}
	if length < minDimensionCm {
		length = minDimensionCm
	}
	if width < minDimensionCm {
		width = minDimensionCm
	}
	if height < minDimensionCm {
		height = minDimensionCm
	}
	return weight, length, width, height
}

func (b *RequestBuilder) productsDesc(order *domain.Order) string {
	if len(order.Items) == 0 {
		return normalize.GenericProductDesc
	}
	parts := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		parts = append(parts, fmt.Sprintf("%s (%d)", item.Name, item.Quantity))
	}
	return normalize.CleanDescription(strings.Join(parts, ", "))
}

func totalQuantity(order *domain.Order) int {
	qty := 0
	for _, item := range order.Items {
		qty += item.Quantity
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}

func autoWaybill(f ports.CustomFlags) bool {
	return f.AutoGenerateWaybill == nil || *f.AutoGenerateWaybill
}

// generateToken returns a 12-digit numeric token used as an MPS master id
// when the carrier has not assigned one yet.
func generateToken() string {
	max := big.NewInt(1_000_000_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return fmt.Sprintf("%012d", time.Now().UnixNano()%1_000_000_000_000)
	}
	return fmt.Sprintf("%012d", n)
}
