// Package carrier implements the outbound gateway to the logistics carrier's
// HTTP API.
package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

const (
	defaultBaseURL = "https://track.delhivery.com"
	defaultTimeout = 30 * time.Second

	createPath  = "/api/cmu/create.json"
	pincodePath = "/c/api/pin-codes/json/"
)

// placeholderTokens are config values that mean "no credential was set".
var placeholderTokens = map[string]struct{}{
	"":               {},
	"changeme":       {},
	"your-api-token": {},
	"xxxxxxxx":       {},
}

// ShipmentValidationError reports carrier field-level validation failures
// found before any network call.
type ShipmentValidationError struct {
	Issues []string
}

func (e *ShipmentValidationError) Error() string {
	return "shipment records failed carrier validation: " + strings.Join(e.Issues, "; ")
}

// ServiceabilityCache caches live pincode lookups (backed by Redis).
type ServiceabilityCache interface {
	Get(ctx context.Context, pincode string) (*domain.PincodeServiceability, bool)
	Set(ctx context.Context, pincode string, sv *domain.PincodeServiceability)
}

// Config captures the carrier credentials and pickup registration.
type Config struct {
	Token   string
	BaseURL string
	Timeout time.Duration
	// RegisteredPickups is the allow-list of warehouse names registered with
	// the carrier. Unrecognized names are remapped to DefaultPickup.
	RegisteredPickups []string
	DefaultPickup     string
}

// Gateway talks to the carrier's create and pincode endpoints.
type Gateway struct {
	cfg        Config
	httpClient *http.Client
	cache      ServiceabilityCache
	log        zerolog.Logger

	registered map[string]struct{}
}

func NewGateway(cfg Config, cache ServiceabilityCache, log zerolog.Logger) *Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	registered := make(map[string]struct{}, len(cfg.RegisteredPickups))
	for _, name := range cfg.RegisteredPickups {
		registered[name] = struct{}{}
	}
	return &Gateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		log:        log,
		registered: registered,
	}
}

// configured reports whether a real credential is present.
func (g *Gateway) configured() bool {
	_, placeholder := placeholderTokens[strings.ToLower(strings.TrimSpace(g.cfg.Token))]
	return !placeholder
}

// resolvePickup applies the allow-list: only registered warehouse names may
// be sent to the carrier; anything else is remapped to the default pickup.
func (g *Gateway) resolvePickup(name string) string {
	if _, ok := g.registered[name]; ok {
		return name
	}
	g.log.Warn().Str("pickup_location", name).Str("default", g.cfg.DefaultPickup).
		Msg("pickup location not registered with carrier, remapping to default")
	return g.cfg.DefaultPickup
}

// CreateShipments sends the records to the carrier's create endpoint.
func (g *Gateway) CreateShipments(ctx context.Context, records []domain.CarrierShipmentRecord, pickupLocation string) (*domain.CarrierResponse, error) {
	if !g.configured() {
		return nil, domain.ErrCarrierNotConfigured
	}
	if issues := domain.ValidateCarrierRecords(records); len(issues) > 0 {
		return nil, &ShipmentValidationError{Issues: issues}
	}

	payload, err := json.Marshal(map[string]any{"shipments": records})
	if err != nil {
		return nil, fmt.Errorf("encode shipments: %w", err)
	}

	form := url.Values{}
	form.Set("format", "json")
	form.Set("data", string(payload))
	form.Set("pickup_location", g.resolvePickup(pickupLocation))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+createPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCarrierUnavailable, err)
	}
	req.Header.Set("Authorization", "Token "+g.cfg.Token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCarrierUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrCarrierUnavailable, err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: carrier rejected credentials", domain.ErrCarrierNotConfigured)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrCarrierUnavailable, resp.StatusCode, truncate(body, 200))
	}

	decoded, err := decodeCreateResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrCarrierUnavailable, err)
	}

	g.log.Info().
		Bool("success", decoded.Success).
		Int("packages", len(decoded.Packages)).
		Str("rmk", decoded.Remark).
		Msg("carrier create response")
	return decoded, nil
}

// createResponse mirrors the carrier's create response wire shape. Remarks
// can be a string or an array of strings depending on the failure class.
type createResponse struct {
	Success   bool            `json:"success"`
	RMK       string          `json:"rmk"`
	UploadWbn string          `json:"upload_wbn"`
	Packages  []struct {
		Waybill     string          `json:"waybill"`
		Status      string          `json:"status"`
		Serviceable *bool           `json:"serviceable"`
		Remarks     json.RawMessage `json:"remarks"`
	} `json:"packages"`
	// Legacy single-shipment shape.
	Waybill string `json:"waybill"`
}

func decodeCreateResponse(body []byte) (*domain.CarrierResponse, error) {
	var raw createResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	out := &domain.CarrierResponse{
		Success:       raw.Success,
		Remark:        raw.RMK,
		UploadWbn:     raw.UploadWbn,
		LegacyWaybill: raw.Waybill,
	}
	// The legacy {"waybill": "..."} shape carries no success flag.
	if raw.Waybill != "" && len(raw.Packages) == 0 {
		out.Success = true
	}
	for _, pkg := range raw.Packages {
		out.Packages = append(out.Packages, domain.CarrierPackageResult{
			Waybill:     pkg.Waybill,
			Status:      pkg.Status,
			Serviceable: pkg.Serviceable,
			Remarks:     remarksString(pkg.Remarks),
		})
	}
	return out, nil
}

// remarksString tolerates both the string and array-of-strings remark shapes.
func remarksString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return strings.Join(arr, "; ")
	}
	return string(raw)
}

// CheckPincode runs the carrier's live serviceability lookup, serving
// repeats from cache.
func (g *Gateway) CheckPincode(ctx context.Context, pincode string) (*domain.PincodeServiceability, error) {
	if !g.configured() {
		return nil, domain.ErrCarrierNotConfigured
	}
	if g.cache != nil {
		if sv, ok := g.cache.Get(ctx, pincode); ok {
			return sv, nil
		}
	}

	query := url.Values{}
	query.Set("filter_codes", pincode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+pincodePath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCarrierUnavailable, err)
	}
	req.Header.Set("Authorization", "Token "+g.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCarrierUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrCarrierUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrCarrierUnavailable, resp.StatusCode, truncate(body, 200))
	}

	var decoded struct {
		DeliveryCodes []struct {
			PostalCode struct {
				COD     string `json:"cod"`
				Prepaid string `json:"pre_paid"`
				Remarks string `json:"remarks"`
			} `json:"postal_code"`
		} `json:"delivery_codes"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrCarrierUnavailable, err)
	}

	sv := &domain.PincodeServiceability{Pincode: pincode}
	if len(decoded.DeliveryCodes) > 0 {
		pc := decoded.DeliveryCodes[0].PostalCode
		sv.Serviceable = true
		sv.CODAllowed = pc.COD == "Y"
		sv.Embargo = strings.Contains(strings.ToLower(pc.Remarks), "embargo")
	}

	if g.cache != nil {
		g.cache.Set(ctx, pincode, sv)
	}
	return sv, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
