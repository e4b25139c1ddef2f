package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

func validRecord() domain.CarrierShipmentRecord {
	return domain.CarrierShipmentRecord{
		Name:         "Riya Sharma",
		Address:      "Flat 4B, Sunrise Apartments, Jessore Road",
		City:         "Kolkata",
		State:        "West Bengal",
		Pincode:      "700001",
		Phone:        "9876543210",
		OrderID:      "ORD-1001",
		HSNCode:      "6109",
		ProductsDesc: "Cotton Kurta (2)",
	}
}

func newTestGateway(t *testing.T, handler http.HandlerFunc, cfg Config) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	if cfg.Token == "" {
		cfg.Token = "live-token-123"
	}
	return NewGateway(cfg, nil, zerolog.Nop())
}

func TestCreateShipments_PlaceholderTokenSkipsNetwork(t *testing.T) {
	called := false
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, Config{Token: "your-api-token"})

	_, err := g.CreateShipments(context.Background(), []domain.CarrierShipmentRecord{validRecord()}, "Main")
	if !errors.Is(err, domain.ErrCarrierNotConfigured) {
		t.Fatalf("expected ErrCarrierNotConfigured, got %v", err)
	}
	if called {
		t.Fatal("network call made despite placeholder token")
	}
}

func TestCreateShipments_RejectsInvalidRecordsBeforeCall(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network call")
	}, Config{})

	bad := validRecord()
	bad.Name = domain.PlaceholderName
	bad.Pincode = "70"

	_, err := g.CreateShipments(context.Background(), []domain.CarrierShipmentRecord{bad}, "Main")
	var verr *ShipmentValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ShipmentValidationError, got %v", err)
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("issues = %v", verr.Issues)
	}
}

func TestCreateShipments_SendsFormEncodedPayload(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token live-token-123" {
			t.Errorf("authorization = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
			return
		}
		if got := r.PostFormValue("format"); got != "json" {
			t.Errorf("format = %q", got)
		}
		if got := r.PostFormValue("pickup_location"); got != "Kolkata Fulfilment Centre" {
			t.Errorf("pickup_location = %q", got)
		}
		var payload struct {
			Shipments []domain.CarrierShipmentRecord `json:"shipments"`
		}
		if err := json.Unmarshal([]byte(r.PostFormValue("data")), &payload); err != nil {
			t.Errorf("decode data field: %v", err)
			return
		}
		if len(payload.Shipments) != 1 || payload.Shipments[0].OrderID != "ORD-1001" {
			t.Errorf("shipments payload = %+v", payload.Shipments)
		}
		w.Write([]byte(`{"success": true, "packages": [{"waybill": "1490010001", "status": "Success"}]}`))
	}, Config{RegisteredPickups: []string{"Kolkata Fulfilment Centre"}})

	resp, err := g.CreateShipments(context.Background(), []domain.CarrierShipmentRecord{validRecord()}, "Kolkata Fulfilment Centre")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success || len(resp.Packages) != 1 || resp.Packages[0].Waybill != "1490010001" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestCreateShipments_RemapsUnregisteredPickup(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.PostFormValue("pickup_location"); got != "Main" {
			t.Errorf("pickup_location = %q, want remapped default", got)
		}
		w.Write([]byte(`{"success": true, "packages": [{"waybill": "1490010002", "status": "Success"}]}`))
	}, Config{RegisteredPickups: []string{"Registered Hub"}, DefaultPickup: "Main"})

	if _, err := g.CreateShipments(context.Background(), []domain.CarrierShipmentRecord{validRecord()}, "Unknown Depot"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateShipments_UnauthorizedMapsToNotConfigured(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, Config{})

	_, err := g.CreateShipments(context.Background(), []domain.CarrierShipmentRecord{validRecord()}, "Main")
	if !errors.Is(err, domain.ErrCarrierNotConfigured) {
		t.Fatalf("expected ErrCarrierNotConfigured, got %v", err)
	}
}

func TestCreateShipments_ServerErrorIsUnavailable(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream timeout"))
	}, Config{})

	_, err := g.CreateShipments(context.Background(), []domain.CarrierShipmentRecord{validRecord()}, "Main")
	if !errors.Is(err, domain.ErrCarrierUnavailable) {
		t.Fatalf("expected ErrCarrierUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("status code lost: %v", err)
	}
}

func TestDecodeCreateResponse_LegacyWaybillShape(t *testing.T) {
	resp, err := decodeCreateResponse([]byte(`{"waybill": "1490010009"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatal("legacy shape should imply success")
	}
	if resp.LegacyWaybill != "1490010009" {
		t.Fatalf("legacy waybill = %q", resp.LegacyWaybill)
	}
}

func TestDecodeCreateResponse_RemarkShapes(t *testing.T) {
	resp, err := decodeCreateResponse([]byte(`{
		"success": true,
		"rmk": "partial upload",
		"packages": [
			{"waybill": "", "status": "Fail", "serviceable": false, "remarks": ["pincode not serviceable", "cod not allowed"]},
			{"waybill": "1490010003", "status": "Success", "remarks": "ok"}
		]
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Remark != "partial upload" {
		t.Fatalf("rmk = %q", resp.Remark)
	}
	if got := resp.Packages[0].Remarks; got != "pincode not serviceable; cod not allowed" {
		t.Fatalf("array remarks = %q", got)
	}
	if got := resp.Packages[1].Remarks; got != "ok" {
		t.Fatalf("string remarks = %q", got)
	}
	if resp.Packages[0].Serviceable == nil || *resp.Packages[0].Serviceable {
		t.Fatal("serviceable flag not decoded")
	}
}

type mapCache struct {
	entries map[string]*domain.PincodeServiceability
	sets    int
}

func (c *mapCache) Get(_ context.Context, pincode string) (*domain.PincodeServiceability, bool) {
	sv, ok := c.entries[pincode]
	return sv, ok
}

func (c *mapCache) Set(_ context.Context, pincode string, sv *domain.PincodeServiceability) {
	c.entries[pincode] = sv
	c.sets++
}

func TestCheckPincode_DecodesAndCaches(t *testing.T) {
	calls := 0
	cache := &mapCache{entries: map[string]*domain.PincodeServiceability{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("filter_codes"); got != "700001" {
			t.Errorf("filter_codes = %q", got)
		}
		w.Write([]byte(`{"delivery_codes": [{"postal_code": {"cod": "Y", "pre_paid": "Y", "remarks": ""}}]}`))
	}))
	defer srv.Close()

	g := NewGateway(Config{Token: "live-token-123", BaseURL: srv.URL}, cache, zerolog.Nop())

	sv, err := g.CheckPincode(context.Background(), "700001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sv.Serviceable || !sv.CODAllowed || sv.Embargo {
		t.Fatalf("serviceability = %+v", sv)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d", cache.sets)
	}

	if _, err := g.CheckPincode(context.Background(), "700001"); err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
	if calls != 1 {
		t.Fatalf("carrier called %d times, want cache hit on repeat", calls)
	}
}

func TestCheckPincode_EmbargoAndUnknownPincode(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("filter_codes") {
		case "181122":
			w.Write([]byte(`{"delivery_codes": [{"postal_code": {"cod": "N", "pre_paid": "Y", "remarks": "Embargo till further notice"}}]}`))
		default:
			w.Write([]byte(`{"delivery_codes": []}`))
		}
	}, Config{})

	sv, err := g.CheckPincode(context.Background(), "181122")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sv.Serviceable || sv.CODAllowed || !sv.Embargo {
		t.Fatalf("embargo pincode = %+v", sv)
	}

	sv, err = g.CheckPincode(context.Background(), "000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sv.Serviceable {
		t.Fatalf("unknown pincode should be unserviceable, got %+v", sv)
	}
}
