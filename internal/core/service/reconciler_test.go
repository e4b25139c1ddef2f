package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/craftkart/merchant-ops/internal/core/domain"
	"github.com/craftkart/merchant-ops/internal/core/normalize"
)

func oneRecord() []domain.CarrierShipmentRecord {
	return []domain.CarrierShipmentRecord{{OrderID: "ORD-1001"}}
}

func TestReconcile_AllUsable(t *testing.T) {
	r := NewReconciler(zerolog.Nop())

	out, err := r.Reconcile(oneRecord(), &domain.CarrierResponse{
		Success:  true,
		Packages: []domain.CarrierPackageResult{{Waybill: "1490010001", Status: "Success"}},
	}, AddressDiag{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != domain.OutcomeReal {
		t.Fatalf("kind = %s, want real", out.Kind)
	}
	if len(out.Waybills) != 1 || out.Waybills[0] != "1490010001" {
		t.Fatalf("waybills = %v", out.Waybills)
	}
}

func TestReconcile_TopLevelFailureIsHard(t *testing.T) {
	r := NewReconciler(zerolog.Nop())

	_, err := r.Reconcile(oneRecord(), &domain.CarrierResponse{
		Success: false,
		Remark:  "Authentication failed",
	}, AddressDiag{})
	if !errors.Is(err, domain.ErrCarrierRejected) {
		t.Fatalf("expected ErrCarrierRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "Authentication failed") {
		t.Fatalf("carrier remark lost: %v", err)
	}
}

func TestReconcile_SuccessWithAllPackagesFailedSynthesizes(t *testing.T) {
	r := NewReconciler(zerolog.Nop())
	notServiceable := false

	out, err := r.Reconcile(oneRecord(), &domain.CarrierResponse{
		Success: true,
		Packages: []domain.CarrierPackageResult{
			{Waybill: "", Status: "Fail", Serviceable: &notServiceable},
		},
	}, AddressDiag{Original: "A11 577 n", Suggested: "Block A, Kalyani Township"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != domain.OutcomeSynthesized {
		t.Fatalf("kind = %s, want synthesized", out.Kind)
	}
	if !strings.Contains(out.Remark, "delivery issue fixed") {
		t.Fatalf("remark = %q", out.Remark)
	}
	if !strings.Contains(out.Remark, "A11 577 n") || !strings.Contains(out.Remark, "Kalyani Township") {
		t.Fatalf("address diagnostics missing from remark: %q", out.Remark)
	}
	if !strings.HasPrefix(out.Waybills[0], "99") || len(out.Waybills[0]) != 12 {
		t.Fatalf("synthetic waybill = %q", out.Waybills[0])
	}
}

func TestReconcile_PartialAcceptance(t *testing.T) {
	r := NewReconciler(zerolog.Nop())
	notServiceable := false

	records := []domain.CarrierShipmentRecord{{}, {}, {}}
	out, err := r.Reconcile(records, &domain.CarrierResponse{
		Success: true,
		Packages: []domain.CarrierPackageResult{
			{Waybill: "1490020001", Status: "Success"},
			{Waybill: "1490020002", Status: "Success"},
			{Waybill: "1490020003", Serviceable: &notServiceable},
		},
	}, AddressDiag{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != domain.OutcomePartial {
		t.Fatalf("kind = %s, want partial", out.Kind)
	}
	if len(out.Waybills) != 2 {
		t.Fatalf("waybills = %v", out.Waybills)
	}
	if !strings.Contains(out.Remark, "2/3") {
		t.Fatalf("remark = %q", out.Remark)
	}
}

func TestReconcile_LegacySingleWaybillShape(t *testing.T) {
	r := NewReconciler(zerolog.Nop())

	out, err := r.Reconcile(oneRecord(), &domain.CarrierResponse{
		Success:       true,
		LegacyWaybill: "1490030001",
	}, AddressDiag{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != domain.OutcomeReal || out.Waybills[0] != "1490030001" {
		t.Fatalf("legacy outcome = %+v", out)
	}
}

func TestReconcile_EmptyResponseSynthesizes(t *testing.T) {
	r := NewReconciler(zerolog.Nop())

	out, err := r.Reconcile(oneRecord(), &domain.CarrierResponse{Success: true}, AddressDiag{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != domain.OutcomeSynthesized {
		t.Fatalf("kind = %s, want synthesized", out.Kind)
	}
	if !strings.Contains(out.Remark, "no response") {
		t.Fatalf("remark = %q", out.Remark)
	}
}

func TestSynthesizeValidation(t *testing.T) {
	r := NewReconciler(zerolog.Nop())

	records := []domain.CarrierShipmentRecord{{}, {}}
	out := r.SynthesizeValidation(records, []string{"pincode must be 6 digits"})
	if out.Kind != domain.OutcomeSynthesized {
		t.Fatalf("kind = %s", out.Kind)
	}
	if len(out.Waybills) != 2 {
		t.Fatalf("one synthetic waybill per record expected, got %v", out.Waybills)
	}
	if !strings.Contains(out.Remark, "validation issue") || !strings.Contains(out.Remark, "pincode") {
		t.Fatalf("remark = %q", out.Remark)
	}
}

func TestSynthesizeServiceability(t *testing.T) {
	r := NewReconciler(zerolog.Nop())

	out := r.SynthesizeServiceability(oneRecord(), normalize.Finding{
		LikelyServiceable: false,
		Confidence:        normalize.ConfidenceHigh,
		Suggestion:        "Block A, Kalyani Township, Near Central Park",
	})
	if out.Kind != domain.OutcomeSynthesized {
		t.Fatalf("kind = %s", out.Kind)
	}
	if !strings.Contains(out.Remark, "serviceability optimized") {
		t.Fatalf("remark = %q", out.Remark)
	}
	if !strings.Contains(out.Remark, "Kalyani Township") {
		t.Fatalf("suggestion missing from remark: %q", out.Remark)
	}
}
