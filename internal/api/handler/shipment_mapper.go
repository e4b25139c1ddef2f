package handler

import (
	"github.com/craftkart/merchant-ops/internal/core/domain"
	"github.com/craftkart/merchant-ops/internal/core/ports"
)

func toCreateShipmentInput(req createShipmentRequest) ports.CreateShipmentInput {
	in := ports.CreateShipmentInput{
		OrderID:         req.OrderID,
		ShipmentType:    domain.ShipmentType(req.ShipmentType),
		PickupLocation:  req.PickupLocation,
		ShippingMode:    shippingModeOrDefault(req.ShippingMode),
		Weight:          req.Weight,
		ProductCategory: req.ProductCategory,
		EstimatedValue:  req.EstimatedValue,
		HSNCode:         req.HSNCode,
		Custom: ports.CustomFlags{
			Fragile:             req.CustomFields.Fragile,
			DangerousGood:       req.CustomFields.DangerousGood,
			PlasticPackaging:    req.CustomFields.PlasticPackaging,
			AutoGenerateWaybill: req.CustomFields.AutoGenerateWaybill,
			Waybill:             req.CustomFields.Waybill,
			HSNCode:             req.CustomFields.HSNCode,
		},
	}

	if req.Dimensions != nil {
		in.Dimensions = &ports.DimensionsInput{
			Length: req.Dimensions.Length,
			Width:  req.Dimensions.Width,
			Height: req.Dimensions.Height,
		}
	}

	for _, p := range req.Packages {
		pkg := ports.PackageInput{
			Weight:      p.Weight,
			Description: p.Description,
			Value:       p.Value,
		}
		if p.Dimensions != nil {
			pkg.Dimensions = ports.DimensionsInput{
				Length: p.Dimensions.Length,
				Width:  p.Dimensions.Width,
				Height: p.Dimensions.Height,
			}
		}
		in.Packages = append(in.Packages, pkg)
	}

	return in
}

func toCreateShipmentResponse(res *ports.CreateShipmentResult) createShipmentEnvelope {
	return createShipmentEnvelope{
		Success: true,
		Data: createShipmentData{
			OrderID:        res.OrderID,
			ShipmentType:   string(res.ShipmentType),
			WaybillNumbers: res.WaybillNumbers,
			PickupLocation: res.PickupLocation,
			OutcomeKind:    string(res.OutcomeKind),
			CarrierResponse: carrierResponseData{
				Remark:        res.Remark,
				CarrierRemark: res.CarrierRemark,
			},
			UpdatedOrder: toUpdatedOrderData(res.UpdatedOrder),
		},
	}
}

func toUpdatedOrderData(order *domain.Order) *updatedOrderData {
	if order == nil {
		return nil
	}
	return &updatedOrderData{
		OrderID:             order.ID,
		Status:              string(order.Status),
		ShipmentCreated:     order.ShipmentCreated,
		ShipmentDetails:     toForwardShipmentData(order.ShipmentDetails),
		ReverseShipment:     toSingleShipmentData(order.ReverseShipment),
		ReplacementShipment: toReplacementShipmentData(order.ReplacementShipment),
	}
}

func toShipmentStatusResponse(view *ports.ShipmentStatusView) shipmentStatusEnvelope {
	data := shipmentStatusData{
		OrderID:             view.OrderID,
		Status:              string(view.Status),
		ShipmentCreated:     view.ShipmentCreated,
		ShipmentDetails:     toForwardShipmentData(view.ShipmentDetails),
		ReverseShipment:     toSingleShipmentData(view.ReverseShipment),
		ReplacementShipment: toReplacementShipmentData(view.ReplacementShipment),
		AvailableActions:    view.AvailableActions,
		CanCreateShipment:   view.CanCreateShipment,
		Warehouses:          make([]warehouseData, 0, len(view.Warehouses)),
	}

	for _, w := range view.Warehouses {
		data.Warehouses = append(data.Warehouses, warehouseData{
			Name:    w.Name,
			City:    w.City,
			State:   w.State,
			Pincode: w.Pincode,
		})
	}

	return shipmentStatusEnvelope{Success: true, Data: data}
}

func toForwardShipmentData(d *domain.ForwardShipment) *forwardShipmentData {
	if d == nil {
		return nil
	}
	return &forwardShipmentData{
		Waybills:       d.Waybills,
		PrimaryWaybill: d.PrimaryWaybill,
		MasterID:       d.MasterID,
		PickupLocation: d.PickupLocation,
		ShippingMode:   string(d.Mode),
		OutcomeKind:    string(d.OutcomeKind),
		Remark:         d.Remark,
		CreatedAt:      d.CreatedAt,
	}
}

func toSingleShipmentData(r *domain.ReverseShipment) *singleShipmentData {
	if r == nil {
		return nil
	}
	return &singleShipmentData{
		Waybill:        r.Waybill,
		PickupLocation: r.PickupLocation,
		OutcomeKind:    string(r.OutcomeKind),
		Remark:         r.Remark,
		CreatedAt:      r.CreatedAt,
	}
}

func toReplacementShipmentData(r *domain.ReplacementShipment) *singleShipmentData {
	if r == nil {
		return nil
	}
	return &singleShipmentData{
		Waybill:        r.Waybill,
		PickupLocation: r.PickupLocation,
		OutcomeKind:    string(r.OutcomeKind),
		Remark:         r.Remark,
		CreatedAt:      r.CreatedAt,
	}
}
