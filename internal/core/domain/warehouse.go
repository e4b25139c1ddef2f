package domain

// Warehouse is a shipment origin. Warehouses are managed by the surrounding
// admin screens; the pipeline only reads them.
type Warehouse struct {
	ID                    string `json:"id" bson:"_id,omitempty"`
	Name                  string `json:"name" bson:"name"`
	Address               string `json:"address" bson:"address"`
	City                  string `json:"city" bson:"city"`
	State                 string `json:"state" bson:"state"`
	Pincode               string `json:"pincode" bson:"pincode"`
	Phone                 string `json:"phone" bson:"phone"`
	Active                bool   `json:"active" bson:"active"`
	RegisteredWithCarrier bool   `json:"registered_with_carrier" bson:"registered_with_carrier"`
}
