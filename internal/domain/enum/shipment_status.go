package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ShipmentStatus represents where a shipment is in the trucking workflow
type ShipmentStatus int

const (
	ShipmentStatusPending   ShipmentStatus = 0
	ShipmentStatusInTransit ShipmentStatus = 1
	ShipmentStatusDelivered ShipmentStatus = 2
	ShipmentStatusBilled    ShipmentStatus = 3
	ShipmentStatusClosed    ShipmentStatus = 4
)

func (s ShipmentStatus) String() string {
	names := [...]string{"Pending", "InTransit", "Delivered", "Billed", "Closed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s ShipmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ShipmentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ShipmentStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = ShipmentStatusPending
	case "InTransit":
		*s = ShipmentStatusInTransit
	case "Delivered":
		*s = ShipmentStatusDelivered
	case "Billed":
		*s = ShipmentStatusBilled
	case "Closed":
		*s = ShipmentStatusClosed
	}
	return nil
}

func (s ShipmentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ShipmentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ShipmentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ShipmentStatus(v)
	case int:
		*s = ShipmentStatus(v)
	}
	return nil
}
