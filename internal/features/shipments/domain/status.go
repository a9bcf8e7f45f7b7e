package domain

// ShipmentStatus represents the lifecycle state of a shipment.
type ShipmentStatus string

const (
	// StatusCreated indicates the shipment exists but has not left the origin.
	StatusCreated ShipmentStatus = "CREATED"
	// StatusShipped indicates the shipment is in transit with a committed delivery date.
	StatusShipped ShipmentStatus = "SHIPPED"
	// StatusDelivered indicates the shipment reached its destination.
	StatusDelivered ShipmentStatus = "DELIVERED"
	// StatusDelayed indicates the shipment is running behind its delivery date.
	StatusDelayed ShipmentStatus = "DELAYED"
	// StatusLost indicates the carrier lost track of the shipment.
	StatusLost ShipmentStatus = "LOST"
	// StatusCanceled indicates the shipment was canceled before delivery.
	StatusCanceled ShipmentStatus = "CANCELED"
	// StatusException indicates the committed delivery date broke the
	// plausibility rule of the shipment's service variant.
	StatusException ShipmentStatus = "EXCEPTION"
)
