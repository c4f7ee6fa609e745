package domain

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// validNext describes the regular fulfillment flow. Staff may still force any
// status onto any order; irregular jumps are only logged, not rejected.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}
