package domain

import (
	"fmt"
	"math/rand"
)

// ConfirmationLine is one receipt row.
type ConfirmationLine struct {
	Name           string
	Quantity       int
	LineTotalCents int
}

// OrderConfirmation is the ephemeral receipt shown after placement. It is
// derived from an Order and never persisted itself.
type OrderConfirmation struct {
	Code             string
	RestaurantName   string
	Lines            []ConfirmationLine
	SubtotalCents    int
	DeliveryFeeCents int
	TotalCents       int
	EtaMinutes       int
}

// NewConfirmation builds a receipt from a placed or historical order.
// When the backend never assigned an id, a local fallback code is used.
func NewConfirmation(o Order, restaurantName string) OrderConfirmation {
	code := o.ID
	if code == "" || code == TempOrderID {
		code = FallbackOrderCode()
	}
	lines := make([]ConfirmationLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, ConfirmationLine{
			Name:           it.NameSnapshot,
			Quantity:       it.Quantity,
			LineTotalCents: it.PriceCentsSnapshot * it.Quantity,
		})
	}
	return OrderConfirmation{
		Code:             code,
		RestaurantName:   restaurantName,
		Lines:            lines,
		SubtotalCents:    o.SubtotalCents,
		DeliveryFeeCents: o.DeliveryFeeCents,
		TotalCents:       o.TotalCents,
		EtaMinutes:       o.EtaMinutes,
	}
}

// TempOrderID marks a client-constructed order that the backend has not
// acknowledged yet.
const TempOrderID = "temp"

// FallbackOrderCode generates a local order code for when the backend is
// unreachable and placement degrades to a device-only receipt.
func FallbackOrderCode() string {
	return fmt.Sprintf("HAA%04d", 1000+rand.Intn(9000))
}

// Cents renders an integer cent amount as a dollar string.
func Cents(c int) string {
	return fmt.Sprintf("$%.2f", float64(c)/100.0)
}
