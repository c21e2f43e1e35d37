package domain

import "strings"

var orderStatusLabels = map[int]string{
	0: "Pending",
	1: "Paid",
	2: "Shipped",
	3: "Delivered",
	4: "Cancelled",
}

var orderStatusCodes = map[string]int{
	"pending":   0,
	"paid":      1,
	"shipped":   2,
	"delivered": 3,
	"cancelled": 4,
}

const OrderStatusDelivered = 3

// OrderStatusLabel returns a human-readable label for an order status code.
func OrderStatusLabel(status int) string {
	if label, ok := orderStatusLabels[status]; ok {
		return label
	}

	return "Pending"
}

// ParseOrderStatus returns the status code for a given label (case-insensitive).
func ParseOrderStatus(label string) (int, bool) {
	code, ok := orderStatusCodes[strings.ToLower(label)]

	return code, ok
}
