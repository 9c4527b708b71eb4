package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// DeliveryFee is the fixed charge added once per order, in minor currency units.
const DeliveryFee int64 = 45

// Order statuses. The storage layer keeps status as an open string; the API
// boundary only accepts values from this set.
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
)

// ValidOrderStatus reports whether status belongs to the closed set accepted
// by the admin API. No transition ordering is enforced between them.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// LineItem is a snapshot of a product at order-creation time. Name and unit
// price are copied so later catalog changes never alter historical orders.
type LineItem struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"qty"`
	UnitPrice int64  `json:"price"`
}

// Order represents a placed order.
type Order struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CustomerName string     `json:"name" db:"customer_name"`
	Address      string     `json:"address" db:"address"`
	Phone        string     `json:"phone" db:"phone"`
	Items        []LineItem `json:"items" db:"items"`
	Total        int64      `json:"total" db:"total"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// phoneRegex accepts the regional mobile format: an international +212 prefix
// or a single leading trunk zero, a mobile-operator digit (6 or 7), then
// exactly eight further digits.
var phoneRegex = regexp.MustCompile(`^(\+212|0)[67]\d{8}$`)

// ValidPhone reports whether phone matches the regional mobile format.
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}
