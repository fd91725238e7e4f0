package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus mirrors the marketplace order lifecycle.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusAssembled OrderStatus = "assembled"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a buyer order addressed to the seller, as the marketplace
// reports it. The dashboard never mutates orders.
type Order struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	Status     OrderStatus     `json:"status"`
	BuyerName  string          `json:"buyer_name"`
	ItemsCount int             `json:"items_count"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"created_at"`
}
