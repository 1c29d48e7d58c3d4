// Package domain contains the storefront order models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Customer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Email     string       `gorm:"type:text" json:"email"`
	Phone     string       `gorm:"type:text" json:"phone"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// Order carries order_date separately from created_at so the monthly quota
// window counts business time, not row insertion time.
type Order struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID  `gorm:"not null;index" json:"tenant_id"`
	CustomerID  *snowflake.ID `gorm:"index" json:"customer_id,omitempty"`
	Status      OrderStatus   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	OrderDate   time.Time     `gorm:"not null;index" json:"order_date"`
	TotalAmount float64       `gorm:"not null;default:0" json:"total_amount"`
	Notes       string        `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []OrderItem `gorm:"-" json:"items,omitempty"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// OrderItem snapshots the product name and unit price at order time.
type OrderItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	OrderID     snowflake.ID `gorm:"not null;index" json:"order_id"`
	ProductID   snowflake.ID `gorm:"not null;index" json:"product_id"`
	ProductName string       `gorm:"type:text;not null" json:"product_name"`
	Quantity    int64        `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64      `gorm:"not null;default:0" json:"unit_price"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (OrderItem) TableName() string { return "order_items" }
