package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertCustomer(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindCustomerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	ListCustomers(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]Customer, error)

	InsertOrder(ctx context.Context, db *gorm.DB, order *Order) error
	InsertOrderItem(ctx context.Context, db *gorm.DB, item *OrderItem) error
	FindOrderByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	ListOrders(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]Order, error)
	ListOrderItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]OrderItem, error)
	UpdateOrderStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to OrderStatus) (bool, error)
}
