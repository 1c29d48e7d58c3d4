package repository

import (
	"context"

	orderdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

func (r *repo) InsertCustomer(ctx context.Context, db *gorm.DB, customer *orderdomain.Customer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (
			id, tenant_id, name, email, phone, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.TenantID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
}

func (r *repo) FindCustomerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*orderdomain.Customer, error) {
	var customer orderdomain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, name, email, phone, created_at, updated_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) ListCustomers(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]orderdomain.Customer, error) {
	var customers []orderdomain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, name, email, phone, created_at, updated_at
		 FROM customers WHERE tenant_id = ? ORDER BY name ASC`,
		tenantID,
	).Scan(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) InsertOrder(ctx context.Context, db *gorm.DB, order *orderdomain.Order) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO orders (
			id, tenant_id, customer_id, status, order_date, total_amount, notes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.TenantID,
		order.CustomerID,
		order.Status,
		order.OrderDate,
		order.TotalAmount,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	).Error
}

func (r *repo) InsertOrderItem(ctx context.Context, db *gorm.DB, item *orderdomain.OrderItem) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO order_items (
			id, tenant_id, order_id, product_id, product_name, quantity, unit_price, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.TenantID,
		item.OrderID,
		item.ProductID,
		item.ProductName,
		item.Quantity,
		item.UnitPrice,
		item.CreatedAt,
	).Error
}

func (r *repo) FindOrderByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, customer_id, status, order_date, total_amount, notes,
		 created_at, updated_at
		 FROM orders WHERE id = ?`,
		id,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) ListOrders(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]orderdomain.Order, error) {
	var orders []orderdomain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, customer_id, status, order_date, total_amount, notes,
		 created_at, updated_at
		 FROM orders WHERE tenant_id = ? ORDER BY order_date DESC`,
		tenantID,
	).Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) ListOrderItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]orderdomain.OrderItem, error) {
	var items []orderdomain.OrderItem
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, order_id, product_id, product_name, quantity, unit_price, created_at
		 FROM order_items WHERE order_id = ? ORDER BY id ASC`,
		orderID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateOrderStatus is a guarded transition; false means the row was not in
// the expected from status.
func (r *repo) UpdateOrderStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to orderdomain.OrderStatus) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		to, id, from,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
