package service

import (
	"context"
	"strings"

	catalogdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/domain"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/clock"
	orderdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/domain"
	quotadomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        orderdomain.Repository
	CatalogRepo catalogdomain.Repository
	Gate        quotadomain.Gate
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        orderdomain.Repository
	catalogRepo catalogdomain.Repository
	gate        quotadomain.Gate
}

func NewService(p Params) *Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("order.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
		gate:        p.Gate,
	}
}

type CreateCustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (s *Service) CreateCustomer(ctx context.Context, tenantID snowflake.ID, in CreateCustomerInput) (*orderdomain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, orderdomain.ErrInvalidName
	}
	now := s.clock.Now()
	customer := &orderdomain.Customer{
		ID:        s.genID.Generate(),
		TenantID:  tenantID,
		Name:      name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertCustomer(ctx, s.db, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) ListCustomers(ctx context.Context, tenantID snowflake.ID) ([]orderdomain.Customer, error) {
	return s.repo.ListCustomers(ctx, s.db, tenantID)
}

type CreateOrderItemInput struct {
	ProductID snowflake.ID `json:"product_id" binding:"required"`
	Quantity  int64        `json:"quantity" binding:"required"`
}

type CreateOrderInput struct {
	CustomerID *snowflake.ID          `json:"customer_id,omitempty"`
	Notes      string                 `json:"notes,omitempty"`
	Items      []CreateOrderItemInput `json:"items" binding:"required"`
}

// CreateOrder checks the monthly order quota, then writes the order and its
// items in one transaction. Item prices snapshot the product at order time.
func (s *Service) CreateOrder(ctx context.Context, tenantID snowflake.ID, in CreateOrderInput) (*orderdomain.Order, error) {
	if len(in.Items) == 0 {
		return nil, orderdomain.ErrEmptyOrder
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, orderdomain.ErrInvalidQuantity
		}
	}

	decision, err := s.gate.Check(ctx, tenantID, quotadomain.ResourceOrder)
	if err != nil {
		return nil, err
	}
	if err := quotadomain.ErrIfDenied(decision); err != nil {
		return nil, err
	}

	if in.CustomerID != nil {
		customer, err := s.repo.FindCustomerByID(ctx, s.db, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, orderdomain.ErrCustomerNotFound
		}
		if customer.TenantID != tenantID {
			return nil, orderdomain.ErrForbidden
		}
	}

	now := s.clock.Now()
	order := &orderdomain.Order{
		ID:         s.genID.Generate(),
		TenantID:   tenantID,
		CustomerID: in.CustomerID,
		Status:     orderdomain.OrderStatusPending,
		OrderDate:  now,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64
		items := make([]orderdomain.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			product, err := s.catalogRepo.FindProductByID(ctx, tx, it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return catalogdomain.ErrProductNotFound
			}
			if product.TenantID != tenantID {
				return orderdomain.ErrForbidden
			}
			items = append(items, orderdomain.OrderItem{
				ID:          s.genID.Generate(),
				TenantID:    tenantID,
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    it.Quantity,
				UnitPrice:   product.Price,
				CreatedAt:   now,
			})
			total += product.Price * float64(it.Quantity)
		}

		order.TotalAmount = total
		if err := s.repo.InsertOrder(ctx, tx, order); err != nil {
			return err
		}
		for i := range items {
			if err := s.repo.InsertOrderItem(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", order.ID.String()),
		zap.Float64("total_amount", order.TotalAmount),
	)
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, tenantID, id snowflake.ID) (*orderdomain.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrOrderNotFound
	}
	if order.TenantID != tenantID {
		return nil, orderdomain.ErrForbidden
	}
	items, err := s.repo.ListOrderItems(ctx, s.db, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, tenantID snowflake.ID) ([]orderdomain.Order, error) {
	return s.repo.ListOrders(ctx, s.db, tenantID)
}

// CompleteOrder moves PENDING to COMPLETED.
func (s *Service) CompleteOrder(ctx context.Context, tenantID, id snowflake.ID) (*orderdomain.Order, error) {
	return s.transition(ctx, tenantID, id, orderdomain.OrderStatusPending, orderdomain.OrderStatusCompleted)
}

// CancelOrder moves PENDING to CANCELLED.
func (s *Service) CancelOrder(ctx context.Context, tenantID, id snowflake.ID) (*orderdomain.Order, error) {
	return s.transition(ctx, tenantID, id, orderdomain.OrderStatusPending, orderdomain.OrderStatusCancelled)
}

func (s *Service) transition(ctx context.Context, tenantID, id snowflake.ID, from, to orderdomain.OrderStatus) (*orderdomain.Order, error) {
	order, err := s.GetOrder(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.UpdateOrderStatus(ctx, s.db, id, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, orderdomain.ErrInvalidStatus
	}
	order.Status = to
	return order, nil
}
