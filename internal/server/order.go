package server

import (
	"net/http"

	orderdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/domain"
	orderservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/service"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListCustomers(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	customers, err := s.orderSvc.ListCustomers(c.Request.Context(), tenantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (s *Server) CreateCustomer(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	var req orderservice.CreateCustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	customer, err := s.orderSvc.CreateCustomer(c.Request.Context(), tenantID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (s *Server) ListOrders(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	orders, err := s.orderSvc.ListOrders(c.Request.Context(), tenantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) CreateOrder(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	var req orderservice.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	order, err := s.orderSvc.CreateOrder(c.Request.Context(), tenantID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) GetOrderByID(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, orderdomain.ErrOrderNotFound)
		return
	}
	order, err := s.orderSvc.GetOrder(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) CompleteOrder(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, orderdomain.ErrOrderNotFound)
		return
	}
	order, err := s.orderSvc.CompleteOrder(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) CancelOrder(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, orderdomain.ErrOrderNotFound)
		return
	}
	order, err := s.orderSvc.CancelOrder(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
