package server

import (
	"net/http"

	invoicedomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/domain"
	invoiceservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/service"
	paymentdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/domain"
	paymentservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/service"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListInvoices(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	invoices, err := s.invoiceSvc.List(c.Request.Context(), tenantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	var req invoiceservice.CreateInvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	invoice, err := s.invoiceSvc.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, invoicedomain.ErrInvoiceNotFound)
		return
	}
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (s *Server) VoidInvoice(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, invoicedomain.ErrInvoiceNotFound)
		return
	}
	invoice, err := s.invoiceSvc.Void(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (s *Server) ListInvoicePayments(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, paymentdomain.ErrInvoiceNotFound)
		return
	}
	payments, err := s.paymentLedger.ListByInvoice(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (s *Server) AddPayment(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, paymentdomain.ErrInvoiceNotFound)
		return
	}
	var req paymentservice.AddPaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, paymentdomain.ErrInvalidAmount)
		return
	}
	result, err := s.paymentLedger.AddPayment(c.Request.Context(), tenantID, id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *Server) DeletePayment(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, paymentdomain.ErrPaymentNotFound)
		return
	}
	result, err := s.paymentLedger.DeletePayment(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
