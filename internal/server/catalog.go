package server

import (
	"net/http"

	catalogdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/domain"
	catalogservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/service"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListCategories(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	categories, err := s.catalogSvc.ListCategories(c.Request.Context(), tenantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *Server) CreateCategory(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	var req catalogservice.CreateCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	category, err := s.catalogSvc.CreateCategory(c.Request.Context(), tenantID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) GetCategoryByID(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, catalogdomain.ErrCategoryNotFound)
		return
	}
	category, err := s.catalogSvc.GetCategory(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) ListProducts(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	products, err := s.catalogSvc.ListProducts(c.Request.Context(), tenantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) CreateProduct(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	var req catalogservice.CreateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	product, err := s.catalogSvc.CreateProduct(c.Request.Context(), tenantID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) GetProductByID(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, catalogdomain.ErrProductNotFound)
		return
	}
	product, err := s.catalogSvc.GetProduct(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) ListProductImages(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, catalogdomain.ErrProductNotFound)
		return
	}
	images, err := s.catalogSvc.ListProductImages(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (s *Server) AddProductImage(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, catalogdomain.ErrProductNotFound)
		return
	}
	var req catalogservice.AddProductImageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	image, err := s.catalogSvc.AddProductImage(c.Request.Context(), tenantID, id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}
