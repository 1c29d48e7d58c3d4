package server

import (
	"net/http"
	"strconv"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (s *Server) ListNotifications(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	var beforeID snowflake.ID
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		beforeID = snowflake.ID(cursor.LastID)
	}

	notifications, pageInfo, err := s.notificationSvc.List(c.Request.Context(), tenantID, unreadOnly, beforeID, page.Limit())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "page_info": pageInfo})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		AbortWithError(c, gorm.ErrRecordNotFound)
		return
	}
	updated, err := s.notificationSvc.MarkRead(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !updated {
		AbortWithError(c, gorm.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

func (s *Server) DeleteReadNotifications(c *gin.Context) {
	tenantID, ok := tenantFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	deleted, err := s.notificationSvc.DeleteRead(c.Request.Context(), tenantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
