package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/fastbite/pkg/auth"
	"github.com/example/fastbite/pkg/catalog"
)

type ComboRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Price       decimal.Decimal          `json:"price" binding:"required"`
	ImageURL    string                   `json:"image_url"`
	IsActive    bool                     `json:"is_active"`
	ComboItems  []catalog.ComboComponent `json:"combo_items" binding:"required"`
}

func (r ComboRequest) toInput() catalog.ComboInput {
	return catalog.ComboInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
		Components:  r.ComboItems,
	}
}

func (s *Server) listCombos(c *gin.Context) {
	ctx := c.Request.Context()

	if s.cache != nil {
		var cached []ComboResponse
		if err := s.cache.GetMenuCombos(ctx, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	combos, err := s.catalog.ListCombos(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := make([]ComboResponse, 0, len(combos))
	for i := range combos {
		resp = append(resp, mapCombo(&combos[i]))
	}

	if s.cache != nil {
		if err := s.cache.CacheMenuCombos(ctx, resp); err != nil {
			s.logger.Warn("Failed to cache combos")
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getCombo(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	combo, err := s.catalog.GetCombo(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapCombo(combo))
}

func (s *Server) createCombo(c *gin.Context) {
	var req ComboRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	combo, err := s.catalog.CreateCombo(c.Request.Context(), req.toInput())
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.invalidateMenuCache(c)
	s.auditLog(auth.UserID(c), "create_combo", "combo", combo.ID,
		bson.M{"name": combo.Name, "price": combo.Price.StringFixed(2)})

	c.JSON(http.StatusCreated, mapCombo(combo))
}

func (s *Server) updateCombo(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ComboRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	combo, err := s.catalog.UpdateCombo(c.Request.Context(), id, req.toInput())
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.invalidateMenuCache(c)
	s.auditLog(auth.UserID(c), "update_combo", "combo", combo.ID,
		bson.M{"name": combo.Name, "price": combo.Price.StringFixed(2)})

	c.JSON(http.StatusOK, mapCombo(combo))
}

func (s *Server) deleteCombo(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := s.catalog.DeleteCombo(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	s.invalidateMenuCache(c)
	s.auditLog(auth.UserID(c), "delete_combo", "combo", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "combo deleted successfully"})
}
