package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/fastbite/pkg/auth"
	"github.com/example/fastbite/pkg/catalog"
	"github.com/example/fastbite/pkg/models"
)

type FoodItemRequest struct {
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	Category         string          `json:"category" binding:"required"`
	Theme            string          `json:"theme"`
	ImageURL         string          `json:"image_url"`
	Ingredients      string          `json:"ingredients"`
	NutritionalInfo  string          `json:"nutritional_info"`
	AllergenWarnings string          `json:"allergen_warnings"`
	IsActive         bool            `json:"is_active"`
}

func (r FoodItemRequest) toInput() catalog.FoodItemInput {
	return catalog.FoodItemInput{
		Name:             r.Name,
		Description:      r.Description,
		Price:            r.Price,
		Category:         r.Category,
		Theme:            r.Theme,
		ImageURL:         r.ImageURL,
		Ingredients:      r.Ingredients,
		NutritionalInfo:  r.NutritionalInfo,
		AllergenWarnings: r.AllergenWarnings,
		IsActive:         r.IsActive,
	}
}

func (s *Server) listFoodItems(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	// Only the unfiltered listing is cached; category views go to MySQL.
	if category == "" && s.cache != nil {
		var cached []models.FoodItem
		if err := s.cache.GetMenuItems(ctx, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	items, err := s.catalog.ListFoodItems(ctx, category)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if category == "" && s.cache != nil {
		if err := s.cache.CacheMenuItems(ctx, items); err != nil {
			s.logger.Warn("Failed to cache menu items")
		}
	}

	c.JSON(http.StatusOK, items)
}

func (s *Server) getFoodItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	item, err := s.catalog.GetFoodItem(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (s *Server) createFoodItem(c *gin.Context) {
	var req FoodItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	item, err := s.catalog.CreateFoodItem(c.Request.Context(), req.toInput())
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.invalidateMenuCache(c)
	s.auditLog(auth.UserID(c), "create_food_item", "food_item", item.ID,
		bson.M{"name": item.Name, "price": item.Price.StringFixed(2)})

	c.JSON(http.StatusCreated, item)
}

func (s *Server) updateFoodItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req FoodItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	item, err := s.catalog.UpdateFoodItem(c.Request.Context(), id, req.toInput())
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.invalidateMenuCache(c)
	s.auditLog(auth.UserID(c), "update_food_item", "food_item", item.ID,
		bson.M{"name": item.Name, "price": item.Price.StringFixed(2)})

	c.JSON(http.StatusOK, item)
}

func (s *Server) deleteFoodItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := s.catalog.DeleteFoodItem(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	s.invalidateMenuCache(c)
	s.auditLog(auth.UserID(c), "delete_food_item", "food_item", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "food item deleted successfully"})
}

func (s *Server) invalidateMenuCache(c *gin.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMenu(c.Request.Context()); err != nil {
		s.logger.Warn("Failed to invalidate menu cache")
	}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
