package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/fastbite/pkg/auth"
	"github.com/example/fastbite/pkg/models"
)

type CreateUserRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8"`
	FullName    string     `json:"full_name" binding:"required"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Role        string     `json:"role" binding:"required,oneof=Customer Admin"`
}

type UpdateUserRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	FullName    string     `json:"full_name" binding:"required"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Role        string     `json:"role" binding:"required,oneof=Customer Admin"`
	IsActive    bool       `json:"is_active"`
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, mapUser(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	user, err := s.users.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapUser(user))
}

func (s *Server) createUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	user := &models.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		DateOfBirth:  req.DateOfBirth,
		Role:         req.Role,
		IsActive:     true,
	}

	if err := s.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email address is already registered"})
			return
		}
		s.respondError(c, err)
		return
	}

	s.logger.Info("User created by admin", zap.String("email", user.Email))
	s.auditLog(auth.UserID(c), "create_user", "user", user.ID, bson.M{"email": user.Email, "role": user.Role})

	c.JSON(http.StatusCreated, mapUser(user))
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		s.respondError(c, err)
		return
	}

	newEmail := strings.ToLower(req.Email)
	if user.Email != newEmail {
		if _, err := s.users.ByEmail(ctx, newEmail); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email address is already in use"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.respondError(c, err)
			return
		}
		user.Email = newEmail
	}

	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.Address = req.Address
	user.DateOfBirth = req.DateOfBirth
	user.Role = req.Role
	user.IsActive = req.IsActive
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Save(ctx, user); err != nil {
		s.respondError(c, err)
		return
	}

	s.auditLog(auth.UserID(c), "update_user", "user", user.ID, bson.M{"email": user.Email, "role": user.Role})

	c.JSON(http.StatusOK, mapUser(user))
}

// deleteUser deactivates an account. Rows are never removed so the
// user's order history stays intact.
func (s *Server) deleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if id == auth.UserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cannot deactivate your own account"})
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		s.respondError(c, err)
		return
	}

	user.IsActive = false
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Save(ctx, user); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("User deactivated", zap.String("email", user.Email))
	s.auditLog(auth.UserID(c), "delete_user", "user", user.ID, nil)

	c.JSON(http.StatusOK, gin.H{"message": "user deactivated successfully"})
}

func (s *Server) getAuditLogs(c *gin.Context) {
	if s.audit == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "audit log is not configured"})
		return
	}

	entity := c.Param("entity")
	id, ok := paramID(c)
	if !ok {
		return
	}

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid limit"})
			return
		}
		limit = parsed
	}

	logs, err := s.audit.GetAuditLogs(c.Request.Context(), entity, id, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
