package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/fastbite/pkg/auth"
)

type UpdateProfileRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	FullName    string     `json:"full_name" binding:"required"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (s *Server) getProfile(c *gin.Context) {
	user, err := s.users.ByID(c.Request.Context(), auth.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapProfile(user))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.ByID(ctx, auth.UserID(c))
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
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Save(ctx, user); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("User profile updated", zap.String("email", user.Email))

	c.JSON(http.StatusOK, mapProfile(user))
}

func (s *Server) changePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.ByID(ctx, auth.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		s.respondError(c, err)
		return
	}

	if !auth.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "current password is incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.respondError(c, err)
		return
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Save(ctx, user); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("User password changed", zap.String("email", user.Email))

	c.JSON(http.StatusOK, gin.H{"message": "password changed successfully"})
}
