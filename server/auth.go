package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/fastbite/pkg/auth"
	"github.com/example/fastbite/pkg/models"
)

type RegisterRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8"`
	FullName    string     `json:"full_name" binding:"required"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if _, err := s.users.ByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email address is already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.respondError(c, err)
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
		Role:         models.RoleCustomer,
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

	s.logger.Info("New user registered", zap.String("email", user.Email))

	s.issueToken(c, user)
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := s.users.ByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
			return
		}
		s.respondError(c, err)
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "account is inactive"})
		return
	}

	s.logger.Info("User logged in", zap.String("email", user.Email))

	s.issueToken(c, user)
}

func (s *Server) googleAuth(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	identity, err := s.google.Verify(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid google token"})
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.ByGoogleID(ctx, identity.Subject)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.respondError(c, err)
			return
		}

		// No account for this Google subject yet; link by email or
		// provision a fresh customer account.
		user, err = s.users.ByEmail(ctx, identity.Email)
		switch {
		case err == nil:
			user.GoogleID = identity.Subject
			user.UpdatedAt = time.Now().UTC()
			if err := s.users.Save(ctx, user); err != nil {
				s.respondError(c, err)
				return
			}
			s.logger.Info("Google account linked to existing user", zap.String("email", user.Email))
		case errors.Is(err, gorm.ErrRecordNotFound):
			// OAuth users get an unguessable placeholder password.
			hash, hashErr := auth.HashPassword(uuid.NewString())
			if hashErr != nil {
				s.respondError(c, hashErr)
				return
			}
			fullName := identity.Name
			if fullName == "" {
				fullName = identity.Email
			}
			user = &models.User{
				Email:        strings.ToLower(identity.Email),
				PasswordHash: hash,
				FullName:     fullName,
				GoogleID:     identity.Subject,
				Role:         models.RoleCustomer,
				IsActive:     true,
			}
			if err := s.users.Create(ctx, user); err != nil {
				s.respondError(c, err)
				return
			}
			s.logger.Info("New user created via Google OAuth", zap.String("email", user.Email))
		default:
			s.respondError(c, err)
			return
		}
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "account is inactive"})
		return
	}

	s.logger.Info("User logged in via Google", zap.String("email", user.Email))

	s.issueToken(c, user)
}

func (s *Server) issueToken(c *gin.Context, user *models.User) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:    token,
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
}
