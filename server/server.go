package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/example/fastbite/pkg/auth"
	"github.com/example/fastbite/pkg/catalog"
	"github.com/example/fastbite/pkg/config"
	"github.com/example/fastbite/pkg/ordering"
	"github.com/example/fastbite/pkg/repository"
)

type Deps struct {
	Users   *repository.UserStore
	Catalog *catalog.Service
	Orders  *ordering.Service
	Tokens  *auth.TokenService
	Google  auth.GoogleVerifier
	Cache   *repository.RedisRepository
	Audit   *repository.MongoRepository
}

type Server struct {
	config *config.Config
	logger *zap.Logger
	router *gin.Engine

	users    *repository.UserStore
	catalog  *catalog.Service
	orders   *ordering.Service
	tokens   *auth.TokenService
	google   auth.GoogleVerifier
	cache    *repository.RedisRepository
	audit    *repository.MongoRepository
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config:  cfg,
		logger:  logger,
		router:  router,
		users:   deps.Users,
		catalog: deps.Catalog,
		orders:  deps.Orders,
		tokens:  deps.Tokens,
		google:  deps.Google,
		cache:   deps.Cache,
		audit:   deps.Audit,
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", s.register)
			authRoutes.POST("/login", s.login)
			authRoutes.POST("/google", s.googleAuth)
		}

		items := api.Group("/items")
		{
			items.GET("", s.listFoodItems)
			items.GET("/:id", s.getFoodItem)

			adminItems := items.Group("", auth.Middleware(s.tokens), auth.RequireAdmin())
			{
				adminItems.POST("", s.createFoodItem)
				adminItems.PUT("/:id", s.updateFoodItem)
				adminItems.DELETE("/:id", s.deleteFoodItem)
			}
		}

		combos := api.Group("/combos")
		{
			combos.GET("", s.listCombos)
			combos.GET("/:id", s.getCombo)

			adminCombos := combos.Group("", auth.Middleware(s.tokens), auth.RequireAdmin())
			{
				adminCombos.POST("", s.createCombo)
				adminCombos.PUT("/:id", s.updateCombo)
				adminCombos.DELETE("/:id", s.deleteCombo)
			}
		}

		customers := api.Group("/customers", auth.Middleware(s.tokens))
		{
			customers.GET("/profile", s.getProfile)
			customers.PUT("/profile", s.updateProfile)
			customers.PUT("/password", s.changePassword)
		}

		orders := api.Group("/orders", auth.Middleware(s.tokens))
		{
			orders.POST("", s.createOrder)
			orders.GET("", s.listOrders)
			orders.GET("/invoices", s.listInvoices)
			orders.GET("/invoices/:id", s.getInvoice)
			orders.GET("/:id", s.getOrder)
			orders.PUT("/:id/status", auth.RequireAdmin(), s.updateOrderStatus)
		}

		admin := api.Group("/admin", auth.Middleware(s.tokens), auth.RequireAdmin())
		{
			admin.GET("/users", s.listUsers)
			admin.GET("/users/:id", s.getUser)
			admin.POST("/users", s.createUser)
			admin.PUT("/users/:id", s.updateUser)
			admin.DELETE("/users/:id", s.deleteUser)
			admin.GET("/audit/:entity/:id", s.getAuditLogs)
		}
	}

	// Swagger
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("API server starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// auditLog records an admin or ordering action in MongoDB. Failures are
// logged and never fail the request.
func (s *Server) auditLog(actor uint, action, entity string, entityID uint, data bson.M) {
	if s.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := s.audit.CreateAuditLog(ctx, &repository.AuditLog{
			Actor:    actor,
			Action:   action,
			Entity:   entity,
			EntityID: entityID,
			Data:     data,
		})
		if err != nil {
			s.logger.Warn("Failed to write audit log",
				zap.String("action", action),
				zap.Error(err))
		}
	}()
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
