package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/fastbite/pkg/auth"
	"github.com/example/fastbite/pkg/ordering"
)

type CreateOrderRequest struct {
	Items           []ordering.LineItem `json:"items" binding:"required"`
	DeliveryAddress string              `json:"delivery_address"`
	PaymentMethod   string              `json:"payment_method"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := auth.UserID(c)
	order, err := s.orders.Create(c.Request.Context(), ordering.CreateOrderInput{
		UserID:          userID,
		Items:           req.Items,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.auditLog(userID, "create_order", "order", order.ID, bson.M{
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount.StringFixed(2),
	})

	c.JSON(http.StatusCreated, mapOrder(order))
}

func (s *Server) listOrders(c *gin.Context) {
	// Customers see only their own orders; admins see everyone's.
	userID := auth.UserID(c)
	if auth.IsAdmin(c) {
		userID = 0
	}

	orders, err := s.orders.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, mapOrder(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	order, err := s.orders.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if !auth.IsAdmin(c) && order.UserID != auth.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "access denied"})
		return
	}

	c.JSON(http.StatusOK, mapOrder(order))
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := s.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.auditLog(auth.UserID(c), "update_order_status", "order", order.ID,
		bson.M{"status": order.Status})

	c.JSON(http.StatusOK, mapOrder(order))
}

func (s *Server) listInvoices(c *gin.Context) {
	from, ok := queryDate(c, "start_date")
	if !ok {
		return
	}
	to, ok := queryDate(c, "end_date")
	if !ok {
		return
	}

	invoices, err := s.orders.Invoices(c.Request.Context(), auth.UserID(c), from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		resp = append(resp, mapInvoice(&invoices[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	invoice, err := s.orders.InvoiceByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if !auth.IsAdmin(c) && (invoice.Order == nil || invoice.Order.UserID != auth.UserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"message": "access denied"})
		return
	}

	c.JSON(http.StatusOK, mapInvoice(invoice))
}

func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": name + " must be formatted as YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}
