package http

import (
	"errors"

	"shop-service/internal/domain"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ActiveOrders(c *gin.Context) {
	orders, err := h.svc.Orders.FindOrders(c.Request.Context(), customerID(c), domain.StatusBasket)
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, orders)
}

func (h *Handler) ActiveOrdersForProduct(c *gin.Context) {
	productID, ok := parseID(c, "productid")
	if !ok {
		return
	}
	probes, err := h.svc.Orders.FindOrderForProduct(c.Request.Context(), customerID(c), productID)
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, probes)
}

// Basket lists the lines of the customer's orders in the requested status.
// Anonymous visitors get an empty basket.
func (h *Handler) Basket(c *gin.Context) {
	id := customerID(c)
	if id == 0 {
		outcome(c, []domain.OrderLine{})
		return
	}
	lines, err := h.svc.Orders.ListBasket(c.Request.Context(), id, domain.OrderStatus(c.Param("orderstatus")))
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, lines)
}

func (h *Handler) CreateBasket(c *gin.Context) {
	order, err := h.svc.Orders.CreateBasket(c.Request.Context(), customerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, writeResult{AffectedRows: 1, InsertID: order.ID})
}

func (h *Handler) AddLine(c *gin.Context) {
	orderID, ok := parseID(c, "orderid")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productid")
	if !ok {
		return
	}
	rows, err := h.svc.Orders.AddLine(c.Request.Context(), customerID(c), orderID, productID)
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, writeResult{AffectedRows: rows})
}

func (h *Handler) SetLineQuantity(c *gin.Context) {
	orderID, ok := parseID(c, "orderid")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productid")
	if !ok {
		return
	}
	qty, ok := parseInt(c, "productqty")
	if !ok {
		return
	}
	rows, err := h.svc.Orders.SetLineQuantity(c.Request.Context(), customerID(c), orderID, productID, qty)
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, writeResult{AffectedRows: rows})
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		danger(c, err.Error())
		return
	}
	result, err := h.svc.Checkout.PlaceOrder(c.Request.Context(), customerID(c), req.checkout())
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, result)
}

func (h *Handler) PreviousOrders(c *gin.Context) {
	orders, err := h.svc.Orders.PreviousOrders(c.Request.Context(), customerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := gin.H{"orders": orders}
	if sess := currentSession(c); sess != nil {
		resp["userEmail"] = sess.Email
		resp["userFname"] = sess.FirstName
	}
	outcome(c, resp)
}

func (h *Handler) LatestOrder(c *gin.Context) {
	order, err := h.svc.Orders.LatestOrder(c.Request.Context(), customerID(c))
	if errors.Is(err, services.ErrOrderNotFound) {
		outcome(c, []domain.OrderSummary{})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, []domain.OrderSummary{*order})
}

func (h *Handler) OrderDetails(c *gin.Context) {
	orderID, ok := parseID(c, "orderid")
	if !ok {
		return
	}
	receipt, err := h.svc.Orders.OrderDetails(c.Request.Context(), customerID(c), orderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, receipt)
}
