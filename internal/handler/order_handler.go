package handler

import (
	"net/http"
	"strconv"

	"medstore/internal/config"
	"medstore/internal/middleware"
	"medstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// customer side of /api/orders: cart plus own orders
type OrderHandler struct {
	cartUC  *usecase.CartUsecase
	orderUC *usecase.OrderUsecase
}

// DI
func NewOrderHandler(cartUC *usecase.CartUsecase, orderUC *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{cartUC: cartUC, orderUC: orderUC}
}

type AddToCartRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
}

type ReplaceItemsRequest struct {
	Items []ReplaceItemRequest `json:"items"`
}

type ReplaceItemRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
}

type ConfirmOrderRequest struct {
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	City          string `json:"city"`
	Street        string `json:"street"`
	Country       string `json:"country"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/my/current", h.getCart)
	g.POST("/add-to-cart", h.addToCart)
	g.PUT("/my/current", h.replaceItems)
	g.PUT("/:id/confirm", h.confirm)
	g.GET("/my", h.listMine)
}

func (h *OrderHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.cartUC.GetActiveCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) addToCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	out, err := h.cartUC.AddItem(c.Request().Context(), userID, usecase.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) replaceItems(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ReplaceItemsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.ReplaceItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.ReplaceItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Size,
		})
	}

	out, err := h.cartUC.ReplaceItems(c.Request().Context(), userID, items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) confirm(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ConfirmOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.ConfirmOrder(c.Request().Context(), userID, orderID, usecase.ConfirmOrderInput{
		FullName:      req.FullName,
		Phone:         req.Phone,
		City:          req.City,
		Street:        req.Street,
		Country:       req.Country,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.orderUC.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	id, ok := raw.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
