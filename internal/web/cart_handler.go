package web

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/agrimap/market/internal/cart/app"
	cartdomain "github.com/agrimap/market/internal/cart/domain"
)

type CartHandler struct {
	cart *cartapp.Service
	log  *slog.Logger
}

func NewCartHandler(cart *cartapp.Service, log *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, log: log}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartLineResponse struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Quantity     int     `json:"quantity"`
	Total        float64 `json:"total"`
	ProducerName string  `json:"producer_name,omitempty"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total float64            `json:"total"`
}

// partition derives the cart scope for this request. A request with no
// identity at all has nowhere to put a cart.
func (h *CartHandler) partition(c *gin.Context) (cartdomain.Partition, bool) {
	p := cartdomain.ResolvePartition(actorFrom(c))
	if p.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_ARGUMENT", "detail": "missing session identity"})
		return cartdomain.Partition{}, false
	}
	return p, true
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_ARGUMENT", "detail": err.Error()})
		return
	}

	p, ok := h.partition(c)
	if !ok {
		return
	}

	line, err := h.cart.Add(c.Request.Context(), p, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": line.ProductID,
		"quantity":   line.Quantity,
	})
}

func (h *CartHandler) List(c *gin.Context) {
	p, ok := h.partition(c)
	if !ok {
		return
	}

	lines, err := h.cart.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := cartResponse{Items: make([]cartLineResponse, 0, len(lines))}
	for _, line := range lines {
		resp.Items = append(resp.Items, cartLineResponse{
			ProductID:    line.Line.ProductID,
			Name:         line.Product.Name,
			Price:        line.Product.Price,
			ImageURL:     line.Product.ImageURL,
			Unit:         line.Product.Unit,
			Quantity:     line.Line.Quantity,
			Total:        line.Total,
			ProducerName: line.Product.ProducerName,
		})
		resp.Total += line.Total
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_ARGUMENT", "detail": err.Error()})
		return
	}

	p, ok := h.partition(c)
	if !ok {
		return
	}

	if err := h.cart.SetQuantity(c.Request.Context(), p, c.Param("product_id"), req.Quantity); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	p, ok := h.partition(c)
	if !ok {
		return
	}

	if err := h.cart.Remove(c.Request.Context(), p, c.Param("product_id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}
