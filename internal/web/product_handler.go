package web

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/agrimap/market/internal/catalog/app"
	catalogdomain "github.com/agrimap/market/internal/catalog/domain"
)

type ProductHandler struct {
	catalog *catalogapp.Service
	log     *slog.Logger
}

func NewProductHandler(catalog *catalogapp.Service, log *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log}
}

type createProductRequest struct {
	Name              string  `json:"name" binding:"required"`
	Description       string  `json:"description"`
	Price             float64 `json:"price" binding:"required"`
	ImageURL          string  `json:"image_url"`
	Region            string  `json:"region"`
	Category          string  `json:"category"`
	ProducerName      string  `json:"producer_name"`
	QuantityAvailable int     `json:"quantity_available"`
	Unit              string  `json:"unit"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_ARGUMENT", "detail": err.Error()})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), catalogdomain.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		ImageURL:          req.ImageURL,
		Region:            req.Region,
		Category:          req.Category,
		ProducerName:      req.ProducerName,
		QuantityAvailable: req.QuantityAvailable,
		Unit:              req.Unit,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	filter := catalogdomain.Filter{
		Region:   c.Query("region"),
		Category: c.Query("category"),
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if products == nil {
		products = []catalogdomain.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, product)
}
