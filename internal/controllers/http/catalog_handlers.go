package http

import (
	"errors"
	"net/http"

	"shop-service/internal/domain"
	"shop-service/internal/repository"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) categories(c *gin.Context, activeOnly bool) {
	categories, err := h.svc.Catalog.Categories(c.Request.Context(), activeOnly)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) Categories(c *gin.Context)       { h.categories(c, false) }
func (h *Handler) ActiveCategories(c *gin.Context) { h.categories(c, true) }

func (h *Handler) products(c *gin.Context, products []domain.ProductView, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if products == nil {
		products = []domain.ProductView{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) Products(c *gin.Context) {
	products, err := h.svc.Stock.ListProducts(c.Request.Context(), repository.ProductQuery{})
	h.products(c, products, err)
}

func (h *Handler) NewArrivals(c *gin.Context) {
	products, err := h.svc.Stock.NewArrivals(c.Request.Context())
	h.products(c, products, err)
}

func (h *Handler) BestSellers(c *gin.Context) {
	products, err := h.svc.Stock.BestSellers(c.Request.Context())
	h.products(c, products, err)
}

func (h *Handler) OnSale(c *gin.Context) {
	products, err := h.svc.Stock.OnSale(c.Request.Context())
	h.products(c, products, err)
}

func (h *Handler) ProductsInCategory(c *gin.Context) {
	products, err := h.svc.Stock.InCategory(c.Request.Context(), c.Param("id"), "")
	h.products(c, products, err)
}

// SearchProducts searches the whole catalog by name whatever category the
// storefront is showing.
func (h *Handler) SearchProducts(c *gin.Context) {
	products, err := h.svc.Stock.InCategory(c.Request.Context(), "all", c.Param("searchfilter"))
	h.products(c, products, err)
}

func (h *Handler) Product(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Stock.GetProduct(c.Request.Context(), id)
	if errors.Is(err, services.ErrProductNotFound) {
		h.products(c, nil, nil)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.products(c, []domain.ProductView{*p}, nil)
}

func (h *Handler) UpdateStock(c *gin.Context) {
	id, ok := parseID(c, "productid")
	if !ok {
		return
	}
	delta, ok := parseInt(c, "productqty")
	if !ok {
		return
	}
	if err := h.svc.Stock.AdjustStock(c.Request.Context(), id, delta); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			outcome(c, writeResult{})
			return
		}
		h.fail(c, err)
		return
	}
	outcome(c, writeResult{AffectedRows: 1})
}

func (h *Handler) Discounts(c *gin.Context) {
	discounts, err := h.svc.Catalog.Discounts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, discounts)
}

// CheckDiscount answers with the matching active code, or an empty list.
func (h *Handler) CheckDiscount(c *gin.Context) {
	d, err := h.svc.Catalog.CheckDiscount(c.Request.Context(), c.Param("discountcode"))
	if errors.Is(err, services.ErrDiscountNotFound) {
		outcome(c, []domain.DiscountCode{})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, []domain.DiscountCode{*d})
}

func (h *Handler) DeliveryOptions(c *gin.Context) {
	options, err := h.svc.Catalog.DeliveryOptions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, options)
}
