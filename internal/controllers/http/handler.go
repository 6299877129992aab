package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop-service/internal/infra/session"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services groups everything the handlers call into.
type Services struct {
	Orders     *services.OrderService
	Checkout   *services.CheckoutService
	Stock      *services.StockService
	Catalog    *services.CatalogService
	Customers  *services.CustomerService
	Favourites *services.FavouriteService
}

type Options struct {
	CookieName   string
	CookieTTL    time.Duration
	SecureCookie bool
	CORSOrigin   string
	UploadDir    string
}

type Handler struct {
	svc      Services
	sessions session.StoreInterface
	opts     Options
	health   func(ctx context.Context) error
	now      services.Clock
	logger   *zap.Logger
}

func NewHandler(svc Services, sessions session.StoreInterface, opts Options, logger *zap.Logger) *Handler {
	return &Handler{
		svc:      svc,
		sessions: sessions,
		opts:     opts,
		health:   func(context.Context) error { return nil },
		now:      services.SystemClock,
		logger:   logger,
	}
}

// SetHealthCheck sets what /healthz probes.
func (h *Handler) SetHealthCheck(f func(ctx context.Context) error) {
	h.health = f
}

func (h *Handler) SetClock(c services.Clock) {
	h.now = c
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(requestLogger(h.logger), cors(h.opts.CORSOrigin), h.loadSession)

	r.GET("/healthz", h.Healthz)
	r.Static(strings.TrimSuffix(services.ImagePath, "/"), h.opts.UploadDir)

	r.POST("/signup", h.SignUp)
	r.POST("/signin", h.SignIn)
	r.DELETE("/logout", h.Logout)
	r.GET("/getsession", h.GetSession)
	r.GET("/checksession", h.CheckSession)
	r.GET("/checksession/admin", h.CheckAdminSession)

	r.GET("/categories", h.Categories)
	r.GET("/categories/active", h.ActiveCategories)
	r.GET("/discounts", h.Discounts)
	r.POST("/checkdiscount/code/:discountcode", h.CheckDiscount)

	products := r.Group("/products")
	{
		products.GET("", h.Products)
		products.GET("/buttNewArrivals", h.NewArrivals)
		products.GET("/buttBestSellers", h.BestSellers)
		products.GET("/buttSale", h.OnSale)
		products.GET("/category/:id", h.ProductsInCategory)
		products.GET("/category/:id/search/", h.Products)
		products.GET("/category/:id/search/:searchfilter", h.SearchProducts)
		products.GET("/:id", h.Product)
	}
	r.POST("/update/stock/product/:productid/productqty/:productqty", h.requireAdmin, h.UpdateStock)

	r.POST("/order/checkactiveorders", h.ActiveOrders)
	r.POST("/order/checkactiveorders/product/:productid", h.ActiveOrdersForProduct)
	r.POST("/order/getbasket/orderstatus/:orderstatus", h.Basket)
	r.GET("/order/getdeliveryoptions", h.DeliveryOptions)
	r.GET("/getorders", h.PreviousOrders)
	r.GET("/getorder/latest", h.LatestOrder)
	r.GET("/getorders/orderid/:orderid", h.OrderDetails)
	r.GET("/favourties", h.Favourites)

	customer := r.Group("", h.requireCustomer)
	{
		customer.POST("/order/create", h.CreateBasket)
		customer.POST("/orderdetails/add/order/:orderid/product/:productid", h.AddLine)
		customer.POST("/orderdetails/update/order/:orderid/product/:productid/productqty/:productqty", h.SetLineQuantity)
		customer.POST("/order/placeorder", h.PlaceOrder)
		customer.POST("/favourites/add/prod/:prodId", h.AddFavourite)
		customer.POST("/favourites/del/prod/:prodId", h.RemoveFavourite)
	}

	admin := r.Group("/admin", h.requireAdmin)
	{
		admin.POST("/product/add", h.AddProduct)
		admin.POST("/product/edit", h.EditProduct)
		admin.POST("/product/del", h.DeleteProduct)
		admin.POST("/category/add", h.AddCategory)
		admin.POST("/category/edit", h.EditCategory)
		admin.POST("/category/del", h.DeleteCategory)
		admin.POST("/discount/add", h.AddDiscount)
		admin.POST("/discount/edit", h.EditDiscount)
		admin.POST("/discount/del", h.DeleteDiscount)
	}
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.health(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
