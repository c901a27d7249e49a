package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"maison/internal/domain"
	"maison/internal/repository"
	"maison/internal/service"
)

type Server struct {
	engine   *gin.Engine
	catalog  *service.CatalogService
	cart     *service.CartService
	pricing  *service.PricingService
	checkout *service.CheckoutService
}

func NewServer(catalog *service.CatalogService, cart *service.CartService, pricing *service.PricingService, checkout *service.CheckoutService) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{engine: r, catalog: catalog, cart: cart, pricing: pricing, checkout: checkout}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/products", s.listProducts)
		v1.GET("/products/:slug", s.getProduct)
		v1.GET("/search", s.search)
		v1.GET("/new-arrivals", s.newArrivals)

		cart := v1.Group("/cart")
		cart.GET("", s.getCart)
		cart.DELETE("", s.clearCart)
		cart.POST("/items", s.addItem)
		cart.PUT("/items/:id", s.updateItem)
		cart.DELETE("/items/:id", s.removeItem)
		cart.POST("/coupon", s.applyCoupon)
		cart.PUT("/shipping", s.setShipping)

		v1.POST("/checkout", s.checkoutOrder)
	}
}

// Catalog handlers

// @Summary Query catalog
// @Tags catalog
// @Produce json
// @Param category query string false "Category (All, Furniture, Lighting, Decor, Textiles)"
// @Param price query string false "Price bucket (all, under50, 50to150, over150)"
// @Param sort query string false "Sort (recommended, newest, priceLow, priceHigh)"
// @Param q query string false "Name or description contains"
// @Param visible query int false "Visible count cursor, page size 8"
// @Success 200 {object} service.QueryResult
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	p := service.QueryParams{
		Category: domain.Category(c.DefaultQuery("category", string(domain.CategoryAll))),
		Price:    domain.PriceBucket(c.DefaultQuery("price", string(domain.PriceAll))),
		Sort:     domain.SortOrder(c.DefaultQuery("sort", string(domain.SortRecommended))),
		Query:    c.Query("q"),
	}
	if v := c.Query("visible"); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			p.Visible = x
		}
	}
	res, err := s.catalog.Query(c, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get product by slug
// @Tags catalog
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{slug} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.catalog.GetBySlug(c, c.Param("slug"))
	if err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Search products
// @Tags catalog
// @Produce json
// @Param q query string false "Name or description contains"
// @Param min_price query number false "Min price"
// @Param max_price query number false "Max price"
// @Success 200 {array} domain.Product
// @Router /search [get]
func (s *Server) search(c *gin.Context) {
	var minPrice, maxPrice *float64
	if v := c.Query("min_price"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			minPrice = &x
		}
	}
	if v := c.Query("max_price"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			maxPrice = &x
		}
	}
	list, err := s.catalog.Search(c, c.Query("q"), minPrice, maxPrice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary List new arrivals
// @Tags catalog
// @Produce json
// @Param limit query int false "Max items"
// @Success 200 {array} domain.Product
// @Router /new-arrivals [get]
func (s *Server) newArrivals(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			limit = x
		}
	}
	list, err := s.catalog.NewArrivals(c, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Cart handlers

type cartView struct {
	Items    []domain.CartItem     `json:"items"`
	Totals   domain.Totals         `json:"totals"`
	Coupon   string                `json:"coupon,omitempty"`
	Shipping domain.ShippingMethod `json:"shipping"`
}

func (s *Server) cartViewNow(c *gin.Context) cartView {
	items := s.cart.Items()
	view := cartView{
		Items:    s.pricing.Reconcile(c, items),
		Totals:   s.pricing.Quote(c, items),
		Shipping: s.pricing.Shipping(),
	}
	if cp := s.pricing.Coupon(); cp != nil {
		view.Coupon = cp.Code
	}
	return view
}

// @Summary Get cart with totals
// @Tags cart
// @Produce json
// @Success 200 {object} cartView
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, s.cartViewNow(c))
}

type addItemReq struct {
	ID string `json:"id"`
}

// @Summary Add product to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param input body addItemReq true "Product id"
// @Success 200 {object} cartView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (s *Server) addItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	id, err := strconv.ParseInt(req.ID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := s.catalog.GetByID(c, id)
	if err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	item := domain.CartItem{ID: req.ID, Name: p.Name, Price: p.Price, Image: p.Image}
	if err := s.cart.AddItem(c, item); err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.cartViewNow(c))
}

type updateItemReq struct {
	Quantity int64 `json:"quantity"`
}

// @Summary Set item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param input body updateItemReq true "Quantity; zero or below removes the item"
// @Success 200 {object} cartView
// @Failure 400 {object} map[string]string
// @Router /cart/items/{id} [put]
func (s *Server) updateItem(c *gin.Context) {
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.cart.UpdateQuantity(c, c.Param("id"), req.Quantity); err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.cartViewNow(c))
}

// @Summary Remove item from cart
// @Tags cart
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} cartView
// @Router /cart/items/{id} [delete]
func (s *Server) removeItem(c *gin.Context) {
	if err := s.cart.RemoveItem(c, c.Param("id")); err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.cartViewNow(c))
}

// @Summary Clear cart
// @Tags cart
// @Success 204
// @Router /cart [delete]
func (s *Server) clearCart(c *gin.Context) {
	if err := s.cart.Clear(c); err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type applyCouponReq struct {
	Code string `json:"code"`
}

// @Summary Apply coupon code
// @Tags cart
// @Accept json
// @Produce json
// @Param input body applyCouponReq true "Coupon code"
// @Success 200 {object} cartView
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cart/coupon [post]
func (s *Server) applyCoupon(c *gin.Context) {
	var req applyCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if _, err := s.pricing.ApplyCoupon(req.Code); err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.cartViewNow(c))
}

type setShippingReq struct {
	Method domain.ShippingMethod `json:"method"`
}

// @Summary Select shipping method
// @Tags cart
// @Accept json
// @Produce json
// @Param input body setShippingReq true "Shipping method (free, express, pickup)"
// @Success 200 {object} cartView
// @Failure 400 {object} map[string]string
// @Router /cart/shipping [put]
func (s *Server) setShipping(c *gin.Context) {
	var req setShippingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.pricing.SetShipping(req.Method); err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.cartViewNow(c))
}

// Checkout

// @Summary Finalize order
// @Tags checkout
// @Produce json
// @Success 201 {object} domain.Order
// @Failure 409 {object} map[string]string
// @Router /checkout [post]
func (s *Server) checkoutOrder(c *gin.Context) {
	o, err := s.checkout.FinalizeOrder(c)
	if err != nil {
		status := mapErrorToStatus(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, o)
}

func mapErrorToStatus(err error) int {
	switch err {
	case service.ErrInvalidInput:
		return http.StatusBadRequest
	case service.ErrUnknownShipping:
		return http.StatusBadRequest
	case repository.ErrNotFound:
		return http.StatusNotFound
	case service.ErrInvalidCoupon:
		return http.StatusUnprocessableEntity
	case service.ErrCouponApplied:
		return http.StatusConflict
	case service.ErrEmptyCart:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
