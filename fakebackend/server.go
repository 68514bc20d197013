// Package fakebackend is an in-memory double of the storefront REST API,
// used for local development and integration tests. It implements every
// endpoint the client consumes against maps guarded by one mutex; it is not
// a production server.
package fakebackend

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/deliverylivre/storefront/logger"
	"github.com/deliverylivre/storefront/models"
)

type account struct {
	user     models.User
	password string
}

type cartLine struct {
	id        int
	productID int
	quantity  int
}

type orderRecord struct {
	order     models.Order
	userID    int
	companyID int
}

// Server holds the in-memory state behind the API double.
type Server struct {
	pixTTL time.Duration
	now    func() time.Time

	mu        sync.Mutex
	nextID    int
	accounts  map[int]*account
	tokens    map[string]int
	companies map[int]*models.Company
	products  map[int]*models.Product
	carts     map[int][]cartLine
	orders    map[int]*orderRecord
	drivers   map[int]*models.Driver
	banners   map[int]*models.Banner
	ceps      map[string]cepEntry
}

type cepEntry struct {
	Street       string
	Neighborhood string
	City         string
	State        string
}

// Option configures the server.
type Option func(*Server)

// WithPixTTL sets the expiry window of issued PIX codes.
func WithPixTTL(ttl time.Duration) Option {
	return func(s *Server) { s.pixTTL = ttl }
}

// WithClock overrides the server's clock.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates an empty server. Call Seed for demo data.
func New(opts ...Option) *Server {
	s := &Server{
		pixTTL:    5 * time.Minute,
		now:       time.Now,
		nextID:    1,
		accounts:  make(map[int]*account),
		tokens:    make(map[string]int),
		companies: make(map[int]*models.Company),
		products:  make(map[int]*models.Product),
		carts:     make(map[int][]cartLine),
		orders:    make(map[int]*orderRecord),
		drivers:   make(map[int]*models.Driver),
		banners:   make(map[int]*models.Banner),
		ceps:      make(map[string]cepEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// id allocates the next numeric id. Callers hold s.mu.
func (s *Server) id() int {
	id := s.nextID
	s.nextID++
	return id
}

// Handler builds the gin engine with every consumed route registered.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger())

	router.POST("/login", s.login)
	router.POST("/register", s.register)
	router.POST("/forgot-password", s.forgotPassword)
	router.GET("/cep/:cep", s.cepLookup)

	authed := router.Group("/", s.requireAuth())
	{
		authed.GET("/clients/me", s.me)
		authed.POST("/clients/updateProfile", s.updateProfile)
		authed.DELETE("/clients/addresses/:id", s.removeAddress)

		authed.GET("/cart", s.getCart)
		authed.POST("/cart", s.addToCart)
		authed.PUT("/cart/items/:id/increment", s.incrementItem)
		authed.PUT("/cart/items/:id/decrement", s.decrementItem)
		authed.DELETE("/cart/items/:id", s.removeItem)
		authed.POST("/cart/checkout", s.checkout)
		authed.POST("/delivery/calc", s.deliveryCalc)

		authed.GET("/orders", s.clientOrders)
		authed.PUT("/orders-client/:id/status", s.updateClientOrderStatus)
		authed.GET("/orders-driver/:id/pix", s.pixCode)

		authed.GET("/orders-store", s.storeOrders)
		authed.PATCH("/orders-store/:id/status", s.updateStoreOrderStatus)

		authed.GET("/companies-with-products", s.companiesWithProducts)
		authed.GET("/categories", s.categories)

		authed.GET("/companies", s.listCompanies)
		authed.GET("/companies/me", s.companyMe)
		authed.POST("/companies", s.createCompany)
		authed.PUT("/companies/:id", s.updateCompany)
		authed.DELETE("/companies/:id", s.deleteCompany)
		authed.POST("/companies/addInfo", s.companyAddInfo)

		authed.GET("/products", s.listProducts)
		authed.POST("/products", s.saveProduct)
		authed.POST("/products/:id", s.saveProduct)
		authed.DELETE("/products/:id", s.deleteProduct)

		authed.GET("/drivers", s.listDrivers)
		authed.POST("/drivers", s.createDriver)
		authed.PUT("/drivers/:id", s.updateDriver)
		authed.DELETE("/drivers/:id", s.deleteDriver)

		authed.GET("/banners", s.listBanners)
		authed.POST("/banners", s.createBanner)
		authed.PUT("/banners/:id", s.updateBanner)
		authed.DELETE("/banners/:id", s.deleteBanner)
		authed.GET("/banners-company", s.companyBanners)
	}

	return router
}

const userIDKey = "user_id"

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated"})
			return
		}

		s.mu.Lock()
		userID, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (s *Server) currentUser(c *gin.Context) *account {
	userID := c.GetInt(userIDKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[userID]
}

func newToken() string {
	return uuid.NewString()
}
