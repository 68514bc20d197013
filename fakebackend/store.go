package fakebackend

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/deliverylivre/storefront/models"
)

// companyForUser resolves the company owned by a store-role user. The
// double keys ownership by matching emails. Callers hold s.mu.
func (s *Server) companyForUser(userID int) *models.Company {
	acc := s.accounts[userID]
	if acc == nil {
		return nil
	}
	for _, company := range s.companies {
		if company.Email == acc.user.Email {
			return company
		}
	}
	return nil
}

func (s *Server) storeOrders(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	company := s.companyForUser(userID)
	orders := []models.Order{}
	for _, rec := range s.orders {
		if company != nil && rec.companyID == company.ID {
			orders = append(orders, rec.order)
		}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

var storeTransitions = map[string]bool{
	models.OrderProcessing:     true,
	models.OrderReadyForPickup: true,
	models.OrderCompleted:      true,
	models.OrderCanceled:       true,
}

func (s *Server) updateStoreOrderStatus(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !storeTransitions[req.Status] {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid status"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.orders[orderID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}
	rec.order.Status = req.Status
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func (s *Server) companyMe(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	company := s.companyForUser(userID)
	if company == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "company not found"})
		return
	}
	c.JSON(http.StatusOK, company)
}

func (s *Server) companyAddInfo(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	company := s.companyForUser(userID)
	if company == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "company not found"})
		return
	}

	if v := c.PostForm("final_name"); v != "" {
		company.FinalName = v
	}
	if v := c.PostForm("phone"); v != "" {
		company.Phone = v
	}
	if v := c.PostForm("category"); v != "" {
		company.Category = v
	}
	if v := c.PostForm("status"); v != "" {
		company.Status = v
	}
	if v := c.PostForm("delivery_fee"); v != "" {
		if fee, err := decimal.NewFromString(v); err == nil {
			company.DeliveryFee = fee
		}
	}
	company.FreeShipping = c.PostForm("free_shipping") == "1"

	company.FirstPurchaseDiscountStore = c.PostForm("first_purchase_discount_store") == "1"
	if v := c.PostForm("first_purchase_discount_store_value"); v != "" {
		if pct, err := decimal.NewFromString(v); err == nil {
			company.FirstPurchaseDiscountStoreValue = decimal.NewNullDecimal(pct)
		}
	} else {
		company.FirstPurchaseDiscountStoreValue = decimal.NullDecimal{}
	}
	company.FirstPurchaseDiscountApp = c.PostForm("first_purchase_discount_app") == "1"
	if v := c.PostForm("first_purchase_discount_app_value"); v != "" {
		if pct, err := decimal.NewFromString(v); err == nil {
			company.FirstPurchaseDiscountAppValue = decimal.NewNullDecimal(pct)
		}
	} else {
		company.FirstPurchaseDiscountAppValue = decimal.NullDecimal{}
	}

	c.JSON(http.StatusOK, company)
}

func (s *Server) listProducts(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	company := s.companyForUser(userID)
	products := []models.Product{}
	for _, product := range s.products {
		if company == nil || product.CompanyID == company.ID {
			products = append(products, *product)
		}
	}
	c.JSON(http.StatusOK, products)
}

// saveProduct handles both POST /products and the Laravel-style update
// POST /products/:id?_method=PUT.
func (s *Server) saveProduct(c *gin.Context) {
	userID := c.GetInt(userIDKey)
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "name is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var product *models.Product
	if idParam := c.Param("id"); idParam != "" {
		if c.Query("_method") != "PUT" {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "expected _method=PUT"})
			return
		}
		id, _ := strconv.Atoi(idParam)
		existing, ok := s.products[id]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		product = existing
	} else {
		product = &models.Product{ID: s.id(), Status: models.ProductActive}
		if company := s.companyForUser(userID); company != nil {
			product.CompanyID = company.ID
		}
		s.products[product.ID] = product
	}

	product.Name = name
	product.Description = c.PostForm("description")
	if v := c.PostForm("price"); v != "" {
		if price, err := decimal.NewFromString(v); err == nil {
			product.Price = price
		}
	}
	if v := c.PostForm("stock_quantity"); v != "" {
		if stock, err := strconv.Atoi(v); err == nil {
			product.StockQuantity = stock
		}
	}
	if v := c.PostForm("status"); v != "" {
		product.Status = v
	}
	if v := c.PostForm("category"); v != "" {
		product.Category = v
	}

	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	delete(s.products, id)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) listDrivers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drivers := []models.Driver{}
	for _, driver := range s.drivers {
		drivers = append(drivers, *driver)
	}
	c.JSON(http.StatusOK, drivers)
}

type driverPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
	Plate   string `json:"plate"`
	Status  string `json:"status"`
}

func (s *Server) createDriver(c *gin.Context) {
	var req driverPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	driver := &models.Driver{
		ID:      s.id(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Vehicle: req.Vehicle,
		Plate:   req.Plate,
		Status:  req.Status,
	}
	s.drivers[driver.ID] = driver
	c.JSON(http.StatusCreated, driver)
}

func (s *Server) updateDriver(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req driverPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	driver, ok := s.drivers[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "driver not found"})
		return
	}
	driver.Name = req.Name
	driver.Email = req.Email
	driver.Phone = req.Phone
	driver.Vehicle = req.Vehicle
	driver.Plate = req.Plate
	driver.Status = req.Status
	c.JSON(http.StatusOK, driver)
}

func (s *Server) deleteDriver(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drivers, id)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) companyBanners(c *gin.Context) {
	userID := c.GetInt(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	company := s.companyForUser(userID)
	banners := []models.Banner{}
	for _, banner := range s.banners {
		if banner.TargetCompanyID == nil {
			continue
		}
		if company != nil && *banner.TargetCompanyID == company.ID {
			banners = append(banners, *banner)
		}
	}
	c.JSON(http.StatusOK, banners)
}
