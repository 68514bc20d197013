package fakebackend

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deliverylivre/storefront/models"
)

func (s *Server) listBanners(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	banners := []models.Banner{}
	for _, banner := range s.banners {
		banners = append(banners, *banner)
	}
	c.JSON(http.StatusOK, banners)
}

func (s *Server) createBanner(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil || banner.Title == "" || banner.ImageURL == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "title and image are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	banner.ID = s.id()
	s.banners[banner.ID] = &banner
	c.JSON(http.StatusCreated, banner)
}

func (s *Server) updateBanner(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.banners[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "banner not found"})
		return
	}
	banner.ID = id
	s.banners[id] = &banner
	c.JSON(http.StatusOK, banner)
}

func (s *Server) deleteBanner(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.banners, id)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) listCompanies(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	companies := []models.Company{}
	for _, company := range s.companies {
		companies = append(companies, *company)
	}
	c.JSON(http.StatusOK, companies)
}

type companyPayload struct {
	models.Company
	Admin models.CompanyAdmin `json:"admin"`
}

func (s *Server) createCompany(c *gin.Context) {
	var req companyPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.CNPJ == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	company := req.Company
	company.ID = s.id()
	company.Active = true
	s.companies[company.ID] = &company

	// Provision the store administrator account alongside the company.
	if req.Admin.Email != "" {
		user := models.User{
			ID:    s.id(),
			Name:  req.Admin.Name,
			Email: req.Admin.Email,
			Role:  models.RoleStore,
		}
		s.accounts[user.ID] = &account{user: user, password: req.Admin.Password}
		if company.Email == "" {
			company.Email = req.Admin.Email
		}
	}

	c.JSON(http.StatusCreated, company)
}

func (s *Server) updateCompany(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req companyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.companies[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "company not found"})
		return
	}
	company := req.Company
	company.ID = id
	if company.Email == "" {
		company.Email = existing.Email
	}
	s.companies[id] = &company
	c.JSON(http.StatusOK, company)
}

func (s *Server) deleteCompany(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.companies, id)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
