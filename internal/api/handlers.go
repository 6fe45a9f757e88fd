package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/RobertVMill/tech-news-tracker/internal/company"
	"github.com/RobertVMill/tech-news-tracker/internal/earnings"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	updates  *company.Service
	calendar *earnings.Calendar
	now      func() time.Time
}

func NewHandlers(updates *company.Service, calendar *earnings.Calendar) *Handlers {
	return &Handlers{
		updates:  updates,
		calendar: calendar,
		now:      time.Now,
	}
}

// CompanyUpdates serves GET /api/company-updates/:company.
func (h *Handlers) CompanyUpdates(c *gin.Context) {
	slug := c.Param("company")

	updates, err := h.updates.Updates(c.Request.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, company.ErrUnknownCompany):
			JSONError(c, http.StatusNotFound, "Unknown company")
		case errors.Is(err, company.ErrNoUpdates):
			JSONError(c, http.StatusNotFound, "No updates available")
		default:
			log.Printf("error fetching %s updates: %v", slug, err)
			JSONErrorWithDetails(c, http.StatusInternalServerError, "Failed to fetch updates", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

// ListCompanies serves GET /api/companies.
func (h *Handlers) ListCompanies(c *gin.Context) {
	companies := h.updates.Registry().Companies()

	result := make([]gin.H, 0, len(companies))
	for _, comp := range companies {
		result = append(result, gin.H{
			"slug": comp.Slug,
			"name": comp.Name,
		})
	}
	c.JSON(http.StatusOK, gin.H{"companies": result})
}

// EarningsCalendar serves GET /api/earnings-calendar.
func (h *Handlers) EarningsCalendar(c *gin.Context) {
	upcoming, recent := h.calendar.Split(h.now())
	c.JSON(http.StatusOK, gin.H{
		"upcoming": upcoming,
		"recent":   recent,
	})
}

// NewsSources serves GET /api/sources, the curated source directory.
func (h *Handlers) NewsSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sources": newsSources})
}
