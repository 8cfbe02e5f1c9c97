package api

import (
	"errors"
	"net/http"

	"washbook/internal/domain/schedule"
	"washbook/internal/infra"
	"washbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogQueries  queries.CatalogQueries
	scheduleQueries queries.ScheduleQueries
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries, scheduleQueries queries.ScheduleQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogQueries:  catalogQueries,
		scheduleQueries: scheduleQueries,
	}
}

// @Summary List active services
// @Tags services
// @Produce json
// @Success 200 {array} queries.ServiceView
// @Router /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	views, err := h.catalogQueries.ListServices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Get a service by ID
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} queries.ServiceView
// @Failure 404 {object} map[string]string
// @Router /services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid service ID",
		})
		return
	}

	view, err := h.catalogQueries.GetService(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List prices of a service per vehicle type
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {array} queries.ServicePriceView
// @Router /services/{id}/prices [get]
func (h *CatalogHandler) ServicePrices(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid service ID",
		})
		return
	}

	prices, err := h.catalogQueries.ServicePrices(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, prices)
}

// @Summary List available time slots for a date
// @Tags schedule
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} queries.SlotView
// @Failure 400 {object} map[string]string
// @Router /appointments/available-slots [get]
func (h *CatalogHandler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'date' is required",
		})
		return
	}

	slots, err := h.scheduleQueries.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format, expected YYYY-MM-DD",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, slots)
}
