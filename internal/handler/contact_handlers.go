package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"folklore-server/internal/models"
)

// submitContact handles POST /api/contact. The contact form is stored as
// submitted; no field is mandatory.
func (h *APIHandler) submitContact(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
		})
		return
	}

	stored, err := h.contacts.Insert(c.Request.Context(), &contact)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	contactMessagesTotal.Inc()

	c.JSON(http.StatusOK, contactResponse{Success: true, Contact: stored})
}
