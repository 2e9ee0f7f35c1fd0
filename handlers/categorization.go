package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendlens/insight-api/models"
	"github.com/spendlens/insight-api/services"
	"github.com/spendlens/insight-api/utils"
)

// CategorizationHandler exposes the keyword categorizer.
type CategorizationHandler struct {
	Categorizer *services.CategorizerService
}

func NewCategorizationHandler(categorizer *services.CategorizerService) *CategorizationHandler {
	return &CategorizationHandler{Categorizer: categorizer}
}

// Categorize predicts a category for one transaction description.
func (h *CategorizationHandler) Categorize(c *gin.Context) {
	var req models.CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	utils.SafeDebug("[Categorizer] categorizing %q", utils.MaskString(req.Description))

	resp, err := h.Categorizer.Categorize(req)
	if err != nil {
		respondError(c, "categorization", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
