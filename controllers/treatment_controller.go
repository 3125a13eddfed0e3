package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/services"
)

// Seam for tests; production always points at the Gemini-backed service.
var generateTreatment = services.GenerateTreatment

// GenerateTreatment validates the disease description and forwards it to
// the external recommendation generator. Generator failures surface as 503
// and are never retried here; the caller may retry explicitly.
func GenerateTreatment(c *gin.Context) {
	var req services.TreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var missing []string
	if strings.TrimSpace(req.PlantName) == "" {
		missing = append(missing, "plantName is required")
	}
	if strings.TrimSpace(req.DetectedDisease) == "" {
		missing = append(missing, "detectedDisease is required")
	}
	if strings.TrimSpace(req.ObservedSymptoms) == "" {
		missing = append(missing, "observedSymptoms is required")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": strings.Join(missing, "; ")})
		return
	}

	treatment, err := generateTreatment(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Treatment service is currently unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"treatment": treatment})
}
