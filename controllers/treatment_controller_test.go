package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/services"
)

func treatmentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ai/treatment", GenerateTreatment)
	return r
}

func postTreatment(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/ai/treatment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateTreatmentValidation(t *testing.T) {
	r := treatmentRouter()

	w := postTreatment(r, `{"plantName":"Rice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "detectedDisease")
	assert.Contains(t, w.Body.String(), "observedSymptoms")
}

func TestGenerateTreatmentSuccess(t *testing.T) {
	orig := generateTreatment
	defer func() { generateTreatment = orig }()

	var captured services.TreatmentRequest
	generateTreatment = func(ctx context.Context, req services.TreatmentRequest) (*services.Treatment, error) {
		captured = req
		return &services.Treatment{
			DiseaseExplanation: "Blight is a fungal disease.",
			TreatmentRecommendations: services.TreatmentRecommendations{
				Both: "Combine neem oil with a copper fungicide.",
			},
			PreventiveMeasures:    "Rotate crops.",
			BestRecoveryPractices: "Remove infected leaves.",
			ExpertAdvice:          "Consult your local officer.",
		}, nil
	}

	r := treatmentRouter()
	w := postTreatment(r, `{"plantName":"Tomato","detectedDisease":"Blight","observedSymptoms":"brown spots"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "disease_explanation")
	assert.Contains(t, w.Body.String(), "Blight is a fungal disease.")
	assert.Equal(t, "Tomato", captured.PlantName)
}

func TestGenerateTreatmentServiceUnavailable(t *testing.T) {
	orig := generateTreatment
	defer func() { generateTreatment = orig }()

	generateTreatment = func(ctx context.Context, req services.TreatmentRequest) (*services.Treatment, error) {
		return nil, errors.New("upstream timeout")
	}

	r := treatmentRouter()
	w := postTreatment(r, `{"plantName":"Tomato","detectedDisease":"Blight","observedSymptoms":"brown spots"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}
