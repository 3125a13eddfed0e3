package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	req := TreatmentRequest{
		PlantName:        "Tomato",
		DetectedDisease:  "Blight",
		ObservedSymptoms: "brown spots",
	}
	req.ApplyDefaults()

	assert.Equal(t, "Medium", req.SeverityLevel)
	assert.Equal(t, "Moderate", req.SpreadRate)
	assert.Equal(t, "Both", req.PreferredTreatmentType)

	// Provided values are left alone.
	req = TreatmentRequest{SeverityLevel: "High", SpreadRate: "Fast", PreferredTreatmentType: "Organic"}
	req.ApplyDefaults()
	assert.Equal(t, "High", req.SeverityLevel)
	assert.Equal(t, "Fast", req.SpreadRate)
	assert.Equal(t, "Organic", req.PreferredTreatmentType)
}

func TestBuildTreatmentPrompt(t *testing.T) {
	req := TreatmentRequest{
		PlantName:              "Tomato",
		DetectedDisease:        "Blight",
		ObservedSymptoms:       "brown spots",
		WeatherConditions:      "humid",
		PreferredTreatmentType: "Organic",
		SeverityLevel:          "High",
		SpreadRate:             "Fast",
	}
	prompt := buildTreatmentPrompt(req)

	assert.Contains(t, prompt, "Tomato")
	assert.Contains(t, prompt, "Blight")
	assert.Contains(t, prompt, "brown spots")
	assert.Contains(t, prompt, "humid")
	assert.Contains(t, prompt, "disease_explanation")
	// Empty optionals stay out of the prompt.
	assert.NotContains(t, prompt, "Affected parts")
	assert.NotContains(t, prompt, "Previous disease history")
}

const sampleTreatmentJSON = `{
	"disease_explanation": "Late blight is caused by Phytophthora infestans.",
	"treatment_recommendations": {"organic": "Neem oil spray", "chemical": "Copper fungicide"},
	"preventive_measures": "Rotate crops and avoid overhead watering.",
	"best_recovery_practices": "Remove and burn infected foliage.",
	"expert_advice": "Monitor weekly during wet weather."
}`

func TestParseTreatment(t *testing.T) {
	treatment, err := parseTreatment(sampleTreatmentJSON)
	require.NoError(t, err)
	assert.Equal(t, "Neem oil spray", treatment.TreatmentRecommendations.Organic)
	assert.Equal(t, "Copper fungicide", treatment.TreatmentRecommendations.Chemical)
}

func TestParseTreatmentStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + sampleTreatmentJSON + "\n```"
	treatment, err := parseTreatment(fenced)
	require.NoError(t, err)
	assert.Contains(t, treatment.DiseaseExplanation, "Phytophthora")
}

func TestParseTreatmentCutsSurroundingProse(t *testing.T) {
	wrapped := "Here is your recommendation:\n" + sampleTreatmentJSON + "\nGood luck!"
	treatment, err := parseTreatment(wrapped)
	require.NoError(t, err)
	assert.Contains(t, treatment.PreventiveMeasures, "Rotate crops")
}

func TestParseTreatmentRejectsGarbage(t *testing.T) {
	_, err := parseTreatment("sorry, I cannot help with that")
	assert.Error(t, err)

	_, err = parseTreatment(`{"treatment_recommendations": {}}`)
	assert.Error(t, err)
}
