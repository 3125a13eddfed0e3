package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TreatmentRequest describes a diagnosed plant issue. The three required
// fields are validated at the HTTP boundary; the rest carry defaults.
type TreatmentRequest struct {
	PlantName              string `json:"plantName"`
	DetectedDisease        string `json:"detectedDisease"`
	ObservedSymptoms       string `json:"observedSymptoms"`
	AffectedParts          string `json:"affectedParts"`
	SeverityLevel          string `json:"severityLevel"`
	SpreadRate             string `json:"spreadRate"`
	WeatherConditions      string `json:"weatherConditions"`
	PreferredTreatmentType string `json:"preferredTreatmentType"`
	PreviousDiseaseHistory string `json:"previousDiseaseHistory"`
}

type TreatmentRecommendations struct {
	Organic  string `json:"organic,omitempty"`
	Chemical string `json:"chemical,omitempty"`
	Both     string `json:"both,omitempty"`
}

type Treatment struct {
	DiseaseExplanation       string                   `json:"disease_explanation"`
	TreatmentRecommendations TreatmentRecommendations `json:"treatment_recommendations"`
	PreventiveMeasures       string                   `json:"preventive_measures"`
	BestRecoveryPractices    string                   `json:"best_recovery_practices"`
	ExpertAdvice             string                   `json:"expert_advice"`
}

// ApplyDefaults fills the optional fields the caller left empty.
func (r *TreatmentRequest) ApplyDefaults() {
	if r.SeverityLevel == "" {
		r.SeverityLevel = "Medium"
	}
	if r.SpreadRate == "" {
		r.SpreadRate = "Moderate"
	}
	if r.PreferredTreatmentType == "" {
		r.PreferredTreatmentType = "Both"
	}
}

func buildTreatmentPrompt(req TreatmentRequest) string {
	var b strings.Builder
	b.WriteString("You are an agricultural expert. A farmer reports the following plant disease case:\n")
	fmt.Fprintf(&b, "- Plant: %s\n", req.PlantName)
	fmt.Fprintf(&b, "- Detected disease: %s\n", req.DetectedDisease)
	fmt.Fprintf(&b, "- Observed symptoms: %s\n", req.ObservedSymptoms)
	if req.AffectedParts != "" {
		fmt.Fprintf(&b, "- Affected parts: %s\n", req.AffectedParts)
	}
	fmt.Fprintf(&b, "- Severity level: %s\n", req.SeverityLevel)
	fmt.Fprintf(&b, "- Spread rate: %s\n", req.SpreadRate)
	if req.WeatherConditions != "" {
		fmt.Fprintf(&b, "- Weather conditions: %s\n", req.WeatherConditions)
	}
	fmt.Fprintf(&b, "- Preferred treatment type: %s\n", req.PreferredTreatmentType)
	if req.PreviousDiseaseHistory != "" {
		fmt.Fprintf(&b, "- Previous disease history: %s\n", req.PreviousDiseaseHistory)
	}
	b.WriteString("\nRespond with a single JSON object and nothing else, using exactly these keys: ")
	b.WriteString(`disease_explanation, treatment_recommendations (an object with optional keys organic, chemical, both matching the preferred treatment type), preventive_measures, best_recovery_practices, expert_advice.`)
	return b.String()
}

// parseTreatment extracts the Treatment object from the model reply,
// tolerating markdown code fences around the JSON.
func parseTreatment(raw string) (*Treatment, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	// Some replies wrap the JSON in prose; cut to the outermost braces.
	if start := strings.Index(cleaned, "{"); start > 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	var treatment Treatment
	if err := json.Unmarshal([]byte(cleaned), &treatment); err != nil {
		return nil, fmt.Errorf("cannot parse treatment JSON: %v", err)
	}
	if treatment.DiseaseExplanation == "" {
		return nil, fmt.Errorf("treatment reply missing disease_explanation")
	}
	return &treatment, nil
}

// GenerateTreatment forwards the request to Gemini and returns the parsed
// recommendation. Errors are surfaced as-is; the caller decides whether to
// retry, this service never does.
func GenerateTreatment(ctx context.Context, req TreatmentRequest) (*Treatment, error) {
	req.ApplyDefaults()

	raw, err := GeminiGenerateText(ctx, buildTreatmentPrompt(req))
	if err != nil {
		return nil, err
	}
	return parseTreatment(raw)
}
