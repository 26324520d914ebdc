package model

import (
	"fmt"
	"strings"
)

// Modality classifies the shape of the proposed solution and selects
// the threshold set used by the market computations
type Modality string

const (
	ModalitySoftware        Modality = "SOFTWARE"
	ModalityService         Modality = "SERVICE"
	ModalityPhysicalProduct Modality = "PHYSICAL_PRODUCT"
	ModalityHybrid          Modality = "HYBRID"
)

// ParseModality maps user input to a Modality, defaulting to SOFTWARE
func ParseModality(s string) (Modality, error) {
	switch Modality(strings.ToUpper(strings.TrimSpace(s))) {
	case ModalitySoftware, "":
		return ModalitySoftware, nil
	case ModalityService:
		return ModalityService, nil
	case ModalityPhysicalProduct:
		return ModalityPhysicalProduct, nil
	case ModalityHybrid:
		return ModalityHybrid, nil
	default:
		return "", fmt.Errorf("unknown modality: %s (supported: SOFTWARE, SERVICE, PHYSICAL_PRODUCT, HYBRID)", s)
	}
}

// Solution is the optional structured description supplied for Stage 2
type Solution struct {
	Description     string   `json:"description"`
	Modality        Modality `json:"modality"`
	AutomationLevel string   `json:"automation_level,omitempty"` // Free text, e.g. "fully automated"
}

// CompetitorDensity buckets how many distinct vendors were found
type CompetitorDensity string

const (
	DensityNone   CompetitorDensity = "NONE"
	DensityLow    CompetitorDensity = "LOW"
	DensityMedium CompetitorDensity = "MEDIUM"
	DensityHigh   CompetitorDensity = "HIGH"
)

// Fragmentation describes the shape of the competitive field
type Fragmentation string

const (
	FragConsolidated Fragmentation = "CONSOLIDATED"
	FragFragmented   Fragmentation = "FRAGMENTED"
	FragMixed        Fragmentation = "MIXED"
)

// Pressure is a generic LOW/MEDIUM/HIGH scale used for substitute
// pressure and content saturation
type Pressure string

const (
	PressureLow    Pressure = "LOW"
	PressureMedium Pressure = "MEDIUM"
	PressureHigh   Pressure = "HIGH"
)

// Rank orders pressure values for threshold comparisons
func (p Pressure) Rank() int {
	switch p {
	case PressureMedium:
		return 1
	case PressureHigh:
		return 2
	default:
		return 0
	}
}

// Maturity describes how established the solution class is
type Maturity string

const (
	MaturityNonExistent Maturity = "NON_EXISTENT"
	MaturityEmerging    Maturity = "EMERGING"
	MaturityEstablished Maturity = "ESTABLISHED"
)

// Relevance grades how much automation matters for this solution
type Relevance string

const (
	RelevanceLow    Relevance = "LOW"
	RelevanceMedium Relevance = "MEDIUM"
	RelevanceHigh   Relevance = "HIGH"
)

// MarketRisk flags a structural risk derived from the parameters
type MarketRisk string

const (
	RiskDominantIncumbents MarketRisk = "DOMINANT_INCUMBENTS"
)

// MarketStrength holds the six independent market facts plus derived
// risk flags. There is deliberately no aggregate score: each value is
// an independent observation.
type MarketStrength struct {
	CompetitorDensity     CompetitorDensity `json:"competitor_density"`
	MarketFragmentation   Fragmentation     `json:"market_fragmentation"`
	SubstitutePressure    Pressure          `json:"substitute_pressure"`
	ContentSaturation     Pressure          `json:"content_saturation"`
	SolutionClassMaturity Maturity          `json:"solution_class_maturity"`
	AutomationRelevance   Relevance         `json:"automation_relevance"`
	Risks                 []MarketRisk      `json:"market_risk,omitempty"`

	CompetitorDomains []string `json:"competitor_domains,omitempty"` // After per-domain dedup
}
