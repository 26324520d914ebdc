// Package market derives six independent market facts from classified
// results. There is no aggregate score: each fact stands on its own,
// and only the derived risk set combines two of them.
package market

import (
	"strings"

	"github.com/ppiankov/ideagauge/internal/model"
	"github.com/ppiankov/ideagauge/internal/urlnorm"
)

// densityTable holds the count breakpoints for one modality class
type densityTable struct {
	lowMax    int // count <= lowMax  -> LOW
	mediumMax int // count <= mediumMax -> MEDIUM, above -> HIGH
}

// Software products are easy to discover online, so their thresholds
// are stricter than service/physical ones.
var densityTables = map[model.Modality]densityTable{
	model.ModalitySoftware:        {lowMax: 2, mediumMax: 5},
	model.ModalityHybrid:          {lowMax: 2, mediumMax: 5},
	model.ModalityService:         {lowMax: 3, mediumMax: 7},
	model.ModalityPhysicalProduct: {lowMax: 3, mediumMax: 7},
}

// Computer derives MarketStrength from classified results
type Computer struct {
	rules model.RuleTables
	t     model.Thresholds
}

// NewComputer creates a market computer
func NewComputer(rules model.RuleTables, t model.Thresholds) *Computer {
	return &Computer{rules: rules, t: t}
}

// Compute evaluates all six facts for the given modality and stated
// automation level
func (m *Computer) Compute(classified []model.ClassifiedResult, modality model.Modality, automationLevel string) model.MarketStrength {
	competitors := filterKind(classified, model.KindCommercial)
	diy := filterKind(classified, model.KindDIY)
	content := filterKind(classified, model.KindContent)

	// Multiple pages of one vendor are one competitor, for density and
	// fragmentation alike
	vendors, domains := dedupeByDomain(competitors)

	relevance := m.automationRelevance(automationLevel, modality)

	s := model.MarketStrength{
		CompetitorDensity:     m.competitorDensity(len(domains), modality),
		MarketFragmentation:   m.fragmentation(vendors),
		SubstitutePressure:    m.substitutePressure(len(diy), relevance),
		ContentSaturation:     m.contentSaturation(len(content)),
		SolutionClassMaturity: m.maturity(len(domains), len(content)),
		AutomationRelevance:   relevance,
		CompetitorDomains:     domains,
	}
	s.Risks = deriveRisks(s)
	return s
}

// competitorDensity buckets the deduplicated vendor count
func (m *Computer) competitorDensity(count int, modality model.Modality) model.CompetitorDensity {
	if count == 0 {
		return model.DensityNone
	}
	table, ok := densityTables[modality]
	if !ok {
		table = densityTables[model.ModalitySoftware]
	}
	switch {
	case count <= table.lowMax:
		return model.DensityLow
	case count <= table.mediumMax:
		return model.DensityMedium
	default:
		return model.DensityHigh
	}
}

// fragmentation compares local vs enterprise vocabulary among the
// competitor results
func (m *Computer) fragmentation(competitors []model.ClassifiedResult) model.Fragmentation {
	local, enterprise := 0, 0
	for _, c := range competitors {
		text := strings.ToLower(c.Result.Title + " " + c.Result.Snippet)
		if containsAny(text, m.rules.LocalIndicators) {
			local++
		}
		if containsAny(text, m.rules.EnterpriseIndicators) {
			enterprise++
		}
	}

	total := local + enterprise
	if total == 0 {
		return model.FragMixed
	}
	share := local * 100 / total
	switch {
	case share >= m.t.FragmentedMinShare:
		return model.FragFragmented
	case share <= m.t.ConsolidatedMaxShare:
		return model.FragConsolidated
	default:
		return model.FragMixed
	}
}

// substitutePressure buckets the DIY volume; a highly automatable
// solution makes existing manual substitutes easier to displace but
// also signals that people already cope without a product, so HIGH
// automation relevance bumps the pressure one step up
func (m *Computer) substitutePressure(diyCount int, relevance model.Relevance) model.Pressure {
	var p model.Pressure
	switch {
	case diyCount <= 1:
		p = model.PressureLow
	case diyCount <= 4:
		p = model.PressureMedium
	default:
		p = model.PressureHigh
	}
	if relevance == model.RelevanceHigh && p == model.PressureLow && diyCount > 0 {
		p = model.PressureMedium
	}
	return p
}

// contentSaturation buckets the content-result volume
func (m *Computer) contentSaturation(contentCount int) model.Pressure {
	switch {
	case contentCount <= 2:
		return model.PressureLow
	case contentCount <= 6:
		return model.PressureMedium
	default:
		return model.PressureHigh
	}
}

// maturity is a joint function of vendor and content volume
func (m *Computer) maturity(competitorCount, contentCount int) model.Maturity {
	switch {
	case competitorCount == 0 && contentCount < 2:
		return model.MaturityNonExistent
	case competitorCount < 3 || contentCount < 5:
		return model.MaturityEmerging
	default:
		return model.MaturityEstablished
	}
}

// automationRelevance grades the stated automation level, biased by
// modality: software leans automated, physical products do not
func (m *Computer) automationRelevance(automationLevel string, modality model.Modality) model.Relevance {
	text := strings.ToLower(automationLevel)

	var r model.Relevance
	switch {
	case containsAny(text, []string{"fully automated", "full automation", "autonomous", "ai", "automatic"}):
		r = model.RelevanceHigh
	case containsAny(text, []string{"semi", "assisted", "partial", "augmented"}):
		r = model.RelevanceMedium
	default:
		r = model.RelevanceLow
	}

	switch modality {
	case model.ModalitySoftware:
		if r == model.RelevanceMedium {
			r = model.RelevanceHigh
		}
	case model.ModalityPhysicalProduct:
		if r == model.RelevanceHigh {
			r = model.RelevanceMedium
		}
	}
	return r
}

// deriveRisks builds the derived risk set from the computed facts
func deriveRisks(s model.MarketStrength) []model.MarketRisk {
	var risks []model.MarketRisk
	if s.CompetitorDensity == model.DensityHigh && s.MarketFragmentation == model.FragConsolidated {
		risks = append(risks, model.RiskDominantIncumbents)
	}
	return risks
}

func filterKind(classified []model.ClassifiedResult, kind model.ResultKind) []model.ClassifiedResult {
	var out []model.ClassifiedResult
	for _, c := range classified {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// dedupeByDomain keeps the first result per canonical domain,
// preserving order
func dedupeByDomain(competitors []model.ClassifiedResult) ([]model.ClassifiedResult, []string) {
	seen := make(map[string]bool)
	var vendors []model.ClassifiedResult
	var domains []string
	for _, c := range competitors {
		domain, ok := urlnorm.Domain(c.Result.URL)
		if !ok {
			continue
		}
		if !seen[domain] {
			seen[domain] = true
			vendors = append(vendors, c)
			domains = append(domains, domain)
		}
	}
	return vendors, domains
}

// containsAny does a word-boundary phrase check over a small list, so
// "ai" never matches inside "maintain"
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if containsPhrase(text, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func containsPhrase(text, phrase string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		if (idx == 0 || !isWordByte(text[idx-1])) && (end >= len(text) || !isWordByte(text[end])) {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	}
	return false
}
