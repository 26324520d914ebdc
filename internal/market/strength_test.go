package market

import (
	"fmt"
	"testing"

	"github.com/ppiankov/ideagauge/internal/model"
)

func newTestComputer() *Computer {
	cfg := model.DefaultConfig()
	return NewComputer(cfg.Rules, cfg.Thresholds)
}

func commercial(url, title, snippet string) model.ClassifiedResult {
	return model.ClassifiedResult{
		Result: model.SearchResult{Title: title, Snippet: snippet, URL: url},
		Kind:   model.KindCommercial,
	}
}

func diy(url string) model.ClassifiedResult {
	return model.ClassifiedResult{
		Result: model.SearchResult{URL: url},
		Kind:   model.KindDIY,
	}
}

func content(url string) model.ClassifiedResult {
	return model.ClassifiedResult{
		Result: model.SearchResult{URL: url},
		Kind:   model.KindContent,
	}
}

func TestCompute_DedupesCompetitorsByDomain(t *testing.T) {
	m := newTestComputer()

	// Four pages, two vendors
	classified := []model.ClassifiedResult{
		commercial("https://vendor-a.com/pricing", "", ""),
		commercial("https://www.vendor-a.com/features", "", ""),
		commercial("https://vendor-a.com/about", "", ""),
		commercial("https://vendor-b.io/", "", ""),
	}

	got := m.Compute(classified, model.ModalitySoftware, "")
	if len(got.CompetitorDomains) != 2 {
		t.Fatalf("competitor domains = %v, want 2 entries", got.CompetitorDomains)
	}
	if got.CompetitorDensity != model.DensityLow {
		t.Errorf("density = %s, want LOW for 2 vendors", got.CompetitorDensity)
	}
}

func TestCompute_DensityByModality(t *testing.T) {
	m := newTestComputer()

	vendors := func(n int) []model.ClassifiedResult {
		out := make([]model.ClassifiedResult, n)
		for i := range out {
			out[i] = commercial(fmt.Sprintf("https://vendor-%d.com/", i), "", "")
		}
		return out
	}

	tests := []struct {
		count    int
		modality model.Modality
		want     model.CompetitorDensity
	}{
		{0, model.ModalitySoftware, model.DensityNone},
		{2, model.ModalitySoftware, model.DensityLow},
		{3, model.ModalitySoftware, model.DensityMedium},
		{6, model.ModalitySoftware, model.DensityHigh},
		// Service thresholds are looser
		{3, model.ModalityService, model.DensityLow},
		{6, model.ModalityService, model.DensityMedium},
		{8, model.ModalityService, model.DensityHigh},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%s", tt.count, tt.modality), func(t *testing.T) {
			got := m.Compute(vendors(tt.count), tt.modality, "")
			if got.CompetitorDensity != tt.want {
				t.Errorf("density = %s, want %s", got.CompetitorDensity, tt.want)
			}
		})
	}
}

func TestCompute_Fragmentation(t *testing.T) {
	m := newTestComputer()

	tests := []struct {
		name       string
		classified []model.ClassifiedResult
		want       model.Fragmentation
	}{
		{
			name: "local dominated",
			classified: []model.ClassifiedResult{
				commercial("https://a.com/", "Local invoice help", "for small business owners"),
				commercial("https://b.com/", "Freelance billing", "independent professionals"),
				commercial("https://c.com/", "Family owned bookkeeping", ""),
			},
			want: model.FragFragmented,
		},
		{
			name: "enterprise dominated",
			classified: []model.ClassifiedResult{
				commercial("https://a.com/", "The leading billing platform", ""),
				commercial("https://b.com/", "Global enterprise invoicing", "fortune 500"),
				commercial("https://c.com/", "Market leader in AR automation", ""),
			},
			want: model.FragConsolidated,
		},
		{
			name: "no indicator data",
			classified: []model.ClassifiedResult{
				commercial("https://a.com/", "Billing software", "fast and simple"),
			},
			want: model.FragMixed,
		},
		{
			name: "balanced",
			classified: []model.ClassifiedResult{
				commercial("https://a.com/", "small business billing", ""),
				commercial("https://b.com/", "enterprise billing", ""),
			},
			want: model.FragMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Compute(tt.classified, model.ModalitySoftware, "")
			if got.MarketFragmentation != tt.want {
				t.Errorf("fragmentation = %s, want %s", got.MarketFragmentation, tt.want)
			}
		})
	}
}

func TestCompute_FragmentationCountsVendorsNotPages(t *testing.T) {
	m := newTestComputer()

	// Three pages of one local vendor against two enterprise vendors.
	// Counted per domain the local share is 1 of 3; counted per page it
	// would be 3 of 5 and flip the verdict to FRAGMENTED.
	classified := []model.ClassifiedResult{
		commercial("https://local-shop.com/", "small business billing", ""),
		commercial("https://local-shop.com/pricing", "small business billing", ""),
		commercial("https://local-shop.com/features", "small business billing", ""),
		commercial("https://big-a.com/", "enterprise invoicing", ""),
		commercial("https://big-b.com/", "global platform", ""),
	}

	got := m.Compute(classified, model.ModalitySoftware, "")
	if got.MarketFragmentation != model.FragConsolidated {
		t.Errorf("fragmentation = %s, want CONSOLIDATED", got.MarketFragmentation)
	}
}

func TestCompute_SubstitutePressure(t *testing.T) {
	m := newTestComputer()

	one := []model.ClassifiedResult{diy("https://a.com/1")}
	three := []model.ClassifiedResult{diy("https://a.com/1"), diy("https://a.com/2"), diy("https://a.com/3")}
	six := append(append([]model.ClassifiedResult{}, three...),
		diy("https://a.com/4"), diy("https://a.com/5"), diy("https://a.com/6"))

	if got := m.Compute(one, model.ModalityService, "").SubstitutePressure; got != model.PressureLow {
		t.Errorf("1 diy = %s, want LOW", got)
	}
	if got := m.Compute(three, model.ModalityService, "").SubstitutePressure; got != model.PressureMedium {
		t.Errorf("3 diy = %s, want MEDIUM", got)
	}
	if got := m.Compute(six, model.ModalityService, "").SubstitutePressure; got != model.PressureHigh {
		t.Errorf("6 diy = %s, want HIGH", got)
	}

	// High automation relevance bumps LOW to MEDIUM when any DIY exists
	if got := m.Compute(one, model.ModalitySoftware, "fully automated").SubstitutePressure; got != model.PressureMedium {
		t.Errorf("1 diy with high relevance = %s, want MEDIUM", got)
	}
}

func TestCompute_Maturity(t *testing.T) {
	m := newTestComputer()

	empty := m.Compute(nil, model.ModalitySoftware, "")
	if empty.SolutionClassMaturity != model.MaturityNonExistent {
		t.Errorf("empty field = %s, want NON_EXISTENT", empty.SolutionClassMaturity)
	}

	emerging := m.Compute([]model.ClassifiedResult{
		commercial("https://a.com/", "", ""),
		content("https://b.com/1"),
	}, model.ModalitySoftware, "")
	if emerging.SolutionClassMaturity != model.MaturityEmerging {
		t.Errorf("thin field = %s, want EMERGING", emerging.SolutionClassMaturity)
	}

	var established []model.ClassifiedResult
	for i := 0; i < 4; i++ {
		established = append(established, commercial(fmt.Sprintf("https://v%d.com/", i), "", ""))
	}
	for i := 0; i < 6; i++ {
		established = append(established, content(fmt.Sprintf("https://c.com/%d", i)))
	}
	got := m.Compute(established, model.ModalitySoftware, "")
	if got.SolutionClassMaturity != model.MaturityEstablished {
		t.Errorf("dense field = %s, want ESTABLISHED", got.SolutionClassMaturity)
	}
}

func TestCompute_AutomationRelevance(t *testing.T) {
	m := newTestComputer()

	tests := []struct {
		level    string
		modality model.Modality
		want     model.Relevance
	}{
		{"fully automated", model.ModalityService, model.RelevanceHigh},
		{"semi automated", model.ModalityService, model.RelevanceMedium},
		{"", model.ModalityService, model.RelevanceLow},
		// Software bumps MEDIUM to HIGH
		{"semi automated", model.ModalitySoftware, model.RelevanceHigh},
		// Physical products demote HIGH to MEDIUM
		{"fully automated", model.ModalityPhysicalProduct, model.RelevanceMedium},
		// Word boundary: "maintain" does not contain the token "ai"
		{"we maintain machines by hand", model.ModalityService, model.RelevanceLow},
	}

	for _, tt := range tests {
		t.Run(tt.level+"_"+string(tt.modality), func(t *testing.T) {
			got := m.Compute(nil, tt.modality, tt.level)
			if got.AutomationRelevance != tt.want {
				t.Errorf("relevance = %s, want %s", got.AutomationRelevance, tt.want)
			}
		})
	}
}

func TestCompute_DominantIncumbentsRisk(t *testing.T) {
	m := newTestComputer()

	var classified []model.ClassifiedResult
	for i := 0; i < 7; i++ {
		classified = append(classified, commercial(
			fmt.Sprintf("https://vendor-%d.com/", i),
			"enterprise platform", "global market leader"))
	}

	got := m.Compute(classified, model.ModalitySoftware, "")
	if got.CompetitorDensity != model.DensityHigh {
		t.Fatalf("density = %s, want HIGH", got.CompetitorDensity)
	}
	if got.MarketFragmentation != model.FragConsolidated {
		t.Fatalf("fragmentation = %s, want CONSOLIDATED", got.MarketFragmentation)
	}

	found := false
	for _, r := range got.Risks {
		if r == model.RiskDominantIncumbents {
			found = true
		}
	}
	if !found {
		t.Errorf("risks = %v, want DOMINANT_INCUMBENTS", got.Risks)
	}

	// Fragmented high-density markets carry no such risk
	var fragmented []model.ClassifiedResult
	for i := 0; i < 7; i++ {
		fragmented = append(fragmented, commercial(
			fmt.Sprintf("https://vendor-%d.com/", i),
			"local small business tool", ""))
	}
	if risks := m.Compute(fragmented, model.ModalitySoftware, "").Risks; len(risks) != 0 {
		t.Errorf("fragmented market risks = %v, want none", risks)
	}
}
