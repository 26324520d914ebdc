// Test program to demonstrate the scoring chain without a search backend
// This runs canned search results through classification and severity
package main

import (
	"fmt"
	"strings"

	"github.com/ppiankov/ideagauge/internal/classify"
	"github.com/ppiankov/ideagauge/internal/extract"
	"github.com/ppiankov/ideagauge/internal/model"
	"github.com/ppiankov/ideagauge/internal/severity"
)

func main() {
	fmt.Println("=== Offline Scoring Chain Test ===")
	fmt.Println()

	results := []model.SearchResult{
		{
			Title:   "I'm so frustrated with manual invoice tracking",
			Snippet: "Spent hours chasing unpaid invoices again. This is a nightmare every month.",
			URL:     "https://reddit.com/r/freelance/comments/abc",
		},
		{
			Title:   "My spreadsheet hack for invoice reminders",
			Snippet: "I built a workaround with a spreadsheet and calendar alerts to cope with late payers.",
			URL:     "https://example-blog.com/invoice-hack",
		},
		{
			Title:   "InvoiceBot - Automated invoice chasing",
			Snippet: "Free trial. Pricing starts at $9/mo. Sign up and connect your accounting tool.",
			URL:     "https://invoicebot.example.com/pricing",
		},
	}

	cfg := model.DefaultConfig()

	extractor := extract.NewSignalExtractor(cfg.Rules)
	counts, matches := extractor.Extract(results)

	fmt.Printf("Signals: %d intensity, %d complaint, %d workaround\n",
		counts.Intensity, counts.Complaint, counts.Workaround)
	for _, m := range matches {
		fmt.Printf("  - %s matched %q in %s\n", m.Category, m.Keyword, m.URL)
	}
	fmt.Println()

	grader := severity.NewClassifier(cfg.Thresholds)
	level, guards := grader.Classify(counts)

	fmt.Printf("Problem level: %s\n", level)
	for _, g := range guards {
		fmt.Printf("  %-16s %-8s -> %-8s %s\n", g.Guard, g.Before, g.After, g.Reason)
	}
	fmt.Println()

	classifier := classify.NewClassifier(cfg.Rules, cfg.Thresholds)
	fmt.Println(strings.Repeat("-", 60))
	for _, c := range classifier.ClassifyAll(results) {
		fmt.Printf("%-12s step=%-18s %s\n", c.Kind, c.Step, c.Result.URL)
	}

	fmt.Println()
	fmt.Println("=== Test Complete ===")
}
