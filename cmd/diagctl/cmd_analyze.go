package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/revivatech/diagnose/engine/catalog"
	"github.com/revivatech/diagnose/engine/diagnose"
	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/engine/knowledge"
)

var analyzeFlags struct {
	device    string
	brand     string
	model     string
	year      int
	knowledge string
	jsonOut   bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <symptoms>",
	Short: "Diagnose a symptom description",
	Long: `Run the diagnostic engine on a free-text symptom description.

Usage:
  diagctl analyze "screen cracked and flickering" --device laptop
  diagctl analyze "my 2021 macbook pro won't turn on"
  diagctl analyze "battery draining fast" --device phone --json

When --device is omitted, the device is inferred from mentions in the
symptom text; unrecognized devices fall back to the laptop baseline.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.device, "device", "", "Device category: laptop, desktop, tablet, phone, console")
	f.StringVar(&analyzeFlags.brand, "brand", "", "Device brand")
	f.StringVar(&analyzeFlags.model, "model", "", "Device model")
	f.IntVar(&analyzeFlags.year, "year", 0, "Year of manufacture")
	f.StringVar(&analyzeFlags.knowledge, "knowledge", "", "Path to a knowledge base override file (YAML)")
	f.BoolVar(&analyzeFlags.jsonOut, "json", false, "Output raw JSON results")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	symptoms := strings.Join(args, " ")

	kb, err := loadKnowledge(analyzeFlags.knowledge)
	if err != nil {
		return err
	}

	info := domain.DeviceInfo{
		Category: domain.DeviceCategory(analyzeFlags.device),
		Brand:    analyzeFlags.brand,
		Model:    analyzeFlags.model,
		Year:     analyzeFlags.year,
	}
	if info.Category == "" {
		if resolved, ok := newResolver().Resolve(cmd.Context(), symptoms); ok {
			info = resolved
			fmt.Fprintf(os.Stderr, "device inferred: %s %s (%s)\n", info.Brand, info.Model, info.Category)
		} else {
			info.Category = domain.DeviceLaptop
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	engine := diagnose.New(kb, diagnose.Options{}, logger)

	results, err := engine.Diagnose(cmd.Context(), domain.DiagnosticInput{
		Symptoms:   symptoms,
		DeviceInfo: info,
	})
	if err != nil {
		return err
	}

	if analyzeFlags.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	printResults(results)
	return nil
}

func newResolver() *catalog.Resolver {
	return catalog.NewResolver(nil, 16, 0, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func loadKnowledge(path string) (*knowledge.Base, error) {
	if path == "" {
		return knowledge.Default(), nil
	}
	return knowledge.Load(path)
}

func printResults(results []domain.DiagnosticResult) {
	for i, r := range results {
		fmt.Printf("%d. %s - %s\n", i+1, r.Category, r.Issue)
		fmt.Printf("   confidence %.0f%%  severity %s  urgency %s\n", r.Confidence*100, r.Severity, r.Urgency)
		fmt.Printf("   %s\n", r.Description)
		fmt.Printf("   estimated cost: %d-%d %s (repair time %s)\n",
			r.EstimatedCost.Total.Min, r.EstimatedCost.Total.Max, r.EstimatedCost.Total.Currency, r.RepairTime)
		for _, a := range r.RecommendedActions {
			fmt.Printf("   [%d] %s", a.Priority, a.Action)
			if a.TimeEstimate != "" {
				fmt.Printf(" (%s, %s)", a.TimeEstimate, a.SkillLevel)
			}
			fmt.Println()
		}
		if i < len(results)-1 {
			fmt.Println()
		}
	}
}
