package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/revivatech/diagnose/engine/knowledge"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Inspect and validate the diagnostic knowledge base",
}

var knowledgeValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a knowledge base override file",
	Long: `Load a YAML override, merge it over the built-in defaults and check the
merged result for consistency. With no path, validates the defaults.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		kb, err := loadKnowledge(path)
		if err != nil {
			return err
		}
		if err := kb.Validate(); err != nil {
			return err
		}
		fmt.Printf("ok: version %s, %d categories\n", kb.Version, len(kb.Categories()))
		return nil
	},
}

var knowledgeShowFlags struct {
	category  string
	knowledge string
}

var knowledgeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print knowledge base categories and their templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		kb, err := loadKnowledge(knowledgeShowFlags.knowledge)
		if err != nil {
			return err
		}
		if cat := knowledgeShowFlags.category; cat != "" {
			return showCategory(kb, cat)
		}
		fmt.Printf("version: %s\ncurrency: %s\n\n", kb.Version, kb.Currency)
		for _, cat := range kb.Categories() {
			t := kb.TemplateFor(cat)
			c := kb.CostFor(cat)
			fmt.Printf("%-14s %-26s %d keywords, cost %d-%d\n",
				cat, t.CategoryName, len(kb.Lexicon[cat]), c.PartsMin+c.LaborMin, c.PartsMax+c.LaborMax)
		}
		return nil
	},
}

func showCategory(kb *knowledge.Base, cat string) error {
	terms, ok := kb.Lexicon[cat]
	if !ok {
		return fmt.Errorf("unknown category %q (known: %s)", cat, strings.Join(kb.Categories(), ", "))
	}
	t := kb.TemplateFor(cat)
	c := kb.CostFor(cat)
	fmt.Printf("category: %s (%s)\n", cat, t.CategoryName)
	fmt.Printf("issue: %s\n", t.IssueName)
	fmt.Printf("description: %s\n", t.Description)
	fmt.Printf("repair time: %s\n", t.RepairTime)
	fmt.Printf("cost: parts %d-%d, labor %d-%d %s\n", c.PartsMin, c.PartsMax, c.LaborMin, c.LaborMax, kb.Currency)
	fmt.Printf("keywords: %s\n", strings.Join(terms, ", "))
	fmt.Println("causes:")
	for _, cause := range t.Causes {
		fmt.Printf("  %.0f%% %s (%s impact)\n", cause.Probability*100, cause.Name, cause.Impact)
	}
	fmt.Println("actions:")
	for _, a := range t.Actions {
		fmt.Printf("  %s (%s, %s)\n", a.Name, a.TimeEstimate, a.SkillLevel)
	}
	return nil
}

func init() {
	knowledgeShowCmd.Flags().StringVar(&knowledgeShowFlags.category, "category", "", "Show full detail for one category key")
	knowledgeShowCmd.Flags().StringVar(&knowledgeShowFlags.knowledge, "knowledge", "", "Path to a knowledge base override file (YAML)")
	knowledgeCmd.AddCommand(knowledgeValidateCmd, knowledgeShowCmd)
}
