package framework

import (
	"fmt"
	"strings"
)

// ID identifies a framework.
type ID string

// Known framework identifiers. Only a subset has a catalog entry; the rest
// resolve to the default.
const (
	Standard             ID = "standard"
	FourPillar           ID = "four_pillar"
	NotionArchitect      ID = "notion_architect"
	LeadMachine          ID = "lead_machine"
	MarketingManager     ID = "marketing_manager"
	GrowthEngine         ID = "growth_engine"
	FirstPrinciples      ID = "first_principles"
	TRIZ                 ID = "triz"
	Lateral              ID = "lateral"
	IntegrationArchitect ID = "integration_architect"
)

// Framework is a predefined prompt-shaping preset.
type Framework struct {
	ID          ID     `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Prompt      string `json:"prompt" yaml:"prompt"`
}

var catalog = []Framework{
	{
		ID:          GrowthEngine,
		Name:        "AGO Growth Engine (v5.5)",
		Description: "Deterministic Zero-Intervention pipeline for high-scale asset delivery.",
		Prompt: `Act as the "Automated Asset Architect." Your purpose is to eliminate human friction. ` +
			`Output high-fidelity business blueprints. Focus on complex, interconnected Notion database ` +
			`layouts and precise automation triggers. Use industrial language throughout.`,
	},
	{
		ID:          FourPillar,
		Name:        "4P Information Control",
		Description: "A structural engine using Capture, Compress, Connect, and Control logic.",
		Prompt: "You are the Four-Pillar Information Control Engine.\n" +
			"1) CAPTURE: Structural data points.\n" +
			"2) COMPRESS: Core value propositions.\n" +
			"3) CONNECT: Operational dependencies.\n" +
			"4) CONTROL: Actionable, deterministic SOPs.",
	},
	{
		ID:          NotionArchitect,
		Name:        "Structural Layout Spec",
		Description: "Engine optimized for structural database integrity and UI component mapping.",
		Prompt: "Act as a Notion Solutions Architect. Design layouts that prioritize UX hierarchy and data flow. " +
			"Ensure all database properties are optimized for Notion AI macro generation.",
	},
	{
		ID:          LeadMachine,
		Name:        "Lead Extraction Protocol",
		Description: "High-volume lead capture optimization with immediate portal injection.",
		Prompt: "Focus exclusively on top-of-funnel lead extraction mechanics. " +
			"Generate content designed for immediate, automated high-fidelity asset delivery.",
	},
}

// All returns a copy of the catalog in display order.
func All() []Framework {
	out := make([]Framework, len(catalog))
	copy(out, catalog)
	return out
}

// Default returns the first catalog entry.
func Default() Framework {
	return catalog[0]
}

// Lookup finds a catalog entry by ID. Surrounding whitespace and case are ignored.
func Lookup(id ID) (Framework, bool) {
	norm := ID(strings.ToLower(strings.TrimSpace(string(id))))
	for _, f := range catalog {
		if f.ID == norm {
			return f, true
		}
	}
	return Framework{}, false
}

// Resolve is Lookup with fallback to Default.
func Resolve(id ID) Framework {
	if f, ok := Lookup(id); ok {
		return f
	}
	return Default()
}

// Index returns the position of id in All, or 0 when it is not cataloged.
func Index(id ID) int {
	for i, f := range catalog {
		if f.ID == id {
			return i
		}
	}
	return 0
}

// Known reports whether id is one of the declared identifiers, cataloged or not.
func Known(id ID) bool {
	switch id {
	case Standard, FourPillar, NotionArchitect, LeadMachine, MarketingManager,
		GrowthEngine, FirstPrinciples, TRIZ, Lateral, IntegrationArchitect:
		return true
	}
	return false
}

// Validate returns an error for identifiers that are neither declared nor empty.
func Validate(id ID) error {
	if id == "" || Known(id) {
		return nil
	}
	return fmt.Errorf("unknown framework %q", id)
}
