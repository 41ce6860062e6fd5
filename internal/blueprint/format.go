package blueprint

import (
	"fmt"
	"strings"
)

// Format selects an output rendering.
type Format string

const (
	FormatDetailed Format = "detailed"
	FormatCompact  Format = "compact"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatDetailed, FormatCompact, FormatMarkdown, FormatJSON:
		return f, nil
	case "":
		return FormatDetailed, nil
	default:
		return "", fmt.Errorf("unknown format %q (want detailed, compact, markdown or json)", s)
	}
}

// Render formats the blueprint in the requested format.
func (b *Blueprint) Render(f Format) (string, error) {
	switch f {
	case FormatCompact:
		return b.FormatCompact(), nil
	case FormatMarkdown:
		return b.Markdown(), nil
	case FormatJSON:
		return b.PrettyJSON()
	default:
		return b.FormatDetailed(), nil
	}
}

// Summary returns a one-line summary of the blueprint
func (b *Blueprint) Summary() string {
	return fmt.Sprintf("%s @ %s (%s)", b.ProductTitle, b.Price, b.Keyword)
}

// FormatCompact returns a short multi-line format suitable for terminal display
func (b *Blueprint) FormatCompact() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Product:  %s\n", b.ProductTitle))
	sb.WriteString(fmt.Sprintf("Keyword:  %s\n", b.Keyword))
	sb.WriteString(fmt.Sprintf("Price:    %s\n", b.Price))
	sb.WriteString(fmt.Sprintf("Portal:   %s\n", b.PortalURL))
	sb.WriteString(fmt.Sprintf("Schema:   %d properties\n", b.PropertyCount()))

	return sb.String()
}

// FormatSchema returns the notion schema as an aligned table.
func (b *Blueprint) FormatSchema() string {
	var sb strings.Builder

	sb.WriteString("=== Database Schema ===\n")
	if b.PropertyCount() == 0 {
		sb.WriteString("(none)\n")
		return sb.String()
	}

	width := 4
	for _, p := range b.NotionSchema.Properties {
		if len(p.Name) > width {
			width = len(p.Name)
		}
	}
	for _, p := range b.NotionSchema.Properties {
		line := fmt.Sprintf("%-*s  %s", width, p.Name, p.Type)
		if len(p.Options) > 0 {
			line += " [" + strings.Join(p.Options, ", ") + "]"
		}
		sb.WriteString(line + "\n")
	}

	return sb.String()
}

// FormatDetailed returns every field with section headings
func (b *Blueprint) FormatDetailed() string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("╔════════════════════════════════════════════════════════════════╗\n")
	sb.WriteString("║                  ASSET DEPLOYMENT BLUEPRINT                    ║\n")
	sb.WriteString("╚════════════════════════════════════════════════════════════════╝\n")
	sb.WriteString("\n")

	sb.WriteString(b.FormatCompact())
	sb.WriteString("\n=== Protocol SOP ===\n")
	sb.WriteString(strings.TrimSpace(b.ProductSOP) + "\n")
	sb.WriteString("\n=== Automation Recipe ===\n")
	sb.WriteString(strings.TrimSpace(b.AutomationRecipe) + "\n")
	sb.WriteString("\n=== Build Request Macro ===\n")
	sb.WriteString(strings.TrimSpace(b.NotionAIPrompt) + "\n")
	sb.WriteString("\n=== Flat JSON Structure ===\n")
	sb.WriteString(PrettyPayload(b.FlatPayload) + "\n")
	sb.WriteString("\n=== Deployment Payload ===\n")
	sb.WriteString(PrettyPayload(b.DeploymentPayload) + "\n")
	sb.WriteString("\n")
	sb.WriteString(b.FormatSchema())

	return sb.String()
}

// Markdown renders the blueprint as a markdown document.
func (b *Blueprint) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# " + b.ProductTitle + "\n\n")
	sb.WriteString(fmt.Sprintf("**Keyword:** %s  \n**Valuation:** %s  \n**Portal:** %s\n\n", b.Keyword, b.Price, b.PortalURL))
	sb.WriteString("## Protocol SOP\n\n")
	sb.WriteString(strings.TrimSpace(b.ProductSOP) + "\n\n")
	sb.WriteString("## Automation Recipe\n\n")
	sb.WriteString(strings.TrimSpace(b.AutomationRecipe) + "\n\n")
	sb.WriteString("## Build Request Macro\n\n")
	sb.WriteString(fence("text", b.NotionAIPrompt))
	sb.WriteString("## Flat JSON Structure\n\n")
	sb.WriteString(fence("json", PrettyPayload(b.FlatPayload)))
	sb.WriteString("## Deployment Payload\n\n")
	sb.WriteString(fence("json", PrettyPayload(b.DeploymentPayload)))

	if b.PropertyCount() > 0 {
		sb.WriteString("## Database Schema\n\n")
		sb.WriteString("| Property | Type | Options |\n|---|---|---|\n")
		for _, p := range b.NotionSchema.Properties {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", p.Name, p.Type, strings.Join(p.Options, ", ")))
		}
	}

	return sb.String()
}

func fence(lang, body string) string {
	return "```" + lang + "\n" + strings.TrimSpace(body) + "\n```\n\n"
}
