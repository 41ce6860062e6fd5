package portal

import (
	"embed"
	"html/template"
	"strings"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/sim"
	"github.com/agolabs/architect/internal/version"
)

//go:embed templates/preview.html
var templateFS embed.FS

// StackNodes are the integrations listed under the preview.
var StackNodes = []string{"Gemini", "Zapier", "Notion"}

type previewData struct {
	Blueprint    *blueprint.Blueprint
	Title        string
	SOP          []string
	Recipe       []string
	Payload      string
	Properties   []blueprint.Property
	StandbyLine  string
	StackNodes   []string
	Version      string
	Deployed     bool
	KeywordQuery string
}

func newPreviewData(bp *blueprint.Blueprint) previewData {
	d := previewData{
		Blueprint:   bp,
		StandbyLine: sim.StandbyLine,
		StackNodes:  StackNodes,
		Version:     version.Version,
	}
	if bp == nil {
		return d
	}
	d.Deployed = true
	d.Title = strings.ToUpper(bp.ProductTitle)
	d.SOP = paragraphs(bp.ProductSOP)
	d.Recipe = paragraphs(bp.AutomationRecipe)
	d.Payload = blueprint.PrettyPayload(bp.FlatPayload)
	if bp.NotionSchema != nil {
		d.Properties = bp.NotionSchema.Properties
	}
	d.KeywordQuery = bp.Keyword
	return d
}

// paragraphs splits text on blank lines, dropping empty blocks.
func paragraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, block)
		}
	}
	return out
}

func parsePreview() (*template.Template, error) {
	return template.New("preview.html").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/preview.html")
}
