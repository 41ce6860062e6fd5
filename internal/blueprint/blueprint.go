package blueprint

import (
	"encoding/json"
	"fmt"
)

// Blueprint is the structured business asset produced by one generation.
type Blueprint struct {
	Keyword           string  `json:"keyword"`
	ProductTitle      string  `json:"productTitle"`
	ProductSOP        string  `json:"productSOP"`
	AutomationRecipe  string  `json:"automationRecipe"`
	Price             string  `json:"price"`
	DeploymentPayload string  `json:"deploymentPayload"` // JSON as text
	FlatPayload       string  `json:"flatPayload"`       // JSON as text
	NotionAIPrompt    string  `json:"notionAiPrompt"`
	PortalURL         string  `json:"portalUrl"`
	NotionSchema      *Schema `json:"notionSchema,omitempty"`
}

// Schema describes database-like properties for the generated workspace.
type Schema struct {
	Properties []Property `json:"properties"`
}

// Property is one name/type/options triple.
type Property struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// PrettyJSON returns the indented JSON form of the blueprint.
func (b *Blueprint) PrettyJSON() (string, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode blueprint: %w", err)
	}
	return string(data), nil
}

// PropertyCount returns the number of schema properties, zero when absent.
func (b *Blueprint) PropertyCount() int {
	if b.NotionSchema == nil {
		return 0
	}
	return len(b.NotionSchema.Properties)
}

// PrettyPayload re-indents a JSON-as-text payload for display. Text that is
// not valid JSON is returned unchanged.
func PrettyPayload(payload string) string {
	var v any
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return payload
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return payload
	}
	return string(out)
}
