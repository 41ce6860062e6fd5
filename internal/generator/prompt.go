package generator

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/agolabs/architect/internal/framework"
)

// SystemInstruction frames every request.
const SystemInstruction = `You are the "Automated Asset Architect." Your sole mission is to eliminate human intervention in the digital product creation cycle.
You output industrial-grade business blueprints in raw JSON format.
Guidelines:
- Use highly technical, professional, and industrial-grade terminology (e.g., "deterministic pipeline", "signal handshake", "logical if-then gates").
- Ensure the Notion AI Macro is sophisticated and ready for immediate pasting into a Notion page.
- Fill all JSON fields with high-quality content. Do not provide placeholders.
- Output ONLY the JSON object. No markdown, no conversational text.`

const taskTemplate = `
TASK: As the Automated Asset Architect, generate a comprehensive business deployment blueprint.

INSTRUCTIONS:
1. productTitle: A high-impact, industrial-grade name for the digital product.
2. productSOP: A detailed, step-by-step Standard Operating Procedure. Include:
   - Phase 1: Infrastructure & Asset Generation
   - Phase 2: Sales Funnel & Lead Magnets
   - Phase 3: Automated Delivery & Post-Purchase Handshake
   Use professional, technical language.
3. automationRecipe: Step-by-step Zapier/Make.com logic to connect inbound signals to the delivery portal.
4. price: Strategic valuation (e.g., "$297/mo" or "$1,499 one-time").
5. notionAiPrompt: This is the "Secret Sauce" macro. It MUST be a direct prompt for Notion AI (using Cmd+J) to build a complex dashboard. It should look like:
   "Act as a Senior Notion Architect. Create a master dashboard for %[1]s.
    Include:
    - A Callout block for 'Strategic Vision'
    - A 3-column Layout for 'Core Objectives'
    - An Inline Database called 'Deployment Roadmap' with properties: Task (Title), Status (Status), Priority (Select), and Due Date (Date).
    - A checklist for 'Pre-Launch Diagnostics'.
    Bypass intro text. Start building now."
6. deploymentPayload: A robust JSON representation of the database structure for the Notion API.
7. flatPayload: A simplified, flat JSON object containing key-value pairs for Zapier webhook testing.
8. portalUrl: A hypothetical unique ID for the workspace (e.g., "https://notion.so/architect/deploy-alpha-77").
9. notionSchema: Detailed database property definitions.
`

// RequiredFields lists the response fields the engine must return.
var RequiredFields = []string{
	"productTitle",
	"productSOP",
	"automationRecipe",
	"price",
	"portalUrl",
	"deploymentPayload",
	"flatPayload",
	"notionAiPrompt",
	"notionSchema",
}

// BuildPrompt merges the keyword and framework into the request prompt.
func BuildPrompt(keyword string, fw framework.Framework) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Context Keyword: \"%s\"\n", keyword)
	fmt.Fprintf(&b, "Active Framework: %s\n", fw.Name)
	fmt.Fprintf(&b, "Framework Protocol: %s\n", fw.Prompt)
	fmt.Fprintf(&b, taskTemplate, keyword)
	return b.String()
}

// ResponseSchema mirrors the blueprint JSON Schema in the API's schema dialect.
func ResponseSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

	props := make(map[string]*genai.Schema, len(RequiredFields))
	for _, f := range RequiredFields {
		props[f] = str()
	}
	props["notionSchema"] = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"properties": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":    str(),
						"type":    str(),
						"options": {Type: genai.TypeArray, Items: str()},
					},
					Required: []string{"name", "type"},
				},
			},
		},
		Required: []string{"properties"},
	}

	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   append([]string(nil), RequiredFields...),
	}
}
