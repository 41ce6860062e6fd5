package urls

// Gemini API pages referenced by generation troubleshooting.

// GeminiAPIKeys is where users create the API key the engine reads from the
// environment.
const GeminiAPIKeys = "https://aistudio.google.com/apikey"

// GeminiModels lists the model names accepted in engine.model.
const GeminiModels = "https://ai.google.dev/gemini-api/docs/models"

// GeminiRateLimits explains per-plan quotas behind 429 responses.
const GeminiRateLimits = "https://ai.google.dev/gemini-api/docs/rate-limits"

// NotionIntegrations is where integration tokens and their content
// permissions are managed. Shown after a failed handshake.
const NotionIntegrations = "https://www.notion.so/profile/integrations"

// ZapierCatchHook is the catch hook shown on the recipe tab. It is display
// copy only; nothing is ever sent to it.
const ZapierCatchHook = "https://hooks.zapier.com/hooks/catch/25754122/ualsa4f/"
