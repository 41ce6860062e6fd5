// Package generator turns a keyword and a framework selection into a
// deployment blueprint with a single call to the Gemini API.
//
// The engine talks to the API through the Models interface, which matches
// genai.Models.GenerateContent so tests can substitute a fake:
//
//	eng, err := generator.New(ctx, generator.Config{APIKey: key})
//	if err != nil {
//	    return err
//	}
//	bp, err := eng.Generate(ctx, "Q1 Product Marketing Lifecycle", framework.GrowthEngine)
//
// Every call is a single attempt. Failures are returned as *Error values whose
// Kind separates empty responses, malformed structured output, API failures
// and cancellation.
package generator
