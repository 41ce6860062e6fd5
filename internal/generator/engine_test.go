package generator

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"google.golang.org/genai"

	"github.com/agolabs/architect/internal/framework"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type call struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeModels struct {
	mu    sync.Mutex
	calls []call
	text  string
	err   error
	block bool
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{model: model, contents: contents, config: config})
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return textResponse(f.text), nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func promptOf(t *testing.T, c call) string {
	t.Helper()
	if len(c.contents) != 1 || len(c.contents[0].Parts) != 1 {
		t.Fatalf("unexpected contents shape: %+v", c.contents)
	}
	return c.contents[0].Parts[0].Text
}

func validPayload(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../blueprint/testdata/valid.json")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	return string(data)
}

func TestGenerateSingleCallPromptContents(t *testing.T) {
	for _, fw := range framework.All() {
		t.Run(string(fw.ID), func(t *testing.T) {
			fake := &fakeModels{text: validPayload(t)}
			eng := NewWithModels(fake, Config{ThinkingBudget: DefaultThinkingBudget})

			if _, err := eng.Generate(context.Background(), "Cold Brew Subscriptions", fw.ID); err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(fake.calls) != 1 {
				t.Fatalf("got %d calls, want exactly 1", len(fake.calls))
			}
			prompt := promptOf(t, fake.calls[0])
			if !strings.Contains(prompt, "Cold Brew Subscriptions") {
				t.Error("prompt missing keyword")
			}
			if !strings.Contains(prompt, fw.Name) {
				t.Errorf("prompt missing framework name %q", fw.Name)
			}
		})
	}
}

func TestGenerateRequestConfig(t *testing.T) {
	fake := &fakeModels{text: validPayload(t)}
	eng := NewWithModels(fake, Config{ThinkingBudget: 4096})

	if _, err := eng.Generate(context.Background(), "kw", framework.GrowthEngine); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	c := fake.calls[0]
	if c.model != DefaultModel {
		t.Errorf("model = %q, want %q", c.model, DefaultModel)
	}
	if c.config.ResponseMIMEType != "application/json" {
		t.Errorf("ResponseMIMEType = %q", c.config.ResponseMIMEType)
	}
	if got := len(c.config.ResponseSchema.Required); got != 9 {
		t.Errorf("schema requires %d fields, want 9", got)
	}
	if c.config.ThinkingConfig == nil || *c.config.ThinkingConfig.ThinkingBudget != 4096 {
		t.Errorf("ThinkingConfig = %+v, want budget 4096", c.config.ThinkingConfig)
	}
	if c.config.SystemInstruction == nil || !strings.Contains(c.config.SystemInstruction.Parts[0].Text, "Automated Asset Architect") {
		t.Error("system instruction not set")
	}
}

func TestGenerateThinkingDisabled(t *testing.T) {
	fake := &fakeModels{text: validPayload(t)}
	eng := NewWithModels(fake, Config{Model: "custom-model"})

	if _, err := eng.Generate(context.Background(), "kw", ""); err != nil {
		t.Fatal(err)
	}
	if fake.calls[0].config.ThinkingConfig != nil {
		t.Error("ThinkingConfig should be nil when budget is 0")
	}
	if fake.calls[0].model != "custom-model" {
		t.Errorf("model = %q", fake.calls[0].model)
	}
}

func TestGenerateUnknownFrameworkFallsBack(t *testing.T) {
	fake := &fakeModels{text: validPayload(t)}
	eng := NewWithModels(fake, Config{})

	if _, err := eng.Generate(context.Background(), "kw", "no_such_engine"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(promptOf(t, fake.calls[0]), framework.Default().Name) {
		t.Error("prompt should use the default framework")
	}
}

func TestGenerateKeywordOverridesPayload(t *testing.T) {
	fake := &fakeModels{text: validPayload(t)}
	eng := NewWithModels(fake, Config{})

	bp, err := eng.Generate(context.Background(), "  Real Keyword  ", framework.FourPillar)
	if err != nil {
		t.Fatal(err)
	}
	if bp.Keyword != "Real Keyword" {
		t.Errorf("Keyword = %q, want %q", bp.Keyword, "Real Keyword")
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name    string
		fake    *fakeModels
		keyword string
		check   func(error) bool
		message string
	}{
		{"empty text", &fakeModels{text: ""}, "kw", IsEmptyResponse, MsgEmptyResponse},
		{"whitespace text", &fakeModels{text: "  \n"}, "kw", IsMalformed, MsgMalformed},
		{"empty fence", &fakeModels{text: "```json\n```"}, "kw", IsMalformed, MsgMalformed},
		{"non json", &fakeModels{text: "Sure! Here is your blueprint."}, "kw", IsMalformed, MsgMalformed},
		{"schema mismatch", &fakeModels{text: `{"productTitle":"x"}`}, "kw", IsMalformed, MsgMalformed},
		{"api error", &fakeModels{err: errors.New("503 unavailable")}, "kw", func(err error) bool {
			var e *Error
			return errors.As(err, &e) && e.Kind == KindAPI
		}, "Engine Error: 503 unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := NewWithModels(tt.fake, Config{})
			bp, err := eng.Generate(context.Background(), tt.keyword, framework.GrowthEngine)
			if bp != nil {
				t.Errorf("blueprint = %+v, want nil", bp)
			}
			if !tt.check(err) {
				t.Fatalf("unexpected error classification: %v", err)
			}
			if got := ShortMessage(err); got != tt.message {
				t.Errorf("ShortMessage() = %q, want %q", got, tt.message)
			}
			if len(tt.fake.calls) != 1 {
				t.Errorf("got %d calls, want 1 (no retries)", len(tt.fake.calls))
			}
		})
	}
}

func TestGenerateEmptyKeywordMakesNoCall(t *testing.T) {
	fake := &fakeModels{text: validPayload(t)}
	eng := NewWithModels(fake, Config{})

	_, err := eng.Generate(context.Background(), "   ", framework.GrowthEngine)
	if !errors.Is(err, ErrEmptyKeyword) {
		t.Fatalf("error = %v, want ErrEmptyKeyword", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("got %d calls, want 0", len(fake.calls))
	}
}

func TestGenerateCanceled(t *testing.T) {
	fake := &fakeModels{block: true}
	eng := NewWithModels(fake, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := eng.Generate(ctx, "kw", framework.GrowthEngine)
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !IsCanceled(err) {
			t.Errorf("error = %v, want canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Generate did not return after cancel")
	}
}

func TestGenerateTimeout(t *testing.T) {
	fake := &fakeModels{block: true}
	eng := NewWithModels(fake, Config{Timeout: 20 * time.Millisecond})

	_, err := eng.Generate(context.Background(), "kw", framework.GrowthEngine)
	if !IsCanceled(err) {
		t.Errorf("error = %v, want canceled by deadline", err)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	if !IsConfigError(err) {
		t.Errorf("New() error = %v, want config error", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	fw := framework.Resolve(framework.LeadMachine)
	p := BuildPrompt("Dog Grooming", fw)

	for _, want := range []string{
		`Context Keyword: "Dog Grooming"`,
		"Active Framework: Lead Extraction Protocol",
		"Framework Protocol: " + fw.Prompt,
		"Create a master dashboard for Dog Grooming.",
		"9. notionSchema",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptKeepsKeywordVerbatim(t *testing.T) {
	p := BuildPrompt(`Say "hi" \ now`, framework.Default())
	if want := `Context Keyword: "Say "hi" \ now"`; !strings.Contains(p, want) {
		t.Errorf("prompt missing %q", want)
	}
}

func TestResponseSchemaShape(t *testing.T) {
	s := ResponseSchema()
	if s.Type != genai.TypeObject {
		t.Fatalf("Type = %v", s.Type)
	}
	ns := s.Properties["notionSchema"]
	if ns == nil || ns.Type != genai.TypeObject {
		t.Fatal("notionSchema should be an object")
	}
	items := ns.Properties["properties"].Items
	if len(items.Required) != 2 || items.Required[0] != "name" || items.Required[1] != "type" {
		t.Errorf("property items required = %v", items.Required)
	}
	if items.Properties["options"].Items.Type != genai.TypeString {
		t.Error("options should be an array of strings")
	}
}
