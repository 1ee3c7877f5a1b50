package translate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// fakeInvoker records InvokeModel calls and replays canned responses.
type fakeInvoker struct {
	calls []bedrockruntime.InvokeModelInput
	text  string
	err   error
}

func (f *fakeInvoker) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.calls = append(f.calls, *params)
	if f.err != nil {
		return nil, f.err
	}
	body, _ := json.Marshal(map[string]interface{}{
		"content": []map[string]string{{"type": "text", "text": f.text}},
	})
	return &bedrockruntime.InvokeModelOutput{Body: body}, nil
}

func newTestEngine(invoker *fakeInvoker) *BedrockEngine {
	return &BedrockEngine{client: invoker, config: DefaultEngineConfig()}
}

func TestBedrockTranslate(t *testing.T) {
	invoker := &fakeInvoker{text: "  「おはようございます」 "}
	engine := newTestEngine(invoker)

	got, err := engine.Translate(context.Background(), Request{
		Text: "Good morning", SourceLang: "en", TargetLang: "ja",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "おはようございます" {
		t.Errorf("Translate = %q, want cleaned output", got)
	}

	if len(invoker.calls) != 1 {
		t.Fatalf("InvokeModel called %d times, want 1", len(invoker.calls))
	}
	call := invoker.calls[0]
	if aws.ToString(call.ModelId) != engine.config.Model {
		t.Errorf("ModelId = %q, want %q", aws.ToString(call.ModelId), engine.config.Model)
	}

	var req anthropicRequest
	if err := json.Unmarshal(call.Body, &req); err != nil {
		t.Fatalf("Failed to decode request body: %v", err)
	}
	if req.AnthropicVersion != anthropicVersion {
		t.Errorf("anthropic_version = %q", req.AnthropicVersion)
	}
	if req.MaxTokens != 4096 {
		t.Errorf("max_tokens = %d, want 4096", req.MaxTokens)
	}
	if req.Temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3", req.Temperature)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Fatalf("messages = %+v, want one user turn", req.Messages)
	}
}

func TestBedrockTranslate_EmptyInputShortCircuits(t *testing.T) {
	invoker := &fakeInvoker{text: "should not be used"}
	engine := newTestEngine(invoker)

	for _, input := range []string{"", "   ", "\t\n"} {
		got, err := engine.Translate(context.Background(), Request{Text: input, SourceLang: "en", TargetLang: "ja"})
		if err != nil {
			t.Errorf("Translate(%q) failed: %v", input, err)
		}
		if got != input {
			t.Errorf("Translate(%q) = %q, want input unchanged", input, got)
		}
	}

	if len(invoker.calls) != 0 {
		t.Errorf("InvokeModel called %d times for empty input, want 0", len(invoker.calls))
	}
}

func TestBedrockClassify(t *testing.T) {
	engine := newTestEngine(&fakeInvoker{})

	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{
			"throttling is recoverable",
			&brtypes.ThrottlingException{Message: aws.String("Too many requests")},
			IsRateLimit,
		},
		{
			"quota exceeded is recoverable",
			&brtypes.ServiceQuotaExceededException{Message: aws.String("quota exceeded")},
			IsRateLimit,
		},
		{
			"unknown model is fatal",
			&brtypes.ResourceNotFoundException{Message: aws.String("could not resolve model")},
			func(err error) bool {
				var e *ModelUnavailableError
				return errors.As(err, &e)
			},
		},
		{
			"model access denied is model unavailable",
			&brtypes.AccessDeniedException{Message: aws.String("You don't have access to the model with the specified model ID")},
			func(err error) bool {
				var e *ModelUnavailableError
				return errors.As(err, &e)
			},
		},
		{
			"plain access denied is auth",
			&brtypes.AccessDeniedException{Message: aws.String("User is not authorized to perform this operation")},
			func(err error) bool {
				var e *AuthError
				return errors.As(err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := engine.classify(tt.err)
			if !tt.check(classified) {
				t.Errorf("classify(%v) = %v, wrong category", tt.err, classified)
			}
		})
	}
}

func TestBedrockClassify_FatalAborts(t *testing.T) {
	invoker := &fakeInvoker{err: &brtypes.AccessDeniedException{Message: aws.String("not authorized")}}
	engine := newTestEngine(invoker)

	_, err := engine.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "ja"})
	if !IsFatal(err) {
		t.Errorf("Expected fatal error, got %v", err)
	}
}
