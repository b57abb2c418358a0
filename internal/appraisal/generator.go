package appraisal

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors for the failure taxonomy of delegated generation.
var (
	// ErrUnavailable indicates no generator or credential is configured.
	ErrUnavailable = errors.New("delegated generation unavailable")
	// ErrEmptyResponse indicates the generator succeeded but returned blank text.
	ErrEmptyResponse = errors.New("generator returned empty text")
)

// GenerateOptions bounds a single generation request.
type GenerateOptions struct {
	MaxOutputTokens int
	Temperature     float64
}

// DefaultGenerateOptions returns a small token budget with enough
// randomness for stylistic variety.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		MaxOutputTokens: 60,
		Temperature:     0.8,
	}
}

// Result is the outcome of one generation attempt: either text or an error.
type Result struct {
	Text string
	Err  error
}

// Ok wraps generated text.
func Ok(text string) Result { return Result{Text: text} }

// Err wraps a provider failure.
func Err(err error) Result { return Result{Err: err} }

// Failure classifies the result. A nil-error result with blank text is an
// empty response, not a success.
func (r Result) Failure() Failure {
	switch {
	case r.Err != nil:
		return FailureProvider
	case strings.TrimSpace(r.Text) == "":
		return FailureEmpty
	default:
		return FailureNone
	}
}

// Generator is the external text-generation capability. Implementations
// report every failure through the Result; they must not panic.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) Result
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string, opts GenerateOptions) Result

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string, opts GenerateOptions) Result {
	return f(ctx, prompt, opts)
}

// Failure names why a delegated appraisal did not use generated text.
type Failure string

const (
	FailureNone        Failure = ""
	FailureUnavailable Failure = "unavailable"
	FailureProvider    Failure = "provider_error"
	FailureEmpty       Failure = "empty_response"
)
