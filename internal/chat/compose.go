package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// TextGenerator is the optional remote text-generation collaborator: given a
// prompt, return generated text or fail. Failures are always recoverable via
// the template path.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const defaultGenerateTimeout = 20 * time.Second

// Composer turns a query plus its result into a conversational answer. The
// remote/template split is decided at construction: a nil generator means
// template-only. The template path is a full-quality answer, not a degraded
// error message.
type Composer struct {
	gen     TextGenerator
	timeout time.Duration
}

// NewComposer builds a composer. gen may be nil for template-only operation;
// timeout <= 0 uses the default bound on remote calls.
func NewComposer(gen TextGenerator, timeout time.Duration) *Composer {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &Composer{gen: gen, timeout: timeout}
}

// Compose never fails. A failed execution yields a fixed apology carrying the
// error text; otherwise the remote generator is tried first and any fault
// falls back to the operation-keyed templates.
func (c *Composer) Compose(ctx context.Context, originalQuery string, q StructuredQuery, res ExecutionResult) string {
	if !res.Success {
		reason := res.Error
		if reason == "" {
			reason = "Unknown"
		}
		return fmt.Sprintf("I'm sorry, I couldn't process your query. Error: %s", reason)
	}

	if c.gen != nil {
		genCtx, cancel := context.WithTimeout(ctx, c.timeout)
		text, err := c.gen.Generate(genCtx, buildPrompt(originalQuery, q, res))
		cancel()
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		if err != nil {
			log.Printf("WARN: text generation failed, falling back to templates: %v", err)
		}
	}

	return templateResponse(q, res)
}

// buildPrompt summarizes the computed result for the remote generator.
func buildPrompt(originalQuery string, q StructuredQuery, res ExecutionResult) string {
	longName := "data"
	units := ""
	if res.Metadata != nil {
		longName = res.Metadata.LongName
		units = res.Metadata.Units
	}

	value := "a depth profile"
	if res.Scalar != nil {
		value = fmt.Sprintf("%.2f", *res.Scalar)
	}

	return fmt.Sprintf(`As a friendly oceanographer AI, explain this ARGO float data result to a user.
User asked: %q
Data found: The %s of %s is %s %s.
Generate a concise, friendly, and informative response in one or two sentences:`,
		originalQuery, q.Operation, longName, value, units)
}

// templateResponse is the deterministic fallback, keyed by operation.
func templateResponse(q StructuredQuery, res ExecutionResult) string {
	name := "data"
	units := ""
	if res.Metadata != nil {
		name = strings.ToLower(res.Metadata.LongName)
		units = res.Metadata.Units
	}

	switch {
	case q.Operation == OperationMean && res.Scalar != nil:
		return fmt.Sprintf("Based on the data, the average %s is %.2f %s.", name, *res.Scalar, units)
	case q.Operation == OperationMax && res.Scalar != nil:
		return fmt.Sprintf("The maximum %s recorded is %.2f %s.", name, *res.Scalar, units)
	case q.Operation == OperationMin && res.Scalar != nil:
		return fmt.Sprintf("The minimum %s found is %.2f %s.", name, *res.Scalar, units)
	case q.Operation == OperationProfile:
		return fmt.Sprintf("I've retrieved a %s profile. It shows how the value changes with ocean depth.", name)
	default:
		return "I've processed your query and the data is ready for viewing."
	}
}
