// Package synthesis produces structured draft pages for keyword candidates,
// either by deterministic template assembly or by delegating to a generative
// text service.
package synthesis

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// SynthesisError reports a failed synthesis attempt: a malformed or
// unparsable generative response. It consumes one retry attempt and never
// aborts the batch.
type SynthesisError struct {
	Keyword string
	Message string
	Cause   error
}

func (e *SynthesisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("synthesis failed for %q: %s: %v", e.Keyword, e.Message, e.Cause)
	}
	return fmt.Sprintf("synthesis failed for %q: %s", e.Keyword, e.Message)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}

// QuotaError reports a hard quota or billing fault from the generative
// service. It is terminal for the whole batch: remaining jobs are abandoned
// and completed work is preserved.
type QuotaError struct {
	Keyword string
	Cause   error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota/billing fault while generating %q: %v", e.Keyword, e.Cause)
}

func (e *QuotaError) Unwrap() error {
	return e.Cause
}

// IsQuota reports whether err is, or wraps, a quota/billing fault
func IsQuota(err error) bool {
	var quotaErr *QuotaError
	return errors.As(err, &quotaErr)
}

// classifyProviderError wraps a provider error as either a terminal
// QuotaError or a retryable SynthesisError.
func classifyProviderError(keyword string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 402 || apiErr.Code == 429 {
			return &QuotaError{Keyword: keyword, Cause: err}
		}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "billing") || strings.Contains(msg, "resource_exhausted") {
		return &QuotaError{Keyword: keyword, Cause: err}
	}
	return &SynthesisError{Keyword: keyword, Message: "generative call failed", Cause: err}
}
