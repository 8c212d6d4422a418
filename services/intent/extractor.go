// Package intent turns free-form travel requests into models.TravelIntent.
package intent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"voyagent/config"
	"voyagent/models"
	"voyagent/services/llm"
)

// Extractor produces a TravelIntent from raw request text.
type Extractor interface {
	Extract(ctx context.Context, text string) (*models.TravelIntent, error)
}

// New returns the extractor selected by mode. Delegated extraction needs a
// completer; without one, hybrid mode degrades to pattern extraction.
func New(mode string, completer llm.Completer, now func() time.Time, logger *zap.Logger) (Extractor, error) {
	pattern := NewPattern(now)

	switch mode {
	case config.ModePattern:
		return pattern, nil
	case config.ModeDelegated:
		if completer == nil {
			return nil, fmt.Errorf("extraction mode %q requires a language service", mode)
		}
		return NewDelegated(completer), nil
	case config.ModeHybrid, "":
		if completer == nil {
			logger.Warn("no language service configured, using pattern extraction only")
			return pattern, nil
		}
		return WithFallback(NewDelegated(completer), pattern, logger), nil
	}
	return nil, fmt.Errorf("unknown extraction mode %q", mode)
}

type fallbackExtractor struct {
	primary  Extractor
	fallback Extractor
	logger   *zap.Logger
}

// WithFallback runs primary and, when it fails for any reason, fallback.
func WithFallback(primary, fallback Extractor, logger *zap.Logger) Extractor {
	return &fallbackExtractor{primary: primary, fallback: fallback, logger: logger}
}

func (f *fallbackExtractor) Extract(ctx context.Context, text string) (*models.TravelIntent, error) {
	intent, err := f.primary.Extract(ctx, text)
	if err == nil {
		return intent, nil
	}
	f.logger.Warn("delegated extraction failed, falling back to patterns", zap.Error(err))
	return f.fallback.Extract(ctx, text)
}

func requireText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &models.ExtractionError{Reason: "empty request"}
	}
	return nil
}
