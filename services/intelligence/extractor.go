// File: services/intelligence/extractor.go
package ai

import (
	"context"
	"fmt"

	"caregrid/utils"

	"go.uber.org/zap"
)

// extractionPromptPreamble instructs the model to answer with one strict
// JSON object. The downstream validator still treats the output as fully
// untrusted; the prompt only raises the hit rate.
const extractionPromptPreamble = `You are reading a person's weekly work schedule.
Respond with exactly one JSON object and nothing else, using this shape:
{"title": string, "workingDays": [day names], "daySchedules": {day name: {"timeFrom": "HH:MM", "timeTo": "HH:MM"}}, "location": string, "notes": string}
Use 24-hour times. Include only days that are actually worked. Do not invent days.`

// ScheduleExtractor produces raw, loosely-structured extractor output for
// each input channel. Implementations return text only; validation and
// normalization happen in the schedule service.
type ScheduleExtractor interface {
	ExtractFromText(ctx context.Context, text string) (string, error)
	ExtractFromImage(ctx context.Context, format string, data []byte) (string, error)
}

// GeminiExtractor implements ScheduleExtractor on the Gemini client with a
// Redis memo layer in front of the model.
type GeminiExtractor struct {
	Client *GeminiClient
	Cache  *RedisExtractionCache
}

func NewGeminiExtractor(client *GeminiClient, cache *RedisExtractionCache) *GeminiExtractor {
	return &GeminiExtractor{Client: client, Cache: cache}
}

// ExtractFromText asks the model to pull a schedule out of free text
// (a transcript or OCR'd document body).
func (e *GeminiExtractor) ExtractFromText(ctx context.Context, text string) (string, error) {
	key := ContentKey([]byte(text))
	if raw, ok := e.cachedResult(ctx, key); ok {
		return raw, nil
	}

	prompt := extractionPromptPreamble + "\n\nSchedule description:\n" + text
	raw, err := e.Client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	e.storeResult(ctx, key, raw)
	return raw, nil
}

// ExtractFromImage runs the multimodal model directly over an uploaded
// document image.
func (e *GeminiExtractor) ExtractFromImage(ctx context.Context, format string, data []byte) (string, error) {
	key := ContentKey(data)
	if raw, ok := e.cachedResult(ctx, key); ok {
		return raw, nil
	}

	raw, err := e.Client.GenerateFromImage(ctx, extractionPromptPreamble, format, data)
	if err != nil {
		return "", fmt.Errorf("image extraction failed: %w", err)
	}
	e.storeResult(ctx, key, raw)
	return raw, nil
}

func (e *GeminiExtractor) cachedResult(ctx context.Context, key string) (string, bool) {
	if e.Cache == nil {
		return "", false
	}
	raw, ok, err := e.Cache.Get(ctx, key)
	if err != nil {
		utils.GetLogger().Warn("extraction cache read failed", zap.Error(err))
		return "", false
	}
	return raw, ok
}

func (e *GeminiExtractor) storeResult(ctx context.Context, key, raw string) {
	if e.Cache == nil {
		return
	}
	if err := e.Cache.Set(ctx, key, raw); err != nil {
		utils.GetLogger().Warn("extraction cache write failed", zap.Error(err))
	}
}
