package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"stock-image-tagger/internal/config"
	apperrors "stock-image-tagger/internal/errors"
	"stock-image-tagger/internal/logger"
	"stock-image-tagger/pkg/models"
)

// Analyzer produces a structured analysis for one image file.
type Analyzer interface {
	Analyze(ctx context.Context, imagePath string) (*models.AnalysisResult, error)
}

// analysisPrompt asks for strict JSON matching the AnalysisResult shape. The
// model is not always obedient; ParseResponse copes with fenced or broken
// output.
const analysisPrompt = `Suggest a short, effective sales title for this image in English. Provide a basic description of the image. Describe the image for a client, highlighting its benefits and potential uses in English. List the key artistic styles, a single scene label, and the most impactful distinctive elements of the image in English. Suggest use cases and a target audience. Provide the response strictly in JSON format with no markdown fences.

Expected JSON format:
{
  "suggested_title": "Short sales title",
  "basic_description": "A basic, plain description of the image",
  "persuasive_description": "Client-focused description highlighting benefits and uses",
  "scene": "Single scene or mood label",
  "key_styles": ["Style 1", "Style 2"],
  "distinctive_elements": ["Element 1", "Element 2"],
  "suggested_use_cases": ["Use case 1"],
  "suggested_target_audience": ["Audience 1"]
}

If the image is abstract, describe the emotions and interpretations it may evoke.`

// generateFunc performs one outbound model call. Swapped out in tests so the
// retry and pacing machinery can be exercised without network access.
type generateFunc func(ctx context.Context, imageData []byte, mimeType string) (string, error)

// GeminiAnalyzer calls the Gemini API with retry, exponential backoff and
// run-wide pacing. Transient failures (quota, unavailable, timeout) are
// retried up to the configured attempt cap; permanent failures surface
// immediately. The pacer is shared across every image in the run.
type GeminiAnalyzer struct {
	model    string
	schedule func() *retrySchedule
	pacer    *pacer
	timeout  time.Duration
	generate generateFunc
	sleep    sleepFunc
	log      *logrus.Entry

	// OnRetry, when set, is invoked before each backoff sleep.
	OnRetry func(attempt int, delay time.Duration, cause error)
}

// NewGeminiAnalyzer creates an analyzer backed by the Gemini API.
func NewGeminiAnalyzer(ctx context.Context, cfg *config.Config) (*GeminiAnalyzer, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	a := newAnalyzer(cfg)
	a.generate = func(ctx context.Context, imageData []byte, mimeType string) (string, error) {
		contents := []*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageData}},
				{Text: analysisPrompt},
			},
		}}
		generateConfig := &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		}

		resp, err := client.Models.GenerateContent(ctx, a.model, contents, generateConfig)
		if err != nil {
			return "", err
		}

		var text strings.Builder
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				text.WriteString(part.Text)
			}
		}
		if text.Len() == 0 {
			return "", apperrors.NewInvalidImageError("model returned no candidates", nil)
		}
		return text.String(), nil
	}
	return a, nil
}

// newAnalyzer builds the retry/pacing shell without a live backend.
func newAnalyzer(cfg *config.Config) *GeminiAnalyzer {
	maxAttempts := cfg.MaxAttempts
	initial := cfg.InitialDelay
	factor := cfg.BackoffFactor
	return &GeminiAnalyzer{
		model: cfg.Model,
		schedule: func() *retrySchedule {
			return newRetrySchedule(maxAttempts, initial, factor)
		},
		pacer:   newPacer(cfg.InterRequestDelay),
		timeout: cfg.RequestTimeout,
		sleep:   contextSleep,
		log:     logger.WithField("component", "analysis"),
	}
}

// Analyze runs the full retry loop for one image. It returns a typed AppError
// on failure and never panics; the orchestrator downgrades the error to a
// record-level string and proceeds with fallback synthesis.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, imagePath string) (*models.AnalysisResult, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, apperrors.NewInvalidImageError(fmt.Sprintf("failed to read image %s", imagePath), err)
	}
	mimeType := mimeForPath(imagePath)

	schedule := a.schedule()
	var lastErr *apperrors.AppError

	for schedule.Begin() {
		if err := a.pacer.Wait(ctx); err != nil {
			return nil, apperrors.NewInternalError("run cancelled while pacing", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		text, err := a.generate(callCtx, data, mimeType)
		cancel()

		if err == nil {
			a.log.WithFields(logrus.Fields{
				"image":   imagePath,
				"attempt": schedule.Attempt(),
			}).Debug("Image analysis call succeeded")
			return ParseResponse(text), nil
		}

		lastErr = classify(err)
		a.log.WithFields(logrus.Fields{
			"image":     imagePath,
			"attempt":   schedule.Attempt(),
			"kind":      string(lastErr.Type),
			"transient": lastErr.Transient(),
		}).WithError(err).Warn("Image analysis call failed")

		if ctx.Err() != nil {
			return nil, apperrors.NewInternalError("run cancelled during analysis", ctx.Err())
		}
		if !lastErr.Transient() || schedule.Exhausted() {
			break
		}

		delay := schedule.Delay()
		if a.OnRetry != nil {
			a.OnRetry(schedule.Attempt(), delay, lastErr)
		}
		a.log.WithFields(logrus.Fields{
			"image": imagePath,
			"delay": delay.String(),
		}).Info("Backing off before retry")
		if err := a.sleep(ctx, delay); err != nil {
			return nil, apperrors.NewInternalError("run cancelled during backoff", err)
		}
	}

	return nil, lastErr
}

// classify maps an upstream failure onto the transient/permanent taxonomy.
func classify(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError("analysis call timed out", err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return apperrors.NewQuotaError("quota exceeded", err)
		case apiErr.Code == 401 || apiErr.Code == 403:
			return apperrors.NewUnauthorizedError("authentication failed", err)
		case apiErr.Code == 400 || apiErr.Code == 404 || apiErr.Code == 422:
			return apperrors.NewInvalidImageError("service rejected the image", err)
		case apiErr.Code >= 500:
			return apperrors.NewUnavailableError("analysis service unavailable", err)
		}
	}

	// Transport-level failures (connection reset, DNS) are worth retrying.
	return apperrors.NewUnavailableError("analysis call failed", err)
}

func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}
