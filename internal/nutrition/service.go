// Package nutrition implements the plan computation service: one Gemini call
// per request, a strict response schema, and structured parsing of the
// result. No retries, no caching, no unit conversion.
package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"dailydose/internal/types"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Service computes feeding plans via the Gemini API.
type Service struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Options configures a Service.
type Options struct {
	APIKey string
	Model  string
	// Timeout bounds a single computation. Zero means no deadline.
	Timeout time.Duration
}

// New creates the nutrition service. A missing API key is a
// ConfigurationError: the caller should degrade to review mode rather than
// crash.
func New(ctx context.Context, opts Options) (*Service, error) {
	if opts.APIKey == "" {
		return nil, &ConfigurationError{Reason: "API key is missing; set the GEMINI_API_KEY environment variable"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: opts.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	return &Service{client: client, model: model, timeout: opts.Timeout}, nil
}

// ComputePlan performs the single external call for one pet profile and
// parses the structured result. Any transport, empty-response, or schema
// failure comes back as a ComputationError.
func (s *Service) ComputePlan(ctx context.Context, profile types.PetProfile) (*types.NutritionResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromText(buildPrompt(profile), genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   resultSchema(),
	})
	if err != nil {
		return nil, &ComputationError{Err: fmt.Errorf("generate failed: %w", err)}
	}

	text := resp.Text()
	if text == "" {
		return nil, &ComputationError{Err: fmt.Errorf("no response from model")}
	}

	return decodeResult([]byte(text))
}

// decodeResult parses the model's JSON output against the result shape.
func decodeResult(data []byte) (*types.NutritionResult, error) {
	var result types.NutritionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &ComputationError{Err: fmt.Errorf("malformed response: %w", err)}
	}
	if result.DailyCalories <= 0 {
		return nil, &ComputationError{Err: fmt.Errorf("response missing daily calorie target")}
	}
	return &result, nil
}

// Model returns the configured model name.
func (s *Service) Model() string {
	return s.model
}
