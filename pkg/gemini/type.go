package gemini

import (
	"time"

	pkghttp "analytics-srv/pkg/http"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Generative Language API endpoint used with an API key.
	BaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"
	// DefaultLocation is the Vertex AI region used with service-account credentials.
	DefaultLocation = "us-central1"
	// DefaultTimeout bounds one generation call.
	DefaultTimeout = 60 * time.Second
	// DefaultRetries is the retry budget for transient failures.
	DefaultRetries = 2
	// DefaultRequestsPerMinute caps outgoing calls per process.
	DefaultRequestsPerMinute = 60

	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
	rateLimiterBurst   = 5
)

// GeminiConfig holds the configuration for the Gemini client.
// Either APIKey, or ProjectID with CredentialsFile, must be set.
type GeminiConfig struct {
	APIKey            string
	ProjectID         string
	CredentialsFile   string
	Location          string
	Model             string
	Temperature       float64
	Timeout           time.Duration
	Retries           int
	RequestsPerMinute int
}

// geminiImpl implements IGemini using the Gemini generateContent API.
type geminiImpl struct {
	apiKey      string
	projectID   string
	location    string
	model       string
	temperature float64
	tokens      oauth2.TokenSource
	httpClient  pkghttp.IClient
	limiter     *rate.Limiter
}

// Request defines the request body for Generate Content API.
type Request struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerationConfig tunes sampling.
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

// Content represents a single content block.
type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

// Part represents a part of the content.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Response defines the response body from Generate Content API.
type Response struct {
	Candidates    []Candidate   `json:"candidates"`
	UsageMetadata UsageMetadata `json:"usageMetadata"`
}

// Candidate represents a generated candidate.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
	Index        int     `json:"index"`
}

// UsageMetadata represents token usage.
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}
