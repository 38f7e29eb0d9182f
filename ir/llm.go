package ir

import "time"

// LlmModel names a concrete model configuration available to intents.
type LlmModel struct {
	Loc       Location
	Name      string
	Provider  string
	ModelID   string
	Tier      string
	MaxTokens int // 0 means unset
}

func (m *LlmModel) Accept(v DeclVisitor) error { return v.VisitLlmModel(m) }
func (m *LlmModel) DeclName() string           { return m.Name }
func (m *LlmModel) DeclLocation() Location     { return m.Loc }

// PiiAction is the response to a detected PII span.
type PiiAction string

const (
	PiiRedact PiiAction = "redact"
	PiiWarn   PiiAction = "warn"
)

// PiiPolicy configures the intent's PII scan behavior.
type PiiPolicy struct {
	Scan   bool
	Action PiiAction
}

// RetryPolicy configures an intent's retry behavior.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     string
	Delays      []time.Duration
}

// LlmIntent is a single named prompt/output-schema/retry configuration.
type LlmIntent struct {
	Loc          Location
	Name         string
	Model        string // LlmModel reference, unresolved; empty means default
	Prompt       string
	OutputSchema string
	Timeout      time.Duration
	Retry        RetryPolicy
	Pii          PiiPolicy
}

func (i *LlmIntent) Accept(v DeclVisitor) error { return v.VisitLlmIntent(i) }
func (i *LlmIntent) DeclName() string           { return i.Name }
func (i *LlmIntent) DeclLocation() Location     { return i.Loc }

// LlmConfig is the process-wide singleton configuring defaults,
// artifact storage, logging, and per-model rate limits. At most one
// may exist across an entire AppSpec.
type LlmConfig struct {
	Loc             Location
	DefaultModel    string
	ArtifactStore   string
	LogPrompts      bool
	LogResponses    bool
	RateLimits      map[string]int // model name -> requests per minute
}

func (c *LlmConfig) Accept(v DeclVisitor) error { return v.VisitLlmConfig(c) }
func (c *LlmConfig) DeclName() string           { return "llm_config" }
func (c *LlmConfig) DeclLocation() Location     { return c.Loc }
