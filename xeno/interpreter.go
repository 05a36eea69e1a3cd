package xeno

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// TraceLevel selects whether executions record a trace. Basic and Detailed
// currently record the same entries.
type TraceLevel int

const (
	TraceNone TraceLevel = iota
	TraceBasic
	TraceDetailed
)

func (l TraceLevel) String() string {
	switch l {
	case TraceNone:
		return "none"
	case TraceBasic:
		return "basic"
	case TraceDetailed:
		return "detailed"
	default:
		return fmt.Sprintf("trace(%d)", int(l))
	}
}

// ParseTraceLevel accepts none, basic or detailed (case-insensitive).
func ParseTraceLevel(s string) (TraceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return TraceNone, nil
	case "basic", "on":
		return TraceBasic, nil
	case "detailed":
		return TraceDetailed, nil
	default:
		return TraceNone, fmt.Errorf("xeno: unknown trace level %q", s)
	}
}

// Config controls tracing and execution bounds.
type Config struct {
	Trace            TraceLevel
	StepQuota        int
	RecursionLimit   int
	MemoryQuotaBytes int
	Logger           *zerolog.Logger
}

const (
	defaultStepQuota        = 100000
	defaultRecursionLimit   = 256
	defaultMemoryQuotaBytes = 1 << 20
)

// Engine runs Xenocode programs. It holds only configuration, so one Engine
// can serve concurrent Execute calls; each call gets its own state.
type Engine struct {
	config Config
	logger zerolog.Logger
}

// NewEngine constructs an Engine, filling in defaults for unset limits.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Trace < TraceNone || cfg.Trace > TraceDetailed {
		return nil, fmt.Errorf("xeno: invalid trace level %d", int(cfg.Trace))
	}
	if cfg.StepQuota <= 0 {
		cfg.StepQuota = defaultStepQuota
	}
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.MemoryQuotaBytes <= 0 {
		cfg.MemoryQuotaBytes = defaultMemoryQuotaBytes
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Engine{config: cfg, logger: logger}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Config returns the effective configuration, defaults included.
func (e *Engine) Config() Config {
	return e.config
}

// ConfigSummary provides a human-readable description of the interpreter limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("trace=%s steps=%d recursion=%d memory=%dB", e.config.Trace, e.config.StepQuota, e.config.RecursionLimit, e.config.MemoryQuotaBytes)
}
