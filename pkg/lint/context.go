package lint

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// RuleContext is what a rule sees during one Apply call. It is built per
// rule and per file, so it carries the context.Context as a field.
type RuleContext struct {
	Ctx        context.Context
	File       *mdast.FileSnapshot
	Root       *mdast.Node
	Config     *config.Config
	RuleConfig *config.RuleConfig

	// Logger is never nil.
	Logger *log.Logger
}

// NewRuleContext builds a RuleContext. The logger comes from ctx.
func NewRuleContext(ctx context.Context, file *mdast.FileSnapshot, cfg *config.Config, ruleCfg *config.RuleConfig) *RuleContext {
	rc := &RuleContext{
		Ctx:        ctx,
		File:       file,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Logger:     logging.FromContext(ctx),
	}
	if file != nil {
		rc.Root = file.Root
	}
	return rc
}

// Cancelled reports whether Ctx is done.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// IsGFM reports whether table extensions apply. A nil config counts as GFM.
func (rc *RuleContext) IsGFM() bool {
	return rc.Config == nil || rc.Config.Flavor == config.FlavorGFM
}

// Option looks up a rule option, returning def when it is unset.
func (rc *RuleContext) Option(key string, def any) any {
	if rc.RuleConfig == nil {
		return def
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return def
}

// OptionBool is Option for booleans. Values of another type yield def.
func (rc *RuleContext) OptionBool(key string, def bool) bool {
	if b, ok := rc.Option(key, def).(bool); ok {
		return b
	}
	return def
}
