// Package tafiti packages research-study content as a directory of localized
// files next to a language-agnostic study definition. It resolves logical
// resource references to the best concrete localized file for a requested
// locale and, before a bundle ships, verifies that all localizations of every
// resource are structurally consistent with a base localization.
package tafiti

import (
	"context"

	"github.com/pitabwire/util"

	"github.com/pitabwire/tafiti/config"
	"github.com/pitabwire/tafiti/locale"
	"github.com/pitabwire/tafiti/workerpool"
)

type contextKey string

func (c contextKey) String() string {
	return "tafiti/" + string(c)
}

const ctxKeyBundle = contextKey("bundleKey")

const defaultBaseLanguage = "en"

// Bundle holds together one opened study bundle: its store, its definition
// and the policies resolution and validation run under. An instance is
// created per bundle and passed around through contexts.
type Bundle struct {
	name         string
	store        *Store
	definition   *Definition
	behaviour    locale.MatchBehaviour
	fallback     locale.Key
	baseLanguage string
	minimumScore float64
	poolOptions  []workerpool.Option
	logger       *util.LogEntry
}

// Option configures a Bundle during New.
type Option func(ctx context.Context, b *Bundle)

// New creates a Bundle with the supplied options and stores it on the
// returned context.
func New(ctx context.Context, name string, opts ...Option) (context.Context, *Bundle) {
	b := &Bundle{
		name:         name,
		behaviour:    locale.PreferLanguageMatch(),
		baseLanguage: defaultBaseLanguage,
		minimumScore: config.DefaultMinimumScore,
		logger:       util.Log(ctx).WithField("bundle", name),
	}

	for _, opt := range opts {
		opt(ctx, b)
	}

	return ToContext(ctx, b), b
}

// ToContext adds a bundle to the current supplied context.
func ToContext(ctx context.Context, b *Bundle) context.Context {
	return context.WithValue(ctx, ctxKeyBundle, b)
}

// FromContext extracts a bundle from the supplied context if any exists.
func FromContext(ctx context.Context) *Bundle {
	b, ok := ctx.Value(ctxKeyBundle).(*Bundle)
	if !ok {
		return nil
	}

	return b
}

// Name returns the bundle's name.
func (b *Bundle) Name() string {
	return b.name
}

// Definition returns the study definition loaded for this bundle, if any.
func (b *Bundle) Definition() *Definition {
	return b.definition
}

// Log obtains a logger scoped to this bundle.
func (b *Bundle) Log(ctx context.Context) *util.LogEntry {
	return b.logger.WithContext(ctx)
}

// WithStore attaches the file store the bundle's resources live in.
func WithStore(store *Store) Option {
	return func(_ context.Context, b *Bundle) {
		b.store = store
	}
}

// WithDefinition attaches an already parsed study definition.
func WithDefinition(definition *Definition) Option {
	return func(_ context.Context, b *Bundle) {
		b.definition = definition
	}
}

// WithMatchBehaviour sets the locale matching behaviour used by Resolve.
func WithMatchBehaviour(behaviour locale.MatchBehaviour) Option {
	return func(_ context.Context, b *Bundle) {
		b.behaviour = behaviour
	}
}

// WithFallback designates the default localization returned when no
// candidate scores above the resolution threshold, e.g. "en-US".
func WithFallback(fallback locale.Key) Option {
	return func(_ context.Context, b *Bundle) {
		b.fallback = fallback
	}
}

// WithBaseLanguage sets the bundle's nominal authoring language, consulted
// when electing a base localization for cross-locale comparison.
func WithBaseLanguage(lang string) Option {
	return func(_ context.Context, b *Bundle) {
		if lang != "" {
			b.baseLanguage = lang
		}
	}
}

// WithMinimumScore overrides the resolution score threshold.
func WithMinimumScore(score float64) Option {
	return func(_ context.Context, b *Bundle) {
		b.minimumScore = score
	}
}

// WithWorkerPoolOptions forwards options to the validation worker pool.
func WithWorkerPoolOptions(opts ...workerpool.Option) Option {
	return func(_ context.Context, b *Bundle) {
		b.poolOptions = opts
	}
}

// WithConfig applies an environment-driven configuration to the bundle.
func WithConfig(cfg config.BundleConfig) Option {
	return func(ctx context.Context, b *Bundle) {
		b.baseLanguage = cfg.BaseLanguage()
		b.minimumScore = cfg.MinimumScore()
		b.behaviour = BehaviourByName(cfg.MatchBehaviour())

		fallback, err := locale.Parse(cfg.FallbackLocalization())
		if err != nil {
			b.Log(ctx).WithError(err).
				WithField("fallback", cfg.FallbackLocalization()).
				Warn("configured fallback localization is unusable")
			return
		}
		b.fallback = fallback
	}
}

// BehaviourByName maps a configuration string to a matching behaviour,
// defaulting to preferring language matches.
func BehaviourByName(name string) locale.MatchBehaviour {
	switch name {
	case "perfect", "require_perfect":
		return locale.RequirePerfectMatch()
	case "prefer_region":
		return locale.PreferRegionMatch()
	default:
		return locale.PreferLanguageMatch()
	}
}
