package configloader

import (
	"cmp"
	"maps"

	"github.com/yaklabco/lexkeep/pkg/config"
)

// merge layers override on top of base. Non-zero scalars and non-nil
// lists in override win. Maps are unioned key by key. Booleans can only be
// switched on, and the backups section only counts when it names a mode.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	out := *base
	out.Indent = cmp.Or(override.Indent, base.Indent)
	out.LineEnding = cmp.Or(override.LineEnding, base.LineEnding)
	out.Flavor = cmp.Or(override.Flavor, base.Flavor)
	out.Format = cmp.Or(override.Format, base.Format)
	out.Jobs = cmp.Or(override.Jobs, base.Jobs)

	out.Write = base.Write || override.Write
	out.Diff = base.Diff || override.Diff
	out.NoBackups = base.NoBackups || override.NoBackups

	if override.Backups.Mode != "" {
		out.Backups = override.Backups
	}

	out.Languages = union(base.Languages, override.Languages)
	out.Rules = union(base.Rules, override.Rules)

	if override.Extensions != nil {
		out.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		out.Ignore = override.Ignore
	}
	return &out
}

func union[M ~map[K]V, K comparable, V any](base, override M) M {
	if base == nil && override == nil {
		return nil
	}
	out := make(M, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

// MergeAll folds configs left to right; later entries take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}
