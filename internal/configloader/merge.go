package configloader

import "github.com/yaklabco/gomdlinks/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.BaseRef != "" {
		result.BaseRef = override.BaseRef
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Timeout != 0 {
		result.Timeout = override.Timeout
	}
	if override.LinkConcurrency != 0 {
		result.LinkConcurrency = override.LinkConcurrency
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.UserAgent != "" {
		result.UserAgent = override.UserAgent
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	// IgnoreAdded is a pointer so a config file can turn it off.
	if override.IgnoreAdded != nil {
		ignoreAdded := *override.IgnoreAdded
		result.IgnoreAdded = &ignoreAdded
	}

	if override.Whitelist != nil {
		result.Whitelist = append([]string(nil), override.Whitelist...)
	}
	if override.Files != nil {
		result.Files = append([]string(nil), override.Files...)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
