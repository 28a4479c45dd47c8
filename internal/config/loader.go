// Package config loads the layered YAML configuration file for the
// Feature Flag Manager (C8), using viper the way the teacher's
// loadConfig() does, but populating an explicit struct instead of a
// global package variable.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// FeatureFlagFile is the parsed shape of config/feature_flags.yaml:
// one section per environment, each holding a flat flags map.
type FeatureFlagFile struct {
	Development map[string]bool
	Staging     map[string]bool
	Production  map[string]bool
}

type rawFile struct {
	Development struct {
		FeatureFlags map[string]bool `mapstructure:"feature_flags"`
	} `mapstructure:"development"`
	Staging struct {
		FeatureFlags map[string]bool `mapstructure:"feature_flags"`
	} `mapstructure:"staging"`
	Production struct {
		FeatureFlags map[string]bool `mapstructure:"feature_flags"`
	} `mapstructure:"production"`
}

// Load reads configDir/feature_flags.yaml and returns the per-environment
// flag maps. A missing file is not an error: callers fall back to
// compiled-in defaults plus environment variables.
func Load(configDir string) (*FeatureFlagFile, error) {
	v := viper.New()
	v.SetConfigName("feature_flags")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return &FeatureFlagFile{}, nil
		}
		return nil, fmt.Errorf("reading feature flag config: %w", err)
	}

	var raw rawFile
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("parsing feature flag config: %w", err)
	}

	return &FeatureFlagFile{
		Development: raw.Development.FeatureFlags,
		Staging:     raw.Staging.FeatureFlags,
		Production:  raw.Production.FeatureFlags,
	}, nil
}

// Section selects the flag map for the named environment
// ("development", "staging", "production"), defaulting to
// development's section (or an empty map) for anything else.
func (f *FeatureFlagFile) Section(appEnv string) map[string]bool {
	if f == nil {
		return nil
	}
	switch appEnv {
	case "production":
		return f.Production
	case "staging":
		return f.Staging
	default:
		return f.Development
	}
}
