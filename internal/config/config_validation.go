// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.PasswordHashKey == "" || cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver != "pgx" && cfg.Storage.DB.Driver != "sqlite3" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Matcher.DescriptorLength <= 0 ||
		cfg.Matcher.VerifyThreshold <= 0 ||
		cfg.Matcher.IdentifyThreshold <= 0 ||
		cfg.Matcher.IdentifyWorkers <= 0 {
		return ErrInvalidMatcherConfigs
	}

	if cfg.Recognizer.BaseURL == "" {
		return ErrInvalidRecognizerConfigs
	}

	return nil
}
