// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values applied to fields left unset by every configuration source.
//
// The matcher defaults mirror the reference deployment: a 128-element
// descriptor and a 0.45 operating threshold for both the 1:1 and the 1:N
// decision, stricter than the recognition network's recommended 0.6
// separation threshold.
const (
	DefaultHTTPAddress    = "0.0.0.0:3000"
	DefaultRequestTimeout = 30 * time.Second

	DefaultTokenIssuer   = "face-login-server"
	DefaultTokenDuration = 24 * time.Hour

	DefaultDescriptorLength  = 128
	DefaultVerifyThreshold   = 0.45
	DefaultIdentifyThreshold = 0.45
	DefaultIdentifyTimeout   = 5 * time.Second
	DefaultIdentifyWorkers   = 4

	DefaultDBDriver = "pgx"

	DefaultRecognizerTimeout = 15 * time.Second
)

// applyDefaults fills zero-valued fields with the package defaults.
// Secrets (hash key, sign key) and the DSN have no defaults on purpose.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = DefaultTokenDuration
	}

	if cfg.Matcher.DescriptorLength == 0 {
		cfg.Matcher.DescriptorLength = DefaultDescriptorLength
	}
	if cfg.Matcher.VerifyThreshold == 0 {
		cfg.Matcher.VerifyThreshold = DefaultVerifyThreshold
	}
	if cfg.Matcher.IdentifyThreshold == 0 {
		cfg.Matcher.IdentifyThreshold = DefaultIdentifyThreshold
	}
	if cfg.Matcher.IdentifyTimeout == 0 {
		cfg.Matcher.IdentifyTimeout = DefaultIdentifyTimeout
	}
	if cfg.Matcher.IdentifyWorkers == 0 {
		cfg.Matcher.IdentifyWorkers = DefaultIdentifyWorkers
	}

	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DefaultDBDriver
	}

	if cfg.Recognizer.Timeout == 0 {
		cfg.Recognizer.Timeout = DefaultRecognizerTimeout
	}
}
