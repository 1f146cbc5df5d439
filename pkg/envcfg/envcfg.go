//
// Copyright 2026 The Licensecore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package envcfg loads builder overrides from the process environment via
// kelseyhightower/envconfig, the ambient configuration path for hosts that
// prefer env vars over a manifest file (pkg/manifest) or hand-written
// builder calls. Every field is optional; a zero value means "leave the
// builder default in place."
package envcfg

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	licctx "github.com/licensecore/licensecore/pkg/context"
	"github.com/licensecore/licensecore/pkg/lmerrors"
	"github.com/licensecore/licensecore/pkg/manager"
	"github.com/licensecore/licensecore/pkg/messages"
)

// Specification mirrors the context Builder's optional tunables. Field
// names follow envconfig's default mapping: LICENSECORE_CACHE_PERIOD,
// LICENSECORE_FREE_TRIAL_DAYS, LICENSECORE_ENCRYPTION_ALGORITHM,
// LICENSECORE_SIGNATURE_ALGORITHM, LICENSECORE_SUBJECT.
type Specification struct {
	CachePeriod         time.Duration `envconfig:"cache_period"`
	FreeTrialDays       int           `envconfig:"free_trial_days"`
	EncryptionAlgorithm string        `envconfig:"encryption_algorithm"`
	SignatureAlgorithm  string        `envconfig:"signature_algorithm"`
	Subject             string        `envconfig:"subject"`
}

// Load reads Specification from environment variables prefixed
// "LICENSECORE_".
func Load() (*Specification, error) {
	var spec Specification
	if err := envconfig.Process("licensecore", &spec); err != nil {
		return nil, lmerrors.Wrap(lmerrors.ConfigError, err, messages.KeyUnknown)
	}
	return &spec, nil
}

// ApplyContext overrides b's subject, cache period, and encryption
// algorithm with any fields Load found set in the environment, leaving
// the builder's own defaults (and any value already set by the caller
// before this call) in place otherwise.
func (s *Specification) ApplyContext(b *licctx.Builder) *licctx.Builder {
	if s.Subject != "" {
		b = b.WithSubject(s.Subject)
	}
	if s.CachePeriod != 0 {
		b = b.WithCachePeriod(s.CachePeriod)
	}
	if s.EncryptionAlgorithm != "" {
		b = b.WithEncryptionAlgorithm(s.EncryptionAlgorithm)
	}
	return b
}

// ApplyConsumer overrides a consumer manager builder's free-trial period.
func (s *Specification) ApplyConsumer(b *manager.ConsumerBuilder) *manager.ConsumerBuilder {
	if s.FreeTrialDays != 0 {
		b = b.WithFreeTrialDays(s.FreeTrialDays)
	}
	return b
}

// ApplyAuthentication overrides an authentication sub-builder's signature
// algorithm.
func (s *Specification) ApplyAuthentication(b *manager.AuthenticationBuilder) *manager.AuthenticationBuilder {
	if s.SignatureAlgorithm != "" {
		b = b.WithAlgorithm(s.SignatureAlgorithm)
	}
	return b
}
