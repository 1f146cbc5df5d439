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

// Package manifest loads declarative builder configuration from a
// YAML/JSON/env-backed file via spf13/viper, the way the teacher's
// pkg/config store loads a ConfigMap into a typed struct rather than
// requiring every field to be set through Go code. A manifest covers the
// fields a deployment typically varies per environment — keystore
// location, cache period, free-trial length — while collaborators that
// need real Go values (a custom Authorization, a Clock) still go through
// the Builder directly.
package manifest

import (
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-secure-stdlib/parseutil"
	"github.com/spf13/viper"

	licctx "github.com/licensecore/licensecore/pkg/context"
	"github.com/licensecore/licensecore/pkg/envcfg"
	"github.com/licensecore/licensecore/pkg/lmerrors"
	"github.com/licensecore/licensecore/pkg/manager"
	"github.com/licensecore/licensecore/pkg/messages"
)

// Manifest is the declarative subset of context.Builder/manager builder
// configuration.
type Manifest struct {
	Subject      string `mapstructure:"subject"`
	KeystoreType string `mapstructure:"keystoreType"`

	Authentication AuthenticationSpec `mapstructure:"authentication"`

	CachePeriod   time.Duration `mapstructure:"cachePeriod"`
	FreeTrialDays int           `mapstructure:"freeTrialDays"`
}

// AuthenticationSpec is the declarative shape of an auth.FactoryParams,
// minus the in-memory Password protections, which a manifest file should
// never carry in the clear.
type AuthenticationSpec struct {
	Alias        string `mapstructure:"alias"`
	Algorithm    string `mapstructure:"algorithm"`
	ResourceName string `mapstructure:"resourceName"`
}

// Load reads a Manifest from path, inferring its format (YAML, JSON, TOML,
// ...) from the file extension the way viper.SetConfigFile does.
func Load(path string) (*Manifest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("keystoreType", "PEM")
	v.SetDefault("cachePeriod", 30*time.Minute)

	if err := v.ReadInConfig(); err != nil {
		return nil, lmerrors.Wrap(lmerrors.ConfigError, err, messages.KeyUnknown).
			WithDetail("reading manifest " + path)
	}

	var m Manifest
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		durationStringHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&m, decodeHook); err != nil {
		return nil, lmerrors.Wrap(lmerrors.ConfigError, err, messages.KeyUnknown).
			WithDetail("decoding manifest " + path)
	}
	return &m, nil
}

// Builder assembles a context.Builder from m's declarative fields,
// overlaying any environment overrides carried in spec (nil skips the
// overlay — hosts that only want the manifest file can pass nil).
// Collaborators with no declarative shape (Codec, Compression, the
// encryption/license factories, RepositoryContext) are left for the
// caller to set on the returned Builder before calling Build.
func (m *Manifest) Builder(spec *envcfg.Specification) *licctx.Builder {
	b := licctx.NewBuilder().
		WithSubject(m.Subject).
		WithKeystoreType(m.KeystoreType).
		WithCachePeriod(m.CachePeriod)
	if spec != nil {
		b = spec.ApplyContext(b)
	}
	return b
}

// ApplyConsumer carries m's free-trial length onto a ConsumerBuilder,
// overlaying spec's environment override on top (nil skips the overlay).
func (m *Manifest) ApplyConsumer(b *manager.ConsumerBuilder, spec *envcfg.Specification) *manager.ConsumerBuilder {
	b = b.WithFreeTrialDays(m.FreeTrialDays)
	if spec != nil {
		b = spec.ApplyConsumer(b)
	}
	return b
}

// ApplyAuthentication carries m.Authentication's declarative fields onto
// an AuthenticationBuilder, overlaying spec's signature algorithm override
// on top (nil skips the overlay). Key material (Source, passwords) is
// never carried by the manifest and must be supplied by the caller.
func (m *Manifest) ApplyAuthentication(b *manager.AuthenticationBuilder, spec *envcfg.Specification) *manager.AuthenticationBuilder {
	b = b.WithAlias(m.Authentication.Alias).
		WithAlgorithm(m.Authentication.Algorithm).
		WithResourceName(m.Authentication.ResourceName)
	if spec != nil {
		b = spec.ApplyAuthentication(b)
	}
	return b
}

// durationStringHookFunc parses cachePeriod through
// go-secure-stdlib/parseutil instead of plain time.ParseDuration, so a
// manifest may write a bare number ("1800") for seconds in addition to a
// suffixed duration string ("30m") — the same latitude the teacher's
// cmd/tester flags give duration-shaped settings.
func durationStringHookFunc() mapstructure.DecodeHookFunc {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != durationType {
			return data, nil
		}
		return parseutil.ParseDurationSecond(data)
	}
}
