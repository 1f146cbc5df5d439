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

// Package context implements the LicenseManagementContext of spec §4.1:
// the single immutable bundle of collaborators every manager operation
// consults, assembled through a fluent Builder the way the teacher's
// cmd/webhook wiring assembles a controller.Options bundle before
// construction rather than mutating it afterwards.
package context

import (
	"time"

	"github.com/licensecore/licensecore/pkg/auth"
	"github.com/licensecore/licensecore/pkg/authorization"
	"github.com/licensecore/licensecore/pkg/clock"
	"github.com/licensecore/licensecore/pkg/codec"
	"github.com/licensecore/licensecore/pkg/initialize"
	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/lmerrors"
	"github.com/licensecore/licensecore/pkg/messages"
	"github.com/licensecore/licensecore/pkg/password"
	"github.com/licensecore/licensecore/pkg/repository"
	"github.com/licensecore/licensecore/pkg/transform"
	"github.com/licensecore/licensecore/pkg/validate"
)

// DefaultCachePeriod is the spec §3 default: 30 minutes. A zero
// CachePeriod means "never cache" — the Open Question in spec §9 is
// resolved that way here: the managers then build no TTL cache at all and
// every Load and Verify reads the installed artifact afresh.
const DefaultCachePeriod = 30 * time.Minute

// DefaultEncryptionAlgorithm is the algorithm WithPasswordEncryption
// configures when the caller hasn't already picked one explicitly.
const DefaultEncryptionAlgorithm = "AES-256-GCM"

// EncryptionFactory builds the Transformation used to protect an
// artifact's payload, given the algorithm to use (spec §3's "encryption
// algorithm") and the password protection it should derive a key from.
// The default context wires this to transform.PasswordEncryption.
type EncryptionFactory interface {
	New(algorithm string, p password.Protection) (transform.Transformation, error)
}

// EncryptionFactoryFunc adapts a function to an EncryptionFactory.
type EncryptionFactoryFunc func(algorithm string, p password.Protection) (transform.Transformation, error)

// New implements EncryptionFactory.
func (f EncryptionFactoryFunc) New(algorithm string, p password.Protection) (transform.Transformation, error) {
	return f(algorithm, p)
}

// Context is the immutable bundle of spec §4.1. Once Built, every field
// is fixed for the lifetime of the managers constructed from it.
type Context struct {
	subject      string
	keystoreType string

	codec               codec.Codec
	compression         transform.Transformation
	encryptionAlgorithm string
	encryptionFactory   EncryptionFactory
	authFactory         auth.Factory
	repoContext         repository.Context
	licenseFactory      func() *license.License

	passwordPolicy password.Policy
	clock          clock.Clock
	authz          authorization.Authorization
	cachePeriod    time.Duration

	userInitializer initialize.Initializer
	initMode        initialize.Mode
	userValidator   validate.Validator
	validateMode    validate.Mode
}

// Subject is the configured subject identifier (spec §3).
func (c *Context) Subject() string { return c.subject }

// KeystoreType is the default keystore type new authentication sub-builders
// fall back to when none is specified explicitly.
func (c *Context) KeystoreType() string { return c.keystoreType }

// Codec is the configured Codec collaborator.
func (c *Context) Codec() codec.Codec { return c.codec }

// RepositoryContext is the configured RepositoryContext collaborator.
func (c *Context) RepositoryContext() repository.Context { return c.repoContext }

// Authorization is the configured Authorization collaborator.
func (c *Context) Authorization() authorization.Authorization { return c.authz }

// CachePeriod is the configured cache TTL; zero means never cache.
func (c *Context) CachePeriod() time.Duration { return c.cachePeriod }

// Now reads the current instant through the configured Clock, never the
// system clock directly, so initializer/validator logic stays testable.
func (c *Context) Now() time.Time { return c.clock.Now() }

// Compression is the configured compression Transformation.
func (c *Context) Compression() transform.Transformation { return c.compression }

// EncryptionAlgorithm is the configured algorithm identifier (spec §3); an
// encryption sub-builder that doesn't pick its own falls back to this one.
func (c *Context) EncryptionAlgorithm() string { return c.encryptionAlgorithm }

// NewEncryption builds the encryption Transformation for a given algorithm
// and password protection, through the configured EncryptionFactory.
func (c *Context) NewEncryption(algorithm string, p password.Protection) (transform.Transformation, error) {
	if algorithm == "" {
		algorithm = c.encryptionAlgorithm
	}
	return c.encryptionFactory.New(algorithm, p)
}

// License returns a fresh bean from the configured LicenseFactory — the
// template generateKeyFrom's probe and the chained manager's free-trial
// generation start from (spec §4.5's "context.license()").
func (c *Context) License() *license.License {
	return c.licenseFactory()
}

// NewAuthentication builds an Authentication from the configured Factory.
func (c *Context) NewAuthentication(params auth.FactoryParams) (auth.Authentication, error) {
	if params.KeystoreType == "" {
		params.KeystoreType = c.keystoreType
	}
	return c.authFactory.New(params)
}

// CheckPassword wraps p with the configured password policy, per spec
// §4.8 — callers that hand a bare Protection to something that will write
// with it should route it through here first.
func (c *Context) CheckPassword(p password.Protection) password.Protection {
	return password.NewCheckedProtection(p, c.passwordPolicy)
}

// Initialization returns the composed Initializer: the user-supplied one
// (if any), combined with the built-in default per spec §4.6, according to
// the configured composition Mode.
func (c *Context) Initialization() initialize.Initializer {
	builtin := initialize.Default{Clock: c.clock, Subject: c.subject}
	return initialize.Compose(c.userInitializer, c.initMode, builtin)
}

// Validation returns the composed Validator, mirroring Initialization.
func (c *Context) Validation() validate.Validator {
	builtin := validate.Default{Clock: c.clock, Subject: c.subject}
	return validate.Compose(c.userValidator, c.validateMode, builtin)
}

// Builder assembles a Context fluently; Build validates that every
// required collaborator is present before returning, per spec §4.1.
type Builder struct {
	ctx Context
	set struct {
		codec               bool
		compression         bool
		encryptionAlgorithm bool
		encryptionFactory   bool
		authFactory         bool
		repoContext         bool
		licenseFactory      bool
		keystoreType        bool
		subject             bool
	}
}

// NewBuilder returns a Builder with every optional field defaulted per
// spec §3.
func NewBuilder() *Builder {
	b := &Builder{}
	b.ctx.passwordPolicy = password.MinimumStrength{}
	b.ctx.clock = clock.System{}
	b.ctx.authz = authorization.PermitAll{}
	b.ctx.cachePeriod = DefaultCachePeriod
	b.ctx.authFactory = auth.PEMFactory{}
	b.set.authFactory = true // the default Factory counts as configured
	return b
}

// WithSubject sets the required subject identifier.
func (b *Builder) WithSubject(subject string) *Builder {
	b.ctx.subject = subject
	b.set.subject = true
	return b
}

// WithKeystoreType sets the required default keystore type.
func (b *Builder) WithKeystoreType(t string) *Builder {
	b.ctx.keystoreType = t
	b.set.keystoreType = true
	return b
}

// WithCodec sets the required Codec.
func (b *Builder) WithCodec(c codec.Codec) *Builder {
	b.ctx.codec = c
	b.set.codec = true
	return b
}

// WithCompression sets the required compression Transformation.
func (b *Builder) WithCompression(t transform.Transformation) *Builder {
	b.ctx.compression = t
	b.set.compression = true
	return b
}

// WithEncryptionAlgorithm sets the required algorithm identifier (spec
// §3), e.g. "AES-256-GCM" or "AES-128-GCM".
func (b *Builder) WithEncryptionAlgorithm(algorithm string) *Builder {
	b.ctx.encryptionAlgorithm = algorithm
	b.set.encryptionAlgorithm = true
	return b
}

// WithEncryptionFactory sets the required EncryptionFactory.
func (b *Builder) WithEncryptionFactory(f EncryptionFactory) *Builder {
	b.ctx.encryptionFactory = f
	b.set.encryptionFactory = true
	return b
}

// WithPasswordEncryption is a convenience over WithEncryptionFactory for
// the default PBKDF2-derived AES-GCM Transformation family; the algorithm
// selects the key size (spec §3/§8 scenario S1's "AES-128-GCM"). Callers
// that haven't already picked an algorithm get DefaultEncryptionAlgorithm.
func (b *Builder) WithPasswordEncryption() *Builder {
	if !b.set.encryptionAlgorithm {
		b.WithEncryptionAlgorithm(DefaultEncryptionAlgorithm)
	}
	return b.WithEncryptionFactory(EncryptionFactoryFunc(func(algorithm string, p password.Protection) (transform.Transformation, error) {
		return transform.NewPasswordEncryption(algorithm, p)
	}))
}

// WithLicenseFactory sets the required template a KeyGenerator probe and
// the chained manager's free-trial generation build a bean from (spec
// §4.5's "context.license()").
func (b *Builder) WithLicenseFactory(f func() *license.License) *Builder {
	b.ctx.licenseFactory = f
	b.set.licenseFactory = true
	return b
}

// WithAuthenticationFactory overrides the default PEM-keystore Factory.
func (b *Builder) WithAuthenticationFactory(f auth.Factory) *Builder {
	b.ctx.authFactory = f
	b.set.authFactory = true
	return b
}

// WithRepositoryContext sets the required RepositoryContext.
func (b *Builder) WithRepositoryContext(rc repository.Context) *Builder {
	b.ctx.repoContext = rc
	b.set.repoContext = true
	return b
}

// WithPasswordPolicy overrides the default minimum-strength policy.
func (b *Builder) WithPasswordPolicy(p password.Policy) *Builder {
	b.ctx.passwordPolicy = p
	return b
}

// WithClock overrides the system clock, primarily for tests.
func (b *Builder) WithClock(c clock.Clock) *Builder {
	b.ctx.clock = c
	return b
}

// WithAuthorization overrides the default permit-all Authorization.
func (b *Builder) WithAuthorization(a authorization.Authorization) *Builder {
	b.ctx.authz = a
	return b
}

// WithCachePeriod overrides the default 30-minute cache TTL. A zero
// duration disables caching entirely.
func (b *Builder) WithCachePeriod(d time.Duration) *Builder {
	b.ctx.cachePeriod = d
	return b
}

// WithInitialization configures a user-supplied Initializer, composed with
// the built-in default per mode.
func (b *Builder) WithInitialization(i initialize.Initializer, mode initialize.Mode) *Builder {
	b.ctx.userInitializer = i
	b.ctx.initMode = mode
	return b
}

// WithValidation configures a user-supplied Validator, composed with the
// built-in default per mode.
func (b *Builder) WithValidation(v validate.Validator, mode validate.Mode) *Builder {
	b.ctx.userValidator = v
	b.ctx.validateMode = mode
	return b
}

// Build returns the assembled Context, or a ConfigError aggregating every
// missing required field.
func (b *Builder) Build() (*Context, error) {
	var errs []error
	missing := func(ok bool, field string) {
		if !ok {
			errs = append(errs, lmerrors.New(lmerrors.ConfigError, messages.KeyUnknown).
				WithDetail("context is missing required field: "+field))
		}
	}
	missing(b.set.codec, "codec")
	missing(b.set.compression, "compression")
	missing(b.set.encryptionAlgorithm, "encryptionAlgorithm")
	missing(b.set.encryptionFactory, "encryptionFactory")
	missing(b.set.authFactory, "authenticationFactory")
	missing(b.set.repoContext, "repositoryContext")
	missing(b.set.licenseFactory, "licenseFactory")
	missing(b.set.keystoreType, "keystoreType")
	missing(b.set.subject, "subject")
	if b.ctx.cachePeriod < 0 {
		errs = append(errs, lmerrors.New(lmerrors.ConfigError, messages.KeyUnknown).
			WithDetail("cachePeriod must not be negative"))
	}
	if err := lmerrors.Aggregate(errs); err != nil {
		return nil, err
	}

	ctx := b.ctx
	return &ctx, nil
}
