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

package manager

import (
	"go.uber.org/zap"

	"github.com/licensecore/licensecore/pkg/auth"
	licctx "github.com/licensecore/licensecore/pkg/context"
	"github.com/licensecore/licensecore/pkg/password"
	"github.com/licensecore/licensecore/pkg/store"
	"github.com/licensecore/licensecore/pkg/transform"
)

// AuthenticationBuilder assembles an auth.Authentication through the
// context's configured auth.Factory (spec §4.2's authentication
// sub-builder), so callers configure a keystore declaratively instead of
// constructing an auth.PEMKeystore by hand.
type AuthenticationBuilder struct {
	ctx    *licctx.Context
	params auth.FactoryParams
}

// NewAuthenticationBuilder starts an AuthenticationBuilder bound to ctx.
func NewAuthenticationBuilder(ctx *licctx.Context) *AuthenticationBuilder {
	return &AuthenticationBuilder{ctx: ctx}
}

// WithAlias sets the keystore alias.
func (b *AuthenticationBuilder) WithAlias(alias string) *AuthenticationBuilder {
	b.params.Alias = alias
	return b
}

// WithAlgorithm overrides the signature algorithm (default: SHA256).
func (b *AuthenticationBuilder) WithAlgorithm(algorithm string) *AuthenticationBuilder {
	b.params.Algorithm = algorithm
	return b
}

// WithKeystoreType overrides the context's default keystore type.
func (b *AuthenticationBuilder) WithKeystoreType(t string) *AuthenticationBuilder {
	b.params.KeystoreType = t
	return b
}

// WithResourceName sets the resource name a host Factory may use to
// locate keystore material (e.g. a file path or secret name).
func (b *AuthenticationBuilder) WithResourceName(name string) *AuthenticationBuilder {
	b.params.ResourceName = name
	return b
}

// WithSource supplies raw keystore bytes directly, bypassing resource
// resolution.
func (b *AuthenticationBuilder) WithSource(src []byte) *AuthenticationBuilder {
	b.params.Source = src
	return b
}

// WithKeyPassword sets the protection guarding the private key material.
func (b *AuthenticationBuilder) WithKeyPassword(p password.Protection) *AuthenticationBuilder {
	b.params.KeyPassword = p
	return b
}

// WithStorePassword sets the protection guarding the keystore file itself.
func (b *AuthenticationBuilder) WithStorePassword(p password.Protection) *AuthenticationBuilder {
	b.params.StorePassword = p
	return b
}

// Build resolves the Authentication through the context's Factory.
func (b *AuthenticationBuilder) Build() (auth.Authentication, error) {
	return b.ctx.NewAuthentication(b.params)
}

// EncryptionBuilder assembles the artifact-encryption Transformation
// through the context's configured EncryptionFactory (spec §4.2's
// encryption sub-builder).
type EncryptionBuilder struct {
	ctx        *licctx.Context
	algorithm  string
	protection password.Protection
}

// NewEncryptionBuilder starts an EncryptionBuilder bound to ctx.
func NewEncryptionBuilder(ctx *licctx.Context) *EncryptionBuilder {
	return &EncryptionBuilder{ctx: ctx}
}

// WithAlgorithm overrides the context's default encryption algorithm
// (spec §4.2's "optional algorithm default = context.encryptionAlgorithm")
// for this builder only.
func (b *EncryptionBuilder) WithAlgorithm(algorithm string) *EncryptionBuilder {
	b.algorithm = algorithm
	return b
}

// WithPassword sets the secret the encryption key is derived from. The
// password policy configured on ctx is applied (write usage) when the
// Transformation is actually used to encrypt.
func (b *EncryptionBuilder) WithPassword(p password.Protection) *EncryptionBuilder {
	b.protection = p
	return b
}

// Build resolves the encryption Transformation through the context,
// falling back to the context's configured algorithm when none was set
// on this builder.
func (b *EncryptionBuilder) Build() (transform.Transformation, error) {
	algorithm := b.algorithm
	if algorithm == "" {
		algorithm = b.ctx.EncryptionAlgorithm()
	}
	return b.ctx.NewEncryption(algorithm, b.ctx.CheckPassword(b.protection))
}

// VendorBuilder assembles the vendor-side Manager of spec §4.2: signs and
// persists artifacts, but never chains to a parent or grants free trials
// (that's the consumer side's job).
type VendorBuilder struct {
	ctx    *licctx.Context
	params Parameters
}

// NewVendorBuilder starts a VendorBuilder bound to ctx.
func NewVendorBuilder(ctx *licctx.Context) *VendorBuilder {
	return &VendorBuilder{ctx: ctx}
}

// WithAuthentication sets the (signing-capable) Authentication.
func (b *VendorBuilder) WithAuthentication(a auth.Authentication) *VendorBuilder {
	b.params.Authentication = a
	return b
}

// WithStorePassword turns on artifact encryption.
func (b *VendorBuilder) WithStorePassword(p password.Protection) *VendorBuilder {
	b.params.StorePassword = p
	return b
}

// WithStore sets the persistent Store Install/Load/Uninstall target.
func (b *VendorBuilder) WithStore(s store.Store) *VendorBuilder {
	b.params.Store = s
	return b
}

// WithLogger sets the SugaredLogger the resulting Manager reports
// operations to. Unset leaves operations unlogged.
func (b *VendorBuilder) WithLogger(l *zap.SugaredLogger) *VendorBuilder {
	b.params.Logger = l
	return b
}

// Build assembles the vendor Manager. Caching is applied the same as the
// consumer side, through the context's configured cache period.
func (b *VendorBuilder) Build() (Manager, error) {
	if err := b.requireFields(); err != nil {
		return nil, err
	}
	base := &baseManager{ctx: b.ctx, params: b.params}
	return newCaching(b.ctx, base, b.ctx.CachePeriod()), nil
}

func (b *VendorBuilder) requireFields() error {
	return requireManagerFields(b.params)
}

// ConsumerBuilder assembles the consumer-side Manager of spec §4.5: a
// chain of managers tried in order, each configured with its own
// Authentication/Store/FTPDays. Parent nests a fresh ConsumerBuilder for
// the upstream manager; Up returns to the builder that created it. This
// mirrors the teacher's options-struct nesting without resorting to a
// generic, self-referential builder type.
type ConsumerBuilder struct {
	ctx    *licctx.Context
	params Parameters
	parent *ConsumerBuilder // the builder that created this one, via Parent()
	child  *ConsumerBuilder // this builder's own upstream, set by Parent()
}

// NewConsumerBuilder starts a top-level ConsumerBuilder bound to ctx.
func NewConsumerBuilder(ctx *licctx.Context) *ConsumerBuilder {
	return &ConsumerBuilder{ctx: ctx}
}

// WithAuthentication sets this manager's Authentication (a consumer-only
// keystore for ordinary verification, or a full vendor keystore if this
// manager should also be able to generate free trials).
func (b *ConsumerBuilder) WithAuthentication(a auth.Authentication) *ConsumerBuilder {
	b.params.Authentication = a
	return b
}

// WithStorePassword turns on artifact encryption for this manager.
func (b *ConsumerBuilder) WithStorePassword(p password.Protection) *ConsumerBuilder {
	b.params.StorePassword = p
	return b
}

// WithStore sets this manager's persistent Store.
func (b *ConsumerBuilder) WithStore(s store.Store) *ConsumerBuilder {
	b.params.Store = s
	return b
}

// WithFreeTrialDays enables free-trial generation (spec §4.4) for this
// manager when its Authentication can sign.
func (b *ConsumerBuilder) WithFreeTrialDays(days int) *ConsumerBuilder {
	b.params.FTPDays = days
	return b
}

// WithLogger sets the SugaredLogger this manager reports operations to.
func (b *ConsumerBuilder) WithLogger(l *zap.SugaredLogger) *ConsumerBuilder {
	b.params.Logger = l
	return b
}

// Parent begins configuring this manager's upstream parent, returned as a
// fresh ConsumerBuilder; call Up on it to resume configuring the manager
// that called Parent.
func (b *ConsumerBuilder) Parent() *ConsumerBuilder {
	b.child = &ConsumerBuilder{ctx: b.ctx, parent: b}
	return b.child
}

// Up returns to the ConsumerBuilder that called Parent to produce this
// one. Up on a top-level builder (one never produced by Parent) returns
// nil, the same way a doubly linked list's head has no previous node.
func (b *ConsumerBuilder) Up() *ConsumerBuilder {
	return b.parent
}

// Build assembles the consumer Manager chain: this manager's own store,
// chained after whatever Parent() configured (or no upstream, if Parent
// was never called).
func (b *ConsumerBuilder) Build() (Manager, error) {
	if err := requireManagerFields(b.params); err != nil {
		return nil, err
	}
	var parentMgr Manager
	if b.child != nil {
		var err error
		parentMgr, err = b.child.Build()
		if err != nil {
			return nil, err
		}
	}
	self := &baseManager{ctx: b.ctx, params: b.params}
	return Chained(self, parentMgr), nil
}

func requireManagerFields(p Parameters) error {
	if p.Authentication == nil {
		return missingField("authentication")
	}
	if p.Store == nil {
		return missingField("store")
	}
	return nil
}

func missingField(field string) error {
	return configError("manager is missing required field: " + field)
}
