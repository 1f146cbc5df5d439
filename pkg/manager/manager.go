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

// Package manager implements the LicenseManager hierarchy of spec §4.3
// through §4.5: a base manager performing the five core operations, a
// caching decorator, and a chained (vendor + consumer) composite, the way
// the teacher layers policy.Validator -> webhook admission logic on top
// of a plain policy evaluator instead of folding every concern into one
// type.
package manager

import (
	"bytes"
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/licensecore/licensecore/pkg/auth"
	"github.com/licensecore/licensecore/pkg/authorization"
	"github.com/licensecore/licensecore/pkg/codec"
	licctx "github.com/licensecore/licensecore/pkg/context"
	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/lmerrors"
	"github.com/licensecore/licensecore/pkg/messages"
	"github.com/licensecore/licensecore/pkg/password"
	"github.com/licensecore/licensecore/pkg/repository"
	"github.com/licensecore/licensecore/pkg/store"
	"github.com/licensecore/licensecore/pkg/transform"
)

// Manager is the spec §4.3 LicenseManager surface: the five checked
// operations every concrete manager (base, caching, chained) implements.
type Manager interface {
	// Generate produces a signed artifact from lic without persisting it
	// anywhere; callers that want it stored call SaveTo on the result.
	Generate(ctx context.Context, lic *license.License) (*GeneratedKey, error)
	// Install authenticates the artifact read from src and persists it
	// (byte-for-byte) into this manager's configured Store.
	Install(ctx context.Context, src store.Source) error
	// Load authenticates the installed artifact and returns the license
	// bean it carries, without running validation on it.
	Load(ctx context.Context) (*license.License, error)
	// Verify authenticates the installed artifact and then validates the
	// bean it carries, returning only the pass/fail answer.
	Verify(ctx context.Context) error
	// Uninstall authenticates the installed artifact and then deletes it
	// from the Store; it fails, deleting nothing, when no artifact is
	// installed or the installed one does not authenticate.
	Uninstall(ctx context.Context) error
}

// GeneratedKey is the spec §4.3 result of generate(): a signed, not-yet-
// persisted artifact. SaveTo writes it through the manager's compression
// and encryption transforms into an arbitrary Sink (spec §4.3's
// "saveTo(Sink)").
type GeneratedKey struct {
	model   *repository.Model
	codec   codec.Codec
	xform   transform.Transformation
	License *license.License
}

// SaveTo writes the artifact to sink, applying this manager's compression
// and (if configured) encryption transform on the way out, per spec §4.3.
func (g *GeneratedKey) SaveTo(ctx context.Context, sink store.Sink) error {
	mapped := store.MapSink(sink, g.xform)
	w, err := mapped.OpenWriter(ctx)
	if err != nil {
		return lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	if err := g.codec.NewEncoder(w).Encode(g.model); err != nil {
		w.Close()
		return lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	if err := w.Close(); err != nil {
		return lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	return nil
}

// Parameters configure a base manager, per spec §4.2's manager builder.
type Parameters struct {
	// Authentication signs (vendor side) and/or verifies (consumer side)
	// artifacts. Required.
	Authentication auth.Authentication
	// StorePassword, when non-nil, turns on encryption of the persisted
	// artifact; the manager always compresses regardless.
	StorePassword password.Protection
	// FTPDays is the free-trial period length in days; zero disables
	// free-trial generation for this manager (spec §4.4).
	FTPDays int
	// Store is the persistent location Install/Load/Verify/Uninstall
	// operate against.
	Store store.Store
	// Logger receives a line for every authorization denial and for each
	// successful generate, install and uninstall (successful Load and
	// Verify calls are not logged), the way
	// the teacher's webhook validation threads a SugaredLogger through
	// instead of a context key, since the core has no request scope of
	// its own. Nil defaults to a no-op logger.
	Logger *zap.SugaredLogger
}

// baseManager is the spec §4.3 core: no caching, no chaining, just the
// five operations against a context and a store.
type baseManager struct {
	ctx    *licctx.Context
	params Parameters
}

// New builds the core (uncached, unchained) Manager.
func New(ctx *licctx.Context, params Parameters) Manager {
	return &baseManager{ctx: ctx, params: params}
}

// logger returns the configured Logger, or a no-op one when the manager
// was built without Parameters.Logger set (including managers constructed
// directly by pkg/manager's own chained/builder code, which skip New).
func (m *baseManager) logger() *zap.SugaredLogger {
	if m.params.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return m.params.Logger
}

func (m *baseManager) clear(op authorization.Operation) error {
	if err := m.ctx.Authorization().Clear(op, m); err != nil {
		m.logger().Warnw("operation denied", "operation", op, "error", err)
		return err
	}
	return nil
}

func (m *baseManager) artifactTransform() transform.Transformation {
	t := m.ctx.Compression()
	if m.params.StorePassword == nil {
		return t
	}
	enc, err := m.ctx.NewEncryption(m.ctx.EncryptionAlgorithm(), m.ctx.CheckPassword(m.params.StorePassword))
	if err != nil {
		// A misconfigured encryption factory fails at use time rather
		// than at Generate/Install time specifically — return a
		// failingTransform so the real error surfaces from NewWriter/NewReader.
		return failingTransform{err: err}
	}
	return t.AndThen(enc)
}

// Generate implements Manager.
func (m *baseManager) Generate(ctx context.Context, lic *license.License) (*GeneratedKey, error) {
	if err := m.clear(authorization.OpGenerate); err != nil {
		return nil, err
	}
	return m.generateKeyFrom(lic)
}

// generateKeyFrom runs the spec §4.3 keygen pipeline without the
// authorization gate, so internal callers (the chained manager's
// capability probe, free-trial generation) can reuse it after already
// having cleared their own gate.
func (m *baseManager) generateKeyFrom(lic *license.License) (*GeneratedKey, error) {
	cp, err := m.defensiveCopy(lic)
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}

	m.ctx.Initialization().Initialize(cp)

	if err := m.ctx.Validation().Validate(cp); err != nil {
		return nil, err
	}

	model := m.ctx.RepositoryContext().NewModel()
	ctrl := m.ctx.RepositoryContext().Controller(model, m.ctx.Codec())
	if _, err := m.params.Authentication.Sign(ctrl, cp); err != nil {
		return nil, err
	}

	m.logger().Infow("license generated", "subject", cp.Subject, "consumerAmount", cp.ConsumerAmount)
	return &GeneratedKey{
		model:   model,
		codec:   m.ctx.Codec(),
		xform:   m.artifactTransform(),
		License: cp,
	}, nil
}

// defensiveCopy round-trips lic through the configured codec, per spec §8
// invariant 2: the generator never shares memory with the caller's bean,
// and only sees what the codec itself preserves.
func (m *baseManager) defensiveCopy(lic *license.License) (*license.License, error) {
	var buf bytes.Buffer
	if err := m.ctx.Codec().NewEncoder(&buf).Encode(lic); err != nil {
		return nil, err
	}
	cp := &license.License{}
	if err := m.ctx.Codec().NewDecoder(bytes.NewReader(buf.Bytes())).Decode(cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// Install implements Manager.
func (m *baseManager) Install(ctx context.Context, src store.Source) error {
	if err := m.clear(authorization.OpInstall); err != nil {
		return err
	}
	raw, err := readAll(ctx, src)
	if err != nil {
		return lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	if _, err := m.authenticate(raw); err != nil {
		return err
	}
	w, err := m.params.Store.OpenWriter(ctx)
	if err != nil {
		return lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	if err := w.Close(); err != nil {
		return lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	m.logger().Infow("license installed")
	return nil
}

// Load implements Manager.
func (m *baseManager) Load(ctx context.Context) (*license.License, error) {
	if err := m.clear(authorization.OpLoad); err != nil {
		return nil, err
	}
	return m.load(ctx)
}

// load decodes and authenticates the installed artifact but does not run
// validation: spec §4.3 has Load stop at the decoded bean so a caller can
// inspect an expired or not-yet-valid license without Verify's stricter
// gate rejecting it outright.
func (m *baseManager) load(ctx context.Context) (*license.License, error) {
	exists, err := m.params.Store.Exists(ctx)
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	if !exists {
		return nil, lmerrors.New(lmerrors.StoreFailure, messages.KeyUnknown).
			WithDetail("no license artifact is installed")
	}
	raw, err := readAll(ctx, m.params.Store)
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	return m.authenticate(raw)
}

// verify runs load followed by the context's configured validation,
// without the authorization gate, so callers that already cleared their
// own gate (the chained manager's lock-retry step) can reuse it.
func (m *baseManager) verify(ctx context.Context) error {
	lic, err := m.load(ctx)
	if err != nil {
		return err
	}
	return m.ctx.Validation().Validate(lic)
}

// Verify implements Manager.
func (m *baseManager) Verify(ctx context.Context) error {
	if err := m.clear(authorization.OpVerify); err != nil {
		return err
	}
	return m.verify(ctx)
}

// Uninstall implements Manager.
func (m *baseManager) Uninstall(ctx context.Context) error {
	if err := m.clear(authorization.OpUninstall); err != nil {
		return err
	}
	if _, err := m.load(ctx); err != nil {
		return err
	}
	if err := m.params.Store.Delete(ctx); err != nil {
		return err
	}
	m.logger().Infow("license uninstalled")
	return nil
}

// authenticate decodes raw (already compressed/encrypted per this
// manager's artifactTransform) into a Model, then verifies its signature
// and decodes the License it carries.
func (m *baseManager) authenticate(raw []byte) (*license.License, error) {
	xform := m.artifactTransform()
	r, err := xform.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	defer r.Close()

	model := m.ctx.RepositoryContext().NewModel()
	if err := m.ctx.Codec().NewDecoder(r).Decode(model); err != nil {
		return nil, lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}

	ctrl := m.ctx.RepositoryContext().Controller(model, m.ctx.Codec())
	decoder, err := m.params.Authentication.Verify(ctrl)
	if err != nil {
		return nil, err
	}
	lic := &license.License{}
	if err := decoder.Decode(lic); err != nil {
		return nil, lmerrors.Wrap(lmerrors.AuthenticationFailure, err, messages.KeyUnknown)
	}
	return lic, nil
}

func readAll(ctx context.Context, src store.Source) ([]byte, error) {
	r, err := src.OpenReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func configError(detail string) error {
	return lmerrors.New(lmerrors.ConfigError, messages.KeyUnknown).WithDetail(detail)
}

type failingTransform struct{ err error }

func (f failingTransform) NewWriter(io.Writer) (io.WriteCloser, error) { return nil, f.err }
func (f failingTransform) NewReader(io.Reader) (io.ReadCloser, error) { return nil, f.err }
func (f failingTransform) AndThen(next transform.Transformation) transform.Transformation {
	return f
}
