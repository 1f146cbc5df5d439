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

package context

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/licensecore/licensecore/pkg/clock"
	"github.com/licensecore/licensecore/pkg/codec"
	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/lmerrors"
	"github.com/licensecore/licensecore/pkg/password"
	"github.com/licensecore/licensecore/pkg/repository"
	"github.com/licensecore/licensecore/pkg/transform"
)

func testLicenseFactory() func() *license.License {
	return func() *license.License { return &license.License{ConsumerAmount: 1} }
}

func TestBuildFailsAggregatingEveryMissingField(t *testing.T) {
	_, err := NewBuilder().Build()
	require.Error(t, err)
	require.True(t, lmerrors.ContainsMessage(err, "codec"))
	require.True(t, lmerrors.ContainsMessage(err, "compression"))
	require.True(t, lmerrors.ContainsMessage(err, "encryptionAlgorithm"))
	require.True(t, lmerrors.ContainsMessage(err, "encryptionFactory"))
	require.True(t, lmerrors.ContainsMessage(err, "repositoryContext"))
	require.True(t, lmerrors.ContainsMessage(err, "licenseFactory"))
	require.True(t, lmerrors.ContainsMessage(err, "keystoreType"))
	require.True(t, lmerrors.ContainsMessage(err, "subject"))
}

func TestBuildSucceedsWithAllRequiredFields(t *testing.T) {
	ctx, err := NewBuilder().
		WithSubject("acme").
		WithKeystoreType("PEM").
		WithCodec(codec.JSON{}).
		WithCompression(transform.Identity{}).
		WithPasswordEncryption().
		WithRepositoryContext(repository.Default{}).
		WithLicenseFactory(testLicenseFactory()).
		Build()
	require.NoError(t, err)
	require.Equal(t, "acme", ctx.Subject())
	require.Equal(t, "PEM", ctx.KeystoreType())
	require.Equal(t, DefaultCachePeriod, ctx.CachePeriod())
	require.Equal(t, DefaultEncryptionAlgorithm, ctx.EncryptionAlgorithm())
}

func TestBuildRejectsNegativeCachePeriod(t *testing.T) {
	_, err := NewBuilder().
		WithSubject("acme").
		WithKeystoreType("PEM").
		WithCodec(codec.JSON{}).
		WithCompression(transform.Identity{}).
		WithPasswordEncryption().
		WithRepositoryContext(repository.Default{}).
		WithLicenseFactory(testLicenseFactory()).
		WithCachePeriod(-time.Minute).
		Build()
	require.Error(t, err)
}

func TestNewEncryptionUsesConfiguredFactory(t *testing.T) {
	ctx, err := NewBuilder().
		WithSubject("acme").
		WithKeystoreType("PEM").
		WithCodec(codec.JSON{}).
		WithCompression(transform.Identity{}).
		WithPasswordEncryption().
		WithRepositoryContext(repository.Default{}).
		WithLicenseFactory(testLicenseFactory()).
		Build()
	require.NoError(t, err)

	tr, err := ctx.NewEncryption("", password.NewStaticProtection([]byte("correct-horse-battery-staple-9!")))
	require.NoError(t, err)
	require.NotNil(t, tr)
}

func TestNewEncryptionAcceptsAlgorithmOverride(t *testing.T) {
	ctx, err := NewBuilder().
		WithSubject("acme").
		WithKeystoreType("PEM").
		WithCodec(codec.JSON{}).
		WithCompression(transform.Identity{}).
		WithPasswordEncryption().
		WithRepositoryContext(repository.Default{}).
		WithLicenseFactory(testLicenseFactory()).
		Build()
	require.NoError(t, err)

	tr, err := ctx.NewEncryption("AES-128-GCM", password.NewStaticProtection([]byte("correct-horse-battery-staple-9!")))
	require.NoError(t, err)
	require.NotNil(t, tr)

	_, err = ctx.NewEncryption("ROT13", password.NewStaticProtection([]byte("correct-horse-battery-staple-9!")))
	require.Error(t, err)
}

func TestLicenseReturnsFreshBeanFromFactory(t *testing.T) {
	ctx, err := NewBuilder().
		WithSubject("acme").
		WithKeystoreType("PEM").
		WithCodec(codec.JSON{}).
		WithCompression(transform.Identity{}).
		WithPasswordEncryption().
		WithRepositoryContext(repository.Default{}).
		WithLicenseFactory(testLicenseFactory()).
		Build()
	require.NoError(t, err)

	lic := ctx.License()
	require.Equal(t, 1, lic.ConsumerAmount)

	lic.ConsumerAmount = 99
	require.Equal(t, 1, ctx.License().ConsumerAmount)
}

func TestNowReadsConfiguredClock(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx, err := NewBuilder().
		WithSubject("acme").
		WithKeystoreType("PEM").
		WithCodec(codec.JSON{}).
		WithCompression(transform.Identity{}).
		WithPasswordEncryption().
		WithRepositoryContext(repository.Default{}).
		WithLicenseFactory(testLicenseFactory()).
		WithClock(clock.Fixed(fixed)).
		Build()
	require.NoError(t, err)
	require.Equal(t, fixed, ctx.Now())
}

func TestInitializationAndValidationAreNonNilByDefault(t *testing.T) {
	ctx, err := NewBuilder().
		WithSubject("acme").
		WithKeystoreType("PEM").
		WithCodec(codec.JSON{}).
		WithCompression(transform.Identity{}).
		WithPasswordEncryption().
		WithRepositoryContext(repository.Default{}).
		WithLicenseFactory(testLicenseFactory()).
		Build()
	require.NoError(t, err)
	require.NotNil(t, ctx.Initialization())
	require.NotNil(t, ctx.Validation())
}
