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

package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/licensecore/licensecore/pkg/codec"
	"github.com/licensecore/licensecore/pkg/envcfg"
	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/manager"
	"github.com/licensecore/licensecore/pkg/repository"
	"github.com/licensecore/licensecore/pkg/transform"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadParsesFullManifest(t *testing.T) {
	path := writeManifest(t, `
subject: acme
keystoreType: PEM
cachePeriod: 15m
freeTrialDays: 30
authentication:
  alias: vendor
  algorithm: SHA256
  resourceName: /etc/licensecore/vendor.pem
`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "acme", m.Subject)
	require.Equal(t, "PEM", m.KeystoreType)
	require.Equal(t, 15*time.Minute, m.CachePeriod)
	require.Equal(t, 30, m.FreeTrialDays)
	require.Equal(t, "vendor", m.Authentication.Alias)
	require.Equal(t, "SHA256", m.Authentication.Algorithm)
	require.Equal(t, "/etc/licensecore/vendor.pem", m.Authentication.ResourceName)
}

func TestLoadAppliesDefaultsWhenFieldsAreOmitted(t *testing.T) {
	path := writeManifest(t, `subject: acme`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "PEM", m.KeystoreType)
	require.Equal(t, 30*time.Minute, m.CachePeriod)
}

func TestLoadAcceptsBareSecondsCachePeriod(t *testing.T) {
	path := writeManifest(t, `
subject: acme
cachePeriod: "1800"
`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 30*time.Minute, m.CachePeriod)
}

func TestLoadFailsForMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestBuilderAppliesEnvOverrideOnTopOfManifest(t *testing.T) {
	path := writeManifest(t, `
subject: acme
cachePeriod: 15m
`)
	m, err := Load(path)
	require.NoError(t, err)

	spec := &envcfg.Specification{CachePeriod: 45 * time.Minute}
	ctx, err := m.Builder(spec).
		WithCodec(codec.JSON{}).
		WithCompression(transform.Identity{}).
		WithPasswordEncryption().
		WithRepositoryContext(repository.Default{}).
		WithLicenseFactory(func() *license.License { return &license.License{ConsumerAmount: 1} }).
		Build()
	require.NoError(t, err)
	require.Equal(t, "acme", ctx.Subject())
	require.Equal(t, 45*time.Minute, ctx.CachePeriod())
}

func TestApplyConsumerReturnsBuilder(t *testing.T) {
	m := &Manifest{Subject: "acme", FreeTrialDays: 30}
	b := m.ApplyConsumer(manager.NewConsumerBuilder(nil), nil)
	require.NotNil(t, b)
}

func TestApplyAuthenticationReturnsBuilder(t *testing.T) {
	m := &Manifest{Authentication: AuthenticationSpec{Alias: "vendor", Algorithm: "SHA256"}}
	spec := &envcfg.Specification{SignatureAlgorithm: "SHA512"}
	b := m.ApplyAuthentication(manager.NewAuthenticationBuilder(nil), spec)
	require.NotNil(t, b)
}
