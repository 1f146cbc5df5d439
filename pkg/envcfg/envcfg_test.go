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

package envcfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/licensecore/licensecore/pkg/codec"
	licctx "github.com/licensecore/licensecore/pkg/context"
	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/repository"
	"github.com/licensecore/licensecore/pkg/transform"
)

func TestLoadReadsPrefixedEnvironmentVariables(t *testing.T) {
	t.Setenv("LICENSECORE_CACHE_PERIOD", "45m")
	t.Setenv("LICENSECORE_FREE_TRIAL_DAYS", "14")
	t.Setenv("LICENSECORE_SUBJECT", "acme")

	spec, err := Load()
	require.NoError(t, err)
	require.Equal(t, 45*time.Minute, spec.CachePeriod)
	require.Equal(t, 14, spec.FreeTrialDays)
	require.Equal(t, "acme", spec.Subject)
}

func TestLoadLeavesUnsetFieldsZero(t *testing.T) {
	spec, err := Load()
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), spec.CachePeriod)
	require.Equal(t, 0, spec.FreeTrialDays)
	require.Equal(t, "", spec.Subject)
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("LICENSECORE_CACHE_PERIOD", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
}

func TestApplyContextOverridesOnlySetFields(t *testing.T) {
	spec := &Specification{CachePeriod: 45 * time.Minute, Subject: "acme"}

	ctx, err := spec.ApplyContext(
		licctx.NewBuilder().
			WithSubject("placeholder").
			WithKeystoreType("PEM").
			WithCodec(codec.JSON{}).
			WithCompression(transform.Identity{}).
			WithPasswordEncryption().
			WithRepositoryContext(repository.Default{}).
			WithLicenseFactory(func() *license.License { return &license.License{ConsumerAmount: 1} }),
	).Build()
	require.NoError(t, err)
	require.Equal(t, "acme", ctx.Subject())
	require.Equal(t, 45*time.Minute, ctx.CachePeriod())
}
