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

package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/licensecore/licensecore/pkg/clock"
	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/lmerrors"
)

func wellFormedLicense(now time.Time) *license.License {
	return &license.License{
		ConsumerAmount: 1,
		ConsumerType:   "User",
		Holder:         license.CN("someone"),
		Issuer:         license.CN("acme"),
		Issued:         now,
		Subject:        "acme",
	}
}

func TestDefaultAcceptsWellFormedLicense(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	v := Default{Clock: clock.Fixed(now), Subject: "acme"}
	require.NoError(t, v.Validate(wellFormedLicense(now)))
}

func TestDefaultAggregatesAllViolations(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	v := Default{Clock: clock.Fixed(now), Subject: "acme"}

	err := v.Validate(&license.License{})
	require.Error(t, err)
	require.True(t, lmerrors.ContainsMessage(err, "amount"))
	require.True(t, lmerrors.ContainsMessage(err, "consumer type"))
	require.True(t, lmerrors.ContainsMessage(err, "holder"))
	require.True(t, lmerrors.ContainsMessage(err, "issuer"))
	require.True(t, lmerrors.ContainsMessage(err, "issued"))
}

func TestDefaultRejectsExpiredLicense(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lic := wellFormedLicense(now)
	past := now.Add(-time.Hour)
	lic.NotAfter = &past

	v := Default{Clock: clock.Fixed(now), Subject: "acme"}
	err := v.Validate(lic)
	require.Error(t, err)
	require.True(t, lmerrors.ContainsMessage(err, "expired"))
}

func TestDefaultRejectsNotYetValidLicense(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lic := wellFormedLicense(now)
	future := now.Add(time.Hour)
	lic.NotBefore = &future

	v := Default{Clock: clock.Fixed(now), Subject: "acme"}
	err := v.Validate(lic)
	require.Error(t, err)
	require.True(t, lmerrors.ContainsMessage(err, "not yet valid"))
}

func TestDefaultRejectsSubjectMismatch(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lic := wellFormedLicense(now)
	lic.Subject = "someone-else"

	v := Default{Clock: clock.Fixed(now), Subject: "acme"}
	err := v.Validate(lic)
	require.Error(t, err)
	require.True(t, lmerrors.ContainsMessage(err, "invalid subject"))
}

func TestComposeDecorateAggregatesBothFailures(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	builtin := Default{Clock: clock.Fixed(now), Subject: "acme"}
	custom := Func(func(*license.License) error {
		return lmerrors.New(lmerrors.ValidationFailure, "customRuleFailed")
	})

	err := Compose(custom, Decorate, builtin).Validate(wellFormedLicense(now))
	require.Error(t, err)
	require.True(t, lmerrors.ContainsMessage(err, "customRuleFailed"))
}
