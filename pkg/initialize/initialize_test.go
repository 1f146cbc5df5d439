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

package initialize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/licensecore/licensecore/pkg/clock"
	"github.com/licensecore/licensecore/pkg/license"
)

func TestDefaultFillsUnsetFieldsOnly(t *testing.T) {
	fixed := clock.Fixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	d := Default{Clock: fixed, Subject: "acme"}

	lic := &license.License{}
	d.Initialize(lic)

	require.Equal(t, "User", lic.ConsumerType)
	require.Equal(t, "<unknown>", lic.Holder.CommonName)
	require.Equal(t, time.Time(fixed), lic.Issued)
	require.Equal(t, "acme", lic.Issuer.CommonName)
	require.Equal(t, "acme", lic.Subject)
}

func TestDefaultNeverOverwritesSetFields(t *testing.T) {
	fixed := clock.Fixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	d := Default{Clock: fixed, Subject: "acme"}

	already := time.Date(2020, 5, 5, 0, 0, 0, 0, time.UTC)
	lic := &license.License{
		ConsumerType: "Device",
		Holder:       license.CN("Somebody"),
		Issued:       already,
		Issuer:       license.CN("Somebody Else"),
		Subject:      "not-acme",
	}
	d.Initialize(lic)

	require.Equal(t, "Device", lic.ConsumerType)
	require.Equal(t, "Somebody", lic.Holder.CommonName)
	require.Equal(t, already, lic.Issued)
	require.Equal(t, "Somebody Else", lic.Issuer.CommonName)
	require.Equal(t, "not-acme", lic.Subject)
}

func TestComposeDecorateRunsBoth(t *testing.T) {
	var order []string
	first := Func(func(*license.License) { order = append(order, "first") })
	second := Func(func(*license.License) { order = append(order, "second") })

	Compose(first, Decorate, second).Initialize(&license.License{})
	require.Equal(t, []string{"first", "second"}, order)
}

func TestComposeOverrideSkipsSecond(t *testing.T) {
	var order []string
	first := Func(func(*license.License) { order = append(order, "first") })
	second := Func(func(*license.License) { order = append(order, "second") })

	Compose(first, Override, second).Initialize(&license.License{})
	require.Equal(t, []string{"first"}, order)
}

func TestComposeNilFirstUsesSecond(t *testing.T) {
	var ran bool
	second := Func(func(*license.License) { ran = true })
	Compose(nil, Decorate, second).Initialize(&license.License{})
	require.True(t, ran)
}
