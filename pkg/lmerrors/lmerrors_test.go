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

package lmerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/licensecore/licensecore/pkg/messages"
)

func TestErrorIsByKind(t *testing.T) {
	err := New(ValidationFailure, messages.KeyHolderIsNull)
	require.True(t, errors.Is(err, KindSentinel(ValidationFailure)))
	require.False(t, errors.Is(err, KindSentinel(StoreFailure)))
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(StoreFailure, cause, messages.KeyUnknown)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "boom")
}

func TestWithDetailAttachesCause(t *testing.T) {
	err := New(AuthenticationFailure, messages.KeyUnknown).WithDetail("no key configured")
	require.Contains(t, err.Error(), "no key configured")
}

func TestAggregateNilOnEmpty(t *testing.T) {
	require.NoError(t, Aggregate(nil))
	require.NoError(t, Aggregate([]error{nil, nil}))
}

func TestAggregateCollectsAll(t *testing.T) {
	e1 := New(ValidationFailure, messages.KeyHolderIsNull)
	e2 := New(ValidationFailure, messages.KeyIssuerIsNull)
	agg := Aggregate([]error{e1, e2})
	require.Error(t, agg)
	require.True(t, ContainsMessage(agg, "holder"))
	require.True(t, ContainsMessage(agg, "issuer"))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "ConfigError", ConfigError.String())
	require.Equal(t, "Unexpected", Kind(99).String())
}
