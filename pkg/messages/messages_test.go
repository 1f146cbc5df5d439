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

package messages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnglishRendersKnownKeyWithArgs(t *testing.T) {
	msg := English{}.Message(KeyInvalidSubject, "acme", "other")
	require.Equal(t, `invalid subject: expected "acme", got "other"`, msg)
}

func TestEnglishRendersKnownKeyWithoutArgs(t *testing.T) {
	msg := English{}.Message(KeyHolderIsNull)
	require.Equal(t, "holder must be set", msg)
}

func TestEnglishFallsBackToKeyForUnknownKey(t *testing.T) {
	msg := English{}.Message(Key("somethingNotInTheCatalogue"))
	require.Equal(t, "somethingNotInTheCatalogue", msg)
}

func TestDefaultCatalogIsEnglish(t *testing.T) {
	_, ok := Default.(English)
	require.True(t, ok)
}
