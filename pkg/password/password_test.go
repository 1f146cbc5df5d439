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

package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticProtectionRoundTrip(t *testing.T) {
	p := NewStaticProtection([]byte("hunter2"))
	secret, err := p.Password(Read)
	require.NoError(t, err)
	require.Equal(t, "hunter2", string(secret))
}

func TestStaticProtectionZero(t *testing.T) {
	p := NewStaticProtection([]byte("hunter2"))
	p.Zero()
	secret, _ := p.Password(Read)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0}, secret)
}

func TestMinimumStrengthRejectsWeakPasswords(t *testing.T) {
	policy := MinimumStrength{}
	require.Error(t, policy.Check(NewStaticProtection([]byte("short1!"))))
	require.Error(t, policy.Check(NewStaticProtection([]byte("alllowercase"))))
	require.Error(t, policy.Check(NewStaticProtection([]byte("password"))))
}

func TestMinimumStrengthAcceptsStrongPassword(t *testing.T) {
	policy := MinimumStrength{}
	require.NoError(t, policy.Check(NewStaticProtection([]byte("Correct-Horse-9"))))
}

func TestCheckedProtectionOnlyChecksOnWrite(t *testing.T) {
	cp := NewCheckedProtection(NewStaticProtection([]byte("weak")), MinimumStrength{})

	_, err := cp.Password(Read)
	require.NoError(t, err, "read usage must never trigger the policy check")

	_, err = cp.Password(Write)
	require.Error(t, err, "write usage must trigger the policy check")
}

func TestCheckedProtectionDefaultsPolicy(t *testing.T) {
	cp := NewCheckedProtection(NewStaticProtection([]byte("Correct-Horse-9")), nil)
	_, err := cp.Password(Write)
	require.NoError(t, err)
}
