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

// Package password implements spec §4.8: a password-policy check applied
// only when a secret is about to be used for writing (encrypting, or
// signing), never on read, so configuration time never pays the strength
// check and install/generate time always does.
package password

import (
	"fmt"
	"unicode"

	"github.com/hashicorp/go-secure-stdlib/strutil"

	"github.com/licensecore/licensecore/pkg/lmerrors"
	"github.com/licensecore/licensecore/pkg/messages"
)

// Usage distinguishes why a secret is being read, per spec §4.8.
type Usage int

const (
	// Read usage never triggers a policy check.
	Read Usage = iota
	// Write usage always triggers a policy check (encrypting or signing).
	Write
)

// Protection wraps a secret. Protection implementations are expected to
// zero their backing buffer once no longer needed; Password is the only
// way to observe the secret, so a Protection can also log/zero around
// each access.
type Protection interface {
	Password(usage Usage) ([]byte, error)
}

// Policy enforces strength rules on WRITE usage, per spec §4.8.
type Policy interface {
	Check(p Protection) error
}

// StaticProtection is the simplest Protection: an in-memory secret. Real
// deployments should prefer a Protection backed by an OS keychain or HSM;
// this type exists so tests and small integrations have something to pass.
type StaticProtection struct {
	secret []byte
}

// NewStaticProtection copies b into a Protection. The caller's slice is
// not retained.
func NewStaticProtection(b []byte) *StaticProtection {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &StaticProtection{secret: cp}
}

// Password implements Protection; usage is ignored since StaticProtection
// performs no policy check itself (that's CheckedProtection's job).
func (s *StaticProtection) Password(Usage) ([]byte, error) {
	return s.secret, nil
}

// Zero overwrites the backing buffer, dropping the secret from memory
// promptly, per spec §9's password-handling design note.
func (s *StaticProtection) Zero() {
	for i := range s.secret {
		s.secret[i] = 0
	}
}

// CheckedProtection wraps a Protection with a Policy: on Write usage the
// policy is consulted before the secret is handed back; on Read usage the
// wrapped Protection is used directly.
type CheckedProtection struct {
	Protection Protection
	Policy     Policy
}

// NewCheckedProtection builds a CheckedProtection. If policy is nil, the
// minimum-strength policy is used, matching spec §3's "default: minimum
// strength" for the context's password policy.
func NewCheckedProtection(p Protection, policy Policy) *CheckedProtection {
	if policy == nil {
		policy = MinimumStrength{}
	}
	return &CheckedProtection{Protection: p, Policy: policy}
}

// Password implements Protection, routing the policy check to WRITE usage
// only, per spec §4.8 and invariant 11 of spec §8.
func (c *CheckedProtection) Password(usage Usage) ([]byte, error) {
	if usage == Write {
		if err := c.Policy.Check(c.Protection); err != nil {
			return nil, lmerrors.Wrap(lmerrors.PasswordPolicyFailure, err, messages.KeyUnknown)
		}
	}
	return c.Protection.Password(usage)
}

// MinimumStrength is the default Policy of spec §4.8: length and
// character-class rules, plus a common-password blocklist check via
// go-secure-stdlib/strutil (the teacher's dependency for string-set
// membership tests, generalized here from credential-helper server lists
// to a weak-password wordlist).
type MinimumStrength struct {
	// MinLength overrides the default minimum length (12) when positive.
	MinLength int
}

var commonPasswords = []string{
	"password", "123456", "12345678", "qwerty", "letmein", "changeme", "admin",
}

// Check implements Policy.
func (m MinimumStrength) Check(p Protection) error {
	secret, err := p.Password(Read)
	if err != nil {
		return err
	}
	minLen := m.MinLength
	if minLen <= 0 {
		minLen = 12
	}
	if len(secret) < minLen {
		return fmt.Errorf("password must be at least %d characters", minLen)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range string(secret) {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	classes := 0
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSymbol} {
		if ok {
			classes++
		}
	}
	if classes < 3 {
		return fmt.Errorf("password must mix at least 3 of: uppercase, lowercase, digit, symbol")
	}

	if strutil.StrListContains(commonPasswords, string(secret)) {
		return fmt.Errorf("password is too common")
	}
	return nil
}
