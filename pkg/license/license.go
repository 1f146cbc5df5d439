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

// Package license defines the license bean, spec §3's mutable data carrier.
// Invariants are never enforced here — they belong to the validator — the
// bean itself is a plain record, same as the teacher's DistinguishedName
// alias in pkg/apis/config/sigstore_keys.go (Organization, CommonName only).
package license

import "time"

// DistinguishedName mirrors the teacher's pbcommon.DistinguishedName shape
// (Organization, CommonName), trimmed to what spec §3's holder/issuer
// fields need.
type DistinguishedName struct {
	CommonName   string
	Organization string
}

// String renders a DN the way X.509 and the teacher's certificate-authority
// code do: "CN=...,O=...".
func (dn DistinguishedName) String() string {
	if dn.CommonName == "" && dn.Organization == "" {
		return ""
	}
	s := "CN=" + dn.CommonName
	if dn.Organization != "" {
		s += ",O=" + dn.Organization
	}
	return s
}

// IsZero reports whether dn carries no data at all.
func (dn DistinguishedName) IsZero() bool {
	return dn.CommonName == "" && dn.Organization == ""
}

// CN is a convenience constructor for a DN with only a common name set —
// the shape spec §4.6's default initializer produces.
func CN(name string) DistinguishedName {
	return DistinguishedName{CommonName: name}
}

// License is the bean of spec §3: a mutable record of license fields plus
// user extension fields. None of the invariants listed in spec §3 are
// enforced by this type; see pkg/validate.
type License struct {
	ConsumerAmount int               `json:"consumerAmount" yaml:"consumerAmount"`
	ConsumerType   string            `json:"consumerType" yaml:"consumerType"`
	Holder         DistinguishedName `json:"holder" yaml:"holder"`
	Issuer         DistinguishedName `json:"issuer" yaml:"issuer"`
	Issued         time.Time         `json:"issued" yaml:"issued"`
	NotBefore      *time.Time        `json:"notBefore,omitempty" yaml:"notBefore,omitempty"`
	NotAfter       *time.Time        `json:"notAfter,omitempty" yaml:"notAfter,omitempty"`
	Subject        string            `json:"subject" yaml:"subject"`
	Extra          map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Clone returns a deep copy. The key generator's defensive copy (spec
// §4.3, invariant 2) does not use it: it duplicates through the configured
// codec so it catches anything a codec would drop.
func (l *License) Clone() *License {
	if l == nil {
		return nil
	}
	cp := *l
	if l.NotBefore != nil {
		nb := *l.NotBefore
		cp.NotBefore = &nb
	}
	if l.NotAfter != nil {
		na := *l.NotAfter
		cp.NotAfter = &na
	}
	if l.Extra != nil {
		cp.Extra = make(map[string]string, len(l.Extra))
		for k, v := range l.Extra {
			cp.Extra[k] = v
		}
	}
	return &cp
}
