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

// Package validate implements the default validation rules of spec §4.7:
// a license bean is well-formed only if every required field is set and
// its time window covers the current instant.
package validate

import (
	"github.com/licensecore/licensecore/pkg/clock"
	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/lmerrors"
	"github.com/licensecore/licensecore/pkg/messages"
)

// Validator checks a license bean, returning an aggregate ValidationFailure
// (via lmerrors.Aggregate) when one or more rules are violated, or nil when
// the bean is well-formed.
type Validator interface {
	Validate(lic *license.License) error
}

// Func adapts a function to a Validator.
type Func func(lic *license.License) error

// Validate implements Validator.
func (f Func) Validate(lic *license.License) error { return f(lic) }

// Mode mirrors initialize.Mode for a user-supplied validator composed with
// the built-in one.
type Mode int

const (
	Decorate Mode = iota
	Override
)

// Compose builds the Validator that Context.Validation() returns. Under
// Decorate, both validators run and their failures are aggregated even if
// the first already failed, so a caller sees every violation at once.
func Compose(first Validator, mode Mode, second Validator) Validator {
	if first == nil {
		return second
	}
	if mode == Override {
		return first
	}
	return Func(func(lic *license.License) error {
		var errs []error
		if err := first.Validate(lic); err != nil {
			errs = append(errs, err)
		}
		if err := second.Validate(lic); err != nil {
			errs = append(errs, err)
		}
		return lmerrors.Aggregate(errs)
	})
}

// Default is the built-in validator of spec §4.7.
type Default struct {
	Clock   clock.Clock
	Subject string
}

// Validate implements Validator. Every violated rule contributes one
// ValidationFailure to the aggregate; a bean failing on several fronts
// surfaces all of them, not just the first encountered.
func (d Default) Validate(lic *license.License) error {
	var errs []error

	if lic.ConsumerAmount <= 0 {
		errs = append(errs, lmerrors.New(lmerrors.ValidationFailure, messages.KeyConsumerAmountNotPositive, lic.ConsumerAmount))
	}
	if lic.ConsumerType == "" {
		errs = append(errs, lmerrors.New(lmerrors.ValidationFailure, messages.KeyConsumerTypeIsNull))
	}
	if lic.Holder.IsZero() {
		errs = append(errs, lmerrors.New(lmerrors.ValidationFailure, messages.KeyHolderIsNull))
	}
	if lic.Issuer.IsZero() {
		errs = append(errs, lmerrors.New(lmerrors.ValidationFailure, messages.KeyIssuerIsNull))
	}
	if lic.Issued.IsZero() {
		errs = append(errs, lmerrors.New(lmerrors.ValidationFailure, messages.KeyIssuedIsNull))
	}

	now := clockOrSystem(d.Clock).Now()
	if lic.NotAfter != nil && now.After(*lic.NotAfter) {
		errs = append(errs, lmerrors.New(lmerrors.ValidationFailure, messages.KeyLicenseHasExpired, *lic.NotAfter))
	}
	if lic.NotBefore != nil && now.Before(*lic.NotBefore) {
		errs = append(errs, lmerrors.New(lmerrors.ValidationFailure, messages.KeyLicenseNotYetValid, *lic.NotBefore))
	}
	if d.Subject != "" && lic.Subject != d.Subject {
		errs = append(errs, lmerrors.New(lmerrors.ValidationFailure, messages.KeyInvalidSubject, d.Subject, lic.Subject))
	}

	return lmerrors.Aggregate(errs)
}

func clockOrSystem(c clock.Clock) clock.Clock {
	if c == nil {
		return clock.System{}
	}
	return c
}
