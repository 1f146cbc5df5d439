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

// Package initialize implements the default field-filling initializer of
// spec §4.6, plus the decorate/override composition of spec §4.1/§9.
package initialize

import (
	"github.com/licensecore/licensecore/pkg/clock"
	"github.com/licensecore/licensecore/pkg/license"
)

// Initializer fills unset fields on a license bean. Implementations must
// never overwrite a field a prior initializer already set (spec §4.6),
// including across composition.
type Initializer interface {
	Initialize(lic *license.License)
}

// Func adapts a function to an Initializer.
type Func func(lic *license.License)

// Initialize implements Initializer.
func (f Func) Initialize(lic *license.License) { f(lic) }

// Mode is the composition mode of spec §4.1: given a user-supplied first
// and the built-in second, Decorate runs "first then second"; Override
// runs "first only".
type Mode int

const (
	Decorate Mode = iota
	Override
)

// Compose builds the Initializer that Context.Initialization() returns:
// if first is nil, second (the built-in) runs alone; otherwise mode
// decides whether second also runs after first. Composition is pure — no
// hidden state is introduced here, per spec §4.1.
func Compose(first Initializer, mode Mode, second Initializer) Initializer {
	if first == nil {
		return second
	}
	if mode == Override {
		return first
	}
	return Func(func(lic *license.License) {
		first.Initialize(lic)
		second.Initialize(lic)
	})
}

// Default is the built-in initializer of spec §4.6: for each unset field,
// consumerType <- "User"; holder <- DN("CN=<unknown>"); issued <-
// context.now(); issuer <- DN("CN=" + subject); subject <- subject. The
// clock is always read through Context (injected here as a clock.Clock),
// never via the system clock directly.
type Default struct {
	Clock   clock.Clock
	Subject string
}

// Initialize implements Initializer. Invariant 12 of spec §8 (a bean with
// every field already set passes through unchanged) falls out of the
// "never overwrite a set field" rule applied field-by-field.
func (d Default) Initialize(lic *license.License) {
	if lic.ConsumerType == "" {
		lic.ConsumerType = "User"
	}
	if lic.Holder.IsZero() {
		lic.Holder = license.CN("<unknown>")
	}
	if lic.Issued.IsZero() {
		now := clockOrSystem(d.Clock).Now()
		lic.Issued = now
	}
	if lic.Issuer.IsZero() {
		lic.Issuer = license.CN(d.Subject)
	}
	if lic.Subject == "" {
		lic.Subject = d.Subject
	}
}

func clockOrSystem(c clock.Clock) clock.Clock {
	if c == nil {
		return clock.System{}
	}
	return c
}
