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

package manager

import (
	"context"

	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/store"
)

// Unchecked is Go's nearest analogue to the checked/unchecked split the
// original license engine draws between its checked LicenseManager
// interface and an unchecked façade over it: every method here panics
// instead of returning an error, for host code that prefers to recover at
// a single boundary (e.g. an HTTP handler's deferred recover) rather than
// check an error after every call.
type Unchecked struct {
	Manager Manager
}

// Recover turns a panic carrying an error (as produced by Unchecked's
// methods) back into a returned error. Call it deferred, passing the
// address of a named return value:
//
//	func doWork() (err error) {
//	    defer manager.Recover(&err)
//	    u.Generate(ctx, lic)
//	    ...
//	}
func Recover(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = e
			return
		}
		panic(r)
	}
}

// Generate panics on failure instead of returning an error.
func (u Unchecked) Generate(ctx context.Context, lic *license.License) *GeneratedKey {
	gk, err := u.Manager.Generate(ctx, lic)
	if err != nil {
		panic(err)
	}
	return gk
}

// Install panics on failure instead of returning an error.
func (u Unchecked) Install(ctx context.Context, src store.Source) {
	if err := u.Manager.Install(ctx, src); err != nil {
		panic(err)
	}
}

// Load panics on failure instead of returning an error.
func (u Unchecked) Load(ctx context.Context) *license.License {
	lic, err := u.Manager.Load(ctx)
	if err != nil {
		panic(err)
	}
	return lic
}

// Verify panics on failure instead of returning an error.
func (u Unchecked) Verify(ctx context.Context) {
	if err := u.Manager.Verify(ctx); err != nil {
		panic(err)
	}
}

// Uninstall panics on failure instead of returning an error.
func (u Unchecked) Uninstall(ctx context.Context) {
	if err := u.Manager.Uninstall(ctx); err != nil {
		panic(err)
	}
}

// SaveTo panics on failure instead of returning an error.
func (u Unchecked) SaveTo(ctx context.Context, gk *GeneratedKey, sink store.Sink) {
	if err := gk.SaveTo(ctx, sink); err != nil {
		panic(err)
	}
}
