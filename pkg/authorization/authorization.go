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

// Package authorization implements the LicenseManagementAuthorization
// external collaborator of spec §6: five gates (clearGenerate, clearInstall,
// clearLoad, clearVerify, clearUninstall), each raising to deny. Spec §8
// invariant 3 requires that a deny short-circuits before any I/O, crypto,
// or cache mutation — every manager operation checks its gate first.
package authorization

import (
	"github.com/ryanuber/go-glob"

	"github.com/licensecore/licensecore/pkg/lmerrors"
	"github.com/licensecore/licensecore/pkg/messages"
)

// Operation names the five gated operations of spec §4.3.
type Operation string

const (
	OpGenerate  Operation = "generate"
	OpInstall   Operation = "install"
	OpLoad      Operation = "load"
	OpVerify    Operation = "verify"
	OpUninstall Operation = "uninstall"
)

// Subject identifies who/what is requesting an operation — typically the
// context's configured subject, but left generic so hosts can authorize
// against a caller identity instead.
type Subject = string

// Authorization is the spec §6 collaborator. Manager is passed as `any`
// because the concrete manager types live in pkg/manager, which already
// depends on this package — accepting the dependency the other way would
// create an import cycle; implementations that need to inspect the
// manager type-assert as needed.
type Authorization interface {
	Clear(op Operation, manager any) error
}

// PermitAll is the spec §3 default: every gate is open.
type PermitAll struct{}

// Clear implements Authorization.
func (PermitAll) Clear(Operation, any) error { return nil }

// GlobPolicy denies an Operation unless it matches one of Allow's glob
// patterns (e.g. "install", "load", "*" ), using the teacher's direct
// ryanuber/go-glob dependency (otherwise unused by the kept teacher
// source) the way an admission policy matches resource names against
// patterns.
type GlobPolicy struct {
	Allow []string
}

// Clear implements Authorization.
func (p GlobPolicy) Clear(op Operation, _ any) error {
	for _, pattern := range p.Allow {
		if glob.Glob(pattern, string(op)) {
			return nil
		}
	}
	return lmerrors.New(lmerrors.AuthorizationDenied, messages.KeyUnknown).
		WithDetail("operation " + string(op) + " is not permitted")
}
