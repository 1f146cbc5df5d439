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

// Package lmerrors implements the error taxonomy of spec §7 — a fixed set
// of failure Kinds, rendered through a message catalogue, composable with
// hashicorp/go-multierror the way pkg/apis/policy/common/validation.go in
// the teacher repo aggregates field-level admission errors.
package lmerrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/errwrap"
	"github.com/hashicorp/go-multierror"

	"github.com/licensecore/licensecore/pkg/messages"
)

// Kind enumerates the taxonomy from spec §7. Kinds are compared with
// errors.Is against the Kind sentinel values below, not by type assertion,
// so callers can test failures without importing this package's Error type.
type Kind int

const (
	Unexpected Kind = iota
	ConfigError
	AuthorizationDenied
	AuthenticationFailure
	ValidationFailure
	StoreFailure
	PasswordPolicyFailure
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case AuthorizationDenied:
		return "AuthorizationDenied"
	case AuthenticationFailure:
		return "AuthenticationFailure"
	case ValidationFailure:
		return "ValidationFailure"
	case StoreFailure:
		return "StoreFailure"
	case PasswordPolicyFailure:
		return "PasswordPolicyFailure"
	default:
		return "Unexpected"
	}
}

// Error is the LicenseManagementException of spec §6/§7: every operation
// the core exposes surfaces failures through this type (or, via the
// unchecked manager, a panic carrying one).
type Error struct {
	Kind    Kind
	Key     messages.Key
	Args    []any
	Cause   error
	Catalog messages.Catalog
}

func (e *Error) Error() string {
	catalog := e.Catalog
	if catalog == nil {
		catalog = messages.Default
	}
	msg := catalog.Message(e.Key, e.Args...)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, lmerrors.KindSentinel(...)) work by comparing Kind values
// wrapped in a kindSentinel, see KindSentinel below.
func (e *Error) Is(target error) bool {
	var ks kindSentinel
	if errors.As(target, &ks) {
		return e.Kind == ks.kind
	}
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

type kindSentinel struct{ kind Kind }

func (k kindSentinel) Error() string { return k.kind.String() }

// KindSentinel returns a sentinel error usable with errors.Is to test the
// Kind of an Error without type-asserting it, e.g.:
//
//	if errors.Is(err, lmerrors.KindSentinel(lmerrors.AuthenticationFailure)) { ... }
func KindSentinel(kind Kind) error { return kindSentinel{kind: kind} }

// New builds an Error of the given Kind and message key.
func New(kind Kind, key messages.Key, args ...any) *Error {
	return &Error{Kind: kind, Key: key, Args: args}
}

// Wrap builds an Error that carries an underlying cause.
func Wrap(kind Kind, cause error, key messages.Key, args ...any) *Error {
	return &Error{Kind: kind, Key: key, Args: args, Cause: cause}
}

// WithDetail attaches free-form detail text to e, rendered after the
// catalogue message. Used for failures (e.g. "no signing key configured")
// that are collaborator-specific rather than part of the fixed message
// catalogue of spec §7.
func (e *Error) WithDetail(detail string) *Error {
	e.Cause = errors.New(detail)
	return e
}

// Aggregate collects zero or more validation-style failures into a single
// error, mirroring how common/validation.go in the teacher folds together
// apis.FieldError values with .Also(). A nil is returned when errs is empty
// so callers can write `return Aggregate(errs)` unconditionally.
func Aggregate(errs []error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

// ContainsMessage reports whether err — a plain error or a multierror.Error
// aggregate — contains a failure whose rendered text includes substr. It
// walks the multierror.Error.WrappedErrors() tree via errwrap, the same
// mechanism multierror itself relies on for Contains-style checks.
func ContainsMessage(err error, substr string) bool {
	found := false
	errwrap.Walk(err, func(e error) {
		if strings.Contains(e.Error(), substr) {
			found = true
		}
	})
	return found
}
