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

package auth

import (
	"bytes"
	"crypto"
	"fmt"

	"github.com/sigstore/sigstore/pkg/cryptoutils"
	"github.com/sigstore/sigstore/pkg/signature"

	"github.com/licensecore/licensecore/pkg/license"
	"github.com/licensecore/licensecore/pkg/lmerrors"
	"github.com/licensecore/licensecore/pkg/messages"
	"github.com/licensecore/licensecore/pkg/repository"
)

// PEMKeystore is the default Authentication: a PEM-encoded keypair loaded
// through sigstore/sigstore's signature package, the same loader the
// teacher's pkg/webhook/validation.go uses (signature.LoadVerifier) to
// check an image signature against a configured public key. A vendor
// keystore carries both SignerPEM and VerifierPEM; a consumer-only
// keystore carries VerifierPEM alone, which makes Sign fail — this is
// exactly the asymmetry spec §4.5's capability latch depends on.
type PEMKeystore struct {
	SignerPEM   []byte // private key; nil for a consumer-only keystore
	VerifierPEM []byte // public key; required
	Hash        crypto.Hash
}

// NewPEMKeystore returns a PEMKeystore. hash defaults to SHA256 when zero.
func NewPEMKeystore(signerPEM, verifierPEM []byte, hash crypto.Hash) *PEMKeystore {
	if hash == 0 {
		hash = crypto.SHA256
	}
	return &PEMKeystore{SignerPEM: signerPEM, VerifierPEM: verifierPEM, Hash: hash}
}

// Sign implements Authentication.
func (k *PEMKeystore) Sign(ctrl repository.Controller, lic *license.License) (Decoder, error) {
	if len(k.SignerPEM) == 0 {
		return nil, lmerrors.New(lmerrors.AuthenticationFailure, messages.KeyUnknown).
			WithDetail("no signing key configured in this keystore")
	}
	privKey, err := cryptoutils.UnmarshalPEMToPrivateKey(k.SignerPEM, cryptoutils.SkipPassword)
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.AuthenticationFailure, err, messages.KeyUnknown)
	}
	signer, err := signature.LoadSigner(privKey, k.Hash)
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.AuthenticationFailure, err, messages.KeyUnknown)
	}

	if err := ctrl.SetPayload(lic); err != nil {
		return nil, lmerrors.Wrap(lmerrors.StoreFailure, err, messages.KeyUnknown)
	}
	sig, err := signer.SignMessage(bytes.NewReader(ctrl.Model().SignedPayload))
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.AuthenticationFailure, err, messages.KeyUnknown)
	}
	ctrl.Model().Signature = sig

	return DecoderFunc(ctrl.Decode), nil
}

// Verify implements Authentication.
func (k *PEMKeystore) Verify(ctrl repository.Controller) (Decoder, error) {
	if len(k.VerifierPEM) == 0 {
		return nil, lmerrors.New(lmerrors.AuthenticationFailure, messages.KeyUnknown).
			WithDetail("no verification key configured in this keystore")
	}
	pubKey, err := cryptoutils.UnmarshalPEMToPublicKey(k.VerifierPEM)
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.AuthenticationFailure, err, messages.KeyUnknown)
	}
	verifier, err := signature.LoadVerifier(pubKey, k.Hash)
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.AuthenticationFailure, err, messages.KeyUnknown)
	}

	model := ctrl.Model()
	if len(model.Signature) == 0 || len(model.SignedPayload) == 0 {
		return nil, lmerrors.New(lmerrors.AuthenticationFailure, messages.KeyUnknown).
			WithDetail("artifact carries no signature")
	}
	err = verifier.VerifySignature(bytes.NewReader(model.Signature), bytes.NewReader(model.SignedPayload))
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.AuthenticationFailure, err, messages.KeyUnknown)
	}
	return DecoderFunc(ctrl.Decode), nil
}

// PEMFactory is the default Factory, building PEMKeystore values from
// FactoryParams. Algorithm is interpreted as a crypto.Hash name
// ("SHA256", "SHA384", "SHA512"); unset defaults to SHA256. Source is
// required and holds the PEM blocks of a simple single-blob keystore in
// any order: the block containing "PUBLIC KEY" is the verifying key
// (required), the one containing "PRIVATE KEY" the signing key
// (optional). ResourceName is not used. Hosts with a real keystore format
// (PKCS#12, a KMS reference, etc.) should supply their own Factory.
type PEMFactory struct{}

// New implements Factory.
func (PEMFactory) New(params FactoryParams) (Authentication, error) {
	hash, err := parseHash(params.Algorithm)
	if err != nil {
		return nil, lmerrors.Wrap(lmerrors.ConfigError, err, messages.KeyUnknown)
	}
	if len(params.Source) == 0 {
		return nil, lmerrors.New(lmerrors.ConfigError, messages.KeyUnknown).
			WithDetail(fmt.Sprintf("no keystore material supplied for alias %q", params.Alias))
	}
	blocks := splitPEMBlocks(params.Source)
	var signerPEM, verifierPEM []byte
	for _, b := range blocks {
		switch {
		case bytes.Contains(b, []byte("PRIVATE KEY")):
			signerPEM = b
		case bytes.Contains(b, []byte("PUBLIC KEY")):
			verifierPEM = b
		}
	}
	if len(verifierPEM) == 0 {
		return nil, lmerrors.New(lmerrors.ConfigError, messages.KeyUnknown).
			WithDetail(fmt.Sprintf("keystore for alias %q has no public key", params.Alias))
	}
	return NewPEMKeystore(signerPEM, verifierPEM, hash), nil
}

func parseHash(algorithm string) (crypto.Hash, error) {
	switch algorithm {
	case "", "SHA256", "SHA256withDSA", "SHA256withRSA", "SHA256withECDSA":
		return crypto.SHA256, nil
	case "SHA384":
		return crypto.SHA384, nil
	case "SHA512":
		return crypto.SHA512, nil
	default:
		return 0, fmt.Errorf("unsupported signature algorithm %q", algorithm)
	}
}

func splitPEMBlocks(data []byte) [][]byte {
	var blocks [][]byte
	start := -1
	lines := bytes.Split(data, []byte("\n"))
	var cur [][]byte
	for _, line := range lines {
		if bytes.HasPrefix(line, []byte("-----BEGIN")) {
			start = 0
			cur = nil
		}
		if start >= 0 {
			cur = append(cur, line)
		}
		if bytes.HasPrefix(line, []byte("-----END")) && start >= 0 {
			blocks = append(blocks, bytes.Join(cur, []byte("\n")))
			start = -1
		}
	}
	return blocks
}
