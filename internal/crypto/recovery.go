// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"
)

const (
	// RecoveryKeyWords is the number of words in a recovery mnemonic.
	RecoveryKeyWords = 24

	recoveryEntropyBits = 256
)

var wordSet = sync.OnceValue(func() map[string]struct{} {
	words := bip39.GetWordList()
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
})

type recoveryKeyManager struct{}

// NewRecoveryKeyManager returns the BIP-39 (English wordlist) implementation
// of [RecoveryKeyManager].
func NewRecoveryKeyManager() RecoveryKeyManager {
	return &recoveryKeyManager{}
}

// GenerateRecoveryKey implements [RecoveryKeyManager].
func (r *recoveryKeyManager) GenerateRecoveryKey() (string, error) {
	entropy, err := bip39.NewEntropy(recoveryEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate recovery entropy: %w", err)
	}
	defer wipe(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("encode recovery mnemonic: %w", err)
	}
	return mnemonic, nil
}

// IsValidRecoveryKey implements [RecoveryKeyManager].
func (r *recoveryKeyManager) IsValidRecoveryKey(m string) bool {
	normalized := NormalizeRecoveryKey(m)
	words := strings.Fields(normalized)
	if len(words) != RecoveryKeyWords {
		return false
	}

	set := wordSet()
	for _, w := range words {
		if _, ok := set[w]; !ok {
			return false
		}
	}

	// checksum
	return bip39.IsMnemonicValid(normalized)
}

// HashRecoveryKey implements [RecoveryKeyManager].
func (r *recoveryKeyManager) HashRecoveryKey(m string) string {
	sum := sha256.Sum256([]byte(NormalizeRecoveryKey(m)))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// NormalizeRecoveryKey lower-cases the phrase and collapses whitespace so
// that hand-typed mnemonics hash identically to generated ones.
func NormalizeRecoveryKey(m string) string {
	return strings.Join(strings.Fields(strings.ToLower(m)), " ")
}
