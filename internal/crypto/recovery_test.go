package crypto

import (
	"strings"
	"testing"

	"github.com/tyler-smith/go-bip39"
)

// zeroEntropyMnemonic is the BIP-39 test vector for 32 zero bytes.
var zeroEntropyMnemonic = strings.TrimSpace(strings.Repeat("abandon ", 23)) + " art"

func TestGenerateRecoveryKey_Shape(t *testing.T) {
	mgr := NewRecoveryKeyManager()
	set := make(map[string]struct{})
	for _, w := range bip39.GetWordList() {
		set[w] = struct{}{}
	}

	for i := 0; i < 20; i++ {
		m, err := mgr.GenerateRecoveryKey()
		if err != nil {
			t.Fatalf("GenerateRecoveryKey error: %v", err)
		}

		words := strings.Split(m, " ")
		if len(words) != RecoveryKeyWords {
			t.Fatalf("got %d words, want %d: %q", len(words), RecoveryKeyWords, m)
		}
		for _, w := range words {
			if _, ok := set[w]; !ok {
				t.Fatalf("word %q is not in the wordlist", w)
			}
		}
		if !mgr.IsValidRecoveryKey(m) {
			t.Fatalf("generated mnemonic rejected: %q", m)
		}
	}
}

func TestGenerateRecoveryKey_Unique(t *testing.T) {
	mgr := NewRecoveryKeyManager()
	a, _ := mgr.GenerateRecoveryKey()
	b, _ := mgr.GenerateRecoveryKey()
	if a == b {
		t.Fatalf("expected two recovery keys to differ")
	}
}

func TestIsValidRecoveryKey(t *testing.T) {
	mgr := NewRecoveryKeyManager()
	valid, err := mgr.GenerateRecoveryKey()
	if err != nil {
		t.Fatalf("GenerateRecoveryKey error: %v", err)
	}
	words := strings.Fields(valid)

	unknown := append([]string{"notaword"}, words[1:]...)

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "generated", in: valid, want: true},
		{name: "known vector", in: zeroEntropyMnemonic, want: true},
		{name: "upper case and extra spaces", in: "  " + strings.ToUpper(strings.Join(words, "   ")) + "\n", want: true},
		{name: "23 words", in: strings.Join(words[:23], " "), want: false},
		{name: "25 words", in: valid + " abandon", want: false},
		{name: "unknown word", in: strings.Join(unknown, " "), want: false},
		{name: "bad checksum", in: strings.TrimSpace(strings.Repeat("abandon ", 24)), want: false},
		{name: "12 valid words", in: strings.TrimSpace(strings.Repeat("abandon ", 11)) + " about", want: false},
		{name: "empty", in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mgr.IsValidRecoveryKey(tt.in); got != tt.want {
				t.Fatalf("IsValidRecoveryKey = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashRecoveryKey(t *testing.T) {
	mgr := NewRecoveryKeyManager()

	h1 := mgr.HashRecoveryKey(zeroEntropyMnemonic)
	h2 := mgr.HashRecoveryKey("  " + strings.ToUpper(zeroEntropyMnemonic))
	if h1 != h2 {
		t.Fatalf("expected normalised phrases to hash identically")
	}
	if h1 == zeroEntropyMnemonic || strings.Contains(h1, "abandon") {
		t.Fatalf("hash leaks the mnemonic")
	}

	other, _ := mgr.GenerateRecoveryKey()
	if mgr.HashRecoveryKey(other) == h1 {
		t.Fatalf("expected different mnemonics to hash differently")
	}
}
