// Package wallet turns recovery phrases into Terra signing keys.
package wallet

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// MnemonicEntropyBits is the entropy size for 24-word mnemonics.
const MnemonicEntropyBits = 256

// ErrInvalidPhrase is matched by every PhraseError.
var ErrInvalidPhrase = errors.New("invalid mnemonic phrase")

// PhraseError reports a phrase that fails wordlist or checksum validation.
type PhraseError struct {
	Words  int
	Reason string
	Err    error
}

func (e *PhraseError) Error() string {
	return fmt.Sprintf("invalid mnemonic (%d words): %s", e.Words, e.Reason)
}

// Unwrap exposes the go-bip39 cause.
func (e *PhraseError) Unwrap() error { return e.Err }

// Is makes every PhraseError match ErrInvalidPhrase.
func (e *PhraseError) Is(target error) bool { return target == ErrInvalidPhrase }

// Language selects a BIP-39 wordlist.
type Language string

// Supported wordlists.
const (
	English            Language = "english"
	Japanese           Language = "japanese"
	Korean             Language = "korean"
	Spanish            Language = "spanish"
	ChineseSimplified  Language = "chinese_simplified"
	ChineseTraditional Language = "chinese_traditional"
	French             Language = "french"
	Italian            Language = "italian"
	Czech              Language = "czech"
)

var languageWords = map[Language][]string{
	English:            wordlists.English,
	Japanese:           wordlists.Japanese,
	Korean:             wordlists.Korean,
	Spanish:            wordlists.Spanish,
	ChineseSimplified:  wordlists.ChineseSimplified,
	ChineseTraditional: wordlists.ChineseTraditional,
	French:             wordlists.French,
	Italian:            wordlists.Italian,
	Czech:              wordlists.Czech,
}

// ParseLanguage maps a name like "english" to a Language.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if l == "" {
		return English, nil
	}
	if _, ok := languageWords[l]; !ok {
		return "", fmt.Errorf("unknown mnemonic language %q", s)
	}
	return l, nil
}

// go-bip39 keeps the active wordlist in a package variable.
var wordlistMu sync.Mutex

func withWordlist[T any](lang Language, fn func() (T, error)) (T, error) {
	var zero T
	words, ok := languageWords[lang]
	if !ok {
		return zero, fmt.Errorf("unknown mnemonic language %q", lang)
	}
	wordlistMu.Lock()
	defer wordlistMu.Unlock()
	bip39.SetWordList(words)
	defer bip39.SetWordList(wordlists.English)
	return fn()
}

// Phrase is a validated BIP-39 mnemonic.
type Phrase struct {
	words string
	lang  Language
}

// GenerateMnemonic creates a new 24-word phrase from crypto/rand entropy.
func GenerateMnemonic(lang Language) (Phrase, error) {
	words, err := withWordlist(lang, func() (string, error) {
		entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
		if err != nil {
			return "", fmt.Errorf("generate entropy: %w", err)
		}
		m, err := bip39.NewMnemonic(entropy)
		if err != nil {
			return "", fmt.Errorf("generate mnemonic: %w", err)
		}
		return m, nil
	})
	if err != nil {
		return Phrase{}, err
	}
	return Phrase{words: words, lang: lang}, nil
}

// ParseMnemonic validates an English phrase.
func ParseMnemonic(words string) (Phrase, error) {
	return ParseMnemonicIn(English, words)
}

// ParseMnemonicIn validates a phrase against the given wordlist.
// The phrase is NFKD-normalised and whitespace between words collapses to
// single spaces.
func ParseMnemonicIn(lang Language, words string) (Phrase, error) {
	if _, ok := languageWords[lang]; !ok {
		return Phrase{}, fmt.Errorf("unknown mnemonic language %q", lang)
	}
	fields := strings.Fields(norm.NFKD.String(words))
	normalized := strings.Join(fields, " ")
	_, err := withWordlist(lang, func() ([]byte, error) {
		return bip39.EntropyFromMnemonic(normalized)
	})
	if err != nil {
		reason := "unknown word or bad length"
		if errors.Is(err, bip39.ErrChecksumIncorrect) {
			reason = "checksum mismatch"
		}
		return Phrase{}, &PhraseError{Words: len(fields), Reason: reason, Err: err}
	}
	return Phrase{words: normalized, lang: lang}, nil
}

// Words returns the individual words.
func (p Phrase) Words() []string { return strings.Fields(p.words) }

// Language returns the wordlist the phrase was checked against.
func (p Phrase) Language() Language { return p.lang }

// IsZero reports whether p is the zero Phrase.
func (p Phrase) IsZero() bool { return p.words == "" }

// String returns the space-separated phrase.
func (p Phrase) String() string { return p.words }

// Seed derives the 64-byte seed. The passphrase is NFKD-normalised like
// the phrase. An empty passphrase is valid.
func (p Phrase) Seed(passphrase string) Seed {
	var s Seed
	copy(s[:], bip39.NewSeed(p.words, norm.NFKD.String(passphrase)))
	return s
}
