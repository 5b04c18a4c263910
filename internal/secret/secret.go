// secret шифрует секреты, хранящиеся в конфиге и БД (AES-256-GCM).
//
// Формат: base64(iv) "." base64(tag) "." base64(ciphertext), стандартный алфавит base64.
// Ключ - SHA-256 от парольной фразы, вычисляется один раз в New.
package secret

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
)

const (
	ivSize  = 12
	tagSize = 16
)

// ErrEmptyPassphrase - пустая парольная фраза.
var ErrEmptyPassphrase = errors.New("secret: empty passphrase")

// Box - AEAD-шифратор с фиксированным ключом.
type Box struct {
	aead cipher.AEAD
	rand io.Reader
}

// New создаёт Box, выводя ключ из парольной фразы.
func New(passphrase string) (*Box, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}

	key := sha256.Sum256([]byte(passphrase))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}

	return &Box{aead: aead, rand: rand.Reader}, nil
}

// Encrypt шифрует plain со случайным 12-байтовым IV.
func (b *Box) Encrypt(plain string) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(b.rand, iv); err != nil {
		return "", fmt.Errorf("secret: iv: %w", err)
	}

	sealed := b.aead.Seal(nil, iv, []byte(plain), nil)
	ct, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	enc := base64.StdEncoding
	return enc.EncodeToString(iv) + "." + enc.EncodeToString(tag) + "." + enc.EncodeToString(ct), nil
}

// Decrypt расшифровывает payload. ok=false означает «секрет недоступен»
// (битый формат или несовпадение тега); причина пишется в лог.
// Пустая строка с ok=true - законно зашифрованная пустая строка.
func (b *Box) Decrypt(ctx context.Context, payload string) (string, bool) {
	plain, err := b.open(payload)
	if err != nil {
		log.From(ctx).Warn("secret_decrypt_failed", "err", err)
		return "", false
	}

	return plain, true
}

func (b *Box) open(payload string) (string, error) {
	parts := strings.Split(payload, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed payload: want 3 parts, got %d", len(parts))
	}

	enc := base64.StdEncoding

	iv, err := enc.DecodeString(parts[0])
	if err != nil || len(iv) != ivSize {
		return "", errors.New("malformed iv")
	}

	tag, err := enc.DecodeString(parts[1])
	if err != nil || len(tag) != tagSize {
		return "", errors.New("malformed tag")
	}

	ct, err := enc.DecodeString(parts[2])
	if err != nil {
		return "", errors.New("malformed ciphertext")
	}

	plain, err := b.aead.Open(nil, iv, append(ct, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}

	return string(plain), nil
}
