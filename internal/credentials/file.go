package credentials

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/hkdf"

	"github.com/KirkDiggler/pokequest/internal/errors"
)

const (
	saltSize = 16
	keySize  = 32
	hkdfInfo = "pokequest-credential-v1"
)

// FileConfig holds the configuration for the encrypted file store
type FileConfig struct {
	// Path of the sealed token file
	Path string
	// Secret is the passphrase the file key is derived from
	Secret string
}

// Validate ensures all required fields are provided
func (c *FileConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("Path", c.Path, vb)
	errors.ValidateRequired("Secret", c.Secret, vb)

	return vb.Build()
}

// fileStore keeps the token sealed with AES-GCM. The file layout is
// salt (16 bytes) || nonce || ciphertext; the key is HKDF-SHA256(secret, salt).
type fileStore struct {
	mu     sync.Mutex
	path   string
	secret []byte
}

// NewFileStore creates a token store backed by an encrypted file
func NewFileStore(cfg *FileConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &fileStore{
		path:   cfg.Path,
		secret: []byte(cfg.Secret),
	}, nil
}

func (f *fileStore) Get(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	blob, err := os.ReadFile(f.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", ErrMissing()
		}
		return "", errors.Wrapf(err, "failed to read credential file %s", f.path)
	}
	if len(blob) == 0 {
		return "", ErrMissing()
	}

	token, err := f.open(blob)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnauthenticated, "failed to unseal credential")
	}
	return string(token), nil
}

func (f *fileStore) Set(_ context.Context, token string) error {
	if err := validateToken(token); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	blob, err := f.seal([]byte(token))
	if err != nil {
		return errors.Wrap(err, "failed to seal credential")
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", f.path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".credential-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp credential file")
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to write credential file")
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to restrict credential file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close credential file")
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrapf(err, "failed to replace credential file %s", f.path)
	}
	return nil
}

func (f *fileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "failed to remove credential file %s", f.path)
	}
	return nil
}

func (f *fileStore) aead(salt []byte) (cipher.AEAD, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, f.secret, salt, []byte(hkdfInfo)), key); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (f *fileStore) seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	gcm, err := f.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

func (f *fileStore) open(blob []byte) ([]byte, error) {
	if len(blob) < saltSize {
		return nil, stderrors.New("credential file too short")
	}

	gcm, err := f.aead(blob[:saltSize])
	if err != nil {
		return nil, err
	}

	rest := blob[saltSize:]
	ns := gcm.NonceSize()
	if len(rest) < ns {
		return nil, stderrors.New("credential file too short")
	}
	return gcm.Open(nil, rest[:ns], rest[ns:], nil)
}
