package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Magic bytes identify value files.
var fileMagic = []byte("FSESSKV1")

const (
	fileExtension     = ".kv"
	fileChecksumSize  = sha256.Size
	fileHeaderVersion = 1
)

var (
	ErrInvalidMagic     = errors.New("file: invalid magic bytes")
	ErrChecksumMismatch = errors.New("file: checksum mismatch")
	ErrEncrypted        = errors.New("file: value is encrypted and no passphrase is configured")
)

type fileHeader struct {
	Version   int    `json:"version"`
	Key       string `json:"key"`
	UpdatedAt int64  `json:"updated_at"`
	Encrypted bool   `json:"encrypted"`
}

// FileEngine implements Backend with one checksummed file per key.
//
// File layout:
//
//	magic(8) | header_len(4) | header(json) | data_len(4) | data | sha256(32)
//
// The trailer covers everything before it. Writes go to a temp file that is
// renamed into place, so readers never observe a partial value.
type FileEngine struct {
	dir    string
	seal   *sealer
	logger *slog.Logger

	mu sync.Mutex
}

// NewFileEngine creates the storage directory and returns the engine.
func NewFileEngine(cfg KVConfig, logger *slog.Logger) (*FileEngine, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file: path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(cfg.Path, 0750); err != nil {
		return nil, fmt.Errorf("file: create dir: %w", err)
	}

	return &FileEngine{
		dir:    cfg.Path,
		seal:   newSealer(cfg.File.Passphrase),
		logger: logger,
	}, nil
}

func (e *FileEngine) pathFor(key []byte) string {
	return filepath.Join(e.dir, hex.EncodeToString(key)+fileExtension)
}

// Get retrieves a value by key.
func (e *FileEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw, err := os.ReadFile(e.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("file: read: %w", err)
	}

	hdr, data, err := decodeValueFile(raw)
	if err != nil {
		return nil, err
	}

	if !hdr.Encrypted {
		return data, nil
	}
	if e.seal == nil {
		return nil, ErrEncrypted
	}
	plain, err := e.seal.Open(data, sealedAD(key))
	if err != nil {
		return nil, fmt.Errorf("file: decrypt: %w", err)
	}
	return plain, nil
}

// sealedAD ties a sealed value to the key it was written under.
func sealedAD(key []byte) []byte {
	ad := make([]byte, 0, len(fileMagic)+len(key))
	return append(append(ad, fileMagic...), key...)
}

// Set stores a key-value pair.
func (e *FileEngine) Set(ctx context.Context, key, value []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	data := value
	if e.seal != nil {
		sealed, err := e.seal.Seal(value, sealedAD(key))
		if err != nil {
			return fmt.Errorf("file: encrypt: %w", err)
		}
		data = sealed
	}

	hdr := fileHeader{
		Version:   fileHeaderVersion,
		Key:       string(key),
		UpdatedAt: time.Now().UnixMilli(),
		Encrypted: e.seal != nil,
	}
	encoded, err := encodeValueFile(hdr, data)
	if err != nil {
		return err
	}

	final := e.pathFor(key)
	tmp, err := os.CreateTemp(e.dir, filepath.Base(final)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("file: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("file: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("file: rename: %w", err)
	}

	return nil
}

// Delete removes a key.
func (e *FileEngine) Delete(ctx context.Context, key []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := os.Remove(e.pathFor(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file: remove: %w", err)
	}
	return nil
}

// Close is a no-op; every operation opens and closes its own file.
func (e *FileEngine) Close() error {
	return nil
}

func encodeValueFile(hdr fileHeader, data []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(hdr)
	if err != nil {
		return nil, fmt.Errorf("file: marshal header: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(fileMagic)

	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(hdrJSON)))
	buf.Write(n[:])
	buf.Write(hdrJSON)

	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	buf.Write(n[:])
	buf.Write(data)

	sum := sha256.Sum256(buf.Bytes())
	buf.Write(sum[:])

	return buf.Bytes(), nil
}

func decodeValueFile(raw []byte) (fileHeader, []byte, error) {
	var hdr fileHeader

	if len(raw) < len(fileMagic)+fileChecksumSize {
		return hdr, nil, ErrChecksumMismatch
	}

	body := raw[:len(raw)-fileChecksumSize]
	sum := sha256.Sum256(body)
	if !bytes.Equal(sum[:], raw[len(body):]) {
		return hdr, nil, ErrChecksumMismatch
	}

	r := bytes.NewReader(body)

	magic := make([]byte, len(fileMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return hdr, nil, err
	}
	if !bytes.Equal(magic, fileMagic) {
		return hdr, nil, ErrInvalidMagic
	}

	hdrJSON, err := readChunk(r)
	if err != nil {
		return hdr, nil, fmt.Errorf("file: read header: %w", err)
	}
	if err := json.Unmarshal(hdrJSON, &hdr); err != nil {
		return hdr, nil, fmt.Errorf("file: unmarshal header: %w", err)
	}

	data, err := readChunk(r)
	if err != nil {
		return hdr, nil, fmt.Errorf("file: read data: %w", err)
	}

	return hdr, data, nil
}

func readChunk(r *bytes.Reader) ([]byte, error) {
	var n [4]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return nil, err
	}
	size := binary.BigEndian.Uint32(n[:])
	if int64(size) > int64(r.Len()) {
		return nil, io.ErrUnexpectedEOF
	}
	chunk := make([]byte, size)
	if _, err := io.ReadFull(r, chunk); err != nil {
		return nil, err
	}
	return chunk, nil
}
