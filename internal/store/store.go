// Package store keeps the classified jobs of the last run so that a later
// invocation can inspect or re-run them.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/programme-lv/pal/internal/dispatch"
	"github.com/programme-lv/pal/internal/job"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type RunStore struct {
	Passed  []job.Entry     `json:"passed"`
	Failed  []job.Entry     `json:"failed"`
	Context job.ExecContext `json:"context"`
}

func FromReport(rep *dispatch.Report, ec job.ExecContext) *RunStore {
	return &RunStore{
		Passed:  orEmpty(rep.Passed),
		Failed:  orEmpty(rep.Failed),
		Context: ec,
	}
}

// Save writes s to path. Paths ending in ".zst" are zstd compressed.
func Save(path string, s *RunStore) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal run store: %w", err)
	}

	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to close zstd encoder: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write run store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write run store: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace run store: %w", err)
	}
	return nil
}

// Load reads a store written by Save, compressed or not.
func Load(path string) (*RunStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run store: %w", err)
	}

	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress run store: %w", err)
		}
	}

	var s RunStore
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse run store: %w", err)
	}
	return &s, nil
}

func orEmpty(entries []job.Entry) []job.Entry {
	if entries == nil {
		return []job.Entry{}
	}
	return entries
}
