package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/flowboard/pkg/errors"
)

// Marshal encodes s as indented JSON.
func Marshal(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes and validates a snapshot from JSON bytes.
func Unmarshal(data []byte) (Snapshot, error) {
	return Read(bytes.NewReader(data))
}

// WriteFile writes s to path as JSON.
// The file is created with 0644 permissions.
func WriteFile(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes s as indented JSON to w.
func Write(s Snapshot, w io.Writer) error {
	if s.Nodes == nil {
		s.Nodes = []Node{}
	}
	if s.Connections == nil {
		s.Connections = []Connection{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadFile reads and validates a snapshot from a JSON file.
func ReadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	s, err := Read(f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Read decodes and validates a snapshot from r.
func Read(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidSeed, err, "decode seed")
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
