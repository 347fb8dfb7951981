package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/marbles/pkg/errors"
)

// MaxTraceSize bounds the payloads accepted by [ReadTrace].
const MaxTraceSize = 32 << 20

// Stdin is the path that selects standard input in [ImportTrace].
const Stdin = "-"

// ReadTrace reads a whole trace payload from r. It does not close r.
func ReadTrace(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxTraceSize+1))
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	if len(data) > MaxTraceSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "trace exceeds %d bytes", MaxTraceSize)
	}
	return data, nil
}

// ImportTrace reads the trace at path, or standard input when path is "-".
func ImportTrace(path string) ([]byte, error) {
	if path == Stdin {
		return ReadTrace(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTrace(f)
}
