package main

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

func noRelease() error { return nil }

// openInput returns the contents of path and a function releasing them.
// With useMmap the file is mapped read-only, so borrowed values point into
// the mapping and must not outlive release.
func openInput(path string, stdin io.Reader, useMmap bool) ([]byte, func() error, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, noRelease, nil
	}

	if !useMmap {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}

		return data, noRelease, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	// the mapping stays valid after the file is closed
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	if st.Size() == 0 {
		return nil, noRelease, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	return m, m.Unmap, nil
}
