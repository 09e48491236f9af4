package runner

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

const compareChunkSize = 64 * 1024

// FilesEqual compares two files byte for byte.
func FilesEqual(path1, path2 string) (bool, error) {
	f1, err := os.Open(path1)
	if err != nil {
		return false, fmt.Errorf("comparing outputs: %w", err)
	}
	defer f1.Close()
	f2, err := os.Open(path2)
	if err != nil {
		return false, fmt.Errorf("comparing outputs: %w", err)
	}
	defer f2.Close()

	s1, err := f1.Stat()
	if err != nil {
		return false, err
	}
	s2, err := f2.Stat()
	if err != nil {
		return false, err
	}
	if s1.Size() != s2.Size() {
		return false, nil
	}

	b1 := make([]byte, compareChunkSize)
	b2 := make([]byte, compareChunkSize)
	for {
		n1, err1 := io.ReadFull(f1, b1)
		n2, err2 := io.ReadFull(f2, b2)
		if !bytes.Equal(b1[:n1], b2[:n2]) {
			return false, nil
		}
		if err1 == io.EOF || err1 == io.ErrUnexpectedEOF {
			return err2 == io.EOF || err2 == io.ErrUnexpectedEOF, nil
		}
		if err1 != nil {
			return false, err1
		}
		if err2 != nil {
			return false, err2
		}
	}
}
