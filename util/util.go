package util

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

func Read(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(bufio.NewReader(f))
}

// Write writes buf to a temporary file next to fileName and renames it
// into place.
func Write(buf []byte, fileName string) error {
	f, err := os.CreateTemp(filepath.Dir(fileName), "."+filepath.Base(fileName)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	n := 0
	for n < len(buf) {
		m, err := f.Write(buf[n:])
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
		n += m
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, fileName)
}
