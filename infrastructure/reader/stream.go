package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// lineStream reads newline-terminated lines from a file. Only the
// trailing '\n' is removed; every other byte is preserved.
type lineStream struct {
	path string
	file *os.File
	buf  *bufio.Reader
}

func openLineStream(path string, bufferSize int) (*lineStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &lineStream{
		path: path,
		file: f,
		buf:  bufio.NewReaderSize(f, bufferSize),
	}, nil
}

// next returns the next line. ok is false at end of stream. A final line
// without a trailing newline is still returned.
func (s *lineStream) next() (line string, ok bool, err error) {
	line, err = s.buf.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, fmt.Errorf("read %s: %w", s.path, err)
		}
		if line == "" {
			return "", false, nil
		}
		return line, true, nil
	}
	return line[:len(line)-1], true, nil
}

func (s *lineStream) close() error {
	return s.file.Close()
}
