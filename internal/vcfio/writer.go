package vcfio

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/pgzip"
)

// GzipFile is an io.WriteCloser backed by a gzip-compressed file on disk.
// Closing it flushes and closes both the gzip stream and the file.
type GzipFile struct {
	file *os.File
	gz   *pgzip.Writer
}

// CreateGzipFile creates (or truncates) path and wraps it for gzip-
// compressed writing.
func CreateGzipFile(path string) (*GzipFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &GzipFile{file: f, gz: pgzip.NewWriter(f)}, nil
}

// Write implements io.Writer.
func (g *GzipFile) Write(p []byte) (int, error) {
	return g.gz.Write(p)
}

var _ io.WriteCloser = (*GzipFile)(nil)

// Close flushes and closes the gzip stream, then the underlying file.
func (g *GzipFile) Close() error {
	if err := g.gz.Close(); err != nil {
		g.file.Close()
		return fmt.Errorf("close gzip stream: %w", err)
	}
	return g.file.Close()
}
