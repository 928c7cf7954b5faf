package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	imagensDir  = "imagens"
	arquivosDir = "arquivos"
)

// Disk stores uploaded files under a local base directory
// (uploads/{imagens,arquivos}) and hands back the relative URL that gets
// persisted on the corresponding record.
type Disk struct {
	baseDir string
}

// NewDisk creates the upload directory tree if needed.
func NewDisk(baseDir string) (*Disk, error) {
	for _, sub := range []string{imagensDir, arquivosDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &Disk{baseDir: baseDir}, nil
}

// SaveImagem streams an image to uploads/imagens and returns its URL path.
func (d *Disk) SaveImagem(src io.Reader, filename string) (string, error) {
	return d.save(src, imagensDir, filename)
}

// SaveArquivo streams a document to uploads/arquivos and returns its URL path.
func (d *Disk) SaveArquivo(src io.Reader, filename string) (string, error) {
	return d.save(src, arquivosDir, filename)
}

func (d *Disk) save(src io.Reader, sub, filename string) (string, error) {
	dst := filepath.Join(d.baseDir, sub, filepath.Base(filename))

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + sub + "/" + filepath.Base(filename), nil
}

// Remove deletes the file behind a stored URL path. Callers treat
// failures as non-fatal and only log them.
func (d *Disk) Remove(url string) error {
	rel := strings.TrimPrefix(url, "/uploads/")
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("invalid upload path: %s", url)
	}
	return os.Remove(filepath.Join(d.baseDir, rel))
}

// BaseDir returns the root of the upload tree, used to serve /uploads.
func (d *Disk) BaseDir() string {
	return d.baseDir
}
