package schemas

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ss22219/aws-toolkit-vscode/fileutil"
)

// maxExtractedFileSize caps a single extracted file at 64 MiB.
const maxExtractedFileSize = 64 << 20

// extractZip writes the archive contents under dest and returns the relative
// paths of the files it created. Entries that would escape dest are rejected.
func extractZip(data []byte, dest string) ([]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	if err := fileutil.EnsureDir(dest); err != nil {
		return nil, err
	}
	destRoot, err := filepath.Abs(dest)
	if err != nil {
		return nil, err
	}

	var extracted []string
	for _, entry := range reader.File {
		target, err := resolveEntryPath(destRoot, entry.Name)
		if err != nil {
			return nil, err
		}

		if entry.FileInfo().IsDir() {
			if err := fileutil.EnsureDir(target); err != nil {
				return nil, err
			}
			continue
		}

		if err := writeEntry(entry, target); err != nil {
			return nil, fmt.Errorf("extracting %q: %w", entry.Name, err)
		}
		extracted = append(extracted, filepath.ToSlash(entry.Name))
	}

	return extracted, nil
}

// resolveEntryPath joins an archive entry name onto root and rejects paths
// that resolve outside it.
func resolveEntryPath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination directory", name)
	}
	return target, nil
}

func writeEntry(entry *zip.File, target string) error {
	if err := fileutil.EnsureDir(filepath.Dir(target)); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(io.LimitReader(src, maxExtractedFileSize+1))
	if err != nil {
		return err
	}
	if len(data) > maxExtractedFileSize {
		return fmt.Errorf("entry exceeds %d byte limit", maxExtractedFileSize)
	}

	mode := entry.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	return os.WriteFile(target, data, mode)
}
