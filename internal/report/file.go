package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/reportindex/internal/model"
)

// Stdout is the output path that writes to standard output instead of a file.
const Stdout = "-"

// filePerm is the mode of a written index.
// The page is published next to the reports, so it is world readable.
const filePerm = 0o644

// WriteFile renders index in format and stores it at path.
//
// The document is written to a temporary file in the same directory and then
// renamed over path, so a reader (or a web server) never sees a partially
// written page. Parent directories are created if needed.
// A path of Stdout writes to os.Stdout.
func WriteFile(path string, format Format, index *model.Index) error {
	if path == Stdout {
		return write(os.Stdout, format, index)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := tmp.Name()
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmpPath) //nolint:errcheck

	if err := write(tmp, format, index); err != nil {
		_ = tmp.Close() //nolint:errcheck // the write error is more useful
		return err
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close() //nolint:errcheck // the chmod error is more useful
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace output file: %w", err)
	}
	return nil
}

// write renders index into out.
func write(out io.Writer, format Format, index *model.Index) error {
	w, err := NewWriter(format, out)
	if err != nil {
		return err
	}
	if _, err := w.Write(index); err != nil {
		return fmt.Errorf("failed to write %s index: %w", format, err)
	}
	return nil
}
