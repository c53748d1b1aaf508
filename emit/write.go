package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/coregx/lexgen/dfa"
)

// WriteFile renders the DFA and writes it to path atomically: the
// artefact is staged in a temporary file in the same directory and
// renamed into place, so a failed run never leaves a partial output.
func WriteFile(path string, d *dfa.DFA, cfg Config) error {
	data, err := Emit(d, cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing output: %w", err)
	}
	return nil
}
