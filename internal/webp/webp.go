// Package webp converts images to webp by shelling out to cwebp/gif2webp,
// which must be installed on the host.
package webp

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/infinitybotlist/infernoplex/internal/util"
)

// Convert re-encodes b to webp at outPath. name is a source hint; names
// ending in "gif" are converted with gif2webp, everything else with cwebp.
func Convert(name string, outPath string, b []byte) error {
	tmp := filepath.Join(os.TempDir(), "pconv_"+util.RandomCode(32))

	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("couldn't write temp file: %w", err)
	}
	defer os.Remove(tmp)

	var cmd *exec.Cmd
	if strings.HasSuffix(name, "gif") {
		cmd = exec.Command("gif2webp", "-q", "100", "-m", "3", tmp, "-o", outPath, "-v")
	} else {
		cmd = exec.Command("cwebp", "-q", "100", tmp, "-o", outPath, "-v")
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to convert image: %s: %w", strings.TrimSpace(string(out)), err)
	}

	return nil
}
