package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/logger"
)

// write sends s to path, or to stdout when path is empty or "-". Relative
// paths are resolved against the configured output directory.
func (a *app) write(cmd *cobra.Command, path, s string) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write([]byte(s))
		return err
	}
	if !filepath.IsAbs(path) && a.cfg.Render.OutputDir != "" {
		path = filepath.Join(a.cfg.Render.OutputDir, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Export(path, err)
		}
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return errors.Export(path, err)
	}
	a.log.Info("file written", logger.Fields("path", path, "bytes", len(s)))
	return nil
}
