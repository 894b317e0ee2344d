package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyStats counts the outcome of copying configured files into one
// product folder.
type CopyStats struct {
	Copied  int
	Failed  int
	Skipped int
}

// ProvisionResult summarizes a full provisioning run.
type ProvisionResult struct {
	ProductCodes   []string
	CreatedFolders []string
}

// Provision extracts all product codes and creates one result folder per
// product, copying the configured static files into each. An empty
// source directory is an error; individual folder failures are logged
// and skipped.
func (m *Manager) Provision() (*ProvisionResult, error) {
	codes, err := m.ProductCodes()
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("no valid product codes in %s", m.SourceDir)
	}

	result := &ProvisionResult{ProductCodes: codes}
	for _, code := range codes {
		folder := filepath.Join(m.ResultDir, code)
		if err := os.MkdirAll(folder, 0o755); err != nil {
			m.logErrorf("create folder for %s: %v", code, err)
			continue
		}
		result.CreatedFolders = append(result.CreatedFolders, folder)

		stats := m.copyConfiguredFiles(folder)
		if stats.Copied > 0 {
			m.logInfof("copied %d configured files into %s", stats.Copied, folder)
		}
	}
	m.logInfof("provisioned %d product folders", len(result.CreatedFolders))
	return result, nil
}

// copyConfiguredFiles copies each copy_files entry into the folder,
// honoring the overwrite and continue_on_error settings.
func (m *Manager) copyConfiguredFiles(folder string) CopyStats {
	var stats CopyStats
	for _, cf := range m.CopyFiles {
		sourcePath := cf.Source
		if sourcePath == "" {
			m.logWarnf("copy_files entry without source, skipping")
			stats.Failed++
			if !m.CopySettings.ContinueOnError {
				break
			}
			continue
		}
		if _, err := os.Stat(sourcePath); err != nil {
			m.logWarnf("copy source missing: %s", sourcePath)
			stats.Failed++
			if !m.CopySettings.ContinueOnError {
				break
			}
			continue
		}

		targetPath := filepath.Join(folder, filepath.Base(sourcePath))
		if _, err := os.Stat(targetPath); err == nil && !m.CopySettings.Overwrite {
			stats.Skipped++
			continue
		}

		if err := copyFile(sourcePath, targetPath); err != nil {
			m.logErrorf("copy %s: %v", sourcePath, err)
			stats.Failed++
			if !m.CopySettings.ContinueOnError {
				break
			}
			continue
		}
		stats.Copied++
	}
	return stats
}

func copyFile(sourcePath, targetPath string) error {
	in, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(targetPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
