// Package scaffold creates a starter estate-intake workspace: a commented
// configuration file and an example case directory.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/estatedesk/intake/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

// ConfigFilename is the configuration file Initialize writes.
const ConfigFilename = "estate-intake.yaml"

// exampleCaseDir is the sample case created under products/.
const exampleCaseDir = "example-case"

// FileInfo represents a file to be created during initialization.
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize creates the workspace structure under dir. With force set,
// an existing configuration file and example case are replaced.
func Initialize(dir string, force bool) error {
	if force {
		if err := handleForce(dir); err != nil {
			return err
		}
	}

	files, err := templateFiles(dir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if _, err := os.Stat(f.Path); err == nil {
			return fmt.Errorf("%s already exists (use --force to replace)", f.Path)
		}
	}

	for _, d := range []string{
		filepath.Join(dir, "products", exampleCaseDir),
		filepath.Join(dir, "results"),
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", d, err)
		}
	}

	for _, f := range files {
		if err := os.WriteFile(f.Path, f.Content, f.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}

	return validateCreated(dir)
}

// handleForce removes existing scaffold files so they can be rewritten.
func handleForce(dir string) error {
	configPath := filepath.Join(dir, ConfigFilename)
	if _, err := os.Stat(configPath); err == nil {
		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", configPath, err)
		}
	}

	casePath := filepath.Join(dir, "products", exampleCaseDir)
	if info, err := os.Stat(casePath); err == nil && info.IsDir() {
		if err := os.RemoveAll(casePath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", casePath, err)
		}
	}
	return nil
}

// templateFiles reads the embedded templates and maps them to their
// destination paths.
func templateFiles(dir string) ([]FileInfo, error) {
	configTmpl, err := templatesFS.ReadFile("templates/estate-intake.yaml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read config template: %w", err)
	}

	caseTmpl, err := templatesFS.ReadFile("templates/case.json.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read case template: %w", err)
	}

	return []FileInfo{
		{
			Path:        filepath.Join(dir, ConfigFilename),
			Content:     configTmpl,
			Permissions: 0o644,
		},
		{
			Path:        filepath.Join(dir, "products", exampleCaseDir, "case.json"),
			Content:     caseTmpl,
			Permissions: 0o644,
		},
	}, nil
}

// validateCreated confirms the scaffolded configuration actually loads.
func validateCreated(dir string) error {
	if _, err := config.Load(filepath.Join(dir, ConfigFilename)); err != nil {
		return fmt.Errorf("scaffolded configuration is invalid: %w", err)
	}
	return nil
}
