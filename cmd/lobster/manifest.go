package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const noManifestMessage = "no lobster.toml found and no image path given\nspecify the image explicitly, e.g.:\n  lobster dump out.lbc"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Build   buildConfig   `toml:"build"`
}

type packageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type buildConfig struct {
	Image string `toml:"image"`
}

func findLobsterToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "lobster.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	path, ok, err := findLobsterToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// resolveImagePath picks the image to operate on: an explicit argument wins,
// otherwise the manifest's build.image (relative to the manifest root).
func resolveImagePath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	manifest, ok, err := loadProjectManifest(".")
	if err != nil {
		return "", err
	}
	if !ok || manifest.Config.Build.Image == "" {
		return "", errors.New(noManifestMessage)
	}
	image := manifest.Config.Build.Image
	if !filepath.IsAbs(image) {
		image = filepath.Join(manifest.Root, image)
	}
	return image, nil
}
