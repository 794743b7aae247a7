package repository

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ProjectTypeRust marks a directory holding a Cargo package manifest
	ProjectTypeRust = "rust"
	// ProjectTypeUnknown marks a path outside any Cargo package
	ProjectTypeUnknown = "unknown"
)

// Detector locates the Cargo package enclosing a path
type Detector struct {
	manifest string
}

// New creates a detector looking for Cargo.toml
func New() *Detector {
	return &Detector{manifest: ManifestFile}
}

// DetectProject walks up from filePath to the closest package manifest.
// Workspace-only manifests (without a [package] table) are passed over.
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	location, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", filePath, err)
	}
	stat, err := os.Stat(location)
	if err != nil {
		return nil, err
	}
	dir := location
	if !stat.IsDir() {
		dir = filepath.Dir(location)
	}

	project := &Project{Type: ProjectTypeUnknown, RootPath: location}
	if root, manifest := d.findPackage(dir); manifest != nil {
		project.RootPath = root
		project.Type = ProjectTypeRust
		project.Name = manifest.Package.Name
	}
	if rel, err := filepath.Rel(project.RootPath, location); err == nil {
		project.RelativePath = filepath.ToSlash(rel)
	} else {
		project.RelativePath = filepath.Base(location)
	}
	return project, nil
}

func (d *Detector) findPackage(dir string) (string, *Manifest) {
	for {
		if manifest := d.readManifest(dir); manifest != nil && manifest.Package.Name != "" {
			return dir, manifest
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (d *Detector) readManifest(dir string) *Manifest {
	data, err := os.ReadFile(filepath.Join(dir, d.manifest))
	if err != nil {
		return nil
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil
	}
	return manifest
}
