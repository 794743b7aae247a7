package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/viant/afs"
)

// ManifestFile is the Cargo package manifest file name
const ManifestFile = "Cargo.toml"

var (
	// ErrNoBinary is returned when a package declares no binary target
	ErrNoBinary = errors.New("no binary target")
	// ErrAmbiguousBinary is returned when several binaries exist and none was selected
	ErrAmbiguousBinary = errors.New("ambiguous binary target")
	// ErrBinaryNotFound is returned when the selected binary does not exist
	ErrBinaryNotFound = errors.New("binary target not found")
	// ErrNoLibrary is returned when a package has no library target
	ErrNoLibrary = errors.New("no library target")
)

// Manifest represents the parts of Cargo.toml used for target selection
type Manifest struct {
	Package PackageSection  `toml:"package"`
	Lib     *TargetSection  `toml:"lib"`
	Bin     []TargetSection `toml:"bin"`
}

// PackageSection represents the [package] table
type PackageSection struct {
	Name       string `toml:"name"`
	Edition    string `toml:"edition"`
	DefaultRun string `toml:"default-run"`
	Autobins   *bool  `toml:"autobins"`
}

// TargetSection represents a [lib] or [[bin]] table
type TargetSection struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// ParseManifest decodes Cargo.toml content
func ParseManifest(data []byte) (*Manifest, error) {
	manifest := &Manifest{}
	if err := toml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ManifestFile, err)
	}
	return manifest, nil
}

// LoadManifest reads and decodes Cargo.toml located in rootPath
func LoadManifest(ctx context.Context, fs afs.Service, rootPath string) (*Manifest, error) {
	location := filepath.Join(rootPath, ManifestFile)
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", location, err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", location, err)
	}
	return manifest, nil
}

// Library returns the library target of the package
func (m *Manifest) Library(ctx context.Context, fs afs.Service, rootPath string) (*Target, error) {
	name := m.Package.Name
	srcPath := filepath.Join(rootPath, "src", "lib.rs")
	if m.Lib != nil {
		if m.Lib.Name != "" {
			name = m.Lib.Name
		}
		if m.Lib.Path != "" {
			srcPath = filepath.Join(rootPath, m.Lib.Path)
		}
	}
	if ok, _ := fs.Exists(ctx, srcPath); !ok {
		return nil, fmt.Errorf("%w: %s does not exist", ErrNoLibrary, srcPath)
	}
	return &Target{Name: strings.ReplaceAll(name, "-", "_"), SrcPath: srcPath}, nil
}

// Binaries returns explicit [[bin]] targets followed by auto-discovered ones, sorted by name
func (m *Manifest) Binaries(ctx context.Context, fs afs.Service, rootPath string) ([]*Target, error) {
	var result []*Target
	byName := map[string]bool{}
	byPath := map[string]bool{}
	add := func(target *Target) {
		if byName[target.Name] || byPath[target.SrcPath] {
			return
		}
		byName[target.Name] = true
		byPath[target.SrcPath] = true
		result = append(result, target)
	}
	srcDir := filepath.Join(rootPath, "src")
	binDir := filepath.Join(srcDir, "bin")
	for _, bin := range m.Bin {
		if bin.Name == "" {
			return nil, fmt.Errorf("invalid %s: [[bin]] without name", ManifestFile)
		}
		if bin.Path != "" {
			add(&Target{Name: bin.Name, SrcPath: filepath.Join(rootPath, bin.Path)})
			continue
		}
		candidates := []string{filepath.Join(binDir, bin.Name+".rs"), filepath.Join(binDir, bin.Name, "main.rs")}
		if bin.Name == m.Package.Name {
			candidates = append([]string{filepath.Join(srcDir, "main.rs")}, candidates...)
		}
		found := false
		for _, candidate := range candidates {
			if ok, _ := fs.Exists(ctx, candidate); ok {
				add(&Target{Name: bin.Name, SrcPath: candidate})
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: source of [[bin]] %s (tried %s)", ErrBinaryNotFound, bin.Name, strings.Join(candidates, ", "))
		}
	}
	if m.Package.Autobins != nil && !*m.Package.Autobins {
		return result, nil
	}
	mainPath := filepath.Join(srcDir, "main.rs")
	if ok, _ := fs.Exists(ctx, mainPath); ok {
		add(&Target{Name: m.Package.Name, SrcPath: mainPath})
	}
	entries, err := os.ReadDir(binDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read directory %s: %w", binDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			candidate := filepath.Join(binDir, entry.Name(), "main.rs")
			if ok, _ := fs.Exists(ctx, candidate); ok {
				add(&Target{Name: entry.Name(), SrcPath: candidate})
			}
			continue
		}
		if filepath.Ext(entry.Name()) == ".rs" {
			add(&Target{Name: strings.TrimSuffix(entry.Name(), ".rs"), SrcPath: filepath.Join(binDir, entry.Name())})
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// SelectTargets locates the Cargo project enclosing projectPath and selects the binary to bundle
// together with the package library. An empty binary selects default-run or the only binary.
func SelectTargets(ctx context.Context, fs afs.Service, projectPath string, binary string) (*Selection, error) {
	project, err := New().DetectProject(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect project %s: %w", projectPath, err)
	}
	if project.Type != ProjectTypeRust {
		return nil, fmt.Errorf("no %s found for %s", ManifestFile, projectPath)
	}
	manifest, err := LoadManifest(ctx, fs, project.RootPath)
	if err != nil {
		return nil, err
	}
	binaries, err := manifest.Binaries(ctx, fs, project.RootPath)
	if err != nil {
		return nil, err
	}
	selected, err := selectBinary(binaries, binary, manifest.Package.DefaultRun)
	if err != nil {
		return nil, err
	}
	library, err := manifest.Library(ctx, fs, project.RootPath)
	if err != nil {
		return nil, err
	}
	return &Selection{
		Project: project,
		Binary:  selected,
		Library: library,
		Edition: manifest.Package.Edition,
	}, nil
}

func selectBinary(binaries []*Target, name, defaultRun string) (*Target, error) {
	if len(binaries) == 0 {
		return nil, ErrNoBinary
	}
	if name == "" {
		name = defaultRun
	}
	if name == "" {
		if len(binaries) == 1 {
			return binaries[0], nil
		}
		return nil, fmt.Errorf("%w: choose one of %s", ErrAmbiguousBinary, strings.Join(targetNames(binaries), ", "))
	}
	for _, candidate := range binaries {
		if candidate.Name == name {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("%w: %s (available: %s)", ErrBinaryNotFound, name, strings.Join(targetNames(binaries), ", "))
}

func targetNames(targets []*Target) []string {
	var names []string
	for _, target := range targets {
		names = append(names, target.Name)
	}
	return names
}
