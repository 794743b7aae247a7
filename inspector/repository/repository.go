package repository

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Type of project (rust, unknown)
	Name         string // Name of the project (extracted from the manifest)
	RelativePath string // Path from project root to the specified file
}

// Target represents a compilation target of a Cargo package
type Target struct {
	Name    string // crate name, '-' normalized to '_' for libraries
	SrcPath string // absolute path of the target root source file
}

// Selection represents the binary and library chosen for bundling
type Selection struct {
	Project *Project
	Binary  *Target
	Library *Target
	Edition string
}
