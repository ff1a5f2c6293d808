package lock

// FileName is the lock file written next to the workspace's root manifest.
const FileName = "msrv.lock.yaml"

// File represents msrv.lock.yaml.
type File struct {
	Version     int               `yaml:"version"`
	GeneratedAt string            `yaml:"generated_at"`
	ToolVersion string            `yaml:"tool_version"`
	Crates      map[string]*Crate `yaml:"crates"`
}

// Crate records the pinned minimum toolchain version for a single crate.
type Crate struct {
	Version string `yaml:"version"`
	Source  string `yaml:"source"`
}
