package manifest

// Library output kinds understood by cargo for the [lib] crate-type field.
const (
	KindCdylib    = "cdylib"
	KindStaticlib = "staticlib"
	KindRlib      = "rlib"
	KindDylib     = "dylib"
	KindLib       = "lib"
	KindProcMacro = "proc-macro"
)

// DefaultLibraryKinds is the set written for a library that is both linked
// from Zig (dynamic and static) and usable from other Rust crates.
var DefaultLibraryKinds = []string{KindCdylib, KindRlib, KindStaticlib}

// CargoManifest is the subset of Cargo.toml the tool reads back.
type CargoManifest struct {
	Package           Package                `toml:"package"`
	Lib               *Lib                   `toml:"lib"`
	Dependencies      map[string]interface{} `toml:"dependencies"`
	BuildDependencies map[string]interface{} `toml:"build-dependencies"`
}

// Package is the [package] table.
type Package struct {
	Name    string      `toml:"name"`
	Version interface{} `toml:"version"`
	Edition interface{} `toml:"edition"`
	Build   interface{} `toml:"build"`
}

// Lib is the [lib] table.
type Lib struct {
	Name      string   `toml:"name"`
	Path      string   `toml:"path"`
	CrateType []string `toml:"crate-type"`
}

// LibraryKinds returns the declared crate-type list, or nil when the
// manifest has no [lib] table.
func (m *CargoManifest) LibraryKinds() []string {
	if m.Lib == nil {
		return nil
	}
	return m.Lib.CrateType
}

// HasBuildDependency reports whether name is listed under [build-dependencies].
func (m *CargoManifest) HasBuildDependency(name string) bool {
	_, ok := m.BuildDependencies[name]
	return ok
}
