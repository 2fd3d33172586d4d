package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"text/template"

	"github.com/Stack-Syndicate/ziggle/internal/platform"
)

//go:embed templates/*.tmpl
var scaffoldFS embed.FS

// Defaults shared with the build-graph wiring.
const (
	DefaultHeaderDir  = "target/headers"
	DefaultEntryPoint = "src/lib.rs"
	StubFileName      = "build.rs"
)

// ErrStubExists is returned when the build script is already present and
// overwriting was not requested.
var ErrStubExists = errors.New("build script already exists")

// StubData holds the template variables for the interop build script.
type StubData struct {
	ArtifactName string // e.g., "mylib"
	HeaderDir    string // e.g., "target/headers"
	EntryPoint   string // e.g., "src/lib.rs"
	HeaderPath   string // Derived: <HeaderDir>/<ArtifactName>.h
}

// NewStubData creates a StubData with defaults and derived fields populated.
// An empty headerDir selects DefaultHeaderDir.
func NewStubData(artifactName, headerDir string) *StubData {
	if headerDir == "" {
		headerDir = DefaultHeaderDir
	}
	return &StubData{
		ArtifactName: artifactName,
		HeaderDir:    headerDir,
		EntryPoint:   DefaultEntryPoint,
		HeaderPath:   HeaderPath(headerDir, artifactName),
	}
}

// HeaderPath returns the slash-separated path of the generated header,
// relative to the project root.
func HeaderPath(headerDir, artifactName string) string {
	if headerDir == "" {
		headerDir = DefaultHeaderDir
	}
	return path.Join(filepath.ToSlash(headerDir), artifactName+".h")
}

// RenderInteropStub returns the build.rs source for artifactName using the
// default header directory.
func RenderInteropStub(artifactName string) (string, error) {
	return Render(NewStubData(artifactName, ""))
}

// Render executes the build script template with data.
func Render(data *StubData) (string, error) {
	tmplBytes, err := scaffoldFS.ReadFile("templates/" + StubFileName + ".tmpl")
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}

	tmpl, err := template.New(StubFileName).Option("missingkey=error").Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", StubFileName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", StubFileName, err)
	}
	return buf.String(), nil
}

// WriteInteropStub renders the build script into dir and returns its path.
// An existing build.rs is only replaced when force is set.
func WriteInteropStub(dir string, data *StubData, force bool) (string, error) {
	outPath := filepath.Join(dir, StubFileName)

	if !force {
		if _, err := os.Stat(outPath); err == nil {
			return "", fmt.Errorf("%w: %s", ErrStubExists, outPath)
		}
	}

	content, err := Render(data)
	if err != nil {
		return "", err
	}

	if err := platform.WriteFileAtomic(outPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return outPath, nil
}
