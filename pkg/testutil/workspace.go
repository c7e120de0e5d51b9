package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/iancoleman/orderedmap"
)

// Workspace is a temporary project with installed package directories and
// the pnpm license report describing them.
type Workspace struct {
	t      *testing.T
	Root   string
	groups *orderedmap.OrderedMap
}

// PackageSpec describes one report entry added with Workspace.AddPackage.
//
// Fields:
//   - Name: Package name, may be scoped ("@scope/pkg")
//   - License: License type; also the report group key
//   - Author, Homepage: Optional fields; empty omits them from the report
//   - Versions: Versions listed for the entry, one directory each
//   - Files: Files created in every version directory, name to content
//   - NoDir: Leaves the version directories uncreated
type PackageSpec struct {
	Name     string
	License  string
	Author   string
	Homepage string
	Versions []string
	Files    map[string]string
	NoDir    bool
}

// NewWorkspace creates a workspace with a package.json in a temp directory.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	root := t.TempDir()
	WriteFile(t, filepath.Join(root, "package.json"), `{"name":"fixture","version":"1.0.0"}`)
	return &Workspace{t: t, Root: root, groups: orderedmap.New()}
}

// Source returns the path of the workspace manifest.
func (w *Workspace) Source() string {
	return filepath.Join(w.Root, "package.json")
}

// Path returns a path inside the workspace.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Root}, elem...)...)
}

// AddPackage creates the version directories of spec and appends it to the
// report under its license group. Groups keep the order of their first use.
//
// Returns:
//   - []string: The package directory of each version
func (w *Workspace) AddPackage(spec PackageSpec) []string {
	w.t.Helper()

	paths := make([]string, len(spec.Versions))
	for i, v := range spec.Versions {
		dir := w.Path("node_modules", ".pnpm", filepath.FromSlash(spec.Name)+"@"+v)
		paths[i] = dir
		if spec.NoDir {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			w.t.Fatalf("create package dir: %v", err)
		}
		for name, content := range spec.Files {
			WriteFile(w.t, filepath.Join(dir, name), content)
		}
	}

	entry := orderedmap.New()
	entry.Set("name", spec.Name)
	entry.Set("versions", spec.Versions)
	entry.Set("paths", paths)
	entry.Set("license", spec.License)
	if spec.Author != "" {
		entry.Set("author", spec.Author)
	}
	if spec.Homepage != "" {
		entry.Set("homepage", spec.Homepage)
	}
	entry.Set("description", "fixture package")

	var group []any
	if existing, ok := w.groups.Get(spec.License); ok {
		group = existing.([]any)
	}
	w.groups.Set(spec.License, append(group, entry))

	return paths
}

// Report returns the license report for every package added so far, as
// printed by 'pnpm licenses list --json --long'.
func (w *Workspace) Report() []byte {
	w.t.Helper()
	data, err := json.MarshalIndent(w.groups, "", "  ")
	if err != nil {
		w.t.Fatalf("marshal report: %v", err)
	}
	return data
}

// WriteFile writes content to path, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
