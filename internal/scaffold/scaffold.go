package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed stubs
var stubFS embed.FS

// ErrExists is returned when the target file is already present. Nothing is
// written in that case.
var ErrExists = errors.New("file already exists")

// ErrInvalidEnv is returned for environment names that cannot be used in a
// config filename or a JS string.
var ErrInvalidEnv = errors.New("invalid environment name")

var envPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DefaultEnv is the environment whose config lives in config.js.
const DefaultEnv = "local"

// Kind describes one kind of scaffoldable file.
type Kind struct {
	Name        string // e.g., "layout"
	Stub        string // embedded stub file under stubs/
	DefaultDir  string // used when neither --directory nor a path is given
	DefaultFile string // used when no filename is given
	Ext         string // appended when the filename has no extension
}

// Built-in kinds.
var (
	Layout = Kind{
		Name:        "layout",
		Stub:        "layout.html.tmpl",
		DefaultDir:  filepath.Join("src", "layouts"),
		DefaultFile: "main.html",
		Ext:         ".html",
	}
	Template = Kind{
		Name:        "template",
		Stub:        "template.html.tmpl",
		DefaultDir:  filepath.Join("src", "templates"),
		DefaultFile: "template.html",
		Ext:         ".html",
	}
	Tailwind = Kind{
		Name:        "tailwind config",
		Stub:        "tailwind.config.js.tmpl",
		DefaultDir:  ".",
		DefaultFile: "tailwind.config.js",
		Ext:         ".js",
	}
)

// Data holds the variables available to stubs.
type Data struct {
	Title      string // Human title derived from the filename
	Env        string // Environment name (configs only)
	Production bool   // Env is a production-like environment
}

// Result holds the outcome of a scaffold operation.
type Result struct {
	Kind string
	Path string
}

// Options selects where a file is written.
type Options struct {
	// Root is the directory relative paths resolve against.
	Root string
	// Filename is the user-supplied name; may contain a path.
	Filename string
	// Directory is the user-supplied --directory value.
	Directory string
}

// TargetPath resolves where a file of kind k goes. A --directory wins; a
// filename with its own directory component is taken relative to Root;
// otherwise the kind's default directory is used.
func TargetPath(k Kind, opts Options) string {
	name := opts.Filename
	if name == "" {
		name = k.DefaultFile
	}
	if filepath.Ext(name) == "" {
		name += k.Ext
	}

	switch {
	case opts.Directory != "":
		if filepath.IsAbs(opts.Directory) {
			return filepath.Join(opts.Directory, name)
		}
		return filepath.Join(opts.Root, opts.Directory, name)
	case filepath.IsAbs(name):
		return filepath.Clean(name)
	case filepath.Dir(name) != ".":
		return filepath.Join(opts.Root, name)
	default:
		return filepath.Join(opts.Root, k.DefaultDir, name)
	}
}

// Generate renders the stub for k and writes it to the resolved target.
func Generate(k Kind, opts Options) (*Result, error) {
	target := TargetPath(k, opts)
	data := &Data{Title: titleFromFilename(target)}
	if err := render(k.Stub, target, data); err != nil {
		return nil, err
	}
	return &Result{Kind: k.Name, Path: target}, nil
}

// ConfigFilename returns config.js for the default environment and
// config.<env>.js otherwise.
func ConfigFilename(env string) string {
	if env == "" || env == DefaultEnv {
		return "config.js"
	}
	return "config." + env + ".js"
}

// GenerateConfig writes a config file for env in root. full selects the
// stub that lists every option.
func GenerateConfig(root, env string, full bool) (*Result, error) {
	if env == "" {
		env = DefaultEnv
	}
	if !envPattern.MatchString(env) {
		return nil, fmt.Errorf("%w %q: use letters, digits, '-' or '_'", ErrInvalidEnv, env)
	}
	stub := "config.js.tmpl"
	if full {
		stub = "config.full.js.tmpl"
	}

	target := filepath.Join(root, ConfigFilename(env))
	data := &Data{
		Title:      titleFromFilename(target),
		Env:        env,
		Production: isProduction(env),
	}
	if err := render(stub, target, data); err != nil {
		return nil, err
	}
	return &Result{Kind: "config", Path: target}, nil
}

func render(stub, target string, data *Data) error {
	src, err := fs.ReadFile(stubFS, "stubs/"+stub)
	if err != nil {
		return fmt.Errorf("stub %q not found: %w", stub, err)
	}

	// Maizzle templates use {{ }} themselves; stubs use [[ ]].
	tmpl, err := template.New(stub).Delims("[[", "]]").Parse(string(src))
	if err != nil {
		return fmt.Errorf("parsing stub %s: %w", stub, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing stub %s: %w", stub, err)
	}

	return writeNew(target, buf.Bytes())
}

// writeNew creates target and its parent directories. It refuses to replace
// an existing file.
func writeNew(target string, content []byte) error {
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, target)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrExists, target)
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}

// titleFromFilename turns "welcome-email.html" into "Welcome Email".
func titleFromFilename(path string) string {
	base := filepath.Base(path)
	for {
		ext := filepath.Ext(base)
		if ext == "" {
			break
		}
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(base)
	return cases.Title(language.English).String(base)
}

func isProduction(env string) bool {
	switch strings.ToLower(env) {
	case "production", "prod":
		return true
	}
	return false
}
