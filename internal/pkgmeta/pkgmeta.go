package pkgmeta

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/maizzle/cli/internal/branding"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ErrNotFound is returned when no package.json exists at the looked-up path.
var ErrNotFound = errors.New("package metadata not found")

// Package holds the package.json fields the CLI cares about.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InvalidError reports a package.json that parsed but failed schema validation.
type InvalidError struct {
	Path   string
	Issues []string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid package metadata %s: %s", e.Path, strings.Join(e.Issues, "; "))
}

// FrameworkPath returns the framework's package.json path under projectDir.
func FrameworkPath(projectDir string) string {
	return filepath.Join(projectDir, branding.FrameworkDir(), "package.json")
}

// ReadFramework reads the framework's package.json from projectDir.
func ReadFramework(projectDir string) (*Package, error) {
	return Read(FrameworkPath(projectDir))
}

// Read parses and validates the package.json at path.
func Read(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse validates raw package.json bytes and decodes them. path is used in
// error messages only.
func Parse(path string, data []byte) (*Package, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("validating %s: %w", path, err)
		}
		return nil, &InvalidError{Path: path, Issues: collectIssues(ve)}
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &pkg, nil
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("package.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// collectIssues flattens the leaf errors of a validation error tree into
// "path: message" strings.
func collectIssues(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		if len(ve.InstanceLocation) > 0 {
			msg = "/" + strings.Join(ve.InstanceLocation, "/") + ": " + msg
		}
		return []string{msg}
	}

	var issues []string
	for _, cause := range ve.Causes {
		issues = append(issues, collectIssues(cause)...)
	}
	return issues
}
