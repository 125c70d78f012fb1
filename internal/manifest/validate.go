package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// ErrConfiguration is wrapped by every fatal manifest error.
var ErrConfiguration = errors.New("configuration error")

// Resolution errors. All of them satisfy errors.Is(err, ErrConfiguration).
var (
	// ErrManifestNotFound indicates an explicit manifest path does not exist.
	ErrManifestNotFound = fmt.Errorf("%w: manifest file does not exist", ErrConfiguration)

	// ErrInvalidManifest indicates a manifest failed parsing or schema checks.
	ErrInvalidManifest = fmt.Errorf("%w: invalid manifest file", ErrConfiguration)

	// ErrNoManifest indicates discovery found no usable manifest.
	ErrNoManifest = fmt.Errorf("%w: no valid manifest files available", ErrConfiguration)

	// ErrMissingFiles indicates the resolved manifest has no files sequence.
	ErrMissingFiles = fmt.Errorf("%w: manifest is missing the required files sequence", ErrConfiguration)
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is a single schema violation.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/files/0/template")
	Message string
	Keyword string // Failing schema keyword (e.g., "required")
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Summary joins all issues into one line for logging.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("manifest.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("manifest.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compile schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ParseTree parses YAML content into a generic tree.
// Empty content yields an empty map. A top-level value that is not a
// mapping is an error, and so is content holding more than one document.
// Mapping keys are converted to strings at every depth.
func ParseTree(data []byte) (map[string]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		return nil, errors.New("parse YAML: expected a single document, found more")
	}

	if raw == nil {
		return make(map[string]any), nil
	}

	tree, ok := normalizeKeys(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parse YAML: top-level value must be a mapping, got %T", raw)
	}
	return tree, nil
}

// normalizeKeys rewrites mappings with non-string keys (e.g. `80: http`)
// as map[string]any so the tree can be validated, merged and decoded.
func normalizeKeys(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			v[key] = normalizeKeys(val)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, val := range v {
			m[fmt.Sprint(key)] = normalizeKeys(val)
		}
		return m
	case []any:
		for i, val := range v {
			v[i] = normalizeKeys(val)
		}
		return v
	default:
		return value
	}
}

// ValidateTree checks a parsed tree against the manifest schema.
// The error return is for schema compilation or conversion failures;
// schema violations are reported in the ValidationResult.
func ValidateTree(tree map[string]any) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	// Round-trip through JSON so the validator sees json.Number values.
	jsonData, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("convert to JSON: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("prepare JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// LoadDocument reads and parses a manifest file once, then validates the
// parsed tree. A missing file returns ErrManifestNotFound. Unreadable or
// unparsable content returns ErrInvalidManifest. Schema violations are
// reported through the ValidationResult with a nil error.
func LoadDocument(path string) (*Document, *ValidationResult, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, path, err)
	}

	tree, err := ParseTree(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, path, err)
	}

	result, err := ValidateTree(tree)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, path, err)
	}

	return &Document{Path: path, Tree: tree}, result, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectValidationIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
			keyword = kwPath[len(kwPath)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}

	if keyword == "allOf" || keyword == "$ref" || keyword == "" {
		return
	}

	*issues = append(*issues, ValidationIssue{
		Path:    path,
		Message: msg,
		Keyword: keyword,
	})
}

// deduplicateIssues removes issues with the same path, keyword and message.
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
