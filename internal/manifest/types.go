package manifest

// Default manifest file names, checked in order during discovery.
var DefaultFileNames = []string{"manifest.yml", "manifest.yaml"}

// ManifestExtensions lists the file extensions considered during the
// fallback directory scan.
var ManifestExtensions = []string{".yml", ".yaml"}

// Manifest declares the files to generate.
type Manifest struct {
	// Files are rendered in declaration order.
	Files []FileEntry `yaml:"files" mapstructure:"files"`
}

// FileEntry declares a single output file.
type FileEntry struct {
	// Destination is the output path relative to the working directory.
	Destination string `yaml:"destination" mapstructure:"destination"`

	// Template is the template name, with or without the engine suffix.
	Template string `yaml:"template" mapstructure:"template"`

	// Values is the substitution context passed to the template engine.
	Values map[string]any `yaml:"values,omitempty" mapstructure:"values"`
}

// Source selects where the resolver reads manifest content from.
type Source struct {
	// Path is an explicit manifest file. Ignored when FromData is set.
	Path string

	// Data is raw manifest content, used when FromData is set.
	Data []byte

	// FromData selects raw text mode.
	FromData bool
}

// Mode returns a short name for the resolution mode, used in logs.
func (s Source) Mode() string {
	switch {
	case s.FromData:
		return "data"
	case s.Path != "":
		return "path"
	default:
		return "discover"
	}
}

// Document is one parsed manifest file.
type Document struct {
	// Path is the absolute file path.
	Path string

	// Tree is the parsed YAML content.
	Tree map[string]any
}
