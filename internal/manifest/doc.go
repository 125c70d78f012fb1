// Package manifest resolves the manifest that drives file generation.
//
// A manifest lists the files to render:
//
//	files:
//	  - destination: config/app.yml
//	    template: app
//	    values:
//	      name: myapp
//
// # Resolution
//
// The manifest comes from exactly one source:
//
//   - raw data (e.g. standard input), parsed as a single document
//   - an explicit file path, which must exist and be valid
//   - discovery in the working directory: manifest.yml, then manifest.yaml,
//     then every *.yml / *.yaml file merged in directory order
//
// Discovered files are validated against an embedded JSON schema. Invalid
// files are skipped with a warning. Valid files are deep-merged: mappings
// merge recursively, everything else (including lists) is replaced.
package manifest
