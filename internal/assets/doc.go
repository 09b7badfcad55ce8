// Package assets provides resume templates and page stylesheets.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in templates (modern, classic, minimalist,
// professional, creative) and the page chrome stylesheet.
//
// FilesystemLoader allows users to provide custom templates from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the CLI. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. This enables overriding a single template while keeping the others.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # page chrome (e.g., page.css)
//	└── templates/
//	    └── {id}.yaml            # resume template
//
// # Template Format
//
// Templates are YAML documents. Rules and declarations are lists so their
// order survives decoding; later declarations may refine earlier shorthands.
//
//	name: Modern
//	styles:
//	  - selector: ""
//	    declarations:
//	      - font-family: "Arial"
//	  - selector: "hr"
//	    declarations:
//	      - border: "none"
//	      - borderTop: "1px solid #e2e8f0"
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
