package md2resume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2resume/internal/assets"
)

// ---------------------------------------------------------------------------
// TestNewAssetLoader - Public loader construction and lookups
// ---------------------------------------------------------------------------

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader(\"\") error = %v", err)
		}

		css, err := loader.LoadStyle(PageStyle)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(css, ".resume-page") {
			t.Error("page style should define .resume-page")
		}

		ids, err := loader.ListTemplates()
		if err != nil {
			t.Fatalf("ListTemplates() error = %v", err)
		}
		if len(ids) != 5 {
			t.Errorf("ListTemplates() = %v, want 5 built-ins", ids)
		}
	})

	t.Run("missing base path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
		}
	})

	t.Run("custom template", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		tmplDir := filepath.Join(dir, "templates")
		if err := os.MkdirAll(tmplDir, 0o755); err != nil {
			t.Fatal(err)
		}
		yaml := "name: Ocean\nstyles:\n  - selector: h1\n    declarations:\n      - color: navy\n"
		if err := os.WriteFile(filepath.Join(tmplDir, "ocean.yaml"), []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}

		loader, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		tmpl, err := loader.LoadTemplate("ocean")
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if tmpl.Name != "Ocean" || tmpl.Styles[0].Declarations[0].Value != "navy" {
			t.Errorf("LoadTemplate() = %+v", tmpl)
		}
	})

	t.Run("errors map to public sentinels", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := loader.LoadTemplate("../etc/passwd"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate(traversal) error = %v, want ErrTemplateNotFound", err)
		}
		if _, err := loader.LoadTemplate("nope"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
		}
		if _, err := loader.LoadStyle("nope"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(missing) error = %v, want ErrStyleNotFound", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvertAssetError - Internal to public error mapping
// ---------------------------------------------------------------------------

func TestConvertAssetError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   error
		wantErr error
	}{
		{name: "style not found", input: assets.ErrStyleNotFound, wantErr: ErrStyleNotFound},
		{name: "template not found", input: assets.ErrTemplateNotFound, wantErr: ErrTemplateNotFound},
		{name: "template parse", input: assets.ErrTemplateParse, wantErr: ErrTemplateParse},
		{name: "duplicate selector", input: assets.ErrDuplicateSelector, wantErr: ErrDuplicateSelector},
		{name: "invalid base path", input: assets.ErrInvalidBasePath, wantErr: ErrInvalidAssetPath},
		{name: "path traversal", input: assets.ErrPathTraversal, wantErr: ErrInvalidAssetPath},
		{name: "invalid name", input: assets.ErrInvalidAssetName, wantErr: ErrTemplateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("%w: detail", tt.input)
			got := convertAssetError(wrapped)
			if !errors.Is(got, tt.wantErr) {
				t.Errorf("convertAssetError() = %v, want %v", got, tt.wantErr)
			}
			if got.Error() != wrapped.Error() {
				t.Errorf("message = %q, want original %q", got.Error(), wrapped.Error())
			}
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		if convertAssetError(nil) != nil {
			t.Error("convertAssetError(nil) should be nil")
		}
	})

	t.Run("unknown passes through", func(t *testing.T) {
		t.Parallel()
		other := errors.New("other")
		if got := convertAssetError(other); got != other {
			t.Errorf("convertAssetError() = %v, want %v", got, other)
		}
	})
}
