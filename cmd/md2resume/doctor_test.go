package main

// Notes:
// - runDoctor inspects the real machine, so only flag handling and the
//   pure helpers are asserted exactly.

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Human-readable report
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *doctorResult
		want   []string
	}{
		{
			name: "ready",
			result: &doctorResult{
				Status:    statusReady,
				Chrome:    chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 120", Sandbox: true},
				Env:       envInfo{OS: "linux", Arch: "amd64"},
				Templates: templatesInfo{IDs: []string{"classic", "modern"}, PageStyle: true},
				System:    systemInfo{TempWritable: true},
			},
			want: []string{"[OK] Found at /usr/bin/chromium", "Version: Chromium 120", "Sandbox: enabled", "Built-in: classic, modern", "Status: Ready to print resumes"},
		},
		{
			name: "warnings",
			result: &doctorResult{
				Status:   statusWarnings,
				Env:      envInfo{OS: "linux", Arch: "arm64", Container: true, ContainerHint: "/.dockerenv", CI: true},
				Warnings: []string{"set ROD_NO_SANDBOX=1"},
			},
			want: []string{"[WARN] Not found", "Container: detected (/.dockerenv)", "CI: detected", "[WARN] set ROD_NO_SANDBOX=1", "Ready with warnings"},
		},
		{
			name: "errors",
			result: &doctorResult{
				Status: statusErrors,
				Errors: []string{"temp directory not writable: /tmp"},
			},
			want: []string{"[ERROR] Temp directory writable", "[ERROR] temp directory not writable: /tmp", "Not ready"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printDoctorResult(&buf, tt.result)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Flags and JSON output
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil)
	if code := runDoctorCmd([]string{"--yaml"}, te.env); code != ExitUsage {
		t.Errorf("runDoctorCmd() = %d, want %d", code, ExitUsage)
	}
}

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil)
	code := runDoctorCmd([]string{"--json"}, te.env)

	var got doctorResult
	if err := json.Unmarshal(te.stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, te.stdout.String())
	}
	if len(got.Templates.IDs) != 5 || !got.Templates.PageStyle {
		t.Errorf("templates = %+v", got.Templates)
	}
	switch got.Status {
	case statusReady, statusWarnings:
		if code != ExitSuccess {
			t.Errorf("status %q with exit %d", got.Status, code)
		}
	case statusErrors:
		if code != ExitGeneral {
			t.Errorf("status %q with exit %d", got.Status, code)
		}
	default:
		t.Errorf("unknown status %q", got.Status)
	}
}

// ---------------------------------------------------------------------------
// TestIsContainer / TestSandboxEnabled
// ---------------------------------------------------------------------------

func TestIsContainer_ExplicitOverride(t *testing.T) {
	t.Setenv("MD2RESUME_CONTAINER", "1")

	got, hint := isContainer()
	if !got || hint != "MD2RESUME_CONTAINER=1" {
		t.Errorf("isContainer() = %v, %q", got, hint)
	}
}

func TestSandboxEnabled(t *testing.T) {
	t.Setenv("CI", "")

	tests := []struct {
		name string
		env  envInfo
		want bool
	}{
		{name: "default", env: envInfo{}, want: true},
		{name: "no sandbox", env: envInfo{NoSandbox: "1"}, want: false},
		{name: "custom browser", env: envInfo{BrowserBin: "/opt/chrome"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sandboxEnabled(tt.env); got != tt.want {
				t.Errorf("sandboxEnabled(%+v) = %v, want %v", tt.env, got, tt.want)
			}
		})
	}
}
