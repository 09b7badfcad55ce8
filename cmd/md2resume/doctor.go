package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	md2resume "github.com/alnah/go-md2resume"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is the doctor report, also emitted as JSON with --json.
type doctorResult struct {
	Status    string        `json:"status"`
	Chrome    chromeInfo    `json:"chrome"`
	Env       envInfo       `json:"environment"`
	Templates templatesInfo `json:"templates"`
	System    systemInfo    `json:"system"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// templatesInfo reports the built-in template registry.
type templatesInfo struct {
	IDs       []string `json:"ids"`
	PageStyle bool     `json:"page_style"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd returns ExitSuccess when ready (warnings included),
// ExitGeneral when a check failed and ExitUsage on bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "machine-readable output")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor()

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor() *doctorResult {
	result := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result)
	checkTemplates(result)
	checkSystem(result)

	result.Status = statusReady
	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	}
	return result
}

// checkChrome locates Chrome through rod's launcher unless ROD_BROWSER_BIN
// names one.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			// rod can still download Chromium on first print
			result.warn("Chrome/Chromium not found; it will be downloaded on first print, or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.fail("Chrome not found at %s", chromePath)
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Chrome.Sandbox = sandboxEnabled(result.Env)

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- path from launcher or env
	if err != nil {
		result.warn("could not get Chrome version: %v", err)
		return
	}
	result.Chrome.Version = strings.TrimSpace(string(out))
}

// sandboxEnabled mirrors the printer's launcher settings.
func sandboxEnabled(env envInfo) bool {
	return env.NoSandbox != "1" && os.Getenv("CI") != "true" && env.BrowserBin == ""
}

// checkEnvironment flags CI or container runs that still use the sandbox.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && sandboxEnabled(result.Env) {
		result.warn("container/CI detected but the Chrome sandbox is on; set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether the process runs in a container and which
// signal gave it away.
func isContainer() (bool, string) {
	if os.Getenv("MD2RESUME_CONTAINER") == "1" {
		return true, "MD2RESUME_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkTemplates verifies the embedded templates and page stylesheet load.
func checkTemplates(result *doctorResult) {
	tmpls, err := md2resume.Templates()
	if err != nil {
		result.fail("built-in templates: %v", err)
	}
	for _, t := range tmpls {
		result.Templates.IDs = append(result.Templates.IDs, t.ID)
	}

	loader, err := md2resume.NewAssetLoader("")
	if err == nil {
		_, err = loader.LoadStyle(md2resume.PageStyle)
	}
	if err != nil {
		result.fail("page stylesheet: %v", err)
		return
	}
	result.Templates.PageStyle = true
}

// checkSystem verifies the temp directory used for printing is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "md2resume-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.fail("temp directory not writable: %s", tmpDir)
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

var statusLines = map[string]string{
	statusReady:    "Ready to print resumes",
	statusWarnings: "Ready with warnings",
	statusErrors:   "Not ready (see errors above)",
}

type doctorSection struct {
	title string
	lines [][2]string // tag, text
}

func (s *doctorSection) add(tag, format string, args ...any) {
	s.lines = append(s.lines, [2]string{tag, fmt.Sprintf(format, args...)})
}

func (s *doctorSection) check(ok bool, format string, args ...any) {
	tag := "OK"
	if !ok {
		tag = "ERROR"
	}
	s.add(tag, format, args...)
}

// printDoctorResult writes the report as titled sections followed by the
// overall status.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprint(w, "md2resume doctor\n\n")
	for _, sec := range doctorSections(r) {
		fmt.Fprintln(w, sec.title)
		for _, l := range sec.lines {
			fmt.Fprintf(w, "  [%s] %s\n", l[0], l[1])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Status: %s\n", statusLines[r.Status])
}

func doctorSections(r *doctorResult) []doctorSection {
	chrome := doctorSection{title: "Chrome/Chromium"}
	if r.Chrome.Found {
		chrome.check(true, "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			chrome.check(true, "Version: %s", r.Chrome.Version)
		}
		sandbox := "disabled"
		if r.Chrome.Sandbox {
			sandbox = "enabled"
		}
		chrome.check(true, "Sandbox: %s", sandbox)
	} else {
		chrome.add("WARN", "Not found")
	}

	environment := doctorSection{title: "Environment"}
	environment.check(true, "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		environment.check(true, "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		environment.check(true, "CI: detected")
	}

	templates := doctorSection{title: "Templates"}
	templates.check(len(r.Templates.IDs) > 0, "Built-in: %s", strings.Join(r.Templates.IDs, ", "))
	templates.check(r.Templates.PageStyle, "Page stylesheet")

	system := doctorSection{title: "System"}
	system.check(r.System.TempWritable, "Temp directory writable")

	sections := []doctorSection{chrome, environment, templates, system}
	if len(r.Warnings) > 0 {
		warnings := doctorSection{title: "Warnings:"}
		for _, msg := range r.Warnings {
			warnings.add("WARN", "%s", msg)
		}
		sections = append(sections, warnings)
	}
	if len(r.Errors) > 0 {
		errs := doctorSection{title: "Errors:"}
		for _, msg := range r.Errors {
			errs.add("ERROR", "%s", msg)
		}
		sections = append(sections, errs)
	}
	return sections
}
