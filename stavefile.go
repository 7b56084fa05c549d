//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/seevg"
	mainPkg = "./cmd/seevg"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"s":   Serve,
	"fmt": Lint.Fmt,
}

// Namespace types group related targets.
type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

// Build compiles seevg with version info, unless the sources are unchanged.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building seevg...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Serve builds seevg and opens the inspector on the sample drawing.
func Serve() error {
	st.Deps(Build)
	return sh.RunV(binary, "serve", "--debug")
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs seevg to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing seevg...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Deps downloads and tidies dependencies.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage writes an HTML coverage report.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs all tests under gotestsum with the race detector and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Server runs only the inspector tests, which use real sockets and file watches.
func (Test) Server() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./internal/server/...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg")
}

// FmtCheck fails when any Go file is not gofmt-clean.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every CI check.
func (CI) Gate() error {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.Cross)
	fmt.Println("All CI gate checks passed")
	return nil
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum changed after 'go mod tidy'")
	}
	return nil
}

// Cross builds for the release platforms.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Println("  building", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

func gotestsum(format string) error {
	cores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-race",
		"-p", cores,
		"-parallel", cores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

func readModFiles() (string, error) {
	var b strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		b.Write(data)
	}
	return b.String(), nil
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
