//go:build stave

package main

import (
	"bytes"
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

const binary = "bin/lexkeep"

var Default = Build

var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
	"rt":  Bench.RoundTrip,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/lexkeep when any source is newer than it.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/lexkeep")
}

// Install runs go install with version ldflags.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/lexkeep")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes bin/ and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Default runs the race-enabled test suite with coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose is Default with every test name printed.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Fuzz runs the builder round-trip fuzzer for $LEXKEEP_FUZZTIME (30s).
func (Test) Fuzz() error {
	return sh.RunV("go", "test", "./pkg/lexical/",
		"-run", "^$", "-fuzz", "FuzzBuilderRoundTrip",
		"-fuzztime", cmp.Or(os.Getenv("LEXKEEP_FUZZTIME"), "30s"))
}

// Default runs golangci-lint with --fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without touching files.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt rewrites files with gofmt.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("not gofmt-ed:\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate is everything CI requires before merge.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.Cross)
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before := make([][]byte, len(files))
	for i, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		before[i] = data
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	for i, name := range files {
		after, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		if !bytes.Equal(before[i], after) {
			return errors.New(name + " is not tidy")
		}
	}
	return nil
}

// Cross builds the host with cgo, which the tree-sitter grammars need,
// and vets the cgo-free packages for each release target.
func (CI) Cross() error {
	if err := sh.RunWith(map[string]string{"CGO_ENABLED": "1"},
		"go", "build", "-o", os.DevNull, "./cmd/lexkeep"); err != nil {
		return err
	}
	pure := []string{"./pkg/eol/...", "./pkg/syntax/...", "./pkg/lexical/...", "./pkg/textdiff/..."}
	for _, platform := range []string{"linux/amd64", "linux/arm64", "darwin/arm64", "windows/amd64"} {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", append([]string{"vet"}, pure...)...); err != nil {
			return fmt.Errorf("%s: %w", platform, err)
		}
	}
	return nil
}

// Default runs the Go benchmarks.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./...")
}

// RoundTrip runs lexkeep check over $LEXKEEP_CORPUS (default ".") and
// reports how long it took.
func (Bench) RoundTrip() error {
	st.Deps(Build)
	corpus := cmp.Or(os.Getenv("LEXKEEP_CORPUS"), ".")
	start := time.Now()
	if err := sh.RunV(binary, "check", "--jobs", cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "0"), corpus); err != nil {
		return err
	}
	fmt.Printf("round trip of %s took %s\n", corpus, time.Since(start).Round(time.Millisecond))
	return nil
}

func gotestsum(format string, testArgs ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}
	args = append(args, testArgs...)
	return sh.RunV("go", append(args, "./...")...)
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339))
}
