// Package command implements the external converter boundary: text
// extraction is delegated to a configured command line tool invoked
// per file (LibreOffice, pdftotext and similar).
//
// Contract: exit code 0 plus text on stdout (or in the scratch output
// directory) is a success; any other exit code is a failure whose
// stderr is captured as the diagnostic. The per-file timeout arrives
// through the context and kills the child process on expiry.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/catalog-cli/internal/converters"
	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalog-cli/internal/logger"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Template placeholder tokens.
const (
	tokenInput  = "{input}"
	tokenOutdir = "{outdir}"
)

// maxDiagnostic caps captured stderr in error messages.
const maxDiagnostic = 512

// Converter shells out to an external tool. It accepts every format
// at fallback priority, so native converters win when present.
type Converter struct {
	argv    []string
	limiter *rate.Limiter
}

// New creates an external command converter from a command template.
// The template is split on whitespace; it must reference {input} and
// may reference {outdir}, a per-invocation scratch directory that is
// removed on every exit path. spawnsPerSecond bounds process spawns.
func New(template string, spawnsPerSecond float64) (*Converter, error) {
	argv := strings.Fields(template)
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty converter command", domain.ErrInvalidInput)
	}

	hasInput := false
	for _, a := range argv {
		if strings.Contains(a, tokenInput) {
			hasInput = true
		}
	}
	if !hasInput {
		return nil, fmt.Errorf("%w: converter command missing %s", domain.ErrInvalidInput, tokenInput)
	}

	if spawnsPerSecond <= 0 {
		spawnsPerSecond = 1
	}

	return &Converter{
		argv:    argv,
		limiter: rate.NewLimiter(rate.Limit(spawnsPerSecond), 1),
	}, nil
}

// SupportedFormats returns nil: the external tool is a catch-all.
func (c *Converter) SupportedFormats() []domain.FileFormat {
	return nil
}

// Priority returns the selection priority.
func (c *Converter) Priority() int {
	return 5 // Fallback converter
}

// Convert invokes the external tool for one file.
func (c *Converter) Convert(ctx context.Context, file domain.SourceFile) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	scratch, err := os.MkdirTemp("", "catalog-extract-")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			logger.Warn("scratch dir not removed: %v", rmErr)
		}
	}()

	argv, usesOutdir := c.expand(file.Path, scratch)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	logger.Debug("Converting %s with %s", file.Path, argv[0])
	runErr := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		// Timed out or cancelled; the child has been killed.
		return "", fmt.Errorf("converter timed out: %w", ctxErr)
	}
	if runErr != nil {
		return "", fmt.Errorf("converter %s: %w: %s", argv[0], runErr, diagnostic(stderr.Bytes()))
	}

	text := stdout.String()
	if usesOutdir {
		text, err = readScratchOutput(scratch)
		if err != nil {
			return "", err
		}
	}

	return converters.NormalizeText(text), nil
}

// expand substitutes the template tokens for one invocation.
func (c *Converter) expand(input, scratch string) (argv []string, usesOutdir bool) {
	argv = make([]string, len(c.argv))
	for i, a := range c.argv {
		if strings.Contains(a, tokenOutdir) {
			usesOutdir = true
		}
		a = strings.ReplaceAll(a, tokenInput, input)
		a = strings.ReplaceAll(a, tokenOutdir, scratch)
		argv[i] = a
	}
	return argv, usesOutdir
}

// readScratchOutput returns the content of the file the tool wrote
// into the scratch directory. Tools like LibreOffice write one output
// file named after the input; the first regular file wins.
func readScratchOutput(scratch string) (string, error) {
	entries, err := os.ReadDir(scratch)
	if err != nil {
		return "", fmt.Errorf("read scratch dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", errors.New("converter produced no output file")
	}
	sort.Strings(names)

	data, err := os.ReadFile(filepath.Join(scratch, names[0]))
	if err != nil {
		return "", fmt.Errorf("read converter output: %w", err)
	}
	return string(data), nil
}

// diagnostic trims captured stderr to a single-line excerpt.
func diagnostic(stderr []byte) string {
	s := strings.TrimSpace(string(stderr))
	if len(s) > maxDiagnostic {
		s = s[:maxDiagnostic] + "..."
	}
	if s == "" {
		return "(no stderr)"
	}
	return strings.ReplaceAll(s, "\n", " | ")
}
