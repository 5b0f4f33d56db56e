// Package toolchain invokes the external C preprocessor and compiler. Both
// invocations are blocking and synchronous with full output capture; a
// non-zero exit is fatal and reported with the captured diagnostics. There
// is no retry and no partial artifact.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultCC is the compiler driver used when none is configured.
const DefaultCC = "cc"

// Runner drives the external toolchain. The same include-directory list is
// used for preprocessing and for the final build, which is what lets the
// generated unit reference headers by base name only.
type Runner struct {
	CC          string
	IncludeDirs []string
	Logger      zerolog.Logger

	// runID tags temp artifacts and log lines for one invocation.
	runID string
}

// New creates a Runner with a fresh run id.
func New(cc string, includeDirs []string, logger zerolog.Logger) *Runner {
	if cc == "" {
		cc = DefaultCC
	}
	id := uuid.NewString()
	return &Runner{
		CC:          cc,
		IncludeDirs: includeDirs,
		Logger:      logger.With().Str("run_id", id).Logger(),
		runID:       id,
	}
}

// driverSource builds the translation unit fed to the preprocessor: one
// include per requested header, by base name.
func driverSource(headers []string) string {
	var b strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&b, "#include <%s>\n", filepath.Base(h))
	}
	return b.String()
}

// includeArgs renders -I flags for every include directory, in order.
func (r *Runner) includeArgs() []string {
	args := make([]string, 0, 2*len(r.IncludeDirs))
	for _, d := range r.IncludeDirs {
		args = append(args, "-I", d)
	}
	return args
}

// Preprocess runs the compiler driver in preprocess-only mode over a
// synthetic unit including every header, and returns the flattened text with
// its line markers intact.
func (r *Runner) Preprocess(ctx context.Context, headers []string) (string, error) {
	args := append([]string{"-E", "-xc"}, r.includeArgs()...)
	args = append(args, "-")

	cmd := exec.CommandContext(ctx, r.CC, args...)
	cmd.Stdin = strings.NewReader(driverSource(headers))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.Logger.Debug().Str("cc", r.CC).Strs("args", args).Msg("preprocessing headers")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("preprocessing failed: %w\n%s", err, stderr.String())
	}
	return stdout.String(), nil
}

// Build compiles the generated source into a position-independent shared
// object linked against the dynamic loader. On failure the output artifact
// is removed.
func (r *Runner) Build(ctx context.Context, source, outPath string) error {
	dir, err := os.MkdirTemp("", "libhook-"+r.runID+"-")
	if err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	srcPath := filepath.Join(dir, "libhook.c")
	if err := os.WriteFile(srcPath, []byte(source), 0o600); err != nil {
		return fmt.Errorf("failed to write build source: %w", err)
	}

	args := append([]string{"-shared", "-fPIC"}, r.includeArgs()...)
	args = append(args, "-o", outPath, srcPath, "-ldl")

	cmd := exec.CommandContext(ctx, r.CC, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	r.Logger.Debug().Str("cc", r.CC).Strs("args", args).Msg("building shared object")
	if err := cmd.Run(); err != nil {
		_ = os.Remove(outPath)
		return fmt.Errorf("build failed: %w\n%s", err, output.String())
	}
	return nil
}
