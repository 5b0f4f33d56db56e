// Package cli wires the command surface of the generator.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/napsta32/libhook/internal/config"
	"github.com/napsta32/libhook/pkg/version"
)

var (
	opts       config.Options
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "libhook",
	Short: "Generate LD_PRELOAD interception shims for native library functions",
	Long: `libhook parses C headers and emits a C source unit that intercepts
selected library functions without modifying or recompiling the library.

Each hook resolves the real symbol lazily on first call via
dlsym(RTLD_NEXT, ...), times the call on a fixed-capacity measurement stack
and forwards arguments and the return value unchanged. Load the built shared
object with LD_PRELOAD to observe a target process.

Examples:
  # Hook every str* function of string.h, trace call durations
  libhook -I /usr/include -H string.h -f 'str.*' -m time -o hooks.c

  # Page fault accounting for malloc/free, build the .so in one go
  libhook -I /usr/include -H stdlib.h -f malloc -f free \
      -m ru_minflt -m ru_majflt -o hooks.c --build --lib libhook.so`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), &opts, configPath)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringArrayVarP(&opts.IncludeDirs, "include-dir", "I", nil, "Include directory for preprocessing and building (repeatable)")
	flags.StringArrayVarP(&opts.Headers, "header", "H", nil, "Header whose declarations are hooked (repeatable)")
	flags.StringArrayVarP(&opts.Patterns, "function", "f", nil, "Function name pattern, matched from the first character, first match wins (repeatable)")
	flags.StringArrayVarP(&opts.Measure, "measure", "m", nil, "Instrumentation selector: time or a rusage field such as ru_minflt (repeatable)")
	flags.StringVarP(&opts.Output, "output", "o", config.StdoutOutput, "Generated source destination (- for stdout, -2 for stderr)")
	flags.BoolVar(&opts.Build, "build", false, "Build the shared object after writing the source")
	flags.StringVar(&opts.LibPath, "lib", "libhook.so", "Shared object path written with --build")
	flags.StringVar(&opts.CC, "cc", "", "Compiler driver (default cc)")
	flags.BoolVar(&opts.Debug, "debug", false, "Enable debug diagnostics")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.libhook/config.yaml)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newFieldsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("libhook version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
