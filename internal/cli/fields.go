package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/napsta32/libhook/internal/hookgen"
)

// fieldDescriptions documents each rusage selector in getrusage(2) terms.
var fieldDescriptions = map[string]string{
	"ru_maxrss":   "maximum resident set size (kB)",
	"ru_ixrss":    "integral shared memory size",
	"ru_idrss":    "integral unshared data size",
	"ru_isrss":    "integral unshared stack size",
	"ru_minflt":   "minor page faults (serviced without I/O)",
	"ru_majflt":   "major page faults (required I/O)",
	"ru_nswap":    "swaps",
	"ru_inblock":  "block input operations",
	"ru_oublock":  "block output operations",
	"ru_msgsnd":   "IPC messages sent",
	"ru_msgrcv":   "IPC messages received",
	"ru_nsignals": "signals received",
	"ru_nvcsw":    "voluntary context switches",
	"ru_nivcsw":   "involuntary context switches",
}

func newFieldsCmd() *cobra.Command {
	var sample bool

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List supported resource-usage fields",
		Long: `List the rusage counters accepted by --measure.

With --sample, each field also shows this process's current value, which is
handy for spotting counters that never move on the running kernel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !sample {
				for _, f := range hookgen.RusageFields {
					cmd.Printf("%-12s %s\n", f, fieldDescriptions[f])
				}
				return nil
			}

			var ru unix.Rusage
			if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
				return fmt.Errorf("getrusage: %w", err)
			}
			for _, f := range hookgen.RusageFields {
				cmd.Printf("%-12s %10d  %s\n", f, rusageValue(&ru, f), fieldDescriptions[f])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "Include this process's current value for each field")
	return cmd
}

func rusageValue(ru *unix.Rusage, field string) int64 {
	switch field {
	case "ru_maxrss":
		return int64(ru.Maxrss)
	case "ru_ixrss":
		return int64(ru.Ixrss)
	case "ru_idrss":
		return int64(ru.Idrss)
	case "ru_isrss":
		return int64(ru.Isrss)
	case "ru_minflt":
		return int64(ru.Minflt)
	case "ru_majflt":
		return int64(ru.Majflt)
	case "ru_nswap":
		return int64(ru.Nswap)
	case "ru_inblock":
		return int64(ru.Inblock)
	case "ru_oublock":
		return int64(ru.Oublock)
	case "ru_msgsnd":
		return int64(ru.Msgsnd)
	case "ru_msgrcv":
		return int64(ru.Msgrcv)
	case "ru_nsignals":
		return int64(ru.Nsignals)
	case "ru_nvcsw":
		return int64(ru.Nvcsw)
	case "ru_nivcsw":
		return int64(ru.Nivcsw)
	}
	return 0
}
