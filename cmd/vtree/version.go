package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/wire"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version, wire protocol and scheduler defaults",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return
			}
			writeVersion(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")

	return cmd
}

func writeVersion(w io.Writer) {
	fmt.Fprint(w, banner)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  vtree:      %s (%s, built %s)\n", version, commit, date)
	fmt.Fprintf(w, "  Protocol:   %s (msgpack frames)\n", wire.Subprotocol)
	fmt.Fprintf(w, "  Scheduler:  %d runs per watcher per flush\n", config.DefaultMaxUpdateCount)
	fmt.Fprintf(w, "  Config:     %s, %s\n", config.ConfigFileName, config.YAMLConfigFileName)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(w)
}
