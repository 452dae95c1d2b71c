package main

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/pkg/hosttree"
)

func demoCmd(load func() (*config.Config, error)) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the demo script and print the host ops of every step",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			d := demo.NewDriver(runtimeOptions(cfg, newLogger(cfg), nil)...)
			defer d.Close()

			tbl := table.NewWriter()
			tbl.SetTitle("vtree demo")
			tbl.SetOutputMirror(os.Stdout)
			tbl.AppendHeader(table.Row{"#", "step", "ops", "checksum"})
			for i, step := range demo.Script {
				ops, err := d.Do(step)
				if err != nil {
					return err
				}
				tbl.AppendRow(table.Row{i + 1, step, opList(ops), d.Tree().Checksum()})
				tbl.AppendSeparator()
			}
			tbl.Render()

			info("final tree:")
			return hosttree.WriteMarkup(os.Stdout, d.Tree().Root(), hosttree.MarkupOptions{Pretty: pretty})
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", true, "Indent the final markup")

	return cmd
}

func opList(ops []hosttree.Op) string {
	if len(ops) == 0 {
		return "-"
	}
	lines := make([]string, len(ops))
	for i, op := range ops {
		lines[i] = op.String()
	}
	return strings.Join(lines, "\n")
}
