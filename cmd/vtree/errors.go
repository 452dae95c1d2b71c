package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/errors"
)

func errorsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "errors [code...]",
		Short: "List the diagnostic codes or explain one",
		Long: `Without arguments, errors lists every registered diagnostic code.
Given codes, it prints the full explanation of each.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				tbl := table.NewWriter()
				tbl.SetOutputMirror(out)
				tbl.AppendHeader(table.Row{"code", "category", "message"})
				for _, code := range errors.GetAllCodes() {
					tmpl, _ := errors.GetTemplate(code)
					tbl.AppendRow(table.Row{code, tmpl.Category, tmpl.Message})
				}
				tbl.Render()
				return nil
			}

			for _, code := range args {
				if _, ok := errors.GetTemplate(code); !ok {
					return errors.Newf(errors.CategoryConfig, "unknown error code %q", code).
						WithSuggestion("Run \"vtree errors\" to list the registered codes")
				}
				if asJSON {
					fmt.Fprintln(out, errors.New(code).FormatJSON())
					continue
				}
				fmt.Fprint(out, errors.New(code).Format())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print each code as a JSON object")

	return cmd
}
