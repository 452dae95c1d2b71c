package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/hosttree"
	"github.com/vango-dev/vtree/pkg/reactive"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
	"github.com/vango-dev/vtree/pkg/wire"
)

// scenario mutates the rows list once per iteration.
type scenario struct {
	name   string
	mutate func(rows *reactive.List, rng *rand.Rand, next func() int)
}

var scenarios = []scenario{
	{"append", func(rows *reactive.List, _ *rand.Rand, next func() int) {
		rows.Push(next())
	}},
	{"rotate", func(rows *reactive.List, _ *rand.Rand, _ func() int) {
		rows.Push(rows.Shift())
	}},
	{"reverse", func(rows *reactive.List, _ *rand.Rand, _ func() int) {
		rows.Reverse()
	}},
	{"swap", func(rows *reactive.List, rng *rand.Rand, _ func() int) {
		n := rows.Len()
		if n < 2 {
			return
		}
		i, j := rng.IntN(n), rng.IntN(n)
		a, b := rows.At(i), rows.At(j)
		rows.Splice(i, 1, b)
		rows.Splice(j, 1, a)
	}},
	{"shuffle", func(rows *reactive.List, rng *rand.Rand, _ func() int) {
		items := rows.Items()
		rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		rows.Splice(0, len(items), items...)
	}},
	{"replace", func(rows *reactive.List, _ *rand.Rand, next func() int) {
		n := rows.Len()
		fresh := make([]any, n)
		for i := range fresh {
			fresh[i] = next()
		}
		rows.Splice(0, n, fresh...)
	}},
}

func benchCmd() *cobra.Command {
	var (
		sizes []int
		iters int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure flush and patch latency of keyed list updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if iters < 1 {
				return fmt.Errorf("--iterations must be positive")
			}

			tbl := table.NewWriter()
			tbl.SetTitle("vtree keyed diff")
			tbl.SetOutputMirror(os.Stdout)
			tbl.AppendHeader(table.Row{"scenario", "rows", "avg", "p50", "p99", "max", "ops/flush", "frame"})

			for _, sc := range scenarios {
				for _, size := range sizes {
					r := runScenario(sc, size, iters, rand.New(rand.NewPCG(seed, uint64(size))))
					tbl.AppendRow(table.Row{
						sc.name,
						humanize.Comma(int64(size)),
						r.calc.Time.Avg,
						r.calc.Time.P50,
						r.calc.Time.P99,
						r.calc.Time.Max,
						humanize.CommafWithDigits(float64(r.ops)/float64(iters), 1),
						humanize.Bytes(uint64(r.bytes / iters)),
					})
				}
				tbl.AppendSeparator()
			}
			tbl.Render()
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&sizes, "rows", []int{10, 100, 1000}, "List sizes to benchmark")
	cmd.Flags().IntVarP(&iters, "iterations", "n", 200, "Flushes per scenario and size")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")

	return cmd
}

type benchResult struct {
	calc  *tachymeter.Metrics
	ops   int
	bytes int
}

func runScenario(sc scenario, size, iters int, rng *rand.Rand) benchResult {
	rt := reactive.New(reactive.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	tree := hosttree.New()

	id := 0
	next := func() int {
		id++
		return id
	}
	initial := make([]any, size)
	for i := range initial {
		initial[i] = next()
	}

	var rows *reactive.List
	list := &render.Options{
		Name: "rows",
		Data: func() map[string]any { return map[string]any{"rows": initial} },
		Setup: func(c *render.Component) render.RenderFunc {
			rows = c.Data().Get("rows").(*reactive.List)
			return nil
		},
		Render: func(c *render.Component) any {
			return vdom.Ul(vdom.Range(rows.Items(), func(v any, _ int) *vdom.VNode {
				return vdom.Li(vdom.Key(v), vdom.Textf("row %d", v))
			}))
		},
	}
	app := render.New(rt, tree).Mount(tree.Root(), list, nil)
	defer app.Destroy()
	tree.Flush()

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	var res benchResult
	for i := range iters {
		start := time.Now()
		sc.mutate(rows, rng, next)
		rt.Tick()
		tach.AddTime(time.Since(start))

		ops := tree.Flush()
		res.ops += len(ops)
		frame, err := wire.EncodeFrame(&wire.Frame{Seq: uint64(i + 1), Ops: ops, Checksum: tree.Checksum()})
		if err == nil {
			res.bytes += len(frame)
		}
	}
	res.calc = tach.Calc()
	return res
}
