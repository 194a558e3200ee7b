package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/relocate/scenario"
	"github.com/katalvlaran/relocate/search"
	"github.com/katalvlaran/relocate/store"
	"github.com/katalvlaran/relocate/topology"
	"github.com/katalvlaran/relocate/turn"
)

func newSolveCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "solve <scenario.yaml>",
		Short: "Solve a scenario file and print the cheapest turns",
		Long: `Solve loads a scenario document, searches for the minimum total cost and
prints one line per turn. Optimal results are kept in the configured store and
reused when the same initial arrangement is solved again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return a.solve(ctx, cmd.OutOrStdout(), args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result record as JSON")

	return cmd
}

func (a *app) solve(ctx context.Context, out io.Writer, path string, asJSON bool) error {
	sc, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}
	b, err := sc.Board()
	if err != nil {
		return err
	}
	t := b.Topology()
	fp := scenario.Fingerprint(b)
	log := a.log.With("fingerprint", fp)

	st, err := a.cfg.OpenStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
		rec, err := st.Get(ctx, fp)
		switch {
		case err == nil && rec.Complete:
			log.Debug("cache hit", "cost", rec.Cost)
			return printRecord(out, t, rec, true, asJSON)
		case err != nil && !errors.Is(err, store.ErrNotFound):
			log.Warn("cache read failed", "error", err)
		}
	}

	own, err := sc.Options()
	if err != nil {
		return err
	}
	opts := append(a.cfg.SearchOptions(), own...)
	opts = append(opts, search.WithLogger(log))

	res, err := search.Solve(ctx, b, opts...)
	if err != nil {
		return err
	}
	rec, err := store.NewRecord(fp, sc.Name, t, res)
	if err != nil {
		return err
	}
	if st != nil && rec.Complete {
		if err = st.Put(ctx, rec); err != nil {
			log.Warn("cache write failed", "error", err)
		}
	}

	return printRecord(out, t, rec, false, asJSON)
}

func printRecord(out io.Writer, t *topology.Topology, rec *store.Record, cached, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	turns, err := rec.Resolve(t)
	if err != nil {
		return err
	}
	for i, tr := range turns {
		fmt.Fprintf(out, "%3d  %s\n", i+1, tr.Format(t))
	}
	status := "optimal"
	if !rec.Complete {
		status = "best found before the time limit"
	}
	if cached {
		status += ", cached"
	}
	fmt.Fprintf(out, "total: %d (%s)\n", turn.Cost(turns), status)

	return nil
}
