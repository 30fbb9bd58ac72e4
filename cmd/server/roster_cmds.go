package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zaqqye/evaluasi_backend/internal/dashboard"
	"github.com/zaqqye/evaluasi_backend/internal/logger"
	"github.com/zaqqye/evaluasi_backend/internal/roster"
	"github.com/zaqqye/evaluasi_backend/internal/scoring"
)

func seedCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Persist the default roster if none is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			wrote, err := roster.Seed(cmd.Context(), a.store, force)
			if err != nil {
				return err
			}
			log := logger.Get()
			log.Info().Bool("written", wrote).Bool("force", force).Msg("Seed finished")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace any stored roster")
	return cmd
}

func rankCmd() *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the class ranking for a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadRanking(cmd, subject)
			if err != nil {
				return err
			}
			return printRanking(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Subject name (exact)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func exportCmd() *cobra.Command {
	var subject, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the class ranking for a subject to an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadRanking(cmd, subject)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := dashboard.ExportRanking(f, subject, entries); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Subject name (exact)")
	cmd.Flags().StringVar(&out, "out", "peringkat.xlsx", "Output file")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func loadRanking(cmd *cobra.Command, subject string) ([]scoring.RankEntry, error) {
	a, err := bootstrap(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer a.close()

	known := false
	for _, s := range a.cfg.Subjects {
		known = known || s == subject
	}
	if !known {
		return nil, fmt.Errorf("unknown subject %q", subject)
	}
	return scoring.Rank(a.store.Load(cmd.Context()), subject), nil
}

func printRanking(w io.Writer, entries []scoring.RankEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PERINGKAT\tNAMA\tNIM\tNILAI AKHIR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n", e.Rank, e.Name, e.NIM, e.FinalScore)
	}
	return tw.Flush()
}
