package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"labelprint/internal/label/render"
	"labelprint/internal/platform/config"
)

func newRenderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render CODE",
		Short: "Validate one code and write its label PDF without printing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateLocal(); err != nil {
				return err
			}
			policy, err := cfg.Policy()
			if err != nil {
				return err
			}
			overflow, err := cfg.OverflowPolicy()
			if err != nil {
				return err
			}

			code, err := policy.Parse(args[0])
			if err != nil {
				return err
			}
			lbl, err := render.New(render.WithOverflowPolicy(overflow)).Render(code, time.Now())
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, lbl.PDF, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %q at %.0fpt (overflow=%t)\n",
				output, code, lbl.Layout.FontSize, lbl.Layout.Overflow)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "label.pdf", "PDF file to write")
	return cmd
}
