package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"labelprint/internal/label/render"
	"labelprint/internal/label/service"
	"labelprint/internal/platform/config"
	"labelprint/internal/platform/logger"
	"labelprint/internal/printnode"
	dErrors "labelprint/pkg/domain-errors"
)

func newScanCmd() *cobra.Command {
	var (
		dryRun bool
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Read codes from stdin, one per line, and print each",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Server.LogLevel, "text")

			var sub service.Submitter
			if dryRun {
				if err := cfg.ValidateLocal(); err != nil {
					return err
				}
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				sub = &fileSubmitter{dir: outDir}
			} else {
				if err := cfg.Validate(); err != nil {
					return err
				}
				client, err := printnode.New(cfg.PrintNodeClientConfig(), printnode.WithLogger(log))
				if err != nil {
					return err
				}
				sub = client
			}

			svc, err := newService(cfg, sub, log, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return scanLoop(cmd.Context(), svc, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "write PDFs to --out instead of submitting to PrintNode")
	cmd.Flags().StringVar(&outDir, "out", "labels", "directory for --dry-run PDFs")
	return cmd
}

func newService(cfg config.Config, sub service.Submitter, log *slog.Logger, out io.Writer) (*service.Service, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	overflow, err := cfg.OverflowPolicy()
	if err != nil {
		return nil, err
	}

	return service.New(policy, render.New(render.WithOverflowPolicy(overflow)), sub,
		service.WithLogger(log),
		service.WithAfterPrint(rearm(out)),
	), nil
}

// rearm reports the outcome and puts the prompt back for the next scan.
func rearm(out io.Writer) service.AfterPrintFunc {
	return func(_ context.Context, o service.Outcome) {
		switch {
		case o.Err == nil:
			fmt.Fprintf(out, "printed %s (job %s)\n", o.Result.Code, o.Result.JobID)
		case dErrors.HasCode(o.Err, dErrors.CodeValidation):
			fmt.Fprintf(out, "rejected: %s\n", dErrors.MessageOf(o.Err))
		default:
			fmt.Fprintf(out, "error: %s\n", dErrors.MessageOf(o.Err))
		}
		fmt.Fprint(out, "> ")
	}
}

func scanLoop(ctx context.Context, svc *service.Service, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "labelprint: policy %s, %d-%d. Scan a code.\n> ",
		svc.Policy().Name, svc.Policy().MinLength, svc.Policy().MaxLength)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			fmt.Fprint(out, "> ")
			continue
		}
		// Failures are reported by the after-print hook; keep scanning.
		_, _ = svc.Print(ctx, line)
	}
	fmt.Fprintln(out)
	return sc.Err()
}

// fileSubmitter stands in for PrintNode during dry runs.
type fileSubmitter struct {
	dir string
}

func (f *fileSubmitter) Submit(_ context.Context, pdf []byte, title string) (string, error) {
	path := filepath.Join(f.dir, fileName(title))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// fileName escapes title into a single path segment. Distinct titles always
// give distinct names.
func fileName(title string) string {
	return url.PathEscape(title) + ".pdf"
}
