package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/ingest"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/normalize"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/pipeline"
)

func processCmd() *cobra.Command {
	var modeFlag string
	cmd := &cobra.Command{
		Use:   "process <audio file or directory>",
		Short: "Transcribe and extract tasks from audio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode constants.Mode
			if modeFlag != "" {
				m, ok := constants.ParseMode(modeFlag)
				if !ok {
					return fmt.Errorf("invalid --mode %q, want batch or interactive", modeFlag)
				}
				mode = m
			}

			files := []string{args[0]}
			if info, err := os.Stat(args[0]); err != nil {
				return err
			} else if info.IsDir() {
				found, stats, err := ingest.ScanDirectory(args[0], nil, true)
				if err != nil {
					return err
				}
				if stats.Matched == 0 {
					return fmt.Errorf("no audio files under %s", args[0])
				}
				files = found
			}

			a, _, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			results := make([]entity.ExtractionResult, 0, len(files))
			for _, f := range files {
				if cmd.Context().Err() != nil {
					break
				}
				results = append(results, a.Orchestrator.ProcessInput(cmd.Context(), f, mode, ""))
			}
			if len(results) == 1 {
				return printJSON(cmd.OutOrStdout(), results[0])
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVar(&modeFlag, "mode", "", "Requested mode: batch or interactive (default from device profile)")
	return cmd
}

func normalizeCmd() *cobra.Command {
	var partial bool
	cmd := &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Clean a raw transcript (reads stdin without arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := argsOrStdin(cmd, args)
			if err != nil {
				return err
			}
			out := normalize.Normalize(text)
			if partial {
				out = normalize.NormalizePartial(text)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&partial, "partial", false, "Only collapse whitespace, as for live partial text")
	return cmd
}

func validateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate [model output...]",
		Short: "Validate raw model output against the task-list schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := argsOrStdin(cmd, args)
			if err != nil {
				return err
			}
			res := pipeline.NewValidationStage(nil, nil).ValidateAndFallback(cmd.Context(), raw, input)
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Original transcript, echoed back on fallback")
	return cmd
}

func exportCmd() *cobra.Command {
	var out, fromStr, toStr string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write persisted tasks to an XLSX workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := parseDate(fromStr, "from")
			if err != nil {
				return err
			}
			to, err := parseDate(toStr, "to")
			if err != nil {
				return err
			}
			a, _, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := a.Export.ExportTasksXLSX(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "tasks.xlsx", "Output XLSX path")
	cmd.Flags().StringVar(&fromStr, "from", "", "From date YYYY-MM-DD")
	cmd.Flags().StringVar(&toStr, "to", "", "To date YYYY-MM-DD")
	return cmd
}

func jobsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List recent inference jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			jobs, err := a.Jobs.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), jobs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum jobs to list")
	return cmd
}

func tasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <job-id>",
		Short: "Show the tasks stored for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			tasks, err := a.Tasks.ListByJob(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tasks)
		},
	}
}

func argsOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func parseDate(s, name string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date, use YYYY-MM-DD: %w", name, err)
	}
	return &t, nil
}
