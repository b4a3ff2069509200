package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/SAP-F-2025/quizmark/internal/annotator"
	"github.com/SAP-F-2025/quizmark/internal/client"
	"github.com/SAP-F-2025/quizmark/internal/models"
)

const stdio = "-"

// stdin is swapped in tests
var stdin io.Reader = os.Stdin

func runAnnotate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		server := flags.String("server", "", "quizmark server base URL")
		taskID := flags.String("task", "", "task ID")
		taskType := flags.String("type", "", "multiple_choice or true_false (default: from server)")
		in := flags.String("in", stdio, "page to annotate, - for stdin")
		out := flags.String("out", stdio, "annotated page, - for stdout")
		token := flags.String("token", "", "CSRF token (default: fetched from the server)")
		verbose := flags.Bool("v", false, "verbose logging")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		if *server == "" || *taskID == "" {
			fmt.Fprintln(stderr, "--server and --task are required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		kind := models.TaskType(*taskType)
		if kind != "" && !kind.Valid() {
			fmt.Fprintf(stderr, "unknown task type %q\n", *taskType)
			return ExitUsage
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var opts []client.Option
		if *token != "" {
			opts = append(opts, client.WithTokenSource(client.StaticTokenSource(*token)))
		}
		answers, err := client.New(*server, opts...)
		if err != nil {
			fmt.Fprintf(stderr, "client error: %v\n", err)
			return ExitError
		}
		if *token == "" {
			if err := answers.PrimeCSRF(ctx); err != nil {
				fmt.Fprintf(stderr, "csrf error: %v\n", err)
				return ExitError
			}
		}

		page, closePage, err := openInput(*in)
		if err != nil {
			fmt.Fprintf(stderr, "input error: %v\n", err)
			return ExitError
		}
		defer closePage()

		logger := commandLogger(stderr, *verbose)
		var marked bytes.Buffer
		report, err := annotator.New(answers, nil, logger).AnnotateHTML(ctx, page, &marked, *taskID, kind)
		if err != nil {
			fmt.Fprintf(stderr, "annotate error: %v\n", err)
			return ExitError
		}

		if err := writeOutput(*out, stdout, marked.Bytes()); err != nil {
			fmt.Fprintf(stderr, "output error: %v\n", err)
			return ExitError
		}

		s := report.Summary
		fmt.Fprintf(stderr, "%s (%s): %d correct, %d incorrect, %d unanswered, %d skipped\n",
			report.TaskID, report.Type, s.Correct, s.Incorrect, s.Unanswered, s.Skipped)
		return ExitOK
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == stdio {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// writeOutput only touches the destination once the page is complete
func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == stdio {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
