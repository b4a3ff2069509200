package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/SAP-F-2025/quizmark/internal/config"
	"github.com/SAP-F-2025/quizmark/internal/events"
	"github.com/SAP-F-2025/quizmark/internal/share"
	"github.com/SAP-F-2025/quizmark/internal/utils"
)

// Replaced in tests; the system clipboard needs a desktop session.
var (
	newClipboard = func() share.Clipboard { return share.SystemClipboard{} }
	newPublisher = func(logger utils.Logger) (events.EventPublisher, error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		return cfg.Events.CreateEventPublisher(utils.ToSlogLogger(logger))
	}
)

func runShare(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		url := flags.String("url", "", "page URL")
		title := flags.String("title", "", "page title")
		publish := flags.Bool("publish", false, "share through the configured event publisher instead of the clipboard")
		verbose := flags.Bool("v", false, "verbose logging")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		logger := commandLogger(stderr, *verbose)

		var native share.NativeSharer
		if *publish {
			publisher, err := newPublisher(logger)
			if err != nil {
				fmt.Fprintf(stderr, "publisher error: %v\n", err)
				return ExitError
			}
			defer publisher.Close()
			native = share.NewEventSharer(publisher)
		}

		// the toast is not cleared, the process exits right after
		helper := share.NewHelper(native, newClipboard(), share.NewTerminalNotifier(stdout, 0), logger)
		if err := helper.Share(context.Background(), share.Page{URL: *url, Title: *title}); err != nil {
			fmt.Fprintf(stderr, "share error: %v\n", err)
			return ExitError
		}
		if native != nil {
			fmt.Fprintf(stdout, "Shared %s\n", *url)
		}
		return ExitOK
	}
}
