package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gerrit-ai-review/gerrit-events/internal/config"
	"github.com/gerrit-ai-review/gerrit-events/internal/events"
	"github.com/gerrit-ai-review/gerrit-events/internal/logger"
)

// ParseResult is the data payload of the parse command
type ParseResult struct {
	Source string          `json:"source"`
	Events []*events.Event `json:"events"`
	Stats  events.Stats    `json:"stats"`
}

// Text renders one summary line per event followed by the counters
func (r *ParseResult) Text() string {
	var b strings.Builder
	for _, ev := range r.Events {
		b.WriteString(ev.Summary())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d events from %s (%d lines, %d malformed)",
		len(r.Events), r.Source, r.Stats.Lines, r.Stats.Malformed)
	return b.String()
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse stream-events into typed records",
		Long: `Parse newline-delimited Gerrit stream-events JSON.

Reads from the given file, or stdin when the file is omitted or "-".
Blank lines are skipped; malformed lines are logged and counted.

Examples:
  # Capture and parse live events
  ssh gerrit-review gerrit stream-events | gerrit-events parse

  # Only new patchsets of one project, as text
  gerrit-events parse events.log --type patchset-created --project platform/core --format text`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	addFilterFlags(cmd)
	return cmd
}

// addFilterFlags registers the event filter flags and binds them to viper
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("type", nil, "Only keep events of this type (repeatable)")
	cmd.Flags().StringSlice("project", nil, "Only keep events of this project (repeatable)")
	cmd.Flags().StringSlice("exclude", nil, "Drop events of this project (repeatable)")
}

// bindFilterFlags binds the filter flags of the running command; done at run
// time because parse and patchset share the viper keys
func bindFilterFlags(cmd *cobra.Command) {
	viper.BindPFlag("filter.types", cmd.Flags().Lookup("type"))
	viper.BindPFlag("filter.projects", cmd.Flags().Lookup("project"))
	viper.BindPFlag("filter.exclude", cmd.Flags().Lookup("exclude"))
}

// decodeFiltered runs the decoder over the command input and collects the
// events that pass the configured filter
func decodeFiltered(ctx context.Context, cmd *cobra.Command, args []string, cfg *config.Config) (*ParseResult, error) {
	in, source, err := openInput(cmd.InOrStdin(), args)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	log := logger.Get()
	step := log.Step("Decode " + source)

	filter := events.NewFilter(cfg.EventFilter())
	result := &ParseResult{Source: source, Events: []*events.Event{}}

	stats, err := events.NewDecoder(in).Decode(ctx, func(ev *events.Event) error {
		if filter.ShouldProcess(ev) {
			result.Events = append(result.Events, ev)
		} else {
			log.Debugf("Skipping %s event for project %q", ev.Type, ev.Project())
		}
		return nil
	})
	result.Stats = stats
	if err != nil {
		step.Fail(err)
		return nil, err
	}

	step.Complete()
	return result, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	bindFilterFlags(cmd)

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	return ExecuteCommand(cmd.OutOrStdout(), cfg.Output.Format, "parse", version, func() (interface{}, error) {
		return decodeFiltered(cmd.Context(), cmd, args, cfg)
	})
}
