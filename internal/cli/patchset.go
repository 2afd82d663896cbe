package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gerrit-ai-review/gerrit-events/internal/config"
	"github.com/gerrit-ai-review/gerrit-events/internal/events"
)

// PatchSetEntry is one distinct patchset seen in the stream
type PatchSetEntry struct {
	Project  string           `json:"project,omitempty"`
	Change   string           `json:"change,omitempty"`
	PatchSet *events.PatchSet `json:"patchSet"`
	Events   int              `json:"events"`
}

// PatchSetList is the data payload of the patchset command
type PatchSetList struct {
	Source    string           `json:"source"`
	PatchSets []*PatchSetEntry `json:"patchSets"`
}

// Text renders one line per patchset
func (l *PatchSetList) Text() string {
	lines := make([]string, 0, len(l.PatchSets)+1)
	for _, e := range l.PatchSets {
		line := fmt.Sprintf("%s#%s %s %s", e.Project, e.Change, e.PatchSet, e.PatchSet.Revision)
		if e.PatchSet.Ref != "" {
			line += " " + e.PatchSet.Ref
		}
		if e.PatchSet.Draft {
			line += " draft"
		}
		if who := e.PatchSet.Uploader.NameAndEmail(); who != "" {
			line += " uploaded by " + who
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("%d patchsets from %s", len(l.PatchSets), l.Source))
	return strings.Join(lines, "\n")
}

func newPatchsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patchset [file]",
		Short: "List distinct patchsets referenced by stream-events",
		Long: `List the patchsets carried by stream-events, one entry per patchset.

Patchsets are identified by their number and revision within a change, so the
comment-added and patchset-created events of one upload collapse into a
single entry. Entries keep first-seen order.

Examples:
  gerrit-events patchset events.log --format text
  gerrit-events patchset --project platform/core < events.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPatchset,
	}
	addFilterFlags(cmd)
	return cmd
}

func runPatchset(cmd *cobra.Command, args []string) error {
	bindFilterFlags(cmd)

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	return ExecuteCommand(cmd.OutOrStdout(), cfg.Output.Format, "patchset", version, func() (interface{}, error) {
		result, err := decodeFiltered(cmd.Context(), cmd, args, cfg)
		if err != nil {
			return nil, err
		}
		return CollectPatchSets(result), nil
	})
}

// CollectPatchSets deduplicates the patchsets of the parsed events.
// Entries hold their own copies; the events are left untouched.
// Events without a patchset are ignored.
func CollectPatchSets(result *ParseResult) *PatchSetList {
	list := &PatchSetList{Source: result.Source, PatchSets: []*PatchSetEntry{}}

	type changeKey struct{ project, change string }
	seen := make(map[changeKey]map[uint64][]*PatchSetEntry)

	for _, ev := range result.Events {
		if ev.PatchSet == nil {
			continue
		}

		key := changeKey{}
		if ev.Change != nil {
			key = changeKey{ev.Change.Project, ev.Change.Number}
		}
		if seen[key] == nil {
			seen[key] = make(map[uint64][]*PatchSetEntry)
		}

		hash := ev.PatchSet.Hash()
		var found *PatchSetEntry
		for _, e := range seen[key][hash] {
			if e.PatchSet.Equal(ev.PatchSet) {
				found = e
				break
			}
		}

		if found == nil {
			found = &PatchSetEntry{
				Project:  key.project,
				Change:   key.change,
				PatchSet: copyPatchSet(ev.PatchSet),
			}
			seen[key][hash] = append(seen[key][hash], found)
			list.PatchSets = append(list.PatchSets, found)
		}
		found.Events++

		if found.PatchSet.Uploader == nil && ev.PatchSet.Uploader != nil {
			uploader := *ev.PatchSet.Uploader
			found.PatchSet.Uploader = &uploader
		}
	}

	return list
}

func copyPatchSet(p *events.PatchSet) *events.PatchSet {
	out := *p
	if p.Uploader != nil {
		uploader := *p.Uploader
		out.Uploader = &uploader
	}
	return &out
}
