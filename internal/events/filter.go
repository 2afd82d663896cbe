package events

import (
	"strings"
)

// FilterConfig defines event filtering rules
type FilterConfig struct {
	Types    []string // Empty = allow all event types
	Projects []string // Empty = allow all
	Exclude  []string // Exclude these projects
}

// Filter filters Gerrit events based on configuration
type Filter struct {
	config FilterConfig
}

// NewFilter creates a new event filter
func NewFilter(config FilterConfig) *Filter {
	return &Filter{config: config}
}

// ShouldProcess returns true if the event should be processed
func (f *Filter) ShouldProcess(event *Event) bool {
	if event == nil {
		return false
	}

	if len(f.config.Types) > 0 && !matchAny(f.config.Types, event.Type) {
		return false
	}

	project := event.Project()

	if project != "" && matchAny(f.config.Exclude, project) {
		return false
	}

	// If no whitelist, allow all (except excluded)
	if len(f.config.Projects) == 0 {
		return true
	}

	return project != "" && matchAny(f.config.Projects, project)
}

func matchAny(list []string, value string) bool {
	for _, item := range list {
		if strings.TrimSpace(item) == value {
			return true
		}
	}
	return false
}
