package ui

import (
	"github.com/hollowaydev/spyglass/internal/history"
)

// recentLoadedMsg carries the refreshed recent-query list.
type recentLoadedMsg struct {
	Entries []history.RecentQuery
	Err     error
}

// pinnedLoadedMsg carries the saved-search list.
type pinnedLoadedMsg struct {
	Entries []history.PinnedSearch
	Err     error
}

// queryPinnedMsg reports the outcome of saving the current query.
type queryPinnedMsg struct {
	Query string
	Err   error
}

// queryUnpinnedMsg reports the outcome of removing a pinned query.
type queryUnpinnedMsg struct {
	Query string
	Err   error
}

// statusExpiredMsg clears a transient status line.
type statusExpiredMsg struct {
	id int
}
