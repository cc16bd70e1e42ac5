// Package github fetches a user's recent public GitHub activity and keeps it
// fresh with a background poller.
package github

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// ErrFetchFailed is the user-visible feed error.
const ErrFetchFailed = "Failed to fetch GitHub activities"

// Kind distinguishes public events from recently updated repositories.
type Kind string

const (
	KindEvent Kind = "event"
	KindRepo  Kind = "repo"
)

// Activity is one row of the feed.
type Activity struct {
	Kind Kind

	// Event fields.
	Type      string // e.g. PushEvent, CreateEvent
	RepoName  string // owner/name
	RefType   string // CreateEvent payload
	CreatedAt time.Time

	// Repository fields.
	Name        string
	Description string
	HTMLURL     string
	Stars       int
	Forks       int
	UpdatedAt   time.Time
}

// When is the sort key: CreatedAt for events, UpdatedAt for repos.
func (a Activity) When() time.Time {
	if a.Kind == KindRepo {
		return a.UpdatedAt
	}
	return a.CreatedAt
}

// Describe renders the one-line summary shown in the feed.
func (a Activity) Describe() string {
	if a.Kind == KindRepo {
		s := a.Name
		if a.Description != "" {
			s += ": " + a.Description
		}
		return fmt.Sprintf("%s  ★ %d  ⑂ %d", s, a.Stars, a.Forks)
	}
	switch a.Type {
	case "PushEvent":
		return "Pushed to " + a.RepoName
	case "CreateEvent":
		return fmt.Sprintf("Created %s in %s", a.RefType, a.RepoName)
	default:
		return "Activity in " + a.RepoName
	}
}

// URL is the link target for the row.
func (a Activity) URL() string {
	if a.Kind == KindRepo {
		return a.HTMLURL
	}
	return "https://github.com/" + a.RepoName
}

// Ago formats When relative to now, e.g. "3 hours ago".
func (a Activity) Ago(now time.Time) string {
	return humanize.RelTime(a.When(), now, "ago", "from now")
}

// Snapshot is the feed state pushed to the UI after every refresh.
type Snapshot struct {
	Activities []Activity
	Loading    bool
	Err        string
}
