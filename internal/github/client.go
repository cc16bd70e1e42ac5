package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/sync/errgroup"

	"devfolio/internal/telemetry"
)

// RepoLimit is how many recently updated repositories are merged in.
const RepoLimit = 5

// ClientConfig configures the REST client.
type ClientConfig struct {
	Token      string // optional; raises the rate limit
	BaseURL    string // overrides https://api.github.com/
	HTTPClient *http.Client
}

// Client reads public activity from the GitHub REST API.
type Client struct {
	gh *gh.Client
}

// NewClient creates a client.
func NewClient(cfg ClientConfig) (*Client, error) {
	c := gh.NewClient(cfg.HTTPClient)
	if cfg.Token != "" {
		c = c.WithAuthToken(cfg.Token)
	}
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("github: parse base url: %w", err)
		}
		c.BaseURL = u
	}
	return &Client{gh: c}, nil
}

// Fetch loads public events and the most recently updated repositories
// concurrently, merged newest first.
func (c *Client) Fetch(ctx context.Context, username string) ([]Activity, error) {
	ctx, span := telemetry.Start(ctx, "github.fetch", map[string]string{"user": username})
	var (
		events []*gh.Event
		repos  []*gh.Repository
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, _, err = c.gh.Activity.ListEventsPerformedByUser(gctx, username, true, &gh.ListOptions{})
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		repos, _, err = c.gh.Repositories.ListByUser(gctx, username, &gh.RepositoryListByUserOptions{
			Sort:        "updated",
			ListOptions: gh.ListOptions{PerPage: RepoLimit},
		})
		if err != nil {
			return fmt.Errorf("list repos: %w", err)
		}
		return nil
	})
	err := g.Wait()
	telemetry.End(span, err)
	if err != nil {
		return nil, fmt.Errorf("github: %w", err)
	}

	out := make([]Activity, 0, len(events)+len(repos))
	for _, e := range events {
		out = append(out, fromEvent(e))
	}
	for _, r := range repos {
		out = append(out, fromRepo(r))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].When().After(out[j].When())
	})
	return out, nil
}

func fromEvent(e *gh.Event) Activity {
	a := Activity{
		Kind:      KindEvent,
		Type:      e.GetType(),
		RepoName:  e.GetRepo().GetName(),
		CreatedAt: e.GetCreatedAt().Time,
	}
	if a.Type == "CreateEvent" {
		if p, err := e.ParsePayload(); err == nil {
			if ce, ok := p.(*gh.CreateEvent); ok {
				a.RefType = ce.GetRefType()
			}
		}
	}
	return a
}

func fromRepo(r *gh.Repository) Activity {
	return Activity{
		Kind:        KindRepo,
		Name:        r.GetName(),
		Description: r.GetDescription(),
		HTMLURL:     r.GetHTMLURL(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}
