// Package report builds per-user changeset discussion summaries.
package report

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/osm-qa/osmchactl/internal/osmcha"
)

// changesetURLPrefix is the public changeset page prefix used in report output.
const changesetURLPrefix = "https://www.openstreetmap.org/changeset/"

// API names the two OSMCHA operations the builder depends on.
type API interface {
	ListUserChangesets(ctx context.Context, usernames []string, fromDate, toDate string) (*osmcha.UserChangesets, error)
	ChangesetComments(ctx context.Context, id string) ([]osmcha.Comment, error)
}

// Discussion joins a changeset with its fetched comment thread.
type Discussion struct {
	ChangesetID string
	Comments    []osmcha.Comment
}

// UserReport summarizes one user's changeset discussions in a date window.
type UserReport struct {
	Username        string
	TotalChangesets int
	WithComments    int
	WithoutComments int
	Resolved        int
	Unresolved      int
	UnresolvedURLs  []string
}

// Builder fetches, classifies and prints per-user discussion reports.
type Builder struct {
	logger      *slog.Logger
	api         API
	out         io.Writer
	concurrency int

	mu sync.Mutex
}

// New constructs a Builder writing report blocks to out. concurrency caps
// simultaneous comment fetches per user; 0 means unbounded.
func New(logger *slog.Logger, api API, out io.Writer, concurrency int) *Builder {
	return &Builder{
		logger:      logger,
		api:         api,
		out:         out,
		concurrency: concurrency,
	}
}

// Run lists changesets for all usernames in one batched query, then prints a
// report block for every user that has changesets in the window. Users with
// no changesets produce no block. User blocks are built concurrently and each
// block is written atomically, so blocks never interleave line-wise. Every
// branch runs to completion even when a sibling fails; the first error is
// returned after all of them finish.
func (b *Builder) Run(ctx context.Context, usernames []string, fromDate, toDate string) error {
	listing, err := b.api.ListUserChangesets(ctx, usernames, fromDate, toDate)
	if err != nil {
		return err
	}

	var group errgroup.Group
	for _, username := range listing.Users() {
		username := username
		ids := listing.IDs(username)
		group.Go(func() error {
			rep, err := b.buildUserReport(ctx, username, ids)
			if err != nil {
				b.logger.Error("user report failed", "user", username, "error", err)
				return err
			}
			b.mu.Lock()
			defer b.mu.Unlock()
			_, err = io.WriteString(b.out, Render(rep))
			return err
		})
	}
	return group.Wait()
}

func (b *Builder) buildUserReport(ctx context.Context, username string, ids []string) (UserReport, error) {
	discussions, err := b.fetchDiscussions(ctx, ids)
	if err != nil {
		return UserReport{}, err
	}
	return Classify(username, discussions), nil
}

// fetchDiscussions retrieves comment threads for every changeset ID
// concurrently. Results are recombined positionally, so the discussion order
// matches the ID order regardless of completion order.
func (b *Builder) fetchDiscussions(ctx context.Context, ids []string) ([]Discussion, error) {
	discussions := make([]Discussion, len(ids))

	var group errgroup.Group
	if b.concurrency > 0 {
		group.SetLimit(b.concurrency)
	}
	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			comments, err := b.api.ChangesetComments(ctx, id)
			if err != nil {
				return err
			}
			discussions[i] = Discussion{ChangesetID: id, Comments: comments}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return discussions, nil
}

// Classify summarizes a user's discussions. A discussed changeset counts as
// resolved when its last comment was written by the changeset owner, and
// unresolved otherwise. This is a heuristic about who spoke last, not a
// statement about the discussion's actual state.
func Classify(username string, discussions []Discussion) UserReport {
	rep := UserReport{Username: username, TotalChangesets: len(discussions)}
	for _, d := range discussions {
		if len(d.Comments) == 0 {
			rep.WithoutComments++
			continue
		}
		rep.WithComments++
		last := d.Comments[len(d.Comments)-1]
		if last.Author == username {
			rep.Resolved++
		} else {
			rep.Unresolved++
			rep.UnresolvedURLs = append(rep.UnresolvedURLs, changesetURLPrefix+d.ChangesetID)
		}
	}
	return rep
}
