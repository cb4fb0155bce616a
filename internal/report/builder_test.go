package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/osm-qa/osmchactl/internal/logging"
	"github.com/osm-qa/osmchactl/internal/osmcha"
)

// fakeAPI is an in-memory API backend with optional per-changeset failures.
// changesets maps username to changeset IDs, comments and failures are keyed
// by changeset ID.
type fakeAPI struct {
	changesets map[string][]string
	comments   map[string][]osmcha.Comment
	failures   map[string]error

	mu    sync.Mutex
	calls []string
}

func (f *fakeAPI) ListUserChangesets(_ context.Context, usernames []string, _, _ string) (*osmcha.UserChangesets, error) {
	listing := &osmcha.UserChangesets{}
	for _, username := range usernames {
		for _, id := range f.changesets[username] {
			listing.Append(username, id)
		}
	}
	return listing, nil
}

func (f *fakeAPI) ChangesetComments(_ context.Context, id string) ([]osmcha.Comment, error) {
	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()

	if err := f.failures[id]; err != nil {
		return nil, err
	}
	return f.comments[id], nil
}

func testLogger() *slog.Logger {
	return logging.NewLogger(io.Discard, slog.LevelError)
}

func TestRunResolvedScenario(t *testing.T) {
	api := &fakeAPI{
		changesets: map[string][]string{"alice": {"1", "2"}},
		comments: map[string][]osmcha.Comment{
			"1": {{Author: "bob"}, {Author: "alice"}},
			"2": {},
		},
	}

	var out bytes.Buffer
	builder := New(testLogger(), api, &out, 0)
	if err := builder.Run(context.Background(), []string{"alice"}, "2018-01-01", "2019-10-31"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "LOG FOR USERNAME :  alice\n" +
		"-- Changeset count : 2\n" +
		"-- Count of Changesets with comments : 1\n" +
		"-- Count of Changesets without comments : 1\n" +
		"-- Count of Resolved changesets :  1\n" +
		"-- Count of Unresolved changesets :  0\n" +
		"-- List of Unresolved changesets below\n" +
		"[ ]\n"
	if out.String() != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRunUnresolvedScenario(t *testing.T) {
	api := &fakeAPI{
		changesets: map[string][]string{"alice": {"1", "2"}},
		comments: map[string][]osmcha.Comment{
			"1": {{Author: "alice"}, {Author: "bob"}},
			"2": {},
		},
	}

	var out bytes.Buffer
	builder := New(testLogger(), api, &out, 0)
	if err := builder.Run(context.Background(), []string{"alice"}, "2018-01-01", "2019-10-31"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "-- Count of Unresolved changesets :  1\n") {
		t.Errorf("output should count one unresolved changeset:\n%s", got)
	}
	if !strings.Contains(got, "[ https://www.openstreetmap.org/changeset/1 ]\n") {
		t.Errorf("output should list the unresolved changeset URL:\n%s", got)
	}
}

func TestRunSkipsUsersWithoutChangesets(t *testing.T) {
	api := &fakeAPI{
		changesets: map[string][]string{"alice": {"1"}},
		comments:   map[string][]osmcha.Comment{"1": {}},
	}

	var out bytes.Buffer
	builder := New(testLogger(), api, &out, 0)
	if err := builder.Run(context.Background(), []string{"alice", "ghost"}, "2018-01-01", "2019-10-31"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if strings.Contains(out.String(), "ghost") {
		t.Errorf("user without changesets must not appear in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "LOG FOR USERNAME :  alice\n") {
		t.Errorf("active user block missing:\n%s", out.String())
	}
}

func TestRunIsIdempotent(t *testing.T) {
	api := &fakeAPI{
		changesets: map[string][]string{"alice": {"1", "2", "3"}},
		comments: map[string][]osmcha.Comment{
			"1": {{Author: "bob"}},
			"2": {{Author: "carol"}, {Author: "alice"}},
			"3": {},
		},
	}

	run := func() string {
		var out bytes.Buffer
		builder := New(testLogger(), api, &out, 0)
		if err := builder.Run(context.Background(), []string{"alice"}, "2018-01-01", "2019-10-31"); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return out.String()
	}

	first, second := run(), run()
	if first != second {
		t.Errorf("two runs against the same backend differ:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestRunFailurePropagationKeepsSiblingOutput(t *testing.T) {
	boom := errors.New("connection reset")
	api := &fakeAPI{
		changesets: map[string][]string{
			"alice": {"1"},
			"bob":   {"2"},
		},
		comments: map[string][]osmcha.Comment{"1": {}},
		failures: map[string]error{"2": boom},
	}

	var out bytes.Buffer
	builder := New(testLogger(), api, &out, 0)
	err := builder.Run(context.Background(), []string{"alice", "bob"}, "2018-01-01", "2019-10-31")
	if !errors.Is(err, boom) {
		t.Fatalf("Run = %v, want wrapped %v", err, boom)
	}

	if !strings.Contains(out.String(), "LOG FOR USERNAME :  alice\n") {
		t.Errorf("healthy user's block should still be printed:\n%s", out.String())
	}
	if strings.Contains(out.String(), "LOG FOR USERNAME :  bob\n") {
		t.Errorf("failed user must not produce a block:\n%s", out.String())
	}
}

func TestFetchDiscussionsPreservesIDOrder(t *testing.T) {
	api := &fakeAPI{
		comments: map[string][]osmcha.Comment{
			"5": {{Author: "a"}},
			"6": {},
			"7": {{Author: "b"}},
		},
	}

	builder := New(testLogger(), api, io.Discard, 2)
	discussions, err := builder.fetchDiscussions(context.Background(), []string{"5", "6", "7"})
	if err != nil {
		t.Fatalf("fetchDiscussions: %v", err)
	}

	for i, want := range []string{"5", "6", "7"} {
		if discussions[i].ChangesetID != want {
			t.Errorf("discussions[%d].ChangesetID = %q, want %q", i, discussions[i].ChangesetID, want)
		}
	}
	if len(api.calls) != 3 {
		t.Errorf("issued %d comment fetches, want 3", len(api.calls))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		discussions []Discussion
		want        UserReport
	}{
		{
			name: "owner spoke last is resolved",
			discussions: []Discussion{
				{ChangesetID: "1", Comments: []osmcha.Comment{{Author: "bob"}, {Author: "alice"}}},
			},
			want: UserReport{Username: "alice", TotalChangesets: 1, WithComments: 1, Resolved: 1},
		},
		{
			name: "someone else spoke last is unresolved",
			discussions: []Discussion{
				{ChangesetID: "1", Comments: []osmcha.Comment{{Author: "alice"}, {Author: "bob"}}},
			},
			want: UserReport{
				Username: "alice", TotalChangesets: 1, WithComments: 1, Unresolved: 1,
				UnresolvedURLs: []string{"https://www.openstreetmap.org/changeset/1"},
			},
		},
		{
			name: "no comments counts under withoutComments only",
			discussions: []Discussion{
				{ChangesetID: "1"},
			},
			want: UserReport{Username: "alice", TotalChangesets: 1, WithoutComments: 1},
		},
		{
			name: "single comment by a stranger is unresolved",
			discussions: []Discussion{
				{ChangesetID: "9", Comments: []osmcha.Comment{{Author: "bob"}}},
			},
			want: UserReport{
				Username: "alice", TotalChangesets: 1, WithComments: 1, Unresolved: 1,
				UnresolvedURLs: []string{"https://www.openstreetmap.org/changeset/9"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("alice", tt.discussions)
			if got.TotalChangesets != tt.want.TotalChangesets ||
				got.WithComments != tt.want.WithComments ||
				got.WithoutComments != tt.want.WithoutComments ||
				got.Resolved != tt.want.Resolved ||
				got.Unresolved != tt.want.Unresolved {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
			if strings.Join(got.UnresolvedURLs, ",") != strings.Join(tt.want.UnresolvedURLs, ",") {
				t.Errorf("UnresolvedURLs = %v, want %v", got.UnresolvedURLs, tt.want.UnresolvedURLs)
			}
		})
	}
}
