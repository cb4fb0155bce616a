package osmcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// UserChangesets is an insertion-ordered mapping from username to the
// changeset IDs seen for that user, in server response order.
type UserChangesets struct {
	order []string
	ids   map[string][]string
}

// Append records id under username, creating the entry on first sight.
func (u *UserChangesets) Append(username, id string) {
	if u.ids == nil {
		u.ids = make(map[string][]string)
	}
	if _, ok := u.ids[username]; !ok {
		u.order = append(u.order, username)
	}
	u.ids[username] = append(u.ids[username], id)
}

// Users returns the recorded usernames in first-seen order.
func (u *UserChangesets) Users() []string {
	return u.order
}

// IDs returns the changeset IDs recorded for username, in append order.
func (u *UserChangesets) IDs(username string) []string {
	return u.ids[username]
}

// Len returns the number of distinct usernames recorded.
func (u *UserChangesets) Len() int {
	return len(u.order)
}

// ListUserChangesets pages through the changeset listing for the given
// usernames and date window and returns every changeset ID grouped by user.
// Pagination is link-based: each next-page address comes from the previous
// response, pages are fetched strictly sequentially, and the loop ends when
// the server returns a null next link. When the client carries a max-pages
// guard, exceeding it is an error rather than an endless loop.
func (c *Client) ListUserChangesets(ctx context.Context, usernames []string, fromDate, toDate string) (*UserChangesets, error) {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("page_size", strconv.Itoa(c.pageSize))
	query.Set("users", strings.Join(usernames, ","))
	query.Set("date__gte", fromDate)
	query.Set("date__lte", toDate)

	next := c.baseURL + "/changesets/?" + query.Encode()

	out := &UserChangesets{}
	for pages := 0; next != ""; {
		pages++
		if c.maxPages > 0 && pages > c.maxPages {
			return nil, fmt.Errorf("changeset listing exceeded %d pages", c.maxPages)
		}

		body, err := c.Do(ctx, c.request(next))
		if err != nil {
			return nil, err
		}

		var page changesetPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode changeset page: %w", err)
		}
		for _, feature := range page.Features {
			out.Append(feature.Properties.User, feature.ID.String())
		}
		if page.Next == nil {
			break
		}
		next = *page.Next
	}

	c.logger.Debug("changeset listing complete", "users", out.Len())
	return out, nil
}
