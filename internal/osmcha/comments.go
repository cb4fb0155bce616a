package osmcha

import (
	"context"
	"encoding/json"
	"fmt"
)

// ChangesetComments fetches the discussion thread for a single changeset.
// The result is empty when the changeset has no discussion.
func (c *Client) ChangesetComments(ctx context.Context, id string) ([]Comment, error) {
	addr := fmt.Sprintf("%s/changesets/%s/comment/", c.baseURL, id)
	body, err := c.Do(ctx, c.request(addr))
	if err != nil {
		return nil, err
	}

	var comments []Comment
	if err := json.Unmarshal(body, &comments); err != nil {
		return nil, fmt.Errorf("decode comments for changeset %s: %w", id, err)
	}
	return comments, nil
}
