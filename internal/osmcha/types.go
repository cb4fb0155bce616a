// Package osmcha provides a minimal client for the OSMCHA changeset-review API.
package osmcha

import "encoding/json"

// Comment is a single entry in a changeset discussion thread, in the
// chronological order returned by the API.
type Comment struct {
	// Author is the OSM display name of the comment author.
	Author string `json:"userName"`
	// Text is the raw comment body.
	Text string `json:"comment"`
	// Date is the ISO timestamp of the comment.
	Date string `json:"date"`
}

// changesetPage mirrors one page of the /changesets/ listing response.
// Next carries the full address of the following page, or null on the last one.
type changesetPage struct {
	Next     *string            `json:"next"`
	Features []changesetFeature `json:"features"`
}

type changesetFeature struct {
	ID         changesetID `json:"id"`
	Properties struct {
		User string `json:"user"`
	} `json:"properties"`
}

// changesetID is an opaque changeset identifier. The API serves it as either
// a JSON number or a JSON string depending on the endpoint; both decode to
// the same string form.
type changesetID string

func (c *changesetID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = changesetID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = changesetID(n.String())
	return nil
}

func (c changesetID) String() string { return string(c) }
