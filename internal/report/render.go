package report

import (
	"fmt"
	"strings"
)

// Render formats one report block in the fixed console layout.
func Render(rep UserReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "LOG FOR USERNAME :  %s\n", rep.Username)
	fmt.Fprintf(&sb, "-- Changeset count : %d\n", rep.TotalChangesets)
	fmt.Fprintf(&sb, "-- Count of Changesets with comments : %d\n", rep.WithComments)
	fmt.Fprintf(&sb, "-- Count of Changesets without comments : %d\n", rep.WithoutComments)
	fmt.Fprintf(&sb, "-- Count of Resolved changesets :  %d\n", rep.Resolved)
	fmt.Fprintf(&sb, "-- Count of Unresolved changesets :  %d\n", rep.Unresolved)
	sb.WriteString("-- List of Unresolved changesets below\n")
	if len(rep.UnresolvedURLs) == 0 {
		sb.WriteString("[ ]\n")
	} else {
		fmt.Fprintf(&sb, "[ %s ]\n", strings.Join(rep.UnresolvedURLs, ", "))
	}
	return sb.String()
}
