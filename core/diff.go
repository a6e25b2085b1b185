package core

import "strings"

// Diff describes the changes between two snapshots of edition content as a
// single text block. Parts are rendered in order as a heading line and a body,
// separated by blank lines. Unchanged segments are emitted verbatim, changed
// segments are replaced by a {"old" >> "new"} marker. When the previous
// snapshot has no parts (first publish), the full new content is emitted with
// no markers.
//
// The diff text is stored on the publish action record. It is a permanent
// audit artifact and never recomputed after the fact.
func Diff(previous, current []Part) string {

	var segments = []string{}

	for i, part := range current {

		var heading = "# " + part.Title
		var body = part.Body

		if i < len(previous) {
			var old = previous[i]
			if old.Title != part.Title {
				heading = diffMarker("# "+old.Title, heading)
			}
			if old.Body != part.Body {
				body = diffMarker(old.Body, body)
			}
		}

		segments = append(segments, heading, body)
	}

	return strings.Join(segments, "\n\n")
}

func diffMarker(old, new string) string {
	return `{"` + old + `" >> "` + new + `"}`
}
