package inline

import "unicode"

// TransformText applies a WhitespacePolicy to raw DOM text before it is
// shaped into a TextRun (spec §4.3 flush rules B/C). Per spec §9 open
// question 4, compression context is not threaded between adjacent
// pieces of a multi-box clump: each box's text is transformed in
// isolation before concatenation, so whitespace straddling a box
// boundary can be over- or under-compressed. That is preserved
// intentionally, not a bug to fix here.
func TransformText(text string, policy WhitespacePolicy) string {
	switch policy {
	case CompressWhitespaceNewline:
		return compressWhitespaceNewline(text)
	default:
		return text
	}
}

func compressWhitespaceNewline(s string) string {
	out := make([]rune, 0, len(s))
	lastWasSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				out = append(out, ' ')
			}
			lastWasSpace = true
			continue
		}
		out = append(out, r)
		lastWasSpace = false
	}
	return string(out)
}
