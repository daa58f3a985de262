package bot

import (
	"strings"

	"github.com/go-andiamo/splitter"
)

var argSplitter = mustSplitter()

func mustSplitter() splitter.Splitter {
	s, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		panic(err)
	}
	return s
}

// splitArgs splits on spaces, keeping "quoted phrases" together with their
// quotes removed. Unbalanced quotes fall back to plain whitespace splitting.
func splitArgs(text string) []string {
	parts, err := argSplitter.Split(strings.TrimSpace(text))
	if err != nil {
		return strings.Fields(text)
	}
	args := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = trimQuotes(p)
		if p != "" {
			args = append(args, p)
		}
	}
	return args
}

func trimQuotes(s string) string {
	for _, q := range [][2]string{{`"`, `"`}, {"“", "”"}} {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
		}
	}
	return s
}
