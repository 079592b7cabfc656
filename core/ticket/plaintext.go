package ticket

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MaxBodyTextLength caps the joined body text stored in search projections.
const MaxBodyTextLength = 65000

var stripPolicy = bluemonday.StrictPolicy()

// PlainText strips every HTML tag from s, unescapes entities and collapses
// whitespace.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	// keep words on either side of block tags apart
	s = strings.NewReplacer("<br", " <br", "</p>", "</p> ", "</div>", "</div> ").Replace(s)
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}
