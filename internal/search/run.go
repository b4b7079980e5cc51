package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentic-research/keysearch/internal/tree"
)

// Messages shown in place of results.
const (
	MsgEmptyKeyword = "please enter a keyword"
	MsgNoMatches    = "no matches found"
	MsgSearching    = "searching..."
	errPrefix       = "search error: "
)

// Request is a user-triggered search, carrying raw inputs as typed.
type Request struct {
	Keyword string
	Depth   string
	Options Options // MaxDepth is overwritten from Depth
}

// Response is what a front end displays after a request.
type Response struct {
	Matches []Match
	// Text is either the newline-joined match lines or one of the Msg
	// sentinels / an error message.
	Text string
	Err  error
}

// Run validates a request, searches root and formats the outcome. A panic
// raised while walking the tree is converted into an error response.
func Run(root *tree.Node, req Request) (resp Response) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return Response{Text: MsgEmptyKeyword}
	}

	opts := req.Options
	opts.MaxDepth = ParseDepth(req.Depth)

	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			resp = Response{Text: errPrefix + err.Error(), Err: err}
		}
	}()

	matches := Search(root, keyword, opts)
	return Format(matches)
}

// Format renders matches the way Run does.
func Format(matches []Match) Response {
	if len(matches) == 0 {
		return Response{Text: MsgNoMatches}
	}
	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = m.String()
	}
	return Response{Matches: matches, Text: strings.Join(lines, "\n")}
}

// ErrorResponse wraps a failure that happened outside the traversal, such as
// loading or selecting the root.
func ErrorResponse(err error) Response {
	return Response{Text: errPrefix + err.Error(), Err: err}
}

// ParseDepth reads the leading integer of s, ignoring surrounding spaces and
// any trailing garbage ("12px" is 12). Empty, non-numeric and zero inputs
// fall back to DefaultMaxDepth. Negative values are returned as-is and make
// the search return nothing.
func ParseDepth(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return DefaultMaxDepth
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return DefaultMaxDepth
	}
	return n
}
