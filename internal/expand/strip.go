package expand

import (
	"fmt"
	"regexp"

	"glslx/internal/marked"
)

const (
	blockCommentPattern = `(?s)/\*.*?\*/`
	lineCommentPattern  = `//[^\n]*\n?`
	delBlockPattern     = `#\[del\][^#]*#`

	includePattern = `\s*(#(?:pragma)? ?include *[ <"](?P<filename>[^\n\r"<>]*)[>"\n\r]?)`
)

// DefaultCommentPatterns are the deletable regions: block comments, line
// comments with their newline, and #[del] ... # blocks.
var DefaultCommentPatterns = []string{blockCommentPattern, lineCommentPattern, delBlockPattern}

func compilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", expr, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// stripComments deletes every comment region of text in a single left to
// right scan: at each position the earliest match of any pattern wins (ties
// go to the pattern listed first) and scanning resumes after it. So "/*"
// inside a line comment never opens a block, and "//" inside a block
// comment never starts a line comment.
func (r *Resolver) stripComments(text string) (string, error) {
	doc := marked.New[int](text)
	// next[i] - ближайшее совпадение шаблона i не левее pos, nil - больше нет
	next := make([][]int, len(r.comments))
	for i, re := range r.comments {
		next[i] = re.FindStringIndex(text)
	}

	for pos := 0; pos <= len(text); {
		best := -1
		for i, re := range r.comments {
			if next[i] != nil && next[i][0] < pos {
				next[i] = findFrom(re, text, pos)
			}
			if next[i] != nil && (best < 0 || next[i][0] < next[best][0]) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		start, end := next[best][0], next[best][1]
		if end > start {
			if _, err := doc.SetMark(best, start, end); err != nil {
				return "", err
			}
		}
		// пустое совпадение не должно зациклить поиск
		pos = max(end, start+1)
	}

	for _, id := range doc.MarkIDs() {
		if err := doc.DeleteMarkAndContent(id); err != nil {
			return "", err
		}
	}
	return doc.Text(), nil
}

func findFrom(re *regexp.Regexp, text string, pos int) []int {
	if pos > len(text) {
		return nil
	}
	loc := re.FindStringIndex(text[pos:])
	if loc == nil {
		return nil
	}
	return []int{loc[0] + pos, loc[1] + pos}
}
