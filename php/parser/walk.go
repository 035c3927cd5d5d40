package parser

// WalkFunc is called for every node in document order with the phrases
// enclosing it, outermost first. The ancestors slice is reused between
// calls and must be copied if retained. Returning false skips the node's
// children.
type WalkFunc func(n Node, ancestors []*Phrase) bool

// Walk traverses the tree rooted at root depth first. Skipped tokens inside
// a ParseError are visited as its children.
func Walk(root Node, fn WalkFunc) {
	var ancestors []*Phrase
	walk(root, &ancestors, fn)
}

func walk(n Node, ancestors *[]*Phrase, fn WalkFunc) {
	if !fn(n, *ancestors) {
		return
	}
	switch n := n.(type) {
	case *Phrase:
		*ancestors = append(*ancestors, n)
		for _, child := range n.Children {
			walk(child, ancestors, fn)
		}
		*ancestors = (*ancestors)[:len(*ancestors)-1]
	case *ParseError:
		for _, t := range n.Skipped {
			fn(t, *ancestors)
		}
	}
}

// Tokens returns every token in the tree in source order, trivia and
// skipped tokens included.
func Tokens(root Node) []*Token {
	var tokens []*Token
	Walk(root, func(n Node, _ []*Phrase) bool {
		if t, ok := n.(*Token); ok {
			tokens = append(tokens, t)
		}
		return true
	})
	return tokens
}

func Errors(root Node) []*ParseError {
	var errs []*ParseError
	Walk(root, func(n Node, _ []*Phrase) bool {
		if e, ok := n.(*ParseError); ok {
			errs = append(errs, e)
		}
		return true
	})
	return errs
}

// NodeAt returns the innermost token or error whose span contains offset,
// preferring the token that starts at offset over one that ends there, and
// the chain of phrases enclosing it. It returns nil if the offset lies
// outside the tree.
func NodeAt(root Node, offset int) (Node, []*Phrase) {
	var found Node
	var path []*Phrase
	Walk(root, func(n Node, ancestors []*Phrase) bool {
		span, ok := SpanOf(n)
		if !ok || !span.Contains(offset) {
			return false
		}
		switch n.(type) {
		case *Token, *ParseError:
			if found != nil {
				if prev, _ := SpanOf(found); prev.End == offset && span.Start == offset {
					found, path = n, append([]*Phrase(nil), ancestors...)
				}
				return false
			}
			found, path = n, append([]*Phrase(nil), ancestors...)
		}
		return true
	})
	return found, path
}
