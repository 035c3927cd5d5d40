package parser

import "encoding/json"

type jsonPhrase struct {
	Kind     string `json:"kind"`
	Children []Node `json:"children,omitempty"`
}

type jsonToken struct {
	Kind   string   `json:"kind"`
	Offset int      `json:"offset"`
	Length int      `json:"length"`
	Modes  []string `json:"modes,omitempty"`
}

type jsonParseError struct {
	Error    string   `json:"error"`
	Offset   int      `json:"offset"`
	Expected []string `json:"expected,omitempty"`
	Skipped  []*Token `json:"skipped,omitempty"`
}

func (p *Phrase) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPhrase{
		Kind:     p.Kind.String(),
		Children: p.Children,
	})
}

func (t *Token) MarshalJSON() ([]byte, error) {
	jt := jsonToken{
		Kind:   t.Kind.String(),
		Offset: t.Offset,
		Length: t.Length,
	}
	for _, m := range t.Modes {
		jt.Modes = append(jt.Modes, m.String())
	}
	return json.Marshal(jt)
}

func (e *ParseError) MarshalJSON() ([]byte, error) {
	je := jsonParseError{
		Error:   e.Error(),
		Offset:  e.Offset,
		Skipped: e.Skipped,
	}
	for _, k := range e.Expected {
		je.Expected = append(je.Expected, k.String())
	}
	return json.Marshal(je)
}
