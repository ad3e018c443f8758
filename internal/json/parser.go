package json

import "github.com/mabhi256/havbench/internal/diag"

// Parser consumes tokens lazily from a Tokenizer and produces a
// JsonElement tree. It never throws: every failure is returned as a
// diag.Error, each frame adding a location-bearing wrapper so the
// final chain reads like a stack trace.
type Parser struct {
	view ByteView
	loc  Location
}

// NewParser starts a parse at the beginning of view.
func NewParser(view ByteView) *Parser {
	return &Parser{view: view, loc: StartLocation()}
}

// Parse parses one element from the beginning of view and returns it
// as the root. Bytes after the root element are not examined.
func Parse(view ByteView) diag.Result[*Element] {
	p := NewParser(view)
	root, err := p.parseElement("", false, p.loc)
	if err != nil {
		return diag.Fail[*Element](err)
	}
	return diag.Ok(root)
}

func (p *Parser) peek() (Token, *diag.Error) {
	tok, _, err := NextToken(p.view, p.loc)
	return tok, err
}

func (p *Parser) advance() (Token, *diag.Error) {
	tok, next, err := NextToken(p.view, p.loc)
	if err != nil {
		return Token{}, err
	}
	p.loc = next
	return tok, nil
}

func (p *Parser) parseElement(label string, hasLabel bool, loc Location) (*Element, *diag.Error) {
	tok, err := p.peek()
	if err != nil {
		return nil, wrapElementError(label, hasLabel, loc, err)
	}
	loc = tok.Start

	switch tok.Kind {
	case OpenObject:
		p.advance()
		el, err := p.parseList(label, hasLabel, loc, Object, CloseObject, true)
		if err != nil {
			return nil, wrapElementError(label, hasLabel, loc, err)
		}
		return el, nil

	case OpenArray:
		p.advance()
		el, err := p.parseList(label, hasLabel, loc, Array, CloseArray, false)
		if err != nil {
			return nil, wrapElementError(label, hasLabel, loc, err)
		}
		return el, nil

	case StringLiteral:
		p.advance()
		return &Element{Kind: String, Location: loc, Label: label, HasLabel: hasLabel, StringValue: tok.Str}, nil

	case IntegerLiteral, DecimalLiteral:
		p.advance()
		return &Element{Kind: Number, Location: loc, Label: label, HasLabel: hasLabel, NumberValue: tok.Number}, nil

	case TrueLiteral:
		p.advance()
		return &Element{Kind: Boolean, Location: loc, Label: label, HasLabel: hasLabel, BooleanValue: true}, nil

	case FalseLiteral:
		p.advance()
		return &Element{Kind: Boolean, Location: loc, Label: label, HasLabel: hasLabel, BooleanValue: false}, nil

	case NullLiteral:
		p.advance()
		return &Element{Kind: Null, Location: loc, Label: label, HasLabel: hasLabel}, nil

	default:
		return nil, wrapElementError(label, hasLabel, loc, diag.Newf("Unexpected token %s at location %s", tok.Kind, tok.Start))
	}
}

// parseList implements the single routine that handles both object
// and array bodies (spec §4.D). The opening brace/bracket has already
// been consumed by the caller; start is its location.
func (p *Parser) parseList(label string, hasLabel bool, start Location, kind ElementKind, endTok TokenKind, requireKeys bool) (*Element, *diag.Error) {
	var children []*Element
	first := true

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, wrapListError(label, hasLabel, start, err)
		}

		if tok.Kind == endTok && first {
			p.advance()
			return &Element{Kind: kind, Location: start, Label: label, HasLabel: hasLabel, Children: children}, nil
		}
		first = false

		childLabel := ""
		hasChildLabel := false

		if requireKeys {
			keyTok, err := p.advance()
			if err != nil {
				return nil, wrapListError(label, hasLabel, start, err)
			}
			if keyTok.Kind != StringLiteral {
				return nil, wrapListError(label, hasLabel, start, diag.Newf("Expected a string key, found %s at location %s", keyTok.Kind, keyTok.Start))
			}
			childLabel = keyTok.Str
			hasChildLabel = true

			assignTok, err := p.advance()
			if err != nil {
				return nil, wrapListError(label, hasLabel, start, err)
			}
			if assignTok.Kind != Assign {
				return nil, wrapListError(label, hasLabel, start, diag.Newf("Expected ':' after key '%s' at location %s", childLabel, assignTok.Start))
			}
		}

		elemLoc := p.loc
		child, err := p.parseElement(childLabel, hasChildLabel, elemLoc)
		if err != nil {
			return nil, wrapListError(label, hasLabel, start, err)
		}
		children = append(children, child)

		sep, err := p.advance()
		if err != nil {
			return nil, wrapListError(label, hasLabel, start, err)
		}
		switch sep.Kind {
		case endTok:
			return &Element{Kind: kind, Location: start, Label: label, HasLabel: hasLabel, Children: children}, nil
		case Separator:
			continue
		default:
			return nil, wrapListError(label, hasLabel, start, diag.Newf("Unexpected list token %s at location %s", sep.Kind, sep.Start))
		}
	}
}

func wrapListError(label string, hasLabel bool, loc Location, err *diag.Error) *diag.Error {
	name := "list"
	if hasLabel {
		name = "list '" + label + "'"
	}
	return diag.Wrapf(err, "Failed parsing %s at location %s", name, loc)
}

func wrapElementError(label string, hasLabel bool, loc Location, err *diag.Error) *diag.Error {
	name := "element"
	if hasLabel {
		name = "child element '" + label + "'"
	}
	return diag.Wrapf(err, "Failed parsing %s at location %s", name, loc)
}
