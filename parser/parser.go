// Package parser builds the AST from a token stream, following the
// two-token-lookahead recursive-descent shape of the metamodel DSL parser
// this repository is descended from: one parse function per grammar
// production, explicit error returns carrying position, no panics.
package parser

import (
	"github.com/zenithlang/zenith/ast"
	"github.com/zenithlang/zenith/diagnostics"
	"github.com/zenithlang/zenith/lexer"
	"github.com/zenithlang/zenith/point"
)

// DefaultMaxDepth and DefaultMaxTokens are the resource-limit defaults: a
// corpus nesting deeper than DefaultMaxDepth targets, or tokenizing to more
// than DefaultMaxTokens tokens, aborts with a ResourceLimit diagnostic.
const (
	DefaultMaxDepth  = 64
	DefaultMaxTokens = 1 << 20
)

// Limits bounds parser resource consumption: maximum AST nesting depth and
// maximum token count for a single source text.
type Limits struct {
	MaxDepth  int
	MaxTokens int
}

// DefaultLimits returns the resource policy's documented defaults.
func DefaultLimits() Limits {
	return Limits{MaxDepth: DefaultMaxDepth, MaxTokens: DefaultMaxTokens}
}

// Parser consumes a token stream and builds an *ast.Corpus.
type Parser struct {
	tokens []lexer.Token
	pos    int
	cur    lexer.Token
	peek   lexer.Token
	limits Limits
	depth  int
}

// New tokenizes input and prepares a Parser with the default resource
// limits. Use NewWithLimits to override them.
func New(input string) (*Parser, error) {
	return NewWithLimits(input, DefaultLimits())
}

// NewWithLimits tokenizes input under explicit resource limits.
func NewWithLimits(input string, limits Limits) (*Parser, error) {
	toks, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	if limits.MaxTokens > 0 && len(toks) > limits.MaxTokens {
		return nil, diagnostics.New(diagnostics.ResourceLimit, diagnostics.Span{},
			"token count %d exceeds limit %d", len(toks), limits.MaxTokens)
	}
	p := &Parser{tokens: toks, limits: limits}
	p.cur = p.tokens[0]
	if len(p.tokens) > 1 {
		p.peek = p.tokens[1]
	}
	return p, nil
}

func (p *Parser) advance() {
	p.pos++
	p.cur = p.peek
	if p.pos+1 < len(p.tokens) {
		p.peek = p.tokens[p.pos+1]
	} else {
		p.peek = lexer.Token{Kind: lexer.EOF}
	}
}

func (p *Parser) span() diagnostics.Span {
	return diagnostics.Span{Line: p.cur.Line, Column: p.cur.Column}
}

func (p *Parser) syntaxErrorf(format string, args ...any) error {
	return diagnostics.New(diagnostics.SyntaxError, p.span(), format, args...)
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	if p.cur.Kind != kind {
		return lexer.Token{}, p.syntaxErrorf("expected %v, got %v %q", kind, p.cur.Kind, p.cur.Lexeme)
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

func (p *Parser) expectKeyword(lexeme string) error {
	if p.cur.Kind != lexer.Keyword || p.cur.Lexeme != lexeme {
		return p.syntaxErrorf("expected keyword %q, got %v %q", lexeme, p.cur.Kind, p.cur.Lexeme)
	}
	p.advance()
	return nil
}

func (p *Parser) expectIdentifier() (string, error) {
	tok, err := p.expect(lexer.Identifier)
	if err != nil {
		return "", err
	}
	return tok.Lexeme, nil
}

func (p *Parser) expectString() (string, error) {
	tok, err := p.expect(lexer.String)
	if err != nil {
		return "", err
	}
	return tok.Lexeme, nil
}

func (p *Parser) expectPoint() (int64, error) {
	switch p.cur.Kind {
	case lexer.Number, lexer.DottedNumber:
		v, err := point.ToMinutes(p.cur.Lexeme)
		if err != nil {
			return 0, diagnostics.New(diagnostics.SyntaxError, p.span(), "%v", err)
		}
		p.advance()
		return v, nil
	default:
		return 0, p.syntaxErrorf("expected point literal, got %v %q", p.cur.Kind, p.cur.Lexeme)
	}
}

// Parse tokenizes and parses a full corpus from source text using the
// default resource limits.
func Parse(input string) (*ast.Corpus, error) {
	p, err := New(input)
	if err != nil {
		return nil, err
	}
	return p.ParseCorpus()
}

// ParseCorpus parses a sequence of top-level law and target declarations.
func (p *Parser) ParseCorpus() (*ast.Corpus, error) {
	corpus := &ast.Corpus{}
	for p.cur.Kind != lexer.EOF {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		corpus.Roots = append(corpus.Roots, node)
	}
	return corpus, nil
}

func (p *Parser) parseNode() (ast.Node, error) {
	if p.depth > p.limits.MaxDepth {
		return nil, diagnostics.New(diagnostics.ResourceLimit, p.span(),
			"AST depth exceeds limit %d", p.limits.MaxDepth)
	}
	switch {
	case p.cur.Kind == lexer.Keyword && p.cur.Lexeme == "law":
		return p.parseLaw()
	case p.cur.Kind == lexer.Keyword && p.cur.Lexeme == "target":
		return p.parseTarget()
	default:
		return nil, p.syntaxErrorf("expected 'law' or 'target', got %v %q", p.cur.Kind, p.cur.Lexeme)
	}
}

func (p *Parser) parseLaw() (*ast.Law, error) {
	span := p.span()
	if err := p.expectKeyword("law"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}

	law := &ast.Law{Name: name, Span: ast.Span{Line: span.Line, Column: span.Column}, EventIndex: map[string]int{}}

	if err := p.expectKeyword("start_date"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	dateTok, err := p.expect(lexer.Date)
	if err != nil {
		return nil, err
	}
	law.StartDate = dateTok.Lexeme
	if err := p.expectKeyword("at"); err != nil {
		return nil, err
	}
	timeTok, err := p.expect(lexer.Time)
	if err != nil {
		return nil, err
	}
	law.StartTime = timeTok.Lexeme

	if err := p.expectKeyword("period"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	period, err := p.expectPoint()
	if err != nil {
		return nil, err
	}
	law.PeriodMin = period

	if err := p.expectKeyword("Event"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.Identifier {
		decl, err := p.parseEventDecl()
		if err != nil {
			return nil, err
		}
		law.EventIndex[decl.Name] = len(law.Events)
		law.Events = append(law.Events, decl)
	}

	if err := p.expectKeyword("GROUP"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	term, err := p.parseGroupTerm()
	if err != nil {
		return nil, err
	}
	law.Group = append(law.Group, term)
	for p.cur.Kind == lexer.Dash {
		p.advance()
		term, err := p.parseGroupTerm()
		if err != nil {
			return nil, err
		}
		law.Group = append(law.Group, term)
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}

	if err := p.expectKeyword("end_law"); err != nil {
		return nil, err
	}
	return law, nil
}

func (p *Parser) parseEventDecl() (ast.EventDecl, error) {
	span := p.span()
	name, err := p.expectIdentifier()
	if err != nil {
		return ast.EventDecl{}, err
	}
	decl := ast.EventDecl{Name: name, Span: ast.Span{Line: span.Line, Column: span.Column}}
	if p.cur.Kind == lexer.LBracket {
		p.advance()
		tag, err := p.expectIdentifier()
		if err != nil {
			return ast.EventDecl{}, err
		}
		decl.Tag = tag
		if _, err := p.expect(lexer.RBracket); err != nil {
			return ast.EventDecl{}, err
		}
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return ast.EventDecl{}, err
	}
	desc, err := p.expectString()
	if err != nil {
		return ast.EventDecl{}, err
	}
	decl.Description = desc
	return decl, nil
}

func (p *Parser) parseGroupTerm() (ast.GroupTerm, error) {
	span := p.span()
	ref, err := p.expectIdentifier()
	if err != nil {
		return ast.GroupTerm{}, err
	}
	coherence, err := p.expectPoint()
	if err != nil {
		return ast.GroupTerm{}, err
	}
	if _, err := p.expect(lexer.Caret); err != nil {
		return ast.GroupTerm{}, err
	}
	dispersal, err := p.expectPoint()
	if err != nil {
		return ast.GroupTerm{}, err
	}
	return ast.GroupTerm{
		EventRef:     ref,
		CoherenceMin: coherence,
		DispersalMin: dispersal,
		Span:         ast.Span{Line: span.Line, Column: span.Column},
	}, nil
}

func (p *Parser) parseTarget() (*ast.Target, error) {
	span := p.span()
	if err := p.expectKeyword("target"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}

	target := &ast.Target{Name: name, Span: ast.Span{Line: span.Line, Column: span.Column}}

	if err := p.expectKeyword("key"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	key, err := p.expectString()
	if err != nil {
		return nil, err
	}
	target.Key = key

	if err := p.expectKeyword("dictionnary"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.Identifier {
		entry, err := p.parseDictEntry()
		if err != nil {
			return nil, err
		}
		target.Dictionary = append(target.Dictionary, entry)
	}

	p.depth++
	for p.cur.Kind == lexer.Keyword && (p.cur.Lexeme == "law" || p.cur.Lexeme == "target") {
		child, err := p.parseNode()
		if err != nil {
			p.depth--
			return nil, err
		}
		if t, ok := child.(*ast.Target); ok {
			t.Parent = target.Name
		}
		target.Children = append(target.Children, child)
	}
	p.depth--

	if err := p.expectKeyword("end_target"); err != nil {
		return nil, err
	}
	return target, nil
}

func (p *Parser) parseDictEntry() (ast.DictEntry, error) {
	span := p.span()
	key, err := p.expectIdentifier()
	if err != nil {
		return ast.DictEntry{}, err
	}
	entry := ast.DictEntry{LocalKey: key, Span: ast.Span{Line: span.Line, Column: span.Column}}
	if p.cur.Kind == lexer.LBracket {
		p.advance()
		parentRef, err := p.expectIdentifier()
		if err != nil {
			return ast.DictEntry{}, err
		}
		entry.ParentRef = parentRef
		if _, err := p.expect(lexer.RBracket); err != nil {
			return ast.DictEntry{}, err
		}
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return ast.DictEntry{}, err
	}
	desc, err := p.expectString()
	if err != nil {
		return ast.DictEntry{}, err
	}
	entry.Description = desc
	return entry, nil
}
