package mdhtml

// Kind identifies the variant of a Token.
type Kind uint8

const (
	KindNewline Kind = iota
	KindIndentedCode
	KindFencedCode
	KindHeading
	KindThematicBreak
	KindBlockquote
	KindList
	KindHTMLBlock
	KindLinkDefinition
	KindTable
	KindParagraph
	KindText
	KindLink
	KindImage
	KindRefLink
	KindStrong
	KindEmphasis
	KindStrongEmphasis
	KindCodeSpan
	KindEscape
	// KindNone is the merge sentinel: its payload belongs to the previous token.
	KindNone
)

var kindNames = [...]string{
	KindNewline:        "newline",
	KindIndentedCode:   "indented-code",
	KindFencedCode:     "fenced-code",
	KindHeading:        "heading",
	KindThematicBreak:  "thematic-break",
	KindBlockquote:     "blockquote",
	KindList:           "list",
	KindHTMLBlock:      "html-block",
	KindLinkDefinition: "link-definition",
	KindTable:          "table",
	KindParagraph:      "paragraph",
	KindText:           "plain-text",
	KindLink:           "link",
	KindImage:          "image",
	KindRefLink:        "reference-link",
	KindStrong:         "strong",
	KindEmphasis:       "em",
	KindStrongEmphasis: "strong-emphasis",
	KindCodeSpan:       "code-span",
	KindEscape:         "escape",
	KindNone:           "none",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is one node of the lexed document tree.
//
// Raw is the exact source consumed to produce the token; the Raw values of
// siblings concatenate to the slice of source they were parsed from. Text is
// the payload: inner content awaiting further parsing for structural tokens,
// displayable text for leaves. Kind-specific data lives in Attrs.
type Token struct {
	Kind     Kind
	Raw      string
	Text     string
	Children []*Token
	Attrs    Attrs
}

// Attrs carries the fields that only some kinds need.
type Attrs interface {
	attrs()
}

// CodeAttrs belongs to fenced and indented code blocks.
type CodeAttrs struct {
	Language string
}

// HeadingAttrs belongs to ATX and setext headings.
type HeadingAttrs struct {
	Depth int
}

// ListAttrs belongs to lists.
type ListAttrs struct {
	// Bullet is the marker character for unordered lists and the first
	// ordinal as written for ordered lists.
	Bullet  string
	Ordered bool
	Start   int
	Items   []*ListItem
}

// LinkAttrs belongs to links, images and reference links. Label is the
// reference label as written, empty for inline links.
type LinkAttrs struct {
	Href  string
	Label string
}

// QuoteAttrs belongs to blockquotes and holds the link definitions found
// inside the quote.
type QuoteAttrs struct {
	Links *LinkTable
}

func (*CodeAttrs) attrs()    {}
func (*HeadingAttrs) attrs() {}
func (*ListAttrs) attrs()    {}
func (*LinkAttrs) attrs()    {}
func (*QuoteAttrs) attrs()   {}

// ListItem is one entry of a list. Raw is the item content with the marker
// and continuation indentation removed.
type ListItem struct {
	Raw      string
	Children []*Token
	Links    *LinkTable
}

// Code returns the code attributes, or nil when t is not a code block.
func (t *Token) Code() *CodeAttrs {
	a, _ := t.Attrs.(*CodeAttrs)
	return a
}

// Heading returns the heading attributes, or nil when t is not a heading.
func (t *Token) Heading() *HeadingAttrs {
	a, _ := t.Attrs.(*HeadingAttrs)
	return a
}

// List returns the list attributes, or nil when t is not a list.
func (t *Token) List() *ListAttrs {
	a, _ := t.Attrs.(*ListAttrs)
	return a
}

// Link returns the link attributes, or nil when t is not link-like.
func (t *Token) Link() *LinkAttrs {
	a, _ := t.Attrs.(*LinkAttrs)
	return a
}

func (t *Token) quote() *QuoteAttrs {
	a, _ := t.Attrs.(*QuoteAttrs)
	return a
}

func (t *Token) isLeafText() bool {
	return t.Kind == KindText && len(t.Children) == 0
}
