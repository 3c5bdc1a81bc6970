package markup

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// markupLexer splits text into tag spans and literal runs in one scan.
// A tag never crosses a line; a '<' that does not open a tag is literal.
var (
	markupLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Tag", Pattern: `<[^>\n]*>`},
		{Name: "Text", Pattern: `[^<]+`},
		{Name: "Stray", Pattern: `<`},
	})

	tagTokenType = mustTokenType("Tag")
)

// Chunk is a run of literal text sharing one style. Tag is set on chunks
// opened by a recognized opening tag.
type Chunk struct {
	Tag   TagKind `json:"tag"`
	Style *Style  `json:"-"`
	Text  string  `json:"text"`
}

// Tag is a decoded tag body.
type Tag struct {
	Name    string
	Closing bool
	Params  []string
}

// ParseTag decodes the text between '<' and '>'.
func ParseTag(body string) Tag {
	var t Tag
	if strings.HasPrefix(body, "/") {
		t.Closing = true
		body = body[1:]
	}
	name, params, hasParams := strings.Cut(body, "=")
	t.Name = strings.TrimSpace(name)
	if hasParams {
		for _, p := range strings.Split(params, ",") {
			t.Params = append(t.Params, strings.TrimSpace(p))
		}
	}
	return t
}

// Parse converts markup into style chunks. There is always a leading chunk
// holding the text before the first tag and one trailing chunk after the last
// tag. Markup errors never fail: unknown tags disappear, mismatched closing
// tags keep the current style.
func Parse(text string, def *Style) []Chunk {
	lex, err := markupLexer.LexString("", text)
	if err != nil {
		return []Chunk{{Style: def, Text: text}}
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return []Chunk{{Style: def, Text: text}}
	}

	chunks := []Chunk{{Style: def}}
	var sb strings.Builder
	flush := func() {
		chunks[len(chunks)-1].Text = sb.String()
		sb.Reset()
	}
	last := def
	for _, tok := range tokens {
		if tok.EOF() {
			break
		}
		if tok.Type != tagTokenType {
			sb.WriteString(tok.Value)
			continue
		}
		flush()
		tag := ParseTag(tok.Value[1 : len(tok.Value)-1])
		kind, known := LookupTag(tag.Name)
		chunk := Chunk{Style: last}
		switch {
		case known && !tag.Closing:
			chunk.Tag = kind
			chunk.Style = newTagStyle(kind, tag.Params, last)
			if kind == TagIcon {
				// 图标标签自闭合：独占一个空文本块，随后恢复外层样式
				chunks = append(chunks, chunk)
				chunk = Chunk{Style: last}
			}
		case known && tag.Closing && last.Kind() == kind:
			chunk.Style = last.Parent()
		}
		chunks = append(chunks, chunk)
		last = chunk.Style
	}
	flush()
	return chunks
}

// PlainText concatenates the literal text of all chunks.
func PlainText(chunks []Chunk) string {
	var sb strings.Builder
	for _, c := range chunks {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

func mustTokenType(name string) lexer.TokenType {
	tt, ok := markupLexer.Symbols()[name]
	if !ok {
		panic("markup lexer missing token " + name)
	}
	return tt
}
