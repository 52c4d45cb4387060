package unattend

import (
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/thoreinstein/unattend/internal/errors"
	"github.com/thoreinstein/unattend/pkg/fileutil"
)

var (
	utf8BOM     = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM  = []byte{0xFF, 0xFE}
	utf16BEBOM  = []byte{0xFE, 0xFF}
	encodingRE  = regexp.MustCompile(`^\s*<\?xml[^>]*?encoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)
	errNoRoot   = errors.New("no root element found")
	errTwoRoots = errors.New("multiple root elements")
)

// Load reads and parses the answer file at path.
// Read failures are marked with ErrUnreadable; malformed XML yields a *ParseError.
func Load(path string) (*Document, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "reading %s", path), ErrUnreadable)
	}
	return ParseBytes(data, path)
}

// Parse reads the whole of r and parses it as an answer file.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading answer file"), ErrUnreadable)
	}
	return ParseBytes(data, "")
}

// ParseBytes strictly parses data. The path is used for error context only.
func ParseBytes(data []byte, path string) (*Document, error) {
	data, err := toUTF8(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	b := &builder{lines: newLineIndex(data)}
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	// Content is already UTF-8; the declaration may still name the original charset.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, syntaxError(path, err, b.lines.line(dec.InputOffset()))
		}
		if err := b.add(tok, b.lines.line(offset)); err != nil {
			return nil, &ParseError{Path: path, Line: b.lines.line(offset), Err: err}
		}
	}

	if b.root == nil {
		return nil, &ParseError{Path: path, Err: errNoRoot}
	}

	return &Document{Path: path, Root: b.root}, nil
}

func syntaxError(path string, err error, fallbackLine int) *ParseError {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{Path: path, Line: se.Line, Err: errors.New(se.Msg)}
	}
	return &ParseError{Path: path, Line: fallbackLine, Err: err}
}

// builder assembles the element tree from decoder tokens.
type builder struct {
	root  *Element
	stack []*Element
	lines lineIndex
}

func (b *builder) add(tok xml.Token, line int) error {
	switch t := tok.(type) {
	case xml.StartElement:
		el := &Element{
			Name:  t.Name.Local,
			Space: t.Name.Space,
			Line:  line,
		}
		for _, a := range t.Attr {
			if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
				continue
			}
			el.Attrs = append(el.Attrs, Attr{Space: a.Name.Space, Name: a.Name.Local, Value: a.Value})
		}
		if len(b.stack) == 0 {
			if b.root != nil {
				return errTwoRoots
			}
			b.root = el
		} else {
			parent := b.stack[len(b.stack)-1]
			parent.Children = append(parent.Children, el)
		}
		b.stack = append(b.stack, el)
	case xml.EndElement:
		b.stack = b.stack[:len(b.stack)-1]
	case xml.CharData:
		if len(b.stack) == 0 {
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.New("character data outside root element")
			}
			return nil
		}
		b.stack[len(b.stack)-1].text.Write(t)
	}
	return nil
}

// toUTF8 normalises the input encoding. UTF-16 is detected by BOM, other
// charsets by the XML declaration.
func toUTF8(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return nil, errors.Wrap(err, "decoding UTF-16")
		}
		return out, nil
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	m := encodingRE.FindSubmatch(data)
	if m == nil {
		return data, nil
	}
	label := strings.ToLower(string(m[1]))
	if label == "utf-8" || label == "utf8" || label == "us-ascii" {
		return data, nil
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, errors.Newf("unsupported encoding %q", label)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", label)
	}
	return out, nil
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(data []byte) lineIndex {
	idx := lineIndex{}
	for i, c := range data {
		if c == '\n' {
			idx = append(idx, i)
		}
	}
	return idx
}

func (l lineIndex) line(offset int64) int {
	return sort.Search(len(l), func(i int) bool { return int64(l[i]) >= offset }) + 1
}
