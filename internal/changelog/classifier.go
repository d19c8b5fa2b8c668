package changelog

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vvka-141/lqcheck/internal/files/filesystem"
	"github.com/vvka-141/lqcheck/pkg/lqcheck"
)

// Kind is the classification of a candidate file.
type Kind int

const (
	KindNotAChangelog Kind = iota
	KindChangelog
	KindParseError
)

func (k Kind) String() string {
	switch k {
	case KindNotAChangelog:
		return "not-a-changelog"
	case KindChangelog:
		return "changelog"
	case KindParseError:
		return "parse-error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the tagged result of Classify.
// Document is set for KindChangelog (and KindNotAChangelog, for diagnostics);
// Err is set only for KindParseError.
type Outcome struct {
	Kind     Kind
	Document *Document
	Err      error
}

// Classify parses content and decides whether it is a changelog document.
// path is used for error reporting only.
func Classify(content []byte, path string) Outcome {
	doc, err := Parse(content, path)
	if err != nil {
		return Outcome{Kind: KindParseError, Err: err}
	}
	if doc.RootName != lqcheck.RootElement {
		return Outcome{Kind: KindNotAChangelog, Document: doc}
	}
	return Outcome{Kind: KindChangelog, Document: doc}
}

// Parse reads a complete XML document, collecting the root's logicalFilePath
// and every changeSet below the root. The whole input is consumed so that
// errors after the interesting elements still fail the parse.
func Parse(content []byte, path string) (*Document, error) {
	decoder := newDecoder(content)

	var (
		doc        *Document
		stack      []xml.Name
		rootClosed bool
	)

	for {
		tok, err := decoder.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		line, _ := decoder.InputPos()
		if err != nil {
			return nil, newParseError(path, line, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, newParseError(path, line, fmt.Errorf("element <%s> after the root element", qualifiedName(t.Name)))
			}
			if doc == nil {
				doc = &Document{RootName: qualifiedName(t.Name)}
				doc.LogicalFilePath, doc.HasLogicalFilePath = attr(t.Attr, lqcheck.AttrLogicalFilePath)
			} else if qualifiedName(t.Name) == lqcheck.ChangeSetElement {
				doc.ChangeSets = append(doc.ChangeSets, newChangeSet(t, line))
			}
			stack = append(stack, t.Name)

		case xml.EndElement:
			if len(stack) == 0 || stack[len(stack)-1] != t.Name {
				return nil, newParseError(path, line, fmt.Errorf("unexpected end element </%s>", qualifiedName(t.Name)))
			}
			stack = stack[:len(stack)-1]
			rootClosed = len(stack) == 0

		case xml.CharData:
			if len(stack) == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, newParseError(path, line, errors.New("text outside the root element"))
			}
		}
	}

	line, _ := decoder.InputPos()
	if len(stack) > 0 {
		return nil, newParseError(path, line, fmt.Errorf("unexpected EOF: <%s> is not closed", qualifiedName(stack[len(stack)-1])))
	}
	if doc == nil {
		return nil, newParseError(path, line, errors.New("no root element"))
	}
	return doc, nil
}

// IsMigrationFolder reports whether the file at absolutePath lives in a
// versioned migration folder: its directory is named v* and that directory's
// parent contains initDb.xml.
func IsMigrationFolder(provider filesystem.FileSystemProvider, absolutePath string) bool {
	folder := filepath.Dir(absolutePath)
	if !filesystem.IsDir(provider, folder) {
		return false
	}

	marker := filepath.Join(filepath.Dir(folder), lqcheck.MigrationMarkerFileName)
	if !filesystem.Exists(provider, marker) {
		return false
	}

	return strings.HasPrefix(filepath.Base(folder), lqcheck.MigrationFolderPrefix)
}

func newChangeSet(t xml.StartElement, line int) ChangeSet {
	cs := ChangeSet{Line: line}
	cs.Author, _ = attr(t.Attr, lqcheck.AttrAuthor)
	cs.ID, _ = attr(t.Attr, lqcheck.AttrID)
	cs.Context, cs.HasContext = attr(t.Attr, lqcheck.AttrContext)
	return cs
}

// attr looks up an unprefixed attribute.
func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// qualifiedName renders a raw (untranslated) name as written in the document.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

var byteOrderMarks = [][]byte{
	{0xEF, 0xBB, 0xBF}, // UTF-8
	{0xFF, 0xFE},       // UTF-16LE
	{0xFE, 0xFF},       // UTF-16BE
}

// newDecoder returns a strict decoder for content. A byte order mark decides
// the encoding: the input is transcoded to UTF-8 without the mark, and the
// encoding declaration is then ignored.
func newDecoder(content []byte) *xml.Decoder {
	for _, bom := range byteOrderMarks {
		if bytes.HasPrefix(content, bom) {
			decoded := transform.NewReader(bytes.NewReader(content), unicode.BOMOverride(encoding.Nop.NewDecoder()))
			decoder := xml.NewDecoder(decoded)
			decoder.CharsetReader = alreadyUTF8
			return decoder
		}
	}

	decoder := xml.NewDecoder(bytes.NewReader(content))
	decoder.CharsetReader = charsetReader
	return decoder
}

func alreadyUTF8(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

// charsetReader decodes documents declaring a non-UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.EqualFold(label, "us-ascii") {
		return input, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
