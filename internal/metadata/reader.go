package metadata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/vvka-141/jcagen/pkg/jcagen"
)

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// reader wraps an xml.Decoder with the typed, expression-aware value readers
// shared by every element parser.
type reader struct {
	dec    *xml.Decoder
	path   string
	lookup Lookup
	logger jcagen.Logger
}

func newReader(r io.Reader, path string, lookup Lookup, logger jcagen.Logger) *reader {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return &reader{dec: dec, path: path, lookup: lookup, logger: logger}
}

func (r *reader) errorf(kind error, element, format string, args ...interface{}) *ParseError {
	line, col := r.dec.InputPos()
	return &ParseError{
		Kind:     kind,
		FilePath: r.path,
		Line:     line,
		Column:   col,
		Element:  element,
		Message:  fmt.Sprintf(format, args...),
	}
}

// located fills in the document position of validation errors raised while
// assembling an element.
func (r *reader) located(err error) error {
	if err == nil {
		return nil
	}
	var verr *ValidateError
	if errors.As(err, &verr) && verr.FilePath == "" {
		verr.FilePath = r.path
		verr.Line, _ = r.dec.InputPos()
	}
	return err
}

func (r *reader) token() (xml.Token, error) {
	tok, err := r.dec.Token()
	if err == io.EOF {
		return nil, r.errorf(ErrUnexpectedEOF, "", "unexpected end of document")
	}
	if err != nil {
		return nil, wrapXMLError(err, r.path)
	}
	return tok, nil
}

// nextTag returns the next start or end element, skipping whitespace,
// comments, processing instructions and directives.
func (r *reader) nextTag() (xml.Token, error) {
	for {
		tok, err := r.token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement, xml.EndElement:
			return t, nil
		case xml.CharData:
			if text := bytes.TrimSpace(t); len(text) > 0 {
				return nil, r.errorf(ErrUnexpectedText, "", "unexpected text %q", string(text))
			}
		}
	}
}

// rootElement skips the prolog and returns the document element.
func (r *reader) rootElement() (xml.StartElement, error) {
	tok, err := r.nextTag()
	if err != nil {
		return xml.StartElement{}, err
	}
	start, ok := tok.(xml.StartElement)
	if !ok {
		return xml.StartElement{}, r.unexpectedEnd(tok.(xml.EndElement))
	}
	return start, nil
}

// expectEOF fails if anything but whitespace or comments follows the
// document element.
func (r *reader) expectEOF() error {
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return wrapXMLError(err, r.path)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return r.unexpectedElement(t)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return r.errorf(ErrUnexpectedText, "", "unexpected text after document element")
			}
		}
	}
}

func (r *reader) unexpectedElement(start xml.StartElement) *ParseError {
	return r.errorf(ErrUnexpectedElement, start.Name.Local, "unexpected element <%s>", start.Name.Local)
}

func (r *reader) unexpectedEnd(end xml.EndElement) *ParseError {
	return r.errorf(ErrUnexpectedEndTag, end.Name.Local, "unexpected end tag </%s>", end.Name.Local)
}

func (r *reader) missing(element, what string) *ParseError {
	return r.errorf(ErrMissingRequired, element, "missing required %s", what)
}

// elementText reads the character data of start up to its end tag. Nested
// elements are not allowed.
func (r *reader) elementText(start xml.StartElement) (string, error) {
	var b strings.Builder
	for {
		tok, err := r.token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			return "", r.unexpectedElement(t)
		case xml.EndElement:
			return strings.TrimSpace(b.String()), nil
		}
	}
}

// resolve applies expression substitution to raw. When raw contains "${" it
// is recorded in exprs under key.
func (r *reader) resolve(raw, key string, exprs map[string]string) string {
	if !strings.Contains(raw, "${") {
		return raw
	}
	if key != "" && exprs != nil {
		exprs[key] = raw
	}
	t := ParseTemplate(raw, r.lookup)
	if t.IsMalformed() {
		line, _ := r.dec.InputPos()
		r.logger.Warn("%s:%d: malformed expression %q kept literal", r.displayPath(), line, raw)
		return raw
	}
	return t.Value()
}

func (r *reader) displayPath() string {
	if r.path == "" {
		return "<input>"
	}
	return r.path
}

func (r *reader) elementAsString(start xml.StartElement, key string, exprs map[string]string) (string, error) {
	text, err := r.elementText(start)
	if err != nil {
		return "", err
	}
	return r.resolve(text, key, exprs), nil
}

// elementAsBool treats an empty element as true.
func (r *reader) elementAsBool(start xml.StartElement, key string, exprs map[string]string) (bool, error) {
	text, err := r.elementAsString(start, key, exprs)
	if err != nil {
		return false, err
	}
	b, ok := parseBool(text, true)
	if !ok {
		return false, r.errorf(ErrInvalidValue, start.Name.Local,
			"invalid boolean %q in element <%s>", text, start.Name.Local)
	}
	return b, nil
}

func (r *reader) elementAsInt(start xml.StartElement, key string, exprs map[string]string) (int, error) {
	text, err := r.elementAsString(start, key, exprs)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, r.errorf(ErrInvalidValue, start.Name.Local,
			"invalid integer %q in element <%s>", text, start.Name.Local)
	}
	return n, nil
}

func (r *reader) elementAsLong(start xml.StartElement, key string, exprs map[string]string) (int64, error) {
	text, err := r.elementAsString(start, key, exprs)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, r.errorf(ErrInvalidValue, start.Name.Local,
			"invalid long %q in element <%s>", text, start.Name.Local)
	}
	return n, nil
}

func (r *reader) elementAsFlushStrategy(start xml.StartElement, key string, exprs map[string]string) (FlushStrategy, error) {
	text, err := r.elementAsString(start, key, exprs)
	if err != nil {
		return FlushUnknown, err
	}
	fs, err := ParseFlushStrategy(text)
	if err != nil {
		pe := r.errorf(ErrInvalidValue, start.Name.Local, "%v", err)
		pe.Hint = "Valid values: " + strings.Join(FlushStrategyNames(), ", ")
		return FlushUnknown, pe
	}
	return fs, nil
}

func (r *reader) elementAsTransactionSupport(start xml.StartElement, key string, exprs map[string]string) (TransactionSupport, error) {
	text, err := r.elementAsString(start, key, exprs)
	if err != nil {
		return TxUnset, err
	}
	ts, err := ParseTransactionSupport(text)
	if err != nil {
		return TxUnset, r.errorf(ErrInvalidValue, start.Name.Local, "%v", err)
	}
	return ts, nil
}

func (r *reader) elementAsIntPtr(start xml.StartElement, exprs map[string]string) (*int, error) {
	n, err := r.elementAsInt(start, start.Name.Local, exprs)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *reader) elementAsLongPtr(start xml.StartElement, exprs map[string]string) (*int64, error) {
	n, err := r.elementAsLong(start, start.Name.Local, exprs)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *reader) elementAsBoolPtr(start xml.StartElement, exprs map[string]string) (*bool, error) {
	b, err := r.elementAsBool(start, start.Name.Local, exprs)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// checkAttributes fails on any attribute outside allowed. Namespace
// declarations and xsi attributes are always accepted.
func (r *reader) checkAttributes(start xml.StartElement, allowed ...string) error {
	for _, attr := range start.Attr {
		if isNamespaceAttr(attr) {
			continue
		}
		known := false
		for _, name := range allowed {
			if attr.Name.Local == name {
				known = true
				break
			}
		}
		if !known {
			return r.errorf(ErrUnexpectedAttribute, start.Name.Local,
				"unexpected attribute %q on <%s>", attr.Name.Local, start.Name.Local)
		}
	}
	return nil
}

func isNamespaceAttr(attr xml.Attr) bool {
	return attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" || attr.Name.Space == xsiNamespace
}

func findAttr(start xml.StartElement, name string) (string, bool) {
	for _, attr := range start.Attr {
		if attr.Name.Local == name && !isNamespaceAttr(attr) {
			return attr.Value, true
		}
	}
	return "", false
}

// attrAsString returns the trimmed, resolved attribute value. The key used
// for recording expressions is the attribute name.
func (r *reader) attrAsString(start xml.StartElement, name string, exprs map[string]string) (string, bool) {
	v, ok := findAttr(start, name)
	if !ok {
		return "", false
	}
	return r.resolve(strings.TrimSpace(v), name, exprs), true
}

// attrAsBool returns nil when the attribute is absent or empty.
func (r *reader) attrAsBool(start xml.StartElement, name string, exprs map[string]string) (*bool, error) {
	v, ok := r.attrAsString(start, name, exprs)
	if !ok || v == "" {
		return nil, nil
	}
	b, ok := parseBool(v, false)
	if !ok {
		return nil, r.errorf(ErrInvalidValue, start.Name.Local,
			"invalid boolean %q in attribute %s of <%s>", v, name, start.Name.Local)
	}
	return &b, nil
}

func parseBool(s string, emptyValue bool) (bool, bool) {
	switch {
	case s == "":
		return emptyValue, true
	case strings.EqualFold(s, "true"):
		return true, true
	case strings.EqualFold(s, "false"):
		return false, true
	}
	return false, false
}
