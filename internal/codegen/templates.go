package codegen

import (
	"bytes"
	"embed"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/google/uuid"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("codegen").Funcs(template.FuncMap{
	"upperFirst": upperFirst,
	"lowerFirst": lowerFirst,
	"javaString": strconv.Quote,
	"javaValue":  javaValue,
	"xml":        xmlEscape,
}).ParseFS(templateFS, "templates/*.tmpl"))

// classData is the input of every Java template.
type classData struct {
	Def              *Definition
	Package          string
	Class            string
	SerialVersionUID string
	Props            []ConfigProperty
	CF               *ConnectionFactoryDefinition
	AO               *AdminObjectDefinition
}

// ConnType is the connection handle type of the current connection factory.
func (c classData) ConnType() string {
	if c.Def.CCI {
		return "javax.resource.cci.Connection"
	}
	return c.CF.ConnInterface
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to fill template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// serialVersionUID derives a stable Java long literal from the fully
// qualified class name.
func serialVersionUID(fqcn string) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fqcn))
	return strconv.FormatInt(int64(binary.BigEndian.Uint64(id[:8])), 10) + "L"
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// javaValue renders the default value of p as a Java expression of p.Type.
func javaValue(p ConfigProperty) string {
	switch p.Type {
	case "String":
		return strconv.Quote(p.Value)
	case "Character":
		r := []rune(p.Value)
		if len(r) == 0 {
			return "Character.valueOf(' ')"
		}
		return "Character.valueOf(" + strconv.QuoteRune(r[0]) + ")"
	case "Boolean":
		return "Boolean.valueOf(" + strconv.Quote(strings.ToLower(p.Value)) + ")"
	default:
		return p.Type + ".valueOf(" + strconv.Quote(p.Value) + ")"
	}
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// TidyWhitespace strips trailing blanks, collapses runs of empty lines and
// ends the file with exactly one newline.
func TidyWhitespace(f File) (File, error) {
	s := strings.ReplaceAll(string(f.Data), "\r\n", "\n")
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	s = strings.TrimLeft(s, "\n")
	s = strings.TrimRight(s, "\n") + "\n"
	f.Data = []byte(s)
	return f, nil
}
