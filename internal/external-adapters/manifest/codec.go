// Package manifest encodes and decodes the jar manifest text format.
package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
)

// Format constants
const (
	VersionAttribute = "Manifest-Version"
	Version          = "1.0"
	NameAttribute    = "Name"

	// MaxLineBytes is the longest line allowed, excluding the line break
	MaxLineBytes = 72

	lineBreak = "\r\n"
)

// ErrMalformed is wrapped by every decoding error
var ErrMalformed = errors.New("malformed manifest")

// Codec encodes and decodes manifests
type Codec struct{}

// NewCodec creates a new manifest codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode renders m as manifest text. A Manifest-Version header is written first
// unless m already carries one.
func (c *Codec) Encode(m *entities.Manifest) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("manifest cannot be nil")
	}

	var buf bytes.Buffer

	if _, ok := m.Get(VersionAttribute); !ok {
		writeLine(&buf, VersionAttribute+": "+Version)
	}
	for _, a := range m.Main {
		if err := writeAttribute(&buf, a); err != nil {
			return nil, err
		}
	}
	buf.WriteString(lineBreak)

	for _, s := range m.Sections {
		if s.Name == "" {
			return nil, fmt.Errorf("section name cannot be empty")
		}
		writeLine(&buf, NameAttribute+": "+s.Name)
		for _, a := range s.Attributes {
			if err := writeAttribute(&buf, a); err != nil {
				return nil, err
			}
		}
		buf.WriteString(lineBreak)
	}

	return buf.Bytes(), nil
}

func writeAttribute(buf *bytes.Buffer, a entities.Attribute) error {
	if !validName(a.Name) {
		return fmt.Errorf("invalid attribute name %q", a.Name)
	}
	if strings.ContainsAny(a.Value, "\r\n\x00") {
		return fmt.Errorf("attribute %s: value contains a line break or NUL", a.Name)
	}
	writeLine(buf, a.Name+": "+a.Value)
	return nil
}

// writeLine writes line, folding it at MaxLineBytes. Continuation lines start
// with one space, which counts toward their length. Folds never split a rune.
func writeLine(buf *bytes.Buffer, line string) {
	limit := MaxLineBytes
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		if cut == 0 {
			// Not UTF-8; fold at the byte limit
			cut = limit
		}
		buf.WriteString(line[:cut])
		buf.WriteString(lineBreak)
		buf.WriteByte(' ')
		line = line[cut:]
		limit = MaxLineBytes - 1
	}
	buf.WriteString(line)
	buf.WriteString(lineBreak)
}

// validName reports whether name is made of alphanumerics, '-' and '_', at most 70 bytes
func validName(name string) bool {
	if name == "" || len(name) > 70 {
		return false
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
		default:
			return false
		}
	}
	return true
}

// Decode parses manifest text. CRLF and LF line breaks are both accepted.
func (c *Codec) Decode(data []byte) (*entities.Manifest, error) {
	m := &entities.Manifest{}

	lines, err := unfold(data)
	if err != nil {
		return nil, err
	}

	var current *entities.Section
	inMain := true
	sectionStart := true

	for _, l := range lines {
		if l.text == "" {
			if current != nil {
				m.Sections = append(m.Sections, *current)
				current = nil
			}
			inMain = false
			sectionStart = true
			continue
		}

		name, value, ok := strings.Cut(l.text, ": ")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing \": \" separator", ErrMalformed, l.number)
		}
		if !validName(name) {
			return nil, fmt.Errorf("%w: line %d: invalid attribute name %q", ErrMalformed, l.number, name)
		}

		switch {
		case inMain:
			m.Main = append(m.Main, entities.Attribute{Name: name, Value: value})
		case sectionStart:
			if !strings.EqualFold(name, NameAttribute) {
				return nil, fmt.Errorf("%w: line %d: section must start with Name, got %s", ErrMalformed, l.number, name)
			}
			current = &entities.Section{Name: value}
		default:
			current.Attributes = append(current.Attributes, entities.Attribute{Name: name, Value: value})
		}
		sectionStart = false
	}

	if current != nil {
		m.Sections = append(m.Sections, *current)
	}

	return m, nil
}

type logicalLine struct {
	number int
	text   string
}

// unfold splits data into logical lines, joining continuation lines
func unfold(data []byte) ([]logicalLine, error) {
	var lines []logicalLine

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), len(data)+1)

	number := 0
	for scanner.Scan() {
		number++
		raw := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.HasPrefix(raw, " ") {
			if len(lines) == 0 || lines[len(lines)-1].text == "" {
				return nil, fmt.Errorf("%w: line %d: continuation without a preceding attribute", ErrMalformed, number)
			}
			lines[len(lines)-1].text += raw[1:]
			continue
		}

		lines = append(lines, logicalLine{number: number, text: raw})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return lines, nil
}
