package pdfread

import (
	"bytes"
	"errors"
	"strconv"
)

const maxDepth = 64

var errTooDeep = errors.New("pdfread: object nesting too deep")

// scanner reads PDF objects and tokens from a byte slice. It is shared by
// the file-level parser and the content stream walker.
type scanner struct {
	buf   []byte
	pos   int
	depth int
}

func newScanner(buf []byte, pos int) *scanner {
	return &scanner{buf: buf, pos: pos}
}

func (s *scanner) eof() bool { return s.pos >= len(s.buf) }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelim(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// skip moves past whitespace and comments.
func (s *scanner) skip() {
	for !s.eof() {
		switch c := s.buf[s.pos]; {
		case c == '%':
			for !s.eof() && s.buf[s.pos] != '\n' && s.buf[s.pos] != '\r' {
				s.pos++
			}
		case isSpace(c):
			s.pos++
		default:
			return
		}
	}
}

// keyword consumes kw if it is next.
func (s *scanner) keyword(kw string) bool {
	if bytes.HasPrefix(s.buf[s.pos:], []byte(kw)) {
		s.pos += len(kw)
		return true
	}
	return false
}

// token reads a bare word up to the next space or delimiter.
func (s *scanner) token() string {
	start := s.pos
	for !s.eof() && !isSpace(s.buf[s.pos]) && !isDelim(s.buf[s.pos]) {
		s.pos++
	}
	return string(s.buf[start:s.pos])
}

// startsObject reports whether c begins an operand rather than an
// operator in a content stream.
func startsObject(c byte) bool {
	switch {
	case c == '(', c == '<', c == '/', c == '[':
		return true
	case c == '+', c == '-', c == '.':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	return false
}

// object reads one object at the current position.
func (s *scanner) object() (*Object, error) {
	if s.depth >= maxDepth {
		return nil, errTooDeep
	}
	s.depth++
	defer func() { s.depth-- }()

	s.skip()
	if s.eof() {
		return null, nil
	}
	switch c := s.buf[s.pos]; {
	case c == '(':
		return s.literal(), nil
	case c == '<' && s.pos+1 < len(s.buf) && s.buf[s.pos+1] == '<':
		return s.dict()
	case c == '<':
		return s.hex(), nil
	case c == '/':
		return &Object{Kind: KindName, Name: s.name()}, nil
	case c == '[':
		return s.array()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return s.number(), nil
	case s.keyword("true"):
		return &Object{Kind: KindBool, Bool: true}, nil
	case s.keyword("false"):
		return &Object{Kind: KindBool}, nil
	case s.keyword("null"):
		return null, nil
	}
	if s.token() == "" {
		s.pos++
	}
	return null, nil
}

func (s *scanner) literal() *Object {
	s.pos++
	var out bytes.Buffer
	nest := 1
	for !s.eof() {
		c := s.buf[s.pos]
		s.pos++
		switch c {
		case '(':
			nest++
		case ')':
			nest--
			if nest == 0 {
				return &Object{Kind: KindString, Bytes: out.Bytes()}
			}
		case '\\':
			if s.eof() {
				continue
			}
			e := s.buf[s.pos]
			s.pos++
			switch e {
			case 'n':
				out.WriteByte('\n')
			case 'r':
				out.WriteByte('\r')
			case 't':
				out.WriteByte('\t')
			case 'b':
				out.WriteByte('\b')
			case 'f':
				out.WriteByte('\f')
			case '\r':
				if !s.eof() && s.buf[s.pos] == '\n' {
					s.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for i := 0; i < 2 && !s.eof() && s.buf[s.pos] >= '0' && s.buf[s.pos] <= '7'; i++ {
						v = v*8 + int(s.buf[s.pos]-'0')
						s.pos++
					}
					out.WriteByte(byte(v))
				} else {
					out.WriteByte(e)
				}
			}
			continue
		}
		out.WriteByte(c)
	}
	return &Object{Kind: KindString, Bytes: out.Bytes()}
}

func (s *scanner) hex() *Object {
	s.pos++
	var digits []byte
	for !s.eof() && s.buf[s.pos] != '>' {
		if c := s.buf[s.pos]; !isSpace(c) {
			digits = append(digits, c)
		}
		s.pos++
	}
	s.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := range out {
		out[i] = unhex(digits[2*i])<<4 | unhex(digits[2*i+1])
	}
	return &Object{Kind: KindString, Bytes: out}
}

func unhex(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}

func (s *scanner) name() string {
	s.pos++
	raw := s.token()
	if !bytes.ContainsRune([]byte(raw), '#') {
		return raw
	}
	var out []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] == '#' && i+2 < len(raw) {
			out = append(out, unhex(raw[i+1])<<4|unhex(raw[i+2]))
			i += 2
			continue
		}
		out = append(out, raw[i])
	}
	return string(out)
}

func (s *scanner) array() (*Object, error) {
	s.pos++
	arr := &Object{Kind: KindArray}
	for {
		s.skip()
		if s.eof() {
			return arr, nil
		}
		if s.buf[s.pos] == ']' {
			s.pos++
			return arr, nil
		}
		o, err := s.object()
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, o)
	}
}

func (s *scanner) dict() (*Object, error) {
	s.pos += 2
	d := Dict{}
	for {
		s.skip()
		if s.eof() {
			break
		}
		if s.keyword(">>") {
			break
		}
		if s.buf[s.pos] != '/' {
			s.pos++
			continue
		}
		key := s.name()
		v, err := s.object()
		if err != nil {
			return nil, err
		}
		d[key] = v
	}

	mark := s.pos
	s.skip()
	if !s.keyword("stream") {
		s.pos = mark
		return &Object{Kind: KindDict, Dict: d}, nil
	}
	if !s.keyword("\r\n") && !s.keyword("\n") {
		s.keyword("\r")
	}

	start := s.pos
	end := -1
	if n, ok := d.Int("Length"); ok && d["Length"].Kind == KindInt && start+int(n) <= len(s.buf) {
		end = start + int(n)
	}
	if end < 0 {
		i := bytes.Index(s.buf[start:], []byte("endstream"))
		if i < 0 {
			i = len(s.buf) - start
		}
		end = start + i
	}
	s.pos = end
	s.skip()
	s.keyword("endstream")
	return &Object{Kind: KindStream, Dict: d, Data: s.buf[start:end]}, nil
}

// number reads an int, a real, or an "N G R" reference.
func (s *scanner) number() *Object {
	tok := s.token()
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		f, _ := strconv.ParseFloat(tok, 64)
		return &Object{Kind: KindReal, Real: f}
	}

	mark := s.pos
	s.skip()
	if g, err := strconv.Atoi(s.token()); err == nil {
		s.skip()
		if !s.eof() && s.buf[s.pos] == 'R' &&
			(s.pos+1 == len(s.buf) || isSpace(s.buf[s.pos+1]) || isDelim(s.buf[s.pos+1])) {
			s.pos++
			return &Object{Kind: KindRef, Ref: Ref{Num: int(n), Gen: g}}
		}
	}
	s.pos = mark
	return &Object{Kind: KindInt, Int: n}
}

// operator reads a content stream operator such as "Tj", "T*" or "'".
func (s *scanner) operator() string {
	start := s.pos
	for !s.eof() {
		c := s.buf[s.pos]
		if isSpace(c) || isDelim(c) || startsObject(c) {
			break
		}
		s.pos++
	}
	if s.pos == start {
		s.pos++
	}
	return string(s.buf[start:s.pos])
}
