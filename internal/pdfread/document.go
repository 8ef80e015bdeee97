package pdfread

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrNotPDF is returned when the input lacks a %PDF- header.
var ErrNotPDF = errors.New("pdfread: not a PDF file")

type xrefEntry struct {
	offset    int64
	inUse     bool
	container int // object stream number for compressed entries
	index     int
}

// Document is a parsed PDF file.
type Document struct {
	buf     []byte
	xref    map[int]xrefEntry
	trailer Dict
	cache   map[int]*Object
}

// Open reads and parses the PDF at path.
func Open(path string) (*Document, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(buf)
}

// Load parses a PDF held in memory.
func Load(buf []byte) (*Document, error) {
	if !bytes.HasPrefix(buf, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}
	d := &Document{buf: buf, xref: map[int]xrefEntry{}, cache: map[int]*Object{}}
	start, err := d.startXRef()
	if err != nil {
		return nil, err
	}
	seen := map[int64]bool{}
	for off := start; off > 0 && !seen[off]; {
		seen[off] = true
		prev, err := d.readXRef(off)
		if err != nil {
			return nil, fmt.Errorf("pdfread: xref at %d: %w", off, err)
		}
		off = prev
	}
	if d.trailer == nil {
		return nil, errors.New("pdfread: missing trailer")
	}
	return d, nil
}

// Version returns the header version, such as "1.3".
func (d *Document) Version() string {
	line := d.buf[len("%PDF-"):]
	if i := bytes.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(string(line))
}

// Info returns the document information dictionary with string values
// decoded, or nil if there is none.
func (d *Document) Info() map[string]string {
	info, _ := d.Resolve(d.trailer["Info"])
	if info == nil || info.Kind != KindDict {
		return nil
	}
	out := map[string]string{}
	for k, v := range info.Dict {
		if v, _ := d.Resolve(v); v != nil && v.Kind == KindString {
			out[k] = decodeTextString(v.Bytes)
		}
	}
	return out
}

func (d *Document) startXRef() (int64, error) {
	tail := d.buf
	if len(tail) > 2048 {
		tail = tail[len(tail)-2048:]
	}
	i := bytes.LastIndex(tail, []byte("startxref"))
	if i < 0 {
		return 0, errors.New("pdfread: startxref not found")
	}
	s := newScanner(tail, i+len("startxref"))
	s.skip()
	off, err := strconv.ParseInt(s.token(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("pdfread: bad startxref: %w", err)
	}
	return off, nil
}

// readXRef loads one cross-reference section and returns the offset of
// the previous one, or 0. Entries already known are never overwritten
// since newer sections are read first.
func (d *Document) readXRef(off int64) (int64, error) {
	if off < 0 || off >= int64(len(d.buf)) {
		return 0, errors.New("offset out of range")
	}
	s := newScanner(d.buf, int(off))
	s.skip()
	if !s.keyword("xref") {
		return d.readXRefStream(s)
	}

	for {
		s.skip()
		if s.eof() {
			return 0, errors.New("unexpected end of table")
		}
		if s.keyword("trailer") {
			break
		}
		first, err1 := strconv.Atoi(s.token())
		s.skip()
		count, err2 := strconv.Atoi(s.token())
		if err1 != nil || err2 != nil {
			return 0, errors.New("bad subsection header")
		}
		s.skip()
		for i := 0; i < count; i++ {
			// nnnnnnnnnn ggggg n eol
			if s.pos+18 > len(s.buf) {
				return 0, errors.New("truncated table")
			}
			line := string(s.buf[s.pos : s.pos+18])
			s.pos += 18
			s.skip()
			num := first + i
			if _, ok := d.xref[num]; ok {
				continue
			}
			o, _ := strconv.ParseInt(line[:10], 10, 64)
			d.xref[num] = xrefEntry{offset: o, inUse: line[17] == 'n'}
		}
	}

	t, err := s.object()
	if err != nil {
		return 0, err
	}
	if t.Kind != KindDict {
		return 0, errors.New("trailer is not a dictionary")
	}
	if d.trailer == nil {
		d.trailer = t.Dict
	}
	prev, _ := t.Dict.Int("Prev")
	return prev, nil
}

func (d *Document) readXRefStream(s *scanner) (int64, error) {
	s.token()
	s.skip()
	s.token()
	s.skip()
	if !s.keyword("obj") {
		return 0, errors.New("neither table nor stream")
	}
	o, err := s.object()
	if err != nil {
		return 0, err
	}
	if o.Kind != KindStream {
		return 0, errors.New("xref object is not a stream")
	}
	if d.trailer == nil {
		d.trailer = o.Dict
	}
	data, err := decodeStream(o.Dict, o.Data)
	if err != nil {
		return 0, err
	}

	w, _ := o.Dict.Array("W")
	if len(w) != 3 {
		return 0, errors.New("bad /W")
	}
	var widths [3]int
	for i, x := range w {
		widths[i] = int(x.Int)
	}
	row := widths[0] + widths[1] + widths[2]
	if row == 0 {
		return 0, errors.New("empty /W")
	}

	size, _ := o.Dict.Int("Size")
	index := []int{0, int(size)}
	if arr, ok := o.Dict.Array("Index"); ok {
		index = index[:0]
		for _, x := range arr {
			index = append(index, int(x.Int))
		}
	}

	field := func(b []byte, n int) int {
		v := 0
		for _, c := range b[:n] {
			v = v<<8 | int(c)
		}
		return v
	}
	pos := 0
	for i := 0; i+1 < len(index); i += 2 {
		for num := index[i]; num < index[i]+index[i+1] && pos+row <= len(data); num++ {
			rec := data[pos : pos+row]
			pos += row
			typ := 1
			if widths[0] > 0 {
				typ = field(rec, widths[0])
			}
			f2 := field(rec[widths[0]:], widths[1])
			f3 := field(rec[widths[0]+widths[1]:], widths[2])
			if _, ok := d.xref[num]; ok {
				continue
			}
			switch typ {
			case 1:
				d.xref[num] = xrefEntry{offset: int64(f2), inUse: true}
			case 2:
				d.xref[num] = xrefEntry{inUse: true, container: f2, index: f3}
			default:
				d.xref[num] = xrefEntry{}
			}
		}
	}
	prev, _ := o.Dict.Int("Prev")
	return prev, nil
}

// Resolve follows o if it is a reference. Dangling references resolve to
// null, as PDF readers are expected to do.
func (d *Document) Resolve(o *Object) (*Object, error) {
	for hops := 0; o != nil && o.Kind == KindRef; hops++ {
		if hops > 32 {
			return nil, errors.New("pdfread: reference chain too long")
		}
		var err error
		if o, err = d.object(o.Ref.Num); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (d *Document) object(num int) (*Object, error) {
	if o, ok := d.cache[num]; ok {
		return o, nil
	}
	e, ok := d.xref[num]
	if !ok || !e.inUse {
		return null, nil
	}
	// Guard against self-referencing /Length loops.
	d.cache[num] = null

	var o *Object
	var err error
	if e.container != 0 {
		o, err = d.compressedObject(e)
	} else {
		o, err = d.objectAt(e.offset)
	}
	if err != nil {
		delete(d.cache, num)
		return nil, fmt.Errorf("pdfread: object %d: %w", num, err)
	}
	d.cache[num] = o
	return o, nil
}

func (d *Document) objectAt(off int64) (*Object, error) {
	if off < 0 || off >= int64(len(d.buf)) {
		return nil, errors.New("offset out of range")
	}
	header := func() *scanner {
		s := newScanner(d.buf, int(off))
		s.skip()
		s.token()
		s.skip()
		s.token()
		s.skip()
		return s
	}
	s := header()
	if !s.keyword("obj") {
		return nil, errors.New("missing obj keyword")
	}
	o, err := s.object()
	if err != nil {
		return nil, err
	}
	// An indirect /Length is only known after resolving it, so parse again.
	if l := o.Dict["Length"]; o.Kind == KindStream && l != nil && l.Kind == KindRef {
		n, err := d.Resolve(o.Dict["Length"])
		if err != nil {
			return nil, err
		}
		if n.Kind == KindInt {
			o.Dict["Length"] = n
			s = header()
			s.keyword("obj")
			return s.object()
		}
	}
	return o, nil
}

func (d *Document) compressedObject(e xrefEntry) (*Object, error) {
	c, err := d.object(e.container)
	if err != nil {
		return nil, err
	}
	if c.Kind != KindStream {
		return nil, errors.New("object stream is not a stream")
	}
	data, err := decodeStream(c.Dict, c.Data)
	if err != nil {
		return nil, err
	}
	n, _ := c.Dict.Int("N")
	first, _ := c.Dict.Int("First")
	if int64(e.index) >= n {
		return nil, errors.New("index past object stream")
	}
	s := newScanner(data, 0)
	var off int
	for i := 0; i <= e.index; i++ {
		s.skip()
		s.token()
		s.skip()
		off, _ = strconv.Atoi(s.token())
	}
	return newScanner(data, int(first)+off).object()
}

// Page is one leaf of the page tree with its inherited attributes
// already applied.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64

	dict      Dict
	resources *Object
}

// Pages returns every page in document order.
func (d *Document) Pages() ([]Page, error) {
	root, err := d.Resolve(d.trailer["Root"])
	if err != nil {
		return nil, err
	}
	if root == nil || root.Kind != KindDict {
		return nil, errors.New("pdfread: missing catalog")
	}
	tree, err := d.Resolve(root.Dict["Pages"])
	if err != nil {
		return nil, err
	}
	if tree == nil || tree.Kind != KindDict {
		return nil, errors.New("pdfread: missing page tree")
	}
	var pages []Page
	if err := d.walkPages(tree.Dict, inherited{}, &pages, 0); err != nil {
		return nil, err
	}
	return pages, nil
}

// inherited holds the page attributes that flow down the page tree.
type inherited struct {
	mediaBox  *Object
	resources *Object
}

func (d *Document) walkPages(node Dict, attrs inherited, pages *[]Page, depth int) error {
	if depth > maxDepth {
		return errTooDeep
	}
	if o, ok := node["MediaBox"]; ok {
		attrs.mediaBox = o
	}
	if o, ok := node["Resources"]; ok {
		attrs.resources = o
	}
	if typ, _ := node.Name("Type"); typ == "Page" {
		p := Page{Number: len(*pages) + 1, dict: node, resources: attrs.resources}
		if b, _ := d.Resolve(attrs.mediaBox); b != nil && b.Kind == KindArray && len(b.Items) == 4 {
			x0, _ := b.Items[0].Number()
			y0, _ := b.Items[1].Number()
			x1, _ := b.Items[2].Number()
			y1, _ := b.Items[3].Number()
			p.Width, p.Height = x1-x0, y1-y0
		}
		*pages = append(*pages, p)
		return nil
	}
	kids, err := d.Resolve(node["Kids"])
	if err != nil || kids == nil || kids.Kind != KindArray {
		return err
	}
	for _, k := range kids.Items {
		kid, err := d.Resolve(k)
		if err != nil {
			return err
		}
		if kid.Kind == KindDict {
			if err := d.walkPages(kid.Dict, attrs, pages, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// Content returns the decoded, concatenated content streams of p.
func (d *Document) Content(p Page) ([]byte, error) {
	c, err := d.Resolve(p.dict["Contents"])
	if err != nil || c == nil {
		return nil, err
	}
	parts := []*Object{c}
	if c.Kind == KindArray {
		parts = c.Items
	}
	var out []byte
	for _, part := range parts {
		s, err := d.Resolve(part)
		if err != nil {
			return nil, err
		}
		if s.Kind != KindStream {
			continue
		}
		data, err := decodeStream(s.Dict, s.Data)
		if err != nil {
			return nil, fmt.Errorf("pdfread: page %d: %w", p.Number, err)
		}
		out = append(out, data...)
		out = append(out, '\n')
	}
	return out, nil
}
