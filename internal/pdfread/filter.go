package pdfread

import (
	"bytes"
	"compress/zlib"
	"encoding/ascii85"
	"errors"
	"fmt"
	"io"
)

// maxDecoded bounds a single decoded stream.
const maxDecoded = 64 << 20

// decodeStream undoes the filter chain named in dict. Only the filters
// that appear in text-and-vector documents are supported.
func decodeStream(dict Dict, data []byte) ([]byte, error) {
	filters, _ := dict.Array("Filter")
	for _, f := range filters {
		if f.Kind != KindName {
			return nil, fmt.Errorf("pdfread: filter is %s, not a name", f.Kind)
		}
		var err error
		switch f.Name {
		case "FlateDecode", "Fl":
			data, err = inflate(data)
		case "ASCIIHexDecode", "AHx":
			data = newScanner(append([]byte{'<'}, data...), 0).hex().Bytes
		case "ASCII85Decode", "A85":
			data, err = unascii85(data)
		default:
			err = fmt.Errorf("pdfread: unsupported filter %s", f.Name)
		}
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pdfread: flate: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(io.LimitReader(r, maxDecoded+1))
	if err != nil {
		return nil, fmt.Errorf("pdfread: flate: %w", err)
	}
	if len(out) > maxDecoded {
		return nil, errors.New("pdfread: decoded stream too large")
	}
	return out, nil
}

func unascii85(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(bytes.TrimSpace(data), []byte("<~"))
	if i := bytes.Index(data, []byte("~>")); i >= 0 {
		data = data[:i]
	}
	out := make([]byte, 4*len(data)+4)
	n, _, err := ascii85.Decode(out, data, true)
	if err != nil {
		return nil, fmt.Errorf("pdfread: ascii85: %w", err)
	}
	return out[:n], nil
}
