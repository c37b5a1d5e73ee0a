package remat

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encode writes a Material to writer.
func Encode(w io.Writer, m *Material, opt *FormatOptions) error {
	return EncodeAll(w, []*Material{m}, opt)
}

// EncodeAll writes several Materials to writer. YAML output is a stream of
// documents, JSON output a single array.
func EncodeAll(w io.Writer, ms []*Material, opt *FormatOptions) error {
	fopt := opt.normalize()
	// Buffered writer reduces syscall overhead and short writes.
	bw := bufio.NewWriter(w)

	var err error
	switch fopt.Format {
	case FormatYAML:
		err = encodeYAML(bw, ms, fopt.Indent)
	case FormatJSON:
		err = encodeJSON(bw, ms, fopt.Indent)
	default:
		err = fmt.Errorf("unknown output format %q", fopt.Format)
	}
	if err != nil {
		return err
	}

	return bw.Flush()
}

// EncodeFile writes a Material to a file.
func EncodeFile(path string, m *Material, opt *FormatOptions) error {
	b, err := Format(m, opt)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o600)
}

// Format renders a Material to bytes.
func Format(m *Material, opt *FormatOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, opt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// encodeYAML writes one YAML document per material.
func encodeYAML(w io.Writer, ms []*Material, indent int) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(indent)
	for _, m := range ms {
		if m == nil {
			continue
		}
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode %q: %w", m.Name, err)
		}
	}

	return enc.Close()
}

// encodeJSON writes a single object, or an array for several materials.
func encodeJSON(w io.Writer, ms []*Material, indent int) error {
	var v any = ms
	if len(ms) == 1 {
		v = ms[0]
	}

	b, err := json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")

	return err
}
