package bertlv

import (
	"bytes"
	"fmt"
	"io"
)

// Dump returns a human-readable tree rendering of the BER-TLV data objects
// in b, one line per object. Malformed input renders as far as it parses,
// with the error inline.
func Dump(b []byte) string {
	var buf bytes.Buffer
	Print(&buf, "", b)
	return buf.String()
}

// Print writes a tree rendering of the data objects in b to w, prefixing
// each line with indent and nesting the children of constructed objects two
// spaces deeper. It returns the first parse error, after rendering it.
func Print(w io.Writer, indent string, b []byte) error {
	d := NewDecoder(b)
	for d.More() {
		h, err := d.ReadHeader()
		if err != nil {
			fmt.Fprintf(w, "%s(%s) %#x\n", indent, err.Error(), d.rest())
			return err
		}
		v, err := d.ReadValue(int(h.Length))
		if err != nil {
			fmt.Fprintf(w, "%s(%s)\n", indent, err.Error())
			return err
		}
		switch {
		case h.Tag.Constructed:
			fmt.Fprintf(w, "%s%v (%d):\n", indent, h.Tag, uint32(h.Length))
			if err := Print(w, indent+"  ", v); err != nil {
				return err
			}
		case len(v) > 0:
			fmt.Fprintf(w, "%s%v (%d): %#x\n", indent, h.Tag, uint32(h.Length), v)
		default:
			fmt.Fprintf(w, "%s%v (%d):\n", indent, h.Tag, uint32(h.Length))
		}
	}
	return nil
}

// PrintSimple is Print for SIMPLE-TLV input: single-byte tags and no
// nesting.
func PrintSimple(w io.Writer, indent string, b []byte) error {
	d := NewDecoder(b)
	for d.More() {
		t, l, err := d.ReadSimpleHeader()
		if err != nil {
			fmt.Fprintf(w, "%s(%s) %#x\n", indent, err.Error(), d.rest())
			return err
		}
		v, err := d.ReadValue(int(l))
		if err != nil {
			fmt.Fprintf(w, "%s(%s)\n", indent, err.Error())
			return err
		}
		if len(v) > 0 {
			fmt.Fprintf(w, "%s%v (%d): %#x\n", indent, t, uint32(l), v)
		} else {
			fmt.Fprintf(w, "%s%v (%d):\n", indent, t, uint32(l))
		}
	}
	return nil
}
