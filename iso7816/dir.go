package iso7816

import (
	"github.com/ansel1/merry"

	"github.com/gemalto/bertlv-go"
)

// ApplicationTemplate is one EF.DIR record, section 8.2.1.1: an application
// template '61' carrying the application identifier and, optionally, a label
// and URL. The AID leads and is mandatory; anything after the recognized
// members is preserved in Extra.
type ApplicationTemplate struct {
	AID   []byte // '4F', five to sixteen bytes
	Label string // '50', ISO 8859-1 on the wire
	URL   string // '5F50'
	Extra []bertlv.DataObject
}

func checkAID(aid []byte) error {
	if len(aid) < 5 || len(aid) > 16 {
		return merry.Prepend(bertlv.ErrInvalidLen, "application identifier")
	}
	return nil
}

// EncodedLen implements bertlv.Encodable.
func (a ApplicationTemplate) EncodedLen() (int, error) {
	if err := checkAID(a.AID); err != nil {
		return 0, err
	}
	n, err := bertlv.EncodedLenBytes(TagAID, len(a.AID))
	if err != nil {
		return 0, err
	}
	if a.Label != "" {
		b, err := encodeLabel(a.Label)
		if err != nil {
			return 0, err
		}
		l, err := bertlv.EncodedLenBytes(TagApplicationLabel, len(b))
		if err != nil {
			return 0, err
		}
		n += l
	}
	if a.URL != "" {
		l, err := bertlv.EncodedLenBytes(TagURL, len(a.URL))
		if err != nil {
			return 0, err
		}
		n += l
	}
	for _, o := range a.Extra {
		l, err := o.EncodedLen()
		if err != nil {
			return 0, err
		}
		n += l
	}
	return bertlv.Header{Tag: TagApplicationTemplate, Length: bertlv.Length(n)}.EncodedLen() + n, nil
}

// EncodeTLV implements bertlv.Encodable.
func (a ApplicationTemplate) EncodeTLV(e *bertlv.Encoder) error {
	if err := checkAID(a.AID); err != nil {
		return err
	}
	return e.Nested(TagApplicationTemplate, func(e *bertlv.Encoder) error {
		if err := e.EncodeBytes(TagAID, a.AID); err != nil {
			return err
		}
		if a.Label != "" {
			b, err := encodeLabel(a.Label)
			if err != nil {
				return err
			}
			if err := e.EncodeBytes(TagApplicationLabel, b); err != nil {
				return err
			}
		}
		if a.URL != "" {
			if err := e.EncodeBytes(TagURL, []byte(a.URL)); err != nil {
				return err
			}
		}
		for _, o := range a.Extra {
			if err := o.EncodeTLV(e); err != nil {
				return err
			}
		}
		return nil
	})
}

// DecodeTLV implements bertlv.Decodable.
func (a *ApplicationTemplate) DecodeTLV(d *bertlv.Decoder) error {
	return d.DecodeNested(TagApplicationTemplate, func(d *bertlv.Decoder) error {
		aid, err := d.DecodeBytes(TagAID)
		if err != nil {
			return err
		}
		if err := checkAID(aid); err != nil {
			return err
		}
		a.AID = aid
		for d.More() {
			t, err := d.PeekTag()
			if err != nil {
				return err
			}
			switch t {
			case TagApplicationLabel:
				b, err := d.DecodeBytes(TagApplicationLabel)
				if err != nil {
					return err
				}
				if a.Label, err = decodeLabel(b); err != nil {
					return err
				}
			case TagURL:
				b, err := d.DecodeBytes(TagURL)
				if err != nil {
					return err
				}
				a.URL = string(b)
			default:
				var o bertlv.DataObject
				if err := o.DecodeTLV(d); err != nil {
					return err
				}
				a.Extra = append(a.Extra, o)
			}
		}
		return nil
	})
}

// DIR is the content of EF.DIR: application templates back to back, one per
// application on the card.
type DIR []ApplicationTemplate

// EncodedLen implements bertlv.Encodable.
func (f DIR) EncodedLen() (int, error) {
	n := 0
	for _, a := range f {
		l, err := a.EncodedLen()
		if err != nil {
			return 0, err
		}
		n += l
	}
	return n, nil
}

// EncodeTLV implements bertlv.Encodable.
func (f DIR) EncodeTLV(e *bertlv.Encoder) error {
	for _, a := range f {
		if err := a.EncodeTLV(e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTLV implements bertlv.Decodable. It consumes records until the scope
// is exhausted.
func (f *DIR) DecodeTLV(d *bertlv.Decoder) error {
	*f = (*f)[:0]
	for d.More() {
		var a ApplicationTemplate
		if err := a.DecodeTLV(d); err != nil {
			return err
		}
		*f = append(*f, a)
	}
	return nil
}
