package iso7816

import (
	"time"

	"github.com/ansel1/merry"
	"github.com/google/uuid"

	"github.com/gemalto/bertlv-go"
)

// CHUID member tags from SP 800-73-4 part 1, table 9. The CHUID rides inside
// a BER data object '53', but its members carry simple tags.
const (
	TagFASCN          bertlv.SimpleTag = 0x30
	TagOrgID          bertlv.SimpleTag = 0x32
	TagDUNS           bertlv.SimpleTag = 0x33
	TagGUID           bertlv.SimpleTag = 0x34
	TagExpirationDate bertlv.SimpleTag = 0x35
	TagCardholderUUID bertlv.SimpleTag = 0x36
	TagSignature      bertlv.SimpleTag = 0x3E
	TagEDC            bertlv.SimpleTag = 0xFE
)

const expirationLayout = "20060102"

// CHUID is the PIV Card Holder Unique Identifier, SP 800-73-4 part 1,
// section 3.1.2. FASCN, GUID, ExpirationDate and Signature are mandatory.
// CardholderUUID is uuid.Nil when absent. The error detection code member is
// not modeled: it is always empty, skipped on decode and emitted on encode.
type CHUID struct {
	FASCN          []byte    // 0x30, twenty five bytes
	OrgID          []byte    // 0x32
	DUNS           []byte    // 0x33
	GUID           uuid.UUID // 0x34
	ExpirationDate string    // 0x35, YYYYMMDD
	CardholderUUID uuid.UUID // 0x36
	Signature      []byte    // 0x3E, CMS SignedData
	Extra          []bertlv.SimpleDataObject
}

// ExpiresAt parses the expiration date member.
func (c CHUID) ExpiresAt() (time.Time, error) {
	t, err := time.Parse(expirationLayout, c.ExpirationDate)
	if err != nil {
		return time.Time{}, merry.Prepend(err, "expiration date")
	}
	return t, nil
}

func (c CHUID) checkMandatory() error {
	switch {
	case c.FASCN == nil:
		return merry.Prepend(ErrMissingMember, "fasc-n")
	case len(c.FASCN) != 25:
		return merry.Prepend(bertlv.ErrInvalidLen, "fasc-n")
	case c.ExpirationDate == "":
		return merry.Prepend(ErrMissingMember, "expiration date")
	case len(c.ExpirationDate) != len(expirationLayout):
		return merry.Prepend(bertlv.ErrInvalidLen, "expiration date")
	case c.Signature == nil:
		return merry.Prepend(ErrMissingMember, "signature")
	}
	return nil
}

func (c CHUID) contentLen() (int, error) {
	if err := c.checkMandatory(); err != nil {
		return 0, err
	}
	n, err := bertlv.EncodedLenSimple(TagFASCN, len(c.FASCN))
	if err != nil {
		return 0, err
	}
	if c.OrgID != nil {
		l, err := bertlv.EncodedLenSimple(TagOrgID, len(c.OrgID))
		if err != nil {
			return 0, err
		}
		n += l
	}
	if c.DUNS != nil {
		l, err := bertlv.EncodedLenSimple(TagDUNS, len(c.DUNS))
		if err != nil {
			return 0, err
		}
		n += l
	}
	l, err := bertlv.EncodedLenSimple(TagGUID, len(c.GUID))
	if err != nil {
		return 0, err
	}
	n += l
	if l, err = bertlv.EncodedLenSimple(TagExpirationDate, len(c.ExpirationDate)); err != nil {
		return 0, err
	}
	n += l
	if c.CardholderUUID != uuid.Nil {
		if l, err = bertlv.EncodedLenSimple(TagCardholderUUID, len(c.CardholderUUID)); err != nil {
			return 0, err
		}
		n += l
	}
	if l, err = bertlv.EncodedLenSimple(TagSignature, len(c.Signature)); err != nil {
		return 0, err
	}
	n += l
	for _, o := range c.Extra {
		if l, err = o.EncodedLen(); err != nil {
			return 0, err
		}
		n += l
	}
	if l, err = bertlv.EncodedLenSimple(TagEDC, 0); err != nil {
		return 0, err
	}
	return n + l, nil
}

func (c CHUID) encodeContent(e *bertlv.Encoder) error {
	if err := e.EncodeSimple(TagFASCN, c.FASCN); err != nil {
		return err
	}
	if c.OrgID != nil {
		if err := e.EncodeSimple(TagOrgID, c.OrgID); err != nil {
			return err
		}
	}
	if c.DUNS != nil {
		if err := e.EncodeSimple(TagDUNS, c.DUNS); err != nil {
			return err
		}
	}
	if err := e.EncodeSimple(TagGUID, c.GUID[:]); err != nil {
		return err
	}
	if err := e.EncodeSimple(TagExpirationDate, []byte(c.ExpirationDate)); err != nil {
		return err
	}
	if c.CardholderUUID != uuid.Nil {
		if err := e.EncodeSimple(TagCardholderUUID, c.CardholderUUID[:]); err != nil {
			return err
		}
	}
	if err := e.EncodeSimple(TagSignature, c.Signature); err != nil {
		return err
	}
	for _, o := range c.Extra {
		if err := o.EncodeTLV(e); err != nil {
			return err
		}
	}
	return e.EncodeSimple(TagEDC, nil)
}

// EncodedLen implements bertlv.Encodable.
func (c CHUID) EncodedLen() (int, error) {
	n, err := c.contentLen()
	if err != nil {
		return 0, err
	}
	return bertlv.EncodedLenBytes(TagDiscretionaryData, n)
}

// EncodeTLV implements bertlv.Encodable. The '53' wrapper is coded
// primitive, so the simple-tagged content is built first and written as its
// value.
func (c CHUID) EncodeTLV(e *bertlv.Encoder) error {
	n, err := c.contentLen()
	if err != nil {
		return err
	}
	buf := bertlv.NewDynamicBuffer(n)
	if err := c.encodeContent(bertlv.NewEncoder(buf)); err != nil {
		return err
	}
	return e.EncodeBytes(TagDiscretionaryData, buf.Bytes())
}

// DecodeTLV implements bertlv.Decodable. Offsets in errors from the member
// decode are relative to the '53' value region.
func (c *CHUID) DecodeTLV(d *bertlv.Decoder) error {
	v, err := d.DecodeBytes(TagDiscretionaryData)
	if err != nil {
		return err
	}
	guidSeen := false
	dd := bertlv.NewDecoder(v)
	for dd.More() {
		t, err := dd.PeekSimpleTag()
		if err != nil {
			return err
		}
		switch t {
		case TagFASCN:
			if c.FASCN, err = dd.DecodeSimple(TagFASCN); err != nil {
				return err
			}
		case TagOrgID:
			if c.OrgID, err = dd.DecodeSimple(TagOrgID); err != nil {
				return err
			}
		case TagDUNS:
			if c.DUNS, err = dd.DecodeSimple(TagDUNS); err != nil {
				return err
			}
		case TagGUID:
			b, err := dd.DecodeSimple(TagGUID)
			if err != nil {
				return err
			}
			if c.GUID, err = uuid.FromBytes(b); err != nil {
				return merry.Prepend(bertlv.ErrInvalidLen, "guid")
			}
			guidSeen = true
		case TagExpirationDate:
			b, err := dd.DecodeSimple(TagExpirationDate)
			if err != nil {
				return err
			}
			c.ExpirationDate = string(b)
		case TagCardholderUUID:
			b, err := dd.DecodeSimple(TagCardholderUUID)
			if err != nil {
				return err
			}
			if c.CardholderUUID, err = uuid.FromBytes(b); err != nil {
				return merry.Prepend(bertlv.ErrInvalidLen, "cardholder uuid")
			}
		case TagSignature:
			if c.Signature, err = dd.DecodeSimple(TagSignature); err != nil {
				return err
			}
		case TagEDC:
			if _, err = dd.DecodeSimple(TagEDC); err != nil {
				return err
			}
		default:
			var o bertlv.SimpleDataObject
			if err := o.DecodeTLV(dd); err != nil {
				return err
			}
			c.Extra = append(c.Extra, o)
		}
	}
	if err := dd.Finish(); err != nil {
		return err
	}
	if !guidSeen {
		return merry.Prepend(ErrMissingMember, "guid")
	}
	return c.checkMandatory()
}
