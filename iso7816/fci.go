package iso7816

import (
	"errors"

	"github.com/ansel1/merry"
	"golang.org/x/text/encoding/charmap"

	"github.com/gemalto/bertlv-go"
)

// ErrMissingMember is returned when a template arrives without a member the
// standard requires, or when one is asked to encode without it.
var ErrMissingMember = errors.New("missing mandatory member")

// Application labels are coded in ISO 8859-1, section 8.2.1.2.
func decodeLabel(b []byte) (string, error) {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", merry.Prepend(err, "application label")
	}
	return string(s), nil
}

func encodeLabel(s string) ([]byte, error) {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, merry.Prepend(err, "application label")
	}
	return b, nil
}

// FileControlParameters is the FCP template '62', returned by SELECT when
// file control parameters are requested, section 5.3.3 table 12. Every
// member is optional on the wire; zero values here mean absent. Members the
// type does not model are preserved in Extra, in wire order, so a decode and
// re-encode round-trips them.
type FileControlParameters struct {
	FileSize        uint64 // '80', data bytes in the file body
	TotalFileSize   uint64 // '81', data bytes including structural information
	FileDescriptor  []byte // '82'
	FileID          []byte // '83', two bytes
	DFName          []byte // '84', one to sixteen bytes
	LifeCycleStatus uint8  // '8A'
	Extra           []bertlv.DataObject
}

func (p *FileControlParameters) decodeMember(d *bertlv.Decoder) (bool, error) {
	t, err := d.PeekTag()
	if err != nil {
		return false, err
	}
	switch t {
	case TagFileSize:
		p.FileSize, err = d.DecodeUint(TagFileSize)
	case TagTotalFileSize:
		p.TotalFileSize, err = d.DecodeUint(TagTotalFileSize)
	case TagFileDescriptor:
		p.FileDescriptor, err = d.DecodeBytes(TagFileDescriptor)
	case TagFileID:
		p.FileID, err = d.DecodeBytes(TagFileID)
		if err == nil && len(p.FileID) != 2 {
			err = merry.Prepend(bertlv.ErrInvalidLen, "file identifier")
		}
	case TagDFName:
		p.DFName, err = d.DecodeBytes(TagDFName)
		if err == nil && (len(p.DFName) == 0 || len(p.DFName) > 16) {
			err = merry.Prepend(bertlv.ErrInvalidLen, "df name")
		}
	case TagLifeCycleStatus:
		var v uint64
		v, err = d.DecodeUint(TagLifeCycleStatus)
		if err == nil && v > 0xFF {
			err = merry.Prepend(bertlv.ErrOverflow, "life cycle status")
		}
		p.LifeCycleStatus = uint8(v)
	default:
		return false, nil
	}
	return true, err
}

func (p FileControlParameters) encodeMembers(e *bertlv.Encoder) error {
	if p.FileSize != 0 {
		if err := e.EncodeUint(TagFileSize, p.FileSize); err != nil {
			return err
		}
	}
	if p.TotalFileSize != 0 {
		if err := e.EncodeUint(TagTotalFileSize, p.TotalFileSize); err != nil {
			return err
		}
	}
	if p.FileDescriptor != nil {
		if err := e.EncodeBytes(TagFileDescriptor, p.FileDescriptor); err != nil {
			return err
		}
	}
	if p.FileID != nil {
		if err := e.EncodeBytes(TagFileID, p.FileID); err != nil {
			return err
		}
	}
	if p.DFName != nil {
		if err := e.EncodeBytes(TagDFName, p.DFName); err != nil {
			return err
		}
	}
	if p.LifeCycleStatus != 0 {
		if err := e.EncodeUint(TagLifeCycleStatus, uint64(p.LifeCycleStatus)); err != nil {
			return err
		}
	}
	for _, o := range p.Extra {
		if err := o.EncodeTLV(e); err != nil {
			return err
		}
	}
	return nil
}

func (p FileControlParameters) membersLen() (int, error) {
	n := 0
	if p.FileSize != 0 {
		n += bertlv.EncodedLenUint(TagFileSize, p.FileSize)
	}
	if p.TotalFileSize != 0 {
		n += bertlv.EncodedLenUint(TagTotalFileSize, p.TotalFileSize)
	}
	if p.FileDescriptor != nil {
		m, err := bertlv.EncodedLenBytes(TagFileDescriptor, len(p.FileDescriptor))
		if err != nil {
			return 0, err
		}
		n += m
	}
	if p.FileID != nil {
		m, err := bertlv.EncodedLenBytes(TagFileID, len(p.FileID))
		if err != nil {
			return 0, err
		}
		n += m
	}
	if p.DFName != nil {
		m, err := bertlv.EncodedLenBytes(TagDFName, len(p.DFName))
		if err != nil {
			return 0, err
		}
		n += m
	}
	if p.LifeCycleStatus != 0 {
		n += bertlv.EncodedLenUint(TagLifeCycleStatus, uint64(p.LifeCycleStatus))
	}
	for _, o := range p.Extra {
		m, err := o.EncodedLen()
		if err != nil {
			return 0, err
		}
		n += m
	}
	return n, nil
}

// EncodedLen implements bertlv.Encodable.
func (p FileControlParameters) EncodedLen() (int, error) {
	n, err := p.membersLen()
	if err != nil {
		return 0, err
	}
	return bertlv.Header{Tag: TagFCP, Length: bertlv.Length(n)}.EncodedLen() + n, nil
}

// EncodeTLV implements bertlv.Encodable.
func (p FileControlParameters) EncodeTLV(e *bertlv.Encoder) error {
	return e.Nested(TagFCP, p.encodeMembers)
}

// DecodeTLV implements bertlv.Decodable.
func (p *FileControlParameters) DecodeTLV(d *bertlv.Decoder) error {
	return d.DecodeNested(TagFCP, func(d *bertlv.Decoder) error {
		for d.More() {
			ok, err := p.decodeMember(d)
			if err != nil {
				return err
			}
			if !ok {
				var o bertlv.DataObject
				if err := o.DecodeTLV(d); err != nil {
					return err
				}
				p.Extra = append(p.Extra, o)
			}
		}
		return nil
	})
}

// FileManagementData is the FMD template '64', section 5.3.3. All members
// are optional.
type FileManagementData struct {
	Label             string // '50', ISO 8859-1 on the wire
	URL               string // '5F50'
	DiscretionaryData []byte // '53'
	Extra             []bertlv.DataObject
}

func (m *FileManagementData) decodeMember(d *bertlv.Decoder) (bool, error) {
	t, err := d.PeekTag()
	if err != nil {
		return false, err
	}
	switch t {
	case TagApplicationLabel:
		var b []byte
		if b, err = d.DecodeBytes(TagApplicationLabel); err == nil {
			m.Label, err = decodeLabel(b)
		}
	case TagURL:
		var b []byte
		if b, err = d.DecodeBytes(TagURL); err == nil {
			m.URL = string(b)
		}
	case TagDiscretionaryData:
		m.DiscretionaryData, err = d.DecodeBytes(TagDiscretionaryData)
	default:
		return false, nil
	}
	return true, err
}

func (m FileManagementData) encodeMembers(e *bertlv.Encoder) error {
	if m.Label != "" {
		b, err := encodeLabel(m.Label)
		if err != nil {
			return err
		}
		if err := e.EncodeBytes(TagApplicationLabel, b); err != nil {
			return err
		}
	}
	if m.URL != "" {
		if err := e.EncodeBytes(TagURL, []byte(m.URL)); err != nil {
			return err
		}
	}
	if m.DiscretionaryData != nil {
		if err := e.EncodeBytes(TagDiscretionaryData, m.DiscretionaryData); err != nil {
			return err
		}
	}
	for _, o := range m.Extra {
		if err := o.EncodeTLV(e); err != nil {
			return err
		}
	}
	return nil
}

func (m FileManagementData) membersLen() (int, error) {
	n := 0
	if m.Label != "" {
		b, err := encodeLabel(m.Label)
		if err != nil {
			return 0, err
		}
		l, err := bertlv.EncodedLenBytes(TagApplicationLabel, len(b))
		if err != nil {
			return 0, err
		}
		n += l
	}
	if m.URL != "" {
		l, err := bertlv.EncodedLenBytes(TagURL, len(m.URL))
		if err != nil {
			return 0, err
		}
		n += l
	}
	if m.DiscretionaryData != nil {
		l, err := bertlv.EncodedLenBytes(TagDiscretionaryData, len(m.DiscretionaryData))
		if err != nil {
			return 0, err
		}
		n += l
	}
	for _, o := range m.Extra {
		l, err := o.EncodedLen()
		if err != nil {
			return 0, err
		}
		n += l
	}
	return n, nil
}

// EncodedLen implements bertlv.Encodable.
func (m FileManagementData) EncodedLen() (int, error) {
	n, err := m.membersLen()
	if err != nil {
		return 0, err
	}
	return bertlv.Header{Tag: TagFMD, Length: bertlv.Length(n)}.EncodedLen() + n, nil
}

// EncodeTLV implements bertlv.Encodable.
func (m FileManagementData) EncodeTLV(e *bertlv.Encoder) error {
	return e.Nested(TagFMD, m.encodeMembers)
}

// DecodeTLV implements bertlv.Decodable.
func (m *FileManagementData) DecodeTLV(d *bertlv.Decoder) error {
	return d.DecodeNested(TagFMD, func(d *bertlv.Decoder) error {
		for d.More() {
			ok, err := m.decodeMember(d)
			if err != nil {
				return err
			}
			if !ok {
				var o bertlv.DataObject
				if err := o.DecodeTLV(d); err != nil {
					return err
				}
				m.Extra = append(m.Extra, o)
			}
		}
		return nil
	})
}

// FileControlInfo is the FCI template '6F', the default SELECT response: one
// template carrying control parameter and management data members side by
// side. Members neither group recognizes land in Extra.
type FileControlInfo struct {
	Parameters FileControlParameters
	Management FileManagementData
	Extra      []bertlv.DataObject
}

// EncodedLen implements bertlv.Encodable.
func (f FileControlInfo) EncodedLen() (int, error) {
	n, err := f.Parameters.membersLen()
	if err != nil {
		return 0, err
	}
	m, err := f.Management.membersLen()
	if err != nil {
		return 0, err
	}
	n += m
	for _, o := range f.Extra {
		l, err := o.EncodedLen()
		if err != nil {
			return 0, err
		}
		n += l
	}
	return bertlv.Header{Tag: TagFCI, Length: bertlv.Length(n)}.EncodedLen() + n, nil
}

// EncodeTLV implements bertlv.Encodable.
func (f FileControlInfo) EncodeTLV(e *bertlv.Encoder) error {
	return e.Nested(TagFCI, func(e *bertlv.Encoder) error {
		if err := f.Parameters.encodeMembers(e); err != nil {
			return err
		}
		if err := f.Management.encodeMembers(e); err != nil {
			return err
		}
		for _, o := range f.Extra {
			if err := o.EncodeTLV(e); err != nil {
				return err
			}
		}
		return nil
	})
}

// DecodeTLV implements bertlv.Decodable.
func (f *FileControlInfo) DecodeTLV(d *bertlv.Decoder) error {
	return d.DecodeNested(TagFCI, func(d *bertlv.Decoder) error {
		for d.More() {
			ok, err := f.Parameters.decodeMember(d)
			if err != nil {
				return err
			}
			if ok {
				continue
			}
			if ok, err = f.Management.decodeMember(d); err != nil {
				return err
			}
			if ok {
				continue
			}
			var o bertlv.DataObject
			if err := o.DecodeTLV(d); err != nil {
				return err
			}
			f.Extra = append(f.Extra, o)
		}
		return nil
	})
}

// SelectResponse is the sum of the three templates a SELECT can return.
// Exactly one of the fields is set after a decode.
type SelectResponse struct {
	FCI *FileControlInfo
	FCP *FileControlParameters
	FMD *FileManagementData
}

// DecodeTLV implements bertlv.Decodable, dispatching on the template tag.
func (r *SelectResponse) DecodeTLV(d *bertlv.Decoder) error {
	r.FCI, r.FCP, r.FMD = nil, nil, nil
	return d.DecodeChoice(
		bertlv.ChoiceOption{Tag: TagFCI, Decode: func(d *bertlv.Decoder) error {
			r.FCI = &FileControlInfo{}
			return r.FCI.DecodeTLV(d)
		}},
		bertlv.ChoiceOption{Tag: TagFCP, Decode: func(d *bertlv.Decoder) error {
			r.FCP = &FileControlParameters{}
			return r.FCP.DecodeTLV(d)
		}},
		bertlv.ChoiceOption{Tag: TagFMD, Decode: func(d *bertlv.Decoder) error {
			r.FMD = &FileManagementData{}
			return r.FMD.DecodeTLV(d)
		}},
	)
}

func (r SelectResponse) template() (bertlv.Encodable, error) {
	switch {
	case r.FCI != nil:
		return *r.FCI, nil
	case r.FCP != nil:
		return *r.FCP, nil
	case r.FMD != nil:
		return *r.FMD, nil
	}
	return nil, merry.Prepend(ErrMissingMember, "select response template")
}

// EncodedLen implements bertlv.Encodable.
func (r SelectResponse) EncodedLen() (int, error) {
	t, err := r.template()
	if err != nil {
		return 0, err
	}
	return t.EncodedLen()
}

// EncodeTLV implements bertlv.Encodable.
func (r SelectResponse) EncodeTLV(e *bertlv.Encoder) error {
	t, err := r.template()
	if err != nil {
		return err
	}
	return t.EncodeTLV(e)
}
