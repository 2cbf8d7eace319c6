package wasm

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-introspect/errors"
	wbin "github.com/wippyai/wasm-introspect/wasm/internal/binary"
)

var magicBytes = [4]byte{0x00, 0x61, 0x73, 0x6D}

// ReadHeader checks the magic number and returns the version field.
// The version is not required to equal Version.
func ReadHeader(data []byte) (uint32, error) {
	c := wbin.NewCursor(data)

	magic, err := c.Advance(4)
	if err != nil {
		return 0, errors.Format(errors.PhaseHeader, c.Position(), "truncated magic")
	}
	if [4]byte(magic) != magicBytes {
		err := errors.InvalidModule(fmt.Sprintf("bad magic % x", magic))
		err.Value = binary.LittleEndian.Uint32(magic)
		return 0, err
	}

	version, err := c.Advance(4)
	if err != nil {
		return 0, errors.Format(errors.PhaseHeader, c.Position(), "truncated version")
	}
	v := binary.LittleEndian.Uint32(version)
	if v != Version {
		Logger().Debug("unrecognized module version", zap.Uint32("version", v))
	}
	return v, nil
}

// Sections is the ordered top-level section table of a module.
type Sections []SectionRecord

// ScanSections walks the section headers following the module header without
// interpreting section contents. The records tile data[HeaderSize:] exactly.
func ScanSections(data []byte) (Sections, error) {
	c := wbin.NewCursor(data)
	if err := c.Seek(HeaderSize); err != nil {
		return nil, errors.Format(errors.PhaseScan, len(data), "buffer shorter than module header")
	}

	var secs Sections
	for c.Remaining() > 0 {
		headerAt := c.Position()
		id, err := c.ReadByte()
		if err != nil {
			return nil, scanError(c, err)
		}
		length, err := c.ReadU32()
		if err != nil {
			return nil, scanError(c, err)
		}
		rec := SectionRecord{ID: id, Length: length, Start: c.Position()}
		if _, err := c.Advance(int(length)); err != nil {
			return nil, errors.New(errors.PhaseScan, errors.KindFormat).
				Section(rec.Name()).
				Offset(headerAt).
				Detail("section length %d exceeds remaining %d bytes", length, c.Remaining()).
				Cause(err).
				Build()
		}
		secs = append(secs, rec)
	}

	if debugEnabled() {
		for _, s := range secs {
			Logger().Debug("section",
				zap.String("name", s.Name()),
				zap.Int("start", s.Start),
				zap.Uint32("length", s.Length))
		}
	}
	return secs, nil
}

func scanError(c *wbin.Cursor, err error) error {
	return errors.New(errors.PhaseScan, errors.KindFormat).
		Offset(c.Position()).
		Cause(err).
		Build()
}

// First returns the first record with the given ID. Later duplicates are ignored.
func (s Sections) First(id byte) (SectionRecord, bool) {
	for _, rec := range s {
		if rec.ID == id {
			return rec, true
		}
	}
	return SectionRecord{}, false
}

// Duplicates returns the IDs of non-custom sections that appear more than once.
func (s Sections) Duplicates() []byte {
	seen := make(map[byte]int, len(s))
	var dups []byte
	for _, rec := range s {
		if rec.ID == SectionCustom {
			continue
		}
		seen[rec.ID]++
		if seen[rec.ID] == 2 {
			dups = append(dups, rec.ID)
		}
	}
	return dups
}
