package wasm

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-introspect/errors"
	wbin "github.com/wippyai/wasm-introspect/wasm/internal/binary"
)

// sectionCursor returns a cursor positioned at the start of rec that cannot read past its end.
func sectionCursor(data []byte, rec SectionRecord) (*wbin.Cursor, error) {
	if rec.Start < 0 || rec.End() > len(data) {
		return nil, errors.New(errors.PhaseDecode, errors.KindFormat).
			Section(rec.Name()).
			Offset(rec.Start).
			Detail("section [%d, %d) outside buffer of %d bytes", rec.Start, rec.End(), len(data)).
			Build()
	}
	c := wbin.NewCursor(data[:rec.End()])
	if err := c.Seek(rec.Start); err != nil {
		return nil, decodeError(rec, c, err)
	}
	return c, nil
}

func decodeError(rec SectionRecord, c *wbin.Cursor, err error) error {
	return errors.New(errors.PhaseDecode, errors.KindFormat).
		Section(rec.Name()).
		Offset(c.Position()).
		Cause(err).
		Build()
}

// readCount reads a vector length. Every entry takes at least one byte, so a
// count larger than the bytes left in the section is malformed.
func readCount(rec SectionRecord, c *wbin.Cursor) (uint32, error) {
	at := c.Position()
	count, err := c.ReadU32()
	if err != nil {
		return 0, decodeError(rec, c, err)
	}
	if int64(count) > int64(c.Remaining()) {
		return 0, errors.New(errors.PhaseDecode, errors.KindFormat).
			Section(rec.Name()).
			Offset(at).
			Detail("count %d exceeds remaining %d bytes", count, c.Remaining()).
			Build()
	}
	return count, nil
}

// DecodeTypes decodes the function signatures of a type section.
func DecodeTypes(data []byte, rec SectionRecord) ([]FuncType, error) {
	c, err := sectionCursor(data, rec)
	if err != nil {
		return nil, err
	}
	count, err := readCount(rec, c)
	if err != nil {
		return nil, err
	}

	types := make([]FuncType, count)
	for i := uint32(0); i < count; i++ {
		at := c.Position()
		form, err := c.ReadByte()
		if err != nil {
			return nil, decodeError(rec, c, err)
		}
		if form != FuncTypeByte {
			return nil, errors.UnsupportedForm(at, form)
		}
		if types[i].Params, err = readValTypes(rec, c); err != nil {
			return nil, err
		}
		if types[i].Results, err = readValTypes(rec, c); err != nil {
			return nil, err
		}
	}
	return types, nil
}

func readValTypes(rec SectionRecord, c *wbin.Cursor) ([]ValType, error) {
	n, err := readCount(rec, c)
	if err != nil {
		return nil, err
	}
	raw, err := c.Advance(int(n))
	if err != nil {
		return nil, decodeError(rec, c, err)
	}
	types := make([]ValType, n)
	for i, b := range raw {
		types[i] = ValType(b)
	}
	return types, nil
}

// DecodeImports walks an import section and counts function imports.
// Table, memory and global descriptors are consumed but not retained.
func DecodeImports(data []byte, rec SectionRecord) (ImportSummary, error) {
	var summary ImportSummary

	c, err := sectionCursor(data, rec)
	if err != nil {
		return summary, err
	}
	count, err := readCount(rec, c)
	if err != nil {
		return summary, err
	}

	for i := uint32(0); i < count; i++ {
		if _, err := c.ReadName(); err != nil {
			return summary, decodeError(rec, c, err)
		}
		if _, err := c.ReadName(); err != nil {
			return summary, decodeError(rec, c, err)
		}
		at := c.Position()
		kind, err := c.ReadByte()
		if err != nil {
			return summary, decodeError(rec, c, err)
		}

		switch ExternKind(kind) {
		case KindFunc:
			if _, err := c.ReadU32(); err != nil {
				return summary, decodeError(rec, c, err)
			}
			summary.FunctionImports++
		case KindTable:
			if _, err := c.ReadByte(); err != nil {
				return summary, decodeError(rec, c, err)
			}
			if err := skipLimits(c); err != nil {
				return summary, decodeError(rec, c, err)
			}
		case KindMemory:
			if err := skipLimits(c); err != nil {
				return summary, decodeError(rec, c, err)
			}
		case KindGlobal:
			// value type, mutability
			if _, err := c.Advance(2); err != nil {
				return summary, decodeError(rec, c, err)
			}
		default:
			return summary, errors.UnknownImportKind(at, kind)
		}
	}
	return summary, nil
}

func skipLimits(c *wbin.Cursor) error {
	flags, err := c.ReadByte()
	if err != nil {
		return err
	}
	if _, err := c.ReadU32(); err != nil {
		return err
	}
	if flags&LimitsHasMax != 0 {
		if _, err := c.ReadU32(); err != nil {
			return err
		}
	}
	return nil
}

// DecodeFunctions decodes the type index of each locally-defined function.
// Entry i belongs to raw function index i + ImportSummary.FunctionImports.
func DecodeFunctions(data []byte, rec SectionRecord) ([]uint32, error) {
	c, err := sectionCursor(data, rec)
	if err != nil {
		return nil, err
	}
	count, err := readCount(rec, c)
	if err != nil {
		return nil, err
	}

	funcs := make([]uint32, count)
	for i := range funcs {
		if funcs[i], err = c.ReadU32(); err != nil {
			return nil, decodeError(rec, c, err)
		}
	}
	return funcs, nil
}

// DecodeExports decodes export entries in encounter order.
// Kind bytes are kept as-is; only function exports take part in resolution.
func DecodeExports(data []byte, rec SectionRecord) ([]Export, error) {
	c, err := sectionCursor(data, rec)
	if err != nil {
		return nil, err
	}
	count, err := readCount(rec, c)
	if err != nil {
		return nil, err
	}

	exports := make([]Export, count)
	for i := range exports {
		name, err := c.ReadName()
		if err != nil {
			return nil, decodeError(rec, c, err)
		}
		kind, err := c.ReadByte()
		if err != nil {
			return nil, decodeError(rec, c, err)
		}
		idx, err := c.ReadU32()
		if err != nil {
			return nil, decodeError(rec, c, err)
		}
		exports[i] = Export{Name: name, Kind: ExternKind(kind), Index: idx}
	}

	Logger().Debug("decoded exports", zap.Int("count", len(exports)))
	return exports, nil
}
