// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"math"
	"reflect"

	"github.com/binproto/binproto/bitio"
)

// DiscriminantType is the wire type of a tagged union's discriminant.
type DiscriminantType uint8

const (
	// DiscriminantUint8 transmits the tag as an unsigned byte.
	DiscriminantUint8 DiscriminantType = iota
	// DiscriminantUint16 transmits the tag as a 16-bit unsigned
	// integer in the settings' byte order.
	DiscriminantUint16
	// DiscriminantUint32 transmits the tag as a 32-bit unsigned
	// integer in the settings' byte order.
	DiscriminantUint32
	// DiscriminantUint64 transmits the tag as a 64-bit unsigned
	// integer in the settings' byte order.
	DiscriminantUint64
	// DiscriminantString transmits the tag as a uint32
	// length-prefixed UTF-8 string.
	DiscriminantString
)

func (t DiscriminantType) size() int {
	switch t {
	case DiscriminantUint8:
		return 1
	case DiscriminantUint16:
		return 2
	case DiscriminantUint32:
		return 4
	default:
		return 8
	}
}

func (t DiscriminantType) max() uint64 {
	if t == DiscriminantUint64 {
		return math.MaxUint64
	}
	return uint64(1)<<(8*t.size()) - 1
}

// Discriminant is a resolved tag value: the integer or string that
// identifies a union's active variant on the wire.
type Discriminant struct {
	Type DiscriminantType
	Uint uint64
	Str  string
}

// String renders the discriminant for logging and errors.
func (d Discriminant) String() string {
	if d.Type == DiscriminantString {
		return fmt.Sprintf("%q", d.Str)
	}
	return fmt.Sprintf("%d", d.Uint)
}

type variant[T any] struct {
	name  string
	uval  uint64
	sval  string
	typ   reflect.Type
	read  func(*bitio.Reader, *Settings) (T, error)
	write func(*bitio.Writer, *Settings, T) error
}

// Union is the closed variant table of a tagged union over the sum
// type T (normally an interface implemented by every variant type).
// The table is built once at package init via NewUnion and AddVariant
// and is read-only afterwards; reads and writes through a built table
// are safe to run sequentially from any goroutine that owns its
// stream.
//
// Tag resolution has three stages: before a read or write the tag is
// unresolved; reading or writing the discriminant (or receiving an
// external tag) makes it known; decoding or encoding the variant's
// own fields completes resolution. An unknown tag is a first-class
// result, reported as *UnknownDiscriminantError, never a panic.
type Union[T any] struct {
	name string
	disc DiscriminantType

	byType map[reflect.Type]*variant[T]
	byUint map[uint64]*variant[T]
	byStr  map[string]*variant[T]

	// next is the next implicit integer discriminant. It starts at
	// 1: zero is reserved and never assigned implicitly. An
	// explicit value moves the counter past it.
	next uint64
}

// NewUnion creates an empty variant table. The name appears in error
// reporting.
func NewUnion[T any](name string, disc DiscriminantType) *Union[T] {
	return &Union[T]{
		name:   name,
		disc:   disc,
		byType: make(map[reflect.Type]*variant[T]),
		byUint: make(map[uint64]*variant[T]),
		byStr:  make(map[string]*variant[T]),
		next:   1,
	}
}

// Name returns the union's declared name.
func (u *Union[T]) Name() string { return u.name }

// VariantOption customizes a variant registration.
type VariantOption func(*variantConfig)

type variantConfig struct {
	name string
	uval *uint64
	sval *string
}

// WithDiscriminant assigns an explicit integer discriminant. Explicit
// values must be unique within the union; zero is permitted only
// explicitly.
func WithDiscriminant(v uint64) VariantOption {
	return func(c *variantConfig) { c.uval = &v }
}

// WithStringDiscriminant assigns an explicit string discriminant for
// unions with DiscriminantString. The default is the variant's type
// name.
func WithStringDiscriminant(s string) VariantOption {
	return func(c *variantConfig) { c.sval = &s }
}

// WithVariantName overrides the variant's reported name (and, for
// string discriminants, the implicit tag).
func WithVariantName(name string) VariantOption {
	return func(c *variantConfig) { c.name = name }
}

// AddVariant registers the concrete type V as a variant of u, with
// its field codec given by read and write. Registration order defines
// implicit discriminants: sequential integers starting at 1 (an
// explicit value moves the counter past itself), or the variant name
// for string unions.
//
// AddVariant panics on misconfiguration: duplicate discriminants,
// duplicate variant types, V not assignable to T, an out-of-range
// explicit value. Union tables are built at package init, so these
// are programmer errors surfaced at startup, not runtime decode
// faults.
func AddVariant[V any, T any](u *Union[T], read ReadFunc[V], write WriteFunc[V], opts ...VariantOption) {
	vtyp := reflect.TypeOf((*V)(nil)).Elem()
	ttyp := reflect.TypeOf((*T)(nil)).Elem()
	if ttyp.Kind() == reflect.Interface && !vtyp.Implements(ttyp) {
		panic(fmt.Sprintf("codec: union %s: variant type %s does not implement %s", u.name, vtyp, ttyp))
	}
	if _, dup := u.byType[vtyp]; dup {
		panic(fmt.Sprintf("codec: union %s: variant type %s registered twice", u.name, vtyp))
	}

	var cfg variantConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	name := cfg.name
	if name == "" {
		name = vtyp.Name()
	}

	ent := &variant[T]{
		name: name,
		typ:  vtyp,
		read: func(r *bitio.Reader, s *Settings) (T, error) {
			v, err := read(r, s)
			if err != nil {
				var zero T
				return zero, err
			}
			return any(v).(T), nil
		},
		write: func(w *bitio.Writer, s *Settings, val T) error {
			return write(w, s, any(val).(V))
		},
	}

	if u.disc == DiscriminantString {
		sval := name
		if cfg.sval != nil {
			sval = *cfg.sval
		}
		if _, dup := u.byStr[sval]; dup {
			panic(fmt.Sprintf("codec: union %s: duplicate discriminant %q", u.name, sval))
		}
		ent.sval = sval
		u.byStr[sval] = ent
	} else {
		uval := u.next
		if cfg.uval != nil {
			uval = *cfg.uval
		}
		if uval > u.disc.max() {
			panic(fmt.Sprintf("codec: union %s: discriminant %d does not fit %d-bit tag", u.name, uval, 8*u.disc.size()))
		}
		if _, dup := u.byUint[uval]; dup {
			panic(fmt.Sprintf("codec: union %s: duplicate discriminant %d", u.name, uval))
		}
		ent.uval = uval
		u.byUint[uval] = ent
		if uval >= u.next {
			u.next = uval + 1
		}
	}

	u.byType[vtyp] = ent
}

// Read decodes an internally tagged value: the discriminant is read
// from the stream, resolved against the variant table, and the active
// variant's fields follow. A tag absent from the table fails with
// *UnknownDiscriminantError carrying the raw value; no variant is
// partially resolved.
func (u *Union[T]) Read(r *bitio.Reader, s *Settings) (T, error) {
	var zero T
	ent, err := u.readTag(r, s)
	if err != nil {
		return zero, err
	}
	return ent.read(r, s)
}

// Write encodes an internally tagged value: the active variant's
// discriminant followed by its fields, in the same order as a plain
// aggregate.
func (u *Union[T]) Write(w *bitio.Writer, s *Settings, v T) error {
	ent, err := u.variantOf(v)
	if err != nil {
		return err
	}
	if err := u.writeTag(w, s, ent); err != nil {
		return err
	}
	return ent.write(w, s, v)
}

// ReadTagged decodes an externally tagged value: the discriminant is
// supplied by the caller (typically from an outer routing layer) and
// is not present in the stream. The tag must be convertible to the
// union's discriminant type; failure is *TagConversionError.
func (u *Union[T]) ReadTagged(r *bitio.Reader, s *Settings, tag any) (T, error) {
	var zero T
	ent, err := u.resolveExternal(tag)
	if err != nil {
		return zero, err
	}
	return ent.read(r, s)
}

// WriteTagged encodes only the variant's fields, for callers whose
// outer protocol layer carries the tag.
func (u *Union[T]) WriteTagged(w *bitio.Writer, s *Settings, v T) error {
	ent, err := u.variantOf(v)
	if err != nil {
		return err
	}
	return ent.write(w, s, v)
}

// Discriminant returns the discriminant of a fully formed value
// without writing anything. Dispatch code uses it to label an
// already-constructed packet.
func (u *Union[T]) Discriminant(v T) (Discriminant, error) {
	ent, err := u.variantOf(v)
	if err != nil {
		return Discriminant{}, err
	}
	return Discriminant{Type: u.disc, Uint: ent.uval, Str: ent.sval}, nil
}

func (u *Union[T]) variantOf(v T) (*variant[T], error) {
	ent, ok := u.byType[reflect.TypeOf(v)]
	if !ok {
		return nil, &ConfigError{
			Aggregate: u.name,
			Message:   fmt.Sprintf("value of type %T is not a registered variant", v),
		}
	}
	return ent, nil
}

func (u *Union[T]) readTag(r *bitio.Reader, s *Settings) (*variant[T], error) {
	if u.disc == DiscriminantString {
		sv, err := ReadString(r, s, nil)
		if err != nil {
			return nil, err
		}
		ent, ok := u.byStr[sv]
		if !ok {
			return nil, &UnknownDiscriminantError{Union: u.name, Raw: sv}
		}
		return ent, nil
	}
	raw, err := readUintField(r, s, nil, u.disc.size())
	if err != nil {
		return nil, err
	}
	ent, ok := u.byUint[raw]
	if !ok {
		return nil, &UnknownDiscriminantError{Union: u.name, Raw: raw}
	}
	return ent, nil
}

func (u *Union[T]) writeTag(w *bitio.Writer, s *Settings, ent *variant[T]) error {
	if u.disc == DiscriminantString {
		return WriteString(w, s, nil, ent.sval)
	}
	return writeUintField(w, s, nil, u.disc.size(), ent.uval, "discriminant")
}

// resolveExternal converts a caller-supplied tag to the union's
// discriminant type and looks it up. Accepted forms: any integer kind
// (for integer unions, if representable), string (for string unions),
// or a Discriminant of the matching type.
func (u *Union[T]) resolveExternal(tag any) (*variant[T], error) {
	if d, ok := tag.(Discriminant); ok {
		if d.Type != u.disc {
			return nil, &TagConversionError{Union: u.name, Tag: tag}
		}
		if u.disc == DiscriminantString {
			tag = d.Str
		} else {
			tag = d.Uint
		}
	}

	if u.disc == DiscriminantString {
		sv, ok := tag.(string)
		if !ok {
			return nil, &TagConversionError{Union: u.name, Tag: tag}
		}
		ent, ok := u.byStr[sv]
		if !ok {
			return nil, &UnknownDiscriminantError{Union: u.name, Raw: sv}
		}
		return ent, nil
	}

	uval, err := tagToUint(tag)
	if err != nil {
		return nil, &TagConversionError{Union: u.name, Tag: tag}
	}
	if uval > u.disc.max() {
		return nil, &TagConversionError{Union: u.name, Tag: tag}
	}
	ent, ok := u.byUint[uval]
	if !ok {
		return nil, &UnknownDiscriminantError{Union: u.name, Raw: uval}
	}
	return ent, nil
}

func tagToUint(tag any) (uint64, error) {
	rv := reflect.ValueOf(tag)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < 0 {
			return 0, fmt.Errorf("negative tag %d", n)
		}
		return uint64(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	default:
		return 0, fmt.Errorf("tag kind %s is not an integer", rv.Kind())
	}
}

// ReadUnit decodes a variant with no fields.
func ReadUnit[V any](r *bitio.Reader, s *Settings) (V, error) {
	var v V
	return v, nil
}

// WriteUnit encodes a variant with no fields.
func WriteUnit[V any](w *bitio.Writer, s *Settings, v V) error {
	return nil
}
