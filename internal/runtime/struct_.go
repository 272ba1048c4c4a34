// struct backs spec.md §4.5's struct module (pack/unpack/calcsize over
// a CPython-style format string), using stdlib encoding/binary for the
// actual byte layout — the pack carries no binary-codec library, and
// binary.Write/Read is the idiomatic Go equivalent of struct.pack.
package runtime

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerStruct(r *Registry) {
	r.register("struct", map[string]Fn{
		"pack":     structPack,
		"unpack":   structUnpack,
		"calcsize": structCalcsize,
	})
}

type structField struct {
	code rune
	size int
}

func parseStructFormat(format string) (binary.ByteOrder, []structField, error) {
	order := binary.LittleEndian
	i := 0
	if len(format) > 0 {
		switch format[0] {
		case '<':
			order = binary.LittleEndian
			i = 1
		case '>', '!':
			order = binary.BigEndian
			i = 1
		case '=':
			order = binary.LittleEndian
			i = 1
		}
	}
	var fields []structField
	for ; i < len(format); i++ {
		var size int
		switch format[i] {
		case 'b', 'B', 's', 'x':
			size = 1
		case 'h', 'H':
			size = 2
		case 'i', 'I', 'l', 'L', 'f':
			size = 4
		case 'q', 'Q', 'd':
			size = 8
		default:
			return nil, nil, fmt.Errorf("struct: unsupported format code %q", format[i])
		}
		fields = append(fields, structField{code: rune(format[i]), size: size})
	}
	return order, fields, nil
}

func structCalcsize(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("calcsize takes 1 argument")
	}
	_, fields, err := parseStructFormat(args[0].Str)
	if err != nil {
		return value.Value{}, err
	}
	total := 0
	for _, f := range fields {
		total += f.size
	}
	return value.Int(int64(total)), nil
}

func structPack(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("pack takes 2 arguments")
	}
	order, fields, err := parseStructFormat(args[0].Str)
	if err != nil {
		return value.Value{}, err
	}
	values := args[1].List.Elems
	if len(values) != len(fields) {
		return value.Value{}, fmt.Errorf("struct: pack expected %d values, got %d", len(fields), len(values))
	}
	var buf bytes.Buffer
	for i, f := range fields {
		v := values[i]
		switch f.code {
		case 'b':
			binary.Write(&buf, order, int8(v.Int))
		case 'B':
			binary.Write(&buf, order, uint8(v.Int))
		case 'h':
			binary.Write(&buf, order, int16(v.Int))
		case 'H':
			binary.Write(&buf, order, uint16(v.Int))
		case 'i', 'l':
			binary.Write(&buf, order, int32(v.Int))
		case 'I', 'L':
			binary.Write(&buf, order, uint32(v.Int))
		case 'q':
			binary.Write(&buf, order, v.Int)
		case 'Q':
			binary.Write(&buf, order, uint64(v.Int))
		case 'f':
			binary.Write(&buf, order, float32(v.Float))
		case 'd':
			binary.Write(&buf, order, v.Float)
		case 's':
			b := bytesOf(v)
			if len(b) == 0 {
				buf.WriteByte(0)
			} else {
				buf.WriteByte(b[0])
			}
		case 'x':
			buf.WriteByte(0)
		}
	}
	return value.Bytes(buf.Bytes()), nil
}

func structUnpack(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("unpack takes 2 arguments")
	}
	order, fields, err := parseStructFormat(args[0].Str)
	if err != nil {
		return value.Value{}, err
	}
	r := bytes.NewReader(bytesOf(args[1]))
	out := make([]value.Value, 0, len(fields))
	for _, f := range fields {
		switch f.code {
		case 'b':
			var x int8
			binary.Read(r, order, &x)
			out = append(out, value.Int(int64(x)))
		case 'B':
			var x uint8
			binary.Read(r, order, &x)
			out = append(out, value.Int(int64(x)))
		case 'h':
			var x int16
			binary.Read(r, order, &x)
			out = append(out, value.Int(int64(x)))
		case 'H':
			var x uint16
			binary.Read(r, order, &x)
			out = append(out, value.Int(int64(x)))
		case 'i', 'l':
			var x int32
			binary.Read(r, order, &x)
			out = append(out, value.Int(int64(x)))
		case 'I', 'L':
			var x uint32
			binary.Read(r, order, &x)
			out = append(out, value.Int(int64(x)))
		case 'q':
			var x int64
			binary.Read(r, order, &x)
			out = append(out, value.Int(x))
		case 'Q':
			var x uint64
			binary.Read(r, order, &x)
			out = append(out, value.Int(int64(x)))
		case 'f':
			var x float32
			binary.Read(r, order, &x)
			out = append(out, value.Float(float64(x)))
		case 'd':
			var x float64
			binary.Read(r, order, &x)
			out = append(out, value.Float(x))
		case 's':
			b := make([]byte, 1)
			r.Read(b)
			out = append(out, value.Bytes(b))
		case 'x':
			r.Seek(1, 1)
		}
	}
	return value.Value{Kind: value.KList, List: value.NewList(out...)}, nil
}
