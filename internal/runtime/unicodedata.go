// unicodedata backs SPEC_FULL.md's supplemented unicodedata module
// (east_asian_width), grounded on golang.org/x/text/width — already in
// go.mod — mapped onto CPython's narrower Na/N/W/F/H/A vocabulary.
package runtime

import (
	"context"
	"fmt"

	"golang.org/x/text/width"

	"github.com/aledsdavies/pycc/internal/value"
)

func registerUnicodedata(r *Registry) {
	r.register("unicodedata", map[string]Fn{
		"east_asian_width": unicodedataEastAsianWidth,
	})
}

func unicodedataEastAsianWidth(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("east_asian_width takes 1 argument")
	}
	s := args[0].Str
	if len(s) == 0 {
		return value.Value{}, fmt.Errorf("east_asian_width: argument must be a single character")
	}
	r := []rune(s)[0]
	p := width.LookupRune(r)
	var code string
	switch p.Kind() {
	case width.EastAsianFullwidth:
		code = "F"
	case width.EastAsianHalfwidth:
		code = "H"
	case width.EastAsianWide:
		code = "W"
	case width.EastAsianNarrow:
		code = "Na"
	case width.EastAsianAmbiguous:
		code = "A"
	default:
		code = "N"
	}
	return value.Str(code), nil
}
