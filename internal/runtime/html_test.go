package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/pycc/internal/value"
)

func TestHTMLEscapeWithAndWithoutQuotes(t *testing.T) {
	ctx := context.Background()

	noQuotes, err := htmlEscape(ctx, []value.Value{value.Str(`<a href="x">'y'</a>`), value.Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, `&lt;a href="x"&gt;'y'&lt;/a&gt;`, noQuotes.Str)

	withQuotes, err := htmlEscape(ctx, []value.Value{value.Str(`<a href="x">'y'</a>`), value.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, `&lt;a href=&quot;x&quot;&gt;&#x27;y&#x27;&lt;/a&gt;`, withQuotes.Str)
}

func TestHTMLUnescape(t *testing.T) {
	got, err := htmlUnescape(context.Background(), []value.Value{value.Str("&lt;b&gt;&amp;&lt;/b&gt;")})
	require.NoError(t, err)
	assert.Equal(t, "<b>&</b>", got.Str)
}
