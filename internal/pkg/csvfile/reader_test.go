package csvfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrandle/image-downloader/internal/entity"
)

func TestParse(t *testing.T) {
	data := []byte("name,1000image,price\nshirt,https://x/a.png,10\nhat,https://x/b.png,5\n")

	prep, err := Parse("products.csv", data)
	require.NoError(t, err)

	assert.Equal(t, "products.csv", prep.Filename)
	assert.Equal(t, []string{"name", "1000image", "price"}, prep.Columns)
	assert.Len(t, prep.Records, 2)
}

func TestParseStripsBOM(t *testing.T) {
	data := []byte("\xef\xbb\xbfname,url\na,b\n")

	prep, err := Parse("bom.csv", data)
	require.NoError(t, err)
	assert.Equal(t, "name", prep.Columns[0])
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty file", data: nil},
		{name: "blank header", data: []byte("\n")},
		{name: "unterminated quote", data: []byte("a,\"b\nc,d\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.csv", tt.data)
			assert.ErrorIs(t, err, entity.ErrMalformedCSV)
		})
	}
}

func TestParseHeaderOnly(t *testing.T) {
	prep, err := Parse("empty.csv", []byte("name,url\n"))
	require.NoError(t, err)
	assert.Len(t, prep.Columns, 2)
	assert.Empty(t, prep.Records)
}

func TestColumnExtraction(t *testing.T) {
	data := []byte("name,url\na,https://x/1.png\nb\nc,\n")

	prep, err := Parse("ragged.csv", data)
	require.NoError(t, err)

	cells, ok := prep.Column("url")
	require.True(t, ok)
	// short rows contribute an empty cell so accounting stays per-row
	assert.Equal(t, []string{"https://x/1.png", "", ""}, cells)

	_, ok = prep.Column("missing")
	assert.False(t, ok)
}
