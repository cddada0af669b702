package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestDecodeMap(t *testing.T) {
	m := map[string]any{"name": "Sugar", "price": 3200.0, "barcode": "6001"}

	p, err := DecodeMap[product](m)
	require.NoError(t, err)
	assert.Equal(t, product{Name: "Sugar", Price: 3200}, p)

	_, err = DecodeMapStrict[product](m)
	assert.Error(t, err)

	_, err = DecodeMap[product](map[string]any{"price": "free"})
	assert.Error(t, err)
}
