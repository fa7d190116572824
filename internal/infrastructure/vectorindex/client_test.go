package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointID_DeterministicAnd63Bit(t *testing.T) {
	a := PointID("carbonara")
	b := PointID("carbonara")
	c := PointID("bolognese")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Less(t, a, uint64(1)<<63)
}
