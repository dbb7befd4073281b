package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/builtin"
	"github.com/flowbylang/flowby/internal/value"
)

func TestRandomIntRespectsBounds(t *testing.T) {
	ns := builtin.RandomNamespace{}
	for i := 0; i < 50; i++ {
		v, err := ns.Invoke("int", []value.Value{value.Int(5), value.Int(10)}, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.AsInt(), int64(5))
		assert.Less(t, v.AsInt(), int64(10))
	}
}

func TestRandomIntRejectsNonPositiveBound(t *testing.T) {
	_, err := builtin.RandomNamespace{}.Invoke("int", []value.Value{value.Int(0)}, nil)
	require.Error(t, err)
}

func TestRandomChoicePicksAnElementFromTheList(t *testing.T) {
	list := value.ListOf([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
	v, err := builtin.RandomNamespace{}.Invoke("choice", []value.Value{list}, nil)
	require.NoError(t, err)
	assert.Contains(t, []int64{1, 2, 3}, v.AsInt())
}

func TestRandomChoiceOfEmptyListIsAnError(t *testing.T) {
	_, err := builtin.RandomNamespace{}.Invoke("choice", []value.Value{value.ListOf(nil)}, nil)
	require.Error(t, err)
}

func TestRandomShuffleKeepsAllElements(t *testing.T) {
	list := value.ListOf([]value.Value{value.Int(1), value.Int(2), value.Int(3), value.Int(4)})
	v, err := builtin.RandomNamespace{}.Invoke("shuffle", []value.Value{list}, nil)
	require.NoError(t, err)
	assert.Len(t, v.AsList().Items(), 4)
}
