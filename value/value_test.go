package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_Accessors(t *testing.T) {
	require.Equal(t, KindNone, None().Kind())
	require.Equal(t, KindUnit, Unit().Kind())

	b, err := Bool(true).AsBool()
	require.NoError(t, err)
	require.True(t, b)

	n, err := FromInt64(-5).AsInteger()
	require.NoError(t, err)
	require.True(t, n.IsNegative())
}

func TestValue_WrongKindFails(t *testing.T) {
	_, err := Bool(true).AsInteger()
	require.Error(t, err)
}

func TestValue_BytesStringPromotion(t *testing.T) {
	s, err := Bytes([]byte("hello")).AsString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	_, err = Bytes([]byte{0xff, 0xfe}).AsString()
	require.Error(t, err)
}

func TestValue_Equal_BytesStringRelaxation(t *testing.T) {
	require.True(t, String("hello").Equal(Bytes([]byte("hello"))))
	require.True(t, Bytes([]byte("hello")).Equal(String("hello")))
	require.False(t, String("hello").Equal(Bytes([]byte{0xff, 0xfe})))
}

func TestValue_Equal_Sequence(t *testing.T) {
	a := Sequence([]Value{FromInt64(1), String("x")})
	b := Sequence([]Value{FromInt64(1), String("x")})
	c := Sequence([]Value{FromInt64(2)})

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestValue_Equal_Mappings_PreservesOrderAndDuplicates(t *testing.T) {
	a := Mappings([]Mapping{
		{Key: String("k"), Value: FromInt64(1)},
		{Key: String("k"), Value: FromInt64(2)},
	})
	b := Mappings([]Mapping{
		{Key: String("k"), Value: FromInt64(1)},
		{Key: String("k"), Value: FromInt64(2)},
	})

	require.True(t, a.Equal(b))

	mappings, err := a.AsMappings()
	require.NoError(t, err)
	require.Len(t, mappings, 2)
}

func TestValue_Equal_Named(t *testing.T) {
	a := NamedValue("Some", FromInt64(1))
	b := NamedValue("Some", FromInt64(1))
	c := NamedValue("None", Unit())

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}
