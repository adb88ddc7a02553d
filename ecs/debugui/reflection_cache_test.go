package debugui

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	On bool
}

type sample struct {
	X      int
	Frames uint32
	Speed  float32
	Label  string
	Nested inner
	hidden int
	Tags   []string
}

func TestFieldsSkipsUnexported(t *testing.T) {
	fields := Fields(reflect.TypeFor[sample]())
	require.Len(t, fields, 6)

	kinds := map[string]FieldKind{}
	for _, f := range fields {
		kinds[f.Name] = f.Kind
	}
	assert.Equal(t, map[string]FieldKind{
		"X":      KindInt,
		"Frames": KindUint,
		"Speed":  KindFloat,
		"Label":  KindString,
		"Nested": KindStruct,
		"Tags":   KindOther,
	}, kinds)
	assert.Equal(t, 6, fields[5].Index, "index skips the unexported field")
}

func TestFieldsCached(t *testing.T) {
	a := Fields(reflect.TypeFor[sample]())
	b := Fields(reflect.TypeFor[sample]())
	assert.Same(t, &a[0], &b[0])
	assert.Empty(t, Fields(reflect.TypeFor[int]()))
}

func TestSetField(t *testing.T) {
	s := sample{}
	v := reflect.ValueOf(&s).Elem()

	assert.True(t, setField(v.Field(0), int64(7)))
	assert.True(t, setField(v.Field(1), int64(3)))
	assert.False(t, setField(v.Field(1), int64(-1)), "unsigned refuses negatives")
	assert.True(t, setField(v.Field(2), float64(1.5)))
	assert.True(t, setField(v.Field(3), "hero"))
	assert.True(t, setField(v.Field(4).Field(0), true))
	assert.False(t, setField(v.Field(0), "wrong type"))
	assert.False(t, setField(v.Field(6), []string{"x"}))

	assert.Equal(t, sample{X: 7, Frames: 3, Speed: 1.5, Label: "hero", Nested: inner{On: true}}, s)
}

func TestSetFieldUnaddressable(t *testing.T) {
	v := reflect.ValueOf(sample{})
	assert.False(t, setField(v.Field(0), int64(1)))
}

func TestStatsWindowAverage(t *testing.T) {
	w := NewStatsWindow(4)
	assert.Zero(t, w.AverageMillis())

	w.Record(0.010)
	w.Record(0.020)
	assert.InDelta(t, 15, w.AverageMillis(), 0.001)

	for range 4 {
		w.Record(0.005)
	}
	assert.InDelta(t, 5, w.AverageMillis(), 0.001, "old frames roll off")
}
