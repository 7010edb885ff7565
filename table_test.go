package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stringObj(s string) *Object {
	return &Object{Type: ObjTypeString, Data: &ObjString{Chars: s, Hash: hashString(s)}}
}

func TestTableSetGet(t *testing.T) {
	tbl := NewTable()
	key := stringObj("greeting")

	isNew := tbl.Set(key, objectValue(stringObj("hello")))
	assert.True(t, isNew)

	value, ok := tbl.Get(key)
	assert.True(t, ok)
	assert.Equal(t, "hello", value.AsGoString())

	isNew = tbl.Set(key, numberValue(42))
	assert.False(t, isNew, "overwriting an existing key is not a new insertion")

	value, ok = tbl.Get(key)
	assert.True(t, ok)
	assert.Equal(t, float64(42), value.Number())
}

func TestTableDeleteAndTombstoneProbing(t *testing.T) {
	tbl := NewTable()
	a, b, c := stringObj("a"), stringObj("b"), stringObj("c")

	tbl.Set(a, numberValue(1))
	tbl.Set(b, numberValue(2))
	tbl.Set(c, numberValue(3))

	assert.True(t, tbl.Delete(b))
	assert.False(t, tbl.Delete(b), "deleting twice reports not-found the second time")

	_, ok := tbl.Get(b)
	assert.False(t, ok)

	// a and c must still be reachable even though a tombstone sits between
	// their probe sequences and their home slots.
	va, ok := tbl.Get(a)
	assert.True(t, ok)
	assert.Equal(t, float64(1), va.Number())

	vc, ok := tbl.Get(c)
	assert.True(t, ok)
	assert.Equal(t, float64(3), vc.Number())
}

func TestTableGrowsAndRehashes(t *testing.T) {
	tbl := NewTable()
	keys := make([]*Object, 0, 200)
	for i := 0; i < 200; i++ {
		k := stringObj(fmt.Sprintf("key%d", i))
		keys = append(keys, k)
		tbl.Set(k, numberValue(float64(i)))
	}

	for i, k := range keys {
		v, ok := tbl.Get(k)
		assert.True(t, ok)
		assert.Equal(t, float64(i), v.Number())
	}
}

func TestTableAddAll(t *testing.T) {
	src := NewTable()
	dst := NewTable()

	src.Set(stringObj("f"), numberValue(1))
	dst.AddAll(src)

	v, ok := dst.Get(stringObj("f"))
	assert.True(t, ok)
	assert.Equal(t, float64(1), v.Number())
}

func TestTableFindString(t *testing.T) {
	tbl := NewTable()
	key := stringObj("needle")
	tbl.Set(key, nilValue())

	found := tbl.FindString("needle", hashString("needle"))
	assert.Same(t, key, found)

	assert.Nil(t, tbl.FindString("missing", hashString("missing")))
}

func TestTableRemoveWhite(t *testing.T) {
	tbl := NewTable()
	live := stringObj("live")
	dead := stringObj("dead")
	live.isMarked = true

	tbl.Set(live, nilValue())
	tbl.Set(dead, nilValue())

	tbl.RemoveWhite()

	assert.NotNil(t, tbl.FindString("live", hashString("live")))
	assert.Nil(t, tbl.FindString("dead", hashString("dead")))
}
