package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestVM() *VM {
	config := DefaultConfig()
	config.Stdout = &bytes.Buffer{}
	config.Stderr = &bytes.Buffer{}
	return NewVM(config)
}

func TestInterningReturnsSameObject(t *testing.T) {
	vm := newTestVM()

	a := vm.internString("hello")
	b := vm.internString("hello")
	assert.Same(t, a, b)

	c := vm.internString("world")
	assert.NotSame(t, a, c)
}

func TestGCStressKeepsReachableStringAlive(t *testing.T) {
	config := DefaultConfig()
	config.Stdout = &bytes.Buffer{}
	config.Stderr = &bytes.Buffer{}
	config.GCStress = true
	vm := NewVM(config)

	result := vm.Interpret(`
		var kept = "still here";
		var a = "throwaway1";
		var b = "throwaway2";
		print kept;
	`)

	assert.Equal(t, InterpretOK, result)
	assert.Contains(t, config.Stdout.(*bytes.Buffer).String(), "still here")
}

func TestSweepUnlinksUnmarkedObjects(t *testing.T) {
	vm := newTestVM()

	kept := vm.allocateObject(ObjTypeString, &ObjString{Chars: "kept"}, sizeString)
	vm.markObject(kept)
	vm.allocateObject(ObjTypeString, &ObjString{Chars: "garbage"}, sizeString)

	freed := vm.sweep()

	assert.Equal(t, 1, freed)
	assert.Same(t, kept, vm.objects)
	assert.Nil(t, vm.objects.Next)
	assert.False(t, kept.isMarked, "sweep clears the mark bit on survivors")
}

func TestMarkRootsReachesStackAndGlobals(t *testing.T) {
	vm := newTestVM()

	global := vm.internString("g")
	vm.push(objectValue(global))
	name := vm.internString("name")
	vm.globals.Set(name, objectValue(global))
	vm.pop()

	vm.push(objectValue(global))
	vm.markRoots()

	assert.True(t, global.isMarked)
}
