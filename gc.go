package main

// Rough per-variant allocation sizes, used only to drive the
// bytes-allocated threshold that triggers collection; they need not be
// exact, only consistent between allocation and sweep.
const (
	sizeString      = 24
	sizeFunction    = 64
	sizeNative      = 32
	sizeUpvalue     = 24
	sizeClass       = 32
	sizeInstance    = 32
	sizeBoundMethod = 24
)

func sizeClosure(upvalueCount int) int64 {
	return 32 + 8*int64(upvalueCount)
}

// allocateObject accounts size against bytesAllocated, collects first if
// the new total crosses nextGC (or stress mode is on), and only then
// links the freshly built object into the all-objects list. Because the
// object is not yet linked when the threshold check runs, it can never be
// swept by the very collection its own allocation triggered.
func (vm *VM) allocateObject(kind ObjectType, data interface{}, size int64) *Object {
	vm.bytesAllocated += size

	if vm.bytesAllocated > vm.nextGC || vm.config.GCStress {
		vm.collectGarbage()
	}

	obj := &Object{Type: kind, Data: data, Next: vm.objects, size: size}
	vm.objects = obj
	return obj
}

func (vm *VM) markObject(o *Object) {
	if o == nil || o.isMarked {
		return
	}
	o.isMarked = true
	vm.grayStack = append(vm.grayStack, o)
}

func (vm *VM) markValue(v Value) {
	if v.IsObject() {
		vm.markObject(v.Obj)
	}
}

func (vm *VM) markArray(values []Value) {
	for _, v := range values {
		vm.markValue(v)
	}
}

func (vm *VM) markTable(t *Table) {
	for i := range t.entries {
		entry := &t.entries[i]
		if entry.Key != nil {
			vm.markObject(entry.Key)
			vm.markValue(entry.Value)
		}
	}
}

// markRoots marks every reference the collector must treat as reachable
// without further justification: the value stack, every frame's closure,
// the open-upvalue chain, globals, the cached init-method name, and any
// function object the compiler is still assembling.
func (vm *VM) markRoots() {
	for i := 0; i < vm.stackTop; i++ {
		vm.markValue(vm.stack[i])
	}

	for i := 0; i < vm.frameCount; i++ {
		vm.markObject(vm.frames[i].Closure)
	}

	for up := vm.openUpvalues; up != nil; up = up.Data.(*ObjUpvalue).NextOpen {
		vm.markObject(up)
	}

	vm.markTable(vm.globals)
	vm.markObject(vm.initString)

	for _, root := range vm.compilerRoots {
		vm.markObject(root)
	}
}

func (vm *VM) blackenObject(o *Object) {
	switch o.Type {
	case ObjTypeUpvalue:
		vm.markValue(o.Data.(*ObjUpvalue).Closed)
	case ObjTypeFunction:
		fn := o.Data.(*ObjFunction)
		vm.markObject(fn.Name)
		vm.markArray(fn.Chunk.Constants)
	case ObjTypeClosure:
		cl := o.Data.(*ObjClosure)
		vm.markObject(cl.Function.self)
		for _, u := range cl.Upvalues {
			vm.markObject(u)
		}
	case ObjTypeClass:
		cls := o.Data.(*ObjClass)
		vm.markObject(cls.Name)
		vm.markTable(cls.Methods)
	case ObjTypeInstance:
		inst := o.Data.(*ObjInstance)
		vm.markObject(inst.Class)
		vm.markTable(inst.Fields)
	case ObjTypeBoundMethod:
		bm := o.Data.(*ObjBoundMethod)
		vm.markValue(bm.Receiver)
		vm.markObject(bm.Method)
	case ObjTypeString, ObjTypeNative:
		// no outgoing references
	}
}

func (vm *VM) traceReferences() {
	for len(vm.grayStack) > 0 {
		last := len(vm.grayStack) - 1
		obj := vm.grayStack[last]
		vm.grayStack = vm.grayStack[:last]
		vm.blackenObject(obj)
	}
}

// sweep unlinks and drops every unmarked object from the all-objects
// list, clearing the mark bit on survivors so the next cycle starts
// white. It returns the number of objects collected.
func (vm *VM) sweep() int {
	var prev *Object
	obj := vm.objects
	freed := 0

	for obj != nil {
		if obj.isMarked {
			obj.isMarked = false
			prev = obj
			obj = obj.Next
			continue
		}

		unreached := obj
		obj = obj.Next
		if prev != nil {
			prev.Next = obj
		} else {
			vm.objects = obj
		}

		vm.bytesAllocated -= unreached.size
		freed++
	}

	return freed
}

// collectGarbage runs one full mark-sweep cycle: mark every root, trace
// the gray worklist to a fixed point, weak-sweep the string table (which
// only holds interned strings alive, not the other way around), then
// sweep the all-objects list.
func (vm *VM) collectGarbage() {
	before := vm.bytesAllocated

	vm.markRoots()
	vm.traceReferences()
	vm.strings.RemoveWhite()
	freed := vm.sweep()

	vm.nextGC = vm.bytesAllocated * vm.config.GCGrowthFactor
	if vm.nextGC < vm.config.InitialGCThreshold {
		vm.nextGC = vm.config.InitialGCThreshold
	}

	vm.logGCCycle(before, freed)
}
