package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InterpretResult is the terminal status of a call to Interpret.
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

// CallFrame is a per-call activation record: the running closure, the
// instruction pointer into its chunk, and the base index of its locals
// window within the VM's value stack.
type CallFrame struct {
	Closure *Object // *ObjClosure
	IP      int
	Slots   int
}

// VM owns the value stack, call frames, heap, and collector state for one
// interpreter session. It is not safe for concurrent use; the dispatch
// loop is the only reader/writer of its state.
type VM struct {
	config Config
	logger *zap.Logger
	id     uuid.UUID

	stack    []Value
	stackTop int

	frames     []CallFrame
	frameCount int

	objects      *Object
	strings      *Table
	globals      *Table
	openUpvalues *Object // *ObjUpvalue chain, linked via NextOpen

	grayStack      []*Object
	bytesAllocated int64
	nextGC         int64

	initString    *Object // interned "init"
	compilerRoots []*Object

	startTime time.Time
}

// NewVM builds a VM ready to interpret source. A zero Config is filled
// in with DefaultConfig's values for any field left unset.
func NewVM(config Config) *VM {
	if config.FramesMax == 0 {
		config.FramesMax = DefaultConfig().FramesMax
	}
	if config.InitialGCThreshold == 0 {
		config.InitialGCThreshold = DefaultConfig().InitialGCThreshold
	}
	if config.GCGrowthFactor == 0 {
		config.GCGrowthFactor = DefaultConfig().GCGrowthFactor
	}
	if config.Stdout == nil {
		config.Stdout = DefaultConfig().Stdout
	}
	if config.Stderr == nil {
		config.Stderr = DefaultConfig().Stderr
	}

	vm := &VM{
		config:    config,
		id:        uuid.New(),
		stack:     make([]Value, config.StackMax()),
		frames:    make([]CallFrame, config.FramesMax),
		strings:   NewTable(),
		globals:   NewTable(),
		nextGC:    config.InitialGCThreshold,
		startTime: time.Now(),
	}

	vm.initString = vm.internString("init")
	vm.defineNative("clock", func(argCount int, args []Value) Value {
		return numberValue(time.Since(vm.startTime).Seconds())
	})

	return vm
}

// WithLogger attaches a structured logger used for operational
// diagnostics (GC cycles); it never affects language-visible output.
func (vm *VM) WithLogger(logger *zap.Logger) *VM {
	vm.logger = logger
	return vm
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
}

func (vm *VM) push(v Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) Value {
	return vm.stack[vm.stackTop-1-distance]
}

// Free drops the VM's bookkeeping over the heap. There is no per-object
// free from user code; this simply lets the objects, tables, and gray
// stack go, so Go's own collector reclaims whatever nothing else
// references.
func (vm *VM) Free() {
	vm.objects = nil
	vm.strings = NewTable()
	vm.globals = NewTable()
	vm.grayStack = nil
}

// Interpret compiles source into a chunk, wraps it in the top-level
// closure, and runs it to completion.
func (vm *VM) Interpret(source string) InterpretResult {
	fnObj, ok := Compile(vm, source)
	if !ok {
		return InterpretCompileError
	}

	vm.push(objectValue(fnObj))
	closure := vm.newClosure(fnObj)
	vm.pop()
	vm.push(objectValue(closure))
	vm.call(closure, 0)

	return vm.run()
}

func (vm *VM) currentFrame() *CallFrame {
	return &vm.frames[vm.frameCount-1]
}

func (vm *VM) currentClosure() *ObjClosure {
	return vm.currentFrame().Closure.Data.(*ObjClosure)
}

func (vm *VM) readByte() byte {
	frame := vm.currentFrame()
	b := frame.Closure.Data.(*ObjClosure).Function.Chunk.Code[frame.IP]
	frame.IP++
	return b
}

func (vm *VM) readShort() uint16 {
	frame := vm.currentFrame()
	chunk := frame.Closure.Data.(*ObjClosure).Function.Chunk
	frame.IP += 2
	return uint16(chunk.Code[frame.IP-2])<<8 | uint16(chunk.Code[frame.IP-1])
}

func (vm *VM) readConstant() Value {
	return vm.currentFrame().Closure.Data.(*ObjClosure).Function.Chunk.Constants[vm.readByte()]
}

func (vm *VM) readStringObj() *Object {
	return vm.readConstant().Obj
}

// run is the dispatch loop: read one opcode, execute its semantics,
// repeat until a RETURN unwinds the outermost frame or an error occurs.
func (vm *VM) run() InterpretResult {
	for {
		if vm.config.TraceExecution {
			vm.traceStack()
		}

		instruction := OpCode(vm.readByte())
		switch instruction {
		case OpConstant:
			vm.push(vm.readConstant())

		case OpNil:
			vm.push(nilValue())
		case OpTrue:
			vm.push(boolValue(true))
		case OpFalse:
			vm.push(boolValue(false))

		case OpPop:
			vm.pop()

		case OpGetLocal:
			slot := vm.currentFrame().Slots + int(vm.readByte())
			vm.push(vm.stack[slot])
		case OpSetLocal:
			slot := vm.currentFrame().Slots + int(vm.readByte())
			vm.stack[slot] = vm.peek(0)

		case OpGetGlobal:
			name := vm.readStringObj()
			value, ok := vm.globals.Get(name)
			if !ok {
				vm.runtimeError("Undefined variable '%s'.", name.Data.(*ObjString).Chars)
				return InterpretRuntimeError
			}
			vm.push(value)
		case OpDefineGlobal:
			name := vm.readStringObj()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case OpSetGlobal:
			name := vm.readStringObj()
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name)
				vm.runtimeError("Undefined variable '%s'.", name.Data.(*ObjString).Chars)
				return InterpretRuntimeError
			}

		case OpGetUpvalue:
			slot := vm.readByte()
			up := vm.currentClosure().Upvalues[slot].Data.(*ObjUpvalue)
			vm.push(up.get(vm.stack))
		case OpSetUpvalue:
			slot := vm.readByte()
			up := vm.currentClosure().Upvalues[slot].Data.(*ObjUpvalue)
			up.set(vm.stack, vm.peek(0))

		case OpGetProperty:
			if !vm.peek(0).IsInstance() {
				vm.runtimeError("Only instances have properties.")
				return InterpretRuntimeError
			}

			instObj := vm.peek(0).Obj
			inst := instObj.Data.(*ObjInstance)
			name := vm.readStringObj()

			if value, ok := inst.Fields.Get(name); ok {
				vm.pop()
				vm.push(value)
				break
			}

			if !vm.bindMethod(inst.Class, name) {
				return InterpretRuntimeError
			}

		case OpSetProperty:
			if !vm.peek(1).IsInstance() {
				vm.runtimeError("Only instances have fields.")
				return InterpretRuntimeError
			}

			inst := vm.peek(1).Obj.Data.(*ObjInstance)
			name := vm.readStringObj()
			inst.Fields.Set(name, vm.peek(0))

			value := vm.pop()
			vm.pop()
			vm.push(value)

		case OpGetSuper:
			name := vm.readStringObj()
			superclass := vm.pop().Obj
			if !vm.bindMethod(superclass, name) {
				return InterpretRuntimeError
			}

		case OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(boolValue(a.Equal(b)))
		case OpGreater:
			if !vm.numericBinaryOp(func(a, b float64) Value { return boolValue(a > b) }) {
				return InterpretRuntimeError
			}
		case OpLess:
			if !vm.numericBinaryOp(func(a, b float64) Value { return boolValue(a < b) }) {
				return InterpretRuntimeError
			}

		case OpAdd:
			switch {
			case vm.peek(0).IsString() && vm.peek(1).IsString():
				vm.concatenate()
			case vm.peek(0).IsNumber() && vm.peek(1).IsNumber():
				b, a := vm.pop().Num, vm.pop().Num
				vm.push(numberValue(a + b))
			default:
				vm.runtimeError("Operands must be two numbers or two strings.")
				return InterpretRuntimeError
			}
		case OpSubtract:
			if !vm.numericBinaryOp(func(a, b float64) Value { return numberValue(a - b) }) {
				return InterpretRuntimeError
			}
		case OpMultiply:
			if !vm.numericBinaryOp(func(a, b float64) Value { return numberValue(a * b) }) {
				return InterpretRuntimeError
			}
		case OpDivide:
			if !vm.numericBinaryOp(func(a, b float64) Value { return numberValue(a / b) }) {
				return InterpretRuntimeError
			}

		case OpNot:
			vm.push(boolValue(vm.pop().IsFalsey()))
		case OpNegate:
			if !vm.peek(0).IsNumber() {
				vm.runtimeError("Operand must be a number.")
				return InterpretRuntimeError
			}
			vm.push(numberValue(-vm.pop().Num))

		case OpPrint:
			vm.pop().Print(vm.config.Stdout)
			fmt.Fprintln(vm.config.Stdout)

		case OpJump:
			offset := vm.readShort()
			vm.currentFrame().IP += int(offset)
		case OpJumpIfFalse:
			offset := vm.readShort()
			if vm.peek(0).IsFalsey() {
				vm.currentFrame().IP += int(offset)
			}
		case OpLoop:
			offset := vm.readShort()
			vm.currentFrame().IP -= int(offset)

		case OpCall:
			argCount := int(vm.readByte())
			if !vm.callValue(vm.peek(argCount), argCount) {
				return InterpretRuntimeError
			}

		case OpInvoke:
			method := vm.readStringObj()
			argCount := int(vm.readByte())
			if !vm.invoke(method, argCount) {
				return InterpretRuntimeError
			}

		case OpSuperInvoke:
			method := vm.readStringObj()
			argCount := int(vm.readByte())
			superclass := vm.pop().Obj
			if !vm.invokeFromClass(superclass, method, argCount) {
				return InterpretRuntimeError
			}

		case OpClosure:
			fnObj := vm.readConstant().Obj
			fn := fnObj.Data.(*ObjFunction)
			closureObj := vm.newClosure(fnObj)
			vm.push(objectValue(closureObj))

			closure := closureObj.Data.(*ObjClosure)
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte()
				index := int(vm.readByte())
				if isLocal == 1 {
					closure.Upvalues[i] = vm.captureUpvalue(vm.currentFrame().Slots + index)
				} else {
					closure.Upvalues[i] = vm.currentClosure().Upvalues[index]
				}
			}

		case OpCloseUpvalue:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()

		case OpReturn:
			result := vm.pop()
			frame := vm.currentFrame()
			vm.closeUpvalues(frame.Slots)
			vm.frameCount--

			if vm.frameCount == 0 {
				vm.pop()
				return InterpretOK
			}

			vm.stackTop = frame.Slots
			vm.push(result)

		case OpClass:
			name := vm.readStringObj()
			vm.push(objectValue(vm.newClass(name)))

		case OpInherit:
			if !vm.peek(1).IsClass() {
				vm.runtimeError("Superclass must be a class.")
				return InterpretRuntimeError
			}
			superclass := vm.peek(1).Obj.Data.(*ObjClass)
			subclass := vm.peek(0).Obj.Data.(*ObjClass)
			subclass.Methods.AddAll(superclass.Methods)
			vm.pop() // the subclass

		case OpMethod:
			vm.defineMethod(vm.readStringObj())

		default:
			vm.runtimeError("Unknown opcode %d.", instruction)
			return InterpretRuntimeError
		}
	}
}

func (vm *VM) traceStack() {
	fmt.Fprint(vm.config.Stdout, "          ")
	for i := 0; i < vm.stackTop; i++ {
		fmt.Fprint(vm.config.Stdout, "[ ")
		vm.stack[i].Print(vm.config.Stdout)
		fmt.Fprint(vm.config.Stdout, " ]")
	}
	fmt.Fprintln(vm.config.Stdout)

	frame := vm.currentFrame()
	chunk := frame.Closure.Data.(*ObjClosure).Function.Chunk
	chunk.DisassembleInstruction(vm.config.Stdout, frame.IP)
}

// numericBinaryOp pops two numbers, applies op, and pushes the result. It
// reports a runtime error and returns false if either operand is not a
// number.
func (vm *VM) numericBinaryOp(op func(a, b float64) Value) bool {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		vm.runtimeError("Operands must be numbers.")
		return false
	}

	b, a := vm.pop().Num, vm.pop().Num
	vm.push(op(a, b))
	return true
}

// concatenate handles OP_ADD for two strings. The operands are kept on
// the stack (peeked, not popped) while the new string is interned so
// that if interning triggers a collection, both operands are still
// reachable from the value stack.
func (vm *VM) concatenate() {
	b := vm.peek(0).AsGoString()
	a := vm.peek(1).AsGoString()
	result := vm.internString(a + b)

	vm.pop()
	vm.pop()
	vm.push(objectValue(result))
}

func (vm *VM) callValue(callee Value, argCount int) bool {
	if callee.IsObject() {
		switch callee.Obj.Type {
		case ObjTypeClosure:
			return vm.call(callee.Obj, argCount)
		case ObjTypeNative:
			native := callee.Obj.Data.(*ObjNative)
			args := vm.stack[vm.stackTop-argCount : vm.stackTop]
			result := native.Fn(argCount, args)
			vm.stackTop -= argCount + 1
			vm.push(result)
			return true
		case ObjTypeClass:
			class := callee.Obj.Data.(*ObjClass)
			instance := vm.newInstance(callee.Obj)
			vm.stack[vm.stackTop-argCount-1] = objectValue(instance)

			if initializer, ok := class.Methods.Get(vm.initString); ok {
				return vm.call(initializer.Obj, argCount)
			} else if argCount != 0 {
				vm.runtimeError("Expected 0 arguments but got %d.", argCount)
				return false
			}
			return true
		case ObjTypeBoundMethod:
			bound := callee.Obj.Data.(*ObjBoundMethod)
			vm.stack[vm.stackTop-argCount-1] = bound.Receiver
			return vm.call(bound.Method, argCount)
		}
	}

	vm.runtimeError("Can only call functions and classes.")
	return false
}

func (vm *VM) call(closureObj *Object, argCount int) bool {
	closure := closureObj.Data.(*ObjClosure)

	if argCount != closure.Function.Arity {
		vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argCount)
		return false
	}

	if vm.frameCount >= vm.config.FramesMax {
		vm.runtimeError("Stack overflow.")
		return false
	}

	vm.frames[vm.frameCount] = CallFrame{
		Closure: closureObj,
		IP:      0,
		Slots:   vm.stackTop - argCount - 1,
	}
	vm.frameCount++
	return true
}

// invoke fuses a property lookup and a call: if the receiver has a field
// by this name it is called generally (a stored callable), otherwise the
// name is resolved as a method on the receiver's class.
func (vm *VM) invoke(name *Object, argCount int) bool {
	receiver := vm.peek(argCount)
	if !receiver.IsInstance() {
		vm.runtimeError("Only instances have properties.")
		return false
	}

	inst := receiver.Obj.Data.(*ObjInstance)

	if value, ok := inst.Fields.Get(name); ok {
		vm.stack[vm.stackTop-argCount-1] = value
		return vm.callValue(value, argCount)
	}

	return vm.invokeFromClass(inst.Class, name, argCount)
}

func (vm *VM) invokeFromClass(classObj *Object, name *Object, argCount int) bool {
	class := classObj.Data.(*ObjClass)
	method, ok := class.Methods.Get(name)
	if !ok {
		vm.runtimeError("Undefined property '%s'.", name.Data.(*ObjString).Chars)
		return false
	}
	return vm.call(method.Obj, argCount)
}

// bindMethod looks up name on class, pops the receiver, and pushes a
// BoundMethod pairing it with the found closure.
func (vm *VM) bindMethod(classObj *Object, name *Object) bool {
	class := classObj.Data.(*ObjClass)
	method, ok := class.Methods.Get(name)
	if !ok {
		vm.runtimeError("Undefined property '%s'.", name.Data.(*ObjString).Chars)
		return false
	}

	bound := vm.newBoundMethod(vm.peek(0), method.Obj)
	vm.pop()
	vm.push(objectValue(bound))
	return true
}

func (vm *VM) defineMethod(name *Object) {
	method := vm.peek(0)
	class := vm.peek(1).Obj.Data.(*ObjClass)
	class.Methods.Set(name, method)
	vm.pop()
}

// captureUpvalue returns the open upvalue for stack slot local, reusing
// an existing one if the sorted open list already has it, otherwise
// splicing a new one into descending-address order.
func (vm *VM) captureUpvalue(local int) *Object {
	var prev *Object
	up := vm.openUpvalues

	for up != nil && up.Data.(*ObjUpvalue).Location > local {
		prev = up
		up = up.Data.(*ObjUpvalue).NextOpen
	}

	if up != nil && up.Data.(*ObjUpvalue).Location == local {
		return up
	}

	created := vm.newUpvalue(local)
	created.Data.(*ObjUpvalue).NextOpen = up

	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.Data.(*ObjUpvalue).NextOpen = created
	}

	return created
}

// closeUpvalues closes every open upvalue whose location is at or above
// last, copying the live stack value into the upvalue's own storage.
func (vm *VM) closeUpvalues(last int) {
	for vm.openUpvalues != nil {
		up := vm.openUpvalues.Data.(*ObjUpvalue)
		if up.Location < last {
			break
		}

		up.Closed = vm.stack[up.Location]
		up.IsClosed = true
		vm.openUpvalues = up.NextOpen
	}
}

// runtimeError prints the message and a stack trace, one line per frame
// from innermost outward, then resets the stack so a subsequent
// Interpret call starts clean.
func (vm *VM) runtimeError(format string, args ...interface{}) {
	fmt.Fprintf(vm.config.Stderr, format, args...)
	fmt.Fprintln(vm.config.Stderr)

	for i := vm.frameCount - 1; i >= 0; i-- {
		frame := &vm.frames[i]
		fn := frame.Closure.Data.(*ObjClosure).Function
		line := fn.Chunk.Lines[frame.IP-1]

		if fn.Name == nil {
			fmt.Fprintf(vm.config.Stderr, "[line %d] in script\n", line)
		} else {
			fmt.Fprintf(vm.config.Stderr, "[line %d] in %s()\n", line, fn.Name.Data.(*ObjString).Chars)
		}
	}

	vm.resetStack()
}

// internString hashes s, probes the string table, and returns the
// existing String if content-equal one is already interned; otherwise it
// allocates and installs a fresh one. copyString and takeString in the
// reference implementation collapse to this single path here because Go
// strings are immutable values with no buffer-ownership transfer to model.
func (vm *VM) internString(s string) *Object {
	hash := hashString(s)
	if existing := vm.strings.FindString(s, hash); existing != nil {
		return existing
	}

	obj := vm.allocateObject(ObjTypeString, &ObjString{Chars: s, Hash: hash}, sizeString+int64(len(s)))
	vm.push(objectValue(obj))
	vm.strings.Set(obj, nilValue())
	vm.pop()
	return obj
}

func (vm *VM) copyString(s string) *Object { return vm.internString(s) }
func (vm *VM) takeString(s string) *Object { return vm.internString(s) }

func (vm *VM) newFunction() *Object {
	fn := &ObjFunction{Chunk: NewChunk()}
	obj := vm.allocateObject(ObjTypeFunction, fn, sizeFunction)
	fn.self = obj
	return obj
}

func (vm *VM) newClosure(fnObj *Object) *Object {
	fn := fnObj.Data.(*ObjFunction)
	return vm.allocateObject(ObjTypeClosure, &ObjClosure{
		Function: fn,
		Upvalues: make([]*Object, fn.UpvalueCount),
	}, sizeClosure(fn.UpvalueCount))
}

func (vm *VM) newUpvalue(slot int) *Object {
	return vm.allocateObject(ObjTypeUpvalue, &ObjUpvalue{Location: slot}, sizeUpvalue)
}

func (vm *VM) newClass(name *Object) *Object {
	return vm.allocateObject(ObjTypeClass, &ObjClass{Name: name, Methods: NewTable()}, sizeClass)
}

func (vm *VM) newInstance(class *Object) *Object {
	return vm.allocateObject(ObjTypeInstance, &ObjInstance{Class: class, Fields: NewTable()}, sizeInstance)
}

func (vm *VM) newBoundMethod(receiver Value, method *Object) *Object {
	return vm.allocateObject(ObjTypeBoundMethod, &ObjBoundMethod{Receiver: receiver, Method: method}, sizeBoundMethod)
}

func (vm *VM) newNativeObject(name string, fn NativeFn) *Object {
	return vm.allocateObject(ObjTypeNative, &ObjNative{Name: name, Fn: fn}, sizeNative)
}

func (vm *VM) defineNative(name string, fn NativeFn) {
	nameObj := vm.internString(name)
	vm.push(objectValue(nameObj))
	vm.push(objectValue(vm.newNativeObject(name, fn)))
	vm.globals.Set(vm.peek(1).Obj, vm.peek(0))
	vm.pop()
	vm.pop()
}

// pushCompilerRoot / popCompilerRoot let the compiler register the
// function object it is currently assembling as a GC root, matching the
// reference VM's habit of walking the compiler's enclosing chain during
// a collection that happens mid-compile.
func (vm *VM) pushCompilerRoot(fnObj *Object) {
	vm.compilerRoots = append(vm.compilerRoots, fnObj)
}

func (vm *VM) popCompilerRoot() {
	vm.compilerRoots = vm.compilerRoots[:len(vm.compilerRoots)-1]
}
