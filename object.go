package main

import (
	"fmt"
	"io"
)

// ObjectType tags the concrete kind of heap object stored in Object.Data.
type ObjectType int

const (
	ObjTypeString ObjectType = iota
	ObjTypeFunction
	ObjTypeNative
	ObjTypeClosure
	ObjTypeUpvalue
	ObjTypeClass
	ObjTypeInstance
	ObjTypeBoundMethod
)

func (t ObjectType) String() string {
	switch t {
	case ObjTypeString:
		return "string"
	case ObjTypeFunction:
		return "function"
	case ObjTypeNative:
		return "native"
	case ObjTypeClosure:
		return "closure"
	case ObjTypeUpvalue:
		return "upvalue"
	case ObjTypeClass:
		return "class"
	case ObjTypeInstance:
		return "instance"
	case ObjTypeBoundMethod:
		return "bound method"
	default:
		return "unknown"
	}
}

// Object is the common header every heap-allocated value carries: a type
// tag, a mark bit consumed by the collector, and the intrusive link into
// the VM's all-objects list. Data holds the concrete variant.
type Object struct {
	Type     ObjectType
	Data     interface{}
	Next     *Object
	isMarked bool
	size     int64
}

// Print writes the textual form of the object, per the printing rules in
// the external-interfaces section.
func (o *Object) Print(w io.Writer) {
	switch o.Type {
	case ObjTypeString:
		fmt.Fprint(w, o.Data.(*ObjString).Chars)
	case ObjTypeFunction:
		fn := o.Data.(*ObjFunction)
		if fn.Name == nil {
			fmt.Fprint(w, "<script>")
		} else {
			fmt.Fprintf(w, "<fn %s>", fn.Name.Data.(*ObjString).Chars)
		}
	case ObjTypeNative:
		fmt.Fprint(w, "<native fn>")
	case ObjTypeClosure:
		o.Data.(*ObjClosure).Function.self.Print(w)
	case ObjTypeUpvalue:
		fmt.Fprint(w, "<upvalue>")
	case ObjTypeClass:
		fmt.Fprint(w, o.Data.(*ObjClass).Name.Data.(*ObjString).Chars)
	case ObjTypeInstance:
		inst := o.Data.(*ObjInstance)
		fmt.Fprintf(w, "%s instance", inst.Class.Data.(*ObjClass).Name.Data.(*ObjString).Chars)
	case ObjTypeBoundMethod:
		bm := o.Data.(*ObjBoundMethod)
		bm.Method.Data.(*ObjClosure).Function.self.Print(w)
	}
}

// ObjString is an interned, content-unique byte string. Hash is the
// FNV-1a hash of Chars, precomputed once at construction.
type ObjString struct {
	Chars string
	Hash  uint32
}

// hashString computes the FNV-1a hash of s, matching the reference VM's
// string hashing so Hash is stable and reproducible.
func hashString(s string) uint32 {
	var hash uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= 16777619
	}
	return hash
}

// ObjFunction is a compiled function: arity, its owned chunk, an optional
// name (nil for the implicit top-level script), and the number of upvalues
// its closures must allocate.
type ObjFunction struct {
	Arity        int
	UpvalueCount int
	Name         *Object // *ObjString, or nil for the top-level script
	Chunk        *Chunk
	self         *Object // back-reference so Object.Print can reach the header
}

// NativeFn is a host routine bridged into globals as a callable value.
type NativeFn func(argCount int, args []Value) Value

// ObjNative wraps a host callback so it participates in the call machinery
// exactly like a Lox-defined function.
type ObjNative struct {
	Name string
	Fn   NativeFn
}

// ObjClosure pairs a Function with the upvalue references its body
// captures; the array's length always equals Function.UpvalueCount.
type ObjClosure struct {
	Function *ObjFunction
	Upvalues []*Object // each element's Data is *ObjUpvalue
}

// ObjUpvalue is open while it aliases a live stack slot (Location indexes
// into the VM's value stack) and closed once it owns a private copy in
// Closed. NextOpen threads it into the VM's open-upvalue list; it is
// unrelated to Object.Next, which threads the all-objects list.
type ObjUpvalue struct {
	Location int
	Closed   Value
	IsClosed bool
	NextOpen *Object
}

func (u *ObjUpvalue) get(stack []Value) Value {
	if u.IsClosed {
		return u.Closed
	}
	return stack[u.Location]
}

func (u *ObjUpvalue) set(stack []Value, v Value) {
	if u.IsClosed {
		u.Closed = v
	} else {
		stack[u.Location] = v
	}
}

// ObjClass is a runtime class: its name and a method table mapping
// interned method names to Closure values, populated at class-definition
// time and by single inheritance.
type ObjClass struct {
	Name    *Object // *ObjString
	Methods *Table
}

// ObjInstance is an instance of a class with a freely mutable field table.
type ObjInstance struct {
	Class  *Object // *ObjClass
	Fields *Table
}

// ObjBoundMethod pairs a receiver with the method closure found on it,
// produced whenever a method is accessed as a property rather than
// immediately invoked.
type ObjBoundMethod struct {
	Receiver Value
	Method   *Object // *ObjClosure
}
