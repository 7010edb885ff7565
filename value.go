package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

// ValueType is the tag of the Value union.
type ValueType int

const (
	ValNil ValueType = iota
	ValBool
	ValNumber
	ValObject
)

// Value is a tagged union over nil, boolean, number and object reference.
// Only the field matching Type is meaningful.
type Value struct {
	Type ValueType
	Num  float64
	Bl   bool
	Obj  *Object
}

func nilValue() Value {
	return Value{Type: ValNil}
}

func boolValue(v bool) Value {
	return Value{Type: ValBool, Bl: v}
}

func numberValue(v float64) Value {
	return Value{Type: ValNumber, Num: v}
}

func objectValue(o *Object) Value {
	return Value{Type: ValObject, Obj: o}
}

func (v Value) IsNil() bool    { return v.Type == ValNil }
func (v Value) IsBool() bool   { return v.Type == ValBool }
func (v Value) IsNumber() bool { return v.Type == ValNumber }
func (v Value) IsObject() bool { return v.Type == ValObject }

// IsObjectType reports whether v is a heap object of the given kind.
func (v Value) IsObjectType(t ObjectType) bool {
	return v.Type == ValObject && v.Obj.Type == t
}

func (v Value) IsString() bool      { return v.IsObjectType(ObjTypeString) }
func (v Value) IsFunction() bool    { return v.IsObjectType(ObjTypeFunction) }
func (v Value) IsNative() bool      { return v.IsObjectType(ObjTypeNative) }
func (v Value) IsClosure() bool     { return v.IsObjectType(ObjTypeClosure) }
func (v Value) IsClass() bool       { return v.IsObjectType(ObjTypeClass) }
func (v Value) IsInstance() bool    { return v.IsObjectType(ObjTypeInstance) }
func (v Value) IsBoundMethod() bool { return v.IsObjectType(ObjTypeBoundMethod) }

// IsFalsey reports whether v is falsey: only nil and false are falsey.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.Bl)
}

func (v Value) Number() float64 { return v.Num }
func (v Value) Bool() bool      { return v.Bl }
func (v Value) Object() *Object { return v.Obj }

func (v Value) AsGoString() string {
	return v.Obj.Data.(*ObjString).Chars
}

func (v Value) AsFunction() *ObjFunction {
	return v.Obj.Data.(*ObjFunction)
}

func (v Value) AsNative() *ObjNative {
	return v.Obj.Data.(*ObjNative)
}

func (v Value) AsClosure() *ObjClosure {
	return v.Obj.Data.(*ObjClosure)
}

func (v Value) AsClass() *ObjClass {
	return v.Obj.Data.(*ObjClass)
}

func (v Value) AsInstance() *ObjInstance {
	return v.Obj.Data.(*ObjInstance)
}

func (v Value) AsBoundMethod() *ObjBoundMethod {
	return v.Obj.Data.(*ObjBoundMethod)
}

// Equal implements value equality: same variant required, objects (including
// strings, which are interned) compare by reference identity.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}

	switch v.Type {
	case ValNil:
		return true
	case ValBool:
		return v.Bl == o.Bl
	case ValNumber:
		return v.Num == o.Num
	case ValObject:
		return v.Obj == o.Obj
	default:
		return false
	}
}

// FormatNumber renders a float64 the way the book's printf("%g", ...) does
// for finite values, spelling out the IEEE-754 special cases explicitly.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}

// Print writes the textual form of v to w, per the printing rules in the
// external-interfaces section: nil/bool/number literally, strings raw,
// objects delegate to Object.Print.
func (v Value) Print(w io.Writer) {
	switch v.Type {
	case ValNil:
		fmt.Fprint(w, "nil")
	case ValBool:
		fmt.Fprintf(w, "%t", v.Bl)
	case ValNumber:
		fmt.Fprint(w, FormatNumber(v.Num))
	case ValObject:
		v.Obj.Print(w)
	}
}

func (v Value) String() string {
	var b stringBuf
	v.Print(&b)
	return string(b)
}

// stringBuf is a minimal io.Writer over a growable byte slice.
type stringBuf []byte

func (s *stringBuf) Write(p []byte) (int, error) {
	*s = append(*s, p...)
	return len(p), nil
}
