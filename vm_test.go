package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, source string) (string, string, InterpretResult) {
	t.Helper()

	config := DefaultConfig()
	var stdout, stderr bytes.Buffer
	config.Stdout = &stdout
	config.Stderr = &stderr

	vm := NewVM(config)
	defer vm.Free()

	result := vm.Interpret(source)
	return stdout.String(), stderr.String(), result
}

func TestArithmeticPrecedence(t *testing.T) {
	out, _, result := run(t, `print (1 + 2) * 3 - -4;`)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "13\n", out)
}

func TestClosureCapture(t *testing.T) {
	out, _, result := run(t, `
		fun outer() {
			var x = "a";
			fun inner() { print x; }
			return inner;
		}
		outer()();
	`)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "a\n", out)
}

func TestSharedUpvalueCounter(t *testing.T) {
	out, _, result := run(t, `
		fun make() {
			var x = 0;
			fun inc() {
				x = x + 1;
				return x;
			}
			return inc;
		}
		var f = make();
		print f();
		print f();
		print f();
	`)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestClassConstructorAndMethod(t *testing.T) {
	out, _, result := run(t, `
		class A {
			init(n) { this.n = n; }
			greet() { print this.n; }
		}
		A(7).greet();
	`)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "7\n", out)
}

func TestInheritanceAndSuper(t *testing.T) {
	out, _, result := run(t, `
		class A { f() { print "A"; } }
		class B < A {
			f() {
				super.f();
				print "B";
			}
		}
		B().f();
	`)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "A\nB\n", out)
}

func TestArityErrorReportsRuntimeError(t *testing.T) {
	_, stderr, result := run(t, `
		fun two(a, b) { return a + b; }
		two(1);
	`)
	assert.Equal(t, InterpretRuntimeError, result)
	assert.True(t, strings.Contains(stderr, "Expected 2 arguments but got 1."))
}

func TestStringConcatenation(t *testing.T) {
	out, _, result := run(t, `print "foo" + "bar";`)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "foobar\n", out)
}

func TestUndefinedVariableError(t *testing.T) {
	_, stderr, result := run(t, `print missing;`)
	assert.Equal(t, InterpretRuntimeError, result)
	assert.Contains(t, stderr, "Undefined variable 'missing'.")
}

func TestFieldsRoundTrip(t *testing.T) {
	out, _, result := run(t, `
		class Box {}
		var b = Box();
		b.value = 42;
		print b.value;
	`)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "42\n", out)
}

func TestGlobalRoundTrip(t *testing.T) {
	out, _, result := run(t, `
		var g = "hi";
		print g;
	`)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "hi\n", out)
}

func TestForLoopAndWhile(t *testing.T) {
	out, _, result := run(t, `
		var sum = 0;
		for (var i = 1; i <= 5; i = i + 1) {
			sum = sum + i;
		}
		print sum;

		var n = 3;
		while (n > 0) {
			print n;
			n = n - 1;
		}
	`)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "15\n3\n2\n1\n", out)
}

func TestCompileErrorReported(t *testing.T) {
	_, stderr, result := run(t, `print ;`)
	assert.Equal(t, InterpretCompileError, result)
	assert.NotEmpty(t, stderr)
}

func TestNativeClockReturnsNumber(t *testing.T) {
	out, _, result := run(t, `print clock() >= 0;`)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "true\n", out)
}
