package main

import (
	"fmt"
	"math"
	"strconv"
)

// Precedence orders binary operators from loosest to tightest binding,
// used to drive Pratt-style parsing in parsePrecedence.
type Precedence int

const (
	PrecedenceNone       Precedence = iota
	PrecedenceAssignment            // =
	PrecedenceOr                    // or
	PrecedenceAnd                   // and
	PrecedenceEquality              // == !=
	PrecedenceComparison            // < > <= >=
	PrecedenceTerm                  // + -
	PrecedenceFactor                // * /
	PrecedenceUnary                 // ! -
	PrecedenceCall                  // . ()
	PrecedencePrimary
)

type ParseFn func(canAssign bool)

type ParseRule struct {
	Prefix     ParseFn
	Infix      ParseFn
	Precedence Precedence
}

// FunctionType distinguishes the four contexts a chunk of bytecode can be
// compiled for; only Initializer and Method get an implicit "this" local,
// and only Initializer rewrites bare "return;" into "return this;".
type FunctionType int

const (
	FunctionTypeFunction FunctionType = iota
	FunctionTypeInitializer
	FunctionTypeMethod
	FunctionTypeScript
)

const maxLocals = uint8Count

type localVar struct {
	Name       Token
	Depth      int
	IsCaptured bool
}

type upvalueRef struct {
	Index   int
	IsLocal bool
}

// funcCompiler is the compile-time analogue of a CallFrame: one exists
// per function body being compiled, chained through enclosing to model
// lexical nesting for local/upvalue resolution.
type funcCompiler struct {
	enclosing *funcCompiler
	function  *Object // *ObjFunction, kept alive via vm.compilerRoots
	fnType    FunctionType

	locals     []localVar
	upvalues   []upvalueRef
	scopeDepth int
}

func newFuncCompiler(vm *VM, enclosing *funcCompiler, fnType FunctionType, name string) *funcCompiler {
	fnObj := vm.newFunction()
	if fnType != FunctionTypeScript {
		fnObj.Data.(*ObjFunction).Name = vm.internString(name)
	}
	vm.pushCompilerRoot(fnObj)

	fc := &funcCompiler{
		enclosing: enclosing,
		function:  fnObj,
		fnType:    fnType,
	}

	// Slot zero is reserved: the receiver for methods/initializers, an
	// unnamed placeholder for plain functions and the top-level script.
	slotName := ""
	if fnType != FunctionTypeFunction {
		slotName = "this"
	}
	fc.locals = append(fc.locals, localVar{Name: Token{Lexeme: slotName}, Depth: 0})

	return fc
}

func (fc *funcCompiler) fn() *ObjFunction {
	return fc.function.Data.(*ObjFunction)
}

// classCompiler tracks the class currently being compiled, chained
// through enclosing so nested class declarations resolve "this"/"super"
// against the innermost one.
type classCompiler struct {
	enclosing     *classCompiler
	hasSuperclass bool
}

// Compiler drives a single-pass Pratt parser straight to bytecode; it
// owns no AST, only the current/previous token and the compile-time
// scope chain.
type Compiler struct {
	vm      *VM
	scanner *Scanner

	current, previous Token
	hadError          bool
	panicMode         bool

	rules map[TokenType]ParseRule

	fc            *funcCompiler
	classCompiler *classCompiler
}

// Compile compiles source into a top-level function object ready to be
// wrapped in a closure and called. The bool result is false if any
// compile error was reported.
func Compile(vm *VM, source string) (*Object, bool) {
	c := &Compiler{vm: vm, scanner: NewScanner(source)}
	c.buildParseRuleTable()
	c.fc = newFuncCompiler(vm, nil, FunctionTypeScript, "")

	c.advance()
	for !c.match(EOF) {
		c.declaration()
	}
	c.consume(EOF, "Expect end of expression.")

	fn := c.endCompiler()
	return fn, !c.hadError
}

func (c *Compiler) advance() {
	c.previous = c.current

	for {
		c.current = c.scanner.Scan()
		if c.current.Type != Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) consume(expected TokenType, msg string) {
	if c.current.Type == expected {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) check(tt TokenType) bool {
	return c.current.Type == tt
}

func (c *Compiler) match(tt TokenType) bool {
	if !c.check(tt) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) declaration() {
	switch {
	case c.match(Class):
		c.classDeclaration()
	case c.match(Fun):
		c.funDeclaration()
	case c.match(Var):
		c.varDeclaration()
	default:
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) classDeclaration() {
	c.consume(Identifier, "Expect class name.")
	className := c.previous
	nameConstant := c.identifierConstant(c.previous)
	c.declareVariable()

	c.emitOpByte(OpClass, nameConstant)
	c.defineVariable(nameConstant)

	cc := &classCompiler{enclosing: c.classCompiler}
	c.classCompiler = cc

	if c.match(Less) {
		c.consume(Identifier, "Expect superclass name.")
		c.namedVariable(c.previous, false)

		if className.Lexeme == c.previous.Lexeme {
			c.error("A class can't inherit from itself.")
		}

		c.beginScope()
		c.addLocal(syntheticToken("super"))
		c.defineVariable(0)

		c.namedVariable(className, false)
		c.emitOp(OpInherit)
		cc.hasSuperclass = true
	}

	c.namedVariable(className, false)
	c.consume(LeftBrace, "Expect '{' before class body.")
	for !c.check(RightBrace) && !c.check(EOF) {
		c.method()
	}
	c.consume(RightBrace, "Expect '}' after class body.")
	c.emitOp(OpPop)

	if cc.hasSuperclass {
		c.endScope()
	}

	c.classCompiler = c.classCompiler.enclosing
}

func (c *Compiler) method() {
	c.consume(Identifier, "Expect method name.")
	name := c.previous
	constant := c.identifierConstant(name)

	fnType := FunctionTypeMethod
	if name.Lexeme == "init" {
		fnType = FunctionTypeInitializer
	}

	c.function(fnType)
	c.emitOpByte(OpMethod, constant)
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(Equal) {
		c.expression()
	} else {
		c.emitOp(OpNil)
	}
	c.consume(Semicolon, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(FunctionTypeFunction)
	c.defineVariable(global)
}

func (c *Compiler) defineVariable(global byte) {
	if c.fc.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(OpDefineGlobal, global)
}

func (c *Compiler) markInitialized() {
	if c.fc.scopeDepth == 0 {
		return
	}
	c.fc.locals[len(c.fc.locals)-1].Depth = c.fc.scopeDepth
}

func (c *Compiler) parseVariable(errMsg string) byte {
	c.consume(Identifier, errMsg)

	c.declareVariable()
	if c.fc.scopeDepth > 0 {
		return 0
	}

	return c.identifierConstant(c.previous)
}

func (c *Compiler) identifierConstant(name Token) byte {
	return c.makeConstant(objectValue(c.vm.internString(name.Lexeme)))
}

func (c *Compiler) declareVariable() {
	if c.fc.scopeDepth == 0 {
		return
	}

	name := c.previous
	for i := len(c.fc.locals) - 1; i >= 0; i-- {
		local := c.fc.locals[i]
		if local.Depth != -1 && local.Depth < c.fc.scopeDepth {
			break
		}
		if name.Lexeme == local.Name.Lexeme {
			c.error("Already a variable with this name in this scope.")
		}
	}

	c.addLocal(name)
}

func (c *Compiler) addLocal(name Token) {
	if len(c.fc.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.fc.locals = append(c.fc.locals, localVar{Name: name, Depth: -1})
}

func (c *Compiler) function(fnType FunctionType) {
	fc := newFuncCompiler(c.vm, c.fc, fnType, c.previous.Lexeme)
	c.fc = fc
	c.beginScope()

	c.consume(LeftParen, "Expect '(' after function name.")
	if !c.check(RightParen) {
		for {
			fc.fn().Arity++
			if fc.fn().Arity > 255 {
				c.errorAtCurrent("Can't have more than 255 parameters.")
			}
			ci := c.parseVariable("Expect parameter name.")
			c.defineVariable(ci)

			if !c.match(Comma) {
				break
			}
		}
	}
	c.consume(RightParen, "Expect ')' after parameters.")
	c.consume(LeftBrace, "Expect '{' before function body.")
	c.block()

	fnObj := c.endCompiler()
	c.emitOpByte(OpClosure, c.makeConstant(objectValue(fnObj)))

	for _, up := range fc.upvalues {
		if up.IsLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(byte(up.Index))
	}
}

func (c *Compiler) statement() {
	switch {
	case c.match(Print):
		c.printStatement()
	case c.match(If):
		c.ifStatement()
	case c.match(Return):
		c.returnStatement()
	case c.match(LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	case c.match(While):
		c.whileStatement()
	case c.match(For):
		c.forStatement()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) beginScope() {
	c.fc.scopeDepth++
}

func (c *Compiler) endScope() {
	c.fc.scopeDepth--

	locals := c.fc.locals
	n := len(locals)
	for n > 0 && locals[n-1].Depth > c.fc.scopeDepth {
		if locals[n-1].IsCaptured {
			c.emitOp(OpCloseUpvalue)
		} else {
			c.emitOp(OpPop)
		}
		n--
	}
	c.fc.locals = locals[:n]
}

func (c *Compiler) ifStatement() {
	c.consume(LeftParen, "Expect '(' after 'if'.")
	c.expression()
	c.consume(RightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(OpJumpIfFalse)
	c.emitOp(OpPop)
	c.statement()

	elseJump := c.emitJump(OpJump)
	c.patchJump(thenJump)
	c.emitOp(OpPop)

	if c.match(Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) emitJump(op OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return c.currentChunk().Count() - 2
}

func (c *Compiler) patchJump(offset int) {
	chunk := c.currentChunk()
	jump := chunk.Count() - offset - 2

	if jump > math.MaxUint16 {
		c.error("Too much code to jump over.")
	}

	chunk.Code[offset] = byte((jump >> 8) & 0xff)
	chunk.Code[offset+1] = byte(jump & 0xff)
}

func (c *Compiler) whileStatement() {
	loopStart := c.currentChunk().Count()

	c.consume(LeftParen, "Expect '(' after 'while'.")
	c.expression()
	c.consume(RightParen, "Expect ')' after condition.")

	exitJump := c.emitJump(OpJumpIfFalse)
	c.emitOp(OpPop)
	c.statement()

	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(OpPop)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(LeftParen, "Expect '(' after 'for'.")

	switch {
	case c.match(Semicolon):
	case c.match(Var):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := c.currentChunk().Count()
	exitJump := -1

	if !c.match(Semicolon) {
		c.expression()
		c.consume(Semicolon, "Expect ';' after loop condition.")

		exitJump = c.emitJump(OpJumpIfFalse)
		c.emitOp(OpPop)
	}

	if !c.match(RightParen) {
		bodyJump := c.emitJump(OpJump)
		incrementStart := c.currentChunk().Count()
		c.expression()
		c.emitOp(OpPop)
		c.consume(RightParen, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(OpPop)
	}

	c.endScope()
}

func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(OpLoop)

	offset := c.currentChunk().Count() - loopStart + 2
	if offset > math.MaxUint16 {
		c.error("Loop body too large.")
	}

	c.emitByte(byte((offset >> 8) & 0xff))
	c.emitByte(byte(offset & 0xff))
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(Semicolon, "Expect ';' after value.")
	c.emitOp(OpPrint)
}

func (c *Compiler) returnStatement() {
	if c.fc.fnType == FunctionTypeScript {
		c.error("Can't return from top-level code.")
	}

	if c.match(Semicolon) {
		c.emitReturn()
	} else {
		if c.fc.fnType == FunctionTypeInitializer {
			c.error("Can't return a value from an initializer.")
		}
		c.expression()
		c.consume(Semicolon, "Expect ';' after return value.")
		c.emitOp(OpReturn)
	}
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(Semicolon, "Expect ';' after expression.")
	c.emitOp(OpPop)
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecedenceAssignment)
}

func (c *Compiler) parsePrecedence(precedence Precedence) {
	c.advance()

	prefix := c.getRule(c.previous.Type).Prefix
	if prefix == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := precedence <= PrecedenceAssignment
	prefix(canAssign)

	for precedence <= c.getRule(c.current.Type).Precedence {
		c.advance()
		infix := c.getRule(c.previous.Type).Infix
		infix(canAssign)
	}

	if canAssign && c.match(Equal) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) block() {
	for !c.check(RightBrace) && !c.check(EOF) {
		c.declaration()
	}
	c.consume(RightBrace, "Expect '}' after block.")
}

func (c *Compiler) string_(canAssign bool) {
	lexeme := c.previous.Lexeme
	s := lexeme[1 : len(lexeme)-1]
	c.emitConstant(objectValue(c.vm.internString(s)))
}

func (c *Compiler) number(canAssign bool) {
	value, _ := strconv.ParseFloat(c.previous.Lexeme, 64)
	c.emitConstant(numberValue(value))
}

func (c *Compiler) group(canAssign bool) {
	c.expression()
	c.consume(RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(canAssign bool) {
	operatorType := c.previous.Type
	c.parsePrecedence(PrecedenceUnary)

	switch operatorType {
	case Bang:
		c.emitOp(OpNot)
	case Minus:
		c.emitOp(OpNegate)
	}
}

func (c *Compiler) binary(canAssign bool) {
	operatorType := c.previous.Type
	rule := c.getRule(operatorType)
	c.parsePrecedence(rule.Precedence + 1)

	switch operatorType {
	case BangEqual:
		c.emitOps(OpEqual, OpNot)
	case EqualEqual:
		c.emitOp(OpEqual)
	case Greater:
		c.emitOp(OpGreater)
	case GreaterEqual:
		c.emitOps(OpLess, OpNot)
	case Less:
		c.emitOp(OpLess)
	case LessEqual:
		c.emitOps(OpGreater, OpNot)
	case Plus:
		c.emitOp(OpAdd)
	case Minus:
		c.emitOp(OpSubtract)
	case Star:
		c.emitOp(OpMultiply)
	case Slash:
		c.emitOp(OpDivide)
	}
}

func (c *Compiler) literal(canAssign bool) {
	switch c.previous.Type {
	case False:
		c.emitOp(OpFalse)
	case Nil:
		c.emitOp(OpNil)
	case True:
		c.emitOp(OpTrue)
	}
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

func (c *Compiler) this_(canAssign bool) {
	if c.classCompiler == nil {
		c.error("Can't use 'this' outside of a class.")
		return
	}
	c.variable(false)
}

func (c *Compiler) super_(canAssign bool) {
	if c.classCompiler == nil {
		c.error("Can't use 'super' outside of a class.")
	} else if !c.classCompiler.hasSuperclass {
		c.error("Can't use 'super' in a class with no superclass.")
	}

	c.consume(Dot, "Expect '.' after 'super'.")
	c.consume(Identifier, "Expect superclass method name.")
	name := c.identifierConstant(c.previous)

	c.namedVariable(syntheticToken("this"), false)
	if c.match(LeftParen) {
		argCount := c.argumentList()
		c.namedVariable(syntheticToken("super"), false)
		c.emitOpByte(OpSuperInvoke, name)
		c.emitByte(byte(argCount))
	} else {
		c.namedVariable(syntheticToken("super"), false)
		c.emitOpByte(OpGetSuper, name)
	}
}

func syntheticToken(lexeme string) Token {
	return Token{Type: Identifier, Lexeme: lexeme}
}

func (c *Compiler) namedVariable(name Token, canAssign bool) {
	var getOp, setOp OpCode

	arg, found := c.resolveLocal(c.fc, name)
	if found {
		getOp, setOp = OpGetLocal, OpSetLocal
	} else if arg, found = c.resolveUpvalue(c.fc, name); found {
		getOp, setOp = OpGetUpvalue, OpSetUpvalue
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = OpGetGlobal, OpSetGlobal
	}

	if canAssign && c.match(Equal) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}

// resolveLocal returns the slot index of name within fc, or -1/false if
// it is not declared locally. Reading a local whose Depth is still -1
// (its own initializer expression) is reported as an error.
func (c *Compiler) resolveLocal(fc *funcCompiler, name Token) (int, bool) {
	for i := len(fc.locals) - 1; i >= 0; i-- {
		local := fc.locals[i]
		if name.Lexeme == local.Name.Lexeme {
			if local.Depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i, true
		}
	}
	return -1, false
}

func (c *Compiler) resolveUpvalue(fc *funcCompiler, name Token) (int, bool) {
	if fc.enclosing == nil {
		return -1, false
	}

	if index, found := c.resolveLocal(fc.enclosing, name); found {
		fc.enclosing.locals[index].IsCaptured = true
		return c.addUpvalue(fc, index, true), true
	}

	if index, found := c.resolveUpvalue(fc.enclosing, name); found {
		return c.addUpvalue(fc, index, false), true
	}

	return -1, false
}

func (c *Compiler) addUpvalue(fc *funcCompiler, index int, isLocal bool) int {
	for i, up := range fc.upvalues {
		if up.Index == index && up.IsLocal == isLocal {
			return i
		}
	}

	if len(fc.upvalues) >= maxLocals {
		c.error("Too many closure variables in function.")
		return 0
	}

	fc.upvalues = append(fc.upvalues, upvalueRef{Index: index, IsLocal: isLocal})
	fc.fn().UpvalueCount = len(fc.upvalues)
	return len(fc.upvalues) - 1
}

func (c *Compiler) and_(canAssign bool) {
	endJump := c.emitJump(OpJumpIfFalse)

	c.emitOp(OpPop)
	c.parsePrecedence(PrecedenceAnd)

	c.patchJump(endJump)
}

func (c *Compiler) or_(canAssign bool) {
	elseJump := c.emitJump(OpJumpIfFalse)
	endJump := c.emitJump(OpJump)

	c.patchJump(elseJump)
	c.emitOp(OpPop)
	c.parsePrecedence(PrecedenceOr)

	c.patchJump(endJump)
}

func (c *Compiler) call(canAssign bool) {
	argCount := c.argumentList()
	c.emitOpByte(OpCall, byte(argCount))
}

func (c *Compiler) dot(canAssign bool) {
	c.consume(Identifier, "Expect property name after '.'.")
	name := c.identifierConstant(c.previous)

	switch {
	case canAssign && c.match(Equal):
		c.expression()
		c.emitOpByte(OpSetProperty, name)
	case c.match(LeftParen):
		argCount := c.argumentList()
		c.emitOpByte(OpInvoke, name)
		c.emitByte(byte(argCount))
	default:
		c.emitOpByte(OpGetProperty, name)
	}
}

func (c *Compiler) argumentList() int {
	argCount := 0
	if !c.check(RightParen) {
		for {
			c.expression()
			if argCount == 255 {
				c.error("Can't have more than 255 arguments.")
			}
			argCount++
			if !c.match(Comma) {
				break
			}
		}
	}
	c.consume(RightParen, "Expect ')' after arguments.")
	return argCount
}

func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Type != EOF {
		if c.previous.Type == Semicolon {
			return
		}

		switch c.current.Type {
		case Class, Fun, Var, For, If, While, Print, Return:
			return
		}

		c.advance()
	}
}

func (c *Compiler) endCompiler() *Object {
	c.emitReturn()

	fnObj := c.fc.function
	fn := c.fc.fn()

	if c.vm.config.Disassemble {
		name := "<script>"
		if fn.Name != nil {
			name = fn.Name.Data.(*ObjString).Chars
		}
		fn.Chunk.Disassemble(c.vm.config.Stdout, name)
	}

	c.vm.popCompilerRoot()
	c.fc = c.fc.enclosing
	return fnObj
}

func (c *Compiler) errorAtCurrent(msg string) {
	c.errorAt(c.current, msg)
}

func (c *Compiler) error(msg string) {
	c.errorAt(c.previous, msg)
}

func (c *Compiler) errorAt(token Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true

	out := c.vm.config.Stderr
	fmt.Fprintf(out, "[line %d] Error", token.Line)

	switch token.Type {
	case EOF:
		fmt.Fprint(out, " at end")
	case Error:
	default:
		fmt.Fprintf(out, " at '%s'", token.Lexeme)
	}

	fmt.Fprintf(out, ": %s\n", msg)
	c.hadError = true
}

func (c *Compiler) currentChunk() *Chunk {
	return c.fc.fn().Chunk
}

func (c *Compiler) emitReturn() {
	if c.fc.fnType == FunctionTypeInitializer {
		c.emitOpByte(OpGetLocal, 0)
	} else {
		c.emitOp(OpNil)
	}
	c.emitOp(OpReturn)
}

func (c *Compiler) emitOp(op OpCode) {
	c.currentChunk().WriteOp(op, c.previous.Line)
}

func (c *Compiler) emitByte(b byte) {
	c.currentChunk().Write(b, c.previous.Line)
}

func (c *Compiler) emitOps(op1, op2 OpCode) {
	c.emitOp(op1)
	c.emitOp(op2)
}

func (c *Compiler) emitOpByte(op OpCode, b byte) {
	c.emitOp(op)
	c.emitByte(b)
}

func (c *Compiler) emitConstant(value Value) {
	c.emitOpByte(OpConstant, c.makeConstant(value))
}

func (c *Compiler) makeConstant(value Value) byte {
	ci := c.currentChunk().AddConstant(value)
	if ci > math.MaxUint8 {
		c.error("Too many constants in one chunk.")
		return 0
	}
	return byte(ci)
}

func (c *Compiler) getRule(tt TokenType) ParseRule {
	return c.rules[tt]
}

func (c *Compiler) buildParseRuleTable() {
	c.rules = map[TokenType]ParseRule{
		LeftParen:    {Prefix: c.group, Infix: c.call, Precedence: PrecedenceCall},
		RightParen:   {},
		LeftBrace:    {},
		RightBrace:   {},
		Comma:        {},
		Dot:          {Infix: c.dot, Precedence: PrecedenceCall},
		Minus:        {Prefix: c.unary, Infix: c.binary, Precedence: PrecedenceTerm},
		Plus:         {Infix: c.binary, Precedence: PrecedenceTerm},
		Semicolon:    {},
		Slash:        {Infix: c.binary, Precedence: PrecedenceFactor},
		Star:         {Infix: c.binary, Precedence: PrecedenceFactor},
		Bang:         {Prefix: c.unary},
		BangEqual:    {Infix: c.binary, Precedence: PrecedenceEquality},
		Equal:        {},
		EqualEqual:   {Infix: c.binary, Precedence: PrecedenceEquality},
		Greater:      {Infix: c.binary, Precedence: PrecedenceComparison},
		GreaterEqual: {Infix: c.binary, Precedence: PrecedenceComparison},
		Less:         {Infix: c.binary, Precedence: PrecedenceComparison},
		LessEqual:    {Infix: c.binary, Precedence: PrecedenceComparison},
		Identifier:   {Prefix: c.variable},
		String:       {Prefix: c.string_},
		Number:       {Prefix: c.number},
		And:          {Infix: c.and_, Precedence: PrecedenceAnd},
		Class:        {},
		Else:         {},
		False:        {Prefix: c.literal},
		For:          {},
		Fun:          {},
		If:           {},
		Nil:          {Prefix: c.literal},
		Or:           {Infix: c.or_, Precedence: PrecedenceOr},
		Print:        {},
		Return:       {},
		Super:        {Prefix: c.super_},
		This:         {Prefix: c.this_},
		True:         {Prefix: c.literal},
		Var:          {},
		While:        {},
		Error:        {},
		EOF:          {},
	}
}
