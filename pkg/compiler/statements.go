package compiler

import (
	"github.com/kristofer/chef/pkg/chunk"
	"github.com/kristofer/chef/pkg/token"
	"github.com/kristofer/chef/pkg/value"
)

// declaration parses one top-level or block-level declaration and
// resynchronises to the next statement boundary if it errored, so a
// single mistake doesn't cascade into a wall of spurious errors.
func (c *Compiler) declaration() {
	switch {
	case c.match(token.Fun):
		c.funDeclaration()
	case c.match(token.Var):
		c.varDeclaration()
	case c.match(token.Class):
		c.error("Unsupported feature.")
	default:
		c.statement()
	}

	if c.panicMode {
		c.synchronise()
	}
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(typeFunction)
	c.defineVariable(global)
}

// function compiles a nested recipe body in its own frame, then binds
// the finished Function as a constant back in the enclosing chunk.
func (c *Compiler) function(fnType funcType) {
	name := c.previous.Lexeme
	c.fr = newFrame(c.fr, name, fnType)
	c.beginScope()

	c.consume(token.LeftParen, "Expect '(' after function name.")
	if !c.check(token.RightParen) {
		for {
			c.fr.function.Arity++
			if c.fr.function.Arity > 255 {
				c.errorAtCurrent("Can't have more than 255 parameters.")
			}
			paramConstant := c.parseVariable("Expect parameter name.")
			c.defineVariable(paramConstant)
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "Expect ')' after parameters.")
	c.consume(token.LeftBrace, "Expect '{' before function body.")
	c.block()

	fn := c.endFrame()
	c.emitOpByte(chunk.OpFunction, c.makeConstant(chunk.Wrap(fn)))
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")
	if c.match(token.Equal) {
		c.expression()
	} else {
		c.emitOp(chunk.OpNil)
	}
	c.consume(token.Semicolon, "Expect ';' after variable declaration.")
	c.defineVariable(global)
}

// parseVariable consumes the identifier, declares it (as a local if
// inside a scope), and — only for globals — interns its name and
// returns the constant index define_variable needs.
func (c *Compiler) parseVariable(errMessage string) byte {
	c.consume(token.Identifier, errMessage)
	c.declareVariable()
	if c.fr.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

func (c *Compiler) identifierConstant(name token.Token) byte {
	return c.makeConstant(value.String(name.Lexeme))
}

// declareVariable adds the just-consumed identifier as a local of the
// current scope. Global declarations are resolved dynamically by name
// at runtime instead, so this is a no-op at scope depth zero.
func (c *Compiler) declareVariable() {
	if c.fr.scopeDepth == 0 {
		return
	}
	name := c.previous
	for i := c.fr.localCount - 1; i >= 0; i-- {
		l := c.fr.locals[i]
		if l.depth != -1 && l.depth < c.fr.scopeDepth {
			break
		}
		if name.Lexeme == l.name {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name token.Token) {
	if c.fr.localCount == maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.fr.locals[c.fr.localCount] = local{name: name.Lexeme, depth: -1}
	c.fr.localCount++
}

func (c *Compiler) markInitialized() {
	if c.fr.scopeDepth == 0 {
		return
	}
	c.fr.locals[c.fr.localCount-1].depth = c.fr.scopeDepth
}

func (c *Compiler) defineVariable(global byte) {
	if c.fr.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(chunk.OpDefineGlobal, global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.Print):
		c.printStatement()
	case c.match(token.For):
		c.forStatement()
	case c.match(token.If):
		c.ifStatement()
	case c.match(token.Return):
		c.returnStatement()
	case c.match(token.While):
		c.whileStatement()
	case c.match(token.LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RightBrace, "Expect '}' after block.")
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after value.")
	c.emitOp(chunk.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after expression.")
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LeftParen, "Expect '(' after 'taste'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()

	elseJump := c.emitJump(chunk.OpJump)
	c.patchJump(thenJump)
	c.emitOp(chunk.OpPop)

	if c.match(token.Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk().Code)
	c.consume(token.LeftParen, "Expect '(' after 'mix_while'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(chunk.OpPop)
}

// forStatement desugars the three-clause loop into the same
// jump/loop primitives while/if use: the increment clause, when
// present, is compiled where it's written but spliced to run after
// the body via a forward jump around it followed by a loop back.
func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LeftParen, "Expect '(' after 'stir'.")

	switch {
	case c.match(token.Semicolon):
		// no initializer
	case c.match(token.Var):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk().Code)
	exitJump := -1
	if !c.match(token.Semicolon) {
		c.expression()
		c.consume(token.Semicolon, "Expect ';' after loop condition.")
		exitJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emitOp(chunk.OpPop)
	}

	if !c.match(token.RightParen) {
		bodyJump := c.emitJump(chunk.OpJump)
		incrementStart := len(c.chunk().Code)
		c.expression()
		c.emitOp(chunk.OpPop)
		c.consume(token.RightParen, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(chunk.OpPop)
	}
	c.endScope()
}

func (c *Compiler) returnStatement() {
	if c.fr.fnType == typeScript {
		c.error("Can't return from top-level code.")
	}
	if c.match(token.Semicolon) {
		c.emitReturn()
		return
	}
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after return value.")
	c.emitOp(chunk.OpReturn)
}
