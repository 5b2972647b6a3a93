package compiler

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rail44/spctr/internal/ast"
	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/parser"
)

// Compiler lowers an AST Statement into a Chunk, per spec.md §4.1.
type Compiler struct {
	chunk *Chunk
}

func newCompiler() *Compiler {
	return &Compiler{chunk: NewChunk()}
}

// NativeField is one foreign-function member of a host-built stdlib module
// (spec.md §4.3's "foreign-function closures").
type NativeField struct {
	Name string
	Fn   Foreign
}

// StdlibModule is one outermost-scope binding seeded before the user
// program is compiled (spec.md §4.3: "the translator seeds the outermost
// scope with a fixed set of named bindings before compiling the user
// program"). Exactly one of Natives or Source should be set: Natives
// builds the module as a NativeRecord of foreign-function fields directly;
// Source is Spctr source compiled in the same frame as its sibling
// modules (used for Iterator, which spec.md §4.3 says "is implemented in
// Spctr itself and loaded by embedding its source at translation time").
type StdlibModule struct {
	Name    string
	Natives []NativeField
	Source  string
}

// CompileProgram compiles a user program, wrapped in an outermost scope
// seeded with modules, into a runnable Chunk.
func CompileProgram(modules []StdlibModule, program *ast.Statement) (*Chunk, error) {
	c := newCompiler()

	binds := make([]ast.Binding, len(modules))
	for i, m := range modules {
		binds[i] = ast.Binding{Name: m.Name}
	}

	outerEnv := newEnv(nil)
	for _, b := range binds {
		outerEnv.declare(b.Name)
	}

	line := 1
	if program != nil {
		line = program.GetToken().Line
	}

	n := len(modules)
	c.chunk.WriteOp(OpBlock, line)
	c.chunk.writeByte(byte(n), line)
	sizePos := make([]int, n)
	for i := range modules {
		sizePos[i] = c.chunk.Len()
		c.chunk.writeU16(0xFFFF, line)
	}
	for i, m := range modules {
		start := c.chunk.Len()
		if err := c.compileModuleThunk(outerEnv, m, line); err != nil {
			return nil, err
		}
		c.chunk.WriteOpU16(OpStore, i, line)
		c.chunk.WriteOp(OpReturn, line)
		c.chunk.PatchU16(sizePos[i], c.chunk.Len()-start)
	}

	if err := c.compileStatement(outerEnv, program); err != nil {
		return nil, err
	}
	c.chunk.WriteOp(OpExitScope, line)

	return c.chunk, nil
}

// compileModuleThunk emits the thunk body for one seeded stdlib binding.
func (c *Compiler) compileModuleThunk(parentEnv *env, m StdlibModule, line int) error {
	if m.Source != "" {
		stmt, err := parser.ParseProgram(m.Source)
		if err != nil {
			return fmt.Errorf("stdlib module %s: %w", m.Name, err)
		}
		return c.compileStatement(parentEnv, stmt)
	}
	return c.emitNativeRecord(m.Name, m.Natives, line)
}

// emitNativeRecord pushes a NativeRecord whose fields are foreign-function
// values (SPEC_FULL.md §4's builtin module stubs). Unlike a user Block,
// this needs no lexical frame or compiled entry point: every field is
// already a constructed Value.
func (c *Compiler) emitNativeRecord(name string, fields []NativeField, line int) error {
	values := make(map[string]object.Value, len(fields))
	for _, f := range fields {
		values[f.Name] = object.FromObject(&object.Function{Foreign: f.Fn})
	}
	idx := c.chunk.AddNativeRecord(object.NewNativeRecord(name, values))
	c.chunk.WriteOpU16(OpNativeRecord, idx, line)
	return nil
}

// compileFrame emits the Block instruction and every thunk body for binds,
// returning the child env those thunks (and the subsequent body/field
// region) compile against. Spec.md §4.1's "Statement" lowering rule.
func (c *Compiler) compileFrame(parentEnv *env, binds []ast.Binding, line int) (*env, error) {
	childEnv := newEnv(parentEnv)
	for _, b := range binds {
		childEnv.declare(b.Name)
	}

	n := len(binds)
	c.chunk.WriteOp(OpBlock, line)
	c.chunk.writeByte(byte(n), line)
	sizePos := make([]int, n)
	for i := 0; i < n; i++ {
		sizePos[i] = c.chunk.Len()
		c.chunk.writeU16(0xFFFF, line)
	}
	for i, b := range binds {
		start := c.chunk.Len()
		if err := c.compileExpression(childEnv, b.Value); err != nil {
			return nil, err
		}
		c.chunk.WriteOpU16(OpStore, i, line)
		c.chunk.WriteOp(OpReturn, line)
		c.chunk.PatchU16(sizePos[i], c.chunk.Len()-start)
	}
	return childEnv, nil
}

// compileStatement compiles a Statement (spec.md §4.1): Block([sizes]),
// thunk bodies, the body expression, ExitScope.
func (c *Compiler) compileStatement(parentEnv *env, stmt *ast.Statement) error {
	line := stmt.GetToken().Line
	childEnv, err := c.compileFrame(parentEnv, stmt.Definitions, line)
	if err != nil {
		return err
	}
	if stmt.Body == nil {
		return fmt.Errorf("statement has no body expression")
	}
	if err := c.compileExpression(childEnv, stmt.Body); err != nil {
		return err
	}
	c.chunk.WriteOp(OpExitScope, line)
	return nil
}

// compileFieldedBlock compiles a BlockLiteral: the same Block+thunks frame
// as a Statement, but with a ConstructBlock "body" whose inner region is a
// Load(i,0);Return pair per field (spec.md §4.2.4). Each field's byte
// offset within that region is recorded in the FieldTable as it's emitted,
// rather than assumed from a fixed instruction width (a field's compiled
// size can vary if this ever grows beyond a bare Load/Return pair).
func (c *Compiler) compileFieldedBlock(parentEnv *env, binds []ast.Binding, line int) error {
	_, err := c.compileFrame(parentEnv, binds, line)
	if err != nil {
		return err
	}

	ft := &FieldTable{Slots: map[string]int{}}
	for i, b := range binds {
		ft.Slots[b.Name] = i
		ft.Order = append(ft.Order, b.Name)
	}
	ftIdx := c.chunk.AddFieldTable(ft)

	instrStart := c.chunk.WriteOpU16x2(OpConstructBlock, ftIdx, 0xFFFF, line)
	bodyLenPos := instrStart + 3
	bodyStart := c.chunk.Len()
	for i := range binds {
		ft.Offsets = append(ft.Offsets, c.chunk.Len()-bodyStart)
		c.chunk.WriteOpU16x2(OpLoad, i, 0, line)
		c.chunk.WriteOp(OpReturn, line)
	}
	c.chunk.PatchU16(bodyLenPos, c.chunk.Len()-bodyStart)
	c.chunk.WriteOp(OpExitScope, line)
	return nil
}

func (c *Compiler) compileExpression(e *env, expr ast.Expression) error {
	line := expr.GetToken().Line
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		idx := c.chunk.AddConstant(object.Number(n.Value))
		c.chunk.WriteOpU16(OpNumberConst, idx, line)
		return nil
	case *ast.StringLiteral:
		idx := c.chunk.AddConstant(object.FromObject(object.NewString(n.Value)))
		c.chunk.WriteOpU16(OpStringConst, idx, line)
		return nil
	case *ast.NullLiteral:
		c.chunk.WriteOp(OpNullConst, line)
		return nil
	case *ast.Identifier:
		slot, depth, ok := e.getBind(n.Name)
		if !ok {
			return unresolved(n.Name)
		}
		c.chunk.WriteOpU16x2(OpLoad, slot, depth, line)
		return nil
	case *ast.ListLiteral:
		for _, el := range n.Elements {
			if err := c.compileExpression(e, el); err != nil {
				return err
			}
		}
		c.chunk.WriteOpU16(OpConstructList, len(n.Elements), line)
		return nil
	case *ast.BlockLiteral:
		return c.compileFieldedBlock(e, n.Binds, line)
	case *ast.ImmediateBlock:
		return c.compileStatement(e, n.Stmt)
	case *ast.FunctionLiteral:
		return c.compileFunctionLiteral(e, n, line)
	case *ast.If:
		return c.compileIf(e, n)
	case *ast.Comparison:
		return c.compileComparison(e, n)
	case *ast.Additive:
		return c.compileAdditive(e, n)
	case *ast.Multitive:
		return c.compileMultitive(e, n)
	case *ast.Operation:
		return c.compileOperation(e, n)
	default:
		return fmt.Errorf("compiler: unhandled expression node %T", expr)
	}
}

func (c *Compiler) compileIf(e *env, n *ast.If) error {
	line := n.GetToken().Line
	if err := c.compileExpression(e, n.Cond); err != nil {
		return err
	}
	unlessStart := c.chunk.WriteOpU16(OpJumpRelUnless, 0xFFFF, line)
	unlessOperand := unlessStart + 1

	if err := c.compileExpression(e, n.Cons); err != nil {
		return err
	}
	jumpStart := c.chunk.WriteOpU16(OpJumpRel, 0xFFFF, line)
	jumpOperand := jumpStart + 1
	c.chunk.PatchU16(unlessOperand, c.chunk.Len()-unlessOperand-2)

	if err := c.compileExpression(e, n.Alt); err != nil {
		return err
	}
	c.chunk.PatchU16(jumpOperand, c.chunk.Len()-jumpOperand-2)
	return nil
}

func (c *Compiler) compileComparison(e *env, n *ast.Comparison) error {
	if err := c.compileExpression(e, n.Left); err != nil {
		return err
	}
	for _, r := range n.Rights {
		if err := c.compileExpression(e, r.Operand); err != nil {
			return err
		}
		line := r.Operand.GetToken().Line
		switch r.Op {
		case ast.OpEq:
			c.chunk.WriteOp(OpEqual, line)
		case ast.OpNotEq:
			c.chunk.WriteOp(OpEqual, line)
			c.chunk.WriteOp(OpNot, line)
		case ast.OpGt:
			c.chunk.WriteOp(OpGreaterThan, line)
		case ast.OpLt:
			c.chunk.WriteOp(OpLessThan, line)
		case ast.OpGte:
			c.chunk.WriteOp(OpLessThan, line)
			c.chunk.WriteOp(OpNot, line)
		case ast.OpLte:
			c.chunk.WriteOp(OpGreaterThan, line)
			c.chunk.WriteOp(OpNot, line)
		}
	}
	return nil
}

func (c *Compiler) compileAdditive(e *env, n *ast.Additive) error {
	if err := c.compileExpression(e, n.Left); err != nil {
		return err
	}
	for _, r := range n.Rights {
		if err := c.compileExpression(e, r.Operand); err != nil {
			return err
		}
		line := r.Operand.GetToken().Line
		if r.Op == ast.OpAdd {
			c.chunk.WriteOp(OpAdd, line)
		} else {
			c.chunk.WriteOp(OpSub, line)
		}
	}
	return nil
}

func (c *Compiler) compileMultitive(e *env, n *ast.Multitive) error {
	if err := c.compileExpression(e, n.Left); err != nil {
		return err
	}
	for _, r := range n.Rights {
		if err := c.compileExpression(e, r.Operand); err != nil {
			return err
		}
		line := r.Operand.GetToken().Line
		switch r.Op {
		case ast.OpMul:
			c.chunk.WriteOp(OpMul, line)
		case ast.OpDiv:
			c.chunk.WriteOp(OpDiv, line)
		case ast.OpMod:
			c.chunk.WriteOp(OpSurplus, line)
		}
	}
	return nil
}

func (c *Compiler) compileOperation(e *env, n *ast.Operation) error {
	if err := c.compileExpression(e, n.Left); err != nil {
		return err
	}
	for _, post := range n.Rights {
		switch p := post.(type) {
		case ast.AccessPostfix:
			idx := c.chunk.AddConstant(object.FromObject(object.NewString(p.Name)))
			c.chunk.WriteOpU16(OpStringConst, idx, n.GetToken().Line)
			c.chunk.WriteOp(OpAccess, n.GetToken().Line)
		case ast.CallPostfix:
			for _, a := range p.Args {
				if err := c.compileExpression(e, a); err != nil {
					return err
				}
			}
			c.chunk.WriteOpU16(OpCall, len(p.Args), n.GetToken().Line)
		case ast.IndexPostfix:
			if err := c.compileExpression(e, p.Index); err != nil {
				return err
			}
			c.chunk.WriteOp(OpIndex, n.GetToken().Line)
		}
	}
	return nil
}

func (c *Compiler) compileFunctionLiteral(parentEnv *env, n *ast.FunctionLiteral, line int) error {
	childEnv := newEnv(parentEnv)
	for _, p := range n.Params {
		childEnv.declare(p)
	}

	id := uuid.New().String()
	idIdx := c.chunk.AddConstant(object.FromObject(object.NewString(id)))

	instrStart := c.chunk.WriteOpU16x2(OpConstructFunction, idIdx, 0xFFFF, line)
	bodyLenPos := instrStart + 3
	bodyStart := c.chunk.Len()

	if err := c.compileExpression(childEnv, n.Body); err != nil {
		return err
	}
	c.chunk.WriteOp(OpExitScope, line)
	c.chunk.WriteOp(OpReturn, line)

	c.chunk.PatchU16(bodyLenPos, c.chunk.Len()-bodyStart)
	return nil
}
