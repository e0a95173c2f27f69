package ast

// Walk traverses the tree rooted at n in depth-first order. It calls f(n)
// first; if that returns true, Walk visits each child of n and finally
// calls f(nil).
func Walk(n Node, f func(Node) bool) {
	if n == nil {
		return
	}
	if !f(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, f)
	}
	f(nil)
}

// Children returns the direct children of n in source order. Absent
// optional children are omitted.
func Children(n Node) []Node {
	var c children
	switch n := n.(type) {
	case *Program:
		c.stmts(n.Body)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			c.add(d)
		}
	case *VariableDeclarator:
		c.ident(n.ID)
		c.typ(n.TypeAnnotation)
		c.expr(n.Init)
	case *Parameter:
		c.ident(n.Name)
		c.typ(n.TypeAnnotation)
		c.expr(n.Default)
	case *FunctionDeclaration:
		c.ident(n.ID)
		c.params(n.Params)
		c.typ(n.ReturnType)
		c.block(n.Body)
	case *ClassDeclaration:
		c.ident(n.ID)
		c.ident(n.SuperClass)
		for _, m := range n.Body {
			c.add(m)
		}
	case *MethodDefinition:
		c.ident(n.Key)
		c.params(n.Params)
		c.typ(n.ReturnType)
		c.block(n.Body)
	case *IfStatement:
		c.expr(n.Test)
		c.stmt(n.Consequent)
		c.stmt(n.Alternate)
	case *WhileStatement:
		c.expr(n.Test)
		c.stmt(n.Body)
	case *ForStatement:
		if n.Init != nil {
			c.add(n.Init)
		}
		c.expr(n.Test)
		c.expr(n.Update)
		c.stmt(n.Body)
	case *ForOfStatement:
		if n.Left != nil {
			c.add(n.Left)
		}
		c.expr(n.Right)
		c.stmt(n.Body)
	case *ReturnStatement:
		c.expr(n.Argument)
	case *TryStatement:
		c.block(n.Block)
		if n.Handler != nil {
			c.add(n.Handler)
		}
		c.block(n.Finalizer)
	case *CatchClause:
		c.ident(n.Param)
		c.block(n.Body)
	case *ThrowStatement:
		c.expr(n.Argument)
	case *ImportDeclaration:
		c.ident(n.Default)
		for _, s := range n.Specifiers {
			c.add(s)
		}
		if n.Source != nil {
			c.add(n.Source)
		}
	case *ImportSpecifier:
		c.ident(n.Imported)
		c.ident(n.Local)
	case *ExportNamedDeclaration:
		c.stmt(n.Declaration)
	case *ExportDefaultDeclaration:
		c.stmt(n.Declaration)
	case *BlockStatement:
		c.stmts(n.Body)
	case *ExpressionStatement:
		c.expr(n.Expression)
	case *AssignmentExpression:
		c.expr(n.Left)
		c.expr(n.Right)
	case *ConditionalExpression:
		c.expr(n.Test)
		c.expr(n.Consequent)
		c.expr(n.Alternate)
	case *LogicalExpression:
		c.expr(n.Left)
		c.expr(n.Right)
	case *BinaryExpression:
		c.expr(n.Left)
		c.expr(n.Right)
	case *UnaryExpression:
		c.expr(n.Argument)
	case *UpdateExpression:
		c.expr(n.Argument)
	case *CallExpression:
		c.expr(n.Callee)
		c.exprs(n.Arguments)
	case *MemberExpression:
		c.expr(n.Object)
		c.expr(n.Property)
	case *NewExpression:
		c.expr(n.Callee)
		c.exprs(n.Arguments)
	case *ArrayExpression:
		c.exprs(n.Elements)
	case *ObjectExpression:
		for _, p := range n.Properties {
			c.add(p)
		}
	case *Property:
		c.expr(n.Key)
		c.expr(n.Value)
	case *SpreadElement:
		c.expr(n.Argument)
	case *ArrowFunctionExpression:
		c.params(n.Params)
		c.expr(n.Body)
		c.block(n.BlockBody)
	}
	return c.nodes
}

type children struct {
	nodes []Node
}

func (c *children) add(n Node) {
	c.nodes = append(c.nodes, n)
}

func (c *children) expr(e Expression) {
	if e != nil {
		c.add(e)
	}
}

func (c *children) exprs(es []Expression) {
	for _, e := range es {
		c.expr(e)
	}
}

func (c *children) stmt(s Statement) {
	if s != nil {
		c.add(s)
	}
}

func (c *children) stmts(ss []Statement) {
	for _, s := range ss {
		c.stmt(s)
	}
}

func (c *children) ident(id *Identifier) {
	if id != nil {
		c.add(id)
	}
}

func (c *children) typ(t *TypeAnnotation) {
	if t != nil {
		c.add(t)
	}
}

func (c *children) block(b *BlockStatement) {
	if b != nil {
		c.add(b)
	}
}

func (c *children) params(ps []*Parameter) {
	for _, p := range ps {
		c.add(p)
	}
}
