package ast

// NodeKind distinguishes what AST construct a NodeRef points at.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota
	NodeFile
	NodeDecl
	NodeBlock
)

// NodeRef is an opaque handle to the AST construct a scope belongs to.
// Scope tables store it for their callers and never interpret it.
type NodeRef struct {
	Kind  NodeKind
	File  FileID
	Decl  DeclID
	Block BlockID
}

func FileNode(id FileID) NodeRef   { return NodeRef{Kind: NodeFile, File: id} }
func DeclNode(id DeclID) NodeRef   { return NodeRef{Kind: NodeDecl, Decl: id} }
func BlockNode(id BlockID) NodeRef { return NodeRef{Kind: NodeBlock, Block: id} }

func (n NodeRef) IsValid() bool { return n.Kind != NodeInvalid }
