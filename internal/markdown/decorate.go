package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// copyableCodeBlock replaces a fenced code block in the rendered tree. It
// carries the raw code text so the renderer can emit it inside a copy-button
// envelope instead of goldmark's default <pre><code> output.
type copyableCodeBlock struct {
	ast.BaseBlock
	content []byte
}

var kindCopyableCodeBlock = ast.NewNodeKind("CopyableCodeBlock")

func (n *copyableCodeBlock) Kind() ast.NodeKind {
	return kindCopyableCodeBlock
}

func (n *copyableCodeBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// DecorateCodeBlocks rewrites the parsed tree in place, swapping every fenced
// code block for a copyable envelope node. Nodes are collected before being
// replaced because mutating the tree mid-walk invalidates the traversal.
func DecorateCodeBlocks(doc ast.Node, source []byte) {
	var fenced []*ast.FencedCodeBlock

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if block, ok := n.(*ast.FencedCodeBlock); ok {
				fenced = append(fenced, block)
			}
		}
		return ast.WalkContinue, nil
	})

	for _, block := range fenced {
		parent := block.Parent()
		if parent == nil {
			continue
		}
		replacement := &copyableCodeBlock{content: blockContent(block, source)}
		parent.ReplaceChild(parent, block, replacement)
	}
}

func blockContent(n ast.Node, source []byte) []byte {
	var out bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		out.Write(segment.Value(source))
	}
	return out.Bytes()
}

// copyableBlockRenderer emits the HTML envelope for copyable code blocks. Code
// text is escaped so markup inside snippets survives the round trip intact.
type copyableBlockRenderer struct{}

func newCopyableBlockRenderer() renderer.NodeRenderer {
	return &copyableBlockRenderer{}
}

func (r *copyableBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindCopyableCodeBlock, r.render)
}

func (r *copyableBlockRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	block := node.(*copyableCodeBlock)

	_, _ = w.WriteString("<pre><button>copy</button><code>")
	_, _ = w.Write(util.EscapeHTML(block.content))
	_, _ = w.WriteString("</code></pre>\n")

	return ast.WalkContinue, nil
}
