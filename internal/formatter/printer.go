package formatter

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

// shortListWidth is the widest list literal kept on one line.
const shortListWidth = 30

// printer renders a syntax tree. It holds no state besides the tree and
// the configuration; the nesting depth is passed down explicitly.
type printer struct {
	tree *cst.Tree
	cfg  Config
}

func newPrinter(tree *cst.Tree, cfg Config) *printer {
	return &printer{tree: tree, cfg: cfg}
}

// increasesDepth reports whether the contents of a node of kind k are laid
// out one indentation level deeper than the node itself.
func increasesDepth(k cst.Kind) bool {
	switch k {
	case cst.BlockText, cst.CmdTextArg, cst.InlineText,
		cst.Record, cst.TypeRecord, cst.List,
		cst.TypeInlineCmd, cst.TypeBlockCmd, cst.TypeMathCmd,
		cst.MatchArm, cst.LetRecInner, cst.TypeInner,
		cst.SigStmt, cst.StructStmt, cst.Parened:
		return true
	}
	return false
}

// separator returns the text placed between consecutive children of a
// node of kind k at the given depth.
func (p *printer) separator(k cst.Kind, depth int) string {
	switch k {
	case cst.BlockCmd, cst.InlineCmd, cst.Application:
		return " "
	case cst.List, cst.Record, cst.TypeRecord,
		cst.TypeInlineCmd, cst.TypeBlockCmd, cst.TypeMathCmd:
		return ";" + p.newline(depth+1)
	case cst.Vertical, cst.HorizontalBulletList:
		return p.newline(depth)
	case cst.HorizontalList:
		return p.newline(depth) + "| "
	case cst.Unary, cst.UnaryOperatorExpr, cst.MathCmd:
		return ""
	}
	return " "
}

// render returns the canonical text of n at the given depth.
func (p *printer) render(n *cst.Node, depth int) string {
	inner := depth
	if increasesDepth(n.Kind) {
		inner++
	}

	switch n.Kind {
	// program
	case cst.ProgramSaty, cst.ProgramSatyh:
		return p.renderProgram(n)
	case cst.Stage:
		return kw.stage + " " + strings.TrimSpace(strings.TrimPrefix(p.text(n), kw.stage))
	case cst.Headers:
		return p.join(n, depth, "", "\n")
	case cst.HeaderRequire:
		return p.seq(n, depth, []string{kw.require + " "})
	case cst.HeaderImport:
		return p.seq(n, depth, []string{kw.imports + " "})
	case cst.Pkgname:
		return strings.TrimSpace(p.text(n))
	case cst.Preamble:
		return p.renderStatements(n, depth)

	// statements
	case cst.LetStmt:
		return p.renderLet(n, depth, kw.let)
	case cst.LetInlineStmt:
		return p.renderLet(n, depth, kw.letInline)
	case cst.LetBlockStmt:
		return p.renderLet(n, depth, kw.letBlock)
	case cst.LetMathStmt:
		return p.renderLet(n, depth, kw.letMath)
	case cst.LetRecInner, cst.LetRecMatchArm:
		return p.renderLet(n, depth, "")
	case cst.LetMutableStmt:
		return p.seq(n, depth, []string{kw.letMutable + " ", " <- "})
	case cst.LetRecStmt:
		return p.renderAnd(n, depth, kw.letRec)
	case cst.TypeStmt:
		return p.renderAnd(n, depth, kw.typ)
	case cst.TypeInner:
		return p.renderTypeInner(n, depth, inner)
	case cst.TypeVariant:
		return p.seq(n, depth, []string{"", " " + kw.of + " "})
	case cst.ModuleStmt:
		return p.renderModule(n, depth)
	case cst.SigStmt:
		return p.renderSig(n, depth, inner)
	case cst.StructStmt:
		return p.renderStruct(n, depth, inner)
	case cst.SigTypeStmt:
		return p.join(n, depth, kw.typ+" ", " ")
	case cst.SigValStmt:
		return p.seq(n, depth, []string{kw.val + " ", " : ", " "})
	case cst.SigDirectStmt:
		return p.seq(n, depth, []string{kw.direct + " ", " : "})
	case cst.SigConstraint:
		return p.seq(n, depth, []string{kw.constraint + " ", " :: "})
	case cst.OpenStmt:
		if strings.HasPrefix(p.text(n), kw.let) {
			return p.seq(n, depth, []string{kw.let + " " + kw.open + " "})
		}
		return p.seq(n, depth, []string{kw.open + " "})

	// types
	case cst.TypeExpr, cst.TypeApplication:
		return p.join(n, depth, "", " ")
	case cst.TypeProd:
		return p.join(n, depth, "", " * ")
	case cst.TypeRecord:
		return p.renderRecord(n, depth, inner)
	case cst.TypeRecordUnit:
		return p.seq(n, depth, []string{"", " : "})
	case cst.TypeInlineCmd:
		return p.renderCmdType(n, depth, inner, kw.inlineCmd)
	case cst.TypeBlockCmd:
		return p.renderCmdType(n, depth, inner, kw.blockCmd)
	case cst.TypeMathCmd:
		return p.renderCmdType(n, depth, inner, kw.mathCmd)
	case cst.TypeListUnitOptional:
		return p.join(n, depth, "", "") + "?"

	// expressions
	case cst.BindStmt:
		return p.renderBind(n, depth)
	case cst.CtrlIf:
		return p.renderIf(n, depth)
	case cst.CtrlWhile:
		return p.seq(n, depth, []string{kw.while + " ", " " + kw.do + " "})
	case cst.MatchExpr:
		return p.renderMatch(n, depth)
	case cst.MatchArm:
		return p.renderMatchArm(n, depth)
	case cst.MatchGuard:
		return p.seq(n, depth, []string{kw.when + " "})
	case cst.Lambda:
		return p.renderLambda(n, depth)
	case cst.Assignment:
		return p.seq(n, depth, []string{"", " <- "})
	case cst.DyadicExpr:
		return p.join(n, depth, "", " ")
	case cst.UnaryOperatorExpr:
		sep := p.separator(n.Kind, depth)
		if isWord(p.text(n.Children[0])) {
			sep = " "
		}
		return p.join(n, depth, "", sep)
	case cst.Unary:
		return p.join(n, depth, "", p.separator(n.Kind, depth))
	case cst.Application, cst.VariantConstructor, cst.PatVariant:
		return p.renderApplication(n, depth)
	case cst.ApplicationArgsOptional, cst.CmdExprOption:
		if len(nonComments(n)) == 0 {
			return "?*"
		}
		return p.join(n, depth, "?:", "")
	case cst.CommandApplication:
		return p.seq(n, depth, []string{kw.command + " "})
	case cst.RecordMember:
		return p.join(n, depth, "", "#")
	case cst.ExprWithMod:
		return p.wrap("", p.seq(n, depth, []string{"", ".("}), ")", depth)
	case cst.Parened:
		return p.wrap("(", p.seq(n, inner, []string{"", " : "}), ")", depth)
	case cst.Tuple, cst.PatTuple:
		return p.wrap("(", p.join(n, depth, "", ", "), ")", depth)
	case cst.Record:
		return p.renderRecord(n, depth, inner)
	case cst.RecordUnit:
		return p.seq(n, depth, []string{"", " = "})
	case cst.List:
		return p.renderList(n, depth, inner)
	case cst.PatList:
		return p.wrap("[", p.join(n, depth, "", "; "), "]", depth)
	case cst.PatAs:
		return p.seq(n, depth, []string{"", " " + kw.as + " "})
	case cst.PatCons:
		return p.join(n, depth, "", " :: ")
	case cst.Pattern:
		if rest, ok := strings.CutPrefix(p.text(n), "?:"); ok {
			return "?:" + strings.TrimSpace(rest)
		}
		return p.text(n)

	// leaves
	case cst.ConstUnit, cst.ConstBool, cst.ConstInt, cst.ConstFloat,
		cst.ConstLength, cst.ConstString, cst.Var, cst.ModVar,
		cst.ModuleName, cst.VariantName, cst.VarPtn, cst.TypeName,
		cst.TypeParam, cst.TypeArrow, cst.BinOperator, cst.UnaryOperator,
		cst.UnaryPrefix, cst.InlineCmdName, cst.BlockCmdName,
		cst.MathCmdName, cst.HorizontalEscapedChar, cst.MathSymbol:
		return p.text(n)

	// text literals and commands
	case cst.InlineText, cst.CmdTextArg:
		return p.renderTextArg(n, depth, inner)
	case cst.BlockText:
		return p.renderBlockText(n, depth, inner)
	case cst.MathText:
		return p.wrap("${", strings.TrimLeft(p.join(n, depth, "", ""), " \t\n"), "}", depth)
	case cst.InlineCmd, cst.BlockCmd:
		return p.renderCmd(n, depth)
	case cst.CmdExprArg:
		if len(nonComments(n)) == 0 {
			return "()"
		}
		return p.join(n, depth, "", "")

	// horizontal mode
	case cst.HorizontalSingle:
		return p.renderHorizontalSingle(n, depth)
	case cst.HorizontalList:
		return p.renderHorizontalList(n, depth)
	case cst.HorizontalBulletList:
		return p.join(n, depth, "", p.separator(n.Kind, depth))
	case cst.HorizontalBullet:
		return p.renderBullet(n, depth)
	case cst.HorizontalBulletStar:
		return p.renderBulletStar(n)
	case cst.RegularText:
		return p.renderRegularText(n, depth)
	case cst.InlineTextEmbedding, cst.BlockTextEmbedding:
		return p.join(n, depth, "#", "") + ";"

	// vertical mode
	case cst.Vertical:
		return p.join(n, depth, "", p.separator(n.Kind, depth))

	// math mode
	case cst.MathList:
		return p.renderMathList(n, depth)
	case cst.MathSingle:
		return p.renderMathSeq(n, depth)
	case cst.MathGroup:
		return p.wrap("{", p.renderMathSeq(n, depth), "}", depth)
	case cst.MathSup:
		return p.join(n, depth, "^", "")
	case cst.MathSub:
		return p.join(n, depth, "_", "")
	case cst.MathEmbedding:
		return p.join(n, depth, "#", "")
	case cst.MathCmd:
		return p.join(n, depth, "", p.separator(n.Kind, depth))
	case cst.MathCmdExprArg:
		if strings.HasPrefix(p.text(n), "!") {
			return p.join(n, depth, "!", "")
		}
		return p.join(n, depth, "", "")
	case cst.MathCmdExprOption:
		return p.join(n, depth, "?:", "")

	case cst.Comment:
		return commentText(p.tree.Text, n.Span) + p.newline(depth)
	}
	panic(renderError{kind: n.Kind, span: n.Span})
}

// text returns the source text of n.
func (p *printer) text(n *cst.Node) string {
	return p.tree.NodeText(n)
}

func (p *printer) indent(depth int) string {
	return strings.Repeat(" ", depth*p.cfg.IndentUnit)
}

func (p *printer) newline(depth int) string {
	return "\n" + p.indent(depth)
}

// tooWide reports whether s is longer than a row.
func (p *printer) tooWide(s string) bool {
	return uniseg.GraphemeClusterCount(s) > p.cfg.RowLength
}

// atLineStart reports whether s ends with a newline followed only by
// indentation. Rendered text ends this way exactly when its last element
// is a comment.
func atLineStart(s string) bool {
	i := strings.LastIndexByte(s, '\n')
	return i >= 0 && strings.Trim(s[i+1:], " \t") == ""
}

func multiline(s string) bool {
	return strings.Contains(s, "\n")
}

// glue appends s to out after sep. When out already ends a comment line,
// the line break that opens sep is the one the comment wrote, so only the
// rest of sep is added.
func glue(out, sep, s string) string {
	switch {
	case out == "":
		return sep + s
	case !atLineStart(out):
		return out + sep + s
	}
	if strings.HasPrefix(sep, "\n") {
		return strings.TrimRight(out, " \t") + sep[1:] + s
	}
	return out + strings.TrimLeft(sep, " \t") + s
}

// closeLine ends out with closer on its own line at depth.
func (p *printer) closeLine(out string, depth int, closer string) string {
	return strings.TrimRight(out, " \t\n") + p.newline(depth) + closer
}

// wrap encloses s in a delimiter pair. A closing delimiter that would
// land on a comment line is moved to the next line.
func (p *printer) wrap(open, s, closer string, depth int) string {
	if atLineStart(s) {
		return p.closeLine(open+s, depth, closer)
	}
	return open + s + closer
}

// appendComment places comment c after out. A comment that followed code
// on the same source line stays on that line; otherwise it starts a new
// line at depth.
func (p *printer) appendComment(out string, c *cst.Node, depth int) string {
	s := p.render(c, depth)
	switch {
	case out == "":
		return s
	case atLineStart(out):
		return strings.TrimRight(out, " \t") + p.indent(depth) + s
	case p.trailing(c):
		return strings.TrimRight(out, " \t") + " " + s
	}
	return strings.TrimRight(out, " \t") + p.newline(depth) + s
}

// trailing reports whether code precedes comment c on its source line.
func (p *printer) trailing(c *cst.Node) bool {
	src := p.tree.Text
	i := c.Span.Start - 1
	for i >= 0 && (src[i] == ' ' || src[i] == '\t') {
		i--
	}
	return i >= 0 && src[i] != '\n'
}

// join renders the children of n with prefix before the first and sep
// between the others. Comments are placed by appendComment.
func (p *printer) join(n *cst.Node, depth int, prefix, sep string) string {
	out := ""
	first := true
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out = p.appendComment(out, c, depth)
			continue
		}
		s := p.render(c, depth)
		if first {
			out = glue(out, prefix, s)
			first = false
			continue
		}
		out = glue(out, sep, s)
	}
	if first {
		return prefix + out
	}
	return out
}

// seq renders the children of n writing seps[i] before the i-th non-comment
// child. Children past the end of seps use the last separator.
func (p *printer) seq(n *cst.Node, depth int, seps []string) string {
	out := ""
	i := 0
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out = p.appendComment(out, c, depth)
			continue
		}
		sep := seps[min(i, len(seps)-1)]
		out = glue(out, sep, p.render(c, depth))
		i++
	}
	return out
}

// block renders the children of n one per line at inner depth, each
// terminated by the list separator of n, between open and closer.
func (p *printer) block(n *cst.Node, depth, inner int, open, closer string, term func(*cst.Node) string) string {
	out := open
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			out = p.appendComment(out, c, inner)
			continue
		}
		out = glue(out, p.newline(inner), p.render(c, inner)+term(c))
	}
	return p.closeLine(out, depth, closer)
}

// listTerm returns the terminator written after each item of a
// multi-line list-like node of kind k.
func (p *printer) listTerm(k cst.Kind, depth int) string {
	return strings.TrimSuffix(p.separator(k, depth), p.newline(depth+1))
}

// nonComments returns the children of n that are not comments.
func nonComments(n *cst.Node) []*cst.Node {
	var out []*cst.Node
	for _, c := range n.Children {
		if c.Kind != cst.Comment {
			out = append(out, c)
		}
	}
	return out
}

// hasComment reports whether any child of n is a comment.
func hasComment(n *cst.Node) bool {
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			return true
		}
	}
	return false
}

// isWord reports whether s is made of lowercase letters, as in "not".
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
