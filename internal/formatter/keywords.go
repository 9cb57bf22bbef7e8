package formatter

// kw is the table of reserved words the printer writes in place of the
// source spelling.
var kw = struct {
	stage, require, imports                      string
	let, letRec, letInline, letBlock, letMath    string
	letMutable, and, in, typ, of, module         string
	sig, structure, end, val, direct, constraint string
	open, ifs, then, elses, while, do, match     string
	with, when, fun, as, command                 string
	inlineCmd, blockCmd, mathCmd                 string
}{
	stage:      "@stage:",
	require:    "@require:",
	imports:    "@import:",
	let:        "let",
	letRec:     "let-rec",
	letInline:  "let-inline",
	letBlock:   "let-block",
	letMath:    "let-math",
	letMutable: "let-mutable",
	and:        "and",
	in:         "in",
	typ:        "type",
	of:         "of",
	module:     "module",
	sig:        "sig",
	structure:  "struct",
	end:        "end",
	val:        "val",
	direct:     "direct",
	constraint: "constraint",
	open:       "open",
	ifs:        "if",
	then:       "then",
	elses:      "else",
	while:      "while",
	do:         "do",
	match:      "match",
	with:       "with",
	when:       "when",
	fun:        "fun",
	as:         "as",
	command:    "command",
	inlineCmd:  "inline-cmd",
	blockCmd:   "block-cmd",
	mathCmd:    "math-cmd",
}
