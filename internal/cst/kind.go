package cst

import "strconv"

// Kind identifies the grammatical category of a [Node].
type Kind int

const (
	Invalid Kind = iota

	// program
	ProgramSaty
	ProgramSatyh
	Stage
	Headers
	HeaderRequire
	HeaderImport
	Pkgname
	Preamble

	// binding statements
	LetStmt
	LetRecStmt
	LetRecInner
	LetRecMatchArm
	LetInlineStmt
	LetBlockStmt
	LetMathStmt
	LetMutableStmt
	TypeStmt
	TypeInner
	TypeVariant
	ModuleStmt
	SigStmt
	StructStmt
	SigTypeStmt
	SigValStmt
	SigDirectStmt
	SigConstraint
	OpenStmt

	// types
	TypeExpr
	TypeArrow
	TypeProd
	TypeApplication
	TypeName
	TypeParam
	TypeRecord
	TypeRecordUnit
	TypeInlineCmd
	TypeBlockCmd
	TypeMathCmd
	TypeListUnitOptional

	// expressions
	BindStmt
	CtrlIf
	CtrlWhile
	MatchExpr
	MatchArm
	MatchGuard
	Lambda
	Assignment
	DyadicExpr
	BinOperator
	UnaryOperatorExpr
	UnaryOperator
	Unary
	UnaryPrefix
	Application
	ApplicationArgsOptional
	CommandApplication
	VariantConstructor
	RecordMember
	ExprWithMod
	Parened

	// literals and names
	ConstUnit
	ConstBool
	ConstInt
	ConstFloat
	ConstLength
	ConstString
	Var
	ModVar
	ModuleName
	VariantName
	VarPtn

	Record
	RecordUnit
	List
	Tuple

	InlineText
	BlockText
	MathText

	// commands
	InlineCmd
	InlineCmdName
	BlockCmd
	BlockCmdName
	CmdExprArg
	CmdExprOption
	CmdTextArg
	MathCmd
	MathCmdName
	MathCmdExprArg
	MathCmdExprOption

	// patterns
	PatAs
	PatCons
	PatVariant
	PatList
	PatTuple
	Pattern

	// horizontal mode
	HorizontalSingle
	HorizontalList
	HorizontalBulletList
	HorizontalBullet
	HorizontalBulletStar
	RegularText
	HorizontalEscapedChar
	InlineTextEmbedding

	// vertical mode
	Vertical
	BlockTextEmbedding

	// math mode
	MathList
	MathSingle
	MathGroup
	MathSup
	MathSub
	MathSymbol
	MathEmbedding

	// Comment is only introduced by comment reattachment, never by the parser.
	Comment

	kindCount
)

var kindNames = [...]string{
	Invalid:                 "Invalid",
	ProgramSaty:             "ProgramSaty",
	ProgramSatyh:            "ProgramSatyh",
	Stage:                   "Stage",
	Headers:                 "Headers",
	HeaderRequire:           "HeaderRequire",
	HeaderImport:            "HeaderImport",
	Pkgname:                 "Pkgname",
	Preamble:                "Preamble",
	LetStmt:                 "LetStmt",
	LetRecStmt:              "LetRecStmt",
	LetRecInner:             "LetRecInner",
	LetRecMatchArm:          "LetRecMatchArm",
	LetInlineStmt:           "LetInlineStmt",
	LetBlockStmt:            "LetBlockStmt",
	LetMathStmt:             "LetMathStmt",
	LetMutableStmt:          "LetMutableStmt",
	TypeStmt:                "TypeStmt",
	TypeInner:               "TypeInner",
	TypeVariant:             "TypeVariant",
	ModuleStmt:              "ModuleStmt",
	SigStmt:                 "SigStmt",
	StructStmt:              "StructStmt",
	SigTypeStmt:             "SigTypeStmt",
	SigValStmt:              "SigValStmt",
	SigDirectStmt:           "SigDirectStmt",
	SigConstraint:           "SigConstraint",
	OpenStmt:                "OpenStmt",
	TypeExpr:                "TypeExpr",
	TypeArrow:               "TypeArrow",
	TypeProd:                "TypeProd",
	TypeApplication:         "TypeApplication",
	TypeName:                "TypeName",
	TypeParam:               "TypeParam",
	TypeRecord:              "TypeRecord",
	TypeRecordUnit:          "TypeRecordUnit",
	TypeInlineCmd:           "TypeInlineCmd",
	TypeBlockCmd:            "TypeBlockCmd",
	TypeMathCmd:             "TypeMathCmd",
	TypeListUnitOptional:    "TypeListUnitOptional",
	BindStmt:                "BindStmt",
	CtrlIf:                  "CtrlIf",
	CtrlWhile:               "CtrlWhile",
	MatchExpr:               "MatchExpr",
	MatchArm:                "MatchArm",
	MatchGuard:              "MatchGuard",
	Lambda:                  "Lambda",
	Assignment:              "Assignment",
	DyadicExpr:              "DyadicExpr",
	BinOperator:             "BinOperator",
	UnaryOperatorExpr:       "UnaryOperatorExpr",
	UnaryOperator:           "UnaryOperator",
	Unary:                   "Unary",
	UnaryPrefix:             "UnaryPrefix",
	Application:             "Application",
	ApplicationArgsOptional: "ApplicationArgsOptional",
	CommandApplication:      "CommandApplication",
	VariantConstructor:      "VariantConstructor",
	RecordMember:            "RecordMember",
	ExprWithMod:             "ExprWithMod",
	Parened:                 "Parened",
	ConstUnit:               "ConstUnit",
	ConstBool:               "ConstBool",
	ConstInt:                "ConstInt",
	ConstFloat:              "ConstFloat",
	ConstLength:             "ConstLength",
	ConstString:             "ConstString",
	Var:                     "Var",
	ModVar:                  "ModVar",
	ModuleName:              "ModuleName",
	VariantName:             "VariantName",
	VarPtn:                  "VarPtn",
	Record:                  "Record",
	RecordUnit:              "RecordUnit",
	List:                    "List",
	Tuple:                   "Tuple",
	InlineText:              "InlineText",
	BlockText:               "BlockText",
	MathText:                "MathText",
	InlineCmd:               "InlineCmd",
	InlineCmdName:           "InlineCmdName",
	BlockCmd:                "BlockCmd",
	BlockCmdName:            "BlockCmdName",
	CmdExprArg:              "CmdExprArg",
	CmdExprOption:           "CmdExprOption",
	CmdTextArg:              "CmdTextArg",
	MathCmd:                 "MathCmd",
	MathCmdName:             "MathCmdName",
	MathCmdExprArg:          "MathCmdExprArg",
	MathCmdExprOption:       "MathCmdExprOption",
	PatAs:                   "PatAs",
	PatCons:                 "PatCons",
	PatVariant:              "PatVariant",
	PatList:                 "PatList",
	PatTuple:                "PatTuple",
	Pattern:                 "Pattern",
	HorizontalSingle:        "HorizontalSingle",
	HorizontalList:          "HorizontalList",
	HorizontalBulletList:    "HorizontalBulletList",
	HorizontalBullet:        "HorizontalBullet",
	HorizontalBulletStar:    "HorizontalBulletStar",
	RegularText:             "RegularText",
	HorizontalEscapedChar:   "HorizontalEscapedChar",
	InlineTextEmbedding:     "InlineTextEmbedding",
	Vertical:                "Vertical",
	BlockTextEmbedding:      "BlockTextEmbedding",
	MathList:                "MathList",
	MathSingle:              "MathSingle",
	MathGroup:               "MathGroup",
	MathSup:                 "MathSup",
	MathSub:                 "MathSub",
	MathSymbol:              "MathSymbol",
	MathEmbedding:           "MathEmbedding",
	Comment:                 "Comment",
}

// String returns the kind's name, or "Kind(n)" for values outside the enumeration.
func (k Kind) String() string {
	if k < 0 || k >= kindCount || kindNames[k] == "" {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Valid reports whether k is a member of the enumeration.
func (k Kind) Valid() bool {
	return k > Invalid && k < kindCount
}
