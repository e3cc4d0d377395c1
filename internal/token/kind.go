package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token, including names written with \u escapes.
	Ident
	// PrivateName represents a '#name' token. Its text includes the '#'.
	PrivateName

	// NumberLit represents a numeric literal, bigint suffix included.
	NumberLit
	// StringLit represents a single- or double-quoted string literal.
	StringLit
	// TemplateLit represents a whole template literal, substitutions included.
	TemplateLit

	keywordsBegin
	KwAbstract    // abstract
	KwAccessor    // accessor
	KwAny         // any
	KwAs          // as
	KwAsserts     // asserts
	KwAsync       // async
	KwAwait       // await
	KwBigint      // bigint
	KwBoolean     // boolean
	KwBreak       // break
	KwCase        // case
	KwCatch       // catch
	KwClass       // class
	KwConst       // const
	KwConstructor // constructor
	KwContinue    // continue
	KwDebugger    // debugger
	KwDeclare     // declare
	KwDefault     // default
	KwDelete      // delete
	KwDo          // do
	KwElse        // else
	KwEnum        // enum
	KwExport      // export
	KwExtends     // extends
	KwFalse       // false
	KwFinally     // finally
	KwFor         // for
	KwFrom        // from
	KwFunction    // function
	KwGet         // get
	KwGlobal      // global
	KwIf          // if
	KwImplements  // implements
	KwImport      // import
	KwIn          // in
	KwInfer       // infer
	KwInstanceof  // instanceof
	KwInterface   // interface
	KwIntrinsic   // intrinsic
	KwIs          // is
	KwKeyof       // keyof
	KwLet         // let
	KwModule      // module
	KwNamespace   // namespace
	KwNever       // never
	KwNew         // new
	KwNull        // null
	KwNumber      // number
	KwObject      // object
	KwOf          // of
	KwOut         // out
	KwOverride    // override
	KwPackage     // package
	KwPrivate     // private
	KwProtected   // protected
	KwPublic      // public
	KwReadonly    // readonly
	KwRequire     // require
	KwReturn      // return
	KwSatisfies   // satisfies
	KwSet         // set
	KwStatic      // static
	KwString      // string
	KwSuper       // super
	KwSwitch      // switch
	KwSymbol      // symbol
	KwThis        // this
	KwThrow       // throw
	KwTrue        // true
	KwTry         // try
	KwType        // type
	KwTypeof      // typeof
	KwUndefined   // undefined
	KwUnique      // unique
	KwUnknown     // unknown
	KwVar         // var
	KwVoid        // void
	KwWhile       // while
	KwWith        // with
	KwYield       // yield
	keywordsEnd

	punctBegin
	LBrace                 // {
	RBrace                 // }
	LParen                 // (
	RParen                 // )
	LBracket               // [
	RBracket               // ]
	Dot                    // .
	DotDotDot              // ...
	QuestionDot            // ?.
	Semicolon              // ;
	Comma                  // ,
	Colon                  // :
	Question               // ?
	QuestionQuestion       // ??
	Lt                     // <
	LtEq                   // <=
	Gt                     // >
	Assign                 // =
	EqEq                   // ==
	EqEqEq                 // ===
	BangEq                 // !=
	BangEqEq               // !==
	FatArrow               // =>
	Plus                   // +
	Minus                  // -
	Star                   // *
	StarStar               // **
	Slash                  // /
	Percent                // %
	PlusPlus               // ++
	MinusMinus             // --
	Shl                    // <<
	Amp                    // &
	Pipe                   // |
	Caret                  // ^
	Tilde                  // ~
	Bang                   // !
	AndAnd                 // &&
	OrOr                   // ||
	PlusAssign             // +=
	MinusAssign            // -=
	StarAssign             // *=
	StarStarAssign         // **=
	SlashAssign            // /=
	PercentAssign          // %=
	ShlAssign              // <<=
	AmpAssign              // &=
	PipeAssign             // |=
	CaretAssign            // ^=
	AndAndAssign           // &&=
	OrOrAssign             // ||=
	QuestionQuestionAssign // ??=
	At                     // @
	punctEnd
)

// Gt is always emitted on its own. The expression parser joins adjacent
// '>' and '=' tokens into shifts and comparisons, so type argument lists such
// as Array<Array<T>> need no re-scanning.

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	PrivateName: "PrivateName",
	NumberLit:   "NumberLit",
	StringLit:   "StringLit",
	TemplateLit: "TemplateLit",

	KwAbstract:             "abstract",
	KwAccessor:             "accessor",
	KwAny:                  "any",
	KwAs:                   "as",
	KwAsserts:              "asserts",
	KwAsync:                "async",
	KwAwait:                "await",
	KwBigint:               "bigint",
	KwBoolean:              "boolean",
	KwBreak:                "break",
	KwCase:                 "case",
	KwCatch:                "catch",
	KwClass:                "class",
	KwConst:                "const",
	KwConstructor:          "constructor",
	KwContinue:             "continue",
	KwDebugger:             "debugger",
	KwDeclare:              "declare",
	KwDefault:              "default",
	KwDelete:               "delete",
	KwDo:                   "do",
	KwElse:                 "else",
	KwEnum:                 "enum",
	KwExport:               "export",
	KwExtends:              "extends",
	KwFalse:                "false",
	KwFinally:              "finally",
	KwFor:                  "for",
	KwFrom:                 "from",
	KwFunction:             "function",
	KwGet:                  "get",
	KwGlobal:               "global",
	KwIf:                   "if",
	KwImplements:           "implements",
	KwImport:               "import",
	KwIn:                   "in",
	KwInfer:                "infer",
	KwInstanceof:           "instanceof",
	KwInterface:            "interface",
	KwIntrinsic:            "intrinsic",
	KwIs:                   "is",
	KwKeyof:                "keyof",
	KwLet:                  "let",
	KwModule:               "module",
	KwNamespace:            "namespace",
	KwNever:                "never",
	KwNew:                  "new",
	KwNull:                 "null",
	KwNumber:               "number",
	KwObject:               "object",
	KwOf:                   "of",
	KwOut:                  "out",
	KwOverride:             "override",
	KwPackage:              "package",
	KwPrivate:              "private",
	KwProtected:            "protected",
	KwPublic:               "public",
	KwReadonly:             "readonly",
	KwRequire:              "require",
	KwReturn:               "return",
	KwSatisfies:            "satisfies",
	KwSet:                  "set",
	KwStatic:               "static",
	KwString:               "string",
	KwSuper:                "super",
	KwSwitch:               "switch",
	KwSymbol:               "symbol",
	KwThis:                 "this",
	KwThrow:                "throw",
	KwTrue:                 "true",
	KwTry:                  "try",
	KwType:                 "type",
	KwTypeof:               "typeof",
	KwUndefined:            "undefined",
	KwUnique:               "unique",
	KwUnknown:              "unknown",
	KwVar:                  "var",
	KwVoid:                 "void",
	KwWhile:                "while",
	KwWith:                 "with",
	KwYield:                "yield",
	LBrace:                 "{",
	RBrace:                 "}",
	LParen:                 "(",
	RParen:                 ")",
	LBracket:               "[",
	RBracket:               "]",
	Dot:                    ".",
	DotDotDot:              "...",
	QuestionDot:            "?.",
	Semicolon:              ";",
	Comma:                  ",",
	Colon:                  ":",
	Question:               "?",
	QuestionQuestion:       "??",
	Lt:                     "<",
	LtEq:                   "<=",
	Gt:                     ">",
	Assign:                 "=",
	EqEq:                   "==",
	EqEqEq:                 "===",
	BangEq:                 "!=",
	BangEqEq:               "!==",
	FatArrow:               "=>",
	Plus:                   "+",
	Minus:                  "-",
	Star:                   "*",
	StarStar:               "**",
	Slash:                  "/",
	Percent:                "%",
	PlusPlus:               "++",
	MinusMinus:             "--",
	Shl:                    "<<",
	Amp:                    "&",
	Pipe:                   "|",
	Caret:                  "^",
	Tilde:                  "~",
	Bang:                   "!",
	AndAnd:                 "&&",
	OrOr:                   "||",
	PlusAssign:             "+=",
	MinusAssign:            "-=",
	StarAssign:             "*=",
	StarStarAssign:         "**=",
	SlashAssign:            "/=",
	PercentAssign:          "%=",
	ShlAssign:              "<<=",
	AmpAssign:              "&=",
	PipeAssign:             "|=",
	CaretAssign:            "^=",
	AndAndAssign:           "&&=",
	OrOrAssign:             "||=",
	QuestionQuestionAssign: "??=",
	At:                     "@",
}

// String returns the lexeme for keywords and punctuation, and the kind name otherwise.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is any reserved or contextual keyword.
func (k Kind) IsKeyword() bool { return k > keywordsBegin && k < keywordsEnd }

// IsPunct reports whether k is punctuation or an operator.
func (k Kind) IsPunct() bool { return k > punctBegin && k < punctEnd }

// IsIdentifierName reports whether a token of kind k may be used as a property name.
// Every keyword qualifies, as in `interface I { if(): void; }`.
func (k Kind) IsIdentifierName() bool { return k == Ident || k.IsKeyword() }
