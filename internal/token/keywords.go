package token

var keywords = map[string]Kind{
	"abstract":    KwAbstract,
	"accessor":    KwAccessor,
	"any":         KwAny,
	"as":          KwAs,
	"asserts":     KwAsserts,
	"async":       KwAsync,
	"await":       KwAwait,
	"bigint":      KwBigint,
	"boolean":     KwBoolean,
	"break":       KwBreak,
	"case":        KwCase,
	"catch":       KwCatch,
	"class":       KwClass,
	"const":       KwConst,
	"constructor": KwConstructor,
	"continue":    KwContinue,
	"debugger":    KwDebugger,
	"declare":     KwDeclare,
	"default":     KwDefault,
	"delete":      KwDelete,
	"do":          KwDo,
	"else":        KwElse,
	"enum":        KwEnum,
	"export":      KwExport,
	"extends":     KwExtends,
	"false":       KwFalse,
	"finally":     KwFinally,
	"for":         KwFor,
	"from":        KwFrom,
	"function":    KwFunction,
	"get":         KwGet,
	"global":      KwGlobal,
	"if":          KwIf,
	"implements":  KwImplements,
	"import":      KwImport,
	"in":          KwIn,
	"infer":       KwInfer,
	"instanceof":  KwInstanceof,
	"interface":   KwInterface,
	"intrinsic":   KwIntrinsic,
	"is":          KwIs,
	"keyof":       KwKeyof,
	"let":         KwLet,
	"module":      KwModule,
	"namespace":   KwNamespace,
	"never":       KwNever,
	"new":         KwNew,
	"null":        KwNull,
	"number":      KwNumber,
	"object":      KwObject,
	"of":          KwOf,
	"out":         KwOut,
	"override":    KwOverride,
	"package":     KwPackage,
	"private":     KwPrivate,
	"protected":   KwProtected,
	"public":      KwPublic,
	"readonly":    KwReadonly,
	"require":     KwRequire,
	"return":      KwReturn,
	"satisfies":   KwSatisfies,
	"set":         KwSet,
	"static":      KwStatic,
	"string":      KwString,
	"super":       KwSuper,
	"switch":      KwSwitch,
	"symbol":      KwSymbol,
	"this":        KwThis,
	"throw":       KwThrow,
	"true":        KwTrue,
	"try":         KwTry,
	"type":        KwType,
	"typeof":      KwTypeof,
	"undefined":   KwUndefined,
	"unique":      KwUnique,
	"unknown":     KwUnknown,
	"var":         KwVar,
	"void":        KwVoid,
	"while":       KwWhile,
	"with":        KwWith,
	"yield":       KwYield,
}

// LookupKeyword reports the keyword kind for ident. Keywords are case sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Reservation classifies where a word may not be used as a declaration name.
type Reservation uint8

const (
	// NotReserved words may name declarations anywhere.
	NotReserved Reservation = iota
	// ReservedAlways words are reserved in strict code, which covers modules and interfaces.
	ReservedAlways
	// ReservedInAsync words are reserved only inside async functions.
	ReservedInAsync
	// ReservedInGenerator words are reserved only inside generator functions.
	ReservedInGenerator
)

var reserved = map[string]Reservation{
	"await": ReservedInAsync,
	"yield": ReservedInGenerator,
}

func init() {
	for _, w := range [...]string{
		"break", "case", "catch", "class", "const", "continue", "debugger", "default",
		"delete", "do", "else", "enum", "export", "extends", "false", "finally", "for",
		"function", "if", "import", "in", "instanceof", "new", "null", "return", "super",
		"switch", "this", "throw", "true", "try", "typeof", "var", "void", "while", "with",
		// strict mode
		"implements", "interface", "let", "package", "private", "protected", "public", "static",
	} {
		reserved[w] = ReservedAlways
	}
}

// ReservedIn reports how name is reserved.
func ReservedIn(name string) Reservation {
	return reserved[name]
}

var predefinedTypes = map[string]struct{}{
	"any": {}, "bigint": {}, "boolean": {}, "never": {}, "null": {}, "number": {},
	"object": {}, "string": {}, "symbol": {}, "undefined": {}, "unknown": {}, "void": {},
}

// IsPredefinedType reports whether name is a builtin type such as string or never.
func IsPredefinedType(name string) bool {
	_, ok := predefinedTypes[name]
	return ok
}
