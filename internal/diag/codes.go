package diag

import (
	"fmt"
	"slices"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexBadPrivateName           Code = 1006
	LexBadEscape                Code = 1007
	LexUnterminatedTemplate     Code = 1008

	// Structural
	SynInfo                                Code = 2000
	SynUnexpectedToken                     Code = 2001
	SynMissingInterfaceBody                Code = 2002
	SynUnclosedInterfaceBlock              Code = 2003
	SynMissingSemicolonAfterField          Code = 2004
	SynMissingSemicolonAfterIndexSignature Code = 2005
	SynMissingSemicolonAfterMethod         Code = 2006
	SynIndexSignatureNeedsType             Code = 2007
	SynIndexSignatureCannotBeMethod        Code = 2008
	SynMethodCannotContainBody             Code = 2009
	SynArrowOperatorOnMethod               Code = 2010
	SynUnexpectedComma                     Code = 2011
	SynExpectedInterfaceName               Code = 2012
	SynUnclosedCodeBlock                   Code = 2013
	SynExpectedRightBracket                Code = 2014
	SynExpectedRightParen                  Code = 2015
	SynMethodUsesFunctionKeyword           Code = 2016
	SynStaticBlockNotAllowed               Code = 2017
	SynExpectedType                        Code = 2018
	SynExpectedExpression                  Code = 2019
	SynExpectedGreater                     Code = 2020

	// Modifier restrictions
	ModInfo                         Code = 3000
	ModAccessSpecifierNotAllowed    Code = 3001
	ModStaticNotAllowed             Code = 3002
	ModAsyncNotAllowed              Code = 3003
	ModGeneratorNotAllowed          Code = 3004
	ModPrivateNotAllowed            Code = 3005
	ModInitializerNotAllowed        Code = 3006
	ModDefiniteAssignmentNotAllowed Code = 3007
	ModReadonlyMethod               Code = 3008

	// Naming
	NamInfo                           Code = 4000
	NamInterfaceNamedAwaitInAsync     Code = 4001
	NamInterfaceNamedYieldInGenerator Code = 4002
	NamInterfaceNameReserved          Code = 4003
	NamInterfaceNameBuiltinType       Code = 4004

	// Language mode
	LngInfo                            Code = 5000
	LngInterfaceNotAllowedInJavaScript Code = 5001

	// I/O
	IOInfo          Code = 6000
	IOLoadFileError Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                            "Unknown error",
		LexInfo:                                "Lexical information",
		LexUnknownChar:                         "Unknown character",
		LexUnterminatedString:                  "Unterminated string literal",
		LexUnterminatedBlockComment:            "Unterminated block comment",
		LexBadNumber:                           "Malformed numeric literal",
		LexTokenTooLong:                        "Token too long",
		LexBadPrivateName:                      "Expected a name after '#'",
		LexBadEscape:                           "Invalid escape sequence in identifier",
		LexUnterminatedTemplate:                "Unterminated template literal",
		SynInfo:                                "Syntax information",
		SynUnexpectedToken:                     "Unexpected token",
		SynMissingInterfaceBody:                "Missing body for interface",
		SynUnclosedInterfaceBlock:              "Unclosed interface body",
		SynMissingSemicolonAfterField:          "Missing semicolon after field",
		SynMissingSemicolonAfterIndexSignature: "Missing semicolon after index signature",
		SynMissingSemicolonAfterMethod:         "Missing semicolon after interface method",
		SynIndexSignatureNeedsType:             "Index signature must have a type",
		SynIndexSignatureCannotBeMethod:        "Index signature cannot be a method",
		SynMethodCannotContainBody:             "Interface methods cannot contain a body",
		SynArrowOperatorOnMethod:               "Methods should not use the '=>' operator",
		SynUnexpectedComma:                     "Unexpected comma",
		SynExpectedInterfaceName:               "Missing name of interface",
		SynUnclosedCodeBlock:                   "Unclosed code block",
		SynExpectedRightBracket:                "Expected ']'",
		SynExpectedRightParen:                  "Expected ')'",
		SynMethodUsesFunctionKeyword:           "Methods should not use the 'function' keyword",
		SynStaticBlockNotAllowed:               "Interfaces cannot contain static blocks",
		SynExpectedType:                        "Expected a type",
		SynExpectedExpression:                  "Expected an expression",
		SynExpectedGreater:                     "Expected '>'",
		ModInfo:                                "Modifier information",
		ModAccessSpecifierNotAllowed:           "Interface properties cannot be marked public, protected or private",
		ModStaticNotAllowed:                    "Interface properties cannot be static",
		ModAsyncNotAllowed:                     "Interface methods cannot be marked 'async'",
		ModGeneratorNotAllowed:                 "Interface methods cannot be marked as a generator",
		ModPrivateNotAllowed:                   "Interface properties are always public and cannot be private",
		ModInitializerNotAllowed:               "Interface fields cannot have a default value",
		ModDefiniteAssignmentNotAllowed:        "Interface fields cannot have a definite assignment assertion",
		ModReadonlyMethod:                      "Methods cannot be readonly",
		NamInfo:                                "Naming information",
		NamInterfaceNamedAwaitInAsync:          "Interface cannot be named 'await' in an async function",
		NamInterfaceNamedYieldInGenerator:      "Interface cannot be named 'yield' in a generator function",
		NamInterfaceNameReserved:               "Interface name is a reserved word",
		NamInterfaceNameBuiltinType:            "Interface name cannot be a predefined type",
		LngInfo:                                "Language mode information",
		LngInterfaceNotAllowedInJavaScript:     "TypeScript interfaces are not allowed in JavaScript",
		IOInfo:                                 "I/O information",
		IOLoadFileError:                        "Failed to load file",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MOD%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("NAM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LNG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Codes returns every known code in ascending order.
func Codes() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
