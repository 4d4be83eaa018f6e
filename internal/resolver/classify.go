package resolver

import (
	"fmt"

	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/surface"
)

// typeClass is the dispatch tag computed once per raw type.
type typeClass int

const (
	classUnsupported typeClass = iota
	classTypeParameter
	classArray
	classExternal
	classIntrinsic
	classLiteral
	classEnum
	classUnion
	classIntersection
	classTuple
	classClass
	classFunction
	classObject
)

var classNames = [...]string{
	classUnsupported:   "unsupported",
	classTypeParameter: "typeParameter",
	classArray:         "array",
	classExternal:      "external",
	classIntrinsic:     "intrinsic",
	classLiteral:       "literal",
	classEnum:          "enum",
	classUnion:         "union",
	classIntersection:  "intersection",
	classTuple:         "tuple",
	classClass:         "class",
	classFunction:      "function",
	classObject:        "object",
}

func (k typeClass) String() string { return classNames[k] }

// classify assigns t its dispatch tag. The order of the checks is the
// resolution priority.
func (c *Context) classify(t *oracle.Type) typeClass {
	switch {
	case t.Is(oracle.TypeFlagsTypeParameter):
		return classTypeParameter
	case c.checker.IsArrayType(t) && len(c.checker.TypeArguments(t)) == 1:
		return classArray
	case c.isFilteredExternal(t):
		return classExternal
	case t.Is(oracle.TypeFlagsBoolean):
		// boolean is reported as the union true | false
		return classIntrinsic
	case t.Is(oracle.TypeFlagsEnum | oracle.TypeFlagsEnumLiteral):
		return classEnum
	case t.Is(oracle.TypeFlagsLiteral):
		return classLiteral
	case intrinsicOf(t.Flags) != "":
		return classIntrinsic
	case t.Is(oracle.TypeFlagsUnion):
		return classUnion
	case t.Is(oracle.TypeFlagsIntersection):
		return classIntersection
	case c.checker.IsTupleType(t):
		return classTuple
	case t.Is(oracle.TypeFlagsObject):
		if c.isClass(t) {
			return classClass
		}
		if len(c.checker.SignaturesOfType(t, oracle.SignatureKindCall)) > 0 {
			return classFunction
		}
		return classObject
	}
	return classUnsupported
}

func intrinsicOf(f oracle.TypeFlags) surface.Intrinsic {
	switch {
	case f&oracle.TypeFlagsAny != 0:
		return surface.IntrinsicAny
	case f&oracle.TypeFlagsUnknown != 0:
		return surface.IntrinsicUnknown
	case f&oracle.TypeFlagsString != 0:
		return surface.IntrinsicString
	case f&oracle.TypeFlagsNumber != 0:
		return surface.IntrinsicNumber
	case f&oracle.TypeFlagsBoolean != 0:
		return surface.IntrinsicBoolean
	case f&oracle.TypeFlagsBigInt != 0:
		return surface.IntrinsicBigInt
	case f&(oracle.TypeFlagsESSymbol|oracle.TypeFlagsUniqueESSymbol) != 0:
		return surface.IntrinsicSymbol
	case f&oracle.TypeFlagsVoid != 0:
		return surface.IntrinsicVoid
	case f&oracle.TypeFlagsUndefined != 0:
		return surface.IntrinsicUndefined
	case f&oracle.TypeFlagsNull != 0:
		return surface.IntrinsicNull
	case f&oracle.TypeFlagsNever != 0:
		return surface.IntrinsicNever
	case f&oracle.TypeFlagsNonPrimitive != 0:
		return surface.IntrinsicObject
	case f&oracle.TypeFlagsTemplateLiteral != 0:
		return surface.IntrinsicString
	}
	return ""
}

// isClass requires a construct signature and a class declaration, so an
// interface that merely exposes `new (...)` is not mistaken for a class.
func (c *Context) isClass(t *oracle.Type) bool {
	sym := t.Symbol
	if sym == nil || len(c.checker.SignaturesOfType(t, oracle.SignatureKindConstruct)) == 0 {
		return false
	}
	return sym.Is(oracle.SymbolFlagsClass) || sym.HasDeclaration(oracle.DeclarationClass)
}

// declaringSymbol is the symbol a type is known by: its alias when reached
// through one, otherwise its own symbol.
func declaringSymbol(t *oracle.Type) *oracle.Symbol {
	if t.AliasSymbol != nil {
		return t.AliasSymbol
	}
	return t.Symbol
}

// isFilteredExternal reports whether t is a named type declared outside the
// project that should be referenced rather than expanded.
func (c *Context) isFilteredExternal(t *oracle.Type) bool {
	if c.opts.IncludeExternalTypes {
		return false
	}
	sym := declaringSymbol(t)
	if sym == nil || surface.IsPlaceholderName(sym.Name) {
		return false
	}
	decl := sym.FirstDeclaration()
	if decl == nil || !c.checker.IsExternalFile(decl.File) {
		return false
	}
	return !c.allowed[sym.Name]
}

// noteExternal records, once per name and module, that an external type was
// referenced instead of expanded.
func (c *Context) noteExternal(name *surface.TypeName, decl *oracle.Declaration) {
	if name == nil || c.externals[name.Qualified()] {
		return
	}
	c.externals[name.Qualified()] = true
	c.report(diagnostic.SeverityDebug, diagnostic.CategoryExternalType, decl,
		fmt.Sprintf("external type %q referenced, not expanded", name.Qualified()),
		"add it to resolve.externalAllowList to expand it")
}
