package oracle

import (
	"sort"
	"strings"
)

// TypeFlags classifies a type. A type may carry several flags (an enum type
// is both Enum and Union).
type TypeFlags uint32

const (
	TypeFlagsAny TypeFlags = 1 << iota
	TypeFlagsUnknown
	TypeFlagsString
	TypeFlagsNumber
	TypeFlagsBoolean
	TypeFlagsEnum
	TypeFlagsBigInt
	TypeFlagsStringLiteral
	TypeFlagsNumberLiteral
	TypeFlagsBooleanLiteral
	TypeFlagsEnumLiteral
	TypeFlagsBigIntLiteral
	TypeFlagsESSymbol
	TypeFlagsUniqueESSymbol
	TypeFlagsVoid
	TypeFlagsUndefined
	TypeFlagsNull
	TypeFlagsNever
	TypeFlagsTypeParameter
	TypeFlagsObject
	TypeFlagsUnion
	TypeFlagsIntersection
	TypeFlagsIndex
	TypeFlagsIndexedAccess
	TypeFlagsConditional
	TypeFlagsTemplateLiteral
	TypeFlagsNonPrimitive

	TypeFlagsLiteral = TypeFlagsStringLiteral | TypeFlagsNumberLiteral | TypeFlagsBooleanLiteral | TypeFlagsBigIntLiteral
)

var typeFlagNames = map[string]TypeFlags{
	"any":             TypeFlagsAny,
	"unknown":         TypeFlagsUnknown,
	"string":          TypeFlagsString,
	"number":          TypeFlagsNumber,
	"boolean":         TypeFlagsBoolean,
	"enum":            TypeFlagsEnum,
	"bigint":          TypeFlagsBigInt,
	"stringLiteral":   TypeFlagsStringLiteral,
	"numberLiteral":   TypeFlagsNumberLiteral,
	"booleanLiteral":  TypeFlagsBooleanLiteral,
	"enumLiteral":     TypeFlagsEnumLiteral,
	"bigintLiteral":   TypeFlagsBigIntLiteral,
	"esSymbol":        TypeFlagsESSymbol,
	"uniqueESSymbol":  TypeFlagsUniqueESSymbol,
	"void":            TypeFlagsVoid,
	"undefined":       TypeFlagsUndefined,
	"null":            TypeFlagsNull,
	"never":           TypeFlagsNever,
	"typeParameter":   TypeFlagsTypeParameter,
	"object":          TypeFlagsObject,
	"union":           TypeFlagsUnion,
	"intersection":    TypeFlagsIntersection,
	"index":           TypeFlagsIndex,
	"indexedAccess":   TypeFlagsIndexedAccess,
	"conditional":     TypeFlagsConditional,
	"templateLiteral": TypeFlagsTemplateLiteral,
	"nonPrimitive":    TypeFlagsNonPrimitive,
}

// ObjectFlags refines object types.
type ObjectFlags uint32

const (
	ObjectFlagsClass ObjectFlags = 1 << iota
	ObjectFlagsInterface
	ObjectFlagsReference
	ObjectFlagsTuple
	ObjectFlagsAnonymous
	ObjectFlagsMapped
)

var objectFlagNames = map[string]ObjectFlags{
	"class":     ObjectFlagsClass,
	"interface": ObjectFlagsInterface,
	"reference": ObjectFlagsReference,
	"tuple":     ObjectFlagsTuple,
	"anonymous": ObjectFlagsAnonymous,
	"mapped":    ObjectFlagsMapped,
}

// SymbolFlags classifies a symbol.
type SymbolFlags uint32

const (
	SymbolFlagsVariable SymbolFlags = 1 << iota
	SymbolFlagsProperty
	SymbolFlagsEnumMember
	SymbolFlagsFunction
	SymbolFlagsClass
	SymbolFlagsInterface
	SymbolFlagsConstEnum
	SymbolFlagsRegularEnum
	SymbolFlagsValueModule
	SymbolFlagsNamespaceModule
	SymbolFlagsTypeLiteral
	SymbolFlagsObjectLiteral
	SymbolFlagsMethod
	SymbolFlagsConstructor
	SymbolFlagsGetAccessor
	SymbolFlagsSetAccessor
	SymbolFlagsTypeParameter
	SymbolFlagsTypeAlias
	SymbolFlagsAlias
	SymbolFlagsOptional
	SymbolFlagsPrototype

	SymbolFlagsEnum      = SymbolFlagsRegularEnum | SymbolFlagsConstEnum
	SymbolFlagsModule    = SymbolFlagsValueModule | SymbolFlagsNamespaceModule
	SymbolFlagsAccessor  = SymbolFlagsGetAccessor | SymbolFlagsSetAccessor
	SymbolFlagsMergeable = SymbolFlagsFunction | SymbolFlagsClass | SymbolFlagsInterface | SymbolFlagsEnum | SymbolFlagsTypeAlias | SymbolFlagsVariable
)

var symbolFlagNames = map[string]SymbolFlags{
	"variable":        SymbolFlagsVariable,
	"property":        SymbolFlagsProperty,
	"enumMember":      SymbolFlagsEnumMember,
	"function":        SymbolFlagsFunction,
	"class":           SymbolFlagsClass,
	"interface":       SymbolFlagsInterface,
	"constEnum":       SymbolFlagsConstEnum,
	"regularEnum":     SymbolFlagsRegularEnum,
	"valueModule":     SymbolFlagsValueModule,
	"namespaceModule": SymbolFlagsNamespaceModule,
	"typeLiteral":     SymbolFlagsTypeLiteral,
	"objectLiteral":   SymbolFlagsObjectLiteral,
	"method":          SymbolFlagsMethod,
	"constructor":     SymbolFlagsConstructor,
	"getAccessor":     SymbolFlagsGetAccessor,
	"setAccessor":     SymbolFlagsSetAccessor,
	"typeParameter":   SymbolFlagsTypeParameter,
	"typeAlias":       SymbolFlagsTypeAlias,
	"alias":           SymbolFlagsAlias,
	"optional":        SymbolFlagsOptional,
	"prototype":       SymbolFlagsPrototype,
}

// ModifierFlags are the syntactic modifiers of a declaration.
type ModifierFlags uint32

const (
	ModifierExport ModifierFlags = 1 << iota
	ModifierDefault
	ModifierPublic
	ModifierPrivate
	ModifierProtected
	ModifierStatic
	ModifierReadonly
	ModifierAbstract
	ModifierDeclare

	ModifierAccessibility = ModifierPublic | ModifierPrivate | ModifierProtected
)

var modifierNames = map[string]ModifierFlags{
	"export":    ModifierExport,
	"default":   ModifierDefault,
	"public":    ModifierPublic,
	"private":   ModifierPrivate,
	"protected": ModifierProtected,
	"static":    ModifierStatic,
	"readonly":  ModifierReadonly,
	"abstract":  ModifierAbstract,
	"declare":   ModifierDeclare,
}

// DeclarationKind is the syntactic kind of a declaration node.
type DeclarationKind string

const (
	DeclarationSourceFile         DeclarationKind = "sourceFile"
	DeclarationVariable           DeclarationKind = "variable"
	DeclarationFunction           DeclarationKind = "function"
	DeclarationClass              DeclarationKind = "class"
	DeclarationInterface          DeclarationKind = "interface"
	DeclarationTypeAlias          DeclarationKind = "typeAlias"
	DeclarationEnum               DeclarationKind = "enum"
	DeclarationEnumMember         DeclarationKind = "enumMember"
	DeclarationModule             DeclarationKind = "module"
	DeclarationProperty           DeclarationKind = "property"
	DeclarationPropertySignature  DeclarationKind = "propertySignature"
	DeclarationMethod             DeclarationKind = "method"
	DeclarationMethodSignature    DeclarationKind = "methodSignature"
	DeclarationGetAccessor        DeclarationKind = "getAccessor"
	DeclarationSetAccessor        DeclarationKind = "setAccessor"
	DeclarationConstructor        DeclarationKind = "constructor"
	DeclarationParameter          DeclarationKind = "parameter"
	DeclarationCallSignature      DeclarationKind = "callSignature"
	DeclarationConstructSignature DeclarationKind = "constructSignature"
	DeclarationTypeLiteral        DeclarationKind = "typeLiteral"
	DeclarationTypeParameter      DeclarationKind = "typeParameter"
	DeclarationExportSpecifier    DeclarationKind = "exportSpecifier"
	DeclarationExportAssignment   DeclarationKind = "exportAssignment"
	DeclarationNamespaceExport    DeclarationKind = "namespaceExport"
)

// HeritageToken distinguishes extends from implements clauses.
type HeritageToken string

const (
	HeritageExtends    HeritageToken = "extends"
	HeritageImplements HeritageToken = "implements"
)

// ParseTypeFlags converts flag names (as used in snapshot documents) into a
// flag set. Unknown names are returned separately.
func ParseTypeFlags(names []string) (TypeFlags, []string) {
	return parseFlags(names, typeFlagNames)
}

func ParseObjectFlags(names []string) (ObjectFlags, []string) {
	return parseFlags(names, objectFlagNames)
}

func ParseSymbolFlags(names []string) (SymbolFlags, []string) {
	return parseFlags(names, symbolFlagNames)
}

func ParseModifiers(names []string) (ModifierFlags, []string) {
	return parseFlags(names, modifierNames)
}

func parseFlags[F ~uint32](names []string, table map[string]F) (F, []string) {
	var flags F
	var unknown []string
	for _, n := range names {
		f, ok := table[strings.TrimSpace(n)]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		flags |= f
	}
	return flags, unknown
}

func (f TypeFlags) String() string   { return formatFlags(f, typeFlagNames) }
func (f ObjectFlags) String() string { return formatFlags(f, objectFlagNames) }
func (f SymbolFlags) String() string { return formatFlags(f, symbolFlagNames) }

func formatFlags[F ~uint32](f F, table map[string]F) string {
	var names []string
	for name, bit := range table {
		// single-bit entries only
		if bit&(bit-1) == 0 && f&bit != 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}
