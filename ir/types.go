package ir

import (
	"fmt"
)

// Type classifies a value in the source language.
//
// The set is closed: scalars, small vectors of each scalar kind, square float
// matrices, and void for function results. Arrays are not a separate Type;
// array-ness is carried by the node (see Expr.ArraySize) and the node's Type
// is the element type.
type Type uint8

const (
	TypeInvalid Type = iota
	TypeVoid
	TypeInt
	TypeFloat
	TypeBool
	TypeVec2
	TypeVec3
	TypeVec4
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeBVec2
	TypeBVec3
	TypeBVec4
	TypeMat2
	TypeMat3
	TypeMat4
)

// WordSize is the size in bytes of one backing-store slot.
const WordSize = 4

type typeInfo struct {
	name      string
	count     int
	component Type
}

var typeTable = [...]typeInfo{
	TypeInvalid: {"<invalid>", 0, TypeInvalid},
	TypeVoid:    {"void", 0, TypeVoid},
	TypeInt:     {"int", 1, TypeInt},
	TypeFloat:   {"float", 1, TypeFloat},
	TypeBool:    {"bool", 1, TypeBool},
	TypeVec2:    {"vec2", 2, TypeFloat},
	TypeVec3:    {"vec3", 3, TypeFloat},
	TypeVec4:    {"vec4", 4, TypeFloat},
	TypeIVec2:   {"ivec2", 2, TypeInt},
	TypeIVec3:   {"ivec3", 3, TypeInt},
	TypeIVec4:   {"ivec4", 4, TypeInt},
	TypeBVec2:   {"bvec2", 2, TypeBool},
	TypeBVec3:   {"bvec3", 3, TypeBool},
	TypeBVec4:   {"bvec4", 4, TypeBool},
	TypeMat2:    {"mat2", 4, TypeFloat},
	TypeMat3:    {"mat3", 9, TypeFloat},
	TypeMat4:    {"mat4", 16, TypeFloat},
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeTable))
	for t := TypeVoid; int(t) < len(typeTable); t++ {
		m[typeTable[t].name] = t
	}
	return m
}()

// String returns the source-language spelling of the type.
func (t Type) String() string {
	if int(t) >= len(typeTable) {
		return typeTable[TypeInvalid].name
	}
	return typeTable[t].name
}

// TypeByName looks up a type keyword such as "vec3" or "float".
func TypeByName(name string) (Type, bool) {
	t, ok := typesByName[name]
	return t, ok
}

// ComponentCount returns the number of scalar slots a value of type t occupies.
func (t Type) ComponentCount() int {
	if int(t) >= len(typeTable) {
		return 0
	}
	return typeTable[t].count
}

// ComponentType returns the primitive each slot of t decomposes to.
func (t Type) ComponentType() Type {
	if int(t) >= len(typeTable) {
		return TypeInvalid
	}
	return typeTable[t].component
}

// IsVector reports whether t is one of vecN, ivecN or bvecN.
func (t Type) IsVector() bool {
	return t >= TypeVec2 && t <= TypeBVec4
}

// IsMatrix reports whether t is one of matN.
func (t Type) IsMatrix() bool {
	return t >= TypeMat2 && t <= TypeMat4
}

// IsPrimitive reports whether t is int, float or bool.
func (t Type) IsPrimitive() bool {
	return t == TypeInt || t == TypeFloat || t == TypeBool
}

// IsComposite reports whether values of t are held on the stack.
func (t Type) IsComposite() bool {
	return t.IsVector() || t.IsMatrix()
}

// Size returns the number of bytes a value of type t occupies on the stack.
func (t Type) Size() int {
	return t.ComponentCount() * WordSize
}

// MatrixDim returns N for matN and 0 otherwise.
func (t Type) MatrixDim() int {
	switch t {
	case TypeMat2:
		return 2
	case TypeMat3:
		return 3
	case TypeMat4:
		return 4
	}
	return 0
}

// VectorOf returns the vector type with the given component type and size.
// A size of one yields the component type itself.
func VectorOf(component Type, n int) Type {
	if n == 1 {
		return component
	}
	if n < 2 || n > 4 {
		return TypeInvalid
	}
	switch component {
	case TypeFloat:
		return TypeVec2 + Type(n-2)
	case TypeInt:
		return TypeIVec2 + Type(n-2)
	case TypeBool:
		return TypeBVec2 + Type(n-2)
	}
	return TypeInvalid
}

// MatrixOf returns matN for n in 2..4.
func MatrixOf(n int) Type {
	if n < 2 || n > 4 {
		return TypeInvalid
	}
	return TypeMat2 + Type(n-2)
}

// ComponentCount returns the slot count of an expression: its array size when
// it is an array, otherwise the count of its type.
func ComponentCount(e Expr) int {
	if n := e.ArraySize(); n > 0 {
		return n
	}
	return e.Type().ComponentCount()
}

// ComponentType returns the primitive each slot of e decomposes to.
func ComponentType(e Expr) Type {
	if e.ArraySize() > 0 {
		return e.Type()
	}
	return e.Type().ComponentType()
}

// IsVector reports whether e has a vector type.
func IsVector(e Expr) bool { return e.Type().IsVector() }

// IsMatrix reports whether e has a matrix type.
func IsMatrix(e Expr) bool { return e.Type().IsMatrix() }

// IsArray reports whether e is a fixed-size array.
func IsArray(e Expr) bool { return e.ArraySize() > 0 }

// IsScalar reports whether e is neither a vector, a matrix nor an array.
func IsScalar(e Expr) bool {
	return !IsVector(e) && !IsMatrix(e) && !IsArray(e)
}

// isStacked reports whether e denotes an address into the backing stores.
func isStacked(e Expr) bool {
	return !IsScalar(e)
}

// typeName spells t, with an array suffix when size is non-zero.
func typeName(t Type, size int) string {
	if size > 0 {
		return fmt.Sprintf("%s[%d]", t, size)
	}
	return t.String()
}
