package table

// Dialect is a runtime-selected subset of terms allowed to match, supporting
// optional grammar features (spec.md Glossary). It is a bitset: bit i is set
// when the feature named Tables.Dialects[i] is enabled.
type Dialect uint64

// AllDialects enables every optional feature a table defines.
const AllDialects Dialect = ^Dialect(0)

// NoDialects enables no optional feature.
const NoDialects Dialect = 0

// Allows reports whether the dialect enables any of the features whose bits
// are set in mask.
// Terms with no associated feature (i.e. not conditionally compiled) should
// be checked against a mask of 0, which Allows always permits.
func (d Dialect) Allows(mask uint32) bool {
	if mask == 0 {
		return true
	}
	return uint64(d)&uint64(mask) != 0
}

// With returns the dialect with the given feature bit enabled.
func (d Dialect) With(bit int) Dialect {
	return d | Dialect(1)<<uint(bit)
}
