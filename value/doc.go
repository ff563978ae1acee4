// Package value defines the in-memory representation of a UAST tree.
//
// A tree value is one of a closed set of kinds:
//
//   - Null
//   - Bool, Int, Float, String (scalars)
//   - Sequence: ordered list of values
//   - *Map: ordered mapping from string keys to values
//
// Maps that represent structural nodes carry reserved keys: "@type" holds the
// node kind, "@token" the literal text, "@role" a sequence of role names and
// "@pos" a uast:Positions map with "start" and "end" uast:Position maps, each
// holding "offset", "line" and "col" integers. Any other key is an
// application-defined property that may hold a child node, a sequence of
// children or a scalar.
//
// Maps have reference semantics and are compared by pointer when tracking
// node identity. Scalars and sequences are plain Go values.
//
// Values are not safe for concurrent mutation.
package value
