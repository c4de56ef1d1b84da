// Package datalog provides a typed query construction and execution layer
// in front of a datalog-style database engine.
//
// Queries are built as immutable structured data, never as raw strings.
// The clause types (Find, With, In, Where) and the Query aggregate render
// deterministically to the engine's canonical textual form, and equality is
// structural: two queries with identical clause sequences are equal no
// matter how they were built.
//
// The typed path pairs a Query with static shape metadata: an input arity
// (0..8, one wrapper type and one Exec entry point per arity) and an output
// shape (a fixed tuple decoder or an unshaped raw row). Supplying the wrong
// number of arguments is a compile error; result rows are checked
// positionally at decode time and a whole call fails on the first bad row.
//
// Common usage pattern:
//
//	query, err := datalog.BuildQuery().
//		Find("?e", "?name").
//		In(datalog.DB(), datalog.Scalar("?age")).
//		Where(
//			datalog.P("?e", ":person/name", "?name"),
//			datalog.P("?e", ":person/age", "?age")).
//		Finalize()
//
//	typed, err := datalog.NewTypedQuery1(
//		query,
//		datalog.Shape2[datalog.EntityID, string](datalog.EntityIDCodec{}, datalog.StringCodec{}),
//		datalog.Int64Codec{})
//
//	executor, err := datalog.NewExecutor(engine)
//	rows, err := datalog.Exec1(ctx, executor, typed, int64(42))
//
// Execution is synchronous: one blocking round trip per call against the
// Engine boundary, which is the package's only I/O surface. Engine
// implementations live in subpackages (postgresengine) or client code.
package datalog
