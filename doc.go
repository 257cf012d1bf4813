// Package normjson normalizes and consolidates JSON-like records gathered from
// several sources that report the same entities inconsistently.
//
// # Overview
//
// The library is organized as small packages that share one ordered tree
// type:
//
//   - value: the ordered document tree (Null, Bool, Number, String, Array, Object)
//   - equivalence: the Exact, CaseFolded and Shape relations, and a keyed Bag
//   - pruner: remove nulls and, optionally, empty arrays and objects
//   - deduper: remove duplicate array elements
//   - merger: fold same-shaped array objects into one record, and merge two
//     objects field by field
//   - normalizer: run the passes as a pipeline, over one document or many
//   - codec: read and write JSON and YAML without losing key order
//   - normerrors: sentinel and typed errors shared by all packages
//
// # Quick Start
//
//	v, err := codec.ParseString(`[{"id": "a", "src": "f1"}, {"id": "a", "src": "f2"}]`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	pruner.PruneNullsAndEmpty(v)
//	deduper.Dedupe(v)
//	merger.MergeSimilar(v)
//	fmt.Println(v) // [{"id":"a","src":["f1","f2"]}]
//
// # Equivalence
//
// The three passes use three different notions of "the same value", which
// are not interchangeable. Exact ignores object key order. CaseFolded (used
// by deduper) lower-cases strings but compares object entries in order.
// Shape (used by merger) compares only the key sequence of objects. Records
// meant to be deduplicated or merged should therefore list their keys in a
// consistent order.
//
// # Command Line and MCP
//
// The normjson command in cmd/normjson exposes every pass, and its mcp
// subcommand serves them as Model Context Protocol tools over stdio.
package normjson
