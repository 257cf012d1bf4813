// Package normalizer runs the pruning, deduplication and merge passes over a
// document as a configurable pipeline.
//
// # Quick Start
//
//	result, err := normalizer.NormalizeWithOptions(
//	    normalizer.WithFilePath("feed.json"),
//	    normalizer.WithSteps(normalizer.StepPruneEmpty, normalizer.StepDedupe),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Value)
//
// # Steps
//
// Steps run in the order given, each over the output of the previous one:
//
//   - prune-nulls: drop null object entries (pruner.PruneNulls)
//   - prune-empty: drop nulls and empty containers (pruner.PruneNullsAndEmpty)
//   - dedupe: drop duplicate array elements (deduper.DedupeWith)
//   - merge-similar: fold same-shaped array objects (merger.MergeSimilar)
//
// DefaultSteps is prune-empty followed by dedupe. Results of merge-similar
// have no defined element order.
//
// # Batches
//
// NormalizeAll processes independent documents on a bounded pool of
// goroutines. The passes keep no shared state, so each document is handled by
// exactly one goroutine and results are returned in input order.
package normalizer
