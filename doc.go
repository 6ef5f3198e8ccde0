// Package nnscan finds, for every vector in a batch, its most similar other
// vector under cosine similarity.
//
// The search is an exact all-pairs scan. Every index i is an independent
// task that reads the shared, immutable batch and writes only its own result
// slot, so tasks run concurrently without synchronization.
//
// # Quick Start
//
//	batch, err := nnscan.NewBatch([][]float32{
//	    {5, 1, 0, 6},
//	    {2, 6, 3, 2},
//	    {0, 10, 3, 0},
//	    {7, 2, 1, 8},
//	})
//	if err != nil {
//	    return err
//	}
//
//	res, err := nnscan.NewLauncher().ScanAll(ctx, batch)
//	if err != nil {
//	    return err
//	}
//	defer res.Release()
//
//	for i, m := range res.Matches() {
//	    if !m.Found() {
//	        continue // no other vector has a defined similarity
//	    }
//	    fmt.Println(i, m.Index, m.Score)
//	}
//
// # Semantics
//
//   - A vector is never its own match.
//   - Pairs whose magnitude product is zero are skipped, never scored as 0.
//   - The first defined candidate replaces the sentinel; later candidates win
//     only on strictly greater similarity, so ties keep the lower index.
//   - When nothing qualifies the result is the sentinel pair
//     (NoMatch, NoMatchScore) = (-1, -1.0).
//   - Scores are plain float32 quotients and are not clamped to [-1, 1].
//
// # Parallelism
//
// A Launcher splits [0, N) into chunks and runs them on a bounded number of
// lanes (goroutines). Results do not depend on the number of lanes or the
// chunk size.
package nnscan
