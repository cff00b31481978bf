// Package correspondence remaps one language's IPA inventory onto another's.
// A table maps each source symbol to ranked target candidates with
// confidence scores; symbols absent from the table pass through unchanged.
// Stage A tables carry a single certain candidate per symbol, Stage B
// tables carry ranked alternatives that an optional re-ranker can reorder.
package correspondence
