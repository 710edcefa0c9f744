// Package hierarchy synthesizes a region tree from a curated hierarchy table
// and a segmentation label catalogue.
//
// Synthesis is a strict four stage pipeline followed by a validation pass:
//
//	Expand     bilateral rows become a left and a right region
//	Normalize  ancestry index -> structure_id_path, malformed fields stripped,
//	           synthetic ids allocated per depth band
//	Reconcile  catalogue ids and colours joined by acronym, root appended,
//	           ancestry paths rewritten from resolved ids
//	Fill       missing colours and acronyms taken from fixed fallback lists
//	Validate   ids and acronyms unique, paths consistent, every region coloured
//
// Each stage's postcondition is the next stage's precondition. Any error
// aborts synthesis; there is no partial result.
package hierarchy
