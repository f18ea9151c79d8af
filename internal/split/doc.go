// Package split rewrites multi-declarator variable declarations into one
// declaration statement per declarator.
//
// The rewrite works directly on the token chain and the node tree produced by
// the parser. Every splice point is computed and validated before the first
// link is touched, so a declaration either ends up fully rewritten or is left
// exactly as it was.
//
// Given
//
//	    var a = 1, // first
//	        b = 2;
//
// the splitter produces
//
//	    var a = 1; // first
//	    var b = 2;
//
// Declarations in loop headers and in unbraced statement bodies are skipped.
package split
