// Package note defines the note model consumed by the layout engine.
//
// A [Note] carries an identifier, a title, free-form content, tags and
// outgoing links. Links come from two places: the explicit Links list and
// [[target]] references inside the content. [Note.AllLinks] merges both and
// [ToRecords] adapts a note slice to the input of [radial.Compute].
//
// [Store] is the minimal key-value interface the rest of the program reads
// notes through. [MemoryStore] is the only implementation; notes live in
// memory for the life of the process.
//
// [radial.Compute]: github.com/matzehuels/notegraph/pkg/radial.Compute
package note
