// Package formatter re-renders a SATySFi syntax tree into canonical text.
//
// Formatting runs in three stages: [RecoverComments] scans the raw source
// for % comments, [AttachComments] inserts them into the tree as Comment
// leaves, and the printer renders the tree bottom-up under a [Config].
// [Format] drives all three for a single document.
package formatter
