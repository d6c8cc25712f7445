// Package note defines the data model shared by every stage of the
// suggestion pipeline: normalized lines, heading-delimited sections,
// classified sections, candidate suggestions, and the per-run id
// allocator that keeps section and suggestion ids note-scoped.
//
// Everything here is plain data. Stages annotate or remove candidates;
// they never mutate a Section or ClassifiedSection after creation.
package note
