// Package generator provides the file-emission primitives the scaffolder
// builds on: template rendering and validated, atomic file operations.
//
// Generators produce a list of Operation values describing the files they
// want to write; Execute validates the whole list before touching the
// filesystem, so a run either writes everything or nothing.
package generator
