// Package pbxproj builds and serializes the Xcode project descriptor.
//
// The package covers the whole pipeline from domain inputs to descriptor
// text: minting collision-resistant object identifiers, assembling the
// typed object graph (file references, build phases, the native target,
// configuration lists, the project root) and rendering it into the
// section-based pbxproj grammar Xcode parses.
//
// # Pipeline
//
//	ids := pbxproj.NewIDGenerator(nil) // crypto/rand
//	root, graph, err := pbxproj.NewBuilder(ids).Build(sources, params)
//	if err != nil {
//	    return err
//	}
//	text, err := pbxproj.Serialize(root, graph)
//
// The graph is rebuilt from scratch on every invocation and never mutated
// after construction; Serialize validates referential integrity before
// emitting and is byte-for-byte deterministic for a given graph.
package pbxproj
