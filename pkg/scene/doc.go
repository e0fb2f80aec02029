// Package scene reads declarative scene files and builds them into
// [latex.Document] trees.
//
// A scene is TOML or JSON; the file extension selects the decoder. The
// top level names the document class and an optional font size, followed by
// a list of parts. Parts nest through "children":
//
//	class = "beamer"
//
//	[[part]]
//	type = "frame"
//	title = "Stack"
//
//	[[part.children]]
//	type = "picture"
//	scale = 0.5
//
//	[[part.children.children]]
//	type = "polygon"
//	color = "kit-green"
//	points = [[0, 0], [4, 0], [4, 1], [0, 1]]
//
// Colors are "#rrggbb" hex strings or names from [latex.Palette].
//
// [Build] checks structure only: every part has a known type, uses only the
// keys of that type, and sits where the document model allows it (shapes
// inside pictures, blocks at document level or inside frames and centers).
// Option values and missing points surface later, when the document is
// exported.
package scene
