// Package markup holds the line buffer shared by every export operation.
//
// A [Lines] value is an ordered sequence of (indentation, text) pairs. Parts
// of a document render into Lines independently of where they end up; a
// container places the lines of its children by raising their indentation
// with [Lines.Indented], which is the only transformation ever applied to an
// existing buffer.
//
// Displaying a buffer prefixes every line with one [IndentUnit] per level
// and terminates it with a newline:
//
//	var lines markup.Lines
//	lines = lines.Append(`\begin{center}`)
//	lines = lines.Concat(body.Indented(1))
//	lines = lines.Append(`\end{center}`)
//	fmt.Print(lines)
package markup
