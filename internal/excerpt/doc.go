// Package excerpt reads a window of raw lines from a text file.
//
// The browser uses it to show where an entry came from: the line that
// produced the entry plus a few lines of context on either side, so
// comments and neighbouring keys stay visible.
//
// Read makes a single pass over the file. Lines before the target are kept
// in a ring buffer of size radius, so memory stays O(radius) no matter how
// large the file is. A missing file yields no lines and no error.
//
//	lines, err := excerpt.Read("hellomk.ini", entry.Line, 3)
//	for _, l := range lines {
//		fmt.Printf("%4d %s\n", l.Number, l.Text)
//	}
package excerpt
