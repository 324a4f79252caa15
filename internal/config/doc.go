// Package config locates and reads hellomk's INI-style configuration file.
//
// # Overview
//
// The package has two halves. The resolver picks a file from a short list of
// candidate locations; the scanner answers "what is key K in section S" by
// reading that file from the top. Nothing is cached: every lookup reopens and
// rescans the file, so edits on disk are visible to the next call.
//
// # Configuration Discovery
//
// FindFile tries these paths in order and returns the first that opens:
//
//  1. ./hellomk.ini (current working directory)
//  2. $HOME/.hellomk.ini (skipped when HOME is unset or empty)
//  3. /etc/hellomk.ini
//
// Candidates that cannot be opened are skipped silently; only exhaustion of
// the list is reported, as ok == false.
//
// # File Format
//
//	# comment line
//	[server]
//	port = 8080
//	enable_logging=true
//
//	[database]
//	host = localhost
//
// Rules:
//
//   - Lines that are empty or start with '#' are ignored.
//   - A line starting with '[' that contains ']' opens a section named by the
//     text between them, taken verbatim.
//   - A line containing '=' is a key/value pair of the current section. It is
//     split at the first '='; spaces and tabs around key and value are
//     trimmed. Pairs that appear before any section header are ignored.
//   - Matching is exact and case-sensitive. The first matching pair in file
//     order wins.
//
// # Bounds
//
// Section names and keys are clipped to 49 bytes and values to 99 bytes.
// Clipping is not an error: Lookup returns the clipped value, Find reports it
// through Entry.Truncated, and a warning is logged. Requested names are
// clipped the same way before comparison.
//
// # Error Handling
//
// Lookup and Find report every failure as ok == false: the file could not be
// opened, or the pair never occurred. Callers that want to print a precise
// message reconstruct it from context, for example by noting that FindFile
// already succeeded. Load, which reads the whole document, returns ordinary
// wrapped errors instead.
//
// # Usage Example
//
//	path, ok := config.FindFile()
//	if !ok {
//		return errors.New("configuration file not found")
//	}
//	if port, ok := config.Lookup(path, "server", "port"); ok {
//		fmt.Println("Server Port:", port)
//	}
package config
