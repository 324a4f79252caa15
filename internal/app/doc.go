// Package app wires configuration lookup, output rendering and the browser
// into the hellomk commands.
//
// # Commands
//
// Run picks one mode from Options:
//
//   - report (default): prints the arithmetic and clock lines, resolves the
//     config file, then prints database.host, server.port, database.user and
//     server.enable_logging, each as a value or a "Key ... not found" line
//   - get: prints one value per "section.key" argument
//   - dump: prints every entry, as grouped text or as TOML
//   - browse: opens the interactive browser on the file
//
// # Error Handling
//
// Fatal errors are returned from Run:
//   - ErrConfigNotFound when no candidate location holds a readable file
//   - ErrKeyNotFound (wrapped) when a get lookup misses
//   - load and write errors from dump and browse
//
// A missing key in report mode is not an error; the report says so and
// carries on.
//
// # Live Reload
//
// In browse mode Watch keeps a state.Store current. It watches the file's
// directory through fsnotify and reloads on write, create, rename and remove
// events. If no watcher can be created it polls instead, doubling the wait
// after each failed load up to maxBackoff.
package app
