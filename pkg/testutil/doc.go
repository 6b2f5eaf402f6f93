// Package testutil provides utilities for testing topdrawer components.
//
// Key components:
//   - FileTree: declarative directory layouts written to an afero.Fs
//   - IsolateXDG: points the XDG base directories at per-test temp dirs
//
// All test data should be defined inline, and each test should be isolated
// with no shared state.
package testutil
