// Package filesystem provides afero helpers shared by the rules and settings
// stores.
package filesystem
