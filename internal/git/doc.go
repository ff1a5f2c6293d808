// Package git provides a wrapper around Git CLI commands used by msrvcheck.
// It handles tracked-file listing for crate discovery plus the repository
// setup commands the test fixtures need, without depending on other
// internal packages.
package git
