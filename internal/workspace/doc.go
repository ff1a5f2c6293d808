// Package workspace integrates crate discovery, config, and manifest loading
// with minimum-version resolution. It provides the Context type holding the
// discovered crate set and the fallback manifest, and the Discovery type
// selecting between tracked-file and filesystem-walk candidate discovery.
package workspace
