// Package compact builds the link decorations shown over the visible part
// of a document and keeps them current as the view changes.
//
// One Engine runs per span kind and view. It reacts to three kinds of
// update:
//
//   - Document changes invalidate every cached position, so both caches
//     are cleared before rebuilding.
//   - Selection changes only affect which spans sit under the cursor, so
//     the engine rebuilds but reuses cached spans and decorations.
//   - Viewport changes are ignored unless significant (see
//     viewport.Tracker). A significant change rebuilds over the new ranges
//     and prunes cache entries anchored outside them.
//
// Engines are driven from the host's update loop and are not safe for
// concurrent use.
package compact
