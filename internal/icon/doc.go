// Package icon draws layered profile icons and packs them into
// multi-resolution .ico files.
//
// Every stage works on one canvas at the canonical resolution (256x256):
// background shape, overlay glyph, label, then effects. The finished canvas
// is downsampled to each target size and all sizes are written into a
// single icon container, with the canonical image stored as-is.
package icon
