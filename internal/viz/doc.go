// Package viz renders the particle web in a terminal.
//
//   - [Canvas]: braille dot grid with per-cell brightness
//   - [Surface]: a web.Surface drawing into a Canvas
//   - [Theme]: color schemes shading cells by brightness
//
// Braille gives each terminal cell 2x4 sub-pixels. A Surface with Scale 4 therefore
// treats a cell as an 8x16 pixel box, close to a real terminal glyph, so particle
// counts and link distances resemble what a browser window of the same size shows.
package viz
