// Package pixel implements the color and image types used by the SSD1351 driver.
//
// [CRGB16] is the panel's packed 5-6-5 color, [CRGB16Image] a frame of such colors
// and [MonoVerticalLSBImage] the column-packed bitmap format of the glyph table.
// All of them are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel
