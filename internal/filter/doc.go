// Package filter provides the image filters applied to displacement-map
// masks.
//
// The only filter needed today is a separable Gaussian blur over 8-bit
// coverage masks. It follows the CSS/canvas blur(<length>) convention:
// the length is the standard deviation, and pixels outside the mask read
// as transparent.
package filter
