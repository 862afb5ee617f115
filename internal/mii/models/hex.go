package models

import "regexp"

// HexPattern matches strings made up entirely of hex digits, either case.
// Legacy hardware Mii data is stored in this shape.
var HexPattern = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
