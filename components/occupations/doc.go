// Package occupations serves the occupation options of the profile form as a
// small net/http component.
//
// The handler answers GET and HEAD with {"items": [...]} and accepts an
// optional case-insensitive filter parameter. The default list is embedded
// from data/occupations.txt; WithItems or LoadOccupations supply another one.
package occupations
