// Package grid holds the integer cell coordinates and cardinal facings
// that segment placement is expressed in.
//
// A facing constrains connectivity to one axis: a north or south facing
// segment only reaches the cells directly above and below it, an east or
// west facing one only the cells to its left and right.
package grid
