// Package world is the simulation kernel of the adventure game: the character
// grid and its element registry, fog of war, player movement, enemy patrols,
// proximity damage and the coin and life counters.
//
// Positions are kept in cell space. Pixel positions exist only as projections
// for the presentation layer and for the proximity check.
package world
