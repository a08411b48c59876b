// Package domain models USGS earthquake catalog records and the categorical
// features derived from them.
//
// # Data Source
//
// Records come from the USGS ComCat CSV export (for example the "significant
// earthquakes" feed at https://earthquake.usgs.gov/earthquakes/search/). Only
// six columns are used; the rest of the export is ignored:
//
//	time       ISO-8601 UTC instant, e.g. "2023-02-06T01:17:34.342Z"
//	mag        magnitude, float
//	depth      hypocentre depth in km, float; small negative values occur
//	           for events located above the reference ellipsoid
//	place      free text, e.g. "37 km W of Nurdağı, Turkey" or
//	           "south of the Fiji Islands" or "Kermadec Islands region"
//	latitude   decimal degrees, [-90, 90]
//	longitude  decimal degrees, [-180, 180]
//
// # Location Normalization
//
// The place column is reduced to a coarse region name by an ordered list of
// rewrite rules (see [NormalizeLocation]): the text after the last ", " is
// kept, "... of (the)" prefixes and " region" / " earthquake" suffixes are
// removed, ocean ridges and basins collapse to "Atlantic Ocean", "Pacific
// Ocean" or "Ocean", two-letter US state codes expand to state names and the
// result is titlecased. Ring of Fire membership is an exact match of that
// name against a fixed list, so it is a coarse heuristic.
//
// # Derived Categories
//
//	Magnitude: <4 Minor | 4–7 Moderate | >7 Major
//	Depth:     <70 km Shallow | 70–300 km Intermediate | >300 km Deep
//
// Both boundaries belong to the middle bucket.
//
// Time of day is Day when the event falls between local sunrise and sunset
// as reported by an [Ephemeris], and Night otherwise. Where the sun does not
// cross the horizon on that date the sun's elevation at the event instant
// decides: midnight sun is Day, polar night is Night.
//
// # Incomplete Rows
//
// A row with a missing or unparsable required column, or whose derived
// fields cannot be computed, is dropped from the dataset with a
// [DerivationError]. Drops are counted, never retried.
package domain
