// Package sun computes the twilight transitions of a single night and maps
// them to the named events used to trigger a recording.
//
// The orbital mechanics are delegated to an Ephemeris. Two implementations
// are provided, one backed by github.com/sixdouglas/suncalc and one backed by
// github.com/nathan-osman/go-sunrise; tests inject a fake sequence.
//
// Basic Usage:
//
//	calc := sun.NewCalculator(sun.NewSuncalcEphemeris(), logger)
//
//	zone, _ := time.LoadLocation("America/Los_Angeles")
//	loc := sun.Location{Latitude: 47.87, Longitude: -122.10}
//
//	table, err := calc.ComputeDayEvents(loc, zone, time.Now())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	start, _ := table.Start(sun.StartAstroTwilight)
//	end, _ := table.End(sun.EndSunrise)
//
// The night window runs from local noon on the given day until local noon on
// the next day, so one sunset->sunrise sequence always falls inside it.
package sun
