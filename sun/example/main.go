// Package main provides an example of computing a night's twilight transitions.
package main

import (
	"fmt"
	"time"

	"github.com/devskill-org/nfctools/sun"
	"github.com/devskill-org/nfctools/timezone"
)

func main() {
	lat, lon := 56.9496, 24.1052 // Riga

	zone, name, err := timezone.Lookup(timezone.NewLatLongResolver(), lat, lon)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	calc := sun.NewCalculator(sun.NewSuncalcEphemeris(), nil)
	table, err := calc.ComputeDayEvents(sun.Location{Latitude: lat, Longitude: lon}, zone, time.Now())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Zone:", name)
	for _, line := range sun.FormatTransitions(table.Transitions) {
		fmt.Println(line)
	}

	times := table.SunTimes()
	fmt.Println("Sunset:", times.Sunset)
	fmt.Println("Sunrise:", times.Sunrise)
}
