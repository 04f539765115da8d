package dataset

import (
	_ "embed"

	"github.com/gvawatch/gva-console/internal/gva"
)

//go:embed assets/gva_scraper.py
var scraperListing string

// ScraperListing returns the illustrative collector source shown in the
// read-only pane. It is display-only: never parsed, executed, or validated.
func ScraperListing() string {
	return scraperListing
}

// Default returns a fresh copy of the compiled-in dataset. Callers may hold
// and render it freely without affecting other callers.
func Default() *Dataset {
	n := gva.Number
	p := gva.Pending
	return &Dataset{
		Table: gva.Table{
			Years: []int{2015, 2016, 2017, 2018, 2019, 2020, 2021, 2022, 2023, 2024},
			Categories: []gva.Category{
				{Name: "Gun Violence Deaths (All Causes)", Cells: []gva.Cell{
					n(53519), n(58071), n(60666), n(57103), n(59506), n(65963), n(69064), n(66662), n(63567), p(),
				}},
				{Name: "Homicide, Murder, Unintentional", Cells: []gva.Cell{
					n(13537), n(15112), n(15679), n(14789), n(15448), n(19411), n(21012), n(20327), n(18874), p(),
				}},
				{Name: "Suicides", Cells: []gva.Cell{
					n(21386), n(22938), n(23854), n(24432), n(23941), n(24156), n(26328), n(27032), n(27300), p(),
				}},
				{Name: "Mass Shootings", Cells: []gva.Cell{
					n(335), n(382), n(346), n(336), n(417), n(610), n(689), n(645), n(656), n(503),
				}},
				{Name: "Children (0-11) Killed or Injured", Cells: []gva.Cell{
					n(695), n(671), n(733), n(668), n(696), n(999), n(1074), n(1005), n(917), p(),
				}},
				{Name: "Teens (12-17) Killed or Injured", Cells: []gva.Cell{
					n(2695), n(3152), n(3267), n(3141), n(3064), n(4148), n(4464), n(4380), n(3984), p(),
				}},
				{Name: "Defensive Gun Uses", Cells: []gva.Cell{
					n(1393), n(2001), n(2106), n(1875), n(1547), n(1478), n(1331), n(1213), n(1186), p(),
				}},
				{Name: "Unintentional Shootings", Cells: []gva.Cell{
					n(1969), n(2213), n(2039), n(1685), n(1902), n(2298), n(2076), n(1913), n(1632), p(),
				}},
			},
		},
		Incidents: []gva.Record{
			{Date: "2024-05-14", State: "Texas", CityCounty: "Houston", Address: "4500 block of Main St", Killed: 2, Injured: 3, SourceLink: "https://www.gunviolencearchive.org/incident/2845121"},
			{Date: "2024-11-02", State: "Texas", CityCounty: "San Antonio", Address: "1200 block of Commerce St", Killed: 1, Injured: 4, SourceLink: "https://www.gunviolencearchive.org/incident/2901337"},
			{Date: "2024-03-21", State: "Illinois", CityCounty: "Chicago", Address: "700 block of S Ashland Ave", Killed: 3, Injured: 2, SourceLink: "https://www.gunviolencearchive.org/incident/2811458"},
			{Date: "2024-08-09", State: "Illinois", CityCounty: "Chicago", Address: "2100 block of W Madison St", Killed: 0, Injured: 5, SourceLink: "https://www.gunviolencearchive.org/incident/2876090"},
			{Date: "2024-01-17", State: "California", CityCounty: "Los Angeles", Address: "900 block of E 7th St", Killed: 1, Injured: 2, SourceLink: "https://www.gunviolencearchive.org/incident/2790214"},
			{Date: "2024-06-30", State: "California", CityCounty: "Oakland", Address: "1800 block of Foothill Blvd", Killed: 2, Injured: 1, SourceLink: "https://www.gunviolencearchive.org/incident/2858779"},
			{Date: "2024-04-05", State: "Florida", CityCounty: "Miami", Address: "300 block of NW 2nd Ave", Killed: 1, Injured: 3, SourceLink: "https://www.gunviolencearchive.org/incident/2819645"},
			{Date: "2024-09-12", State: "Florida", CityCounty: "Jacksonville", Address: "5600 block of Norwood Ave", Killed: 2, Injured: 2, SourceLink: "https://www.gunviolencearchive.org/incident/2884412"},
			{Date: "2024-07-04", State: "Georgia", CityCounty: "Atlanta", Address: "2400 block of Campbellton Rd SW", Killed: 1, Injured: 6, SourceLink: "https://www.gunviolencearchive.org/incident/2861930"},
			{Date: "2024-10-26", State: "Ohio", CityCounty: "Cleveland", Address: "8800 block of Euclid Ave", Killed: 0, Injured: 4, SourceLink: "https://www.gunviolencearchive.org/incident/2896502"},
		},
	}
}
