// Package raceresults serves a fixed set of MotoGP race winners, in full or
// grouped by the winner's country or name.
package raceresults

type Winner struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Country   string `json:"country"`
}

func (w Winner) FullName() string {
	return w.FirstName + " " + w.LastName
}

type Race struct {
	Circuit  string `json:"circuit"`
	Location string `json:"location"`
	Winner   Winner `json:"winner"`
}

// CountryEntry is one race listed under its winner's country.
type CountryEntry struct {
	Circuit  string `json:"circuit"`
	Location string `json:"location"`
	Winner   Winner `json:"winner"`
}

// NameEntry is one race listed under its winner's full name.
type NameEntry struct {
	Circuit  string `json:"circuit"`
	Location string `json:"location"`
	Country  string `json:"country"`
}

// Season returns the race list. Each call returns a fresh slice.
func Season() []Race {
	return []Race{
		{Circuit: "Losail", Location: "Qatar", Winner: Winner{FirstName: "Andrea", LastName: "Dovizioso", Country: "Italy"}},
		{Circuit: "Autodromo", Location: "Argentine", Winner: Winner{FirstName: "Cal", LastName: "Crutchlow", Country: "UK"}},
		{Circuit: "De Jerez", Location: "Spain", Winner: Winner{FirstName: "Valentino", LastName: "Rossi", Country: "Italy"}},
		{Circuit: "Mugello", Location: "Italy", Winner: Winner{FirstName: "Andrea", LastName: "Dovizioso", Country: "Italy"}},
	}
}

// GroupByCountry keys races by winner country, keeping race order per key.
func GroupByCountry(races []Race) map[string][]CountryEntry {
	grouped := make(map[string][]CountryEntry)
	for _, r := range races {
		grouped[r.Winner.Country] = append(grouped[r.Winner.Country], CountryEntry{
			Circuit:  r.Circuit,
			Location: r.Location,
			Winner:   r.Winner,
		})
	}
	return grouped
}

// GroupByName keys races by "First Last" winner name.
func GroupByName(races []Race) map[string][]NameEntry {
	grouped := make(map[string][]NameEntry)
	for _, r := range races {
		name := r.Winner.FullName()
		grouped[name] = append(grouped[name], NameEntry{
			Circuit:  r.Circuit,
			Location: r.Location,
			Country:  r.Winner.Country,
		})
	}
	return grouped
}
