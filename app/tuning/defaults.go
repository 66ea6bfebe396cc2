package tuning

// Defaults returns the built-in tuning values. The weights and keyword
// lists are behavioral constants of the pipeline; they are kept here
// verbatim so behavior does not drift when no tuning file is supplied.
func Defaults() *Tuning {
	return &Tuning{
		Weights: Weights{
			TitleHit:       2,
			DescriptionHit: 1,
			Freshness:      0.5,
			MinTopicToken:  3,
			MinGeoToken:    2,
		},
		Uplifting: Uplifting{
			Positive: []string{
				"breakthrough", "discovery", "achievement", "award", "celebrate",
				"success", "milestone", "record-breaking", "innovation", "cure",
				"recovery", "rescued", "reunited", "donate", "donation",
				"charity", "volunteer", "community", "inspire", "inspiring",
				"uplifting", "heartwarming", "hero", "kindness", "generous",
				"scholarship", "graduate", "revival", "restored", "conservation",
				"sustainability", "renewable", "clean energy", "wildlife comeback",
				"adopted", "fundraiser", "grant", "breakthrough treatment",
			},
			Negative: []string{
				"death", "dead", "dies", "killed", "killing", "murder",
				"shooting", "shot", "war", "attack", "violence", "violent",
				"crash", "collision", "crisis", "disaster", "earthquake",
				"hurricane", "flood", "wildfire", "explosion", "bomb",
				"terror", "terrorism", "assault", "abuse", "kidnap",
				"arrest", "fraud", "scandal", "lawsuit", "collapse",
				"bankruptcy", "layoffs", "recession", "outbreak", "epidemic",
				"pandemic", "disease", "cancer", "overdose", "suicide",
				"injured", "injury", "victim", "hostage", "threat",
			},
		},
		States: defaultStates(),
	}
}

// defaultStates is the US state lookup used when parsing free-text
// "City, Region" locations.
func defaultStates() []State {
	return []State{
		{Name: "Alabama", Code: "AL"}, {Name: "Alaska", Code: "AK"},
		{Name: "Arizona", Code: "AZ"}, {Name: "Arkansas", Code: "AR"},
		{Name: "California", Code: "CA"}, {Name: "Colorado", Code: "CO"},
		{Name: "Connecticut", Code: "CT"}, {Name: "Delaware", Code: "DE"},
		{Name: "Florida", Code: "FL"}, {Name: "Georgia", Code: "GA"},
		{Name: "Hawaii", Code: "HI"}, {Name: "Idaho", Code: "ID"},
		{Name: "Illinois", Code: "IL"}, {Name: "Indiana", Code: "IN"},
		{Name: "Iowa", Code: "IA"}, {Name: "Kansas", Code: "KS"},
		{Name: "Kentucky", Code: "KY"}, {Name: "Louisiana", Code: "LA"},
		{Name: "Maine", Code: "ME"}, {Name: "Maryland", Code: "MD"},
		{Name: "Massachusetts", Code: "MA"}, {Name: "Michigan", Code: "MI"},
		{Name: "Minnesota", Code: "MN"}, {Name: "Mississippi", Code: "MS"},
		{Name: "Missouri", Code: "MO"}, {Name: "Montana", Code: "MT"},
		{Name: "Nebraska", Code: "NE"}, {Name: "Nevada", Code: "NV"},
		{Name: "New Hampshire", Code: "NH"}, {Name: "New Jersey", Code: "NJ"},
		{Name: "New Mexico", Code: "NM"}, {Name: "New York", Code: "NY"},
		{Name: "North Carolina", Code: "NC"}, {Name: "North Dakota", Code: "ND"},
		{Name: "Ohio", Code: "OH"}, {Name: "Oklahoma", Code: "OK"},
		{Name: "Oregon", Code: "OR"}, {Name: "Pennsylvania", Code: "PA"},
		{Name: "Rhode Island", Code: "RI"}, {Name: "South Carolina", Code: "SC"},
		{Name: "South Dakota", Code: "SD"}, {Name: "Tennessee", Code: "TN"},
		{Name: "Texas", Code: "TX"}, {Name: "Utah", Code: "UT"},
		{Name: "Vermont", Code: "VT"}, {Name: "Virginia", Code: "VA"},
		{Name: "Washington", Code: "WA"}, {Name: "West Virginia", Code: "WV"},
		{Name: "Wisconsin", Code: "WI"}, {Name: "Wyoming", Code: "WY"},
		{Name: "District of Columbia", Code: "DC"},
	}
}
