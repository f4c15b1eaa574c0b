package config

import "github.com/lixenwraith/petdeck/card"

// SampleCandidates is the built-in pool used when no file provides one
func SampleCandidates() []card.Candidate {
	return []card.Candidate{
		{
			ID: "biscuit", Name: "Biscuit", Label: "Beagle, 2 yrs",
			Images: []string{"biscuit-1.jpg", "biscuit-2.jpg", "biscuit-3.jpg"},
			Bio:    "Nose first, questions later. Biscuit knows every squeaky toy by name and will trade any of them for a slice of apple.",
		},
		{
			ID: "miso", Name: "Miso", Label: "Tabby cat, 8 mo",
			Images: []string{"miso-1.jpg", "miso-2.jpg"},
			Bio:    "A windowsill philosopher who still chases string at three in the morning. Gets along with calm dogs.",
		},
		{
			ID: "pepper", Name: "Pepper", Label: "Border collie mix, 4 yrs",
			Images: []string{"pepper-1.jpg"},
			Bio:    "Needs a job and a yard. Already knows sit, down, spin and how to open the treat cupboard.",
		},
		{
			ID: "juniper", Name: "Juniper", Label: "Holland lop rabbit, 1 yr",
			Images: []string{"juniper-1.jpg", "juniper-2.jpg"},
			Bio:    "Litter trained and fond of cardboard castles. Prefers quiet homes and fresh cilantro.",
		},
		{
			ID: "otis", Name: "Otis", Label: "Senior greyhound, 9 yrs",
			Images: []string{"otis-1.jpg", "otis-2.jpg", "otis-3.jpg", "otis-4.jpg"},
			Bio:    "Retired sprinter, professional napper. Two short walks a day and a soft bed are all he asks.",
		},
	}
}
