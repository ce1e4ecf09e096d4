package people

import "github.com/talgya/mini-park/internal/entropy"

func generateName(rng *entropy.Random) string {
	first := firstNames[rng.Uniform(len(firstNames))]
	last := lastNames[rng.Uniform(len(lastNames))]
	return first + " " + last
}

// Name pools for arriving guests.
var firstNames = []string{
	"Ada", "Ben", "Cleo", "Dev", "Ella", "Finn", "Gina", "Hugo",
	"Ines", "Jack", "Kira", "Leo", "Maya", "Nico", "Olga", "Paul",
	"Quinn", "Rosa", "Sam", "Tess", "Umar", "Vera", "Wes", "Yara",
	"Zoe", "Arlo", "Bea", "Cody", "Dana", "Eli", "Fern", "Gus",
}

var lastNames = []string{
	"Abbott", "Baker", "Carver", "Dalton", "Ellis", "Fisher", "Grant",
	"Harper", "Irving", "Jensen", "Keller", "Lowell", "Mercer", "Nolan",
	"Osborne", "Porter", "Quincy", "Reyes", "Sutton", "Tate", "Underwood",
	"Vance", "Walsh", "Young", "Zimmer", "Holloway", "Thatcher", "Ward",
}
