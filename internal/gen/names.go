package gen

import (
	"fmt"
	"strings"

	"salesline/internal/config"
)

var companyAdjectives = []string{
	"Northern", "Summit", "Blue Ridge", "Cascade", "Pioneer", "Atlas",
	"Horizon", "Granite", "Lakeside", "Evergreen", "Crestline", "Harbor",
	"Redwood", "Silverline", "Apex", "Beacon", "Copper", "Meridian",
	"Stonebridge", "Vanguard", "Clearwater", "Ironwood", "Kingsway", "Oakfield",
}

var companyNouns = []string{
	"Systems", "Analytics", "Logistics", "Manufacturing", "Consulting",
	"Technologies", "Dynamics", "Networks", "Industries", "Partners",
	"Solutions", "Software", "Capital", "Labs", "Works", "Holdings",
	"Medical", "Fabrication", "Robotics", "Financial",
}

var companySuffixes = []string{"Inc", "LLC", "Corp", "Ltd", "Group", "Co"}

var firstNames = []string{
	"Olivia", "Liam", "Emma", "Noah", "Amelia", "Ethan", "Sophia", "Mason",
	"Isabella", "Lucas", "Mia", "Henry", "Charlotte", "James", "Aria",
	"Benjamin", "Chloe", "Daniel", "Grace", "Samuel", "Naomi", "Marcus",
	"Priya", "Diego", "Hana", "Omar", "Ingrid", "Tobias", "Fatima", "Kenji",
}

var lastNames = []string{
	"Anderson", "Brooks", "Carter", "Delgado", "Ellis", "Fraser", "Garcia",
	"Huang", "Ivanov", "Jensen", "Kowalski", "Larsen", "Mehta", "Nguyen",
	"Okafor", "Petrov", "Quinn", "Rossi", "Singh", "Tanaka", "Ueda",
	"Vargas", "Weber", "Xu", "Yamamoto", "Zhang",
}

var emailDomains = []string{
	"gmail.com", "outlook.com", "yahoo.com", "protonmail.com", "icloud.com",
}

var regionWeights = []config.Weight{
	{Name: "US", P: 0.50},
	{Name: "Canada", P: 0.15},
	{Name: "Europe", P: 0.18},
	{Name: "Asia Pacific", P: 0.10},
	{Name: "Rest of World", P: 0.07},
}

var noteFragments = []string{
	"budget confirmed with finance",
	"waiting on security review",
	"champion pushing internally",
	"competitor also in eval",
	"legal redlines in progress",
	"timeline slipped a quarter",
	"expansion scoped for next term",
	"procurement requested references",
	"pricing revision sent over",
	"technical eval went well",
}

// uniquer hands out strings that have not been seen yet. After maxAttempts
// fresh draws it falls back to appending a counter, so generation never
// stalls on a small pool.
type uniquer struct {
	seen map[string]bool
	n    int
}

const maxUniqueAttempts = 20

func newUniquer() *uniquer {
	return &uniquer{seen: make(map[string]bool)}
}

func (u *uniquer) take(gen func() string) string {
	for i := 0; i < maxUniqueAttempts; i++ {
		s := gen()
		if !u.seen[s] {
			u.seen[s] = true
			return s
		}
	}
	u.n++
	s := fmt.Sprintf("%s %d", gen(), u.n)
	u.seen[s] = true
	return s
}

func (u *uniquer) takeEmail(gen func() string) string {
	for i := 0; i < maxUniqueAttempts; i++ {
		s := gen()
		if !u.seen[s] {
			u.seen[s] = true
			return s
		}
	}
	u.n++
	s := gen()
	if at := strings.IndexByte(s, '@'); at >= 0 {
		s = fmt.Sprintf("%s%d%s", s[:at], u.n, s[at:])
	}
	u.seen[s] = true
	return s
}

func (r *Rand) companyName() string {
	adj := companyAdjectives[r.Intn(len(companyAdjectives))]
	noun := companyNouns[r.Intn(len(companyNouns))]
	if r.Bool(0.4) {
		return fmt.Sprintf("%s %s %s", adj, noun, companySuffixes[r.Intn(len(companySuffixes))])
	}
	return fmt.Sprintf("%s %s", adj, noun)
}

func (r *Rand) personName() (first, last string) {
	return firstNames[r.Intn(len(firstNames))], lastNames[r.Intn(len(lastNames))]
}

func (r *Rand) personEmail() string {
	first, last := r.personName()
	domain := emailDomains[r.Intn(len(emailDomains))]
	return fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), domain)
}

func (r *Rand) note() string {
	return noteFragments[r.Intn(len(noteFragments))]
}
