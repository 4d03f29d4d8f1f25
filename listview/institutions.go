package listview

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goliatone/go-school-admin/model"
)

// InstitutionData is one institution card: the grouped users plus the
// per-role breakdown and the stored status.
type InstitutionData struct {
	Name        string                  `json:"name"`
	TotalUsers  int                     `json:"totalUsers"`
	Admins      int                     `json:"admins"`
	Teachers    int                     `json:"teachers"`
	Students    int                     `json:"students"`
	Others      int                     `json:"others"`
	Status      model.InstitutionStatus `json:"status"`
	LatestJoin  time.Time               `json:"latestJoin"`
	Users       []model.User            `json:"users"`
}

// InstitutionSort selects the ordering of the institution cards.
type InstitutionSort string

const (
	SortByName   InstitutionSort = "name"
	SortByUsers  InstitutionSort = "users"
	SortByLatest InstitutionSort = "latest"
)

// GroupInstitutions folds the user list into one card per institution name,
// joining the stored status records. Users without an institution are left
// out. Cards exist only for names present on users; a status record whose
// name matches no user applies to nothing.
func GroupInstitutions(users []model.User, records []model.Institution) []InstitutionData {
	byName := map[string]*InstitutionData{}
	order := []string{}

	card := func(name string) *InstitutionData {
		if c, ok := byName[name]; ok {
			return c
		}
		c := &InstitutionData{Name: name, Status: model.InstitutionActive}
		byName[name] = c
		order = append(order, name)
		return c
	}

	for _, u := range users {
		if u.Institution == "" {
			continue
		}
		c := card(u.Institution)
		c.TotalUsers++
		c.Users = append(c.Users, u)
		switch u.Role {
		case model.RoleAdmin:
			c.Admins++
		case model.RoleTeacher:
			c.Teachers++
		case model.RoleStudent:
			c.Students++
		default:
			c.Others++
		}
		if u.CreatedAt.After(c.LatestJoin) {
			c.LatestJoin = u.CreatedAt
		}
	}

	for _, r := range records {
		if c, ok := byName[r.Name]; ok {
			c.Status = r.Status
		}
	}

	out := make([]InstitutionData, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// InstitutionFilter narrows the institution cards.
type InstitutionFilter struct {
	// Search matches the institution name, case-insensitive.
	Search string

	// Status matches exactly; a model.InstitutionStatus value or All.
	Status string

	// Sort defaults to SortByName when empty.
	Sort InstitutionSort
}

// ActiveCount returns how many constraints the filter carries. Sort is an
// ordering, not a constraint.
func (f InstitutionFilter) ActiveCount() int {
	n := 0
	if f.Search != "" {
		n++
	}
	if !isAll(f.Status) {
		n++
	}
	return n
}

// FilterInstitutions returns the cards passing the filter, sorted per f.Sort.
// All sorts are stable so ties keep the incoming grouping order.
func FilterInstitutions(cards []InstitutionData, f InstitutionFilter) []InstitutionData {
	out := make([]InstitutionData, 0, len(cards))
	for _, c := range cards {
		if f.Search != "" && !containsFold(c.Name, f.Search) {
			continue
		}
		if !isAll(f.Status) && string(c.Status) != f.Status {
			continue
		}
		out = append(out, c)
	}
	sortInstitutions(out, f.Sort)
	return out
}

func sortInstitutions(cards []InstitutionData, by InstitutionSort) {
	switch by {
	case SortByUsers:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].TotalUsers > cards[j].TotalUsers
		})
	case SortByLatest:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].LatestJoin.After(cards[j].LatestJoin)
		})
	default:
		coll := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(cards, func(i, j int) bool {
			return coll.CompareString(cards[i].Name, cards[j].Name) < 0
		})
	}
}

// InstitutionStats are the totals shown on the institution page cards.
// Active + Inactive always equals Total.
type InstitutionStats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Inactive   int `json:"inactive"`
	TotalUsers int `json:"totalUsers"`
}

// ComputeInstitutionStats tallies the full card collection.
func ComputeInstitutionStats(cards []InstitutionData) InstitutionStats {
	stats := InstitutionStats{Total: len(cards)}
	for _, c := range cards {
		if c.Status == model.InstitutionInactive {
			stats.Inactive++
		} else {
			stats.Active++
		}
		stats.TotalUsers += c.TotalUsers
	}
	return stats
}
