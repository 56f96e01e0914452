package planner

import "github.com/iliyamo/cinema-planner/internal/model"

type sampleCinema struct {
	name, phone, email, address string
	theaters                    [][3]string
	tags                        []string
}

type sampleMovie struct {
	name, duration, rating, date string
	tags                         []string
}

var sampleCinemas = []sampleCinema{
	{"Cathay West", "65661096", "cathay@cathay.com", "Jurong East, 50 Jurong Gateway Rd", [][3]string{{"1", "120", "Available"}, {"2", "80", "Maintenance"}}, []string{"west"}},
	{"GV Tampines", "65657419", "gv@tampines.com", "Tampines, 4 Tampines Central 5", [][3]string{{"1", "200", "Available"}}, []string{"east", "imax"}},
	{"Shaw Waterway", "65671432", "shaw@waterway.com", "Punggol, 83 Punggol Central", nil, []string{"northeast"}},
	{"GV Yishun", "65653673", "gv@yishun.com", "Yishun, 51 Yishun Central 1", [][3]string{{"1", "150", "Unavailable"}, {"2", "150", "Available"}}, []string{"north"}},
}

var sampleMovies = []sampleMovie{
	{"Interstellar", "169", "PG13", "07/11/2014", []string{"scifi"}},
	{"Coco", "105", "PG", "22/11/2017", []string{"animation", "family"}},
	{"Parasite", "132", "M18", "30/05/2019", []string{"thriller"}},
}

// SampleData returns a small valid planner used when no data file exists yet.
func SampleData() *Snapshot {
	p := New()
	for _, s := range sampleCinemas {
		theaters := make([]model.Theater, 0, len(s.theaters))
		for _, t := range s.theaters {
			theaters = append(theaters, mustTheater(t))
		}
		c, err := model.NewCinema(mustName(s.name), mustPhone(s.phone), mustEmail(s.email), mustAddress(s.address), theaters, mustTags(s.tags))
		if err != nil {
			panic(err)
		}
		if err := p.AddCinema(c); err != nil {
			panic(err)
		}
	}
	for _, s := range sampleMovies {
		m := model.NewMovie(mustName(s.name), mustDuration(s.duration), mustRating(s.rating), mustDate(s.date), mustTags(s.tags))
		if err := p.AddMovie(m); err != nil {
			panic(err)
		}
	}
	return p.Snapshot()
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustName(s string) model.Name           { return must(model.NewName(s)) }
func mustPhone(s string) model.Phone         { return must(model.NewPhone(s)) }
func mustEmail(s string) model.Email         { return must(model.NewEmail(s)) }
func mustAddress(s string) model.Address     { return must(model.NewAddress(s)) }
func mustDuration(s string) model.Duration   { return must(model.NewDuration(s)) }
func mustRating(s string) model.Rating       { return must(model.NewRating(s)) }
func mustDate(s string) model.StartDate      { return must(model.NewStartDate(s)) }
func mustTheater(t [3]string) model.Theater  { return must(model.ParseTheater(t[0], t[1], t[2])) }

func mustTags(labels []string) []model.Tag {
	tags := make([]model.Tag, 0, len(labels))
	for _, l := range labels {
		tags = append(tags, model.MustTag(l))
	}
	return tags
}
