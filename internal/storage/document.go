package storage

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-planner/internal/model"
	"github.com/iliyamo/cinema-planner/internal/planner"
)

// xmlPlanner is the root of the data file. Tags are written as labels on the
// entities that carry them; the registry is rebuilt on load.
type xmlPlanner struct {
	XMLName xml.Name    `xml:"planner"`
	Cinemas []xmlCinema `xml:"cinemas>cinema"`
	Movies  []xmlMovie  `xml:"movies>movie"`
}

// Pointer fields tell an absent element from an empty one.
type xmlCinema struct {
	Name     *string      `xml:"name"`
	Phone    *string      `xml:"phone"`
	Email    *string      `xml:"email"`
	Address  *string      `xml:"address"`
	Theaters []xmlTheater `xml:"theaters>theater"`
	Tags     []string     `xml:"tags>tag"`
}

type xmlTheater struct {
	Number *string `xml:"number"`
	Seats  *string `xml:"seats"`
	Status *string `xml:"status"`
}

type xmlMovie struct {
	Name      *string  `xml:"name"`
	Duration  *string  `xml:"duration"`
	Rating    *string  `xml:"rating"`
	StartDate *string  `xml:"startDate"`
	Tags      []string `xml:"tags>tag"`
}

func str(s string) *string { return &s }

func toDocument(p planner.ReadOnlyPlanner) xmlPlanner {
	doc := xmlPlanner{
		Cinemas: make([]xmlCinema, 0, p.Cinemas().Len()),
		Movies:  make([]xmlMovie, 0, p.Movies().Len()),
	}
	for _, c := range p.Cinemas().All() {
		xc := xmlCinema{
			Name:    str(c.Name().String()),
			Phone:   str(c.Phone().String()),
			Email:   str(c.Email().String()),
			Address: str(c.Address().String()),
			Tags:    labels(c.Tags()),
		}
		for _, t := range c.Theaters().All() {
			xc.Theaters = append(xc.Theaters, xmlTheater{
				Number: str(t.Number().String()),
				Seats:  str(t.Seats().String()),
				Status: str(string(t.Status())),
			})
		}
		doc.Cinemas = append(doc.Cinemas, xc)
	}
	for _, m := range p.Movies().All() {
		doc.Movies = append(doc.Movies, xmlMovie{
			Name:      str(m.Name().String()),
			Duration:  str(m.Duration().String()),
			Rating:    str(m.Rating().String()),
			StartDate: str(m.StartDate().String()),
			Tags:      labels(m.Tags()),
		})
	}
	return doc
}

func labels(tags []model.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Label())
	}
	return out
}

// decoder accumulates the first failure while converting the document.
type decoder struct {
	path string
	// registry hands out one Tag per label so every entity loaded with a
	// label refers to the same tag.
	registry map[string]model.Tag
}

func (d *decoder) fail(entity string, index int, field string, err error) error {
	var ve *model.ValidationError
	if field == "" && errors.As(err, &ve) {
		field = ve.Field
	}
	return &FormatError{Path: d.path, Entity: entity, Index: index, Field: field, Err: err}
}

func (d *decoder) required(entity string, index int, field string, v *string) (string, error) {
	if v == nil {
		return "", d.fail(entity, index, field, ErrMissingField)
	}
	return *v, nil
}

func (d *decoder) tags(entity string, index int, raw []string) ([]model.Tag, error) {
	out := make([]model.Tag, 0, len(raw))
	for _, l := range raw {
		t, err := model.NewTag(l)
		if err != nil {
			return nil, d.fail(entity, index, "tag", err)
		}
		if shared, ok := d.registry[t.Label()]; ok {
			t = shared
		} else {
			d.registry[t.Label()] = t
		}
		out = append(out, t)
	}
	return out, nil
}

func (d *decoder) cinema(i int, xc xmlCinema) (model.Cinema, error) {
	const entity = "cinema"
	fields := [4]*string{xc.Name, xc.Phone, xc.Email, xc.Address}
	names := [4]string{"name", "phone", "email", "address"}
	var raw [4]string
	for k := range fields {
		v, err := d.required(entity, i, names[k], fields[k])
		if err != nil {
			return model.Cinema{}, err
		}
		raw[k] = v
	}
	name, err := model.NewName(raw[0])
	if err != nil {
		return model.Cinema{}, d.fail(entity, i, "name", err)
	}
	phone, err := model.NewPhone(raw[1])
	if err != nil {
		return model.Cinema{}, d.fail(entity, i, "phone", err)
	}
	email, err := model.NewEmail(raw[2])
	if err != nil {
		return model.Cinema{}, d.fail(entity, i, "email", err)
	}
	address, err := model.NewAddress(raw[3])
	if err != nil {
		return model.Cinema{}, d.fail(entity, i, "address", err)
	}

	theaters := make([]model.Theater, 0, len(xc.Theaters))
	for j, xt := range xc.Theaters {
		t, err := d.theater(i, j, xt)
		if err != nil {
			return model.Cinema{}, err
		}
		theaters = append(theaters, t)
	}
	tags, err := d.tags(entity, i, xc.Tags)
	if err != nil {
		return model.Cinema{}, err
	}
	c, err := model.NewCinema(name, phone, email, address, theaters, tags)
	if err != nil {
		return model.Cinema{}, d.fail(entity, i, "theaters", err)
	}
	return c, nil
}

func (d *decoder) theater(i, j int, xt xmlTheater) (model.Theater, error) {
	entity := fmt.Sprintf("cinema #%d theater", i+1)
	number, err := d.required(entity, j, "number", xt.Number)
	if err != nil {
		return model.Theater{}, err
	}
	seats, err := d.required(entity, j, "seats", xt.Seats)
	if err != nil {
		return model.Theater{}, err
	}
	status, err := d.required(entity, j, "status", xt.Status)
	if err != nil {
		return model.Theater{}, err
	}
	t, err := model.ParseTheater(number, seats, status)
	if err != nil {
		return model.Theater{}, d.fail(entity, j, "", err)
	}
	return t, nil
}

func (d *decoder) movie(i int, xm xmlMovie) (model.Movie, error) {
	const entity = "movie"
	rawName, err := d.required(entity, i, "name", xm.Name)
	if err != nil {
		return model.Movie{}, err
	}
	rawDuration, err := d.required(entity, i, "duration", xm.Duration)
	if err != nil {
		return model.Movie{}, err
	}
	rawRating, err := d.required(entity, i, "rating", xm.Rating)
	if err != nil {
		return model.Movie{}, err
	}
	rawDate, err := d.required(entity, i, "startDate", xm.StartDate)
	if err != nil {
		return model.Movie{}, err
	}
	name, err := model.NewName(rawName)
	if err != nil {
		return model.Movie{}, d.fail(entity, i, "name", err)
	}
	duration, err := model.NewDuration(rawDuration)
	if err != nil {
		return model.Movie{}, d.fail(entity, i, "duration", err)
	}
	rating, err := model.NewRating(rawRating)
	if err != nil {
		return model.Movie{}, d.fail(entity, i, "rating", err)
	}
	date, err := model.NewStartDate(rawDate)
	if err != nil {
		return model.Movie{}, d.fail(entity, i, "startDate", err)
	}
	tags, err := d.tags(entity, i, xm.Tags)
	if err != nil {
		return model.Movie{}, err
	}
	return model.NewMovie(name, duration, rating, date, tags), nil
}

// fromDocument rebuilds a planner from doc. Duplicates are a format error
// here, so the planner never sees an invalid snapshot.
func fromDocument(path string, doc xmlPlanner, opts ...planner.Option) (*planner.Planner, error) {
	d := &decoder{path: path, registry: make(map[string]model.Tag)}
	p := planner.New(opts...)
	for i, xc := range doc.Cinemas {
		c, err := d.cinema(i, xc)
		if err != nil {
			return nil, err
		}
		if err := p.AddCinema(c); err != nil {
			return nil, d.fail("cinema", i, "", err)
		}
	}
	for i, xm := range doc.Movies {
		m, err := d.movie(i, xm)
		if err != nil {
			return nil, err
		}
		if err := p.AddMovie(m); err != nil {
			return nil, d.fail("movie", i, "", err)
		}
	}
	return p, nil
}
