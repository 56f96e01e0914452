// Package handler exposes the read-only HTTP viewer. Handlers serve the most
// recent planner snapshot delivered through a change listener; they never
// reach the planner itself, so the planner keeps a single writer.
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-planner/internal/model"
	"github.com/iliyamo/cinema-planner/internal/planner"
)

// Viewer serves planner state over HTTP.
type Viewer struct {
	snap atomic.Pointer[planner.Snapshot]
}

// NewViewer returns a viewer showing initial until the first change event.
func NewViewer(initial *planner.Snapshot) *Viewer {
	v := &Viewer{}
	if initial == nil {
		initial = planner.New().Snapshot()
	}
	v.snap.Store(initial)
	return v
}

// OnChange is the planner listener that keeps the viewer current.
func (v *Viewer) OnChange(ev planner.Event) {
	if ev.Snapshot != nil {
		v.snap.Store(ev.Snapshot)
	}
}

func (v *Viewer) current() *planner.Snapshot { return v.snap.Load() }

// TheaterDTO is a theater in responses.
type TheaterDTO struct {
	Number int    `json:"number"`
	Seats  string `json:"seats"`
	Status string `json:"status"`
}

// CinemaDTO is a cinema in responses. Index is its position in the list and
// is what /v1/cinemas/:index expects.
type CinemaDTO struct {
	Index    int          `json:"index"`
	Name     string       `json:"name"`
	Phone    string       `json:"phone"`
	Email    string       `json:"email"`
	Address  string       `json:"address"`
	Theaters []TheaterDTO `json:"theaters"`
	Tags     []string     `json:"tags"`
}

// MovieDTO is a movie in responses.
type MovieDTO struct {
	Name      string   `json:"name"`
	Duration  int      `json:"duration"`
	Rating    string   `json:"rating"`
	StartDate string   `json:"start_date"`
	Tags      []string `json:"tags"`
}

// Health reports that the process is up.
func (v *Viewer) Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Summary returns the entity counts of the current state.
func (v *Viewer) Summary(c echo.Context) error {
	cinemas, movies, tags := v.current().Counts()
	return c.JSON(http.StatusOK, echo.Map{
		"cinemas": cinemas,
		"movies":  movies,
		"tags":    tags,
	})
}

// Cinemas lists every cinema.
func (v *Viewer) Cinemas(c echo.Context) error {
	snap := v.current()
	out := make([]CinemaDTO, 0, snap.Cinemas().Len())
	for i, cin := range snap.Cinemas().All() {
		out = append(out, toCinemaDTO(i, cin))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Cinema returns the cinema at :index.
func (v *Viewer) Cinema(c echo.Context) error {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid index"})
	}
	cinemas := v.current().Cinemas()
	if idx >= cinemas.Len() {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
	}
	return c.JSON(http.StatusOK, toCinemaDTO(idx, cinemas.At(idx)))
}

// Movies lists every movie.
func (v *Viewer) Movies(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": toMovieDTOs(v.current().Movies().Slice())})
}

// Tags lists the tag registry in order.
func (v *Viewer) Tags(c echo.Context) error {
	tags := v.current().Tags()
	out := make([]string, 0, tags.Len())
	for _, t := range tags.All() {
		out = append(out, t.Label())
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// SearchCinemas filters cinemas by name words (q) and tags (tag). Both
// parameters take space separated keywords; when both are given a cinema
// must match each. With neither it returns 400.
func (v *Viewer) SearchCinemas(c echo.Context) error {
	var preds []planner.Predicate[model.Cinema]
	if kw := keywords(c.QueryParam("q")); len(kw) > 0 {
		preds = append(preds, planner.CinemaNameContains(kw))
	}
	if kw := keywords(c.QueryParam("tag")); len(kw) > 0 {
		preds = append(preds, planner.CinemaTagContains(kw))
	}
	if len(preds) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q or tag is required"})
	}

	snap := v.current()
	match := planner.And(preds...)
	out := []CinemaDTO{}
	for i, cin := range snap.Cinemas().All() {
		if match(cin) {
			out = append(out, toCinemaDTO(i, cin))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// SearchMovies filters movies by name words (q), start date fragments (date)
// and tags (tag).
func (v *Viewer) SearchMovies(c echo.Context) error {
	var preds []planner.Predicate[model.Movie]
	if kw := keywords(c.QueryParam("q")); len(kw) > 0 {
		preds = append(preds, planner.MovieNameContains(kw))
	}
	if kw := keywords(c.QueryParam("date")); len(kw) > 0 {
		preds = append(preds, planner.MovieDateContains(kw))
	}
	if kw := keywords(c.QueryParam("tag")); len(kw) > 0 {
		preds = append(preds, planner.MovieTagContains(kw))
	}
	if len(preds) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q, date or tag is required"})
	}
	found := planner.Select(v.current().Movies(), planner.And(preds...))
	return c.JSON(http.StatusOK, echo.Map{"items": toMovieDTOs(found)})
}

func keywords(raw string) []string {
	return strings.Fields(raw)
}

func toCinemaDTO(i int, c model.Cinema) CinemaDTO {
	theaters := make([]TheaterDTO, 0, c.Theaters().Len())
	for _, t := range c.Theaters().All() {
		theaters = append(theaters, TheaterDTO{
			Number: t.Number().Int(),
			Seats:  t.Seats().String(),
			Status: string(t.Status()),
		})
	}
	return CinemaDTO{
		Index:    i,
		Name:     c.Name().String(),
		Phone:    c.Phone().String(),
		Email:    c.Email().String(),
		Address:  c.Address().String(),
		Theaters: theaters,
		Tags:     labels(c.Tags()),
	}
}

func toMovieDTOs(movies []model.Movie) []MovieDTO {
	out := make([]MovieDTO, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieDTO{
			Name:      m.Name().String(),
			Duration:  m.Duration().Minutes(),
			Rating:    m.Rating().String(),
			StartDate: m.StartDate().String(),
			Tags:      labels(m.Tags()),
		})
	}
	return out
}

func labels(tags []model.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Label())
	}
	return out
}
