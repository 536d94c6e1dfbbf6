package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"schedgrid/errors"
	"schedgrid/ical"
	"schedgrid/logger"
	"schedgrid/paste"
	"schedgrid/render"
	"schedgrid/store"
	"schedgrid/timetable"
)

const (
	cookieName = "schedgrid"
	maxBody    = 1 << 20
)

type submitForm struct {
	Name string `validate:"required,max=100"`
	Text string `validate:"required,max=200000"`
}

type colorQuery struct {
	Lecture  string `validate:"omitempty,len=7,hexcolor"`
	Tutorial string `validate:"omitempty,len=7,hexcolor"`
}

type calendarQuery struct {
	Week  string `validate:"omitempty,datetime=2006-01-02"`
	Weeks int    `validate:"min=0,max=52"`
}

func (s *Server) genPage(w http.ResponseWriter, data pageData) {
	err := s.templates.ExecuteTemplate(w, "page", data)
	if err != nil {
		logger.Debug(errors.NewError("server", "template execution failed", err))
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, data pageData) {
	w.WriteHeader(status)
	s.genPage(w, data)
}

// sessionID returns the id in the request's cookie, or "" if there is no
// usable one.
func sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil || !store.ValidID(c.Value) {
		return ""
	}
	return c.Value
}

func (s *Server) submission(r *http.Request) (store.Submission, error) {
	id := sessionID(r)
	if id == "" {
		return store.Submission{}, errors.ErrNotFound
	}
	return s.store.Get(r.Context(), id)
}

// loadSubmission fetches the session's submission. It writes the response
// itself and returns false when there is none or the store failed.
func (s *Server) loadSubmission(w http.ResponseWriter, r *http.Request) (store.Submission, bool) {
	sub, err := s.submission(r)
	if errors.Is(err, errors.ErrNotFound) {
		w.Header().Set("Location", "/")
		w.WriteHeader(302)
		return sub, false
	} else if err != nil {
		logger.Error(errors.NewError("server", "cannot load submission", err))
		s.fail(w, 500, statusServerErrorData)
		return sub, false
	}
	return sub, true
}

// style reads the lecture and tutorial colour overrides from q on top of
// the configured defaults.
func (s *Server) style(q url.Values) (timetable.Style, error) {
	cq := colorQuery{
		Lecture:  strings.TrimSpace(q.Get("lecture")),
		Tutorial: strings.TrimSpace(q.Get("tutorial")),
	}
	if err := validate.Struct(cq); err != nil {
		return timetable.Style{}, errors.NewError("server.style", err.Error(), errors.ErrInvalidColor)
	}
	st := s.cfg.Colors.Style()
	if cq.Lecture != "" {
		st.Lecture = strings.ToUpper(cq.Lecture)
	}
	if cq.Tutorial != "" {
		st.Tutorial = strings.ToUpper(cq.Tutorial)
	}
	return st, nil
}

func (s *Server) layout(sub store.Submission) (timetable.Schedule, timetable.Grid) {
	schedule := timetable.Parse(sub.Text)
	return schedule, timetable.Layout(schedule, timetable.DisplayRows, timetable.GridDays)
}

// nextSunday is the date of the first Sunday on or after t.
func nextSunday(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+(7-int(t.Weekday()))%7, 0, 0, 0, 0, t.Location())
}

func attachment(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.fail(w, 404, statusNotFoundData)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.fail(w, 405, statusMethodNotAllowedData)
		return
	}

	if _, err := s.submission(r); err == nil {
		w.Header().Set("Location", "/schedule")
		w.WriteHeader(302)
		return
	}
	s.genPage(w, formPageData)
}

func (s *Server) scheduleHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.showSchedule(w, r)
	case http.MethodPost:
		s.submit(w, r)
	default:
		s.fail(w, 405, statusMethodNotAllowedData)
	}
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		logger.Debug(errors.NewError("server.submit", "cannot parse form", err))
		s.fail(w, 400, statusBadRequestData)
		return
	}

	form := submitForm{
		Name: strings.TrimSpace(r.PostForm.Get("name")),
		Text: strings.TrimSpace(r.PostForm.Get("text")),
	}
	data := formPageData
	data.Body.FormData = formData{Name: form.Name, Text: form.Text}

	if err := validate.Struct(form); err != nil {
		data.Body.FormData.Message = errors.ErrEmptySubmission.Error()
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Tag() == "max" {
			data.Body.FormData.Message = fmt.Sprintf("%s is too long", verrs[0].Field())
		}
		s.fail(w, 400, data)
		return
	}

	text, err := paste.Text(form.Text)
	if err != nil {
		logger.Debug(err)
		data.Body.FormData.Message = "The pasted page could not be read"
		s.fail(w, 400, data)
		return
	}

	id := sessionID(r)
	if id == "" {
		id = store.NewID()
	}
	sub := store.Submission{
		ID:      id,
		Name:    form.Name,
		Text:    text,
		Created: s.now(),
	}
	if err := s.store.Put(r.Context(), sub); err != nil {
		logger.Error(errors.NewError("server.submit", "cannot save submission", err))
		s.fail(w, 500, statusServerErrorData)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   s.cfg.Redis.TTL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Location", "/schedule")
	w.WriteHeader(303)
}

func (s *Server) showSchedule(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.loadSubmission(w, r)
	if !ok {
		return
	}
	st, err := s.style(r.URL.Query())
	if err != nil {
		logger.Debug(err)
		s.fail(w, 400, statusBadRequestData)
		return
	}

	schedule, grid := s.layout(sub)
	data := pageData{
		PageType: "schedule",
		Head:     headData{Title: sub.Name + "'s Schedule"},
	}
	data.Body.ScheduleData = genScheduleData(sub.Name, schedule, grid, st, nextSunday(s.now()))

	w.Header().Set("Cache-Control", "no-store")
	s.genPage(w, data)
}

func genScheduleData(name string, schedule timetable.Schedule, grid timetable.Grid, st timetable.Style, week time.Time) scheduleData {
	q := url.Values{}
	q.Set("lecture", st.Lecture)
	q.Set("tutorial", st.Tutorial)

	data := scheduleData{
		Name:     name,
		Lecture:  strings.ToLower(st.Lecture),
		Tutorial: strings.ToLower(st.Tutorial),
		Query:    template.URL(q.Encode()),
		Sessions: schedule.Len(),
		Week:     week.Format("2006-01-02"),
	}
	for _, day := range grid.Days {
		data.Days = append(data.Days, day.String())
	}

	for i, row := range grid.Rows {
		ttr := ttRow{Label: row.Label}
		for j := range grid.Days {
			c := grid.Cell(i, j)
			if c.Empty() {
				ttr.Cells = append(ttr.Cells, ttCell{Empty: true})
				continue
			}
			data.Placed++
			ses := *c.Session
			bg, fg := st.Colors(ses)
			span := min(c.Span, len(grid.Rows)-i)
			ttr.Cells = append(ttr.Cells, ttCell{
				Code:     ses.Code,
				Name:     ses.Name,
				Location: ses.Location,
				Badge:    ses.Badge(),
				Group:    ses.Group,
				Time:     ses.Start + " - " + ses.End,
				Style: template.CSS(fmt.Sprintf("background-color:%s;color:%s;height:calc(%d%% + %dpx)",
					bg, fg, span*100, (span-1)*10)),
			})
		}
		data.Rows = append(data.Rows, ttr)
	}
	return data
}

func (s *Server) imageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.fail(w, 405, statusMethodNotAllowedData)
		return
	}
	f, err := render.FormatOf(r.URL.Path)
	if err != nil {
		s.fail(w, 404, statusNotFoundData)
		return
	}
	sub, ok := s.loadSubmission(w, r)
	if !ok {
		return
	}
	st, err := s.style(r.URL.Query())
	if err != nil {
		logger.Debug(err)
		s.fail(w, 400, statusBadRequestData)
		return
	}

	_, grid := s.layout(sub)
	ratio := s.cfg.Export.PixelRatio
	img, err := render.Draw(grid, render.Options{Name: sub.Name, Style: st, Scale: ratio})
	if err != nil {
		logger.Error(errors.NewError("server.imageHandler", "cannot draw schedule", err))
		s.fail(w, 500, statusServerErrorData)
		return
	}
	out := render.Export(img, int(float64(s.cfg.Export.Padding)*ratio), 0)

	var b bytes.Buffer
	if err := render.Encode(&b, out, f); err != nil {
		logger.Error(err)
		s.fail(w, 500, statusServerErrorData)
		return
	}
	w.Header().Set("Content-Type", f.MimeType())
	w.Header().Set("Cache-Control", "no-store")
	attachment(w, render.Filename(sub.Name, f))
	w.Write(b.Bytes())
}

func (s *Server) calendarHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.fail(w, 405, statusMethodNotAllowedData)
		return
	}
	sub, ok := s.loadSubmission(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	cq := calendarQuery{Week: q.Get("week")}
	if v := q.Get("weeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.fail(w, 400, statusBadRequestData)
			return
		}
		cq.Weeks = n
	}
	if err := validate.Struct(cq); err != nil {
		logger.Debug(errors.NewError("server.calendarHandler", "bad calendar query", err))
		s.fail(w, 400, statusBadRequestData)
		return
	}

	start := nextSunday(s.now())
	if cq.Week != "" {
		start, _ = time.ParseInLocation("2006-01-02", cq.Week, time.Local)
	}

	schedule := timetable.Parse(sub.Text)
	var b bytes.Buffer
	err := ical.Export(&b, schedule, ical.Options{WeekStart: start, Weeks: cq.Weeks, Now: s.now()})
	if errors.Is(err, errors.ErrInvalidWeek) {
		s.fail(w, 400, statusBadRequestData)
		return
	} else if err != nil {
		logger.Error(err)
		s.fail(w, 500, statusServerErrorData)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	attachment(w, ical.Filename(sub.Name))
	w.Write(b.Bytes())
}

type gridJSON struct {
	Days []string      `json:"days"`
	Rows []gridRowJSON `json:"rows"`
}

type gridRowJSON struct {
	Label string         `json:"label"`
	Start int            `json:"start"`
	Cells []gridCellJSON `json:"cells"`
}

type gridCellJSON struct {
	Day     string             `json:"day"`
	Session *timetable.Session `json:"session,omitempty"`
	Span    int                `json:"span"`
}

type scheduleJSON struct {
	Name     string                         `json:"name"`
	Schedule map[string][]timetable.Session `json:"schedule"`
	Grid     gridJSON                       `json:"grid"`
}

func (s *Server) jsonHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.fail(w, 405, statusMethodNotAllowedData)
		return
	}
	sub, ok := s.loadSubmission(w, r)
	if !ok {
		return
	}

	schedule, grid := s.layout(sub)
	res := scheduleJSON{
		Name:     sub.Name,
		Schedule: make(map[string][]timetable.Session),
	}
	for _, day := range schedule.Days() {
		res.Schedule[day.String()] = schedule[day]
	}
	for _, day := range grid.Days {
		res.Grid.Days = append(res.Grid.Days, day.String())
	}
	for i, row := range grid.Rows {
		gr := gridRowJSON{Label: row.Label, Start: row.Start}
		for j, day := range grid.Days {
			c := grid.Cell(i, j)
			gr.Cells = append(gr.Cells, gridCellJSON{Day: day.String(), Session: c.Session, Span: c.Span})
		}
		res.Grid.Rows = append(res.Grid.Rows, gr)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		logger.Debug(errors.NewError("server.jsonHandler", "cannot encode schedule", err))
	}
}

// editHandler reopens the import form with the stored name and text.
// Submitting it replaces the submission.
func (s *Server) editHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.fail(w, 405, statusMethodNotAllowedData)
		return
	}
	sub, ok := s.loadSubmission(w, r)
	if !ok {
		return
	}
	data := formPageData
	data.Body.FormData = formData{Name: sub.Name, Text: sub.Text, Editing: true}
	w.Header().Set("Cache-Control", "no-store")
	s.genPage(w, data)
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.fail(w, 405, statusMethodNotAllowedData)
		return
	}
	if id := sessionID(r); id != "" {
		if err := s.store.Delete(r.Context(), id); err != nil {
			logger.Error(errors.NewError("server.resetHandler", "cannot delete submission", err))
			s.fail(w, 500, statusServerErrorData)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Location", "/")
	w.WriteHeader(303)
}
