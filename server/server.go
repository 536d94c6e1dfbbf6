package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	path "path/filepath"
	"time"

	"schedgrid/errors"
	"schedgrid/logger"
	"schedgrid/store"
)

//go:embed templates/*.tmpl
var tmplFS embed.FS

// Server serves the import form, the schedule grid and its exports.
type Server struct {
	cfg       Config
	store     store.Store
	templates *template.Template
	respath   string
	now       func() time.Time
}

func Announce(version string) {
	logger.Info("Running %s", version)
}

func loadTmpl() (*template.Template, error) {
	funcMap := template.FuncMap{
		"sub": func(a, b int) int {
			return a - b
		},
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(tmplFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.NewError("server.loadTmpl", "cannot parse templates", err)
	}
	for _, name := range []string{"page", "form", "schedule", "error"} {
		if tmpl.Lookup(name) == nil {
			return nil, errors.NewError("server.loadTmpl", "missing template "+name, nil)
		}
	}
	return tmpl, nil
}

// New creates a Server that keeps submissions in st.
func New(cfg Config, st store.Store) (*Server, error) {
	tmpl, err := loadTmpl()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:       cfg,
		store:     st,
		templates: tmpl,
		now:       time.Now,
	}, nil
}

// Configure reads the configuration from respath, sets up logging and
// connects the submission store. prompt is used to ask for the Redis
// password when the configuration requests it; it may be nil.
func Configure(respath string, prompt func(msg string) (string, error)) (*Server, error) {
	cfgPath := path.Join(respath, "config.json")
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		logger.Error(errors.NewError("server.Configure", "cannot read config file", err))
		logger.Warn("Resorting to default configuration settings...")
	}

	if cfg.Logging.UseLogFile {
		logDir := cfg.Logging.LogDir
		if !path.IsAbs(logDir) {
			logDir = path.Join(respath, logDir)
		}
		if err := logger.UseLogFile(logDir); err != nil {
			return nil, errors.NewError("server.Configure", "log file was not set up successfully", err)
		}
		logger.Info("Log file set up successfully")
	}

	if err := ApplyEnv(&cfg, path.Join(respath, ".env")); err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.NewError("server.Configure", "invalid configuration after applying environment", err)
	}

	ttl := time.Duration(cfg.Redis.TTL) * time.Second
	var st store.Store
	if cfg.Redis.Enabled {
		if cfg.Redis.Password == "" && cfg.Redis.AskPassword && prompt != nil {
			pwd, err := prompt("Redis password: ")
			if err != nil {
				return nil, errors.NewError("server.Configure", "cannot read Redis password", err)
			}
			cfg.Redis.Password = pwd
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rs, err := store.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, ttl)
		if err != nil {
			return nil, errors.NewError("server.Configure", "cannot connect to Redis", err)
		}
		logger.Info("Keeping submissions in Redis at %s (db %d)", cfg.Redis.Addr, cfg.Redis.DB)
		st = rs
	} else {
		logger.Warn("Redis is disabled; submissions are kept in memory and lost on restart")
		st = store.NewMemoryStore(ttl)
	}

	srv, err := New(cfg, st)
	if err != nil {
		return nil, err
	}
	srv.respath = respath
	logger.Info("Successfully loaded HTML templates")
	return srv, nil
}

// Handler returns the routes of the web front end.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/schedule", s.scheduleHandler)
	mux.HandleFunc("/schedule.png", s.imageHandler)
	mux.HandleFunc("/schedule.webp", s.imageHandler)
	mux.HandleFunc("/schedule.ics", s.calendarHandler)
	mux.HandleFunc("/schedule.json", s.jsonHandler)
	mux.HandleFunc("/schedule/edit", s.editHandler)
	mux.HandleFunc("/schedule/reset", s.resetHandler)
	mux.HandleFunc("/", s.rootHandler)

	return mux
}

func (s *Server) resfile(name string) string {
	if path.IsAbs(name) {
		return name
	}
	return path.Join(s.respath, name)
}

// Run listens on the configured address until the server fails. TLS is
// used when both tls and the configuration ask for it.
func (s *Server) Run(tls bool) error {
	hs := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if tls && s.cfg.Server.TLS {
		logger.Info("Running on %s", hs.Addr)
		return hs.ListenAndServeTLS(s.resfile(s.cfg.Server.Cert), s.resfile(s.cfg.Server.Key))
	}
	logger.Warn("Running on %s (without TLS). DO NOT USE THIS IN PRODUCTION!", hs.Addr)
	return hs.ListenAndServe()
}
