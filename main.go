package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	fp "path/filepath"
	"strings"

	"golang.org/x/term"

	"schedgrid/errors"
	"schedgrid/logger"
	"schedgrid/paste"
	"schedgrid/render"
	"schedgrid/server"
	"schedgrid/timetable"
)

const version = "schedgrid v1.0.0"

func usage() {
	os.Stderr.WriteString(errors.ErrBadCommandUsage.Error() + "\n")
	os.Exit(1)
}

// resPath is where config.json, .env, certificates and logs live.
func resPath() (string, error) {
	if p := os.Getenv("SCHEDGRID_RES"); p != "" {
		return p, nil
	}
	curUser, err := user.Current()
	if err != nil {
		return "", errors.NewError("main", "cannot determine current user's home folder", err)
	}
	return fp.Join(curUser.HomeDir, "res/schedgrid"), nil
}

// promptPassword reads a line from the terminal without echoing it.
func promptPassword(msg string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.NewError("main", "stdin is not a terminal", nil)
	}
	fmt.Fprint(os.Stderr, msg)
	pwd, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func serve(args []string) {
	tlsConns := true
	if len(args) > 1 || len(args) == 1 && args[0] != "-w" {
		usage()
	}
	if len(args) == 1 {
		tlsConns = false
	}

	server.Announce(version)
	res, err := resPath()
	if err != nil {
		logger.Fatal(err)
	}
	if err := os.MkdirAll(res, os.ModePerm); err != nil {
		logger.Fatal(errors.NewError("main", "cannot create "+res, err))
	}

	srv, err := server.Configure(res, promptPassword)
	if err != nil {
		logger.Fatal(errors.NewError("main", errors.ErrInitFailed.Error(), err))
	}
	if err := srv.Run(tlsConns); err != nil {
		logger.Fatal(err)
	}
}

// readPaste reads the pasted schedule from r. On a terminal the user ends
// the paste with an empty line or EOF.
func readPaste(r io.Reader, interactive bool) (string, error) {
	if !interactive {
		b, err := io.ReadAll(r)
		if err != nil {
			return "", errors.NewError("main", "cannot read stdin", err)
		}
		return string(b), nil
	}

	fmt.Fprintln(os.Stderr, "Paste the schedule text, then press Enter on an empty line:")
	var sb strings.Builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" && sb.Len() > 0 {
			break
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", errors.NewError("main", "cannot read stdin", err)
	}
	return sb.String(), nil
}

func renderCmd(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	name := fs.String("name", "", "student name shown in the title")
	lecture := fs.String("lecture", timetable.DefaultStyle.Lecture, "lecture colour (#RRGGBB)")
	tutorial := fs.String("tutorial", timetable.DefaultStyle.Tutorial, "tutorial colour (#RRGGBB)")
	out := fs.String("o", "", "output file; .png or .webp (default <name>_Schedule.png)")
	ratio := fs.Float64("scale", 2, "pixel ratio")
	padding := fs.Int("padding", 50, "white margin in unscaled pixels")
	if err := fs.Parse(args); err != nil {
		return errors.ErrBadCommandUsage
	}
	if fs.NArg() != 0 {
		return errors.ErrBadCommandUsage
	}

	f := render.PNG
	if *out == "" {
		*out = render.Filename(*name, f)
	} else {
		var err error
		if f, err = render.FormatOf(*out); err != nil {
			return err
		}
	}

	raw, err := readPaste(os.Stdin, term.IsTerminal(int(os.Stdin.Fd())))
	if err != nil {
		return err
	}
	text, err := paste.Text(raw)
	if err != nil {
		return err
	}

	schedule := timetable.Parse(text)
	if schedule.Len() == 0 {
		logger.Warn("No sessions were recognized in the pasted text")
	}
	grid := timetable.Layout(schedule, timetable.DisplayRows, timetable.GridDays)
	img, err := render.Draw(grid, render.Options{
		Name:  *name,
		Style: timetable.Style{Lecture: strings.ToUpper(*lecture), Tutorial: strings.ToUpper(*tutorial)},
		Scale: *ratio,
	})
	if err != nil {
		return err
	}

	file, err := os.Create(*out)
	if err != nil {
		return errors.NewError("main", "cannot create "+*out, err)
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err := render.Encode(w, render.Export(img, int(float64(*padding)*(*ratio)), 0), f); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return errors.NewError("main", "cannot write "+*out, err)
	}
	logger.Info("Wrote %d sessions to %s", schedule.Len(), *out)
	return nil
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "render" {
		err := renderCmd(os.Args[2:])
		if errors.Is(err, errors.ErrBadCommandUsage) {
			usage()
		} else if err != nil {
			logger.Fatal(err)
		}
		return
	}
	serve(os.Args[1:])
}
