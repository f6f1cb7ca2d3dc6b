package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/tourneystats/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const seasonYAML = `
tournaments:
  - name: rickards
    file: rickards.csv
  - name: regionals
    file: regionals.csv
members: [1]
breakdown_tournaments: [regionals]
render_charts: false
`

func writeSeason(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"rickards.csv":  ",Event 1\n0,Anatomy rank 1/4\n1,Anatomy rank 3/4\n",
		"regionals.csv": ",Event 1\n0,Anatomy rank 2/4\n1,Optics 1/4\n",
		"season.yaml":   seasonYAML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRun(t *testing.T) {
	convey.Convey("Given a season on disk and a config file", t, func() {
		dir := writeSeason(t)
		t.Setenv("TOURNEY_CONFIG", filepath.Join(dir, "season.yaml"))
		t.Setenv("TOURNEY_DATA_DIR", dir)

		convey.Convey("When running the batch", func() {
			var out bytes.Buffer
			code := run(context.Background(), &out)

			convey.Convey("Then it exits cleanly and prints the report", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(out.String(), convey.ShouldContainSubstring, "Team breakdown: regionals")
				convey.So(out.String(), convey.ShouldContainSubstring, "Name: 1\n")
				convey.So(out.String(), convey.ShouldContainSubstring, "Event: Anatomy\n")
			})
		})

		convey.Convey("When a member is past the last row", func() {
			t.Setenv("TOURNEY_MEMBERS", "9")
			var out bytes.Buffer
			code := run(context.Background(), &out)

			convey.Convey("Then the run fails", func() {
				convey.So(code, convey.ShouldEqual, exitRun)
			})
		})
	})

	convey.Convey("Given a configuration that does not validate", t, func() {
		t.Setenv("TOURNEY_DATA_DIR", " ")

		convey.Convey("Then run reports a config failure", func() {
			convey.So(run(context.Background(), &bytes.Buffer{}), convey.ShouldEqual, exitConfig)
		})
	})
}
