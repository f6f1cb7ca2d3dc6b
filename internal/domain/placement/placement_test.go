package placement_test

import (
	"errors"
	"testing"

	"github.com/okian/tourneystats/internal/domain/placement"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given placement cells", t, func() {
		Convey("When the cell is a plain fraction a/b", func() {
			cases := []struct {
				cell string
				want float64
			}{
				{"5/20", 0.75},
				{"Fossils 1/1", 0},
				{"Codebusters rank 12/45", 1 - 12.0/45.0},
				{"Optics 0.5/10", 0.95},
				{"Fermi .5/2", 0.75},
			}

			Convey("Then the percentile is 1 - a/b and lies in [0,1]", func() {
				for _, c := range cases {
					got, err := placement.Parse(c.cell)
					So(err, ShouldBeNil)
					So(got, ShouldAlmostEqual, c.want, 1e-12)
					So(got, ShouldBeBetweenOrEqual, 0, 1)
				}
			})
		})

		Convey("When the cell is a percentage", func() {
			got, err := placement.Parse("87%")

			Convey("Then the denominator is 100", func() {
				So(err, ShouldBeNil)
				So(got, ShouldAlmostEqual, 0.13, 1e-12)
			})
		})

		Convey("When the cell carries a score", func() {
			got, err := placement.Parse("score 30/50")

			Convey("Then the numerator becomes the gap to the maximum", func() {
				So(err, ShouldBeNil)
				So(got, ShouldAlmostEqual, 0.6, 1e-12)
			})

			Convey("And the keyword match ignores case", func() {
				upper, err := placement.Parse("Disease Detectives SCORE 30/50")
				So(err, ShouldBeNil)
				So(upper, ShouldAlmostEqual, 0.6, 1e-12)
			})
		})

		Convey("When the cell has fewer than two numbers", func() {
			for _, cell := range []string{"", "nan", "Anatomy", "DNF 3", "  "} {
				_, err := placement.Parse(cell)
				So(errors.Is(err, placement.ErrNotPlacement), ShouldBeTrue)
			}
		})

		Convey("When the denominator is zero", func() {
			_, err := placement.Parse("Robot Tour 3/0")

			Convey("Then it is malformed rather than absent", func() {
				So(errors.Is(err, placement.ErrMalformedPlacement), ShouldBeTrue)
				So(errors.Is(err, placement.ErrNotPlacement), ShouldBeFalse)
				So(err.Error(), ShouldContainSubstring, "Robot Tour 3/0")
			})
		})

		Convey("When ParsePlacement is used directly", func() {
			p, err := placement.ParsePlacement("score 41.5/80")

			Convey("Then the pair reflects the score rewrite", func() {
				So(err, ShouldBeNil)
				So(p.Numerator, ShouldAlmostEqual, 38.5, 1e-12)
				So(p.Denominator, ShouldEqual, 80)
				So(p.Percentile(), ShouldAlmostEqual, 1-38.5/80, 1e-12)
			})
		})
	})
}

func TestEventName(t *testing.T) {
	Convey("Given raw event cells", t, func() {
		Convey("Then numbers, punctuation and control words are removed", func() {
			So(placement.EventName("Anatomy & Physiology rank 3/10"), ShouldEqual, "anatomy & physiology")
			So(placement.EventName("Fossils (score 30/50)"), ShouldEqual, "fossils")
			So(placement.EventName("Write It Do It 87%"), ShouldEqual, "write it do it")
			So(placement.EventName("*Robot Tour 4.5/12"), ShouldEqual, "robot tour")
		})

		Convey("Then differently written headers share a key", func() {
			So(placement.EventName("CODEBUSTERS Rank 2/30"), ShouldEqual, placement.EventName("codebusters 17/40"))
		})

		Convey("Then short names are filtered out", func() {
			So(placement.IsEventName("wind", placement.DefaultMinNameLength), ShouldBeFalse)
			So(placement.IsEventName("optics", placement.DefaultMinNameLength), ShouldBeTrue)
			So(placement.IsEventName("", 0), ShouldBeFalse)
		})

		Convey("Then display names are capitalized", func() {
			So(placement.DisplayName("forensics"), ShouldEqual, "Forensics")
			So(placement.DisplayName(""), ShouldEqual, "")
			So(placement.DisplayName(placement.EventName("Écologie 3/10")), ShouldEqual, "Écologie")
			So(placement.DisplayName("ökologie"), ShouldEqual, "Ökologie")
		})

		Convey("Then name length counts letters, not bytes", func() {
			// "érié" is 4 letters in 6 bytes
			So(placement.IsEventName("érié", placement.DefaultMinNameLength), ShouldBeFalse)
			So(placement.IsEventName("éclair", placement.DefaultMinNameLength), ShouldBeTrue)
		})
	})
}
