package distribution_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okian/tourneystats/internal/domain/distribution"
	"github.com/okian/tourneystats/internal/domain/model"
	"github.com/okian/tourneystats/pkg/logger"
	"github.com/okian/tourneystats/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func uniformTable() *model.Table {
	return &model.Table{
		Name:   "synthetic",
		Header: []string{"", "A", "B"},
		Rows: [][]string{
			{"0", "Anatomy 8/10", "Fossils 6/10"},
			{"1", "Optics 4/10", ""},
			{"2", "Wind Power 2/10", "nan"},
		},
	}
}

func TestCompute(t *testing.T) {
	Convey("Given a table whose percentiles are {0.2, 0.4, 0.6, 0.8}", t, func() {
		ctx := context.Background()
		registry := prometheus.NewRegistry()
		calc := distribution.NewCalculator(
			distribution.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(registry))),
		)

		d, st, err := calc.Compute(ctx, uniformTable())

		Convey("Then the population mean and standard deviation are returned", func() {
			So(err, ShouldBeNil)
			So(d.N, ShouldEqual, 4)
			So(d.Mean, ShouldAlmostEqual, 0.5, 1e-12)
			So(d.StdDev, ShouldAlmostEqual, math.Sqrt(0.05), 1e-12)
			So(d.StdDev, ShouldAlmostEqual, 0.2236, 1e-4)
		})

		Convey("Then empty and non-placement cells are skipped", func() {
			So(st.Placements, ShouldEqual, 4)
			So(st.Skipped, ShouldEqual, 2)
			So(st.Malformed, ShouldEqual, 0)
		})
	})

	Convey("Given a table whose identifier column looks like a placement", t, func() {
		table := &model.Table{Name: "ids", Rows: [][]string{{"3/4", "1/2"}}}

		d, _, err := distribution.NewCalculator().Compute(context.Background(), table)

		Convey("Then the identifier column is ignored", func() {
			So(err, ShouldBeNil)
			So(d.N, ShouldEqual, 1)
			So(d.Mean, ShouldAlmostEqual, 0.5, 1e-12)
			So(d.StdDev, ShouldEqual, 0)
		})
	})

	Convey("Given a table with a zero-denominator cell", t, func() {
		var buf bytes.Buffer
		So(logger.InitWithWriter(&buf), ShouldBeNil)
		table := &model.Table{Name: "broken", Rows: [][]string{{"0", "Flight 3/0", "Flight 1/4"}}}

		d, st, err := distribution.NewCalculator(distribution.WithLogger(logger.Get())).Compute(context.Background(), table)

		Convey("Then it is logged and skipped", func() {
			So(err, ShouldBeNil)
			So(st.Malformed, ShouldEqual, 1)
			So(d.N, ShouldEqual, 1)
			So(d.Mean, ShouldAlmostEqual, 0.75, 1e-12)
			So(buf.String(), ShouldContainSubstring, "skipping malformed placement")
			So(buf.String(), ShouldContainSubstring, "tournament=broken")
		})
	})

	Convey("Given a table without placements", t, func() {
		table := &model.Table{Name: "blank", Rows: [][]string{{"0", "", "DNS"}}}

		_, _, err := distribution.NewCalculator().Compute(context.Background(), table)

		Convey("Then an empty distribution error names the tournament", func() {
			So(errors.Is(err, distribution.ErrEmpty), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "blank")
		})
	})
}

func TestFromPercentiles(t *testing.T) {
	Convey("Given no percentiles", t, func() {
		_, err := distribution.FromPercentiles(nil)
		So(errors.Is(err, distribution.ErrEmpty), ShouldBeTrue)

		mean, std := distribution.MeanStdDev(nil)
		So(math.IsNaN(mean), ShouldBeTrue)
		So(math.IsNaN(std), ShouldBeTrue)
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given a tournament distribution", t, func() {
		d := model.Distribution{Mean: 0.5, StdDev: 0.2, N: 10}

		Convey("When the percentile equals the mean", func() {
			Convey("Then the normalized percentile is 0.5", func() {
				So(distribution.Normalize(0.5, d), ShouldAlmostEqual, 0.5, 1e-12)
			})
		})

		Convey("When the percentile is one standard deviation above the mean", func() {
			Convey("Then it maps to the normal CDF at z=1", func() {
				So(distribution.Normalize(0.7, d), ShouldAlmostEqual, 0.8413447, 1e-6)
				So(distribution.Normalize(0.3, d), ShouldAlmostEqual, 1-0.8413447, 1e-6)
			})
		})

		Convey("When the tournament has no spread", func() {
			flat := model.Distribution{Mean: 0.4, StdDev: 0, N: 3}

			Convey("Then every percentile maps to 0.5", func() {
				So(distribution.Normalize(0.9, flat), ShouldEqual, 0.5)
			})
		})
	})
}

func TestHistogram(t *testing.T) {
	Convey("Given percentiles", t, func() {
		bins := distribution.Histogram([]float64{0, 0.05, 0.5, 0.99, 1, 1.2, -0.1, math.NaN()}, 10)

		Convey("Then they are bucketed with clamping", func() {
			So(bins, ShouldHaveLength, 10)
			So(bins[0].Count, ShouldEqual, 3)
			So(bins[5].Count, ShouldEqual, 1)
			So(bins[9].Count, ShouldEqual, 3)
			So(bins[9].Hi, ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("Then values on an inner edge open the next bin", func() {
			edges := distribution.Histogram([]float64{0.3, 0.7}, 10)
			So(edges[3].Count, ShouldEqual, 1)
			So(edges[7].Count, ShouldEqual, 1)
		})

		Convey("Then every non-NaN value is counted once", func() {
			total := 0
			for _, b := range bins {
				total += b.Count
			}
			So(total, ShouldEqual, 7)
		})

		Convey("Then a non-positive bin count yields nothing", func() {
			So(distribution.Histogram([]float64{0.3}, 0), ShouldBeNil)
		})
	})
}
