package ranking_test

import (
	"math/rand"
	"testing"

	"github.com/okian/rankview/internal/domain/model"
	"github.com/okian/rankview/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func recordsWithValues(values ...float64) []model.Record {
	out := make([]model.Record, len(values))
	for i, v := range values {
		out[i] = model.Record{Line: i + 2, Name: "Person", Value: v}
	}
	return out
}

func TestAssign(t *testing.T) {
	Convey("Given records with ties", t, func() {
		records := recordsWithValues(50, 90, 90, 70, 50, 10)
		ranking.Assign(records)

		Convey("Then tied values share a rank and the next rank skips", func() {
			ranks := make([]int, len(records))
			for i, r := range records {
				ranks[i] = r.Rank
			}
			// 90,90 -> 1; 70 -> 3; 50,50 -> 4; 10 -> 6
			So(ranks, ShouldResemble, []int{4, 1, 1, 3, 4, 6})
		})

		Convey("And input order is preserved", func() {
			So(records[0].Value, ShouldEqual, 50)
			So(records[5].Value, ShouldEqual, 10)
		})
	})

	Convey("Given two distinct records sharing name and value", t, func() {
		records := []model.Record{
			{Line: 2, Name: "Smith, Ann", Value: 100},
			{Line: 3, Name: "Smith, Ann", Value: 100},
			{Line: 4, Name: "Lee, Bob", Value: 200},
		}
		ranking.Assign(records)

		Convey("Then both get the tied rank", func() {
			So(records[0].Rank, ShouldEqual, 2)
			So(records[1].Rank, ShouldEqual, 2)
			So(records[2].Rank, ShouldEqual, 1)
		})
	})

	Convey("Given a single record", t, func() {
		records := recordsWithValues(42)
		ranking.Assign(records)

		Convey("Then it is ranked first", func() {
			So(records[0].Rank, ShouldEqual, 1)
		})
	})

	Convey("Given no records", t, func() {
		Convey("Then Assign does nothing", func() {
			So(func() { ranking.Assign(nil) }, ShouldNotPanic)
		})
	})
}

func TestAssign_Properties(t *testing.T) {
	Convey("Given a random dataset with many ties", t, func() {
		rng := rand.New(rand.NewSource(7))
		values := make([]float64, 500)
		for i := range values {
			values[i] = float64(rng.Intn(40)) * 1000
		}
		records := recordsWithValues(values...)
		ranking.Assign(records)

		Convey("Then rank equals one plus the count of strictly greater values", func() {
			for _, a := range records {
				greater := 0
				for _, b := range records {
					if b.Value > a.Value {
						greater++
					}
				}
				So(a.Rank, ShouldEqual, greater+1)
			}
		})

		Convey("And ranks are monotone in value", func() {
			ok := true
			for _, a := range records {
				for _, b := range records {
					if a.Value > b.Value && a.Rank >= b.Rank {
						ok = false
					}
					if a.Value == b.Value && a.Rank != b.Rank {
						ok = false
					}
				}
			}
			So(ok, ShouldBeTrue)
		})

		Convey("And rank 1 is always assigned", func() {
			found := false
			for _, r := range records {
				if r.Rank == 1 {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
