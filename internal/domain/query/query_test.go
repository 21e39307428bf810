package query_test

import (
	"errors"
	"testing"

	"github.com/okian/rankview/internal/domain/model"
	"github.com/okian/rankview/internal/domain/query"
	"github.com/okian/rankview/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() []model.Record {
	records := []model.Record{
		{Line: 2, Name: "Smith, Ann", Value: 50000},
		{Line: 3, Name: "Lee, Bob", Value: 90000},
		{Line: 4, Name: "jones, Carla Mae", Value: 70000},
		{Line: 5, Name: "Annand, Raj", Value: 30000},
		{Line: 6, Name: "Madonna", Value: 120000},
	}
	ranking.Assign(records)
	return records
}

func names(records []model.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	Convey("Given a ranked dataset", t, func() {
		records := fixture()

		Convey("When searching with a blank term", func() {
			view := query.Filter(records, "   ")

			Convey("Then every record is returned as a copy", func() {
				So(view, ShouldHaveLength, len(records))
				view[0].Name = "changed"
				So(records[0].Name, ShouldEqual, "Smith, Ann")
			})
		})

		Convey("When searching by substring", func() {
			view := query.Filter(records, "  ANN ")

			Convey("Then the match is case-insensitive", func() {
				So(names(view), ShouldResemble, []string{"Smith, Ann", "Annand, Raj"})
			})
		})

		Convey("When searching in first-last order", func() {
			Convey("Then 'ann smith' finds 'Smith, Ann'", func() {
				So(names(query.Filter(records, "ann smith")), ShouldContain, "Smith, Ann")
			})

			Convey("And 'ann jones' does not", func() {
				So(names(query.Filter(records, "ann jones")), ShouldNotContain, "Smith, Ann")
			})

			Convey("And only the first given name is required", func() {
				So(names(query.Filter(records, "carla jones")), ShouldResemble, []string{"jones, Carla Mae"})
			})
		})

		Convey("When nothing matches", func() {
			view := query.Filter(records, "zzz")

			Convey("Then the view is empty, not nil", func() {
				So(view, ShouldNotBeNil)
				So(view, ShouldBeEmpty)
			})
		})

		Convey("When the name has no comma", func() {
			Convey("Then only substring matching applies", func() {
				So(query.Matches("Madonna", "madonna"), ShouldBeTrue)
				So(query.Matches("Madonna", "donna ma"), ShouldBeFalse)
			})
		})
	})
}

func TestSort(t *testing.T) {
	Convey("Given two records without ties", t, func() {
		records := []model.Record{
			{Name: "Smith, Ann", Value: 50000},
			{Name: "Lee, Bob", Value: 90000},
		}
		ranking.Assign(records)

		Convey("When sorting by value descending", func() {
			view := query.Run(records, "", query.ColumnValue, query.Desc)

			Convey("Then the higher value comes first", func() {
				So(names(view), ShouldResemble, []string{"Lee, Bob", "Smith, Ann"})
			})
		})

		Convey("When sorting by value ascending", func() {
			view := query.Run(records, "", query.ColumnValue, query.Asc)

			Convey("Then the order is reversed", func() {
				So(names(view), ShouldResemble, []string{"Smith, Ann", "Lee, Bob"})
			})
		})
	})

	Convey("Given the fixture dataset", t, func() {
		records := fixture()

		Convey("Then reversing direction reverses the sequence for every column", func() {
			for _, col := range []query.Column{query.ColumnName, query.ColumnValue, query.ColumnRank} {
				asc := query.Run(records, "", col, query.Asc)
				desc := query.Run(records, "", col, query.Desc)
				for i := range asc {
					So(asc[i].Name, ShouldEqual, desc[len(desc)-1-i].Name)
				}
			}
		})

		Convey("Then names sort case-insensitively", func() {
			view := query.Run(records, "", query.ColumnName, query.Asc)
			So(names(view), ShouldResemble, []string{"Annand, Raj", "jones, Carla Mae", "Lee, Bob", "Madonna", "Smith, Ann"})
		})

		Convey("Then rank ascending equals value descending", func() {
			byRank := query.Run(records, "", query.ColumnRank, query.Asc)
			byValue := query.Run(records, "", query.ColumnValue, query.Desc)
			So(names(byRank), ShouldResemble, names(byValue))
		})

		Convey("Then an empty search is an idempotent filter", func() {
			once := query.Run(records, "", query.ColumnName, query.Desc)
			twice := query.Run(once, "", query.ColumnName, query.Desc)
			So(twice, ShouldResemble, once)
		})

		Convey("Then the input slice is left untouched", func() {
			_ = query.Run(records, "", query.ColumnName, query.Asc)
			So(records[0].Name, ShouldEqual, "Smith, Ann")
		})
	})

	Convey("Given tied values", t, func() {
		records := []model.Record{
			{Line: 2, Name: "B", Value: 10},
			{Line: 3, Name: "A", Value: 10},
		}

		Convey("Then ties keep their dataset order", func() {
			view := query.Run(records, "", query.ColumnValue, query.Desc)
			So(view[0].Line, ShouldEqual, 2)
			So(query.Compare(records[0], records[1], query.ColumnValue), ShouldEqual, 0)
		})
	})
}

func TestViewState(t *testing.T) {
	Convey("Given the default view", t, func() {
		v := query.DefaultView()

		Convey("Then it sorts by value descending on page 1", func() {
			So(v.Column, ShouldEqual, query.ColumnValue)
			So(v.Direction, ShouldEqual, query.Desc)
			So(v.Page, ShouldEqual, 1)
		})

		Convey("When selecting the same column", func() {
			next := v.WithSort(query.ColumnValue)

			Convey("Then the direction flips", func() {
				So(next.Direction, ShouldEqual, query.Asc)
			})
		})

		Convey("When selecting the name column from page 3", func() {
			v.Page = 3
			next := v.WithSort(query.ColumnName)

			Convey("Then it starts ascending on page 1", func() {
				So(next.Column, ShouldEqual, query.ColumnName)
				So(next.Direction, ShouldEqual, query.Asc)
				So(next.Page, ShouldEqual, 1)
			})
		})

		Convey("When searching from page 4", func() {
			v.Page = 4
			next := v.WithSearch("lee")

			Convey("Then the page resets", func() {
				So(next.Search, ShouldEqual, "lee")
				So(next.Page, ShouldEqual, 1)
			})
		})

		Convey("When navigating pages", func() {
			So(v.PrevPage().Page, ShouldEqual, 1)
			So(v.NextPage(3).Page, ShouldEqual, 2)
			v.Page = 3
			So(v.NextPage(3).Page, ShouldEqual, 3)
			So(v.NextPage(0).Page, ShouldEqual, 3)
			So(v.PrevPage().Page, ShouldEqual, 2)
		})
	})
}

func TestParseColumnAndDirection(t *testing.T) {
	Convey("Given column names", t, func() {
		for in, want := range map[string]query.Column{
			"":       query.ColumnValue,
			"value":  query.ColumnValue,
			"Salary": query.ColumnValue,
			"NAME":   query.ColumnName,
			" rank ": query.ColumnRank,
		} {
			got, err := query.ParseColumn(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		_, err := query.ParseColumn("age")
		So(errors.Is(err, query.ErrUnknownColumn), ShouldBeTrue)
	})

	Convey("Given direction names", t, func() {
		d, err := query.ParseDirection("", query.ColumnName)
		So(err, ShouldBeNil)
		So(d, ShouldEqual, query.Asc)

		d, err = query.ParseDirection("", query.ColumnRank)
		So(err, ShouldBeNil)
		So(d, ShouldEqual, query.Desc)

		d, err = query.ParseDirection("DESC", query.ColumnName)
		So(err, ShouldBeNil)
		So(d, ShouldEqual, query.Desc)

		_, err = query.ParseDirection("up", query.ColumnName)
		So(errors.Is(err, query.ErrUnknownDirection), ShouldBeTrue)
	})
}
