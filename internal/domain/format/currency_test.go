package format_test

import (
	"testing"

	"github.com/okian/rankview/internal/domain/format"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCurrency(t *testing.T) {
	Convey("Given numeric amounts", t, func() {
		Convey("Then whole amounts get two decimals and grouping", func() {
			So(format.Currency(100000), ShouldEqual, "$100,000.00")
			So(format.Currency(1234567.891), ShouldEqual, "$1,234,567.89")
		})

		Convey("And small amounts are not grouped", func() {
			So(format.Currency(0), ShouldEqual, "$0.00")
			So(format.Currency(999.5), ShouldEqual, "$999.50")
		})

		Convey("And negative amounts put the sign before the symbol", func() {
			So(format.Currency(-1500), ShouldEqual, "-$1,500.00")
		})

		Convey("And negative amounts that round to zero carry no sign", func() {
			So(format.Currency(-0.001), ShouldEqual, "$0.00")
			So(format.Currency(-0.0049), ShouldEqual, "$0.00")
		})
	})
}
