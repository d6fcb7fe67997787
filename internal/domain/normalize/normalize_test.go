package normalize_test

import (
	"errors"
	"testing"

	"github.com/okian/stagetally/internal/domain/model"
	"github.com/okian/stagetally/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given a batch of raw records", t, func() {
		raws := []model.RawRecord{
			{Date: "2024-01-05", Stage: " AKB48 手をつなぎながら ", Time: " 昼 ", Members: []string{" A", "B ", "  "}},
			{Date: "2024/01/06", Stage: "AKB48 手をつなぎながら", Members: []string{"A"}},
			{Date: "2024-01-07", Stage: "AKB48 手をつなぎながら", Members: []string{"C"}, Group: " AKB48 "},
		}

		Convey("When normalizing the batch", func() {
			res := normalize.Normalize(raws)

			Convey("Then member names and labels should be trimmed", func() {
				So(res.Records, ShouldHaveLength, 2)
				So(res.Records[0].Members, ShouldResemble, []string{"A", "B"})
				So(res.Records[0].Time, ShouldEqual, model.SlotMatinee)
				So(res.Records[0].Stage, ShouldEqual, "AKB48 手をつなぎながら")
				So(res.Records[1].Group, ShouldEqual, "AKB48")
			})

			Convey("And an absent time should stay empty", func() {
				So(res.Records[1].Time, ShouldEqual, model.SlotNone)
			})

			Convey("And source indexes should follow batch positions", func() {
				So(res.Records[0].SourceIndex, ShouldEqual, 0)
				So(res.Records[1].SourceIndex, ShouldEqual, 2)
			})

			Convey("And the malformed date should be rejected", func() {
				So(res.Rejected, ShouldHaveLength, 1)
				So(res.Rejected[0].Index, ShouldEqual, 1)
				So(errors.Is(res.Rejected[0].Err, normalize.ErrMalformedDate), ShouldBeTrue)
			})
		})

		Convey("When normalizing, the raw input should not change", func() {
			_ = normalize.Normalize(raws)
			So(raws[0].Members[0], ShouldEqual, " A")
		})
	})
}

func TestValidateDate(t *testing.T) {
	Convey("Given date strings", t, func() {
		Convey("Then zero-padded ISO dates should pass", func() {
			So(normalize.ValidateDate("2020-02-29"), ShouldBeNil)
			So(normalize.ValidateDate("1999-12-31"), ShouldBeNil)
		})

		Convey("Then unpadded or impossible dates should fail", func() {
			for _, d := range []string{"2020-2-29", "2021-02-29", "", "2020-01-01T00:00", "20200101", "2020-13-01"} {
				So(errors.Is(normalize.ValidateDate(d), normalize.ErrMalformedDate), ShouldBeTrue)
			}
		})
	})
}
