package coerce_test

import (
	"testing"

	coerce "github.com/creatorhub/matchengine/internal/domain/coerce"
	"github.com/google/go-cmp/cmp"
	"github.com/smartystreets/goconvey/convey"
)

func TestStringList(t *testing.T) {
	convey.Convey("Given loosely-typed list inputs", t, func() {
		convey.Convey("Then native slices pass through cleaned", func() {
			got := coerce.StringList([]string{" gym routines ", "", "nutrition"})
			convey.So(cmp.Diff([]string{"gym routines", "nutrition"}, got), convey.ShouldBeEmpty)
		})

		convey.Convey("Then []any keeps only string elements", func() {
			got := coerce.StringList([]any{"a", 1, nil, "b"})
			convey.So(cmp.Diff([]string{"a", "b"}, got), convey.ShouldBeEmpty)
		})

		convey.Convey("Then a JSON-encoded array string parses", func() {
			got := coerce.StringList(`["instagram","tiktok"]`)
			convey.So(cmp.Diff([]string{"instagram", "tiktok"}, got), convey.ShouldBeEmpty)
		})

		convey.Convey("Then a bare string becomes a single-element list", func() {
			got := coerce.StringList("fitness coaching")
			convey.So(cmp.Diff([]string{"fitness coaching"}, got), convey.ShouldBeEmpty)
		})

		convey.Convey("Then malformed JSON that looks like an array is kept as text", func() {
			got := coerce.StringList(`[not json`)
			convey.So(cmp.Diff([]string{"[not json"}, got), convey.ShouldBeEmpty)
		})

		convey.Convey("Then nil and foreign types yield empty, never nil-panic", func() {
			convey.So(coerce.StringList(nil), convey.ShouldBeEmpty)
			convey.So(coerce.StringList(42), convey.ShouldBeEmpty)
			convey.So(coerce.StringList(map[string]any{"a": 1}), convey.ShouldBeEmpty)
			convey.So(coerce.StringList(""), convey.ShouldBeEmpty)
		})
	})
}

func TestStringMap(t *testing.T) {
	convey.Convey("Given loosely-typed map inputs", t, func() {
		convey.Convey("Then native maps pass through", func() {
			in := map[string]any{"followers": 10.0}
			convey.So(coerce.StringMap(in), convey.ShouldResemble, in)
		})

		convey.Convey("Then a JSON object string parses", func() {
			got := coerce.StringMap(`{"followers": 500}`)
			convey.So(got["followers"], convey.ShouldEqual, 500.0)
		})

		convey.Convey("Then malformed input yields an empty map", func() {
			convey.So(coerce.StringMap(`{"broken`), convey.ShouldBeEmpty)
			convey.So(coerce.StringMap(nil), convey.ShouldBeEmpty)
			convey.So(coerce.StringMap([]string{"x"}), convey.ShouldBeEmpty)
		})
	})
}

func TestFloat64(t *testing.T) {
	convey.Convey("Given loosely-typed numeric inputs", t, func() {
		cases := []struct {
			in   any
			want float64
			ok   bool
		}{
			{0.05, 0.05, true},
			{3, 3, true},
			{int64(7), 7, true},
			{"0.04", 0.04, true},
			{"  2.5 ", 2.5, true},
			{"abc", 0, false},
			{nil, 0, false},
			{[]string{"1"}, 0, false},
		}
		for _, c := range cases {
			got, ok := coerce.Float64(c.in)
			convey.So(ok, convey.ShouldEqual, c.ok)
			convey.So(got, convey.ShouldEqual, c.want)
		}
	})
}
