package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get and Named should return loggers", func() {
				So(Get(), ShouldNotBeNil)
				So(Named("test"), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf), WithFormat("JSON")), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().With(String("component", "loader")).Info(ctx, "loaded",
				Int("records", 3), Bool("ok", true), Duration("took", time.Millisecond), Strings("paths", []string{"a.json", "b.json"}), Error(errors.New("boom")))

			Convey("Then the record should carry every field and the caller", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "loaded")
				So(rec["component"], ShouldEqual, "loader")
				So(rec["records"], ShouldEqual, float64(3))
				So(rec["ok"], ShouldEqual, true)
				So(rec["paths"], ShouldResemble, []any{"a.json", "b.json"})
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level filters a record", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")
			_ = SetLevelString("info")

			Convey("Then only the warning should be written", func() {
				So(strings.Contains(buf.String(), "hidden"), ShouldBeFalse)
				So(strings.Contains(buf.String(), "shown"), ShouldBeTrue)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		for _, lvl := range []string{"debug", "INFO", "", "warning", "warn", "error"} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		_ = SetLevelString("info")
	})
}

func TestLoggerAutoFormatAndFile(t *testing.T) {
	Convey("Given auto format writing to a non-terminal buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf), WithFormat(FormatAuto)), ShouldBeNil)
		Get().Info(context.Background(), "auto")

		Convey("Then records should be JSON", func() {
			var rec map[string]any
			So(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec), ShouldBeNil)
			So(rec["msg"], ShouldEqual, "auto")
		})
	})

	Convey("Given a rotated log file", t, func() {
		path := filepath.Join(t.TempDir(), "logs", "stagetally.log")
		var buf bytes.Buffer
		So(Init(WithOutput(&buf), WithFormat(FormatJSON), WithFile(FileConfig{Path: path, MaxSizeMB: 1})), ShouldBeNil)
		Get().Warn(context.Background(), "teed")

		Convey("Then the record should reach both the writer and the file", func() {
			So(buf.String(), ShouldContainSubstring, "teed")
			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "teed")
		})
	})
}
