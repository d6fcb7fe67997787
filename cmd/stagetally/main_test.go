package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	app "github.com/okian/stagetally/internal/app"
	"github.com/okian/stagetally/internal/config"
	"github.com/okian/stagetally/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given a configured service over temp data files", t, func() {
		dir := t.TempDir()
		groups := filepath.Join(dir, "groups.json")
		convey.So(os.WriteFile(groups, []byte(`{"G": ["A", "B"]}`), 0o600), convey.ShouldBeNil)
		convey.So(os.WriteFile(filepath.Join(dir, "performance.json"), []byte(`[
			{"date": "2020-01-01", "stage": "G Stage", "members": ["A", "B"]},
			{"date": "2020-01-02", "stage": "G Stage", "members": ["A"]}
		]`), 0o600), convey.ShouldBeNil)

		cfg := config.New()
		cfg.GroupsPath = groups
		cfg.PerformanceGlob = filepath.Join(dir, "performance*.json")
		cfg.Watch = false

		ctx := context.Background()
		svc, err := app.NewFromConfig(cfg)
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		handler := newHandler(ctx, svc, cfg.MaxRankingLimit)

		convey.Convey("When requesting a report over HTTP", func() {
			req := httptest.NewRequest(http.MethodGet, "/report?group=G&member=A", http.NoBody)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			convey.Convey("Then the full pipeline answers", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"totalCount":2`)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"name":"B"`)
			})
		})

		convey.Convey("When requesting the docs", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		})
	})

	convey.Convey("Given an invalid configuration", t, func() {
		cfg := config.New()
		cfg.TimeZone = "Nowhere/Land"

		convey.Convey("Then the service cannot be built", func() {
			_, err := app.NewFromConfig(cfg)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("System metrics update without panicking", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
	})
}

func TestDefaultTimeZoneResolves(t *testing.T) {
	convey.Convey("The default configuration should validate with embedded zone data", t, func() {
		cfg := config.New()
		convey.So(cfg.Validate(), convey.ShouldBeNil)
		loc, err := cfg.Location()
		convey.So(err, convey.ShouldBeNil)
		convey.So(loc.String(), convey.ShouldEqual, "Asia/Tokyo")
	})
}
