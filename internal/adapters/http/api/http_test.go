package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/stagetally/internal/adapters/http/api"
	"github.com/okian/stagetally/internal/adapters/repository"
	service "github.com/okian/stagetally/internal/app"
	"github.com/okian/stagetally/internal/domain/chrono"
	"github.com/okian/stagetally/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDeps struct {
	report    *service.Report
	reportErr error
	lastSel   service.Selection
	entries   []types.Entry
	coErr     error
	lastLimit int
	snap      *repository.Snapshot
	reloadErr error
}

func (m *mockDeps) Report(_ context.Context, sel service.Selection) (*service.Report, error) {
	m.lastSel = sel
	if m.reportErr != nil {
		return nil, m.reportErr
	}
	return m.report, nil
}

func (m *mockDeps) Groups(context.Context) []service.GroupInfo {
	return []service.GroupInfo{{Name: "G", Members: []string{"A", "B"}}}
}

func (m *mockDeps) StageRanking(context.Context, string, string) []types.Entry { return m.entries }

func (m *mockDeps) YearRanking(context.Context, string, string) []types.Entry { return m.entries }

func (m *mockDeps) CoAppearanceRanking(_ context.Context, _, _ string, limit int) ([]types.Entry, error) {
	m.lastLimit = limit
	return m.entries, m.coErr
}

func (m *mockDeps) Reload(context.Context) (*repository.Snapshot, error) {
	return m.snap, m.reloadErr
}

func (m *mockDeps) Dataset() string { return "v1" }

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps *mockDeps) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, 50)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func errorCode(w *httptest.ResponseRecorder) string {
	var body struct {
		Code string `json:"code"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body.Code
}

func TestServer_Routes(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{
			report:  &service.Report{Group: "G", Member: "A", TotalCount: 3},
			entries: []types.Entry{{Rank: 1, Name: "B", Count: 2}},
			snap:    &repository.Snapshot{Version: "v2"},
		}
		mux := newMux(deps)

		Convey("Health reports the dataset version", func() {
			w := do(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"dataset":"v1"`)
		})

		Convey("Metrics are exposed", func() {
			w := do(mux, http.MethodGet, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "stagetally")
		})

		Convey("Stats are returned as JSON", func() {
			w := do(mux, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
		})

		Convey("Groups are listed", func() {
			w := do(mux, http.MethodGet, "/groups")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"name":"G"`)
		})

		Convey("Wrong methods are not found", func() {
			So(do(mux, http.MethodPost, "/report?group=G&member=A").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodGet, "/reload").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestReportHandler(t *testing.T) {
	Convey("Given a report handler", t, func() {
		deps := &mockDeps{report: &service.Report{Group: "G", Member: "A", TotalCount: 3}}
		mux := newMux(deps)

		Convey("When group and member are given", func() {
			w := do(mux, http.MethodGet, "/report?group=G&member=A")

			Convey("Then the report is returned newest first by default", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"totalCount":3`)
				So(deps.lastSel.Order, ShouldEqual, chrono.Descending)
				So(deps.lastSel.Group, ShouldEqual, "G")
			})
		})

		Convey("When ascending order is requested", func() {
			w := do(mux, http.MethodGet, "/report?group=G&member=A&order=asc")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastSel.Order, ShouldEqual, chrono.Ascending)
		})

		Convey("When the order is invalid", func() {
			w := do(mux, http.MethodGet, "/report?group=G&member=A&order=up")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w), ShouldEqual, "bad_request")
		})

		Convey("When member is missing", func() {
			w := do(mux, http.MethodGet, "/report?group=G")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "group and member are required")
		})

		Convey("When the service fails", func() {
			deps.reportErr = chrono.ErrMissingOrderKey
			w := do(mux, http.MethodGet, "/report?group=G&member=A")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(errorCode(w), ShouldEqual, "internal_error")
			So(w.Body.String(), ShouldContainSubstring, "missing order key")
		})
	})
}

func TestRankingHandler(t *testing.T) {
	Convey("Given a ranking handler", t, func() {
		deps := &mockDeps{entries: []types.Entry{{Rank: 1, Name: "B", Count: 2}}}
		mux := newMux(deps)

		Convey("Stage ranking requires a stage", func() {
			So(do(mux, http.MethodGet, "/ranking/stage?group=G").Code, ShouldEqual, http.StatusBadRequest)
			w := do(mux, http.MethodGet, "/ranking/stage?group=G&stage=Stage+One")
			So(w.Code, ShouldEqual, http.StatusOK)

			var entries []types.Entry
			So(json.Unmarshal(w.Body.Bytes(), &entries), ShouldBeNil)
			So(entries, ShouldResemble, deps.entries)
		})

		Convey("Year ranking requires a 4-digit year", func() {
			So(do(mux, http.MethodGet, "/ranking/year?group=G&year=20").Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, http.MethodGet, "/ranking/year?group=G&year=abcd").Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, http.MethodGet, "/ranking/year?group=G&year=2020").Code, ShouldEqual, http.StatusOK)
		})

		Convey("Co-appearance ranking validates the limit", func() {
			So(do(mux, http.MethodGet, "/ranking/coappearance?group=G&member=A&limit=0").Code, ShouldEqual, http.StatusBadRequest)

			w := do(mux, http.MethodGet, "/ranking/coappearance?group=G&member=A&limit=51")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w), ShouldEqual, "limit_exceeded")

			So(do(mux, http.MethodGet, "/ranking/coappearance?group=G&member=A&limit=5").Code, ShouldEqual, http.StatusOK)
			So(deps.lastLimit, ShouldEqual, 5)

			So(do(mux, http.MethodGet, "/ranking/coappearance?group=G&member=A").Code, ShouldEqual, http.StatusOK)
			So(deps.lastLimit, ShouldEqual, 50)
		})

		Convey("Co-appearance ranking surfaces service errors", func() {
			deps.coErr = errors.New("boom")
			w := do(mux, http.MethodGet, "/ranking/coappearance?group=G&member=A")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestReloadHandler(t *testing.T) {
	Convey("Given a reload handler", t, func() {
		deps := &mockDeps{snap: &repository.Snapshot{Version: "v2"}}
		mux := newMux(deps)

		Convey("A successful reload returns the new version", func() {
			w := do(mux, http.MethodPost, "/reload")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"dataset":"v2"`)
		})

		Convey("A failed reload is reported", func() {
			deps.reloadErr = errors.New("disk gone")
			w := do(mux, http.MethodPost, "/reload")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(errorCode(w), ShouldEqual, "reload_failed")
			So(strings.Contains(w.Body.String(), "disk gone"), ShouldBeTrue)
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Operation errors unwrap to their kind and cause", t, func() {
		cause := errors.New("cause")
		err := api.NewKindf("api.op", api.ErrBadRequest, "detail: %w", cause)
		So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
		So(errors.Is(err, cause), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "api.op: bad request: detail: cause")

		So(api.Wrap("api.op", nil), ShouldBeNil)
		So(errors.Is(api.Wrap("api.op", cause), cause), ShouldBeTrue)
		So(api.NewKind("api.op", api.ErrLimitExceeded).Error(), ShouldEqual, "api.op: limit exceeds maximum")
	})
}
