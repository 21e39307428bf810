package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/okian/rankview/internal/adapters/http/api"
	"github.com/okian/rankview/internal/adapters/source"
	service "github.com/okian/rankview/internal/app"
	"github.com/okian/rankview/internal/domain/query"
	"github.com/okian/rankview/internal/domain/stats"
	"github.com/okian/rankview/internal/domain/types"
	"github.com/okian/rankview/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// mockService records the last query and returns canned results.
type mockService struct {
	lastView  query.ViewState
	lastSize  int
	result    types.Result
	queryErr  error
	report    service.LoadReport
	loadErr   error
	loadCalls int
}

func (m *mockService) QueryPage(_ context.Context, view query.ViewState, size int) (types.Result, error) {
	m.lastView, m.lastSize = view, size
	if m.queryErr != nil {
		return types.Result{}, m.queryErr
	}
	return m.result, nil
}

func (m *mockService) Load(_ context.Context) (service.LoadReport, error) {
	m.loadCalls++
	if m.loadErr != nil {
		return service.LoadReport{}, m.loadErr
	}
	return m.report, nil
}

func (m *mockService) GetStats() map[string]interface{} {
	return map[string]interface{}{"loaded": true, "records": 3}
}

func newRouter(deps api.Dependencies, opts ...api.Option) *chi.Mux {
	srv := api.NewServer(deps, opts...)
	return api.NewRouter(logger.Get(), srv.Register)
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

func TestQueryEndpoint(t *testing.T) {
	Convey("Given an API over a loaded service", t, func() {
		deps := &mockService{result: types.Result{
			Rows:         []types.Row{{Name: "Smith, Ann", Value: 100000, FormattedValue: "$100,000.00", Rank: 1}},
			TotalMatched: 1,
			TotalOverall: 3,
			Page:         1,
			TotalPages:   1,
			Statistics:   types.NewStatistics(stats.Of([]float64{100000})),
		}}
		router := newRouter(deps, api.WithMaxPageSize(50))

		Convey("When querying with no parameters", func() {
			rec := do(router, http.MethodGet, "/api/query")

			Convey("Then the default view is requested", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastView, ShouldResemble, query.DefaultView())
				So(deps.lastSize, ShouldEqual, 0)
			})

			Convey("And the result is encoded", func() {
				var got types.Result
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.Rows[0].Name, ShouldEqual, "Smith, Ann")
				So(got.Statistics.Count, ShouldEqual, 1)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				So(rec.Header().Get("X-Content-Type-Options"), ShouldEqual, "nosniff")
			})
		})

		Convey("When querying with every parameter", func() {
			rec := do(router, http.MethodGet, "/api/query?q=ann+smith&sort=salary&dir=asc&page=2&size=10")

			Convey("Then they reach the service", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastView, ShouldResemble, query.ViewState{
					Search: "ann smith", Column: query.ColumnValue, Direction: query.Asc, Page: 2,
				})
				So(deps.lastSize, ShouldEqual, 10)
			})
		})

		Convey("When sorting by name without a direction", func() {
			rec := do(router, http.MethodGet, "/api/query?sort=name")

			Convey("Then the name column starts ascending", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastView.Direction, ShouldEqual, query.Asc)
			})
		})

		Convey("When parameters are invalid", func() {
			for _, target := range []string{
				"/api/query?sort=age",
				"/api/query?dir=up",
				"/api/query?page=0",
				"/api/query?page=two",
				"/api/query?size=0",
				"/api/query?size=51",
			} {
				rec := do(router, http.MethodGet, target)

				Convey("Then "+target+" is a bad request", func() {
					So(rec.Code, ShouldEqual, http.StatusBadRequest)
					So(decodeError(rec)["code"], ShouldEqual, "bad_request")
				})
			}
		})

		Convey("When no dataset is loaded yet", func() {
			deps.queryErr = service.ErrNotLoaded
			rec := do(router, http.MethodGet, "/api/query")

			Convey("Then the service is unavailable", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(decodeError(rec)["code"], ShouldEqual, "not_loaded")
			})
		})

		Convey("When the service fails unexpectedly", func() {
			deps.queryErr = errors.New("boom")
			rec := do(router, http.MethodGet, "/api/query")

			Convey("Then it is an internal error", func() {
				So(rec.Code, ShouldEqual, http.StatusInternalServerError)
				So(decodeError(rec)["message"], ShouldContainSubstring, "boom")
			})
		})

		Convey("When using the wrong method", func() {
			rec := do(router, http.MethodPost, "/api/query")

			Convey("Then it is rejected with a JSON error", func() {
				So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(decodeError(rec)["code"], ShouldEqual, "method_not_allowed")
				So(decodeError(rec)["message"], ShouldEqual, "method not allowed")
			})
		})

		Convey("When requesting an unknown API path", func() {
			rec := do(router, http.MethodGet, "/api/leaderboard")

			Convey("Then it is a JSON not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(decodeError(rec)["code"], ShouldEqual, "not_found")
			})
		})
	})
}

func TestReloadEndpoint(t *testing.T) {
	Convey("Given an API over a service", t, func() {
		id := uuid.New()
		deps := &mockService{report: service.LoadReport{DatasetID: id, Source: "inline", Records: 3, Skipped: 1}}
		router := newRouter(deps)

		Convey("When reloading succeeds", func() {
			rec := do(router, http.MethodPost, "/api/reload")

			Convey("Then the load report is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.loadCalls, ShouldEqual, 1)
				var got service.LoadReport
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got.DatasetID, ShouldEqual, id)
				So(got.Skipped, ShouldEqual, 1)
			})
		})

		Convey("When the source is unavailable", func() {
			deps.loadErr = fmt.Errorf("load x: %w", source.ErrUnavailable)
			rec := do(router, http.MethodPost, "/api/reload")

			Convey("Then the service is unavailable", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(decodeError(rec)["code"], ShouldEqual, "source_unavailable")
			})
		})

		Convey("When reloading with GET", func() {
			rec := do(router, http.MethodGet, "/api/reload")

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(deps.loadCalls, ShouldEqual, 0)
			})
		})
	})
}

func TestStatsAndHealth(t *testing.T) {
	Convey("Given an API", t, func() {
		router := newRouter(&mockService{})

		Convey("When fetching stats", func() {
			rec := do(router, http.MethodGet, "/stats")

			Convey("Then the provider's map is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got["loaded"], ShouldBeTrue)
			})
		})

		Convey("When scraping metrics after a request", func() {
			_ = do(router, http.MethodGet, "/stats")
			rec := do(router, http.MethodGet, "/metrics")

			Convey("Then HTTP request metrics are exposed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "rankview_http_requests_total")
			})
		})

		Convey("When checking health", func() {
			rec := do(router, http.MethodGet, "/healthz")

			Convey("Then it responds", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestErrorHelpers(t *testing.T) {
	Convey("Given API errors", t, func() {
		cause := errors.New("invalid page")

		Convey("Then kinds and causes both match", func() {
			err := api.WrapKind("api.query", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "bad request: invalid page")
		})

		Convey("Then NewKind has no cause", func() {
			err := api.NewKind("api.query", api.ErrUnavailable)
			So(err.Error(), ShouldEqual, "service unavailable")
			var apiErr *api.Error
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Op, ShouldEqual, "api.query")
		})

		Convey("Then Wrap marks errors internal and keeps nil", func() {
			So(api.Wrap("op", nil), ShouldBeNil)
			So(errors.Is(api.Wrap("op", cause), api.ErrInternal), ShouldBeTrue)
			So(strings.HasSuffix(api.Wrap("op", cause).Error(), "invalid page"), ShouldBeTrue)
		})
	})
}
