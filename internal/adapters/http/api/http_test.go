package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/gully/internal/adapters/http/api"
	"github.com/okian/gully/internal/domain/report"
	"github.com/okian/gully/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockService struct {
	descriptors []types.Descriptor
	tables      map[string]report.Table
	order       []string
	listErr     error
	reportErr   error
	buildErr    error
	reloaded    bool
	refreshErr  error
}

func (m *mockService) Reports(ctx context.Context) ([]types.Descriptor, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.descriptors, nil
}

func (m *mockService) Report(ctx context.Context, name string) (report.Table, error) {
	if m.reportErr != nil {
		return report.Table{}, m.reportErr
	}
	tbl, ok := m.tables[name]
	if !ok {
		return report.Table{}, fmt.Errorf("%s: %w", name, report.ErrUnknownReport)
	}
	return tbl, nil
}

func (m *mockService) BuildAll(ctx context.Context) ([]report.Table, error) {
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	out := make([]report.Table, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.tables[name])
	}
	return out, nil
}

func (m *mockService) Refresh(ctx context.Context) (bool, error) {
	if m.refreshErr != nil {
		return false, m.refreshErr
	}
	return m.reloaded, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMockService() *mockService {
	return &mockService{
		descriptors: []types.Descriptor{
			{Name: "matches_per_season", Title: "Matches per season", Section: "overview", Kind: "bar", Available: true},
			{Name: "top_run_scorers", Title: "Top run scorers", Section: "players", Kind: "bar", Available: true},
		},
		tables: map[string]report.Table{
			"matches_per_season": {
				Name:    "matches_per_season",
				Title:   "Matches per season",
				Section: "overview",
				Kind:    "bar",
				Rows:    []report.Row{{Label: "2008", Value: 58}, {Label: "2009", Value: 57}},
			},
			"top_run_scorers": {
				Name:    "top_run_scorers",
				Title:   "Top run scorers",
				Section: "players",
				Kind:    "bar",
				Rows:    []report.Row{{Label: "V Kohli", Value: 5434}},
			},
		},
		order: []string{"matches_per_season", "top_run_scorers"},
	}
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := newMockService()
		statsProvider := &mockStatsProvider{stats: map[string]interface{}{"matches": 3}}
		server := api.NewServer(deps, statsProvider)
		mux := http.NewServeMux()

		Convey("When registering routes", func() {
			server.Register(context.Background(), mux)

			Convey("Then all expected routes should be registered", func() {
				So(mux, ShouldNotBeNil)
			})

			Convey("And health endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/healthz", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And stats endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/stats", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And reports endpoint should list the catalog", func() {
				req := httptest.NewRequest("GET", "/reports", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var listed []types.Descriptor
				err := json.NewDecoder(w.Body).Decode(&listed)
				So(err, ShouldBeNil)
				So(len(listed), ShouldEqual, 2)
			})

			Convey("And report endpoint should serve a single report", func() {
				req := httptest.NewRequest("GET", "/reports/top_run_scorers", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And insights endpoint should serve the full bundle", func() {
				req := httptest.NewRequest("GET", "/insights", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var tables []report.Table
				err := json.NewDecoder(w.Body).Decode(&tables)
				So(err, ShouldBeNil)
				So(len(tables), ShouldEqual, 2)
			})

			Convey("And refresh endpoint should accept POST", func() {
				req := httptest.NewRequest("POST", "/refresh", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And root endpoint should catch everything else", func() {
				req := httptest.NewRequest("GET", "/unknown", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And dashboard endpoint should serve HTML with refresh control", func() {
				req := httptest.NewRequest("GET", "/dashboard", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, "id=\"refresh\"")
				So(body, ShouldContainSubstring, "fetch(\"/insights\")")
			})
		})
	})
}

func TestReportsHandler_HandleListReports(t *testing.T) {
	Convey("Given a reports handler", t, func() {
		deps := newMockService()
		handler := api.NewReportsHandler(deps)

		Convey("When listing reports", func() {
			req := httptest.NewRequest("GET", "/reports", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return every descriptor", func() {
				handler.HandleListReports(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var listed []types.Descriptor
				err := json.NewDecoder(w.Body).Decode(&listed)
				So(err, ShouldBeNil)
				So(len(listed), ShouldEqual, 2)
				So(listed[0].Name, ShouldEqual, "matches_per_season")
				So(listed[1].Name, ShouldEqual, "top_run_scorers")
			})
		})

		Convey("When the listing fails", func() {
			deps.listErr = fmt.Errorf("dataset not loaded")
			req := httptest.NewRequest("GET", "/reports", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return internal server error", func() {
				handler.HandleListReports(w, req)
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When handling a non-GET request", func() {
			req := httptest.NewRequest("POST", "/reports", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandleListReports(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestReportsHandler_HandleGetReport(t *testing.T) {
	Convey("Given a reports handler", t, func() {
		deps := newMockService()
		handler := api.NewReportsHandler(deps)

		Convey("When requesting an existing report", func() {
			req := httptest.NewRequest("GET", "/reports/matches_per_season", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return the report table", func() {
				handler.HandleGetReport(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var tbl report.Table
				err := json.NewDecoder(w.Body).Decode(&tbl)
				So(err, ShouldBeNil)
				So(tbl.Name, ShouldEqual, "matches_per_season")
				So(len(tbl.Rows), ShouldEqual, 2)
				So(tbl.Rows[0].Label, ShouldEqual, "2008")
			})
		})

		Convey("When requesting an unknown report", func() {
			req := httptest.NewRequest("GET", "/reports/bogus", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandleGetReport(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Code, ShouldEqual, "not_found")
			})
		})

		Convey("When the report is missing a source column", func() {
			deps.reportErr = fmt.Errorf("top_wicket_takers: %w: missing columns [is_wicket]", report.ErrUnavailable)
			req := httptest.NewRequest("GET", "/reports/top_wicket_takers", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return unprocessable entity", func() {
				handler.HandleGetReport(w, req)
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Code, ShouldEqual, "unavailable")
				So(response.Message, ShouldContainSubstring, "is_wicket")
			})
		})

		Convey("When the path has no report name", func() {
			req := httptest.NewRequest("GET", "/reports/", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleGetReport(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the path has extra segments", func() {
			req := httptest.NewRequest("GET", "/reports/a/b", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleGetReport(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the build fails for another reason", func() {
			deps.reportErr = fmt.Errorf("disk on fire")
			req := httptest.NewRequest("GET", "/reports/matches_per_season", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return internal server error", func() {
				handler.HandleGetReport(w, req)
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestReportsHandler_HandleGetInsights(t *testing.T) {
	Convey("Given a reports handler", t, func() {
		deps := newMockService()
		handler := api.NewReportsHandler(deps)

		Convey("When requesting the insights bundle", func() {
			req := httptest.NewRequest("GET", "/insights", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return every available report in order", func() {
				handler.HandleGetInsights(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var tables []report.Table
				err := json.NewDecoder(w.Body).Decode(&tables)
				So(err, ShouldBeNil)
				So(len(tables), ShouldEqual, 2)
				So(tables[0].Name, ShouldEqual, "matches_per_season")
				So(tables[1].Name, ShouldEqual, "top_run_scorers")
			})
		})

		Convey("When the build fails", func() {
			deps.buildErr = errors.New("dataset not loaded")
			req := httptest.NewRequest("GET", "/insights", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return internal server error", func() {
				handler.HandleGetInsights(w, req)
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestRefreshHandler_HandlePostRefresh(t *testing.T) {
	Convey("Given a refresh handler", t, func() {
		deps := newMockService()
		handler := api.NewRefreshHandler(deps)

		Convey("When the dataset changed on disk", func() {
			deps.reloaded = true
			req := httptest.NewRequest("POST", "/refresh", nil)
			w := httptest.NewRecorder()

			Convey("Then it should report a reload", func() {
				handler.HandlePostRefresh(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response refreshResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Status, ShouldEqual, "reloaded")
				So(response.Reloaded, ShouldBeTrue)
			})
		})

		Convey("When the dataset is unchanged", func() {
			deps.reloaded = false
			req := httptest.NewRequest("POST", "/refresh", nil)
			w := httptest.NewRecorder()

			Convey("Then it should report no change", func() {
				handler.HandlePostRefresh(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response refreshResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Status, ShouldEqual, "unchanged")
				So(response.Reloaded, ShouldBeFalse)
			})
		})

		Convey("When refresh is disabled upstream", func() {
			deps.refreshErr = errors.New("refresh disabled")
			req := httptest.NewRequest("POST", "/refresh", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return forbidden status", func() {
				handler.HandlePostRefresh(w, req)
				So(w.Code, ShouldEqual, http.StatusForbidden)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Code, ShouldEqual, "refresh_disabled")
			})
		})

		Convey("When refresh fails for another reason", func() {
			deps.refreshErr = errors.New("matches source missing")
			req := httptest.NewRequest("POST", "/refresh", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return internal server error", func() {
				handler.HandlePostRefresh(w, req)
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When handling a non-POST request", func() {
			req := httptest.NewRequest("GET", "/refresh", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandlePostRefresh(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler", t, func() {
		handler := api.NewHealthHandler()

		Convey("When handling health check request", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return OK status", func() {
				handler.HandleHealth(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		mockStats := &mockStatsProvider{
			stats: map[string]interface{}{
				"matches":    636,
				"deliveries": 150460,
			},
		}
		handler := api.NewStatsHandler(mockStats)

		Convey("When handling stats request", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return stats", func() {
				handler.HandleStats(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response map[string]interface{}
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response["matches"], ShouldEqual, 636)
				So(response["deliveries"], ShouldEqual, 150460)
			})
		})
	})
}

// Local types for testing
type refreshResponse struct {
	Status   string `json:"status"`
	Reloaded bool   `json:"reloaded"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
