package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRecoverAnswers500(t *testing.T) {
	e := echo.New()
	e.Use(Recover(nil))
	e.GET("/boom", func(echo.Context) error { panic("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestMetricsPassesThroughAndHandlesErrors(t *testing.T) {
	e := echo.New()
	e.Use(Metrics(nil, time.Second))
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/err", func(echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "tea") })
	e.GET("/plain", func(echo.Context) error { return errors.New("plain") })

	cases := map[string]int{"/ok": http.StatusOK, "/err": http.StatusTeapot, "/plain": http.StatusInternalServerError}
	for path, want := range cases {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Fatalf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{101: "1xx", 200: "2xx", 304: "3xx", 404: "4xx", 503: "5xx"}
	for code, want := range cases {
		if got := statusClass(code); got != want {
			t.Fatalf("%d: expected %s, got %s", code, want, got)
		}
	}
}
