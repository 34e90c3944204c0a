package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorClassification(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		Convey("Then they map to error types and severities", func() {
			So(getErrorType(500), ShouldEqual, "server_error")
			So(getErrorType(405), ShouldEqual, "method_not_allowed")
			So(getErrorType(404), ShouldEqual, "not_found")
			So(getErrorType(400), ShouldEqual, "client_error")
			So(getErrorType(200), ShouldEqual, "unknown")
			So(getErrorSeverity(503), ShouldEqual, "high")
			So(getErrorSeverity(400), ShouldEqual, "medium")
			So(getErrorSeverity(302), ShouldEqual, "low")
		})
	})
}

func TestNormalizeRequestID(t *testing.T) {
	Convey("Given incoming request ids", t, func() {
		Convey("Then blanks and header-splitting values are dropped", func() {
			So(normalizeRequestID("  "), ShouldEqual, "")
			So(normalizeRequestID("a\r\nb"), ShouldEqual, "")
			So(normalizeRequestID(" id-1 "), ShouldEqual, "id-1")
		})

		Convey("And long values are truncated", func() {
			So(len(normalizeRequestID(strings.Repeat("x", 300))), ShouldEqual, maxRequestIDLen)
		})
	})
}

func TestResponseWriter(t *testing.T) {
	Convey("Given a wrapped recorder", t, func() {
		rec := httptest.NewRecorder()
		rw := wrapWriter(rec)

		Convey("When the header is written twice", func() {
			rw.WriteHeader(http.StatusBadRequest)
			rw.WriteHeader(http.StatusOK)

			Convey("Then the first status is kept", func() {
				So(rw.statusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When hijacking a writer that cannot hijack", func() {
			_, _, err := rw.Hijack()

			Convey("Then ErrHijack is returned", func() {
				So(err, ShouldEqual, ErrHijack)
			})
		})

		Convey("Then Unwrap exposes the recorder", func() {
			So(rw.Unwrap(), ShouldEqual, rec)
		})
	})
}
