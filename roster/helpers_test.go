package roster

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roster-app-go/models"
)

func makeRecords(n int) []models.RosterRecord {
	records := make([]models.RosterRecord, n)
	for i := range records {
		records[i] = models.RosterRecord{
			ID:    fmt.Sprintf("%d", i+1),
			NIM:   fmt.Sprintf("2225050%02d", i+1),
			Nama:  fmt.Sprintf("Mahasiswa %d", i+1),
			Kelas: "SI-5A",
		}
	}
	return records
}

func recordsJSON(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"id":"%d","nim":"2225050%02d","nama":"Mahasiswa %d","kelas":"SI-5A","points":null}`, i+1, i+1, i+1)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}
