package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/gorilla/websocket"
	"github.com/xuri/excelize/v2"
	"roster-app-go/db"
	"roster-app-go/models"
	"roster-app-go/roster"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func recordsJSON(n int) string {
	parts := make([]string, n)
	for i := range parts {
		points := "null"
		if i%2 == 1 {
			points = fmt.Sprintf(`"%d"`, 70+i)
		}
		parts[i] = fmt.Sprintf(`{"id":"%d","nim":"2225050%02d","nama":"Mahasiswa %d","kelas":"SI-5A","points":%s}`, i+1, i+1, i+1, points)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// upstream fakes the remote roster endpoint
func upstream(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

type testApp struct {
	srv    *httptest.Server
	client *http.Client
}

func newTestApp(t *testing.T, rosterURL string) *testApp {
	t.Helper()
	screen := roster.NewScreen(roster.NewClient(rosterURL, 5*time.Second))
	router, err := NewRouter(screen, db.NewMemoryTaskStore(), sessions.NewCookieStore([]byte("test-secret")))
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &testApp{srv: srv, client: &http.Client{Jar: jar, Timeout: 10 * time.Second}}
}

func (a *testApp) do(t *testing.T, method, path string, body io.Reader, contentType string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, a.srv.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(b)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, body string) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return env
}

func TestGetRosterSuccess(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{"status":"success","data":`+recordsJSON(15)+`}`))

	resp, body := app.do(t, http.MethodGet, "/api/roster", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	env := decodeEnvelope(t, body)
	var snap roster.Snapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.State != roster.PhaseSuccess || len(snap.Records) != roster.SampleSize {
		t.Fatalf("snapshot = %+v", snap)
	}
	for _, r := range snap.Records {
		if r.Points == "" {
			t.Errorf("record %s has empty points", r.ID)
		}
	}
}

func TestGetRosterErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   []string
	}{
		{"bad status", http.StatusInternalServerError, "", []string{"500", "Internal Server Error"}},
		{"status fail", http.StatusOK, `{"status":"fail"}`, []string{roster.MessageInvalidFormat}},
		{"data not array", http.StatusOK, `{"status":"success","data":"not-an-array"}`, []string{roster.MessageInvalidFormat}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t, upstream(t, tc.status, tc.body))
			resp, body := app.do(t, http.MethodGet, "/api/roster", nil, "")
			if resp.StatusCode != http.StatusBadGateway {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			env := decodeEnvelope(t, body)
			if env.Success {
				t.Fatal("success = true")
			}
			for _, w := range tc.want {
				if !strings.Contains(env.Error, w) {
					t.Errorf("error %q lacks %q", env.Error, w)
				}
			}
		})
	}
}

func TestRosterScreenStaticRendersTenRows(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{"status":"success","data":`+recordsJSON(15)+`}`))

	resp, body := app.do(t, http.MethodGet, "/screens/api-data?mode=static", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if n := strings.Count(body, `class="list-item"`); n != roster.SampleSize {
		t.Fatalf("rendered %d rows, want %d", n, roster.SampleSize)
	}

	var source []models.RosterRecord
	if err := json.Unmarshal([]byte(recordsJSON(15)), &source); err != nil {
		t.Fatal(err)
	}
	matched := 0
	for _, r := range source {
		if strings.Contains(body, "NIM: "+r.NIM+"<") {
			matched++
			if !strings.Contains(body, "Nama: "+r.Nama+"<") {
				t.Errorf("row for %s lacks its name", r.NIM)
			}
		}
	}
	if matched != roster.SampleSize {
		t.Errorf("matched %d source records, want %d", matched, roster.SampleSize)
	}
	if strings.Contains(body, "new WebSocket") {
		t.Error("static page should not open a socket")
	}
}

func TestRosterScreenStaticShowsError(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{"status":"success","data":[]}`))

	_, body := app.do(t, http.MethodGet, "/screens/api-data?mode=static", nil, "")
	if !strings.Contains(body, `class="error-text">`+roster.MessageInvalidFormat) {
		t.Fatalf("error message not rendered: %s", body)
	}
}

func TestRosterScreenDefaultShowsLoading(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{}`))

	_, body := app.do(t, http.MethodGet, "/screens/api-data", nil, "")
	if !strings.Contains(body, `class="spinner"`) {
		t.Error("loading indicator missing")
	}
	if !strings.Contains(body, "/ws/roster") {
		t.Error("socket script missing")
	}
}

func TestRosterSocketPushesStates(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{"status":"success","data":`+recordsJSON(12)+`}`))

	wsURL := "ws" + strings.TrimPrefix(app.srv.URL, "http") + "/ws/roster"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first, second roster.Snapshot
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read first: %v", err)
	}
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if first.State != roster.PhaseLoading {
		t.Errorf("first state = %s", first.State)
	}
	if second.State != roster.PhaseSuccess || len(second.Records) != roster.SampleSize {
		t.Errorf("second = %+v", second)
	}
}

func TestExportRoster(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{"status":"success","data":`+recordsJSON(3)+`}`))

	resp, body := app.do(t, http.MethodGet, "/api/roster/export.xlsx", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	f, err := excelize.OpenReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(roster.SheetName)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
}

func TestTasksAPI(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{}`))

	resp, body := app.do(t, http.MethodPost, "/api/tasks", strings.NewReader(`{"text":"   "}`), "application/json")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank task status = %d", resp.StatusCode)
	}

	for _, text := range []string{"belajar Go", "kerjakan laporan"} {
		resp, body = app.do(t, http.MethodPost, "/api/tasks", strings.NewReader(`{"text":"`+text+`"}`), "application/json")
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add status = %d: %s", resp.StatusCode, body)
		}
	}

	resp, body = app.do(t, http.MethodDelete, "/api/tasks/0", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	_, body = app.do(t, http.MethodGet, "/api/tasks", nil, "")
	var tasks []models.Task
	if err := json.Unmarshal(decodeEnvelope(t, body).Data, &tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Text != "kerjakan laporan" || tasks[0].Index != 0 {
		t.Fatalf("tasks = %+v", tasks)
	}

	if resp, _ = app.do(t, http.MethodDelete, "/api/tasks/5", nil, ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing task status = %d", resp.StatusCode)
	}
	if resp, _ = app.do(t, http.MethodDelete, "/api/tasks/x", nil, ""); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad index status = %d", resp.StatusCode)
	}
}

func TestTasksAreScopedToSession(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{}`))
	app.do(t, http.MethodPost, "/api/tasks", strings.NewReader(`{"text":"milik saya"}`), "application/json")

	other := &http.Client{Timeout: 5 * time.Second}
	resp, err := other.Get(app.srv.URL + "/api/tasks")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(b), "milik saya") {
		t.Fatal("task visible to another session")
	}
}

func TestHomeFormFlow(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{}`))

	form := url.Values{"text": {"Tugas <pertama>"}}
	resp, body := app.do(t, http.MethodPost, "/screens/home/tasks", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if resp.StatusCode != http.StatusOK || resp.Request.URL.Path != "/screens/home" {
		t.Fatalf("after add: %d %s", resp.StatusCode, resp.Request.URL.Path)
	}
	if !strings.Contains(body, "Tugas &lt;pertama&gt;") {
		t.Fatal("task not listed on home screen")
	}
	for _, want := range []string{"M. Firmansyah", "NIM: 222505011", "Tambah Tugas", "Hapus"} {
		if !strings.Contains(body, want) {
			t.Errorf("home lacks %q", want)
		}
	}

	_, body = app.do(t, http.MethodPost, "/screens/home/tasks/0/delete", bytes.NewReader(nil), "application/x-www-form-urlencoded")
	if strings.Contains(body, "Tugas &lt;pertama&gt;") {
		t.Fatal("task still listed after delete")
	}

	// Out of range deletes are ignored
	resp, _ = app.do(t, http.MethodPost, "/screens/home/tasks/3/delete", bytes.NewReader(nil), "application/x-www-form-urlencoded")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestStaticScreensAndNavigation(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{}`))

	_, body := app.do(t, http.MethodGet, "/screens/about", nil, "")
	if !strings.Contains(body, "Tentang Saya") {
		t.Error("about screen title missing")
	}
	for _, link := range []string{"/screens/home", "/screens/about", "/screens/hobbies", "/screens/api-data"} {
		if !strings.Contains(body, `href="`+link+`"`) {
			t.Errorf("drawer lacks %s", link)
		}
	}

	_, body = app.do(t, http.MethodGet, "/screens/hobbies", nil, "")
	if !strings.Contains(body, "3. Menonton Film") {
		t.Error("hobbies missing")
	}

	resp, _ := app.do(t, http.MethodGet, "/screens/settings", nil, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown screen status = %d", resp.StatusCode)
	}
	resp, body = app.do(t, http.MethodGet, "/api/nothing", nil, "")
	if resp.StatusCode != http.StatusNotFound || decodeEnvelope(t, body).Success {
		t.Errorf("unknown api path: %d %s", resp.StatusCode, body)
	}

	app.client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, _ = app.do(t, http.MethodGet, "/", nil, "")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/screens/home" {
		t.Errorf("index: %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestPing(t *testing.T) {
	app := newTestApp(t, upstream(t, http.StatusOK, `{}`))
	resp, body := app.do(t, http.MethodGet, "/api/ping", nil, "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Pong!") {
		t.Fatalf("ping: %d %s", resp.StatusCode, body)
	}
}
