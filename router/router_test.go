package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ncobase/recordlist/clipboard"
	"github.com/ncobase/recordlist/config"
	"github.com/ncobase/recordlist/linkhandler"
	"github.com/ncobase/recordlist/recordlist"
	"github.com/ncobase/recordlist/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testService(t *testing.T) *Service {
	t.Helper()
	schemas := store.SchemasFromConfig(config.DefaultTables())
	ms := store.NewMemStore(schemas)
	ms.Insert("pages", store.Row{Uid: 1, Pid: 0, Fields: map[string]any{"title": "Home", "sorting": 16, "hidden": 0}})
	ms.Insert("tt_content", store.Row{Uid: 10, Pid: 1, Fields: map[string]any{"header": "Welcome", "sorting": 16, "hidden": 0, "sys_language_uid": 0}})
	ms.Insert("tt_content", store.Row{Uid: 11, Pid: 1, Fields: map[string]any{"header": "News", "sorting": 32, "hidden": 0, "sys_language_uid": 0}})

	fs := &store.MemFS{Items: map[string]store.FSItem{
		"/media/":         {Identifier: "/media/", Name: "media", Folder: true},
		"/media/logo.png": {Identifier: "/media/logo.png", Name: "logo.png", Extension: "png", UID: 3},
	}}

	registry, err := linkhandler.NewRegistry(config.DefaultHandlers(), map[string]linkhandler.Factory{
		"page":   func() linkhandler.Handler { return linkhandler.NewPageHandler(ms, schemas) },
		"file":   func() linkhandler.Handler { return linkhandler.NewFileHandler(fs) },
		"folder": func() linkhandler.Handler { return linkhandler.NewFolderHandler(fs) },
		"url":    func() linkhandler.Handler { return linkhandler.NewURLHandler() },
		"mail":   func() linkhandler.Handler { return linkhandler.NewMailHandler() },
	})
	if err != nil {
		t.Fatal(err)
	}

	return &Service{
		Engine:   recordlist.NewEngine(ms, schemas, &store.StaticPermissions{}, nil),
		Registry: registry,
		Browser:  &config.Browser{Handlers: config.DefaultHandlers()},
		Clips:    clipboard.NewMemStore(),
	}
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: bad JSON %q: %v", method, target, w.Body.String(), err)
	}
	return w, out
}

func TestListEndpoint(t *testing.T) {
	h := New(testService(t))

	w, body := doJSON(t, h, http.MethodGet, "/list?table=tt_content&pid=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %v", w.Code, body)
	}
	if body["table"] != "tt_content" {
		t.Errorf("table = %v", body["table"])
	}
	rows, _ := body["rows"].([]any)
	if len(rows) != 2 {
		t.Errorf("rows = %v", body["rows"])
	}
	if w.Header().Get("X-Trace-Id") == "" {
		t.Error("no trace id header")
	}
}

func TestListUnknownTable(t *testing.T) {
	h := New(testService(t))
	w, _ := doJSON(t, h, http.MethodGet, "/list?table=nope&pid=1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestListWholePage(t *testing.T) {
	h := New(testService(t))
	w, body := doJSON(t, h, http.MethodGet, "/list?pid=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	tables, _ := body["tables"].([]any)
	if len(tables) != 1 {
		t.Errorf("tables = %v", body["tables"])
	}
}

func TestBrowseEndpoint(t *testing.T) {
	h := New(testService(t))

	w, body := doJSON(t, h, http.MethodGet, "/browse?currentLink=t3%3A%2F%2Fpage%3Fuid%3D1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %v", w.Code, body)
	}
	if body["active"] != "page" {
		t.Errorf("active = %v", body["active"])
	}
	menu, _ := body["menu"].([]any)
	if len(menu) != 5 {
		t.Errorf("menu = %v", body["menu"])
	}
}

func TestClipboardFlow(t *testing.T) {
	h := New(testService(t))

	w, body := doJSON(t, h, http.MethodGet, "/clipboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	session, _ := body["session"].(string)
	if session == "" {
		t.Fatal("no session issued")
	}

	w, _ = doJSON(t, h, http.MethodPost, "/clipboard/select",
		`{"session":"`+session+`","table":"tt_content","uid":10,"op":"cut"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("select status = %d", w.Code)
	}

	// The listing must reflect the stored selection.
	w, body = doJSON(t, h, http.MethodGet, "/list?table=tt_content&pid=1&clip="+session, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	rows, _ := body["rows"].([]any)
	first, _ := rows[0].(map[string]any)
	clip, _ := first["clip"].(map[string]any)
	if clip == nil || clip["cut_selected"] != true {
		t.Errorf("clip panel = %v", first["clip"])
	}
}

func TestClipboardBadPad(t *testing.T) {
	h := New(testService(t))
	w, _ := doJSON(t, h, http.MethodPost, "/clipboard/pad", `{"session":"s1","pad":9}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	h := New(testService(t))

	req := httptest.NewRequest(http.MethodGet, "/list/export?table=tt_content&pid=1&fields=header", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 || lines[0] != "uid,header" {
		t.Errorf("csv = %q", w.Body.String())
	}
}
