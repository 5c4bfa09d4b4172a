package resp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ncobase/recordlist/ecode"
	"github.com/ncobase/recordlist/linkhandler"
	"github.com/ncobase/recordlist/store"
)

func TestSuccessPayload(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]any{"uid": 7})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["uid"] != float64(7) {
		t.Errorf("body = %v", body)
	}
}

func TestSuccessMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, "done")

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "done" {
		t.Errorf("body = %v", body)
	}
}

func TestFailDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, &Exception{Code: ecode.NotFound})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
	var body Exception
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != ecode.NotFound || body.Message != ecode.Text(ecode.NotFound) {
		t.Errorf("body = %+v", body)
	}
}

func TestFromErrorTaxonomy(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   int
	}{
		{fmt.Errorf("page: %w", store.ErrNotFound), http.StatusNotFound, ecode.NotFound},
		{store.Unavailable("count", fmt.Errorf("refused")), http.StatusServiceUnavailable, ecode.CollaboratorErr},
		{fmt.Errorf("all tabs disabled: %w", linkhandler.ErrNoHandlersConfigured), http.StatusInternalServerError, ecode.ConfigErr},
		{fmt.Errorf("boom"), http.StatusInternalServerError, ecode.ServerErr},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		FromError(w, tt.err)
		if w.Code != tt.wantStatus {
			t.Errorf("FromError(%v) status = %d, want %d", tt.err, w.Code, tt.wantStatus)
		}
		var body Exception
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.Code != tt.wantCode {
			t.Errorf("FromError(%v) code = %d, want %d", tt.err, body.Code, tt.wantCode)
		}
	}
}
