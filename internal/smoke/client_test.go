package smoke

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func apiStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request payload: %v", err)
		}
		if req.Filename == "" || req.FileID == "" {
			t.Error("expected filename and fileid in payload")
		}

		resp := Response{
			Success:          true,
			Transcript:       "thank you for calling",
			TranscriptLength: 21,
			DBStorage:        &DBStorage{Success: true, ParagraphsProcessed: 3},
		}
		if r.URL.Path == PathTranscribeV2 {
			resp.FileSize = 987654
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestTranscribe(t *testing.T) {
	srv := apiStub(t)
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second)
	resp, err := c.Transcribe(context.Background(), "business_investment_account_(mudarabah)_neutral.mp3", "smoke_test_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := resp.Validate(false); err != nil {
		t.Errorf("expected valid v1 response: %v", err)
	}
	if resp.FileSize != 0 {
		t.Errorf("expected no file_size from v1, got %d", resp.FileSize)
	}
}

func TestTranscribeV2(t *testing.T) {
	srv := apiStub(t)
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second)
	resp, err := c.TranscribeV2(context.Background(), "business_investment_account_(mudarabah)_neutral.mp3", "file_size_test_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := resp.Validate(true); err != nil {
		t.Errorf("expected valid v2 response: %v", err)
	}
	if resp.FileSize != 987654 {
		t.Errorf("expected file_size 987654, got %d", resp.FileSize)
	}
}

func TestTranscribe_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second)
	if _, err := c.Transcribe(context.Background(), "f.mp3", "id"); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestResponse_Validate(t *testing.T) {
	tests := []struct {
		name            string
		resp            Response
		requireFileSize bool
		wantErr         bool
	}{
		{
			name: "valid v1",
			resp: Response{
				Success:          true,
				TranscriptLength: 10,
				DBStorage:        &DBStorage{Success: true, ParagraphsProcessed: 2},
			},
		},
		{
			name: "valid v2",
			resp: Response{
				Success:          true,
				TranscriptLength: 10,
				FileSize:         100,
				DBStorage:        &DBStorage{Success: true, ParagraphsProcessed: 2},
			},
			requireFileSize: true,
		},
		{
			name: "failure flag",
			resp: Response{
				Success:          false,
				Error:            "blob not found",
				TranscriptLength: 10,
				DBStorage:        &DBStorage{Success: true},
			},
			wantErr: true,
		},
		{
			name: "empty transcript",
			resp: Response{
				Success:   true,
				DBStorage: &DBStorage{Success: true},
			},
			wantErr: true,
		},
		{
			name: "missing db storage",
			resp: Response{
				Success:          true,
				TranscriptLength: 10,
			},
			wantErr: true,
		},
		{
			name: "db storage failed",
			resp: Response{
				Success:          true,
				TranscriptLength: 10,
				DBStorage:        &DBStorage{Success: false},
			},
			wantErr: true,
		},
		{
			name: "no paragraphs stored",
			resp: Response{
				Success:          true,
				TranscriptLength: 10,
				DBStorage:        &DBStorage{Success: true},
			},
			wantErr: true,
		},
		{
			name: "missing file size on v2",
			resp: Response{
				Success:          true,
				TranscriptLength: 10,
				DBStorage:        &DBStorage{Success: true},
			},
			requireFileSize: true,
			wantErr:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.Validate(tt.requireFileSize)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	srv := apiStub(t)
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second)
	cmp := c.Compare(context.Background(), "call.mp3", "compare_test_1")

	if !cmp.V1.Passed(false) {
		t.Errorf("expected v1 to pass: %v", cmp.V1.Err)
	}
	if !cmp.V2.Passed(true) {
		t.Errorf("expected v2 to pass: %v", cmp.V2.Err)
	}
	if cmp.V1.Elapsed <= 0 || cmp.V2.Elapsed <= 0 {
		t.Error("expected per-endpoint timings to be recorded")
	}
}

func TestCompare_UnreachableAPI(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second)
	cmp := c.Compare(context.Background(), "call.mp3", "compare_test_2")

	if cmp.V1.Passed(false) || cmp.V2.Passed(true) {
		t.Error("expected both endpoints to fail against unreachable API")
	}
	if cmp.V1.Err == nil || cmp.V2.Err == nil {
		t.Error("expected errors for unreachable API")
	}
}
