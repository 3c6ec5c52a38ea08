package storage

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// testKey is a syntactically valid (base64) account key for signing tests.
var testKey = base64.StdEncoding.EncodeToString([]byte("not-a-real-account-key"))

func testConnectionString() string {
	return "DefaultEndpointsProtocol=https;AccountName=infolder;AccountKey=" + testKey + ";EndpointSuffix=core.windows.net"
}

func TestParseAccountInfo(t *testing.T) {
	tests := []struct {
		name       string
		conn       string
		wantName   string
		wantSuffix string
		wantErr    bool
	}{
		{
			name:       "full connection string",
			conn:       testConnectionString(),
			wantName:   "infolder",
			wantSuffix: "core.windows.net",
		},
		{
			name:       "default endpoint suffix",
			conn:       "AccountName=acct;AccountKey=" + testKey,
			wantName:   "acct",
			wantSuffix: "core.windows.net",
		},
		{
			name:    "missing account key",
			conn:    "AccountName=acct;EndpointSuffix=core.windows.net",
			wantErr: true,
		},
		{
			name:    "empty",
			conn:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := parseAccountInfo(tt.conn)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if info.name != tt.wantName {
				t.Errorf("expected account name %q, got %q", tt.wantName, info.name)
			}
			if info.endpointSuffix != tt.wantSuffix {
				t.Errorf("expected endpoint suffix %q, got %q", tt.wantSuffix, info.endpointSuffix)
			}
		})
	}
}

func TestParseAccountInfo_KeyWithBase64Padding(t *testing.T) {
	info, err := parseAccountInfo("AccountName=acct;AccountKey=abc==;EndpointSuffix=core.windows.net")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.key != "abc==" {
		t.Errorf("expected key to keep trailing padding, got %q", info.key)
	}
}

func TestNewService_EmptyConnectionString(t *testing.T) {
	if _, err := NewService(""); err == nil {
		t.Error("expected error for empty connection string")
	}
}

func TestReadSASURL(t *testing.T) {
	svc, err := NewService(testConnectionString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := svc.ReadSASURL("shahulin", "agricultural_leasing_normal.mp3", 240*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(u, "https://infolder.blob.core.windows.net/shahulin/agricultural_leasing_normal.mp3?") {
		t.Errorf("unexpected SAS URL prefix: %s", u)
	}
	for _, param := range []string{"sig=", "se=", "st=", "sp="} {
		if !strings.Contains(u, param) {
			t.Errorf("expected SAS URL to contain %q: %s", param, u)
		}
	}
}

func TestVerifySASURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD request, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Content-Length", "123456")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	check, err := VerifySASURL(context.Background(), srv.Client(), srv.URL+"/container/blob.mp3?sig=x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !check.OK() {
		t.Errorf("expected OK check, got status %d", check.StatusCode)
	}
	if check.ContentType != "audio/mpeg" {
		t.Errorf("expected content type audio/mpeg, got %s", check.ContentType)
	}
	if check.ContentLength != 123456 {
		t.Errorf("expected content length 123456, got %d", check.ContentLength)
	}
}

func TestVerifySASURL_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	check, err := VerifySASURL(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.OK() {
		t.Error("expected check to report not OK for 404")
	}
}
