package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080", "test-key", "test-model", 30*time.Second)
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.BaseURL != "http://localhost:8080" {
		t.Errorf("NewClient() BaseURL = %v, want http://localhost:8080", client.BaseURL)
	}
	if client.Model != "test-model" {
		t.Errorf("NewClient() Model = %v, want test-model", client.Model)
	}
}

func TestClient_Generate(t *testing.T) {
	tests := []struct {
		name       string
		params     GenerateParams
		serverResp func(t *testing.T, w http.ResponseWriter, r *http.Request)
		want       string
		wantErr    bool
		wantStatus int
	}{
		{
			name:   "successful completion",
			params: GenerateParams{Temperature: 0.7, MaxTokens: 4000},
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/v1/chat/completions" {
					t.Errorf("expected /v1/chat/completions, got %s", r.URL.Path)
				}
				var req ChatRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("decode request: %v", err)
				}
				if req.Temperature != 0.7 {
					t.Errorf("temperature = %v, want 0.7", req.Temperature)
				}
				if req.MaxTokens != 4000 {
					t.Errorf("max_tokens = %v, want 4000", req.MaxTokens)
				}
				if req.ResponseFormat != nil {
					t.Error("Generate should not set response_format")
				}

				resp := ChatResponse{
					Choices: []ChatChoice{
						{Message: ChatChoiceMessage{Role: "assistant", Content: "generated text"}},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			want: "generated text",
		},
		{
			name:   "server error status surfaced",
			params: GenerateParams{},
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model overloaded", http.StatusServiceUnavailable)
			},
			wantErr:    true,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:   "empty choices",
			params: GenerateParams{},
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(ChatResponse{})
			},
			wantErr: true,
		},
		{
			name:   "malformed response body",
			params: GenerateParams{},
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.serverResp(t, w, r)
			}))
			defer server.Close()

			client := NewClient(server.URL, "test-key", "test-model", 5*time.Second)
			got, err := client.Generate(context.Background(), "prompt", tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var genErr *GenerationError
				if !errors.As(err, &genErr) {
					t.Fatalf("Generate() error = %T, want GenerationError", err)
				}
				if tt.wantStatus != 0 && genErr.Status != tt.wantStatus {
					t.Errorf("GenerationError.Status = %d, want %d", genErr.Status, tt.wantStatus)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_GenerateJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("response_format = %+v, want json_object", req.ResponseFormat)
		}

		resp := ChatResponse{
			Choices: []ChatChoice{
				{Message: ChatChoiceMessage{Role: "assistant", Content: `{"questions":[]}`}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model", 5*time.Second)
	got, err := client.GenerateJSON(context.Background(), "prompt", GenerateParams{Temperature: 0.5, MaxTokens: 2000})
	if err != nil {
		t.Fatalf("GenerateJSON() error = %v", err)
	}
	if got != `{"questions":[]}` {
		t.Errorf("GenerateJSON() = %q", got)
	}
}

func TestClient_Generate_TransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "key", "model", 500*time.Millisecond)
	_, err := client.Generate(context.Background(), "prompt", GenerateParams{})
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Generate() error = %T, want GenerationError", err)
	}
	if genErr.Status != 0 {
		t.Errorf("transport failure Status = %d, want 0", genErr.Status)
	}
}
