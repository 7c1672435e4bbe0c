package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
)

func TestSearchPostsHybridSearchRequest(t *testing.T) {
	var gotPath, gotMethod string
	var gotReq models.SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(models.SearchResponse{Answer: "답변", Coverage: "암진단비"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.Search(context.Background(), models.SearchRequest{Query: "질문", LastCoverage: "뇌출혈진단비"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/hybrid-search" {
		t.Errorf("request = %s %s, want POST /api/hybrid-search", gotMethod, gotPath)
	}
	if gotReq.Query != "질문" || gotReq.LastCoverage != "뇌출혈진단비" {
		t.Errorf("forwarded request = %+v", gotReq)
	}
	if resp.Answer != "답변" || resp.Coverage != "암진단비" {
		t.Errorf("response = %+v", resp)
	}
}

func TestListEndpointsAndPathEscaping(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(map[string]any{
			"companies": []models.Company{{Name: "samsung", DisplayName: "삼성화재"}},
			"products":  []string{"암보험"},
			"coverages": []string{"암진단비"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	companies, err := c.ListCompanies(ctx)
	if err != nil {
		t.Fatalf("ListCompanies: %v", err)
	}
	if gotPath != "/api/companies" {
		t.Errorf("path = %s, want /api/companies", gotPath)
	}
	if len(companies) != 1 || companies[0].DisplayName != "삼성화재" {
		t.Errorf("companies = %+v", companies)
	}

	if _, err := c.ListProducts(ctx, "현대해상"); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if gotPath != "/api/companies/%ED%98%84%EB%8C%80%ED%95%B4%EC%83%81/products" {
		t.Errorf("path = %s, company segment not percent-encoded", gotPath)
	}

	// Separators inside names must not split the path.
	if _, err := c.ListProductCoverages(ctx, "A/B", "무배당 건강보험"); err != nil {
		t.Fatalf("ListProductCoverages: %v", err)
	}
	if gotPath != "/api/companies/A%2FB/products/%EB%AC%B4%EB%B0%B0%EB%8B%B9%20%EA%B1%B4%EA%B0%95%EB%B3%B4%ED%97%98/coverages" {
		t.Errorf("path = %s, segments not escaped", gotPath)
	}

	if _, err := c.ListCompanyCoverages(ctx, "삼성화재"); err != nil {
		t.Fatalf("ListCompanyCoverages: %v", err)
	}
	if gotPath != "/api/companies/%EC%82%BC%EC%84%B1%ED%99%94%EC%9E%AC/coverages" {
		t.Errorf("path = %s, want escaped company coverages path", gotPath)
	}

	if _, err := c.ListCoverageNames(ctx); err != nil {
		t.Fatalf("ListCoverageNames: %v", err)
	}
	if gotPath != "/api/coverages" {
		t.Errorf("path = %s, want /api/coverages", gotPath)
	}
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantCat  Category
		wantMsg  string
		wantCode int
	}{
		{"bad request with detail", 400, `{"detail": "질문이 비어 있습니다"}`, CategoryClient, "질문이 비어 있습니다", 400},
		{"bad request without detail", 400, `{}`, CategoryClient, MsgBadRequest, 400},
		{"not found", 404, `{"detail": "ignored"}`, CategoryClient, MsgNotFound, 404},
		{"internal with detail", 500, `{"detail": "stack trace"}`, CategoryServer, "stack trace", 500},
		{"internal without detail", 500, ``, CategoryServer, MsgInternal, 500},
		{"not ready ignores body", 503, `{"detail": "warming up"}`, CategoryServer, MsgNotReady, 503},
		{"other client status", 418, ``, CategoryClient, "오류가 발생했습니다 (HTTP 418)", 418},
		{"other server status", 502, ``, CategoryServer, "오류가 발생했습니다 (HTTP 502)", 502},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).ListCompanies(context.Background())
			var ce *CallError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *CallError", err)
			}
			if ce.Category != tc.wantCat {
				t.Errorf("category = %s, want %s", ce.Category, tc.wantCat)
			}
			if ce.Status != tc.wantCode {
				t.Errorf("status = %d, want %d", ce.Status, tc.wantCode)
			}
			if ce.UserMessage() != tc.wantMsg {
				t.Errorf("message = %q, want %q", ce.UserMessage(), tc.wantMsg)
			}
		})
	}
}

func TestTimeoutClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithTimeout(10*time.Millisecond))
	err := c.Health(context.Background())
	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CallError", err)
	}
	if ce.Category != CategoryTransport {
		t.Errorf("category = %s, want transport", ce.Category)
	}
	if ce.UserMessage() != MsgTimeout {
		t.Errorf("message = %q, want %q", ce.UserMessage(), MsgTimeout)
	}
}

func TestUnreachableClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url).Health(context.Background())
	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CallError", err)
	}
	if ce.Category != CategoryTransport {
		t.Errorf("category = %s, want transport", ce.Category)
	}
	if ce.UserMessage() != MsgUnreachable {
		t.Errorf("message = %q, want %q", ce.UserMessage(), MsgUnreachable)
	}
}

func TestUserMessageFallback(t *testing.T) {
	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q, want empty", got)
	}
	plain := errors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
	wrapped := &CallError{Category: CategoryServer, Message: MsgInternal}
	if got := UserMessage(wrapped); got != MsgInternal {
		t.Errorf("UserMessage(CallError) = %q, want %q", got, MsgInternal)
	}
}

func TestClassifyPassesThroughCallError(t *testing.T) {
	orig := &CallError{Category: CategoryClient, Status: 400, Message: MsgBadRequest}
	if got := Classify(orig); got != orig {
		t.Error("Classify should return an existing CallError unchanged")
	}
	if got := Classify(context.DeadlineExceeded); got.Message != MsgTimeout {
		t.Errorf("deadline exceeded classified as %q", got.Message)
	}
}
