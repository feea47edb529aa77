package validation

import (
	"testing"

	"devconnect/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCheckRegisterRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        models.RegisterRequest
		wantFields []string
	}{
		{
			name: "valid payload",
			req: models.RegisterRequest{
				Name:      "Alice",
				Email:     "a@x.com",
				Password:  "secret123",
				Password2: "secret123",
			},
		},
		{
			name: "collects every failing field",
			req: models.RegisterRequest{
				Name:      "Al",
				Email:     "not-an-email",
				Password:  "short",
				Password2: "short",
			},
			wantFields: []string{"name", "email", "password"},
		},
		{
			name: "password confirmation must match",
			req: models.RegisterRequest{
				Name:      "Alice",
				Email:     "a@x.com",
				Password:  "secret123",
				Password2: "secret124",
			},
			wantFields: []string{"password2"},
		},
		{
			name:       "empty payload reports all required fields",
			req:        models.RegisterRequest{},
			wantFields: []string{"name", "email", "password", "password2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Check(&tt.req)

			if len(tt.wantFields) == 0 {
				if errs != nil {
					t.Fatalf("Expected no errors, got %v", errs)
				}
				return
			}

			if len(errs) != len(tt.wantFields) {
				t.Fatalf("Expected %d errors, got %d: %v", len(tt.wantFields), len(errs), errs)
			}
			for _, field := range tt.wantFields {
				if _, ok := errs[field]; !ok {
					t.Errorf("Expected error for field %q, got %v", field, errs)
				}
			}
		})
	}
}

func TestCheckProfileRequest(t *testing.T) {
	t.Run("valid payload with socials", func(t *testing.T) {
		req := models.ProfileRequest{
			Handle:  "alice",
			Status:  "Developer",
			Skills:  "go,rust",
			Website: strPtr("https://alice.dev"),
			Youtube: strPtr("https://youtube.com/alice"),
		}
		if errs := Check(&req); errs != nil {
			t.Fatalf("Expected no errors, got %v", errs)
		}
	})

	t.Run("handle too short and bad website", func(t *testing.T) {
		req := models.ProfileRequest{
			Handle:  "a",
			Status:  "Developer",
			Skills:  "go",
			Website: strPtr("not a url"),
		}
		errs := Check(&req)
		if _, ok := errs["handle"]; !ok {
			t.Errorf("Expected handle error, got %v", errs)
		}
		if _, ok := errs["website"]; !ok {
			t.Errorf("Expected website error, got %v", errs)
		}
	})

	t.Run("absent optional fields are not validated", func(t *testing.T) {
		req := models.ProfileRequest{
			Handle: "alice",
			Status: "Developer",
			Skills: "go",
		}
		if errs := Check(&req); errs != nil {
			t.Fatalf("Expected no errors, got %v", errs)
		}
	})
}

func TestCheckTextLimits(t *testing.T) {
	long := func(n int) string {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = 'a'
		}
		return string(buf)
	}

	t.Run("post text within limit", func(t *testing.T) {
		if errs := Check(&models.PostRequest{Text: long(1000)}); errs != nil {
			t.Fatalf("Expected no errors, got %v", errs)
		}
	})

	t.Run("post text over limit", func(t *testing.T) {
		errs := Check(&models.PostRequest{Text: long(1001)})
		if _, ok := errs["text"]; !ok {
			t.Errorf("Expected text error, got %v", errs)
		}
	})

	t.Run("comment text over limit", func(t *testing.T) {
		errs := Check(&models.CommentRequest{Text: long(701)})
		if _, ok := errs["text"]; !ok {
			t.Errorf("Expected text error, got %v", errs)
		}
	})

	t.Run("missing text", func(t *testing.T) {
		errs := Check(&models.CommentRequest{})
		if errs["text"] != "text is required" {
			t.Errorf("Expected required message, got %v", errs)
		}
	})
}
