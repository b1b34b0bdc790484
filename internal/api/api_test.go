package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/model"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, server *httptest.Server, name, email string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"name":     name,
		"email":    email,
		"password": "password",
	})
	resp, err := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register failed: %d", resp.StatusCode)
	}

	var tokenResp map[string]string
	json.NewDecoder(resp.Body).Decode(&tokenResp)
	token := tokenResp["token"]
	if token == "" {
		t.Fatal("empty token from register")
	}
	return token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func doJSON(t *testing.T, req *http.Request, target any) *http.Response {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if target != nil {
		json.NewDecoder(resp.Body).Decode(target)
	}
	resp.Body.Close()
	return resp
}

func validItemBody() map[string]any {
	return map[string]any{
		"title":       "Black Wallet",
		"description": "Leather wallet",
		"category":    "Accessories",
		"status":      "lost",
		"location":    "Library",
		"date":        "2024-01-10",
		"contactInfo": "a@b.com",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	server := setupTestServer(t)
	registerUser(t, server, "Alice", "alice@example.com")

	// Duplicate email rejected.
	body, _ := json.Marshal(map[string]string{"name": "A", "email": "alice@example.com", "password": "x"})
	resp, _ := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate email, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Valid login.
	body, _ = json.Marshal(map[string]string{"email": "alice@example.com", "password": "password"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for valid login, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Wrong password.
	body, _ = json.Marshal(map[string]string{"email": "alice@example.com", "password": "wrong"})
	resp, _ = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthenticatedAccess(t *testing.T) {
	server := setupTestServer(t)

	// Browsing is public.
	resp, _ := http.Get(server.URL + "/api/items")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for public listing, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Mutations and the user-scoped listing are not.
	protected := []struct{ method, path string }{
		{"POST", "/api/items"},
		{"PUT", "/api/items/some-id"},
		{"DELETE", "/api/items/some-id"},
		{"GET", "/api/items/mine"},
	}
	for _, p := range protected {
		req, _ := authRequest(p.method, server.URL+p.path, "", validItemBody())
		resp := doJSON(t, req, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, resp.StatusCode)
		}
	}
}

func TestCreateItemValidation(t *testing.T) {
	server := setupTestServer(t)
	token := registerUser(t, server, "Alice", "alice@example.com")

	body := validItemBody()
	delete(body, "title")
	delete(body, "contactInfo")

	var errResp struct {
		Errors []model.FieldError `json:"errors"`
	}
	req, _ := authRequest("POST", server.URL+"/api/items", token, body)
	resp := doJSON(t, req, &errResp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if len(errResp.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %+v", len(errResp.Errors), errResp.Errors)
	}

	fields := map[string]string{}
	for _, e := range errResp.Errors {
		fields[e.Field] = e.Message
	}
	if fields["title"] != "Title is required" {
		t.Errorf("expected title error, got %+v", fields)
	}
	if fields["contactInfo"] != "Contact information is required" {
		t.Errorf("expected contactInfo error, got %+v", fields)
	}

	// Nothing was created.
	var items []model.Item
	req, _ = authRequest("GET", server.URL+"/api/items", "", nil)
	doJSON(t, req, &items)
	if len(items) != 0 {
		t.Errorf("expected no items after failed validation, got %d", len(items))
	}
}

func TestItemLifecycle(t *testing.T) {
	server := setupTestServer(t)
	tokenU1 := registerUser(t, server, "Alice", "alice@example.com")
	tokenU2 := registerUser(t, server, "Bob", "bob@example.com")

	// Owner identity comes from the token, never the body.
	body := validItemBody()
	body["ownerId"] = "spoofed"
	body["ownerName"] = "Mallory"

	var created model.Item
	req, _ := authRequest("POST", server.URL+"/api/items", tokenU1, body)
	resp := doJSON(t, req, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if created.Resolved {
		t.Error("expected new item to be unresolved")
	}
	if created.OwnerName != "Alice" || created.OwnerID == "spoofed" || created.OwnerID == "" {
		t.Errorf("expected owner from token, got ownerId=%q ownerName=%q", created.OwnerID, created.OwnerName)
	}

	// Search finds it, case-insensitively.
	var found []model.Item
	req, _ = authRequest("GET", server.URL+"/api/items?search=wallet", "", nil)
	doJSON(t, req, &found)
	if len(found) != 1 || found[0].ID != created.ID {
		t.Fatalf("expected search to find the wallet, got %d items", len(found))
	}

	// Update by a non-owner is denied and changes nothing.
	update := validItemBody()
	update["title"] = "Hijacked"
	req, _ = authRequest("PUT", server.URL+"/api/items/"+created.ID, tokenU2, update)
	resp = doJSON(t, req, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for non-owner update, got %d", resp.StatusCode)
	}

	var current model.Item
	req, _ = authRequest("GET", server.URL+"/api/items/"+created.ID, "", nil)
	doJSON(t, req, &current)
	if current.Title != "Black Wallet" {
		t.Errorf("expected record unchanged after denied update, got title %q", current.Title)
	}

	// Non-owner delete is denied too.
	req, _ = authRequest("DELETE", server.URL+"/api/items/"+created.ID, tokenU2, nil)
	resp = doJSON(t, req, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for non-owner delete, got %d", resp.StatusCode)
	}

	// Owner resolves by re-sending the full record.
	update = validItemBody()
	update["resolved"] = true
	var updated model.Item
	req, _ = authRequest("PUT", server.URL+"/api/items/"+created.ID, tokenU1, update)
	resp = doJSON(t, req, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !updated.Resolved || updated.Title != "Black Wallet" {
		t.Errorf("expected resolved item with fields intact, got %+v", updated)
	}

	// Owner deletes; the record is gone for good.
	req, _ = authRequest("DELETE", server.URL+"/api/items/"+created.ID, tokenU1, nil)
	resp = doJSON(t, req, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for owner delete, got %d", resp.StatusCode)
	}

	req, _ = authRequest("GET", server.URL+"/api/items/"+created.ID, "", nil)
	resp = doJSON(t, req, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestFullOverwriteUpdate(t *testing.T) {
	server := setupTestServer(t)
	token := registerUser(t, server, "Alice", "alice@example.com")

	var created model.Item
	req, _ := authRequest("POST", server.URL+"/api/items", token, validItemBody())
	doJSON(t, req, &created)

	// Sending only resolved wipes every other mutable field.
	var updated model.Item
	req, _ = authRequest("PUT", server.URL+"/api/items/"+created.ID, token, map[string]any{"resolved": true})
	resp := doJSON(t, req, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !updated.Resolved {
		t.Error("expected resolved true")
	}
	if updated.Title != "" || updated.Description != "" || updated.Location != "" {
		t.Errorf("expected omitted fields emptied, got %+v", updated)
	}
	if updated.OwnerID != created.OwnerID {
		t.Error("expected owner to survive the overwrite")
	}
}

func TestUpdateDeleteNotFound(t *testing.T) {
	server := setupTestServer(t)
	token := registerUser(t, server, "Alice", "alice@example.com")

	// Unknown and malformed IDs are indistinguishable: both 404.
	for _, id := range []string{"11111111-1111-1111-1111-111111111111", "not-a-valid-id"} {
		req, _ := authRequest("PUT", server.URL+"/api/items/"+id, token, validItemBody())
		resp := doJSON(t, req, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("PUT %s: expected 404, got %d", id, resp.StatusCode)
		}

		req, _ = authRequest("DELETE", server.URL+"/api/items/"+id, token, nil)
		resp = doJSON(t, req, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("DELETE %s: expected 404, got %d", id, resp.StatusCode)
		}
	}
}

func TestListFilters(t *testing.T) {
	server := setupTestServer(t)
	token := registerUser(t, server, "Alice", "alice@example.com")

	post := func(title, category, status string) {
		body := validItemBody()
		body["title"] = title
		body["category"] = category
		body["status"] = status
		req, _ := authRequest("POST", server.URL+"/api/items", token, body)
		resp := doJSON(t, req, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("creating %q: %d", title, resp.StatusCode)
		}
	}

	post("Black iPhone 13", "Electronics", "lost")
	post("Blue Backpack", "Bags", "found")
	post("Car Keys", "Keys", "lost")

	cases := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?status=lost", 2},
		{"?category=Bags", 1},
		{"?status=lost&category=Bags", 0},
		{"?search=phone", 1},
		{"?status=lost&search=PHONE", 1},
	}
	for _, tc := range cases {
		var items []model.Item
		req, _ := authRequest("GET", server.URL+"/api/items"+tc.query, "", nil)
		doJSON(t, req, &items)
		if len(items) != tc.want {
			t.Errorf("GET /api/items%s: expected %d items, got %d", tc.query, tc.want, len(items))
		}
	}
}

func TestListMine(t *testing.T) {
	server := setupTestServer(t)
	tokenAlice := registerUser(t, server, "Alice", "alice@example.com")
	tokenBob := registerUser(t, server, "Bob", "bob@example.com")

	for i := 0; i < 2; i++ {
		body := validItemBody()
		body["title"] = fmt.Sprintf("Alice Item %d", i+1)
		req, _ := authRequest("POST", server.URL+"/api/items", tokenAlice, body)
		doJSON(t, req, nil)
	}
	body := validItemBody()
	body["title"] = "Bob Item"
	req, _ := authRequest("POST", server.URL+"/api/items", tokenBob, body)
	doJSON(t, req, nil)

	var mine []model.Item
	req, _ = authRequest("GET", server.URL+"/api/items/mine", tokenAlice, nil)
	resp := doJSON(t, req, &mine)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 items for alice, got %d", len(mine))
	}
	for _, item := range mine {
		if item.OwnerName != "Alice" {
			t.Errorf("expected only alice's items, got %q by %q", item.Title, item.OwnerName)
		}
	}
	// Most recent first.
	if mine[0].Title != "Alice Item 2" {
		t.Errorf("expected newest item first, got %q", mine[0].Title)
	}
}

func TestGetMe(t *testing.T) {
	server := setupTestServer(t)
	token := registerUser(t, server, "Alice", "alice@example.com")

	var me model.User
	req, _ := authRequest("GET", server.URL+"/api/auth/me", token, nil)
	resp := doJSON(t, req, &me)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if me.Name != "Alice" || me.Email != "alice@example.com" {
		t.Errorf("unexpected identity: %+v", me)
	}
}
