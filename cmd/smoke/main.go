package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase  string
	token    string
	client   = &http.Client{Timeout: 30 * time.Second}
	testDate string
)

func main() {
	fmt.Println("=== Menu Board E2E Smoke Test ===")
	fmt.Println()

	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	token = getEnv("SMOKE_TOKEN", "")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Println()

	testDate = time.Now().UTC().Format("2006-01-02")

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Fetch Board", testFetchBoard},
		{"Save Slot", testSaveSlot},
		{"Week View", testWeekView},
		{"Move Slot", testMoveSlot},
		{"Drag Gesture", testDragGesture},
		{"Navigate Week", testNavigateWeek},
		{"Snapshot Template", testSnapshotTemplate},
		{"List Templates", testListTemplates},
		{"Export CSV", testExportCSV},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	resp, err := doRequest("GET", "/healthz", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testFetchBoard() error {
	resp, err := doRequest("POST", "/v1/board/fetch", map[string]string{"anchor": testDate})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var window struct {
		Current struct {
			Days []json.RawMessage `json:"days"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&window); err != nil {
		return err
	}
	if len(window.Current.Days) != 7 {
		return fmt.Errorf("expected 7 days in current week, got %d", len(window.Current.Days))
	}
	return nil
}

func testSaveSlot() error {
	resp, err := doRequest("PUT", "/v1/board/slots", map[string]interface{}{
		"date":      testDate,
		"meal_type": "dinner",
		"entries": []map[string]string{
			{"id": "smoke-entry", "name": "Smoke Test Stew"},
		},
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testWeekView() error {
	resp, err := doRequest("GET", "/v1/board/view?unit=week&cursor="+testDate, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var view struct {
		Days []json.RawMessage `json:"days"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return err
	}
	if len(view.Days) != 7 {
		return fmt.Errorf("expected 7 days in week view, got %d", len(view.Days))
	}
	return nil
}

func testMoveSlot() error {
	tomorrow := mustAddDay(testDate)
	resp, err := doRequest("POST", "/v1/board/move", map[string]string{
		"from_date":      testDate,
		"from_meal_type": "dinner",
		"to_date":        tomorrow,
		"to_meal_type":   "lunch",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testDragGesture() error {
	tomorrow := mustAddDay(testDate)

	resp, err := doRequest("POST", "/v1/board/drag/start", map[string]interface{}{
		"payload": map[string]string{
			"kind":      "slot",
			"date":      tomorrow + "T00:00:00Z",
			"meal_type": "lunch",
		},
	})
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("drag start status=%d", resp.StatusCode)
	}

	resp, err = doRequest("POST", "/v1/board/drag/end", map[string]string{
		"drop_id": "drop-" + testDate + "-dinner",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var end struct {
		Moved bool `json:"moved"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&end); err != nil {
		return err
	}
	if !end.Moved {
		return fmt.Errorf("drop did not resolve to a move")
	}
	return nil
}

func testNavigateWeek() error {
	resp, err := doRequest("GET", "/v1/board/navigate?unit=week&cursor="+testDate+"&direction=next", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusOK)
}

func testSnapshotTemplate() error {
	resp, err := doRequest("POST", "/v1/templates/snapshot", map[string]string{"name": "Smoke Week"})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return expectStatus(resp, http.StatusCreated)
}

func testListTemplates() error {
	resp, err := doRequest("GET", "/v1/templates", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	var list struct {
		Templates []json.RawMessage `json:"templates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return err
	}
	if len(list.Templates) == 0 {
		return fmt.Errorf("expected at least one template")
	}
	return nil
}

func testExportCSV() error {
	resp, err := doRequest("GET", "/v1/board/export?format=csv&cursor="+testDate, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("empty export body")
	}
	return nil
}

// ---- helpers ----

func doRequest(method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiBase+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	addAuth(req)

	return client.Do(req)
}

func addAuth(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func expectStatus(resp *http.Response, want int) error {
	if resp.StatusCode != want {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
	return nil
}

func mustAddDay(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
