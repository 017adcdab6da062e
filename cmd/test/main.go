package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the survey API")
	testType := flag.String("test", "all", "Test type: all, health, likelihood, breakdown, searches, insert, describe")
	gender := flag.String("gender", "", "Gender filter for the likelihood test (M or F)")
	ageGroup := flag.String("age", "", "Age group filter for the likelihood test (1-6)")
	income := flag.String("income", "", "Income bracket filter for the likelihood test (1-5)")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Product Survey API - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	var ok bool
	switch *testType {
	case "all":
		client.runAllTests()
		return
	case "health":
		ok = client.testHealthCheck()
	case "likelihood":
		ok = client.testLikelihood(*gender, *ageGroup, *income)
	case "breakdown":
		ok = client.testBreakdown()
	case "searches":
		ok = client.testSearches()
	case "insert":
		ok = client.testInsertRecord()
	case "describe":
		ok = client.testDescribePersona()
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, likelihood, breakdown, searches, insert, describe")
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Insert Record", tc.testInsertRecord},
		{"Likelihood", func() bool { return tc.testLikelihood("", "", "") }},
		{"Breakdown", tc.testBreakdown},
		{"Stored Searches", tc.testSearches},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	body, status, err := tc.get("/health")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testLikelihood(gender, ageGroup, income string) bool {
	printTestHeader("Testing Likelihood Endpoint")

	q := url.Values{}
	if gender != "" {
		q.Set("gender", gender)
	}
	if ageGroup != "" {
		q.Set("age_group", ageGroup)
	}
	if income != "" {
		q.Set("income_bracket", income)
	}

	body, status, err := tc.get("/api/v1/likelihood?" + q.Encode())
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	for _, field := range []string{"filter", "matched", "percentage"} {
		if _, ok := result[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	if formatted, _ := result["formatted"].(string); formatted != "" {
		printSuccess(fmt.Sprintf("Likelihood of purchase is %s", formatted))
	} else {
		printSuccess("No data found for the specified combination")
	}
	printJSON(body)
	return true
}

func (tc *TestClient) testBreakdown() bool {
	printTestHeader("Testing Breakdown Endpoint")

	for _, dim := range []string{"gender", "age_group", "income_bracket"} {
		body, status, err := tc.get("/api/v1/breakdown/" + dim)
		if err != nil {
			printError(fmt.Sprintf("Request failed: %v", err))
			return false
		}
		if status != http.StatusOK {
			printError(fmt.Sprintf("Expected status 200 for %s, got %d", dim, status))
			return false
		}

		var result struct {
			Groups []struct {
				Value     string `json:"value"`
				Matched   int    `json:"matched"`
				Formatted string `json:"formatted"`
			} `json:"groups"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			printError(fmt.Sprintf("Invalid JSON response: %v", err))
			return false
		}

		fmt.Printf("\n%s%s:%s\n", colorYellow, dim, colorReset)
		for _, g := range result.Groups {
			formatted := g.Formatted
			if formatted == "" {
				formatted = "-"
			}
			fmt.Printf("  %-20s %4d  %s\n", g.Value, g.Matched, formatted)
		}
	}

	fmt.Println()
	printSuccess("Breakdown returned every dimension")
	return true
}

func (tc *TestClient) testSearches() bool {
	printTestHeader("Testing Stored Search Endpoints")

	body, status, err := tc.get("/api/v1/searches")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var all struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(body, &all); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	_, status, err = tc.get("/api/v1/searches/last")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	want := http.StatusOK
	if all.Count == 0 {
		want = http.StatusNotFound
	}
	if status != want {
		printError(fmt.Sprintf("Expected status %d for last search, got %d", want, status))
		return false
	}

	printSuccess(fmt.Sprintf("%d stored search(es)", all.Count))
	return true
}

func (tc *TestClient) testInsertRecord() bool {
	printTestHeader("Testing Record Insertion")

	record := map[string]interface{}{
		"gender":         "Female",
		"age_group":      "25-34",
		"income_bracket": "$75,000-$99,999",
		"likelihood":     7,
	}

	body, status, err := tc.post("/api/v1/records", record)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusCreated {
		printError(fmt.Sprintf("Expected status 201, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	printSuccess("Record stored")
	return true
}

func (tc *TestClient) testDescribePersona() bool {
	printTestHeader("Testing Persona Description")

	persona := map[string]interface{}{
		"gender":         "Female",
		"age_group":      "25-34",
		"income_bracket": "$75,000-$99,999",
	}

	body, status, err := tc.post("/api/v1/personas/describe", persona)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	switch status {
	case http.StatusOK:
		printSuccess("Persona described")
		printJSON(body)
		return true
	case http.StatusServiceUnavailable:
		printError("Persona profiler is not configured on the server (set GEMINI_API_KEY)")
	default:
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
	}
	return false
}

func (tc *TestClient) get(path string) ([]byte, int, error) {
	target := tc.baseURL + path
	fmt.Printf("GET %s\n", target)

	resp, err := tc.client.Get(target)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return body, resp.StatusCode, err
}

func (tc *TestClient) post(path string, payload interface{}) ([]byte, int, error) {
	target := tc.baseURL + path
	fmt.Printf("POST %s\n", target)

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	fmt.Printf("%sRequest:%s\n", colorYellow, colorReset)
	fmt.Println(string(jsonData))
	fmt.Println()

	resp, err := tc.client.Post(target, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return body, resp.StatusCode, err
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
