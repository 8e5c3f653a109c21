package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout; completions can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func dataField(body []byte) map[string]interface{} {
	var envelope map[string]interface{}
	json.Unmarshal(body, &envelope)
	if data, ok := envelope["data"].(map[string]interface{}); ok {
		return data
	}
	return nil
}

func main() {
	userToken := os.Getenv("TEST_USER_TOKEN")
	if userToken == "" {
		color.Red("TEST_USER_TOKEN is not set; mint a JWT signed with JWT_SECRET first")
		os.Exit(1)
	}

	color.Cyan("🚀 Starting Chat API Test\n")

	// 1. Create Chat Session
	color.Yellow("\n[USER] 1. Create Chat Session")
	resp, body, err := sendRequest("POST", "/chat/v1/session", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var sessionID string
	if data := dataField(body); data != nil {
		if id, ok := data["id"].(string); ok {
			sessionID = id
			fmt.Printf("Created Session ID: %s\n", sessionID)
		}
	}
	if sessionID == "" {
		color.Red("No session ID returned; aborting")
		os.Exit(1)
	}

	// 2. Send Query (first turn also derives the title)
	color.Yellow("\n[USER] 2. Send Query")
	queryReq := map[string]interface{}{
		"chat_session_id": sessionID,
		"question":        "Explain the difference between a goroutine and an OS thread.",
		"model":           "gemini-2.0-flash",
		"provider":        "gemini",
	}
	resp, body, err = sendRequest("POST", "/chat/v1/query", userToken, queryReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data := dataField(body); data != nil {
		fmt.Printf("Title:  %s\n", data["title"])
		fmt.Printf("Answer: %s\n", data["answer"])
	}

	// 3. Get History (newest pair first)
	color.Yellow("\n[USER] 3. Get Chat History")
	resp, body, err = sendRequest("GET", "/chat/v1/session/"+sessionID+"/history", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var histResp map[string]interface{}
		json.Unmarshal(body, &histResp)
		prettyPrint(histResp)
	}

	// 4. Regenerate the last answer
	color.Yellow("\n[USER] 4. Regenerate Answer")
	regenReq := map[string]interface{}{
		"chat_session_id": sessionID,
		"model":           "gemini-2.0-flash",
		"provider":        "gemini",
	}
	resp, body, err = sendRequest("POST", "/chat/v1/regenerate", userToken, regenReq)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		if data := dataField(body); data != nil {
			fmt.Printf("Answer: %s\n", data["answer"])
		}
	}

	// 5. Rename Session
	color.Yellow("\n[USER] 5. Rename Session")
	renameReq := map[string]interface{}{
		"title": "Goroutines vs threads",
	}
	resp, body, err = sendRequest("PUT", "/chat/v1/session/"+sessionID+"/title", userToken, renameReq)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
	}

	// 6. List Sessions
	color.Yellow("\n[USER] 6. List Sessions")
	resp, body, err = sendRequest("GET", "/chat/v1/sessions", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var listResp map[string]interface{}
		json.Unmarshal(body, &listResp)
		prettyPrint(listResp)
	}

	// 7. Image Lookup
	color.Yellow("\n[USER] 7. Image Lookup")
	imageReq := map[string]interface{}{
		"names": []string{"golang gopher", "concurrency"},
	}
	resp, body, err = sendRequest("POST", "/images/v1/lookup", userToken, imageReq)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var imgResp map[string]interface{}
		json.Unmarshal(body, &imgResp)
		prettyPrint(imgResp)
	}

	// 8. Cleanup: Delete Session (idempotent; run twice to verify)
	color.Yellow("\n[USER] 8. Cleanup: Delete Session")
	for i := 0; i < 2; i++ {
		resp, _, err = sendRequest("DELETE", "/chat/v1/session/"+sessionID, userToken, nil)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Delete #%d Status: %s", i+1, resp.Status)
		}
	}

	color.Cyan("\n✅ Test Sequence Complete")
}
