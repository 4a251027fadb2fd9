package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/contactdesk/contacts-api/pkg/model"
)

// This smoke-test client runs a full create/read/update/delete cycle
// against a running contacts service and prints every envelope it gets
// back.
//
// Usage example on the command line:
// > BASE_URL=http://localhost:3000 go run main.go
func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	created := call("POST", baseURL+"/contacts", map[string]any{
		"name":  "Erika Mustermann",
		"phone": "+49 0815 4711",
		"email": "erika@example.com",
	})
	if created.Code != model.CodeOK {
		fmt.Println("create failed, aborting")
		os.Exit(1)
	}
	id := fmt.Sprintf("%.0f", created.Data.(map[string]any)["id"].(float64))

	call("GET", baseURL+"/contacts/"+id, nil)
	call("GET", baseURL+"/contacts", nil)
	call("PUT", baseURL+"/contacts/"+id, map[string]any{
		"name":  "Rudi Völler",
		"phone": "+49 1234567890",
	})
	call("DELETE", baseURL+"/contacts/"+id, nil)

	// After the delete, this lookup must report code 2 (not found).
	call("GET", baseURL+"/contacts/"+id, nil)
}

// call executes one request, prints the decoded envelope and returns it.
func call(method string, url string, body map[string]any) model.Response {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		encoded, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(encoded)
	}
	request, err := http.NewRequest(method, url, reader)
	if err != nil {
		panic(err)
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := http.DefaultClient.Do(request)
	if err != nil {
		fmt.Printf("%s %s -> %v\n", method, url, err)
		return model.Response{Code: model.CodeNetwork, Msg: err.Error()}
	}
	defer response.Body.Close()

	var envelope model.Response
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		fmt.Printf("%s %s -> undecodable body: %v\n", method, url, err)
		return model.Response{Code: model.CodeNetwork, Msg: err.Error()}
	}
	fmt.Printf("%s %s -> HTTP %d, code %d, msg %q\n",
		method, url, response.StatusCode, envelope.Code, envelope.Msg)
	return envelope
}
