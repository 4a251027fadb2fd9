package main

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// Polls the health endpoint until the service answers, for use in scripts
// that have to wait for the server to come up.
func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	totalWaitTime := 0
	for {
		res, err := http.Get(baseURL + "/health")
		if err == nil {
			res.Body.Close()
			if res.StatusCode == http.StatusOK {
				fmt.Println("service is available")
				break
			}
			fmt.Println("service answered with status", res.StatusCode)
		} else {
			fmt.Println(err)
		}
		totalWaitTime += 5
		fmt.Printf("waited %d seconds\n", totalWaitTime)
		time.Sleep(5 * time.Second)
	}
}
