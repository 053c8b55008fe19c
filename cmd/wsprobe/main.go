// Package main provides a probe that logs into the API, opens the booking
// event WebSocket and prints every event it receives. Useful for verifying
// the Redis pub/sub pipeline end to end.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8460", "API server host")
	email := flag.String("email", "admin@stayhub.dev", "User email")
	password := flag.String("password", "Password12345", "User password")
	flag.Parse()

	log.Printf("Booking event probe, target %s", *host)

	token, err := login(*host, *email, *password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	log.Println("Logged in")

	wsURL := url.URL{
		Scheme:   "ws",
		Host:     *host,
		Path:     "/api/ws/bookings",
		RawQuery: "token=" + url.QueryEscape(token),
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		log.Fatalf("WebSocket dial failed: %v", err)
	}
	defer conn.Close()
	log.Println("Connected, waiting for booking events...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read error: %v", err)
				return
			}
			log.Printf("event: %s", message)
		}
	}()

	select {
	case <-interrupt:
		log.Println("Interrupted, closing connection")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	case <-done:
	}
}

func login(host, email, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := http.Post(
		fmt.Sprintf("http://%s/api/auth/login", host),
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("no access token in response")
	}
	return result.AccessToken, nil
}
