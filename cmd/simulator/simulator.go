package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SimulatorConfig holds the conversation driver settings
type SimulatorConfig struct {
	ServerURL string
	SessionID string
	DelayMs   int
}

// Scenarios are scripted guest conversations exercising the main flows
var Scenarios = map[string][]string{
	"room-booking": {
		"Hello",
		"I want to book a room",
		"My name is Rajesh Kumar",
		"9876543210",
		"check in tomorrow, check out next week",
		"a deluxe room for 2 guests",
		"yes",
	},
	"dining": {
		"Hi there",
		"I'd like a dinner reservation for tonight",
		"Priya Sharma, 9123456780",
		"4 people",
		"yes please",
	},
	"cancellation": {
		"hello",
		"cancel my booking",
		"BK2608310A1F",
		"yes",
	},
	"multilingual": {
		"नमस्ते",
		"मुझे कमरा बुकिंग करनी है",
		"suresh, 9988776655",
	},
	"interrupt": {
		"I want to book a room",
		"Amit Verma, 9876501234",
		"what room types do you have?",
		"deluxe, tomorrow to day after tomorrow, 2 guests",
		"yes",
	},
}

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Message      string   `json:"message"`
	Intent       string   `json:"intent"`
	Confidence   float64  `json:"confidence"`
	Language     string   `json:"language"`
	MissingSlots []string `json:"missing_slots"`
	State        string   `json:"state"`
	SessionID    string   `json:"session_id"`
	TurnCount    int      `json:"turn_count"`
}

// Simulator drives scripted or interactive conversations against the chat API
type Simulator struct {
	cfg       *SimulatorConfig
	client    *http.Client
	sessionID string
	log       *zap.Logger
}

func NewSimulator(cfg *SimulatorConfig, logger *zap.Logger) *Simulator {
	return &Simulator{
		cfg:       cfg,
		client:    &http.Client{Timeout: 30 * time.Second},
		sessionID: cfg.SessionID,
		log:       logger,
	}
}

// RunScript plays a scenario turn by turn, printing both sides
func (s *Simulator) RunScript(name string, script []string) error {
	s.log.Info("Running scenario", zap.String("scenario", name), zap.Int("turns", len(script)))

	for i, utterance := range script {
		fmt.Printf("\n[guest] %s\n", utterance)

		resp, err := s.sendTurn(utterance)
		if err != nil {
			return fmt.Errorf("turn %d: %w", i+1, err)
		}

		fmt.Printf("[hotel] %s\n", resp.Message)
		s.log.Debug("turn completed",
			zap.Int("turn", resp.TurnCount),
			zap.String("intent", resp.Intent),
			zap.String("state", resp.State),
			zap.Strings("missing_slots", resp.MissingSlots),
		)

		if resp.State == "executed" || resp.State == "failed" {
			fmt.Printf("\nconversation reached terminal state %q after %d turns\n", resp.State, resp.TurnCount)
			return nil
		}

		time.Sleep(time.Duration(s.cfg.DelayMs) * time.Millisecond)
	}
	return nil
}

// RunInteractive reads guest messages from stdin until EOF or /quit
func (s *Simulator) RunInteractive() error {
	fmt.Println("Connected. Type a message, or /quit to exit.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n[guest] ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			return nil
		}

		resp, err := s.sendTurn(line)
		if err != nil {
			return err
		}
		fmt.Printf("[hotel] %s\n", resp.Message)
		fmt.Printf("        intent=%s state=%s lang=%s turn=%d\n",
			resp.Intent, resp.State, resp.Language, resp.TurnCount)
	}
}

func (s *Simulator) sendTurn(message string) (*chatResponse, error) {
	body, err := json.Marshal(chatRequest{
		SessionID: s.sessionID,
		Message:   message,
	})
	if err != nil {
		return nil, err
	}

	httpResp, err := s.client.Post(
		s.cfg.ServerURL+"/api/v1/chat",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("post chat message: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", httpResp.StatusCode)
	}

	var resp chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}

	// the server assigns an id on the first turn; reuse it afterwards
	s.sessionID = resp.SessionID
	return &resp, nil
}
