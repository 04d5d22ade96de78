package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leo9226/zhs-crawler/internal/logger"
)

const (
	telegramAPIBaseURL = "https://api.telegram.org/bot"
	telegramTimeout    = 10 * time.Second
)

// TelegramNotifier posts the court alert to a Telegram chat via the Bot API.
// Optional; only wired when both token and chat ID are configured.
type TelegramNotifier struct {
	botToken   string
	chatID     string
	apiBaseURL string
	httpClient *http.Client
}

// NewTelegramNotifier creates a Telegram notifier.
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("telegram notifications require TELEGRAM_BOT_TOKEN")
	}
	if chatID == "" {
		return nil, fmt.Errorf("telegram notifications require TELEGRAM_CHAT_ID")
	}
	return &TelegramNotifier{
		botToken:   botToken,
		chatID:     chatID,
		apiBaseURL: telegramAPIBaseURL,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

// Notify sends the composed alert as one Telegram message.
func (n *TelegramNotifier) Notify(res Result) error {
	text := fmt.Sprintf("%s\n\n%s", Subject, ComposeMessage(res))

	url := fmt.Sprintf("%s%s/sendMessage", n.apiBaseURL, n.botToken)

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API rejected message: %s", result.Description)
	}

	logger.Info("telegram message sent", logger.Fields{"chat_id": n.chatID})
	return nil
}
