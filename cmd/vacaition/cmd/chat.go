package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/api"
	"github.com/canit0221/RA6-vacAItion-sub000/internal/chat"
	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
	"github.com/canit0221/RA6-vacAItion-sub000/internal/extract"
	"github.com/canit0221/RA6-vacAItion-sub000/internal/session"
)

var (
	chatDate       string
	chatLocation   string
	chatCompanion  string
	chatScheduleID string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the vacation-planning assistant",
	Long: `Opens the chat session for a date, streams the assistant's replies, and
collects recommendations. Promote one onto the calendar with /add N.`,
	RunE: runChat,
}

// terminalSink renders the conversation pane on stdout. The in-progress
// bot message is redrawn in place until its final text arrives.
type terminalSink struct {
	prevLines int
}

func (s *terminalSink) DisplayMessage(text string, fromBot bool) {
	if fromBot {
		fmt.Println("bot>", strings.TrimRight(text, "\n"))
	} else {
		fmt.Println("you>", strings.TrimRight(text, "\n"))
	}
}

func (s *terminalSink) BeginStreaming(text string) {
	s.prevLines = 0
	s.redraw(text)
}

func (s *terminalSink) ReplaceStreaming(text string) {
	s.redraw(text)
}

func (s *terminalSink) EndStreaming(text string) {
	s.erase()
	s.prevLines = 0
	fmt.Println("bot>", strings.TrimRight(text, "\n"))
}

func (s *terminalSink) redraw(text string) {
	s.erase()
	body := "bot> " + strings.TrimRight(text, "\n")
	fmt.Println(body)
	s.prevLines = strings.Count(body, "\n") + 1
}

func (s *terminalSink) erase() {
	for i := 0; i < s.prevLines; i++ {
		fmt.Print("\033[1A\033[2K")
	}
}

// tray holds the recommendations extracted so far, numbered for /add.
type tray struct {
	mu   sync.Mutex
	recs []domain.Recommendation
}

func (t *tray) add(rec domain.Recommendation) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recs = append(t.recs, rec)
	return len(t.recs)
}

func (t *tray) get(n int) (domain.Recommendation, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 1 || n > len(t.recs) {
		return domain.Recommendation{}, false
	}
	return t.recs[n-1], true
}

// chatHandler fans connection events out to the renderer and the status
// line.
type chatHandler struct {
	renderer    *chat.Renderer
	coordinator *session.Coordinator
	sessionID   string
}

func (h *chatHandler) HandleDelta(text string, fromBot, isFinal bool) {
	h.renderer.HandleDelta(text, fromBot, isFinal)
}

func (h *chatHandler) HandleSystem(message string) {
	if message != "" {
		fmt.Println("--", message)
	}
}

func (h *chatHandler) HandleStatus(status chat.Status) {
	switch status {
	case chat.StatusOpen:
		fmt.Println("-- connected")
	case chat.StatusClosed:
		// A brand-new session often closes once while the backend wires
		// it up; stay quiet during the grace interval.
		if !h.coordinator.JustCreated(h.sessionID) {
			fmt.Println("-- disconnected, retrying...")
		}
	case chat.StatusErrored:
		fmt.Println("-- connection lost; restart the chat to reconnect")
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	date := time.Now()
	if chatDate != "" {
		parsed, err := time.Parse("2006-01-02", chatDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", chatDate)
		}
		date = parsed
	}

	client := api.NewClient(cfg.BackendBaseURL, cfg.AccessToken)
	policy := chat.Policy{
		MaxReconnectAttempts: cfg.WSMaxReconnectAttempts,
		ReconnectDelay:       cfg.WSReconnectDelay,
		SendRetryDelay:       cfg.WSSendRetryDelay,
	}
	registry := chat.NewRegistry(cfg.BackendWSURL, cfg.AccessToken, policy)
	defer registry.CloseAll()
	coordinator := session.NewCoordinator(client, registry)

	ctx := cmd.Context()
	sessionID, err := coordinator.EnsureSessionForDate(ctx, date)
	if err != nil {
		return err
	}

	t := &tray{}
	sink := &terminalSink{}
	renderer := chat.NewRenderer(sink, extract.NewEngine(), func(rec domain.Recommendation) {
		n := t.add(rec)
		fmt.Printf("-- [%d] %s (위치: %s)  /add %d to schedule\n", n, rec.PlaceName, rec.Location, n)
	}, chat.EchoPolicy(cfg.ChatEchoPolicy))

	if err := showHistory(ctx, client, sink, sessionID); err != nil {
		return err
	}

	handler := &chatHandler{renderer: renderer, coordinator: coordinator, sessionID: sessionID}
	params := chat.Params{
		ScheduleID: chatScheduleID,
		Date:       date.Format("2006-01-02"),
		Location:   chatLocation,
		Companion:  chatCompanion,
	}
	conn := registry.Open(ctx, sessionID, params, handler)

	fmt.Println("type a message, /add N to schedule a recommendation, /quit to leave")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case strings.HasPrefix(line, "/add"):
			promote(ctx, client, t, date, strings.TrimSpace(strings.TrimPrefix(line, "/add")))
		default:
			if !conn.Send(line) {
				fmt.Println("-- not connected; message not sent")
				continue
			}
			renderer.RenderLocal(line)
		}
	}
	return scanner.Err()
}

// showHistory prints the stored conversation before the channel opens.
func showHistory(ctx context.Context, client *api.Client, sink chat.Sink, sessionID string) error {
	messages, err := client.ListMessages(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, msg := range messages {
		sink.DisplayMessage(msg.Content, msg.FromBot)
	}
	return nil
}

// promote records one collected recommendation as a calendar schedule.
func promote(ctx context.Context, client *api.Client, t *tray, date time.Time, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println("-- usage: /add N")
		return
	}
	rec, ok := t.get(n)
	if !ok {
		fmt.Printf("-- no recommendation [%d]\n", n)
		return
	}

	schedule := domain.ScheduleFromRecommendation(rec, date)
	created, err := client.CreateSchedule(ctx, schedule)
	if err != nil {
		fmt.Println("-- failed to save schedule:", err)
		return
	}
	fmt.Printf("-- scheduled %s on %s\n", rec.PlaceName, created.Date)
}

func init() {
	chatCmd.Flags().StringVar(&chatDate, "date", "", "date to plan for (YYYY-MM-DD, default today)")
	chatCmd.Flags().StringVar(&chatLocation, "location", "", "target area, e.g. 서울")
	chatCmd.Flags().StringVar(&chatCompanion, "companion", "", "who or what the outing is for, e.g. 맛집")
	chatCmd.Flags().StringVar(&chatScheduleID, "schedule-id", "", "existing schedule to discuss")
}
