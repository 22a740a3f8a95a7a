// Package bot is a thin Telegram surface over the planner: group
// members ask for slot recommendations from chat instead of the app.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/planner"
	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/service"
)

type telegramClient interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type realTelegramClient struct {
	api *tgbotapi.BotAPI
}

func (c *realTelegramClient) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.api.Send(msg)
}

func (c *realTelegramClient) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return c.api.GetUpdatesChan(cfg)
}

// planning is the slice of the planner service the bot uses.
type planning interface {
	Recommend(ctx context.Context, req service.RecommendRequest) (*service.RecommendResponse, error)
	Suggest(ctx context.Context, date string, personIDs []string, override *service.WindowOverride) ([]planner.SuggestedSlot, error)
}

// peopleLister resolves the full group for chat-initiated planning.
type peopleLister interface {
	ListPeople(ctx context.Context) ([]models.Person, error)
}

// Bot answers /plan and /suggest commands with planner output.
type Bot struct {
	tg      telegramClient
	planner planning
	people  peopleLister
	logger  *zerolog.Logger
}

func New(token string, debug bool, planner planning, people peopleLister, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug
	return newBot(&realTelegramClient{api: api}, planner, people, logger)
}

// NewWithTelegramClient allows injecting a mocked Telegram client for tests.
func NewWithTelegramClient(tg telegramClient, planner planning, people peopleLister, logger *zerolog.Logger) (*Bot, error) {
	return newBot(tg, planner, people, logger)
}

func newBot(tg telegramClient, planner planning, people peopleLister, logger *zerolog.Logger) (*Bot, error) {
	if tg == nil {
		return nil, fmt.Errorf("telegram client is nil")
	}
	return &Bot{tg: tg, planner: planner, people: people, logger: logger}, nil
}

// Start consumes updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.tg.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	var reply string
	switch msg.Command() {
	case "start", "help":
		reply = "Commands:\n" +
			"/plan YYYY-MM-DD [days] — categorized group slots\n" +
			"/suggest YYYY-MM-DD — best free windows for the day"
	case "plan":
		reply = b.plan(ctx, msg.CommandArguments())
	case "suggest":
		reply = b.suggest(ctx, msg.CommandArguments())
	default:
		reply = "Unknown command. Try /help."
	}

	if _, err := b.tg.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		b.logger.Error().Err(err).Msg("failed to send telegram reply")
	}
}

func (b *Bot) plan(ctx context.Context, args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "Usage: /plan YYYY-MM-DD [days]"
	}
	startDate := fields[0]

	days := 1
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return "Days must be a positive number"
		}
		days = n
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return "Invalid date; expected YYYY-MM-DD"
	}
	endDate := start.AddDate(0, 0, days-1).Format("2006-01-02")

	people, err := b.people.ListPeople(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to list people")
		return "Something went wrong, try again later"
	}
	if len(people) == 0 {
		return "No group members yet"
	}
	ids := make([]string, len(people))
	for i, p := range people {
		ids[i] = p.ID
	}

	resp, err := b.planner.Recommend(ctx, service.RecommendRequest{
		StartDate: startDate,
		EndDate:   endDate,
		PersonIDs: ids,
	})
	if err != nil {
		return fmt.Sprintf("Planning failed: %v", err)
	}

	return formatPlan(resp)
}

func (b *Bot) suggest(ctx context.Context, args string) string {
	date := strings.TrimSpace(args)
	if date == "" {
		return "Usage: /suggest YYYY-MM-DD"
	}

	people, err := b.people.ListPeople(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to list people")
		return "Something went wrong, try again later"
	}
	if len(people) == 0 {
		return "No group members yet"
	}
	ids := make([]string, len(people))
	for i, p := range people {
		ids[i] = p.ID
	}

	slots, err := b.planner.Suggest(ctx, date, ids, nil)
	if err != nil {
		return fmt.Sprintf("Suggestion failed: %v", err)
	}
	if len(slots) == 0 {
		return fmt.Sprintf("No free windows on %s", date)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Best windows for %s:\n", date)
	for _, s := range slots {
		fmt.Fprintf(&sb, "• %s–%s (%v h, %s)\n", s.StartTime, s.EndTime, s.DurationHours, s.Confidence)
	}
	return sb.String()
}

var categoryMarks = map[planner.SlotCategory]string{
	planner.CategoryPerfect: "🟢",
	planner.CategoryGood:    "🟡",
	planner.CategoryOK:      "🟠",
	planner.CategoryBad:     "🔴",
}

func formatPlan(resp *service.RecommendResponse) string {
	if len(resp.Slots) == 0 {
		return "No slots inside the workday window"
	}

	var sb strings.Builder
	for _, day := range resp.Dates {
		if len(day.Slots) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s\n", day.Date)
		for _, s := range day.Slots {
			fmt.Fprintf(&sb, "%s %s–%s (%v h)", categoryMarks[s.Category], s.StartTime, s.EndTime, s.DurationHours)
			if len(s.BusyMembers) > 0 {
				names := make([]string, len(s.BusyMembers))
				for i, m := range s.BusyMembers {
					names[i] = m.DisplayName
				}
				fmt.Fprintf(&sb, " — busy: %s", strings.Join(names, ", "))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
