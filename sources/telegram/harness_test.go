package telegram

import (
	"context"
	"relaybot/sources/access"
	"relaybot/sources/clock"
	"relaybot/sources/configuration"
	"relaybot/sources/features"
	"relaybot/sources/governor"
	"relaybot/sources/localization"
	"relaybot/sources/memory"
	"relaybot/sources/metrics"
	"relaybot/sources/quota"
	"relaybot/sources/repository"
	"relaybot/sources/throttler"
	"relaybot/sources/tracing"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

const adminID int64 = 1000

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeCompleter struct {
	mu      sync.Mutex
	calls   int
	respond func(turns []memory.Turn) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, log *tracing.Logger, system string, turns []memory.Turn) (string, error) {
	f.mu.Lock()
	f.calls++
	respond := f.respond
	f.mu.Unlock()

	if respond == nil {
		return "reply to " + turns[len(turns)-1].Content, nil
	}
	return respond(turns)
}

func (f *fakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	err      error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// textsTo returns the text of every message and photo caption sent to chatID, with the
// MarkdownV2 escaping removed.
func (f *fakeSender) textsTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var texts []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			if m.ChatID == chatID {
				texts = append(texts, strings.ReplaceAll(m.Text, "\\", ""))
			}
		case tgbotapi.PhotoConfig:
			if m.ChatID == chatID {
				texts = append(texts, m.Caption)
			}
		}
	}
	return texts
}

func (f *fakeSender) last(chatID int64) string {
	texts := f.textsTo(chatID)
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (f *fakeSender) messages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()

	var messages []tgbotapi.MessageConfig
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			messages = append(messages, m)
		}
	}
	return messages
}

func (f *fakeSender) photos() []tgbotapi.PhotoConfig {
	f.mu.Lock()
	defer f.mu.Unlock()

	var photos []tgbotapi.PhotoConfig
	for _, c := range f.sent {
		if p, ok := c.(tgbotapi.PhotoConfig); ok {
			photos = append(photos, p)
		}
	}
	return photos
}

type harness struct {
	clock     *manualClock
	sender    *fakeSender
	completer *fakeCompleter
	registry  *access.Registry
	handler   *TelegramHandler
	log       *tracing.Logger
	nextID    int
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	config := &configuration.Config{
		Packages: map[string]configuration.PackageConfig{
			"basic": {DailyLimit: 100, Price: 15000, DurationDays: 30},
			"pro":   {DailyLimit: 300, Price: 30000},
		},
	}
	config.Telegram.AdminID = adminID
	config.Telegram.ChunkSize = 4096
	config.AI.SystemPrompt = "You are a helpful bot."
	config.AI.Timeout = time.Second
	config.Governance = configuration.GovernanceConfig{
		TimeZone:          "UTC",
		PerMinute:         100,
		DefaultDailyLimit: 2,
		StandardHistory:   20,
		PremiumHistory:    50,
	}
	config.Payments = configuration.PaymentsConfig{
		Instructions: "Pay to card 8600.",
		Currency:     "UZS",
		PendingTTL:   24 * time.Hour,
	}
	config.Localization = configuration.LocalizationConfig{DefaultLanguage: "en", SupportedLanguages: []string{"en", "uz"}}

	log := tracing.NewDiscardLogger()
	metricsService := metrics.NewMetricsService(log)
	h := &harness{
		clock:     &manualClock{now: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)},
		sender:    &fakeSender{},
		completer: &fakeCompleter{},
		log:       log,
	}

	localizationConfig := localization.NewLocalizationConfig(config)
	manager, err := localization.NewLocalizationManager(localizationConfig, localization.NewLanguageResolver(localizationConfig), metricsService, log)
	require.NoError(t, err)

	calendar := clock.NewCalendar(time.UTC)
	handlerConfig := NewHandlerConfig(config)
	diplomat := NewDiplomat(h.sender, NewDiplomatConfig(config), metricsService)
	notifier := NewAdminNotifier(diplomat, manager, calendar, handlerConfig, log)

	h.registry = access.NewRegistry(access.NewCatalog(config), access.NewAccessConfig(config), notifier, log)
	ledger := quota.NewLedger(calendar, h.registry)
	gov := governor.NewGovernor(
		governor.NewGovernorConfig(config),
		h.clock,
		h.registry,
		ledger,
		throttler.NewThrottler(throttler.NewThrottlerConfig(config)),
		memory.NewLocalStore(),
		h.completer,
		notifier,
		repository.NewJournalRepository(nil),
		features.NewStaticFeatureManager(log),
		metricsService,
	)

	h.handler = NewTelegramHandler(
		diplomat,
		NewTypingManager(diplomat),
		gov,
		governor.NewAdminConsole(gov),
		h.registry,
		manager,
		h.clock,
		calendar,
		handlerConfig,
		metricsService,
	)
	return h
}

func (h *harness) message(userID int64, lang string, text string) *tgbotapi.Message {
	h.nextID++
	msg := &tgbotapi.Message{
		MessageID: h.nextID,
		From:      &tgbotapi.User{ID: userID, FirstName: "Ann", UserName: "ann", LanguageCode: lang},
		Chat:      &tgbotapi.Chat{ID: userID, Type: "private"},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		command, _, _ := strings.Cut(text, " ")
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command)}}
	}
	return msg
}

func (h *harness) send(t *testing.T, userID int64, text string) {
	t.Helper()
	h.clock.Advance(time.Second)
	require.NoError(t, h.handler.HandleMessage(context.Background(), h.log, h.message(userID, "en", text)))
}

func (h *harness) sendPhoto(t *testing.T, userID int64) {
	t.Helper()
	msg := h.message(userID, "en", "")
	msg.Photo = []tgbotapi.PhotoSize{{FileID: "small", Width: 90}, {FileID: "large", Width: 1280}}
	require.NoError(t, h.handler.HandleMessage(context.Background(), h.log, msg))
}

func (h *harness) pick(t *testing.T, userID int64, name string) {
	t.Helper()
	query := &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: userID, LanguageCode: "en"},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: userID, Type: "private"}},
		Data:    packageCallbackPrefix + name,
	}
	require.NoError(t, h.handler.HandleCallback(context.Background(), h.log, query))
}
