package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	bot "github.com/go-telegram/bot"
	domain "github.com/inference-gateway/envkeys/internal/domain"
	domainfakes "github.com/inference-gateway/envkeys/internal/domain/domainfakes"
	logger "github.com/inference-gateway/envkeys/internal/logger"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
)

func TestLogNotifier(t *testing.T) {
	log, logs := logger.TestLogger()
	n := NewLogNotifier(log)

	n.Show("Environment 'editing' activated.")

	entries := logs.FilterMessage("notification").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Environment 'editing' activated.", entries[0].ContextMap()["message"])
}

func TestNewMulti(t *testing.T) {
	first := &domainfakes.FakeNotifier{}
	second := &domainfakes.FakeNotifier{}

	assert.IsType(t, Nop{}, NewMulti())
	assert.IsType(t, Nop{}, NewMulti(nil, nil))
	assert.Same(t, first, NewMulti(nil, first))

	multi := NewMulti(first, nil, second)
	multi.Show("hello")

	require.Equal(t, 1, first.ShowCallCount())
	require.Equal(t, 1, second.ShowCallCount())
	assert.Equal(t, "hello", first.ShowArgsForCall(0))
	assert.Equal(t, "hello", second.ShowArgsForCall(0))
}

func TestDesktopNotifier(t *testing.T) {
	log, logs := logger.TestLogger()
	n := NewDesktopNotifier(log)

	var mutex sync.Mutex
	var titles, messages []string
	n.send = func(title, message, _ string) error {
		mutex.Lock()
		defer mutex.Unlock()
		titles = append(titles, title)
		messages = append(messages, message)
		return errors.New("no notification daemon")
	}

	long := strings.Repeat("x", 150)
	n.Show("short")
	n.Show(long)

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("desktop notification failed").Len() == 2
	}, time.Second, 10*time.Millisecond)

	mutex.Lock()
	defer mutex.Unlock()
	assert.ElementsMatch(t, []string{AppName, AppName}, titles)
	assert.Contains(t, messages, "short")
	for _, m := range messages {
		assert.LessOrEqual(t, len(m), maxDesktopMessage)
	}
}

func TestDesktopNotifier_TruncatesOnRuneBoundary(t *testing.T) {
	n := NewDesktopNotifier(zap.NewNop())

	sent := make(chan string, 1)
	n.send = func(_, message, _ string) error {
		sent <- message
		return nil
	}

	n.Show("Ambiente '" + strings.Repeat("ã", 150) + "' ativado.")

	select {
	case message := <-sent:
		assert.True(t, utf8.ValidString(message))
		assert.True(t, strings.HasSuffix(message, "ã..."))
		assert.LessOrEqual(t, utf8.RuneCountInString(message), maxDesktopMessage)
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
}

type fakeTelegram struct {
	mutex  sync.Mutex
	params []*bot.SendMessageParams
	err    error
}

func (f *fakeTelegram) SendMessage(_ context.Context, params *bot.SendMessageParams) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.params = append(f.params, params)
	return f.err
}

func (f *fakeTelegram) sent() []*bot.SendMessageParams {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]*bot.SendMessageParams(nil), f.params...)
}

func TestTelegramNotifier(t *testing.T) {
	log, logs := logger.TestLogger()
	sender := &fakeTelegram{err: errors.New("forbidden")}
	n := &TelegramNotifier{sender: sender, chatID: 42, log: log}

	n.Show("Environment 'editing' activated.")

	assert.Eventually(t, func() bool { return len(sender.sent()) == 1 }, time.Second, 10*time.Millisecond)
	params := sender.sent()[0]
	assert.Equal(t, int64(42), params.ChatID)
	assert.Equal(t, "[envkeys] Environment 'editing' activated.", params.Text)

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("telegram notification failed").Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestNewTelegramNotifier_RequiresCredentials(t *testing.T) {
	_, err := NewTelegramNotifier("", 42, nil)
	assert.Error(t, err)

	_, err = NewTelegramNotifier("token", 0, nil)
	assert.Error(t, err)
}

func TestToast(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	toast := NewToast(2 * time.Second)
	toast.now = func() time.Time { return now }

	_, ok := toast.Current()
	assert.False(t, ok)
	assert.Empty(t, toast.Render(80))

	toast.Show("Environment 'browsing' activated.")
	message, ok := toast.Current()
	assert.True(t, ok)
	assert.Equal(t, "Environment 'browsing' activated.", message)
	assert.Equal(t, "Environment…", toast.Render(12))
	assert.Equal(t, message, toast.Render(0))

	now = now.Add(1999 * time.Millisecond)
	_, ok = toast.Current()
	assert.True(t, ok)

	now = now.Add(time.Millisecond)
	_, ok = toast.Current()
	assert.False(t, ok, "toast expires after its duration")
}

func TestToast_DefaultDuration(t *testing.T) {
	assert.Equal(t, DefaultToastDuration, NewToast(0).Duration())
}

var _ domain.Notifier = (*Toast)(nil)
