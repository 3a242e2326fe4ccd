package app

import (
	"testing"
	"time"

	"github.com/orgball2608/affiliate-post-bot/internal/domain"
	"github.com/orgball2608/affiliate-post-bot/internal/locales"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Publish.UTCOffsetHours = 3
	cfg.Publish.WindowStart = config.ClockTime{Hour: 9}
	cfg.Publish.WindowEnd = config.ClockTime{Hour: 23, Minute: 30}
	cfg.Publish.DelayMin = 20 * time.Minute
	cfg.Publish.DelayMax = 120 * time.Minute
	cfg.Publish.MaxPhotos = 4
	cfg.Publish.ShareLink = "https://t.me/deals"
	cfg.Publish.Keywords = []string{"✅"}
	return cfg
}

func TestNewWindowUsesConfig(t *testing.T) {
	cfg := testConfig()
	p := newWindow(cfg)

	loc := cfg.Location()
	now := time.Date(2024, 5, 1, 23, 20, 0, 0, loc)
	for i := 0; i < 50; i++ {
		got := p.NextSlot(now)
		assert.True(t, got.After(now))
		assert.True(t, p.InWindow(got))
	}
}

func TestNewComposerUsesConfig(t *testing.T) {
	post := newComposer(testConfig()).Compose([]domain.Item{
		domain.TextItem("Lamp\n✅ bright"),
		domain.PhotoItem("a"), domain.PhotoItem("b"), domain.PhotoItem("c"),
		domain.PhotoItem("d"), domain.PhotoItem("e"),
	})
	assert.Equal(t, []string{"✅ bright"}, post.Body)
	assert.Len(t, post.Photos, 4)
	assert.Contains(t, post.Caption, "https://t.me/deals")
}

func TestNewMessagesUsesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.App.Language = "en"

	m, err := newMessages(cfg)
	require.NoError(t, err)
	assert.Equal(t, "🔹 DEBUG: no pending messages", m.Get(locales.NoticeEmpty, nil))

	cfg.App.Language = "???"
	_, err = newMessages(cfg)
	assert.Error(t, err)
}

func TestNewLimiterUsesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Commands.Requests = 1
	cfg.Commands.Per = time.Hour
	cfg.Commands.Burst = 1

	l := newLimiter(cfg)
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))
}
