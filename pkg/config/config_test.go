package config

import (
	"testing"
	"time"

	"github.com/orgball2608/affiliate-post-bot/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("SOURCE_CHAT_ID", "-1001")
	t.Setenv("DESTINATION_CHAT_ID", "-1002")
	t.Setenv("SHARE_LINK", "https://t.me/deals")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Publish.UTCOffsetHours)
	assert.Equal(t, ClockTime{Hour: 9}, cfg.Publish.WindowStart)
	assert.Equal(t, ClockTime{Hour: 23, Minute: 30}, cfg.Publish.WindowEnd)
	assert.Equal(t, 20*time.Minute, cfg.Publish.DelayMin)
	assert.Equal(t, 2*time.Hour, cfg.Publish.DelayMax)
	assert.Equal(t, 4, cfg.Publish.MaxPhotos)
	assert.Equal(t, "סיימתי", cfg.Publish.DoneWord)
	assert.Contains(t, cfg.Publish.Keywords, "LiFePO4")
	assert.Contains(t, cfg.Publish.Keywords, "IP-")
	assert.Len(t, cfg.Publish.Keywords, 15)

	assert.Equal(t, "he", cfg.App.Language)
	assert.Equal(t, 20, cfg.Telegram.SendRate)

	// operator chat falls back to the source chat
	assert.Equal(t, int64(-1001), cfg.OperatorChatID())

	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, cfg.Location()).Zone()
	assert.Equal(t, 3*3600, offset)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("OPERATOR_CHAT_ID", "-1003")
	t.Setenv("PUBLISH_WINDOW_START", "08:15")
	t.Setenv("PUBLISH_KEYWORDS", "battery,shipping")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(-1003), cfg.OperatorChatID())
	assert.Equal(t, "08:15", cfg.Publish.WindowStart.String())
	assert.Equal(t, []string{"battery", "shipping"}, cfg.Publish.Keywords)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("SOURCE_CHAT_ID", "-1001")
	t.Setenv("DESTINATION_CHAT_ID", "-1002")
	t.Setenv("SHARE_LINK", "https://t.me/deals")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigurationMissing))
	assert.Equal(t, CodeConfigurationMissing, errors.GetCode(err))
}

func TestValidateRanges(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	require.NoError(t, err)

	bad := *cfg
	bad.Publish.DelayMax = time.Minute
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Publish.WindowEnd = ClockTime{Hour: 8}
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Publish.MaxPhotos = 0
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Publish.MaxPhotos = MaxPhotosLimit + 1
	assert.Error(t, bad.Validate())
}

func TestLoadRejectsTooManyPhotos(t *testing.T) {
	setRequired(t)
	t.Setenv("PUBLISH_MAX_PHOTOS", "10")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PUBLISH_MAX_PHOTOS")
}

func TestLoadAcceptsSmallerPhotoCap(t *testing.T) {
	setRequired(t)
	t.Setenv("PUBLISH_MAX_PHOTOS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Publish.MaxPhotos)
}

func TestClockTimeSetValue(t *testing.T) {
	var c ClockTime
	require.NoError(t, c.SetValue("23:30"))
	assert.Equal(t, 23*time.Hour+30*time.Minute, c.Offset())

	assert.Error(t, c.SetValue("24:00"))
	assert.Error(t, c.SetValue("noon"))
}
