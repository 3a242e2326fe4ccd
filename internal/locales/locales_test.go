package locales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHebrewIsDefault(t *testing.T) {
	m, err := New(DefaultLanguage)
	require.NoError(t, err)

	assert.Equal(t, "🔹 DEBUG: אין הודעות ממתינות", m.Get(NoticeEmpty, nil))
	assert.Equal(t, "📌 DEBUG: יתפרסם ב-14:05", m.Get(NoticeScheduled, map[string]any{"Time": "14:05"}))
	assert.Equal(t, "📊 סטטיסטיקה:\nהיום: 1\nחודש: 2\nשנה: 3",
		m.Get(CmdStats, map[string]any{"Day": 1, "Month": 2, "Year": 3}))
}

func TestEnglish(t *testing.T) {
	m := MustNew("en")
	assert.Equal(t, "❌ DEBUG: publish error chat not found",
		m.Get(NoticePublishFailed, map[string]any{"Reason": "chat not found"}))
}

func TestUnsupportedLanguageFallsBackToHebrew(t *testing.T) {
	m := MustNew("fr")
	assert.Equal(t, "✅ DEBUG: פוסט פורסם", m.Get(NoticePublished, nil))
}

func TestUnknownIDRendersAsID(t *testing.T) {
	assert.Equal(t, "NoSuchMessage", MustNew("he").Get("NoSuchMessage", nil))
}

func TestInvalidLanguage(t *testing.T) {
	_, err := New("???")
	assert.Error(t, err)
}

func TestAllIDsTranslated(t *testing.T) {
	ids := []string{
		NoticeReceived, NoticePhoto, NoticeEmpty, NoticeScheduled, NoticeScheduleFailed,
		NoticeRecordFailed, NoticePublished, NoticePublishFailed, CmdPong, CmdHelp, CmdStats, CmdStatsFailed,
	}
	for _, lang := range []string{"he", "en"} {
		m := MustNew(lang)
		for _, id := range ids {
			assert.NotEqual(t, id, m.Get(id, map[string]any{}), "%s missing in %s", id, lang)
		}
	}
}
