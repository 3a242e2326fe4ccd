// Package locales holds the bot's operator notices and command replies.
package locales

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed *.json
var localeFS embed.FS

const DefaultLanguage = "he"

// Message ids.
const (
	NoticeReceived       = "NoticeReceived"
	NoticePhoto          = "NoticePhoto"
	NoticeEmpty          = "NoticeEmpty"
	NoticeScheduled      = "NoticeScheduled"
	NoticeScheduleFailed = "NoticeScheduleFailed"
	NoticeRecordFailed   = "NoticeRecordFailed"
	NoticePublished      = "NoticePublished"
	NoticePublishFailed  = "NoticePublishFailed"
	CmdPong              = "CmdPong"
	CmdHelp              = "CmdHelp"
	CmdStats             = "CmdStats"
	CmdStatsFailed       = "CmdStatsFailed"
)

// Messages renders message ids in one configured language.
type Messages struct {
	localizer *i18n.Localizer
}

func New(lang string) (*Messages, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", lang, err)
	}

	bundle := i18n.NewBundle(language.Hebrew)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := localeFS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded locales: %w", err)
	}
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, file.Name()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file.Name(), err)
		}
	}

	return &Messages{localizer: i18n.NewLocalizer(bundle, tag.String(), DefaultLanguage)}, nil
}

// MustNew is New for tests and package-level defaults.
func MustNew(lang string) *Messages {
	m, err := New(lang)
	if err != nil {
		panic(err)
	}
	return m
}

// Get renders id with data. An unknown id renders as the id itself.
func (m *Messages) Get(id string, data map[string]any) string {
	msg, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
