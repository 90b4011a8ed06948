// Package hud turns the round summary into the on-screen texts.
package hud

import (
	"github.com/shmoopmanager/sim/internal/game"
	"github.com/shmoopmanager/sim/internal/world"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys double as the English texts.
const (
	msgLoading  = "Loading"
	msgStart    = "Press SPACE to start!"
	msgLost     = "You've lost all the shmips. Oops!"
	msgWon      = "All %d shmips are on the ship!\n Logs collected %d"
	msgLeft     = "You have %d shmips left.\nLogs collected: %d"
	msgHelpHint = "Hold ESCAPE to see the instruction"
	msgHelp     = "Hold left mouse button to select a shmip.\n" +
		"Release the button where you want the shmip to go.\n" +
		"Release the mouse button on a log to pick it up.\n" +
		"Collect all the logs and shmips on the ship to finish.\n" +
		"Press SPACE to restart.\n"
)

var translations = map[language.Tag]map[string]string{
	language.TraditionalChinese: {
		msgLoading:  "載入中",
		msgStart:    "按空白鍵開始！",
		msgLost:     "所有 shmip 都掉下去了，糟糕！",
		msgWon:      "全部 %d 隻 shmip 都上船了！\n 收集木頭 %d",
		msgLeft:     "剩下 %d 隻 shmip。\n收集木頭：%d",
		msgHelpHint: "按住 ESC 查看說明",
		msgHelp: "按住滑鼠左鍵選擇 shmip。\n" +
			"在想讓 shmip 前往的地方放開按鈕。\n" +
			"在木頭上放開按鈕即可撿起。\n" +
			"把所有木頭和 shmip 帶上船即完成。\n" +
			"按空白鍵重新開始。\n",
	},
}

// Tone is the colour the status text is drawn in.
type Tone uint8

const (
	ToneNormal Tone = iota
	ToneWin
	ToneLoss
)

// Panel is everything the HUD shows for one frame. Help is empty when the
// status already fills the screen (start screen, loss).
type Panel struct {
	Status string
	Help   string
	Tone   Tone
}

// HUD formats panels in one language.
type HUD struct {
	p *message.Printer
}

// New returns a HUD for the given BCP 47 tag. Unknown or unsupported
// languages fall back to English.
func New(lang string) (*HUD, error) {
	cat, err := buildCatalog()
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	langs := cat.Languages()
	_, idx, _ := language.NewMatcher(langs).Match(tag)
	return &HUD{p: message.NewPrinter(langs[idx], message.Catalog(cat))}, nil
}

func buildCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{msgLoading, msgStart, msgLost, msgWon, msgLeft, msgHelpHint, msgHelp} {
		if err := b.SetString(language.English, key, key); err != nil {
			return nil, err
		}
	}
	for tag, msgs := range translations {
		for key, text := range msgs {
			if err := b.SetString(tag, key, text); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// Render builds the panel for the current round state.
func (h *HUD) Render(state game.RoundState, st world.Status, showHelp bool) Panel {
	switch state {
	case game.StateLoading:
		return Panel{Status: h.p.Sprintf(msgLoading)}
	case game.StateStartScreen, game.StatePendingStart:
		return Panel{Status: h.p.Sprintf(msgStart)}
	}

	if st.LostAll {
		return Panel{Status: h.p.Sprintf(msgLost), Tone: ToneLoss}
	}
	help := h.p.Sprintf(msgHelpHint)
	if showHelp {
		help = h.p.Sprintf(msgHelp)
	}
	if st.AllOnShip {
		return Panel{Status: h.p.Sprintf(msgWon, st.Survivors, st.LogsCollected), Help: help, Tone: ToneWin}
	}
	return Panel{Status: h.p.Sprintf(msgLeft, st.Survivors, st.LogsCollected), Help: help}
}
