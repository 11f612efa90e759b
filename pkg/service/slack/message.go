package slack

import (
	"fmt"
	"strconv"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/slack-go/slack"
)

// maxFieldBytes is the Slack limit of a section field
const maxFieldBytes = 2000

func buildReportMessage(b *model.Bundle, location string) ([]slack.Block, string) {
	text := fmt.Sprintf("Business continuity plan generated for %s", b.OwnerID)

	fields := []*slack.TextBlockObject{
		mrkdwn("*Business processes*\n" + strconv.Itoa(b.Summary.ProcessCount)),
		mrkdwn("*Impact analyses*\n" + strconv.Itoa(b.Summary.ImpactCount)),
		mrkdwn("*Average impact score*\n" + strconv.FormatFloat(b.Summary.AverageImpactScore, 'f', 2, 64)),
		mrkdwn("*Maturity score*\n" + strconv.FormatFloat(b.Summary.MaturityScore, 'f', 2, 64) + " / 10"),
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Business Continuity Plan", false, false)),
		slack.NewSectionBlock(mrkdwn(text), fields, nil),
	}

	if location != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			mrkdwn(truncateToMaxBytes("Archived at `"+location+"`", maxFieldBytes))))
	}
	if b.IsPartial() {
		missing := ""
		for i, w := range b.Warnings {
			if i > 0 {
				missing += ", "
			}
			missing += w.Collection
		}
		blocks = append(blocks, slack.NewContextBlock("",
			mrkdwn(truncateToMaxBytes(":warning: Partial report, could not load: "+missing, maxFieldBytes))))
	}

	return blocks, text
}

func mrkdwn(s string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, s, false, false)
}

// truncateToMaxBytes cuts s to at most n bytes without splitting a UTF-8 rune
func truncateToMaxBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
