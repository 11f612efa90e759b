package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/service/slack"
)

func TestNew(t *testing.T) {
	t.Run("returns error when token is empty", func(t *testing.T) {
		_, err := slack.New("", "C123")
		gt.Value(t, err).NotNil()
	})

	t.Run("returns error when channel is empty", func(t *testing.T) {
		_, err := slack.New("xoxb-test", "")
		gt.Value(t, err).NotNil()
	})

	t.Run("normalizes channel name", func(t *testing.T) {
		n, err := slack.New("xoxb-test", "#BCP Reports")
		gt.NoError(t, err).Required()
		gt.Value(t, n.Channel()).Equal("bcp-reports")
	})
}

func TestNotifyReport(t *testing.T) {
	var mu sync.Mutex
	var gotPath, gotChannel, gotBlocks string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		gotPath = r.URL.Path
		_ = r.ParseForm()
		gotChannel = r.PostForm.Get("channel")
		gotBlocks = r.PostForm.Get("blocks")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "channel": "C123", "ts": "1700000000.000100"})
	}))
	defer srv.Close()

	n, err := slack.New("xoxb-test", "C123", slack.WithAPIURL(srv.URL+"/"))
	gt.NoError(t, err).Required()

	bundle := &model.Bundle{
		OwnerID: "owner-1",
		Summary: model.Summary{ProcessCount: 3, MaturityScore: 4.5},
	}
	gt.NoError(t, n.NotifyReport(context.Background(), bundle, "gs://bucket/report.pdf")).Required()

	mu.Lock()
	defer mu.Unlock()
	gt.Bool(t, strings.HasSuffix(gotPath, "chat.postMessage")).True()
	gt.Value(t, gotChannel).Equal("C123")
	gt.String(t, gotBlocks).Contains("gs://bucket/report.pdf")
	gt.String(t, gotBlocks).Contains("4.50 / 10")
}

func TestBuildReportMessage(t *testing.T) {
	t.Run("partial bundle adds warning context", func(t *testing.T) {
		bundle := &model.Bundle{
			OwnerID:  "owner-1",
			Warnings: []model.FetchWarning{{Collection: "impact_analyses"}},
		}
		blocks, text := slack.BuildReportMessage(bundle, "")
		gt.Array(t, blocks).Length(3)
		gt.String(t, text).Contains("owner-1")
	})

	t.Run("complete bundle without archive has header and summary only", func(t *testing.T) {
		blocks, _ := slack.BuildReportMessage(&model.Bundle{OwnerID: "owner-1"}, "")
		gt.Array(t, blocks).Length(2)
	})
}
