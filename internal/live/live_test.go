package live_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/scorebook/internal/live"
)

func startHub(t *testing.T) (*live.Hub, *httptest.Server) {
	t.Helper()

	hub := live.NewHub("*", zap.NewNop(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/"))
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		_ = hub.ServeMatch(w, r, uint(id))
	}))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, matchID int) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/" + strconv.Itoa(matchID)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *live.Hub, matchID uint, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount(matchID) == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_DeliversOnlyToViewersOfTheMatch(t *testing.T) {
	hub, srv := startHub(t)

	viewer := dial(t, srv, 7)
	other := dial(t, srv, 8)
	waitForClients(t, hub, 7, 1)
	waitForClients(t, hub, 8, 1)

	event := live.NewEvent(live.EventBallRecorded, 7, "live", map[string]int{"runs": 4})
	require.NoError(t, hub.Publish(context.Background(), event))

	_ = viewer.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := viewer.ReadMessage()
	require.NoError(t, err)

	var got live.Event
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, live.EventBallRecorded, got.Type)
	assert.Equal(t, uint(7), got.MatchID)

	_ = other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err, "viewer of another match must not receive the event")
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv, 3)
	waitForClients(t, hub, 3, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 3, 0)
}

func TestMultiPublisher_TriesEveryPublisher(t *testing.T) {
	t.Parallel()

	a, b := &live.Recorder{}, &live.Recorder{}
	pub := live.MultiPublisher{a, nil, live.Noop{}, b}

	require.NoError(t, pub.Publish(context.Background(), live.NewEvent(live.EventMatchUpdated, 1, "live", nil)))
	assert.Equal(t, []live.EventType{live.EventMatchUpdated}, a.Types())
	assert.Equal(t, []live.EventType{live.EventMatchUpdated}, b.Types())
}

func TestRecorder_ConcurrentPublish(t *testing.T) {
	t.Parallel()

	rec := &live.Recorder{}
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_ = rec.Publish(context.Background(), live.NewEvent(live.EventBallRecorded, id, "live", nil))
		}(uint(i))
	}
	wg.Wait()

	assert.Len(t, rec.Events(), n)
	assert.Len(t, rec.Types(), n)
}

func TestAMQPMessage(t *testing.T) {
	t.Parallel()

	event := live.NewEvent(live.EventInningsBreak, 42, "innings_break", nil)
	assert.Equal(t, "match.42.innings_break", live.RoutingKey(event))

	msg, err := live.Message(event)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, event.ID, msg.MessageId)

	var decoded live.Event
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, event.Type, decoded.Type)
	assert.Equal(t, event.MatchID, decoded.MatchID)
}
