// README: Route-level tests over in-memory stores and a stub completion backend.
package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	mawadhttp "mawad/internal/http"
	"mawad/internal/modules/agent"
	"mawad/internal/modules/chat"
	"mawad/internal/modules/location"
)

const testSecret = "router-test-secret"

type memAgentStore struct {
	nextID int64
	agents []agent.Agent
}

func (m *memAgentStore) Create(ctx context.Context, a *agent.Agent) error {
	m.nextID++
	a.ID = m.nextID
	m.agents = append(m.agents, *a)
	return nil
}

func (m *memAgentStore) GetByID(ctx context.Context, id int64) (*agent.Agent, error) {
	for i := range m.agents {
		if m.agents[i].ID == id {
			a := m.agents[i]
			return &a, nil
		}
	}
	return nil, agent.ErrNotFound
}

func (m *memAgentStore) List(ctx context.Context) ([]agent.Agent, error) {
	out := make([]agent.Agent, len(m.agents))
	copy(out, m.agents)
	return out, nil
}

func (m *memAgentStore) Update(ctx context.Context, a *agent.Agent) error {
	for i := range m.agents {
		if m.agents[i].ID == a.ID {
			m.agents[i] = *a
			return nil
		}
	}
	return agent.ErrNotFound
}

func (m *memAgentStore) Delete(ctx context.Context, id int64) error {
	for i := range m.agents {
		if m.agents[i].ID == id {
			m.agents = append(m.agents[:i], m.agents[i+1:]...)
			return nil
		}
	}
	return agent.ErrNotFound
}

func (m *memAgentStore) Count(ctx context.Context) (int, error) { return len(m.agents), nil }

func (m *memAgentStore) CountAdmins(ctx context.Context) (int, error) {
	n := 0
	for i := range m.agents {
		if m.agents[i].IsAdmin {
			n++
		}
	}
	return n, nil
}

type memLocStore struct {
	nextID  int64
	locs    []location.Location
	granted map[int64][]int64
}

func (m *memLocStore) ListAll(ctx context.Context) ([]location.Location, error) {
	return append([]location.Location(nil), m.locs...), nil
}

func (m *memLocStore) ListByAgent(ctx context.Context, agentID int64) ([]location.Location, error) {
	var out []location.Location
	for _, id := range m.granted[agentID] {
		for _, l := range m.locs {
			if l.ID == id {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

func (m *memLocStore) Create(ctx context.Context, name string) (*location.Location, error) {
	m.nextID++
	l := location.Location{ID: m.nextID, Name: name}
	m.locs = append(m.locs, l)
	return &l, nil
}

func (m *memLocStore) Delete(ctx context.Context, id int64) error { return nil }

func (m *memLocStore) Count(ctx context.Context) (int, error) { return len(m.locs), nil }

func (m *memLocStore) SetAgentLocations(ctx context.Context, agentID int64, ids []int64) error {
	m.granted[agentID] = append([]int64(nil), ids...)
	return nil
}

func (m *memLocStore) AddAgentLocation(ctx context.Context, agentID, locationID int64) error {
	m.granted[agentID] = append(m.granted[agentID], locationID)
	return nil
}

func (m *memLocStore) RemoveAgentLocation(ctx context.Context, agentID, locationID int64) error {
	return nil
}

type stubAI struct{ reply string }

func (s *stubAI) Complete(ctx context.Context, prompt string) (string, error) {
	return s.reply, nil
}

type stubSaver struct{ calls int }

func (s *stubSaver) SaveOrder(ctx context.Context, o *chat.ExtractedOrder, summary string, ident agent.Identity) (int64, error) {
	s.calls++
	return 1, nil
}

const orderReply = "تمام ✅\n###DATA_START###\nITEMS:\nكهرباء|سلك|...|...|...|5|لفة\nCUSTOMER:\nالعنوان: عمان\n###DATA_END###"

func newTestAPI(t *testing.T) (*gin.Engine, *agent.Service, *location.Service, *stubSaver) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	agents := agent.NewService(&memAgentStore{}, testSecret)
	locations := location.NewService(&memLocStore{granted: make(map[int64][]int64)})
	saver := &stubSaver{}
	chatSvc := chat.NewService(&stubAI{reply: orderReply}, saver)

	if err := agents.EnsureAdmin(context.Background(), "admin123", "Main Admin", "0500000000"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	r := mawadhttp.NewRouter(mawadhttp.RouterDeps{
		Agents:    agents,
		Locations: locations,
		Chat:      chatSvc,
		JWTSecret: []byte(testSecret),
	})
	return r, agents, locations, saver
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, code string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/login", "", map[string]string{"code": code})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login response: %v", err)
	}
	return resp.AccessToken
}

func TestHealth(t *testing.T) {
	r, _, _, _ := newTestAPI(t)
	w := doJSON(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestLoginRejectsBadCode(t *testing.T) {
	r, _, _, _ := newTestAPI(t)
	w := doJSON(r, http.MethodPost, "/login", "", map[string]string{"code": "wrong123"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestChatRequiresAuth(t *testing.T) {
	r, _, _, _ := newTestAPI(t)
	w := doJSON(r, http.MethodPost, "/chat", "", map[string]any{"message": "مرحبا"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestChatTurnPlacesOrder(t *testing.T) {
	r, _, locations, saver := newTestAPI(t)
	token := login(t, r, "admin123")

	l, err := locations.Create(context.Background(), "عمان")
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	if err := locations.SetAgentLocations(context.Background(), 1, []int64{l.ID}); err != nil {
		t.Fatalf("assign location: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/chat", token, map[string]any{"message": "أبغى سلك", "history": []string{}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Reply       string `json:"reply"`
		OrderPlaced bool   `json:"order_placed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("chat response: %v", err)
	}
	if !resp.OrderPlaced || saver.calls != 1 {
		t.Fatalf("order not placed: %+v (saver calls %d)", resp, saver.calls)
	}
	if bytes.Contains([]byte(resp.Reply), []byte("###DATA_START###")) {
		t.Fatalf("sentinels leaked: %q", resp.Reply)
	}
}

func TestAdminGate(t *testing.T) {
	r, agents, _, _ := newTestAPI(t)
	adminToken := login(t, r, "admin123")

	w := doJSON(r, http.MethodPost, "/admin/users", adminToken,
		map[string]string{"code": "agent001", "name": "بائع", "phone": "0511111111"})
	if w.Code != http.StatusCreated {
		t.Fatalf("admin create: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	agentToken := login(t, r, "agent001")
	w = doJSON(r, http.MethodGet, "/admin/users", agentToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin list: expected 403, got %d", w.Code)
	}

	list, err := agents.List(context.Background())
	if err != nil || len(list) != 2 {
		t.Fatalf("expected 2 agents, got %d (%v)", len(list), err)
	}
}
