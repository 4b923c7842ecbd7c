package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"gift-auction/internal/catalog"
	"gift-auction/internal/models"
	"gift-auction/internal/notify"
	"gift-auction/internal/orchestrator"
	"gift-auction/internal/recorder"
	"gift-auction/internal/round"
	"gift-auction/internal/server"
	"gift-auction/internal/wallet"

	"github.com/gin-gonic/gin"
)

// SetupTestRouter initializes the router with the in-memory ledger and
// catalog for integration testing. The collection and gifts are seeded
// before the router is built.
func SetupTestRouter(t *testing.T, col models.Collection, gifts ...models.Gift) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.NewMemoryCatalog()
	cat.AddCollection(col)
	for _, gift := range gifts {
		if err := cat.MintGift(gift); err != nil {
			t.Fatalf("failed to mint gift %s: %v", gift.GiftID, err)
		}
	}

	ledger := wallet.NewMemoryLedger()
	engine := round.NewEngine(ledger)
	rec := recorder.NewRecorder(ledger, cat)
	orch := orchestrator.New(cat, engine, rec, ledger, notify.LogNotifier{}, nil)

	return server.SetupRouter(orch, time.Minute)
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case []byte:
		reqBody = v
	case nil:
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		if err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// DataOf extracts the "data" object from a standard response envelope.
func DataOf(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return data
}

// demoCollection returns a three-gift collection used by most flows.
func demoCollection() (models.Collection, []models.Gift) {
	col := models.Collection{CollectionID: "col1", Title: "Plush Pepes", TotalAmount: 3}
	gifts := []models.Gift{
		{GiftID: "gift1", Emoji: "🎁", Label: "gift box", CollectionID: "col1"},
		{GiftID: "gift2", Emoji: "🧸", Label: "teddy bear", CollectionID: "col1"},
		{GiftID: "gift3", Emoji: "💎", Label: "diamond", CollectionID: "col1"},
	}
	return col, gifts
}
