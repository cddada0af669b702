package apiv1

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method string
	path   string
	query  map[string]string
	body   map[string]any
}

func newTestServer(t *testing.T, reply string, status int, captured *capturedRequest) *Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = map[string]string{}
		for k := range r.URL.Query() {
			captured.query[k] = r.URL.Query().Get(k)
		}

		b, _ := io.ReadAll(r.Body)
		if len(b) > 0 {
			_ = json.Unmarshal(b, &captured.body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL+"/api/v1", "secret")
}

func TestClient_ReadSendsDetailQuery(t *testing.T) {
	var req capturedRequest
	client := newTestServer(t, `{"success":true,"message":{"_id":"c1","name":"Asha Juma"}}`, http.StatusOK, &req)

	record, err := client.Read(context.Background(), ByID("customer", "c1"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/api/v1/read", req.path)
	assert.Equal(t, "customer", req.query["schema"])
	assert.JSONEq(t, `{"_id":"c1"}`, req.query["condition"])
	assert.Equal(t, "{}", req.query["select"])
	assert.Equal(t, "true", req.query["joinForeignKeys"])
	assert.Equal(t, "c1", record.ID())
	assert.Equal(t, "Asha Juma", record.String("name"))
}

func TestClient_ListAllAndCount(t *testing.T) {
	var req capturedRequest
	client := newTestServer(t, `{"success":true,"message":[{"_id":"p1"},{"_id":"p2"}]}`, http.StatusOK, &req)

	records, err := client.ListAll(context.Background(), Query{
		Schema: "product",
		Sort:   map[string]any{"name": 1},
	})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "/api/v1/list-all", req.path)
	assert.JSONEq(t, `{"name":1}`, req.query["sort"])
	_, hasCondition := req.query["condition"]
	assert.False(t, hasCondition)

	client = newTestServer(t, `{"success":true,"message":12}`, http.StatusOK, &req)
	count, err := client.CountAll(context.Background(), Query{Schema: "product"})
	require.NoError(t, err)
	assert.Equal(t, 12, count)
	assert.Equal(t, "/api/v1/count-all-collection", req.path)
}

func TestClient_MutationsSendBodies(t *testing.T) {
	var req capturedRequest
	client := newTestServer(t, `{"success":true,"message":{"_id":"d1","amount":100}}`, http.StatusOK, &req)

	created, err := client.Create(context.Background(), "debt", Record{"amount": 100})
	require.NoError(t, err)
	assert.Equal(t, "d1", created.ID())
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/api/v1/create", req.path)
	assert.Equal(t, "debt", req.body["schema"])
	assert.Equal(t, map[string]any{"amount": float64(100)}, req.body["documentData"])

	_, err = client.Update(context.Background(), "debt", Condition{"_id": "d1"}, Record{"amount": 50})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, map[string]any{"_id": "d1"}, req.body["condition"])
	assert.Equal(t, map[string]any{"amount": float64(50)}, req.body["newDocumentData"])

	client = newTestServer(t, `{"success":true,"message":"deleted"}`, http.StatusOK, &req)
	err = client.Delete(context.Background(), "debt", Condition{"_id": "d1"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "/api/v1/delete", req.path)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		status  int
		message string
	}{
		{name: "success false", reply: `{"success":false,"message":"customer does not exist"}`, status: http.StatusOK, message: "customer does not exist"},
		{name: "server error envelope", reply: `{"success":false,"message":"database offline"}`, status: http.StatusInternalServerError, message: "database offline"},
		{name: "server error raw", reply: `bad gateway`, status: http.StatusBadGateway, message: "bad gateway"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var req capturedRequest
			client := newTestServer(t, test.reply, test.status, &req)

			_, err := client.Read(context.Background(), ByID("customer", "c1"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBackend))
			assert.Equal(t, test.message, UserMessage(err))
		})
	}
}

func TestRecordLookup(t *testing.T) {
	r := Record{
		"_id":      "s1",
		"total":    1500.5,
		"quantity": "3",
		"customer": map[string]any{"name": "Baraka"},
	}

	assert.Equal(t, "s1", r.ID())
	assert.Equal(t, "Baraka", r.String("customer.name"))
	assert.Equal(t, "1500.5", r.String("total"))
	assert.Equal(t, "", r.String("customer.phone"))

	q, ok := r.Float("quantity")
	assert.True(t, ok)
	assert.Equal(t, 3.0, q)

	_, ok = r.Float("customer")
	assert.False(t, ok)
}

func TestRefIDAcceptsPlainAndJoinedKeys(t *testing.T) {
	assert.Equal(t, "d1", RefID("d1"))
	assert.Equal(t, "d1", RefID(map[string]any{"_id": "d1", "name": "Juma"}))
	assert.Equal(t, "d1", RefID(Record{"_id": "d1"}))
	assert.Equal(t, "", RefID(nil))
	assert.Equal(t, "", RefID(map[string]any{"name": "Juma"}))
}
