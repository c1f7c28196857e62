package stubserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/contract"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/submission"
)

var fixedID = uuid.MustParse("3f2b8c1e-5d7a-4e9b-8c6d-1a2b3c4d5e6f")

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	doc, err := contract.Load(context.Background())
	require.NoError(t, err)
	opts = append([]Option{
		WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }),
		WithIDGenerator(func() uuid.UUID { return fixedID }),
	}, opts...)
	srv, err := New(doc, opts...)
	require.NoError(t, err)
	return srv
}

func validRecord() model.FormRecord {
	return model.NewRecord(model.DefaultCatalog()).
		WithNumber("42").
		WithText("hello").
		WithCheckboxes(model.ToggleOption("option1"))
}

func post(t *testing.T, srv *Server, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, CollectionPath, bytes.NewReader(body))
	req.Header.Set("Content-Type", submission.ContentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCreateCustomer_StoresValidRecord(t *testing.T) {
	srv := newTestServer(t)
	raw, err := json.Marshal(validRecord())
	require.NoError(t, err)

	rec := post(t, srv, raw)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, fixedID.String(), got.ID)
	assert.True(t, got.FormRecord.Equal(validRecord()))

	stored := srv.Customers()
	require.Len(t, stored, 1)
	assert.Equal(t, fixedID.String(), stored[0].ID)
}

func TestCreateCustomer_RejectsContractViolations(t *testing.T) {
	srv := newTestServer(t)

	rec := post(t, srv, []byte(`{"numberInput":null,"textInput":"","checkboxes":[]}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "textInput")
	assert.Empty(t, srv.Customers())

	rec = post(t, srv, []byte(`not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not valid JSON")
}

func TestCreateCustomer_SanitizesText(t *testing.T) {
	srv := newTestServer(t)
	raw, err := json.Marshal(validRecord().WithText(`<script>alert(1)</script>Ada <b>Lovelace</b> & co`))
	require.NoError(t, err)

	rec := post(t, srv, raw)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	stored := srv.Customers()
	require.Len(t, stored, 1)
	assert.Equal(t, "Ada Lovelace & co", stored[0].TextInput)
}

func TestCreateCustomer_RejectsMarkupOnlyText(t *testing.T) {
	srv := newTestServer(t)
	raw, err := json.Marshal(validRecord().WithText("<b></b>"))
	require.NoError(t, err)

	rec := post(t, srv, raw)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, srv.Customers())
}

func TestCreateCustomer_ForcedFailure(t *testing.T) {
	srv := newTestServer(t, WithFailStatus(http.StatusInternalServerError))
	raw, err := json.Marshal(validRecord())
	require.NoError(t, err)

	rec := post(t, srv, raw)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, srv.Customers())
}

func TestListAndGetCustomer(t *testing.T) {
	srv := newTestServer(t)
	raw, err := json.Marshal(validRecord())
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, post(t, srv, raw).Code)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, CollectionPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, CollectionPath+"/"+fixedID.String(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, CollectionPath+"/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, CollectionPath+"/nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// The submission client and the stub agree on the wire format end to end.
func TestClientAgainstStub(t *testing.T) {
	cases := []struct {
		name   string
		fail   int
		kind   submission.Kind
		status int
	}{
		{name: "created", status: http.StatusCreated},
		{name: "unauthorized", fail: http.StatusUnauthorized, kind: submission.KindUnauthorized},
		{name: "server error", fail: http.StatusInternalServerError, kind: submission.KindServer},
		{name: "teapot", fail: http.StatusTeapot, kind: submission.KindRequestFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, WithFailStatus(tc.fail))
			ts := httptest.NewServer(srv.Handler())
			defer ts.Close()

			client, err := submission.New(submission.WithEndpoint(ts.URL + CollectionPath))
			require.NoError(t, err)

			resp, err := client.Send(context.Background(), validRecord())
			if tc.kind == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.status, resp.Status)
				assert.Equal(t, fixedID.String(), resp.Body["id"])
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.kind, submission.KindOf(err))
		})
	}
}

func TestServeContract(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, ContractPath, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))

	doc, err := contract.LoadFromData(context.Background(), rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{contract.CreateCustomer, contract.ListCustomers}, doc.Operations())
}
