package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "bahikhata/internal/core/context"
	"bahikhata/internal/core/id"
	"bahikhata/internal/infrastructure/http/v1/dto"
	"bahikhata/internal/infrastructure/http/v1/middleware"
	"bahikhata/internal/infrastructure/storage/postgres"
)

type stubAuditHistory struct {
	entries []postgres.AuditEntry

	companyID id.ID
	table     string
	recordID  id.ID
	limit     int
}

func (s *stubAuditHistory) GetRecordHistory(ctx context.Context, companyID id.ID, tableName string, recordID id.ID, limit int) ([]postgres.AuditEntry, error) {
	s.companyID = companyID
	s.table = tableName
	s.recordID = recordID
	s.limit = limit
	return s.entries, nil
}

func newAuditTestRouter(history AuditHistory, companyID id.ID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(func(c *gin.Context) {
		ctx := appctx.WithUser(c.Request.Context(), &appctx.UserContext{
			UserID:    id.New(),
			CompanyID: companyID,
			Role:      "owner",
		})
		c.Request = c.Request.WithContext(ctx)
	})

	h := NewAuditHandler(NewBaseHandler(), history)
	router.GET("/audit/:table/:recordId", h.History)
	return router
}

func TestAuditHistory(t *testing.T) {
	companyID := id.New()
	recordID := id.New()
	stub := &stubAuditHistory{entries: []postgres.AuditEntry{{
		ID:        id.New(),
		CompanyID: companyID,
		TableName: "ledgers",
		RecordID:  recordID,
		Action:    postgres.AuditActionUpdate,
		NewData:   json.RawMessage(`{"name":"Cash"}`),
		CreatedAt: time.Now().UTC(),
	}}}
	router := newAuditTestRouter(stub, companyID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/ledgers/"+recordID.String(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var entries []dto.AuditEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "UPDATE", entries[0].Action)
	assert.JSONEq(t, `{"name":"Cash"}`, string(entries[0].NewData))

	// The lookup is scoped to the caller's company and capped
	assert.Equal(t, companyID, stub.companyID)
	assert.Equal(t, "ledgers", stub.table)
	assert.Equal(t, recordID, stub.recordID)
	assert.Equal(t, defaultHistoryLimit, stub.limit)
}

func TestAuditHistory_UnknownTableRejected(t *testing.T) {
	router := newAuditTestRouter(&stubAuditHistory{}, id.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/users/"+id.New().String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditHistory_InvalidRecordID(t *testing.T) {
	router := newAuditTestRouter(&stubAuditHistory{}, id.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/ledgers/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
