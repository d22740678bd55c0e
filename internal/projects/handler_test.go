package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anphat-erp/anphat-erp/internal/shared"
)

func TestListResponseCarriesPagination(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), ProjectForm{
			Name:         fmt.Sprintf("CT%d", i+1),
			CustomerName: "Anh Minh",
		})
		require.NoError(t, err)
	}

	r := httptest.NewRequest("GET", "/projects?limit=2", nil)
	w := httptest.NewRecorder()
	h.List(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, shared.Pagination{Page: 1, PerPage: 2, Total: 3, TotalPages: 2}, resp.Pagination)
}
