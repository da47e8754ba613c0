package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"marketledger/internal/domain"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "not_found", Result(domain.Errorf(domain.ErrNotFound, "gone")))
	assert.Equal(t, "permission_denied", Result(fmt.Errorf("wrap: %w", domain.ErrPermissionDenied)))
	assert.Equal(t, "error", Result(errors.New("boom")))
}

func TestIncCatalogOp(t *testing.T) {
	before := testutil.ToFloat64(CatalogOps.WithLabelValues("like", "ok"))
	IncCatalogOp("like", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(CatalogOps.WithLabelValues("like", "ok")))
}
