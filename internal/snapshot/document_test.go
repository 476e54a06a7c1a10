package snapshot_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsa-dev/crm-pro/internal/domain"
	"github.com/parsa-dev/crm-pro/internal/snapshot"
)

var allTableKeys = []string{
	"tenant", "role", "permission", "rolePermission", "user", "membership",
	"session", "subscription", "invoice", "invoiceItem", "pipeline",
	"pipelineStage", "company", "contact", "lead", "deal", "dealItem",
	"task", "activity", "auditLog",
}

// Even an empty document must carry every table key as an array, so a
// consumer can iterate tables without nil checks.
func TestEncode_EmptyDocumentHasAllTableKeys(t *testing.T) {
	var buf bytes.Buffer
	doc := &snapshot.Document{ExportedAt: time.Now().UTC()}
	require.NoError(t, doc.Encode(&buf))

	var raw struct {
		Tables map[string]json.RawMessage `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw.Tables, len(allTableKeys))
	for _, key := range allTableKeys {
		arr, ok := raw.Tables[key]
		require.True(t, ok, "missing table key %q", key)
		assert.Equal(t, "[]", strings.TrimSpace(string(arr)), "table %q must be [] not null", key)
	}
}

// NUMERIC fields must survive as decimal strings, not JSON numbers, so
// large IRR amounts never lose precision in a float64 round trip.
func TestEncode_DecimalsAsStrings(t *testing.T) {
	amount, err := decimal.NewFromString("123456789012345678901234567890")
	require.NoError(t, err)

	doc := &snapshot.Document{}
	doc.Tables.Deal = []snapshot.DealRow{{
		ID:       "d1",
		TenantID: "t1",
		Title:    "قرارداد بزرگ",
		Amount:   amount,
	}}

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	assert.Contains(t, buf.String(), `"amount": "123456789012345678901234567890"`)

	decoded, err := snapshot.Decode(&buf)
	require.NoError(t, err)
	require.Len(t, decoded.Tables.Deal, 1)
	assert.True(t, decoded.Tables.Deal[0].Amount.Equal(amount))
}

func TestDecode_RejectsMalformedJSON(t *testing.T) {
	_, err := snapshot.Decode(strings.NewReader("{not json"))
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
}

func TestValidateForImport(t *testing.T) {
	t.Run("no tenant rows", func(t *testing.T) {
		doc := &snapshot.Document{}
		assert.ErrorIs(t, doc.ValidateForImport(), domain.ErrInvalidSnapshot)
	})

	t.Run("empty slug", func(t *testing.T) {
		doc := &snapshot.Document{}
		doc.Tables.Tenant = []snapshot.TenantRow{{ID: "t1"}}
		assert.ErrorIs(t, doc.ValidateForImport(), domain.ErrInvalidSnapshot)
	})

	t.Run("user row without id", func(t *testing.T) {
		doc := &snapshot.Document{}
		doc.Tables.Tenant = []snapshot.TenantRow{{ID: "t1", Slug: "demo"}}
		doc.Tables.User = []snapshot.UserRow{{Email: "x@example.com"}}
		assert.ErrorIs(t, doc.ValidateForImport(), domain.ErrMissingRowID)
	})

	t.Run("valid", func(t *testing.T) {
		doc := &snapshot.Document{}
		doc.Tables.Tenant = []snapshot.TenantRow{{ID: "t1", Slug: "demo"}}
		doc.Tables.User = []snapshot.UserRow{{ID: "u1", Email: "x@example.com"}}
		assert.NoError(t, doc.ValidateForImport())
	})
}

func TestCounts_CoversEveryTable(t *testing.T) {
	doc := &snapshot.Document{}
	doc.Normalize()
	counts := doc.Counts()
	require.Len(t, counts, len(allTableKeys))
	for i, c := range counts {
		assert.Equal(t, allTableKeys[i], c.Table)
	}
	assert.Zero(t, doc.TotalRows())
}
