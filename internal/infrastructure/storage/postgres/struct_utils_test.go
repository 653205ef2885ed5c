package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bahikhata/internal/core/entity"
	"bahikhata/internal/core/id"
)

type mockMaster struct {
	entity.Base
	CompanyID id.ID  `db:"company_id" json:"companyId"`
	Name      string `db:"name" json:"name"`
	Skipped   string `db:"-" json:"skipped"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockMaster]()

	expected := []string{"id", "created_at", "company_id", "name"}
	assert.Equal(t, expected, cols)
	assert.NotContains(t, cols, "-")
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	m := mockMaster{
		Base: entity.Base{
			ID:        id.New(),
			CreatedAt: now,
		},
		CompanyID: id.New(),
		Name:      "Cotton Suiting",
		Skipped:   "not persisted",
	}

	got := StructToMap(m)

	assert.Equal(t, m.ID, got["id"])
	assert.Equal(t, now, got["created_at"])
	assert.Equal(t, m.CompanyID, got["company_id"])
	assert.Equal(t, "Cotton Suiting", got["name"])
	assert.NotContains(t, got, "-")
	assert.NotContains(t, got, "skipped")
}
