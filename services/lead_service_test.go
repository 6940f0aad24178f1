package services

import (
	"testing"

	"lubripro-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestInferCategory(t *testing.T) {
	cases := []struct {
		category string
		want     string
	}{
		{"Cambio de aceite", models.LeadCategoryOilService},
		{"Lubricación", models.LeadCategoryOilService},
		{"Baterías", models.LeadCategoryBattery},
		{"Neumáticos", models.LeadCategoryTyres},
		{"Cubiertas y llantas", models.LeadCategoryTyres},
		{"Gomería", models.LeadCategoryTyres},
		{"Electricidad", models.LeadCategoryOther},
		{"", models.LeadCategoryOther},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, InferCategory(tc.category), tc.category)
	}
}
