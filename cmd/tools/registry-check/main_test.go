package main

import (
	"testing"

	"menu-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_ShippedRegistry(t *testing.T) {
	reg, err := registry.LoadRegistry("../../../configs/activity-registry.json")
	require.NoError(t, err)
	assert.Empty(t, check(reg))
}

func TestCheck_ReportsProblems(t *testing.T) {
	reg, err := registry.Parse([]byte(`{"activities":[
		{"id":"a","displayName":"A","category":"stock","taskType":"set-stock","capability":"juggle","timeout":"soon",
		 "inputSchema":{"type":"object"}},
		{"id":"a","category":"stock","taskType":"toggle-stock","inputSchema":{"type":"object","required":"role"}}
	]}`))
	require.NoError(t, err)

	problems := check(reg)
	var msgs []string
	for _, p := range problems {
		msgs = append(msgs, p.Error())
	}
	assert.Contains(t, msgs, `activity set-stock: unknown capability "juggle"`)
	assert.Contains(t, msgs, `activity set-stock: invalid timeout "soon"`)
	assert.Contains(t, msgs, "duplicate activity id: a")
	assert.Contains(t, msgs, "activity toggle-stock missing required field: displayName")
	assert.Len(t, msgs, 5, "the malformed required list fails schema compilation")
}

func TestCheck_Empty(t *testing.T) {
	assert.Len(t, check(&registry.ActivityRegistry{}), 1)
}

func TestList_FiltersByCategory(t *testing.T) {
	reg, err := registry.LoadRegistry("../../../configs/activity-registry.json")
	require.NoError(t, err)

	stock := list(reg, "stock")
	require.Len(t, stock, 3)
	assert.Contains(t, stock[0], "list-branch-stock")
	assert.Len(t, list(reg, ""), len(reg.Activities))
}
