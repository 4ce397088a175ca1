package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMemberValidation(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	_, err := svc.Members.Create(ctx, "Rahim", 1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		member string
		serial int
	}{
		{"blank name", "   ", 2},
		{"long name", strings.Repeat("x", 101), 2},
		{"zero serial", "Karim", 0},
		{"duplicate serial", "Karim", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Members.Create(ctx, tt.member, tt.serial)
			require.Error(t, err)
			assert.True(t, IsValidation(err), "got %v", err)
		})
	}

	all, err := svc.Members.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRenameAndToggleMember(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	id := addMember(t, svc, "Rahim", 1)

	old, err := svc.Members.Rename(ctx, id, "  Rahim Uddin ")
	require.NoError(t, err)
	assert.Equal(t, "Rahim", old)

	m, err := svc.Members.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", m.Name)
	assert.True(t, m.IsActive)

	active, err := svc.Members.ToggleActive(ctx, id)
	require.NoError(t, err)
	assert.False(t, active)

	list, err := svc.Members.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	active, err = svc.Members.ToggleActive(ctx, id)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = svc.Members.Rename(ctx, 99, "Nobody")
	assert.True(t, IsNotFound(err))
}
