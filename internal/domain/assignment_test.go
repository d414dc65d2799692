package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTables(t *testing.T) {
	tests := []struct {
		name    string
		in      []int
		want    []int
		wantErr bool
	}{
		{name: "sorted and deduplicated", in: []int{3, 1, 3, 2, 1}, want: []int{1, 2, 3}},
		{name: "empty set unassigns", in: nil, want: []int{}},
		{name: "zero is a valid table", in: []int{0}, want: []int{0}},
		{name: "negative rejected", in: []int{1, -2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTables(tt.in)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "tables[1]", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckTableBounds(t *testing.T) {
	loc := PollingLocation{Name: "Escuela 1", TableCount: 5}

	assert.NoError(t, CheckTableBounds([]int{1, 5}, loc))
	assert.Error(t, CheckTableBounds([]int{6}, loc))
	assert.NoError(t, CheckTableBounds([]int{99}, PollingLocation{}), "unknown count accepts any table")
}

func TestLocationRef_Validate(t *testing.T) {
	assert.NoError(t, LocationRef{LocationID: "abc"}.Validate())
	assert.NoError(t, LocationRef{StationCode: "0101"}.Validate())
	assert.Error(t, LocationRef{}.Validate())
	assert.Error(t, LocationRef{LocationID: "abc", StationCode: "0101"}.Validate())

	assert.True(t, LocationRef{StationCode: "0101"}.Legacy())
	assert.False(t, LocationRef{LocationID: "abc"}.Legacy())
}

func TestIdentity_CanActFor(t *testing.T) {
	delegate := Identity{DelegateID: "d-1", Role: RoleDelegate}
	coordinator := Identity{DelegateID: "c-1", Role: RoleCoordinator}

	assert.True(t, delegate.CanActFor("d-1"))
	assert.False(t, delegate.CanActFor("d-2"))
	assert.True(t, coordinator.CanActFor("d-2"))
	assert.False(t, Identity{Role: RoleAdmin}.CanActFor("d-1"), "an anonymous caller never acts")
}

func TestConflictError(t *testing.T) {
	err := &ConflictError{Tables: []int{7, 3}}
	assert.Equal(t, "table already assigned to another delegate: 3, 7", err.Error())
	assert.Equal(t, []int{7, 3}, err.Tables, "message sorting must not reorder the payload")
}
