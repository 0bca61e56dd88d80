package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewmap/internal/domain"
)

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"valid alliance", &domain.Alliance{Name: "West", Status: domain.StatusActive}, ""},
		{"missing name", &domain.Alliance{Status: domain.StatusActive}, "Alliance.Name: field is required"},
		{"bad status", &domain.Set{PrimaryName: "Eastside", Status: "GONE"}, "Set.Status: must be one of [ACTIVE INACTIVE EXTINCT]"},
		{"empty status allowed", &domain.Member{}, ""},
		{"bad member status", &domain.Member{Status: "ALIVE"}, "Member.Status: must be one of [ALIVE_FREE ALIVE_LOCKED_UP DEAD UNKNOWN]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestStructNil(t *testing.T) {
	assert.Error(t, Struct(nil))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("upstream", "http://localhost:3000", "omitempty,url"))
	assert.NoError(t, Var("upstream", "", "omitempty,url"))

	err := Var("upstream", "not a url", "omitempty,url")
	require.Error(t, err)
	assert.Equal(t, "upstream: must be a valid URL", err.Error())
}
