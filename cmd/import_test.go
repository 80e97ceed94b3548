package cmd

import (
	"testing"

	"asset-bridge/core/bridge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProperty(t *testing.T) {
	tests := []struct {
		in      string
		want    bridge.PropertyValue
		wantErr bool
	}{
		{"GLOBAL_SCALE=float:2.5", bridge.FloatProperty("GLOBAL_SCALE", 2.5), false},
		{"SKIP_NORMALS=int:1", bridge.IntProperty("SKIP_NORMALS", 1), false},
		{"ROOT_NODE_NAME=string:root", bridge.StringProperty("ROOT_NODE_NAME", "root"), false},
		{"ROOT_NODE_NAME=plain", bridge.StringProperty("ROOT_NODE_NAME", "plain"), false},
		{"SKIP_NORMALS=int:yes", bridge.PropertyValue{}, true},
		{"broken", bridge.PropertyValue{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseProperty(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
