package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("torus_uniforms", WithGroup(2))

	assert.Equal(t, "torus_uniforms", p.Label())
	assert.Equal(t, 2, p.Group())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Empty(t, p.Buffers())
	assert.Zero(t, p.IndexCount())

	p.SetIndexCount(36)
	assert.Equal(t, 36, p.IndexCount())

	// Release on a provider without GPU resources only resets bookkeeping.
	p.Release()
	assert.Zero(t, p.IndexCount())
	assert.Nil(t, p.VertexBuffer())
}

func TestNewBindGroupProvider_NegativeGroupPanics(t *testing.T) {
	assert.PanicsWithValue(t, `bind_group_provider: negative group -1 for "camera"`, func() {
		NewBindGroupProvider("camera", WithGroup(-1))
	})
}

func TestArrange(t *testing.T) {
	camera := NewBindGroupProvider("camera", WithGroup(0))
	lights := NewBindGroupProvider("lights", WithGroup(1))
	entry := NewBindGroupProvider("cube_uniforms", WithGroup(2))
	other := NewBindGroupProvider("torus_uniforms", WithGroup(2))

	tests := []struct {
		name      string
		providers []BindGroupProvider
		want      []string
		wantErr   error
	}{
		{"in order", []BindGroupProvider{camera, lights, entry}, []string{"camera", "lights", "cube_uniforms"}, nil},
		{"shuffled", []BindGroupProvider{entry, camera, lights}, []string{"camera", "lights", "cube_uniforms"}, nil},
		{"conflict", []BindGroupProvider{camera, lights, entry, other}, nil, ErrGroupConflict},
		{"gap", []BindGroupProvider{camera, entry}, nil, ErrGroupGap},
		{"empty", nil, []string{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Arrange(make([]BindGroupProvider, 0, 3), tt.providers...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			labels := make([]string, 0, len(got))
			for _, p := range got {
				labels = append(labels, p.Label())
			}
			assert.Equal(t, tt.want, labels)
		})
	}
}

func TestBufferWrite_Validate(t *testing.T) {
	p := NewBindGroupProvider("lights", WithGroup(1))

	assert.NoError(t, BufferWrite{Provider: p, Binding: 1, Data: make([]byte, 240)}.Validate())
	assert.ErrorIs(t, BufferWrite{Binding: 0, Data: []byte{1}}.Validate(), ErrNoProvider)
	assert.ErrorIs(t, BufferWrite{Provider: p, Binding: 0}.Validate(), ErrEmptyWrite)
}

func TestBufferWrite_String(t *testing.T) {
	p := NewBindGroupProvider("lights", WithGroup(1))

	assert.Equal(t, "lights@1/0+0:16B", BufferWrite{Provider: p, Data: make([]byte, 16)}.String())
	assert.Equal(t, "<nil>/2+64:4B", BufferWrite{Binding: 2, Offset: 64, Data: make([]byte, 4)}.String())
}
